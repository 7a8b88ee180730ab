package models

// User defines the structure for stored user accounts
type User struct {
	UserID       string   `dynamodbav:"userId" json:"id"`
	FirstName    string   `dynamodbav:"firstName" json:"firstName"`
	LastName     string   `dynamodbav:"lastName" json:"lastName"`
	ScreenName   string   `dynamodbav:"screenName" json:"screenName"`
	Username     string   `dynamodbav:"username" json:"username"`
	Password     string   `dynamodbav:"password" json:"-"` // bcrypt hash, never serialized
	Location     string   `dynamodbav:"location" json:"location"`
	Latitude     float64  `dynamodbav:"latitude" json:"latitude"`
	Longitude    float64  `dynamodbav:"longitude" json:"longitude"`
	Photo        string   `dynamodbav:"photo,omitempty" json:"photo,omitempty"`
	Interests    []string `dynamodbav:"interests,omitempty" json:"interests,omitempty"`
	BlockedUsers []string `dynamodbav:"blockedUsers,omitempty" json:"blockedUsers,omitempty"`
	CreatedAt    string   `dynamodbav:"createdAt" json:"createdAt"`
}

// PublicUser is the serialized view returned to the account owner
type PublicUser struct {
	ID         string  `json:"id"`
	FirstName  string  `json:"firstName"`
	LastName   string  `json:"lastName"`
	ScreenName string  `json:"screenName"`
	Username   string  `json:"username"`
	Location   string  `json:"location"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Photo      string  `json:"photo,omitempty"`
}

// SelfView is the extended view a user gets of their own account, with
// interests and blocked users resolved to display form
type SelfView struct {
	ID           string        `json:"id"`
	FirstName    string        `json:"firstName"`
	LastName     string        `json:"lastName"`
	ScreenName   string        `json:"screenName"`
	Location     string        `json:"location"`
	Interests    []InterestRef `json:"interests"`
	BlockedUsers []UserRef     `json:"blockedUsers"`
}

// ReducedUser is the view other authenticated users are allowed to see
type ReducedUser struct {
	ID         string        `json:"id"`
	ScreenName string        `json:"screenName"`
	Location   string        `json:"location"`
	Interests  []InterestRef `json:"interests,omitempty"`
}

// InterestRef is a display-friendly interest reference
type InterestRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UserRef is a display-friendly user reference
type UserRef struct {
	ID         string `json:"id"`
	ScreenName string `json:"screenName"`
	Location   string `json:"location,omitempty"`
}

// Serialize returns the public representation of a user
func (u *User) Serialize() PublicUser {
	return PublicUser{
		ID:         u.UserID,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		ScreenName: u.ScreenName,
		Username:   u.Username,
		Location:   u.Location,
		Latitude:   u.Latitude,
		Longitude:  u.Longitude,
		Photo:      u.Photo,
	}
}

// HasInterest reports whether interestID is already on the user's list
func (u *User) HasInterest(interestID string) bool {
	for _, id := range u.Interests {
		if id == interestID {
			return true
		}
	}
	return false
}

// HasBlocked reports whether userID is on the user's block list
func (u *User) HasBlocked(userID string) bool {
	for _, id := range u.BlockedUsers {
		if id == userID {
			return true
		}
	}
	return false
}

// UsersTable is the DynamoDB table name for user accounts
const UsersTable = "Users"

// UsernameIndex is the GSI used to look users up by username
const UsernameIndex = "username-index"
