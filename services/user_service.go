package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"kindred_server/models"
)

// UserService handles account registration, lookup and profile updates
type UserService struct {
	Dynamo DynamoAPI
	Auth   *AuthService
}

// Register creates a new user account. The username must be unique; the
// plaintext password is hashed before anything is persisted.
func (us *UserService) Register(ctx context.Context, user models.User, password string) (*models.User, error) {
	existing, err := us.GetUserByUsername(ctx, user.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewValidationError("sorry, that username is already taken", "username")
	}

	hash, err := us.Auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user.UserID = uuid.New().String()
	user.Password = hash
	user.CreatedAt = time.Now().UTC().Format(time.RFC3339)

	if err := us.Dynamo.PutItem(ctx, models.UsersTable, user); err != nil {
		return nil, err
	}

	log.Printf("Registered user %s (%s)", user.Username, user.UserID)
	return &user, nil
}

// GetUser retrieves a user by id
func (us *UserService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	key := map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}

	item, err := us.Dynamo.GetItem(ctx, models.UsersTable, key)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, models.NewNotFoundError()
		}
		return nil, err
	}

	var user models.User
	if err := attributevalue.UnmarshalMap(item, &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}
	return &user, nil
}

// GetUserByUsername looks a user up through the username GSI. Returns nil
// without an error when no account exists for the username.
func (us *UserService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	keyCondition := "#username = :username"
	expressionValues := map[string]types.AttributeValue{
		":username": &types.AttributeValueMemberS{Value: username},
	}
	expressionNames := map[string]string{
		"#username": "username",
	}

	items, err := us.Dynamo.QueryItemsWithIndex(ctx, models.UsersTable, models.UsernameIndex, keyCondition, expressionValues, expressionNames, 1)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}

	var user models.User
	if err := attributevalue.UnmarshalMap(items[0], &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}
	return &user, nil
}

// SaveUser persists the full user record
func (us *UserService) SaveUser(ctx context.Context, user *models.User) error {
	return us.Dynamo.PutItem(ctx, models.UsersTable, *user)
}

// UpdateUser applies a partial update. Every field present in updates
// overwrites the stored value unconditionally; a "password" entry must
// already be hashed by the caller.
func (us *UserService) UpdateUser(ctx context.Context, userID string, updates map[string]interface{}) (*models.User, error) {
	if _, err := us.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	key := map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}

	updateExpression := "SET"
	expressionAttributeValues := make(map[string]types.AttributeValue)
	expressionAttributeNames := make(map[string]string)

	for field, value := range updates {
		placeholder := ":" + field
		attributeName := "#" + field
		updateExpression += " " + attributeName + " = " + placeholder + ","

		attr, err := attributevalue.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal update for '%s': %w", field, err)
		}
		expressionAttributeValues[placeholder] = attr
		expressionAttributeNames[attributeName] = field
	}
	updateExpression = updateExpression[:len(updateExpression)-1]

	updatedItem, err := us.Dynamo.UpdateItem(ctx, models.UsersTable, updateExpression, key, expressionAttributeValues, expressionAttributeNames)
	if err != nil {
		return nil, err
	}

	var updatedUser models.User
	if err := attributevalue.UnmarshalMap(updatedItem, &updatedUser); err != nil {
		return nil, fmt.Errorf("failed to unmarshal updated user: %w", err)
	}
	return &updatedUser, nil
}

// GetSelfView returns the caller's own extended view with interests and
// blocked users resolved to display form.
func (us *UserService) GetSelfView(ctx context.Context, userID string) (*models.SelfView, error) {
	user, err := us.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	view := &models.SelfView{
		ID:           user.UserID,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		ScreenName:   user.ScreenName,
		Location:     user.Location,
		Interests:    []models.InterestRef{},
		BlockedUsers: []models.UserRef{},
	}

	for _, interestID := range user.Interests {
		name := us.lookupInterestName(ctx, interestID)
		view.Interests = append(view.Interests, models.InterestRef{ID: interestID, Name: name})
	}

	for _, blockedID := range user.BlockedUsers {
		blocked, err := us.GetUser(ctx, blockedID)
		if err != nil {
			// stale reference, keep the id without display fields
			view.BlockedUsers = append(view.BlockedUsers, models.UserRef{ID: blockedID})
			continue
		}
		view.BlockedUsers = append(view.BlockedUsers, models.UserRef{ID: blockedID, ScreenName: blocked.ScreenName})
	}

	return view, nil
}

// GetReducedView returns another user's reduced profile: id, screen name,
// location and interests only.
func (us *UserService) GetReducedView(ctx context.Context, userID string) (*models.ReducedUser, error) {
	user, err := us.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	view := &models.ReducedUser{
		ID:         user.UserID,
		ScreenName: user.ScreenName,
		Location:   user.Location,
		Interests:  []models.InterestRef{},
	}
	for _, interestID := range user.Interests {
		name := us.lookupInterestName(ctx, interestID)
		view.Interests = append(view.Interests, models.InterestRef{ID: interestID, Name: name})
	}
	return view, nil
}

func (us *UserService) lookupInterestName(ctx context.Context, interestID string) string {
	key := map[string]types.AttributeValue{
		"interestId": &types.AttributeValueMemberS{Value: interestID},
	}
	item, err := us.Dynamo.GetItem(ctx, models.InterestsTable, key)
	if err != nil {
		return ""
	}

	var interest models.Interest
	if err := attributevalue.UnmarshalMap(item, &interest); err != nil {
		return ""
	}
	return interest.Name
}
