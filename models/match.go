package models

// InterestMatch groups the other users who share one of the caller's
// interests under that interest.
type InterestMatch struct {
	Interest InterestRef `json:"interest"`
	Users    []UserRef   `json:"users"`
}

// NearbyUser is a proximity match with the great-circle distance computed
// for display. Candidate selection itself uses a one-degree bounding box.
type NearbyUser struct {
	ID         string  `json:"id"`
	ScreenName string  `json:"screenName"`
	Location   string  `json:"location"`
	DistanceKm float64 `json:"distanceKm"`
}
