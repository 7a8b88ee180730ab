package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kindred_server/models"
)

func seedUserAt(t *testing.T, fake *fakeDynamo, userID, screenName string, lat, lon float64) {
	t.Helper()
	user := models.User{
		UserID:     userID,
		Username:   screenName,
		ScreenName: screenName,
		Latitude:   lat,
		Longitude:  lon,
	}
	require.NoError(t, fake.PutItem(context.Background(), models.UsersTable, user))
}

func addInterestFor(t *testing.T, fake *fakeDynamo, userID, wikiPageID, name string) *models.Interest {
	t.Helper()
	is := &InterestService{Dynamo: fake}
	interest, err := is.AddInterest(context.Background(), userID, wikiPageID, name)
	require.NoError(t, err)
	return interest
}

func TestSharedInterestMatches(t *testing.T) {
	fake := newFakeDynamo()
	seedUser(t, fake, "user-a", "alice")
	seedUser(t, fake, "user-b", "bob")
	seedUser(t, fake, "user-c", "carol")

	interest := addInterestFor(t, fake, "user-a", "fake", "Gardening")
	addInterestFor(t, fake, "user-b", "fake", "Gardening")
	addInterestFor(t, fake, "user-c", "fake", "Gardening")

	ms := &MatchService{Dynamo: fake}

	caller := getUser(t, fake, "user-a")
	caller.BlockedUsers = []string{"user-c"}

	matches, err := ms.SharedInterestMatches(context.Background(), caller)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, interest.InterestID, matches[0].Interest.ID)
	assert.Equal(t, "Gardening", matches[0].Interest.Name)
	require.Len(t, matches[0].Users, 1)
	assert.Equal(t, "user-b", matches[0].Users[0].ID)
}

func TestSharedInterestMatchesNoOverlap(t *testing.T) {
	fake := newFakeDynamo()
	seedUser(t, fake, "user-a", "alice")
	seedUser(t, fake, "user-b", "bob")

	addInterestFor(t, fake, "user-a", "fake", "Gardening")
	addInterestFor(t, fake, "user-b", "fake2", "Rowing")

	ms := &MatchService{Dynamo: fake}
	matches, err := ms.SharedInterestMatches(context.Background(), getUser(t, fake, "user-a"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestNearbyMatches(t *testing.T) {
	fake := newFakeDynamo()
	seedUserAt(t, fake, "user-a", "alice", 10, 10)
	seedUserAt(t, fake, "user-b", "bob", 10.5, 10.5)  // inside the box
	seedUserAt(t, fake, "user-c", "carol", 12, 12)    // outside
	seedUserAt(t, fake, "user-d", "dave", 10.2, 10.2) // inside but blocked

	ms := &MatchService{Dynamo: fake}

	caller := getUser(t, fake, "user-a")
	caller.BlockedUsers = []string{"user-d"}

	nearby, err := ms.NearbyMatches(context.Background(), caller)
	require.NoError(t, err)
	require.Len(t, nearby, 1)
	assert.Equal(t, "user-b", nearby[0].ID)
	assert.Greater(t, nearby[0].DistanceKm, 0.0)
	assert.Less(t, nearby[0].DistanceKm, 160.0)
}

func TestOtherInterests(t *testing.T) {
	fake := newFakeDynamo()
	seedUser(t, fake, "user-a", "alice")
	seedUser(t, fake, "user-b", "bob")

	addInterestFor(t, fake, "user-a", "fake", "Gardening")
	addInterestFor(t, fake, "user-b", "fake", "Gardening")
	rowing := addInterestFor(t, fake, "user-b", "fake2", "Rowing")

	ms := &MatchService{Dynamo: fake}
	interests, err := ms.OtherInterests(context.Background(), getUser(t, fake, "user-a"))
	require.NoError(t, err)
	require.Len(t, interests, 1)
	assert.Equal(t, rowing.InterestID, interests[0].InterestID)
	assert.Equal(t, "Rowing", interests[0].Name)
}
