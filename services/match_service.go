package services

import (
	"context"
	"fmt"
	"math"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"kindred_server/models"
	"kindred_server/utils"
)

// MatchService answers the discovery queries: users sharing an interest with
// the caller, users nearby, and interests the caller does not have yet.
// The caller and anyone on the caller's block list are always excluded.
type MatchService struct {
	Dynamo DynamoAPI
}

// SharedInterestMatches finds other users with at least one interest in
// common with the caller, grouped by interest.
func (ms *MatchService) SharedInterestMatches(ctx context.Context, caller *models.User) ([]models.InterestMatch, error) {
	matches := []models.InterestMatch{}

	for _, interestID := range caller.Interests {
		interest, err := ms.getInterestRef(ctx, interestID)
		if err != nil {
			return nil, err
		}

		keyCondition := "#interestId = :interestId"
		expressionValues := map[string]types.AttributeValue{
			":interestId": &types.AttributeValueMemberS{Value: interestID},
		}
		expressionNames := map[string]string{
			"#interestId": "interestId",
		}

		rows, err := ms.Dynamo.QueryItems(ctx, models.InterestUsersTable, keyCondition, expressionValues, expressionNames, 100)
		if err != nil {
			return nil, err
		}

		users := []models.UserRef{}
		for _, row := range rows {
			userID := utils.ExtractString(row, "userId")
			if userID == "" || userID == caller.UserID || caller.HasBlocked(userID) {
				continue
			}
			ref, err := ms.getUserRef(ctx, userID)
			if err != nil {
				continue // dangling association row
			}
			users = append(users, ref)
		}

		if len(users) > 0 {
			matches = append(matches, models.InterestMatch{Interest: interest, Users: users})
		}
	}

	return matches, nil
}

// NearbyMatches finds other users inside a one-degree latitude/longitude
// bounding box around the caller. The box is an approximate candidate
// filter; the distance attached to each result is the true great-circle
// distance.
func (ms *MatchService) NearbyMatches(ctx context.Context, caller *models.User) ([]models.NearbyUser, error) {
	inBox := func(item map[string]types.AttributeValue) bool {
		lat := utils.ExtractFloat(item, "latitude")
		lon := utils.ExtractFloat(item, "longitude")
		return math.Abs(lat-caller.Latitude) <= 1 && math.Abs(lon-caller.Longitude) <= 1
	}

	var candidates []models.User
	excludeFields := map[string]string{"userId": caller.UserID}
	if err := ms.Dynamo.ScanWithFilter(ctx, models.UsersTable, inBox, excludeFields, &candidates); err != nil {
		return nil, err
	}

	nearby := []models.NearbyUser{}
	for _, candidate := range candidates {
		if caller.HasBlocked(candidate.UserID) {
			continue
		}
		distance := utils.CalculateDistance(caller.Latitude, caller.Longitude, candidate.Latitude, candidate.Longitude)
		nearby = append(nearby, models.NearbyUser{
			ID:         candidate.UserID,
			ScreenName: candidate.ScreenName,
			Location:   candidate.Location,
			DistanceKm: math.Round(distance*100) / 100,
		})
	}

	return nearby, nil
}

// OtherInterests finds interests held by other users that do not overlap the
// caller's own, for discovery of new topics.
func (ms *MatchService) OtherInterests(ctx context.Context, caller *models.User) ([]models.Interest, error) {
	held := make(map[string]bool, len(caller.Interests))
	for _, id := range caller.Interests {
		held[id] = true
	}

	var rows []models.InterestUser
	excludeFields := map[string]string{"userId": caller.UserID}
	if err := ms.Dynamo.ScanWithFilter(ctx, models.InterestUsersTable, nil, excludeFields, &rows); err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	interests := []models.Interest{}
	for _, row := range rows {
		if held[row.InterestID] || seen[row.InterestID] {
			continue
		}
		seen[row.InterestID] = true

		key := map[string]types.AttributeValue{
			"interestId": &types.AttributeValueMemberS{Value: row.InterestID},
		}
		item, err := ms.Dynamo.GetItem(ctx, models.InterestsTable, key)
		if err != nil {
			continue
		}
		var interest models.Interest
		if err := attributevalue.UnmarshalMap(item, &interest); err != nil {
			continue
		}
		interests = append(interests, interest)
	}

	return interests, nil
}

func (ms *MatchService) getInterestRef(ctx context.Context, interestID string) (models.InterestRef, error) {
	key := map[string]types.AttributeValue{
		"interestId": &types.AttributeValueMemberS{Value: interestID},
	}
	item, err := ms.Dynamo.GetItem(ctx, models.InterestsTable, key)
	if err != nil {
		return models.InterestRef{}, fmt.Errorf("failed to resolve interest %s: %w", interestID, err)
	}
	return models.InterestRef{
		ID:   utils.ExtractString(item, "interestId"),
		Name: utils.ExtractString(item, "name"),
	}, nil
}

func (ms *MatchService) getUserRef(ctx context.Context, userID string) (models.UserRef, error) {
	key := map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}
	item, err := ms.Dynamo.GetItem(ctx, models.UsersTable, key)
	if err != nil {
		return models.UserRef{}, err
	}
	return models.UserRef{
		ID:         utils.ExtractString(item, "userId"),
		ScreenName: utils.ExtractString(item, "screenName"),
		Location:   utils.ExtractString(item, "location"),
	}, nil
}
