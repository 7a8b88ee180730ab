package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"kindred_server/models"
)

// InterestService keeps the user record, the interest catalog and the
// association table mutually consistent. The writes are sequential and not
// transactional: a later step runs only after the earlier ones succeeded,
// and nothing rolls back on failure.
type InterestService struct {
	Dynamo DynamoAPI
}

// ListRecent returns the most recently created catalog entries, newest first
func (is *InterestService) ListRecent(ctx context.Context, limit int) ([]models.Interest, error) {
	var interests []models.Interest
	if err := is.Dynamo.ScanWithFilter(ctx, models.InterestsTable, nil, nil, &interests); err != nil {
		return nil, err
	}

	sort.SliceStable(interests, func(i, j int) bool {
		return interests[i].CreatedAt > interests[j].CreatedAt
	})

	if len(interests) > limit {
		interests = interests[:limit]
	}
	return interests, nil
}

// GetInterest retrieves a catalog entry by id
func (is *InterestService) GetInterest(ctx context.Context, interestID string) (*models.Interest, error) {
	key := map[string]types.AttributeValue{
		"interestId": &types.AttributeValueMemberS{Value: interestID},
	}

	item, err := is.Dynamo.GetItem(ctx, models.InterestsTable, key)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, models.NewNotFoundError()
		}
		return nil, err
	}

	var interest models.Interest
	if err := attributevalue.UnmarshalMap(item, &interest); err != nil {
		return nil, fmt.Errorf("failed to unmarshal interest: %w", err)
	}
	return &interest, nil
}

// GetInterestByWikiPageID looks a catalog entry up by its external key.
// Returns nil without an error when the page id is not in the catalog yet.
func (is *InterestService) GetInterestByWikiPageID(ctx context.Context, wikiPageID string) (*models.Interest, error) {
	keyCondition := "#wikiPageId = :wikiPageId"
	expressionValues := map[string]types.AttributeValue{
		":wikiPageId": &types.AttributeValueMemberS{Value: wikiPageID},
	}
	expressionNames := map[string]string{
		"#wikiPageId": "wikiPageId",
	}

	items, err := is.Dynamo.QueryItemsWithIndex(ctx, models.InterestsTable, models.WikiPageIDIndex, keyCondition, expressionValues, expressionNames, 1)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}

	var interest models.Interest
	if err := attributevalue.UnmarshalMap(items[0], &interest); err != nil {
		return nil, fmt.Errorf("failed to unmarshal interest: %w", err)
	}
	return &interest, nil
}

// AddInterest attaches a catalog interest to a user, creating the catalog
// entry on first use. The name supplied by whoever adds a wikiPageId first
// becomes canonical; later adds never update the stored name. Adding an
// interest the user already has is rejected.
func (is *InterestService) AddInterest(ctx context.Context, userID, wikiPageID, name string) (*models.Interest, error) {
	key := map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}
	item, err := is.Dynamo.GetItem(ctx, models.UsersTable, key)
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

	interest, err := is.GetInterestByWikiPageID(ctx, wikiPageID)
	if err != nil {
		return nil, err
	}
	if interest == nil {
		interest = &models.Interest{
			InterestID: uuid.New().String(),
			WikiPageID: wikiPageID,
			Name:       name,
			CreatedAt:  time.Now().UTC().Format(time.RFC3339),
		}
		if err := is.Dynamo.PutItem(ctx, models.InterestsTable, *interest); err != nil {
			return nil, err
		}
		log.Printf("Created catalog interest %q (wikiPageId=%s)", interest.Name, wikiPageID)
	}

	if user.HasInterest(interest.InterestID) {
		return nil, models.NewValidationError("Interest already has been added", "wikiPageId")
	}

	user.Interests = append(user.Interests, interest.InterestID)
	if err := is.Dynamo.PutItem(ctx, models.UsersTable, user); err != nil {
		return nil, err
	}

	association := models.InterestUser{
		InterestID:    interest.InterestID,
		UserID:        userID,
		AssociationID: uuid.New().String(),
	}
	// keyed on (interestId, userId), so re-putting an existing pair is a no-op
	if err := is.Dynamo.PutItem(ctx, models.InterestUsersTable, association); err != nil {
		return nil, err
	}

	return interest, nil
}

// RemoveInterest detaches an interest from a user. Removing an interest the
// user never had is an error; the catalog entry itself is always retained.
func (is *InterestService) RemoveInterest(ctx context.Context, userID, interestID string) error {
	key := map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}
	item, err := is.Dynamo.GetItem(ctx, models.UsersTable, key)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return models.NewNotFoundError()
		}
		return err
	}

	var user models.User
	if err := attributevalue.UnmarshalMap(item, &user); err != nil {
		return fmt.Errorf("failed to unmarshal user: %w", err)
	}

	if _, err := is.GetInterest(ctx, interestID); err != nil {
		return err
	}

	if !user.HasInterest(interestID) {
		return models.NewNotFoundError()
	}

	remaining := make([]string, 0, len(user.Interests))
	for _, id := range user.Interests {
		if id != interestID {
			remaining = append(remaining, id)
		}
	}
	user.Interests = remaining
	if err := is.Dynamo.PutItem(ctx, models.UsersTable, user); err != nil {
		return err
	}

	// The association row is derived state; deleting an absent row is a no-op.
	associationKey := map[string]types.AttributeValue{
		"interestId": &types.AttributeValueMemberS{Value: interestID},
		"userId":     &types.AttributeValueMemberS{Value: userID},
	}
	if err := is.Dynamo.DeleteItem(ctx, models.InterestUsersTable, associationKey); err != nil {
		return err
	}

	return nil
}
