package controllers

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"kindred_server/models"
	"kindred_server/services"
)

// fakeUserStore is a minimal DynamoAPI holding user records only; the
// controller tests that need storage exercise registration and login.
type fakeUserStore struct {
	users map[string]models.User // keyed by userId
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]models.User{}}
}

var _ services.DynamoAPI = (*fakeUserStore)(nil)

func (f *fakeUserStore) PutItem(ctx context.Context, tableName string, item interface{}) error {
	if tableName != models.UsersTable {
		return nil
	}
	marshaled, err := attributevalue.MarshalMap(item)
	if err != nil {
		return err
	}
	var user models.User
	if err := attributevalue.UnmarshalMap(marshaled, &user); err != nil {
		return err
	}
	f.users[user.UserID] = user
	return nil
}

func (f *fakeUserStore) GetItem(ctx context.Context, tableName string, key map[string]types.AttributeValue) (map[string]types.AttributeValue, error) {
	if tableName == models.UsersTable {
		if id, ok := key["userId"].(*types.AttributeValueMemberS); ok {
			if user, ok := f.users[id.Value]; ok {
				return attributevalue.MarshalMap(user)
			}
		}
	}
	return nil, services.ErrItemNotFound
}

func (f *fakeUserStore) UpdateItem(ctx context.Context, tableName string, updateExpression string, key map[string]types.AttributeValue, expressionAttributeValues map[string]types.AttributeValue, expressionAttributeNames map[string]string) (map[string]types.AttributeValue, error) {
	return map[string]types.AttributeValue{}, nil
}

func (f *fakeUserStore) DeleteItem(ctx context.Context, tableName string, key map[string]types.AttributeValue) error {
	return nil
}

func (f *fakeUserStore) QueryItems(ctx context.Context, tableName string, keyConditionExpression string, expressionAttributeValues map[string]types.AttributeValue, expressionAttributeNames map[string]string, limit int32) ([]map[string]types.AttributeValue, error) {
	return nil, nil
}

func (f *fakeUserStore) QueryItemsWithIndex(ctx context.Context, tableName string, indexName string, keyConditionExpression string, expressionAttributeValues map[string]types.AttributeValue, expressionAttributeNames map[string]string, limit int32) ([]map[string]types.AttributeValue, error) {
	if tableName == models.UsersTable && indexName == models.UsernameIndex {
		username, ok := expressionAttributeValues[":username"].(*types.AttributeValueMemberS)
		if !ok {
			return nil, nil
		}
		for _, user := range f.users {
			if user.Username == username.Value {
				item, err := attributevalue.MarshalMap(user)
				if err != nil {
					return nil, err
				}
				return []map[string]types.AttributeValue{item}, nil
			}
		}
	}
	return nil, nil
}

func (f *fakeUserStore) ScanWithFilter(ctx context.Context, tableName string, filterFunc func(map[string]types.AttributeValue) bool, excludeFields map[string]string, result interface{}) error {
	return nil
}
