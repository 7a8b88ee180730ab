package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"kindred_server/models"
)

// tableKeys maps each table to its key attribute names, in key order
var tableKeys = map[string][]string{
	models.UsersTable:         {"userId"},
	models.InterestsTable:     {"interestId"},
	models.InterestUsersTable: {"interestId", "userId"},
	models.ConversationsTable: {"conversationId"},
	models.MessagesTable:      {"conversationId", "messageId"},
}

// fakeDynamo is the in-memory DynamoAPI used by the service tests
type fakeDynamo struct {
	mu     sync.Mutex
	tables map[string]map[string]map[string]types.AttributeValue
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{tables: map[string]map[string]map[string]types.AttributeValue{}}
}

func (f *fakeDynamo) table(name string) map[string]map[string]types.AttributeValue {
	if f.tables[name] == nil {
		f.tables[name] = map[string]map[string]types.AttributeValue{}
	}
	return f.tables[name]
}

func (f *fakeDynamo) keyString(tableName string, item map[string]types.AttributeValue) string {
	parts := []string{}
	for _, keyAttr := range tableKeys[tableName] {
		if v, ok := item[keyAttr].(*types.AttributeValueMemberS); ok {
			parts = append(parts, v.Value)
		}
	}
	return strings.Join(parts, "|")
}

func (f *fakeDynamo) count(tableName string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.table(tableName))
}

func (f *fakeDynamo) PutItem(ctx context.Context, tableName string, item interface{}) error {
	marshaled, err := attributevalue.MarshalMap(item)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.table(tableName)[f.keyString(tableName, marshaled)] = marshaled
	return nil
}

func (f *fakeDynamo) GetItem(ctx context.Context, tableName string, key map[string]types.AttributeValue) (map[string]types.AttributeValue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.table(tableName)[f.keyString(tableName, key)]
	if !ok {
		return nil, ErrItemNotFound
	}
	return item, nil
}

func (f *fakeDynamo) UpdateItem(ctx context.Context, tableName string, updateExpression string, key map[string]types.AttributeValue, expressionAttributeValues map[string]types.AttributeValue, expressionAttributeNames map[string]string) (map[string]types.AttributeValue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.table(tableName)[f.keyString(tableName, key)]
	if !ok {
		return nil, fmt.Errorf("no item for key")
	}

	// only SET expressions of the form "SET #a = :a, #b = :b" occur
	body := strings.TrimPrefix(updateExpression, "SET ")
	for _, assignment := range strings.Split(body, ",") {
		parts := strings.Fields(assignment)
		if len(parts) != 3 {
			return nil, fmt.Errorf("unsupported update expression %q", updateExpression)
		}
		attrName := expressionAttributeNames[parts[0]]
		item[attrName] = expressionAttributeValues[parts[2]]
	}
	return item, nil
}

func (f *fakeDynamo) DeleteItem(ctx context.Context, tableName string, key map[string]types.AttributeValue) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.table(tableName), f.keyString(tableName, key))
	return nil
}

// equalityMatch resolves key conditions of the form "#field = :field"
func equalityMatch(keyCondition string, expressionAttributeValues map[string]types.AttributeValue, expressionAttributeNames map[string]string) (string, string, error) {
	parts := strings.Fields(keyCondition)
	if len(parts) != 3 || parts[1] != "=" {
		return "", "", fmt.Errorf("unsupported key condition %q", keyCondition)
	}
	field := strings.TrimPrefix(parts[0], "#")
	if name, ok := expressionAttributeNames[parts[0]]; ok {
		field = name
	}
	value, ok := expressionAttributeValues[parts[2]].(*types.AttributeValueMemberS)
	if !ok {
		return "", "", fmt.Errorf("missing value for %q", parts[2])
	}
	return field, value.Value, nil
}

func (f *fakeDynamo) QueryItems(ctx context.Context, tableName string, keyConditionExpression string, expressionAttributeValues map[string]types.AttributeValue, expressionAttributeNames map[string]string, limit int32) ([]map[string]types.AttributeValue, error) {
	return f.queryEquality(tableName, keyConditionExpression, expressionAttributeValues, expressionAttributeNames, limit)
}

func (f *fakeDynamo) QueryItemsWithIndex(ctx context.Context, tableName string, indexName string, keyConditionExpression string, expressionAttributeValues map[string]types.AttributeValue, expressionAttributeNames map[string]string, limit int32) ([]map[string]types.AttributeValue, error) {
	return f.queryEquality(tableName, keyConditionExpression, expressionAttributeValues, expressionAttributeNames, limit)
}

func (f *fakeDynamo) queryEquality(tableName string, keyCondition string, expressionAttributeValues map[string]types.AttributeValue, expressionAttributeNames map[string]string, limit int32) ([]map[string]types.AttributeValue, error) {
	field, value, err := equalityMatch(keyCondition, expressionAttributeValues, expressionAttributeNames)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	var items []map[string]types.AttributeValue
	for _, item := range f.table(tableName) {
		if v, ok := item[field].(*types.AttributeValueMemberS); ok && v.Value == value {
			items = append(items, item)
			if limit > 0 && int32(len(items)) >= limit {
				break
			}
		}
	}
	return items, nil
}

func (f *fakeDynamo) ScanWithFilter(ctx context.Context, tableName string, filterFunc func(map[string]types.AttributeValue) bool, excludeFields map[string]string, result interface{}) error {
	f.mu.Lock()
	var filtered []map[string]types.AttributeValue
	for _, item := range f.table(tableName) {
		excluded := false
		for field, value := range excludeFields {
			if v, ok := item[field].(*types.AttributeValueMemberS); ok && v.Value == value {
				excluded = true
				break
			}
		}
		if excluded {
			continue
		}
		if filterFunc == nil || filterFunc(item) {
			filtered = append(filtered, item)
		}
	}
	f.mu.Unlock()

	return attributevalue.UnmarshalListOfMaps(filtered, result)
}
