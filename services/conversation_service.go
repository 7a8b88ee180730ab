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
	"kindred_server/utils"
)

// ConversationService creates two-party conversations and appends messages
// to them. Message append is two sequential writes (message row, then the
// conversation's message list) with no rollback on failure.
type ConversationService struct {
	Dynamo DynamoAPI
}

// CreateConversation starts a conversation between the caller and a
// recipient. Nothing prevents duplicate conversations between the same pair.
func (cs *ConversationService) CreateConversation(ctx context.Context, callerID, recipientID string) (*models.Conversation, error) {
	conversation := models.Conversation{
		ConversationID: uuid.New().String(),
		Date:           time.Now().UTC().Format(time.RFC3339),
		UserIDs:        []string{callerID, recipientID},
		MessageIDs:     []string{},
	}

	if err := cs.Dynamo.PutItem(ctx, models.ConversationsTable, conversation); err != nil {
		return nil, err
	}

	log.Printf("Created conversation %s between %s and %s", conversation.ConversationID, callerID, recipientID)
	return &conversation, nil
}

// ListConversations returns every conversation the caller takes part in,
// excluding any that include a user on the caller's block list, with users
// and messages resolved to display form.
func (cs *ConversationService) ListConversations(ctx context.Context, caller *models.User) ([]models.ConversationView, error) {
	include := func(item map[string]types.AttributeValue) bool {
		if !utils.ContainsString(item, "userIds", caller.UserID) {
			return false
		}
		for _, userID := range utils.ExtractStringList(item, "userIds") {
			if caller.HasBlocked(userID) {
				return false
			}
		}
		return true
	}

	var conversations []models.Conversation
	if err := cs.Dynamo.ScanWithFilter(ctx, models.ConversationsTable, include, nil, &conversations); err != nil {
		return nil, err
	}

	views := []models.ConversationView{}
	for i := range conversations {
		view, err := cs.resolveConversation(ctx, &conversations[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

// GetConversation fetches a single conversation by id. Conversations the
// caller does not take part in are reported as absent.
func (cs *ConversationService) GetConversation(ctx context.Context, caller *models.User, conversationID string) (*models.ConversationView, error) {
	conversation, err := cs.getConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conversation.HasParticipant(caller.UserID) {
		return nil, models.NewNotFoundError()
	}
	return cs.resolveConversation(ctx, conversation)
}

// PostMessage appends a message to an existing conversation, stamped with
// the sender and the current time.
func (cs *ConversationService) PostMessage(ctx context.Context, senderID, conversationID, text string) (*models.Message, error) {
	conversation, err := cs.getConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	message := models.Message{
		ConversationID: conversationID,
		MessageID:      uuid.New().String(),
		SenderID:       senderID,
		Date:           time.Now().UTC().Format(time.RFC3339),
		Text:           text,
	}

	if err := cs.Dynamo.PutItem(ctx, models.MessagesTable, message); err != nil {
		return nil, err
	}

	conversation.MessageIDs = append(conversation.MessageIDs, message.MessageID)
	if err := cs.Dynamo.PutItem(ctx, models.ConversationsTable, *conversation); err != nil {
		return nil, err
	}

	return &message, nil
}

func (cs *ConversationService) getConversation(ctx context.Context, conversationID string) (*models.Conversation, error) {
	key := map[string]types.AttributeValue{
		"conversationId": &types.AttributeValueMemberS{Value: conversationID},
	}

	item, err := cs.Dynamo.GetItem(ctx, models.ConversationsTable, key)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, models.NewNotFoundError()
		}
		return nil, err
	}

	var conversation models.Conversation
	if err := attributevalue.UnmarshalMap(item, &conversation); err != nil {
		return nil, fmt.Errorf("failed to unmarshal conversation: %w", err)
	}
	return &conversation, nil
}

func (cs *ConversationService) resolveConversation(ctx context.Context, conversation *models.Conversation) (*models.ConversationView, error) {
	view := &models.ConversationView{
		ID:       conversation.ConversationID,
		Date:     conversation.Date,
		Users:    []models.UserRef{},
		Messages: []models.MessageView{},
	}

	userRefs := map[string]models.UserRef{}
	for _, userID := range conversation.UserIDs {
		ref := cs.getUserRef(ctx, userID)
		userRefs[userID] = ref
		view.Users = append(view.Users, ref)
	}

	messages, err := cs.getMessages(ctx, conversation)
	if err != nil {
		return nil, err
	}
	for _, message := range messages {
		sender, ok := userRefs[message.SenderID]
		if !ok {
			sender = cs.getUserRef(ctx, message.SenderID)
		}
		view.Messages = append(view.Messages, models.MessageView{
			ID:     message.MessageID,
			Sender: sender,
			Date:   message.Date,
			Text:   message.Text,
		})
	}

	return view, nil
}

func (cs *ConversationService) getMessages(ctx context.Context, conversation *models.Conversation) ([]models.Message, error) {
	keyCondition := "#conversationId = :conversationId"
	expressionValues := map[string]types.AttributeValue{
		":conversationId": &types.AttributeValueMemberS{Value: conversation.ConversationID},
	}
	expressionNames := map[string]string{
		"#conversationId": "conversationId",
	}

	items, err := cs.Dynamo.QueryItems(ctx, models.MessagesTable, keyCondition, expressionValues, expressionNames, 100)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}

	var fetched []models.Message
	if err := attributevalue.UnmarshalListOfMaps(items, &fetched); err != nil {
		return nil, fmt.Errorf("failed to parse messages: %w", err)
	}

	// The conversation's messageIds list is the source of append order;
	// message dates only have one-second granularity. Message rows missing
	// from the list (a failed list update after the message write) are not
	// part of the conversation.
	byID := make(map[string]models.Message, len(fetched))
	for _, message := range fetched {
		byID[message.MessageID] = message
	}
	messages := make([]models.Message, 0, len(conversation.MessageIDs))
	for _, messageID := range conversation.MessageIDs {
		if message, ok := byID[messageID]; ok {
			messages = append(messages, message)
		}
	}
	return messages, nil
}

func (cs *ConversationService) getUserRef(ctx context.Context, userID string) models.UserRef {
	key := map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}
	item, err := cs.Dynamo.GetItem(ctx, models.UsersTable, key)
	if err != nil {
		return models.UserRef{ID: userID}
	}
	return models.UserRef{
		ID:         utils.ExtractString(item, "userId"),
		ScreenName: utils.ExtractString(item, "screenName"),
		Location:   utils.ExtractString(item, "location"),
	}
}
