package models

// Conversation links two users and the ordered list of messages between them.
// Users are stored in an array for the future possibility of group chat.
type Conversation struct {
	ConversationID string   `dynamodbav:"conversationId" json:"id"`
	Date           string   `dynamodbav:"date" json:"date"`
	UserIDs        []string `dynamodbav:"userIds" json:"users"`
	MessageIDs     []string `dynamodbav:"messageIds" json:"messages"`
}

// HasParticipant reports whether userID takes part in the conversation
func (c *Conversation) HasParticipant(userID string) bool {
	for _, id := range c.UserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// ConversationView is a conversation with users and messages resolved to
// display form
type ConversationView struct {
	ID       string        `json:"id"`
	Date     string        `json:"date"`
	Users    []UserRef     `json:"users"`
	Messages []MessageView `json:"messages"`
}

// ConversationsTable is the DynamoDB table name for conversations
const ConversationsTable = "Conversations"
