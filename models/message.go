package models

// Message is a single direct message inside a conversation
type Message struct {
	ConversationID string `dynamodbav:"conversationId" json:"conversationId"`
	MessageID      string `dynamodbav:"messageId" json:"id"`
	SenderID       string `dynamodbav:"senderId" json:"senderId"`
	Date           string `dynamodbav:"date" json:"date"`
	Text           string `dynamodbav:"text" json:"text"`
}

// MessageView is a message with the sender resolved to display form
type MessageView struct {
	ID     string  `json:"id"`
	Sender UserRef `json:"sender"`
	Date   string  `json:"date"`
	Text   string  `json:"text"`
}

// MessagesTable is the DynamoDB table name for messages
const MessagesTable = "Messages"
