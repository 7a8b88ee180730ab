package models

// InterestUser is a many-to-many association row between an interest and a
// user. A separate table is used instead of embedding user lists inside the
// interest records because of performance issues with large embedded arrays.
type InterestUser struct {
	InterestID    string `dynamodbav:"interestId" json:"interestId"`
	UserID        string `dynamodbav:"userId" json:"userId"`
	AssociationID string `dynamodbav:"associationId" json:"associationId"`
}

// InterestUsersTable is the DynamoDB table name for interest-user associations
const InterestUsersTable = "InterestUsers"

// InterestUserIDIndex is the GSI used to list a user's association rows
const InterestUserIDIndex = "userId-index"
