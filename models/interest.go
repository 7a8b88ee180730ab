package models

// Interest is a canonical catalog entry keyed by an external Wikipedia page id.
// Entries are created the first time any user adds the page id and are never
// deleted, even after the last user removes the reference.
type Interest struct {
	InterestID string `dynamodbav:"interestId" json:"id"`
	WikiPageID string `dynamodbav:"wikiPageId" json:"wikiPageId"`
	Name       string `dynamodbav:"name" json:"name"`
	CreatedAt  string `dynamodbav:"createdAt" json:"-"`
}

// InterestsTable is the DynamoDB table name for the interest catalog
const InterestsTable = "Interests"

// WikiPageIDIndex is the GSI used to deduplicate catalog entries
const WikiPageIDIndex = "wikiPageId-index"
