package dynamodb

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/adamspay/pending-transactions/pkg/storage"
)

// DynamoDBAPI captures the subset of the DynamoDB client used by the store,
// so tests can substitute a mock.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// Store implements the Storage interface using AWS DynamoDB.
type Store struct {
	Client                DynamoDBAPI
	TransactionsTableName string

	// ExpiryWindow is the deadline offset assigned to new transactions.
	// The persisted configuration unit is minutes.
	ExpiryWindow time.Duration

	// now is swappable in tests.
	now func() time.Time
}

// New creates a new Store.
func New(client DynamoDBAPI, transactionsTable string, expiryWindow time.Duration) *Store {
	return &Store{
		Client:                client,
		TransactionsTableName: transactionsTable,
		ExpiryWindow:          expiryWindow,
		now:                   time.Now,
	}
}

// Make sure we conform to the interface
var _ storage.Storage = (*Store)(nil)

const (
	userIDIndex = "user_id-index"
	statusIndex = "status-created_at-index"
)
