package dynamodb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/adamspay/pending-transactions/pkg/models"
	"github.com/adamspay/pending-transactions/pkg/storage/dynamodb/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCreateTransaction(t *testing.T) {
	fixedNow := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	newTx := func() *models.Transaction {
		return &models.Transaction{
			UserId:       "user1",
			FromAmount:   150,
			ToAmount:     230250,
			FromCurrency: "USD",
			ToCurrency:   "NGN",
		}
	}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{
			Client:                mockClient,
			TransactionsTableName: "transactions",
			ExpiryWindow:          30 * time.Minute,
			now:                   func() time.Time { return fixedNow },
		}

		var captured *dynamodb.PutItemInput
		mockClient.On("PutItem", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			captured = args.Get(1).(*dynamodb.PutItemInput)
		}).Return(&dynamodb.PutItemOutput{}, nil)

		created, err := store.CreateTransaction(context.Background(), newTx())

		assert.NoError(t, err)
		assert.NotEmpty(t, created.Id)
		assert.Equal(t, models.PENDING, created.Status)
		assert.Equal(t, fixedNow.Add(30*time.Minute).Format(time.RFC3339), created.ExpiresAt)
		assert.Equal(t, "attribute_not_exists(id)", *captured.ConditionExpression)

		status := captured.Item["status"].(*types.AttributeValueMemberS)
		assert.Equal(t, string(models.PENDING), status.Value)
		mockClient.AssertExpectations(t)
	})

	t.Run("Put Error", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{
			Client:                mockClient,
			TransactionsTableName: "transactions",
			ExpiryWindow:          30 * time.Minute,
			now:                   time.Now,
		}

		mockClient.On("PutItem", mock.Anything, mock.Anything).Return(nil, errors.New("put failed"))

		_, err := store.CreateTransaction(context.Background(), newTx())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create transaction")
		mockClient.AssertExpectations(t)
	})
}
