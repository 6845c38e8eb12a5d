package dynamodb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/adamspay/pending-transactions/pkg/models"
	"github.com/google/uuid"
)

// CreateTransaction creates a new pending transaction record with a
// server-assigned ID and expiry deadline.
func (s *Store) CreateTransaction(ctx context.Context, tx *models.Transaction) (*models.Transaction, error) {
	// Complete the transaction object with server-side details. The deadline
	// is written in the canonical RFC3339 string shape; older documents may
	// still carry other encodings, which the expiry package normalizes on read.
	now := s.now()
	tx.Id = uuid.New().String()
	tx.Status = models.PENDING
	tx.CreatedAt = now
	tx.UpdatedAt = now
	tx.ExpiresAt = now.Add(s.ExpiryWindow).Format(time.RFC3339)

	txAV, err := attributevalue.MarshalMap(tx)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal transaction: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(s.TransactionsTableName),
		Item:                txAV,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	}

	if _, err := s.Client.PutItem(ctx, input); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return tx, nil
}
