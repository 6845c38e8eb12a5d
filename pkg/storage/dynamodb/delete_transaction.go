package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// DeleteTransaction removes a transaction record by its ID. DynamoDB treats
// deleting an absent item as success, which keeps expired-transaction cleanup
// idempotent across overlapping reconciliation runs.
func (s *Store) DeleteTransaction(ctx context.Context, txID string) error {
	key, err := attributevalue.MarshalMap(map[string]string{"id": txID})
	if err != nil {
		return fmt.Errorf("failed to marshal transaction ID: %w", err)
	}

	input := &dynamodb.DeleteItemInput{
		TableName: aws.String(s.TransactionsTableName),
		Key:       key,
	}

	if _, err := s.Client.DeleteItem(ctx, input); err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", txID, err)
	}

	return nil
}
