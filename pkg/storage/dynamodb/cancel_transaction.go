package dynamodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/adamspay/pending-transactions/pkg/models"
	"github.com/adamspay/pending-transactions/pkg/storage"
)

// CancelTransaction moves a still-pending transaction to 'cancelled'. The
// status condition is enforced in the update itself so a concurrent settlement
// or expiry cannot be overwritten.
func (s *Store) CancelTransaction(ctx context.Context, txID string) error {
	tx, err := s.GetTransaction(ctx, txID)
	if err != nil {
		return fmt.Errorf("failed to get transaction for cancellation: %w", err)
	}

	if tx.Status != models.PENDING {
		return storage.ErrTransactionNotCancellable
	}

	nowAV, err := attributevalue.Marshal(s.now())
	if err != nil {
		return fmt.Errorf("failed to marshal timestamp for cancellation: %w", err)
	}

	input := &dynamodb.UpdateItemInput{
		TableName:           aws.String(s.TransactionsTableName),
		Key:                 map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: txID}},
		UpdateExpression:    aws.String("SET #status = :cancelled_status, updated_at = :now"),
		ConditionExpression: aws.String("#status = :pending_status"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cancelled_status": &types.AttributeValueMemberS{Value: string(models.CANCELLED)},
			":pending_status":   &types.AttributeValueMemberS{Value: string(models.PENDING)},
			":now":              nowAV,
		},
	}

	if _, err := s.Client.UpdateItem(ctx, input); err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return storage.ErrTransactionNotCancellable
		}
		return fmt.Errorf("failed to cancel transaction %s: %w", txID, err)
	}

	return nil
}
