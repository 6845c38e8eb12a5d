package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/adamspay/pending-transactions/pkg/events"
	"github.com/adamspay/pending-transactions/pkg/expiry"
	"github.com/adamspay/pending-transactions/pkg/storage"
	dydbstore "github.com/adamspay/pending-transactions/pkg/storage/dynamodb"
	"github.com/joho/godotenv"
)

var store storage.SweepStore
var publisher events.Publisher

func init() {
	// Load environment variables for local testing.
	godotenv.Load()

	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := dynamodb.NewFromConfig(cfg)

	transactionsTable := os.Getenv("DYNAMODB_TRANSACTIONS_TABLE_NAME")
	if transactionsTable == "" {
		log.Fatal("DYNAMODB_TRANSACTIONS_TABLE_NAME environment variable not set")
	}
	store = dydbstore.New(dbClient, transactionsTable, 0)

	queueURL := os.Getenv("SQS_EVENTS_QUEUE_URL")
	if queueURL == "" {
		log.Println("SQS_EVENTS_QUEUE_URL not set, expiry events will be discarded")
		publisher = events.NoOpPublisher{}
		return
	}
	publisher = events.NewSQSPublisher(sqs.NewFromConfig(cfg), queueURL)
}

// HandleRequest is triggered by an EventBridge Schedule. It sweeps every
// pending transaction across all users and removes the ones whose deadline
// has passed. Entries with unreadable deadlines count as expired.
func HandleRequest(ctx context.Context) error {
	log.Println("Starting expiry sweep of pending transactions...")

	pendingTxs, err := store.ListAllPendingTransactions(ctx)
	if err != nil {
		log.Printf("ERROR: failed to list pending transactions: %v", err)
		return err
	}

	now := time.Now()
	expired := 0
	for _, tx := range pendingTxs {
		if !expiry.Until(tx.ExpiresAt, now).Expired {
			continue
		}
		expired++

		if err := store.DeleteTransaction(ctx, tx.Id); err != nil {
			log.Printf("ERROR: failed to delete expired transaction %s: %v", tx.Id, err)
			// Continue to the next transaction, don't let one failure stop the whole batch.
			continue
		}

		event := events.Event{
			Type: events.EventTransactionExpired,
			Payload: events.TransactionExpiredPayload{
				TransactionID: tx.Id,
				UserID:        tx.UserId,
				ExpiredAt:     now,
			},
		}
		if err := publisher.Publish(ctx, event); err != nil {
			log.Printf("ERROR: failed to publish expiry event for transaction %s: %v", tx.Id, err)
		}
		log.Printf("Removed expired transaction %s", tx.Id)
	}

	log.Printf("Expiry sweep finished: %d pending, %d expired.", len(pendingTxs), expired)
	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
