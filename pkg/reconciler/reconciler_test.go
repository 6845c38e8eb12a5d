package reconciler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/adamspay/pending-transactions/pkg/events"
	events_mocks "github.com/adamspay/pending-transactions/pkg/events/mocks"
	"github.com/adamspay/pending-transactions/pkg/models"
	storage_mocks "github.com/adamspay/pending-transactions/pkg/storage/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestReconcile_PartitionsAndDeletesExpired(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	pending := []models.Transaction{
		{Id: "tx1", UserId: "user1", Status: models.PENDING, ExpiresAt: now.Add(10 * time.Minute).Format(time.RFC3339)},
		{Id: "tx2", UserId: "user1", Status: models.PENDING, ExpiresAt: now.Add(-1 * time.Minute).Format(time.RFC3339)},
		{Id: "tx3", UserId: "user1", Status: models.PENDING, ExpiresAt: now.Add(25 * time.Minute).Format(time.RFC3339)},
	}

	mockStore := new(storage_mocks.ApiStore)
	mockStore.On("ListPendingTransactions", mock.Anything, "user1").Return(pending, nil)
	mockStore.On("DeleteTransaction", mock.Anything, "tx2").Return(nil).Once()

	mockPublisher := new(events_mocks.Publisher)
	mockPublisher.On("Publish", mock.Anything, mock.MatchedBy(func(e events.Event) bool {
		return e.Type == events.EventTransactionExpired
	})).Return(nil).Once()

	r := New(mockStore, mockPublisher, testLogger(), time.Minute)
	r.now = func() time.Time { return now }

	r.Reconcile(context.Background(), "user1")

	active := r.Snapshot()
	assert.Len(t, active, 2)
	assert.Equal(t, "tx1", active[0].Id)
	assert.Equal(t, "tx3", active[1].Id)
	mockStore.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestReconcile_QueryFailureKeepsPreviousSet(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	pending := []models.Transaction{
		{Id: "tx1", UserId: "user1", Status: models.PENDING, ExpiresAt: now.Add(10 * time.Minute).Format(time.RFC3339)},
	}

	mockStore := new(storage_mocks.ApiStore)
	mockStore.On("ListPendingTransactions", mock.Anything, "user1").Return(pending, nil).Once()
	mockStore.On("ListPendingTransactions", mock.Anything, "user1").Return(nil, errors.New("store unreachable")).Once()

	r := New(mockStore, nil, testLogger(), time.Minute)
	r.now = func() time.Time { return now }

	r.Reconcile(context.Background(), "user1")
	assert.Len(t, r.Snapshot(), 1)

	// The failed run must leave the stale-but-available set in place.
	r.Reconcile(context.Background(), "user1")
	assert.Len(t, r.Snapshot(), 1)
	mockStore.AssertExpectations(t)
}

func TestReconcile_DeleteFailureDoesNotBlockSiblingsOrPublication(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	pending := []models.Transaction{
		{Id: "tx1", UserId: "user1", Status: models.PENDING, ExpiresAt: now.Add(-1 * time.Minute).Format(time.RFC3339)},
		{Id: "tx2", UserId: "user1", Status: models.PENDING, ExpiresAt: now.Add(-2 * time.Minute).Format(time.RFC3339)},
		{Id: "tx3", UserId: "user1", Status: models.PENDING, ExpiresAt: now.Add(5 * time.Minute).Format(time.RFC3339)},
	}

	mockStore := new(storage_mocks.ApiStore)
	mockStore.On("ListPendingTransactions", mock.Anything, "user1").Return(pending, nil)
	mockStore.On("DeleteTransaction", mock.Anything, "tx1").Return(errors.New("delete failed")).Once()
	mockStore.On("DeleteTransaction", mock.Anything, "tx2").Return(nil).Once()

	r := New(mockStore, nil, testLogger(), time.Minute)
	r.now = func() time.Time { return now }

	r.Reconcile(context.Background(), "user1")

	active := r.Snapshot()
	assert.Len(t, active, 1)
	assert.Equal(t, "tx3", active[0].Id)
	mockStore.AssertExpectations(t)
}

func TestReconcile_MalformedDeadlineIsTreatedAsExpired(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	pending := []models.Transaction{
		{Id: "tx1", UserId: "user1", Status: models.PENDING, ExpiresAt: "not-a-timestamp"},
	}

	mockStore := new(storage_mocks.ApiStore)
	mockStore.On("ListPendingTransactions", mock.Anything, "user1").Return(pending, nil)
	mockStore.On("DeleteTransaction", mock.Anything, "tx1").Return(nil).Once()

	r := New(mockStore, nil, testLogger(), time.Minute)
	r.now = func() time.Time { return now }

	r.Reconcile(context.Background(), "user1")

	assert.Empty(t, r.Snapshot())
	mockStore.AssertExpectations(t)
}

func TestRun_SessionActivationAndLogout(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	pending := []models.Transaction{
		{Id: "tx1", UserId: "user1", Status: models.PENDING, ExpiresAt: now.Add(10 * time.Minute).Format(time.RFC3339)},
	}

	mockStore := new(storage_mocks.ApiStore)
	mockStore.On("ListPendingTransactions", mock.Anything, "user1").Return(pending, nil)

	r := New(mockStore, nil, testLogger(), time.Hour)
	r.now = func() time.Time { return now }

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	changes := make(chan *models.Session)
	done := make(chan struct{})
	go func() {
		r.Run(ctx, changes)
		close(done)
	}()

	changes <- &models.Session{UserId: "user1"}
	assert.Eventually(t, func() bool { return len(r.Snapshot()) == 1 }, time.Second, 10*time.Millisecond)

	changes <- nil
	assert.Eventually(t, func() bool { return len(r.Snapshot()) == 0 }, time.Second, 10*time.Millisecond)

	cancel()
	<-done
}

func TestRun_KickTriggersImmediateRun(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	mockStore := new(storage_mocks.ApiStore)
	first := []models.Transaction{
		{Id: "tx1", UserId: "user1", Status: models.PENDING, ExpiresAt: now.Add(10 * time.Minute).Format(time.RFC3339)},
		{Id: "tx2", UserId: "user1", Status: models.PENDING, ExpiresAt: now.Add(20 * time.Minute).Format(time.RFC3339)},
	}
	second := first[:1]
	mockStore.On("ListPendingTransactions", mock.Anything, "user1").Return(first, nil).Once()
	mockStore.On("ListPendingTransactions", mock.Anything, "user1").Return(second, nil)

	// Interval far in the future so only activation and the kick can trigger runs.
	r := New(mockStore, nil, testLogger(), time.Hour)
	r.now = func() time.Time { return now }

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	changes := make(chan *models.Session)
	go r.Run(ctx, changes)

	changes <- &models.Session{UserId: "user1"}
	assert.Eventually(t, func() bool { return len(r.Snapshot()) == 2 }, time.Second, 10*time.Millisecond)

	r.Kick()
	assert.Eventually(t, func() bool { return len(r.Snapshot()) == 1 }, time.Second, 10*time.Millisecond)
}
