// Package mocks provides a hand-maintained testify mock for the events publisher.
package mocks

import (
	"context"

	"github.com/adamspay/pending-transactions/pkg/events"
	"github.com/stretchr/testify/mock"
)

// Publisher is a mock implementation of the events.Publisher interface.
type Publisher struct {
	mock.Mock
}

func (_m *Publisher) Publish(ctx context.Context, event events.Event) error {
	args := _m.Called(ctx, event)
	return args.Error(0)
}
