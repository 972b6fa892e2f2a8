package publisher

import (
	"context"

	"github.com/nickisanders/CPEService/internal/model"
)

// Publisher defines the interface for publishing certificate mint events.
type Publisher interface {
	// Connect establishes a connection with the message broker
	Connect(ctx context.Context) error

	// Close closes the connection to the message broker
	Close() error

	// PublishMint publishes a mint event to the message broker
	PublishMint(ctx context.Context, event *model.MintEvent) error
}

// Nop is the publisher used when no broker is configured; every
// operation succeeds without doing anything.
type Nop struct{}

func (Nop) Connect(ctx context.Context) error                             { return nil }
func (Nop) Close() error                                                  { return nil }
func (Nop) PublishMint(ctx context.Context, event *model.MintEvent) error { return nil }
