package server

import (
	"context"

	"github.com/housefest/board-service/internal/poller"
)

// Poller defines the scheduler behavior needed by the server.
type Poller interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() poller.Status
	Trigger() bool
}
