package testutil

import (
	appboard "github.com/housefest/board-service/internal/app/board"
	"github.com/housefest/board-service/internal/domain/board"
	"github.com/housefest/board-service/internal/store"
)

// SampleLabel is the last-updated label stamped by NewBoardService.
const SampleLabel = "09:00:00 AM"

// NewBoardService builds a board service over SampleLayout. A nil snap leaves the store
// in its not-ready state.
func NewBoardService(snap *board.Snapshot) (*appboard.Service, *store.MemoryStore) {
	ms := store.NewMemoryStore()
	if snap != nil {
		ms.Replace(*snap, snap.FetchedAt, SampleLabel)
	}
	return appboard.NewService(ms, SampleLayout()), ms
}
