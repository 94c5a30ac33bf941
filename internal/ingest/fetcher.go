// Package ingest turns one provider read into an immutable board snapshot.
package ingest

import (
	"context"
	"log/slog"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/housefest/board-service/internal/announcements"
	"github.com/housefest/board-service/internal/domain/board"
	"github.com/housefest/board-service/internal/gallery"
	"github.com/housefest/board-service/internal/logging"
	"github.com/housefest/board-service/internal/providers"
	"github.com/housefest/board-service/internal/schedule"
)

// Fetcher runs a single fetch cycle against a source.
type Fetcher struct {
	source   providers.SourceProvider
	table    schedule.Table
	resolver gallery.Resolver
	logger   *slog.Logger
}

func NewFetcher(source providers.SourceProvider, table schedule.Table, resolver gallery.Resolver, logger *slog.Logger) *Fetcher {
	return &Fetcher{
		source:   source,
		table:    table,
		resolver: resolver,
		logger:   logger,
	}
}

// FetchSnapshot reads every range once and builds a snapshot stamped with hint.
// On any source error it returns the empty snapshot together with the error; callers
// decide whether to keep their previous snapshot.
func (f *Fetcher) FetchSnapshot(ctx context.Context, hint time.Time) (board.Snapshot, error) {
	if f == nil || f.source == nil {
		return board.EmptySnapshot(), providers.ErrProviderUnavailable
	}

	raw, err := f.source.FetchRaw(ctx, hint)
	if err != nil {
		return board.EmptySnapshot(), crerr.Wrap(err, "fetch snapshot")
	}

	snap := Build(raw, f.table, f.resolver, hint)
	logging.Debug(logging.FromContext(ctx, f.logger), "snapshot built",
		slog.Int("match_rows", len(snap.MatchRows)),
		slog.Int("announcements", len(snap.Announcements)),
		slog.Int("gallery", len(snap.Gallery)),
		slog.Int("events", len(snap.Schedule)),
	)
	return snap, nil
}

// Build is the pure transformation from raw rows to a snapshot.
func Build(raw board.RawData, table schedule.Table, resolver gallery.Resolver, fetchedAt time.Time) board.Snapshot {
	return board.Snapshot{
		MatchRows:     board.ParseMatchRows(raw.MatchRows),
		OverallRows:   board.ParseOverallRows(raw.OverallRows),
		Announcements: announcements.Parse(raw.Announcements, fetchedAt),
		Gallery:       resolver.Resolve(raw.Files),
		Schedule:      schedule.Parse(raw.ScheduleRows, table),
		FetchedAt:     fetchedAt,
	}
}
