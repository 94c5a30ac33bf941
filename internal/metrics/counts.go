package metrics

import "github.com/housefest/board-service/internal/domain/board"

// CountSnapshot summarises the collection sizes of snap.
func CountSnapshot(snap board.Snapshot) SnapshotCounts {
	return SnapshotCounts{
		MatchRows:     len(snap.MatchRows),
		OverallRows:   len(snap.OverallRows),
		Announcements: len(snap.Announcements),
		Gallery:       len(snap.Gallery),
		Events:        len(snap.Schedule),
	}
}
