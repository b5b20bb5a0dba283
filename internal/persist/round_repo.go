package persist

import (
	"context"
	"fmt"
	"time"

	"github.com/l1jgo/asteroids/internal/stats"
)

// RoundRow represents a row from the rounds table.
type RoundRow struct {
	RunID            string
	Round            int32
	StartFrame       int64
	EndFrame         int64
	DurationMs       int64
	ProjectilesFired int32
	HazardsSpawned   int32
	HazardsDestroyed int32
	EndedAt          time.Time
}

// RoundRowFrom maps a finished round of run runID onto a table row.
func RoundRowFrom(runID string, s stats.RoundSummary) RoundRow {
	return RoundRow{
		RunID:            runID,
		Round:            int32(s.Round),
		StartFrame:       int64(s.StartFrame),
		EndFrame:         int64(s.EndFrame),
		DurationMs:       s.Duration.Milliseconds(),
		ProjectilesFired: int32(s.ProjectilesFired),
		HazardsSpawned:   int32(s.HazardsSpawned),
		HazardsDestroyed: int32(s.HazardsDestroyed),
		EndedAt:          s.EndedAt.UTC(),
	}
}

// RoundRepo stores finished round summaries. It only ever appends; nothing
// reads rounds back.
type RoundRepo struct {
	db *DB
}

func NewRoundRepo(db *DB) *RoundRepo {
	return &RoundRepo{db: db}
}

// InsertBatch writes rows in a single transaction. A round already recorded
// for the same run is left as is.
func (r *RoundRepo) InsertBatch(ctx context.Context, rows []RoundRow) error {
	if len(rows) == 0 {
		return nil
	}
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("rounds begin: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, row := range rows {
		if _, err := tx.Exec(ctx,
			`INSERT INTO rounds (run_id, round, start_frame, end_frame, duration_ms,
			                     projectiles_fired, hazards_spawned, hazards_destroyed, ended_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			 ON CONFLICT (run_id, round) DO NOTHING`,
			row.RunID, row.Round, row.StartFrame, row.EndFrame, row.DurationMs,
			row.ProjectilesFired, row.HazardsSpawned, row.HazardsDestroyed, row.EndedAt,
		); err != nil {
			return fmt.Errorf("rounds insert: %w", err)
		}
	}

	return tx.Commit(ctx)
}
