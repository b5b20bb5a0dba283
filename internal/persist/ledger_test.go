package persist

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/l1jgo/asteroids/internal/stats"
)

type fakeWriter struct {
	batches [][]RoundRow
	err     error
}

func (f *fakeWriter) InsertBatch(_ context.Context, rows []RoundRow) error {
	if f.err != nil {
		return f.err
	}
	f.batches = append(f.batches, append([]RoundRow(nil), rows...))
	return nil
}

func TestRoundRowFrom(t *testing.T) {
	ended := time.Date(2026, 3, 4, 5, 6, 7, 0, time.FixedZone("x", 3600))
	row := RoundRowFrom("run-1", stats.RoundSummary{
		Round:            3,
		StartFrame:       10,
		EndFrame:         250,
		Duration:         4*time.Second + 250*time.Millisecond,
		ProjectilesFired: 12,
		HazardsSpawned:   5,
		HazardsDestroyed: 2,
		EndedAt:          ended,
	})

	assert.Equal(t, RoundRow{
		RunID:            "run-1",
		Round:            3,
		StartFrame:       10,
		EndFrame:         250,
		DurationMs:       4250,
		ProjectilesFired: 12,
		HazardsSpawned:   5,
		HazardsDestroyed: 2,
		EndedAt:          ended.UTC(),
	}, row)
}

func TestLedger_FlushBatches(t *testing.T) {
	w := &fakeWriter{}
	l := NewLedger("run", w, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, l.Flush(ctx))
	assert.Empty(t, w.batches, "nothing to write")

	l.Add(stats.RoundSummary{Round: 1})
	l.Add(stats.RoundSummary{Round: 2})
	require.NoError(t, l.Flush(ctx))
	require.Len(t, w.batches, 1)
	assert.Len(t, w.batches[0], 2)
	assert.Zero(t, l.Pending())
}

func TestLedger_KeepsRowsOnError(t *testing.T) {
	w := &fakeWriter{err: errors.New("connection refused")}
	l := NewLedger("run", w, zap.NewNop())
	l.Add(stats.RoundSummary{Round: 1})

	assert.Error(t, l.Flush(context.Background()))
	assert.Equal(t, 1, l.Pending())

	w.err = nil
	require.NoError(t, l.Flush(context.Background()))
	assert.Zero(t, l.Pending())
	assert.Equal(t, int32(1), w.batches[0][0].Round)
}
