package persist

import (
	"context"
	"time"

	"github.com/l1jgo/asteroids/internal/stats"
	"go.uber.org/zap"
)

// RoundWriter is the write side of the ledger. RoundRepo implements it.
type RoundWriter interface {
	InsertBatch(ctx context.Context, rows []RoundRow) error
}

// Ledger buffers finished rounds on the game loop and writes them in batches.
// Rows that fail to write stay queued for the next Flush.
type Ledger struct {
	runID   string
	repo    RoundWriter
	pending []RoundRow
	log     *zap.Logger
}

func NewLedger(runID string, repo RoundWriter, log *zap.Logger) *Ledger {
	return &Ledger{runID: runID, repo: repo, log: log}
}

// Add queues a summary. Safe to pass as the RoundTracker callback.
func (l *Ledger) Add(s stats.RoundSummary) {
	l.pending = append(l.pending, RoundRowFrom(l.runID, s))
}

// Pending returns the number of rounds not yet written.
func (l *Ledger) Pending() int { return len(l.pending) }

// Flush writes every queued round.
func (l *Ledger) Flush(ctx context.Context) error {
	if len(l.pending) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := l.repo.InsertBatch(ctx, l.pending); err != nil {
		l.log.Error("round ledger write failed", zap.Int("pending", len(l.pending)), zap.Error(err))
		return err
	}
	l.log.Debug("round ledger written", zap.Int("rounds", len(l.pending)))
	l.pending = l.pending[:0]
	return nil
}
