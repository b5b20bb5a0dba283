package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/l1jgo/asteroids/internal/config"
	"github.com/l1jgo/asteroids/internal/data"
	"github.com/l1jgo/asteroids/internal/game"
	"github.com/l1jgo/asteroids/internal/input"
	"github.com/l1jgo/asteroids/internal/persist"
	"github.com/l1jgo/asteroids/internal/scripting"
	"github.com/l1jgo/asteroids/internal/stats"
	"github.com/l1jgo/asteroids/internal/system"
	"github.com/l1jgo/asteroids/internal/telemetry"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ledgerFlushInterval is how many ticks pass between round ledger writes.
const ledgerFlushInterval = 600

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config
	cfgPath := "config/game.toml"
	if p := os.Getenv("ASTEROIDS_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner()
	runID := time.Now().UTC().Format("20060102T150405.000")

	// 3. Optional round ledger
	var ledger *persist.Ledger
	if cfg.Database.Enabled {
		printSection("Database")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		db, err := persist.NewDB(ctx, cfg.Database, log)
		if err != nil {
			cancel()
			return fmt.Errorf("database: %w", err)
		}
		defer db.Close()
		printOK("PostgreSQL connected")

		version, err := persist.RunMigrations(ctx, db.Pool)
		cancel()
		if err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		printOK(fmt.Sprintf("schema at version %d", version))
		ledger = persist.NewLedger(runID, persist.NewRoundRepo(db), log)
		fmt.Println()
	}

	// 4. Load data and scripts
	printSection("Data")
	archetypes, err := data.LoadArchetypes(cfg.Data.Archetypes)
	if err != nil {
		return fmt.Errorf("load archetypes: %w", err)
	}
	printOK(fmt.Sprintf("archetypes from %s", cfg.Data.Archetypes))

	luaEngine, err := scripting.NewEngine(cfg.Data.Scripts, log)
	if err != nil {
		return fmt.Errorf("lua engine: %w", err)
	}
	defer luaEngine.Close()
	printOK(fmt.Sprintf("lua scripts from %s", cfg.Data.Scripts))

	var scaler system.DamageScaler
	if luaEngine.Has("calc_collision_damage") {
		scaler = luaEngine
	}
	autopilot := cfg.Game.Autopilot && luaEngine.Has("pilot_controls")
	fmt.Println()

	// 5. Build the kernel
	metrics, err := telemetry.New()
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	seed := cfg.Game.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	k, err := game.New(game.Deps{
		Archetypes: archetypes,
		Scaler:     scaler,
		Rand:       rand.New(rand.NewSource(seed)),
		Metrics:    metrics,
		Trace:      cfg.Debug.TracePositions,
		Log:        log,
	})
	if err != nil {
		return fmt.Errorf("kernel: %w", err)
	}
	rounds := stats.NewRoundTracker(k.Bus(), func(s stats.RoundSummary) {
		log.Info("round over",
			zap.Int("round", s.Round),
			zap.Duration("duration", s.Duration),
			zap.Int("fired", s.ProjectilesFired),
			zap.Int("destroyed", s.HazardsDestroyed),
		)
		if ledger != nil {
			ledger.Add(s)
		}
	})

	// 6. Start game loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Game.TickRate)
	defer ticker.Stop()

	printSection("Running")
	printReady(fmt.Sprintf("game loop started (tick: %s, seed: %d)", cfg.Game.TickRate, seed))
	if autopilot {
		printReady("autopilot engaged")
	}
	fmt.Println()

	var tracker input.Tracker
	last := time.Now()
	for {
		select {
		case now := <-ticker.C:
			var keys input.Keys
			if autopilot {
				keys = luaEngine.PilotKeys(k.PilotContext())
			}
			k.Advance(now.Sub(last), tracker.Update(keys))
			last = now

			if ledger != nil && k.Frame()%ledgerFlushInterval == 0 {
				// Flush logs failures itself and keeps the rows for the next try.
				if err := ledger.Flush(context.Background()); err != nil {
					log.Warn("round ledger write deferred", zap.Int("pending", ledger.Pending()))
				}
			}
			if cfg.Game.MaxFrames > 0 && k.Frame() >= cfg.Game.MaxFrames {
				log.Info("frame limit reached", zap.Uint64("frames", k.Frame()))
				return shutdown(k, rounds, ledger, metrics)
			}
		case sig := <-shutdownCh:
			log.Info("shutdown signal received", zap.String("signal", sig.String()))
			return shutdown(k, rounds, ledger, metrics)
		}
	}
}

func shutdown(k *game.Kernel, rounds *stats.RoundTracker, ledger *persist.Ledger, metrics *telemetry.Metrics) error {
	if ledger != nil {
		if err := ledger.Flush(context.Background()); err != nil {
			return fmt.Errorf("flush round ledger: %w", err)
		}
	}
	printSummary(k, rounds, metrics)
	return nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
