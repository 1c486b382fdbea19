package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/l1jgo/arena/internal/config"
	"github.com/l1jgo/arena/internal/data"
	"github.com/l1jgo/arena/internal/game"
	"github.com/l1jgo/arena/internal/host"
	"github.com/l1jgo/arena/internal/persist"
	"github.com/l1jgo/arena/internal/scripting"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config
	cfgPath := "config/arena.toml"
	if p := os.Getenv("ARENA_CONFIG"); p != "" {
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

	printBanner(cfg.Data.Level)

	// 3. Load data tables and level
	printSection("Data")
	tables, err := data.LoadTables(cfg.Data.Weapons, cfg.Data.Skills, cfg.Data.Monsters)
	if err != nil {
		return fmt.Errorf("load tables: %w", err)
	}
	printStat("Weapons", tables.Weapons.Count())
	printStat("Skills", tables.Skills.Count())
	printStat("Monster templates", tables.Monsters.Count())

	level, err := data.LoadLevel(cfg.Data.Level)
	if err != nil {
		return fmt.Errorf("load level: %w", err)
	}
	printStat("Polygons", len(level.Polygons))
	printStat("Monsters", len(level.Monsters))
	fmt.Println()

	// 4. Lua scripts
	var lua *scripting.Engine
	if cfg.Scripting.Enabled {
		lua, err = scripting.NewEngine(cfg.Scripting.Dir, log)
		if err != nil {
			return fmt.Errorf("lua engine: %w", err)
		}
		defer lua.Close()
		printOK(fmt.Sprintf("Lua scripts loaded (%s)", cfg.Scripting.Dir))
	}

	// 5. Host: log every notification, optionally record the combat log
	var h host.Host = host.NewLogger(log)
	var combat *persist.CombatLog
	if cfg.Recorder.Enabled {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		db, err := persist.NewDB(ctx, cfg.Recorder, log)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer db.Close()
		if err := persist.RunMigrations(ctx, db.Pool); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		printOK("PostgreSQL connected")

		runID := fmt.Sprintf("%s-%d", level.Name, time.Now().Unix())
		combat = persist.NewCombatLog(h, persist.NewCombatLogRepo(db), runID, cfg.Recorder.FlushEvery, log)
		h = combat
	}

	// 6. Create the game
	g, err := game.New(cfg, log, h, tables, level, lua)
	if err != nil {
		return fmt.Errorf("create game: %w", err)
	}
	defer g.Close()

	// 7. Tick loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Simulation.TickRate)
	defer ticker.Stop()

	printSection("Simulation")
	printReady(fmt.Sprintf("game loop started (tick: %s)", cfg.Simulation.TickRate))
	fmt.Println()

	ctx := context.Background()
	for {
		select {
		case <-ticker.C:
			g.Advance(cfg.Simulation.TickRate)
			if combat != nil {
				if err := combat.EndTick(ctx); err != nil {
					log.Warn("combat log flush failed", zap.Error(err))
				}
			}
			if cfg.Simulation.MaxTicks > 0 && g.Ticks() >= uint64(cfg.Simulation.MaxTicks) {
				log.Info("max ticks reached", zap.Uint64("ticks", g.Ticks()), zap.Float64("clock", g.Clock()))
				return flushCombat(ctx, combat)
			}
		case sig := <-shutdownCh:
			log.Info("shutdown signal received", zap.String("signal", sig.String()))
			return flushCombat(ctx, combat)
		}
	}
}

func flushCombat(ctx context.Context, combat *persist.CombatLog) error {
	if combat == nil {
		return nil
	}
	if err := combat.Flush(ctx); err != nil {
		return fmt.Errorf("final combat log flush: %w", err)
	}
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
