package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/l1jgo/typereg/internal/config"
	"github.com/l1jgo/typereg/internal/core/ecs"
	"github.com/l1jgo/typereg/internal/core/event"
	coresys "github.com/l1jgo/typereg/internal/core/system"
	"github.com/l1jgo/typereg/internal/data"
	"github.com/l1jgo/typereg/internal/metrics"
	"github.com/l1jgo/typereg/internal/scripting"
	"github.com/l1jgo/typereg/internal/system"
	"github.com/l1jgo/typereg/internal/world"
)

func main() {
	cfgPath := "config/regsim.toml"
	if p := os.Getenv("REGSIM_CONFIG"); p != "" {
		cfgPath = p
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfgPath); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Display helpers ─────────────────────────────────────────────

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

// ── Simulation ──────────────────────────────────────────────────

func run(ctx context.Context, cfgPath string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	ecsWorld := ecs.NewWorld(ecs.Options{
		Capacity: cfg.Registry.InitialCapacity,
		Checks:   cfg.Registry.Checks,
		Log:      log.Named("ecs"),
	})
	defer ecsWorld.Table().Reset()

	bus := event.NewBus()
	system.SubscribeLogging(bus, log)
	state := world.NewState(ecsWorld, bus, log)

	var scenario *data.Scenario
	if cfg.Sim.Scenario != "" {
		scenario, err = data.LoadScenario(cfg.Sim.Scenario)
		if err != nil {
			return err
		}
		log.Info("scenario loaded",
			zap.String("name", scenario.Name),
			zap.Uint64("last_tick", scenario.LastTick()))
	}

	var script *scripting.Engine
	if cfg.Sim.Script != "" {
		script = scripting.NewEngine(state, log.Named("lua"))
		defer script.Close()
		if err := script.LoadFile(cfg.Sim.Script); err != nil {
			return fmt.Errorf("script: %w", err)
		}
	}

	m := metrics.New()
	if cfg.Metrics.Enabled {
		go func() {
			if err := m.Serve(ctx, cfg.Metrics.BindAddress, log); err != nil {
				log.Error("metrics server", zap.Error(err))
			}
		}()
	}

	input := system.NewInputSystem(state, scenario, script, log)
	runner := coresys.NewRunner()
	runner.Register(input)
	runner.Register(system.NewEventDispatchSystem(bus))
	runner.Register(system.NewRenderSystem(state))
	runner.Register(system.NewCollisionSystem(state))
	runner.Register(system.NewMetricsSystem(ecsWorld.Table(), m))
	runner.Register(system.NewCleanupSystem(state, m))

	log.Info("simulation starting",
		zap.Int("ticks", cfg.Sim.Ticks),
		zap.Duration("tick_rate", cfg.Sim.TickRate),
		zap.Bool("checks", cfg.Registry.Checks))

	if err := loop(ctx, runner, cfg.Sim); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	log.Info("simulation finished",
		zap.Uint64("ticks", runner.Ticks()),
		zap.Int("failures", input.Failures()),
		zap.Int("entities", ecsWorld.Pool().Live()))

	printSection("Registries")
	for _, s := range ecsWorld.Table().Stats() {
		printStat(s.Type, s.Count)
	}
	return nil
}

// loop ticks the runner cfg.Ticks times, pacing by cfg.TickRate when it is
// positive. It returns ctx.Err() when interrupted.
func loop(ctx context.Context, runner *coresys.Runner, cfg config.SimConfig) error {
	if cfg.TickRate <= 0 {
		for i := 0; i < cfg.Ticks; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			runner.Tick(0)
		}
		return nil
	}

	ticker := time.NewTicker(cfg.TickRate)
	defer ticker.Stop()
	for i := 0; i < cfg.Ticks; i++ {
		select {
		case <-ticker.C:
			runner.Tick(cfg.TickRate)
		case <-ctx.Done():
			return ctx.Err()
		}
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
