package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/udisondev/powerengine/internal/ai"
	"github.com/udisondev/powerengine/internal/config"
	"github.com/udisondev/powerengine/internal/data"
	"github.com/udisondev/powerengine/internal/dice"
	"github.com/udisondev/powerengine/internal/engine"
	"github.com/udisondev/powerengine/internal/logger"
	"github.com/udisondev/powerengine/internal/model"
)

const ConfigPath = "config/powerengine.yaml"

const usage = `usage: powerengine [-config path] <command> [args]

commands:
  sheet <id>                 aggregated sheet, score and diagnostics
  rank                       rank the whole population
  duel <id> <id>             simulate a duel
  npc <npc-id> <opponent-id> NPC decision for the current turn
  breakthrough <id>          advance one cultivation step
`

var errUsage = errors.New("invalid usage")

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
		}
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("powerengine", flag.ContinueOnError)
	cfgPath := fs.String("config", configPath(), "path to YAML config")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	if fs.NArg() == 0 {
		return errUsage
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Логи в stderr, результат команды в stdout.
	log, closeLog, err := logger.New(cfg.Log, os.Stderr)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer closeLog.Close()
	slog.SetDefault(log)

	logLevel := logger.ParseLevel(cfg.Log.Level)
	ai.EnableDebugLogging(logLevel == slog.LevelDebug)

	content, err := data.LoadContent(cfg.ContentPath)
	if err != nil {
		return fmt.Errorf("loading content: %w", err)
	}

	seed := cfg.WorldSeed
	if seed == 0 {
		if seed, err = dice.NewSeed(); err != nil {
			return err
		}
		slog.Info("generated world seed", "seed", seed)
	}

	eng, err := engine.New(content, cfg.Combat, seed)
	if err != nil {
		return err
	}

	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	chars, err := st.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("loading population: %w", err)
	}
	slog.Info("population loaded", "characters", len(chars), "database", cfg.UseDatabase)

	cmd := &command{eng: eng, cfg: cfg, seed: seed, store: st, chars: index(chars), all: chars, out: out}
	return cmd.dispatch(ctx, fs.Arg(0), fs.Args()[1:])
}

func configPath() string {
	if p := os.Getenv("POWERENGINE_CONFIG"); p != "" {
		return p
	}
	return ConfigPath
}

func index(chars []*model.Character) map[string]*model.Character {
	m := make(map[string]*model.Character, len(chars))
	for _, c := range chars {
		m[c.ID] = c
	}
	return m
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
