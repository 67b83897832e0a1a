package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"study-quiz/internal/cli"
	"study-quiz/internal/config"
	"study-quiz/internal/history"
	"study-quiz/internal/logger"
	"study-quiz/internal/opentdb"
	"study-quiz/internal/quiz"
	"study-quiz/internal/screen"
	"study-quiz/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Env, cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var store *history.Store
	if cfg.History.Enabled || cfg.History.Show {
		store, err = history.Open(cfg.History.Path)
		if err != nil {
			return fmt.Errorf("open history: %w", err)
		}
		defer store.Close()
	}

	if cfg.History.Show {
		rounds, err := store.RecentRounds(ctx, cfg.History.Limit)
		if err != nil {
			return err
		}
		misses, err := store.CategoryMisses(ctx)
		if err != nil {
			return err
		}
		cli.PrintHistory(os.Stdout, rounds, misses)
		return nil
	}

	client := opentdb.NewClient(
		&http.Client{Timeout: cfg.OpenTDB.Timeout},
		opentdb.WithBaseURL(cfg.OpenTDB.BaseURL),
		opentdb.WithQuestionType(cfg.OpenTDB.Type),
	)

	shuffle, err := quiz.NewShuffler(cfg.Quiz.Shuffle, nil)
	if err != nil {
		return err
	}

	opts := []screen.Option{
		screen.WithRules(cfg.Quiz.Rules()),
		screen.WithShuffler(shuffle),
		screen.WithFetchAmount(cfg.OpenTDB.Amount),
	}
	if store != nil && cfg.History.Enabled {
		opts = append(opts, screen.WithRecorder(store))
	}
	scr := screen.New(client, log, opts...)

	log.Info("starting", "mode", cfg.UI.Mode, "shuffle", cfg.Quiz.Shuffle, "history", cfg.History.Enabled)

	if cfg.UI.Mode == config.ModePlain {
		return cli.Run(ctx, os.Stdin, os.Stdout, scr)
	}
	return tui.Run(ctx, scr)
}
