// Command wordscramble serves the word scramble game over HTTP, or plays it
// in the terminal.
//
//	wordscramble [serve]   start the HTTP API (default)
//	wordscramble play      play in the terminal
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordscramble/internal/config"
	"github.com/robalobadob/wordscramble/internal/console"
	"github.com/robalobadob/wordscramble/internal/dictionary"
	"github.com/robalobadob/wordscramble/internal/game"
	"github.com/robalobadob/wordscramble/internal/httpserver"
	"github.com/robalobadob/wordscramble/internal/store"
	"github.com/robalobadob/wordscramble/internal/words"
)

func main() {
	mode := "serve"
	if len(os.Args) > 1 {
		mode = os.Args[1]
	}
	if mode == "play" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := words.Load(cfg.StartWordsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load root words")
	}
	dict, err := dictionary.Open(ctx, dictionary.Options{
		Language: cfg.Language,
		File:     cfg.DictionaryFile,
		DSN:      cfg.DictionaryDSN,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open dictionary")
	}
	defer dict.Close()

	switch mode {
	case "serve":
		srv := httpserver.New(cfg, store.NewMemoryStore(), pool, dict)
		log.Info().Str("port", cfg.Port).Int("roots", pool.Len()).Msg("starting wordscramble")
		if err := srv.Start(ctx, ":"+cfg.Port); err != nil {
			log.Error().Err(err).Msg("server exited")
		}
	case "play":
		sess, err := game.New(pool, dict, cfg.Language)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot start game")
		}
		if err := console.New(sess, os.Stdout).Loop(); err != nil {
			log.Error().Err(err).Msg("console exited")
		}
	default:
		log.Fatal().Str("mode", mode).Msg("unknown mode, want serve or play")
	}
}
