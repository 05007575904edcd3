// Package dictionary provides the spell-check backends behind game.Dictionary.
//
// Two backends exist: an in-memory WordList (default) and a SQLite table
// (when a DSN is configured). Open picks one from Options.
package dictionary

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordscramble/internal/game"
)

// Dictionary is a game.Dictionary that can report its size and be released.
type Dictionary interface {
	game.Dictionary
	Size(ctx context.Context) (int, error)
	Close() error
}

// Options selects and configures a backend.
type Options struct {
	Language string // e.g. "en"
	File     string // word list path; "" uses the embedded list
	DSN      string // SQLite path; "" selects the in-memory backend
}

// Open builds the configured dictionary. A SQLite database with no words
// for the language is seeded from the word list first.
func Open(ctx context.Context, opts Options) (Dictionary, error) {
	if opts.Language == "" {
		opts.Language = game.DefaultLanguage
	}
	if opts.DSN == "" {
		wl, err := LoadWordList(opts.Language, opts.File)
		if err != nil {
			return nil, err
		}
		log.Info().Int("words", wl.Len()).Str("lang", opts.Language).Msg("word list dictionary loaded")
		return wl, nil
	}

	db, err := OpenSQLite(ctx, opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("dictionary: open %s: %w", opts.DSN, err)
	}
	n, err := db.Count(ctx, opts.Language)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("dictionary: count: %w", err)
	}
	if n == 0 {
		list, err := readList(opts.File)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		if n, err = db.Seed(ctx, opts.Language, list); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("dictionary: %w", err)
		}
		log.Info().Int("words", n).Str("lang", opts.Language).Msg("sqlite dictionary seeded")
	}
	log.Info().Int("words", n).Str("dsn", opts.DSN).Msg("sqlite dictionary ready")
	return db, nil
}

// Size reports the number of words in the list.
func (d *WordList) Size(context.Context) (int, error) { return d.Len(), nil }

// Close is a no-op.
func (d *WordList) Close() error { return nil }

// Size reports the number of words stored for any language.
func (d *SQLite) Size(ctx context.Context) (int, error) {
	var n int
	err := d.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM words`).Scan(&n)
	return n, err
}
