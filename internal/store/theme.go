package store

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/jonathan/resume-builder/internal/kv"
	"github.com/jonathan/resume-builder/internal/logger"
	"github.com/jonathan/resume-builder/internal/types"
)

// ThemeKey is the kv key holding the theme preference
const ThemeKey = "resume-theme"

// ThemeStore persists the light/dark preference next to the draft.
type ThemeStore struct {
	kv  kv.Store
	log zerolog.Logger
}

// NewThemeStore creates a ThemeStore on backend.
func NewThemeStore(backend kv.Store) *ThemeStore {
	return &ThemeStore{kv: backend, log: logger.WithComponent("theme")}
}

// Get returns the stored theme, or the default when none is stored or the
// stored value is not a known theme.
func (t *ThemeStore) Get(ctx context.Context) types.Theme {
	raw, err := t.kv.Get(ctx, ThemeKey)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			t.log.Warn().Err(err).Msg("Failed to read theme")
		}
		return types.DefaultTheme
	}
	theme, ok := types.ParseTheme(raw)
	if !ok {
		t.log.Warn().Str("value", raw).Msg("Ignoring unknown stored theme")
	}
	return theme
}

// Set stores theme. Write failures are logged.
func (t *ThemeStore) Set(ctx context.Context, theme types.Theme) {
	if err := t.kv.Set(context.WithoutCancel(ctx), ThemeKey, string(theme)); err != nil {
		t.log.Error().Err(err).Msg("Failed to persist theme")
	}
}
