// Package theme persists the colour scheme preference.
package theme

import (
	"context"
	"errors"
	"fmt"

	"taskboard/internal/models"
	"taskboard/internal/storage"
)

// ErrInvalidTheme is returned by Set for values other than light, dark or system.
var ErrInvalidTheme = errors.New("invalid theme")

// Store reads and writes storage.KeyTheme.
type Store struct {
	kv storage.KV
}

// NewStore returns a theme store over kv.
func NewStore(kv storage.KV) *Store {
	return &Store{kv: kv}
}

// Get returns the saved theme, or system when none or an unknown one is saved.
func (s *Store) Get(ctx context.Context) models.Theme {
	raw, ok := s.kv.Load(ctx, storage.KeyTheme)
	if t := models.Theme(raw); ok && t.Valid() {
		return t
	}
	return models.ThemeSystem
}

// Set saves t.
func (s *Store) Set(ctx context.Context, t models.Theme) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidTheme, t)
	}
	return s.kv.Save(ctx, storage.KeyTheme, string(t))
}
