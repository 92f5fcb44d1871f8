package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonathan/resume-builder/internal/db"
)

// Postgres stores values in the kv_entries table
type Postgres struct {
	db     *db.DB
	prefix string
}

// NewPostgres connects to databaseURL and makes sure the table exists.
func NewPostgres(ctx context.Context, databaseURL, prefix string) (*Postgres, error) {
	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	if err := database.EnsureSchema(ctx); err != nil {
		database.Close()
		return nil, err
	}
	return &Postgres{db: database, prefix: prefix}, nil
}

// Get implements Store
func (p *Postgres) Get(ctx context.Context, key string) (string, error) {
	v, err := p.db.GetValue(ctx, p.prefix+key)
	if errors.Is(err, db.ErrNoValue) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("postgres get: %w", err)
	}
	return v, nil
}

// Set implements Store
func (p *Postgres) Set(ctx context.Context, key, value string) error {
	if err := p.db.PutValue(ctx, p.prefix+key, value); err != nil {
		return fmt.Errorf("postgres set: %w", err)
	}
	return nil
}

// Close implements Store
func (p *Postgres) Close() error {
	p.db.Close()
	return nil
}
