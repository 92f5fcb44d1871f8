// Package kv provides the persistent key-value stores that back the resume draft and preferences.
// Values are opaque strings; callers own the encoding.
package kv

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrNotFound is returned by Get when the key has never been set.
var ErrNotFound = errors.New("kv: key not found")

// Store is a string key-value store
type Store interface {
	// Get returns the value for key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	// Close releases any resources held by the store
	Close() error
}

// Backend names a Store implementation
type Backend string

// Supported backends
const (
	BackendMemory   Backend = "memory"
	BackendFile     Backend = "file"
	BackendPostgres Backend = "postgres"
	BackendRedis    Backend = "redis"
)

// Options selects and configures a backend
type Options struct {
	Backend     Backend
	Path        string // directory for the file backend
	DatabaseURL string // postgres connection URL
	RedisURL    string // redis connection URL
	KeyPrefix   string // namespace for shared backends (postgres, redis)
}

// Open creates the store named by opts.Backend.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case BackendMemory:
		return NewMemory(), nil
	case BackendFile, "":
		return NewFile(opts.Path)
	case BackendPostgres:
		return NewPostgres(ctx, opts.DatabaseURL, opts.KeyPrefix)
	case BackendRedis:
		return NewRedis(ctx, opts.RedisURL, opts.KeyPrefix)
	default:
		return nil, fmt.Errorf("unknown store backend %q", opts.Backend)
	}
}

// ParseBackend validates a backend name.
func ParseBackend(s string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(s))); b {
	case BackendMemory, BackendFile, BackendPostgres, BackendRedis:
		return b, nil
	case "":
		return BackendFile, nil
	}
	return "", fmt.Errorf("unknown store backend %q", s)
}

// Memory is an in-process Store, used for tests and the --store=memory mode.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// Get implements Store
func (m *Memory) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

// Set implements Store
func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = value
	return nil
}

// Close implements Store
func (m *Memory) Close() error {
	return nil
}
