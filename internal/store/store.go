package store

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jonathan/resume-builder/internal/kv"
	"github.com/jonathan/resume-builder/internal/logger"
	"github.com/jonathan/resume-builder/internal/types"
)

// DraftKey is the kv key holding the persisted document
const DraftKey = "resume-draft"

// Store owns the current document. Every action is applied under a single
// lock and the result is written to the backing kv store before the lock
// is released, so persisted order always matches mutation order.
type Store struct {
	mu  sync.Mutex
	doc types.ResumeData

	kv  kv.Store
	key string
	log zerolog.Logger
}

// New creates a Store and loads the persisted draft from backend.
// A missing, unreadable or undecodable draft yields the default document.
func New(ctx context.Context, backend kv.Store) *Store {
	s := &Store{
		kv:  backend,
		key: DraftKey,
		log: logger.WithComponent("store"),
	}
	s.doc = s.load(ctx)
	return s
}

func (s *Store) load(ctx context.Context) types.ResumeData {
	raw, err := s.kv.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			s.log.Warn().Err(err).Str("key", s.key).Msg("Failed to read draft, starting from default")
		}
		return types.DefaultResume()
	}

	doc, err := DecodeDraft([]byte(raw))
	if err != nil {
		s.log.Warn().Err(err).Str("key", s.key).Msg("Ignoring stored draft, starting from default")
		return types.DefaultResume()
	}
	s.log.Debug().Str("key", s.key).Msg("Loaded draft")
	return doc
}

// Snapshot returns a copy of the current document.
func (s *Store) Snapshot() types.ResumeData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

// Dispatch applies an action and persists the resulting document.
// When the action is rejected the document is unchanged and the current
// snapshot is returned with the error. Persistence failures are logged,
// never returned.
func (s *Store) Dispatch(ctx context.Context, a Action) (types.ResumeData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.doc.Clone()
	if err := a.apply(&next); err != nil {
		return s.doc.Clone(), err
	}
	s.doc = next
	s.persist(ctx, next)

	s.log.Debug().Str("action", a.Kind()).Msg("Applied action")
	return next.Clone(), nil
}

// Add appends an empty element to list and returns its id.
func (s *Store) Add(ctx context.Context, list types.ListName) (string, types.ResumeData, error) {
	id := types.NewID()
	doc, err := s.Dispatch(ctx, AddItem{List: list, id: id})
	if err != nil {
		return "", doc, err
	}
	return id, doc, nil
}

func (s *Store) persist(ctx context.Context, doc types.ResumeData) {
	data, err := EncodeDraft(doc)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to encode draft")
		return
	}
	if err := s.kv.Set(context.WithoutCancel(ctx), s.key, string(data)); err != nil {
		s.log.Error().Err(err).Str("key", s.key).Msg("Failed to persist draft")
	}
}
