package command

import (
	"context"
	"sync"
)

// callerContext is the per-caller remembered state: the currently selected
// client, used to shorten subsequent commands.
type callerContext struct {
	SelectedClientID string `json:"selectedClientId,omitempty"`
}

// ContextStore keeps one context per caller. Contexts are created lazily on
// first use and live for the life of the store; only open_user mutates them.
type ContextStore interface {
	// SelectedClient returns the caller's selected client ID, or "" when
	// nothing has been selected yet.
	SelectedClient(ctx context.Context, callerID string) (string, error)
	// SelectClient records the caller's selection. Client existence is not
	// validated here; validation happens at point of use.
	SelectClient(ctx context.Context, callerID, clientID string) error
}

// MemoryContextStore is the in-process ContextStore: a mutex-guarded map
// keyed by caller ID, never expired.
type MemoryContextStore struct {
	mu       sync.Mutex
	contexts map[string]*callerContext
}

func NewMemoryContextStore() *MemoryContextStore {
	return &MemoryContextStore{contexts: make(map[string]*callerContext)}
}

func (s *MemoryContextStore) get(callerID string) *callerContext {
	cc, ok := s.contexts[callerID]
	if !ok {
		cc = &callerContext{}
		s.contexts[callerID] = cc
	}
	return cc
}

func (s *MemoryContextStore) SelectedClient(ctx context.Context, callerID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(callerID).SelectedClientID, nil
}

func (s *MemoryContextStore) SelectClient(ctx context.Context, callerID, clientID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.get(callerID).SelectedClientID = clientID
	return nil
}
