// Package adminview models one admin screen of the dashboard: a list of
// rows, an edit form and a delete confirmation. Every successful mutation
// is followed by a full refetch of the list.
package adminview

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

type State int

const (
	StateList State = iota
	StateEditing
	StateConfirmingDelete
	StateLoading
)

func (s State) String() string {
	switch s {
	case StateList:
		return "list"
	case StateEditing:
		return "editing"
	case StateConfirmingDelete:
		return "confirmingDelete"
	case StateLoading:
		return "loading"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var (
	ErrIllegalTransition = errors.New("adminview: illegal transition")
	// ErrBusy is returned while a submission is already in flight.
	ErrBusy = errors.New("adminview: submission in flight")
)

// TransitionError reports an event that is not allowed in the current state.
type TransitionError struct {
	From  State
	Event string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("adminview: %s not allowed in state %s", e.Event, e.From)
}

func (e *TransitionError) Unwrap() error { return ErrIllegalTransition }

// Fetcher loads the full list shown by a screen.
type Fetcher[T any] func(ctx context.Context) ([]T, error)

// Screen holds the local state of one admin page. The zero value is not usable;
// build one with NewScreen.
type Screen[T any] struct {
	mu      sync.Mutex
	fetch   Fetcher[T]
	state   State
	items   []T
	target  *T // row being edited or deleted; nil while adding
	loading bool
}

func NewScreen[T any](fetch Fetcher[T]) *Screen[T] {
	return &Screen[T]{fetch: fetch, state: StateList}
}

func (s *Screen[T]) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Items returns a copy of the last fetched list.
func (s *Screen[T]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]T(nil), s.items...)
}

// Target is the row under edit or deletion. ok is false while adding or in
// the list state.
func (s *Screen[T]) Target() (row T, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.target == nil {
		return row, false
	}
	return *s.target, true
}

// Loading reports whether a fetch or submission is in flight.
func (s *Screen[T]) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Load fetches the list. It is used on page load and after mutations.
func (s *Screen[T]) Load(ctx context.Context) error {
	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return ErrBusy
	}
	if s.state != StateList {
		s.mu.Unlock()
		return &TransitionError{From: s.state, Event: "load"}
	}
	s.loading = true
	s.state = StateLoading
	s.mu.Unlock()

	return s.refetch(ctx)
}

func (s *Screen[T]) Add() error {
	return s.open(nil, "add")
}

func (s *Screen[T]) Edit(row T) error {
	return s.open(&row, "edit")
}

func (s *Screen[T]) open(row *T, event string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateList {
		return &TransitionError{From: s.state, Event: event}
	}
	s.state = StateEditing
	s.target = row
	return nil
}

func (s *Screen[T]) Delete(row T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateList {
		return &TransitionError{From: s.state, Event: "delete"}
	}
	s.state = StateConfirmingDelete
	s.target = &row
	return nil
}

// Cancel leaves the edit form or the delete confirmation without a request.
func (s *Screen[T]) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loading {
		return ErrBusy
	}
	if s.state != StateEditing && s.state != StateConfirmingDelete {
		return &TransitionError{From: s.state, Event: "cancel"}
	}
	s.state = StateList
	s.target = nil
	return nil
}

// Save submits the edit form. On failure the form stays open so the user can
// retry; on success the screen returns to the list and refetches it.
func (s *Screen[T]) Save(ctx context.Context, submit func(ctx context.Context) error) error {
	if err := s.begin(StateEditing, "save"); err != nil {
		return err
	}
	if err := submit(ctx); err != nil {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
		return err
	}
	return s.afterMutation(ctx)
}

// Confirm runs the deletion of the target row. The confirmation closes
// whether or not the request succeeds; the list is refetched only on success.
func (s *Screen[T]) Confirm(ctx context.Context, remove func(ctx context.Context, row T) error) error {
	if err := s.begin(StateConfirmingDelete, "confirm"); err != nil {
		return err
	}
	s.mu.Lock()
	row := *s.target
	s.mu.Unlock()

	if err := remove(ctx, row); err != nil {
		s.mu.Lock()
		s.loading = false
		s.state = StateList
		s.target = nil
		s.mu.Unlock()
		return err
	}
	return s.afterMutation(ctx)
}

func (s *Screen[T]) begin(want State, event string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loading {
		return ErrBusy
	}
	if s.state != want {
		return &TransitionError{From: s.state, Event: event}
	}
	s.loading = true
	return nil
}

func (s *Screen[T]) afterMutation(ctx context.Context) error {
	s.mu.Lock()
	s.state = StateLoading
	s.target = nil
	s.mu.Unlock()
	return s.refetch(ctx)
}

// refetch expects loading to be set. It always lands back on the list; a
// failed fetch keeps the previous rows.
func (s *Screen[T]) refetch(ctx context.Context) error {
	items, err := s.fetch(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.state = StateList
	if err != nil {
		return fmt.Errorf("refetch: %w", err)
	}
	s.items = items
	return nil
}
