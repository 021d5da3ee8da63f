// Package points tracks the running score of a session and the best score
// ever reached, persisting the best through a BestStore.
package points

import (
	"fmt"
	"strconv"
)

// BestStore persists string preferences. *storage.Store satisfies it.
type BestStore interface {
	GetPref(key string) (string, bool, error)
	SetPref(key, value string) error
	DeletePref(key string) error
}

// Tracker holds the current and best score for one game.
type Tracker struct {
	key   string
	store BestStore
	score int
	best  int
}

// NewTracker loads the best score for gameID from store. A nil store keeps
// the best score in memory only.
func NewTracker(gameID string, store BestStore) (*Tracker, error) {
	t := &Tracker{key: gameID + ".best", store: store}
	if store == nil {
		return t, nil
	}

	raw, ok, err := store.GetPref(t.key)
	if err != nil {
		return t, fmt.Errorf("points: load best: %w", err)
	}
	if ok {
		best, err := strconv.Atoi(raw)
		if err != nil {
			return t, fmt.Errorf("points: parse best %q: %w", raw, err)
		}
		t.best = max(0, best)
	}
	return t, nil
}

// Score returns the current run score.
func (t *Tracker) Score() int { return t.score }

// Best returns the best score seen.
func (t *Tracker) Best() int { return t.best }

// Add adds v to the run score, never going below zero.
func (t *Tracker) Add(v int) error {
	if v == 0 {
		return nil
	}
	return t.Set(t.score + v)
}

// Set replaces the run score, clamped at zero, and raises the best score if
// it was beaten.
func (t *Tracker) Set(v int) error {
	t.score = max(0, v)
	if t.score <= t.best {
		return nil
	}
	t.best = t.score
	if t.store == nil {
		return nil
	}
	if err := t.store.SetPref(t.key, strconv.Itoa(t.best)); err != nil {
		return fmt.Errorf("points: save best: %w", err)
	}
	return nil
}

// ResetRun zeroes the run score and keeps the best.
func (t *Tracker) ResetRun() {
	t.score = 0
}

// ResetAll zeroes both scores and forgets the persisted best.
func (t *Tracker) ResetAll() error {
	t.score = 0
	t.best = 0
	if t.store == nil {
		return nil
	}
	if err := t.store.DeletePref(t.key); err != nil {
		return fmt.Errorf("points: clear best: %w", err)
	}
	return nil
}
