// Package launch keeps the play and privacy links and the resume link
// across runs.
package launch

import (
	"fmt"
	"net/url"
	"sync"
)

// Default links used until the user sets their own.
const (
	DefaultPlay    = "https://kashmiawazmena.github.io/gettwelve/"
	DefaultPrivacy = "https://kashmiawazmena.github.io/terms-app"
)

// Preference keys.
const (
	KeyPlay    = "mindgrid.play"
	KeyPrivacy = "mindgrid.privacy"
	KeyResume  = "mindgrid.resume"
)

// Prefs is the key-value backend. *storage.Store satisfies it.
type Prefs interface {
	GetPref(key string) (string, bool, error)
	SetPref(key, value string) error
	DeletePref(key string) error
}

// Store exposes the persisted links.
type Store struct {
	prefs Prefs

	mu         sync.Mutex
	play       *url.URL
	privacy    *url.URL
	storedOnce bool
}

// New loads saved links from prefs, falling back to the defaults for
// anything missing or unparsable.
func New(prefs Prefs) (*Store, error) {
	s := &Store{prefs: prefs}

	play, err := s.load(KeyPlay, DefaultPlay)
	if err != nil {
		return nil, err
	}
	privacy, err := s.load(KeyPrivacy, DefaultPrivacy)
	if err != nil {
		return nil, err
	}
	s.play, s.privacy = play, privacy
	return s, nil
}

func (s *Store) load(key, fallback string) (*url.URL, error) {
	raw, ok, err := s.prefs.GetPref(key)
	if err != nil {
		return nil, fmt.Errorf("launch: read %s: %w", key, err)
	}
	if ok {
		if u, ok := parse(raw); ok {
			return u, nil
		}
	}
	u, _ := parse(fallback)
	return u, nil
}

// Play returns the current play link.
func (s *Store) Play() *url.URL {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneURL(s.play)
}

// Privacy returns the current privacy link.
func (s *Store) Privacy() *url.URL {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneURL(s.privacy)
}

// UpdatePlay stores a new play link. Invalid input is ignored and reported
// as false. A failed write leaves the current link in place.
func (s *Store) UpdatePlay(value string) (bool, error) {
	return s.update(KeyPlay, value, &s.play)
}

// UpdatePrivacy stores a new privacy link. Invalid input is ignored and
// reported as false.
func (s *Store) UpdatePrivacy(value string) (bool, error) {
	return s.update(KeyPrivacy, value, &s.privacy)
}

func (s *Store) update(key, value string, dst **url.URL) (bool, error) {
	u, ok := parse(value)
	if !ok {
		return false, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.prefs.SetPref(key, value); err != nil {
		return false, fmt.Errorf("launch: write %s: %w", key, err)
	}
	*dst = u
	return true, nil
}

// StoreResumeIfNeeded records point as the resume link. Only the first call
// per Store does anything, and an already saved link is never overwritten.
func (s *Store) StoreResumeIfNeeded(point *url.URL) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.storedOnce || point == nil {
		return nil
	}
	s.storedOnce = true

	_, ok, err := s.prefs.GetPref(KeyResume)
	if err != nil {
		return fmt.Errorf("launch: read resume: %w", err)
	}
	if ok {
		return nil
	}
	if err := s.prefs.SetPref(KeyResume, point.String()); err != nil {
		return fmt.Errorf("launch: write resume: %w", err)
	}
	return nil
}

// RestoreResume returns the saved resume link, or nil when there is none.
func (s *Store) RestoreResume() (*url.URL, error) {
	raw, ok, err := s.prefs.GetPref(KeyResume)
	if err != nil {
		return nil, fmt.Errorf("launch: read resume: %w", err)
	}
	if !ok {
		return nil, nil
	}
	u, ok := parse(raw)
	if !ok {
		return nil, nil
	}
	return u, nil
}

// ResetAll forgets every saved link and returns to the defaults.
func (s *Store) ResetAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range []string{KeyPlay, KeyPrivacy, KeyResume} {
		if err := s.prefs.DeletePref(key); err != nil {
			return fmt.Errorf("launch: delete %s: %w", key, err)
		}
	}
	s.storedOnce = false
	s.play, _ = parse(DefaultPlay)
	s.privacy, _ = parse(DefaultPrivacy)
	return nil
}

// parse accepts absolute URLs with a scheme and host.
func parse(raw string) (*url.URL, bool) {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, false
	}
	return u, true
}

func cloneURL(u *url.URL) *url.URL {
	c := *u
	return &c
}
