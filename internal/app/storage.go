package app

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"
)

// Store owns the set of known schedule sources and the currently active
// schedule. At most one schedule is active at any time; switching is atomic
// under the store mutex, so no intermediate state is observable.
type Store struct {
	fetcher Fetcher

	mu        sync.RWMutex
	sources   []ScheduleSource
	schedules map[string]*WeeklySchedule
	failed    map[string]error
	active    *WeeklySchedule
	activeRef string
	loadErr   error
	selection uint64
}

// NewStore creates an empty store backed by the given fetcher.
func NewStore(fetcher Fetcher) *Store {
	return &Store{
		fetcher:   fetcher,
		schedules: make(map[string]*WeeklySchedule),
		failed:    make(map[string]error),
	}
}

// LoadSources fetches the configuration document and eagerly loads each listed
// schedule in order. A per-source failure is logged and recorded but does not
// abort the load. The first source that fetches successfully becomes the
// active schedule.
func (s *Store) LoadSources(ctx context.Context, configRef string) error {
	data, err := s.fetcher.Fetch(ctx, configRef)
	if err != nil {
		return s.failLoad(&ConfigLoadError{Ref: configRef, Err: err})
	}

	var cfg SourceConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return s.failLoad(&ConfigLoadError{Ref: configRef, Err: err})
	}

	for _, ref := range cfg.Schedules {
		sched, err := s.fetchSchedule(ctx, ref)
		if err != nil {
			log.Printf("Skipping schedule source %s: %v", ref, err)
			s.mu.Lock()
			s.failed[ref] = err
			s.mu.Unlock()
			continue
		}

		label := sched.Name
		if label == "" {
			label = ref
		}

		// The selector is populated incrementally, in config order.
		s.mu.Lock()
		s.sources = append(s.sources, ScheduleSource{Ref: ref, Label: label})
		s.schedules[ref] = sched
		if s.active == nil {
			s.active = sched
			s.activeRef = ref
		}
		s.mu.Unlock()
	}
	return nil
}

func (s *Store) failLoad(err error) error {
	s.mu.Lock()
	s.loadErr = err
	s.mu.Unlock()
	log.Printf("Error loading schedule sources: %v", err)
	return err
}

// fetchSchedule retrieves and parses one WeeklySchedule document.
func (s *Store) fetchSchedule(ctx context.Context, ref string) (*WeeklySchedule, error) {
	data, err := s.fetcher.Fetch(ctx, ref)
	if err != nil {
		return nil, &SourceFetchError{Ref: ref, Err: err}
	}

	var sched WeeklySchedule
	if err := json.Unmarshal(data, &sched); err != nil {
		return nil, &SourceFetchError{Ref: ref, Err: err}
	}
	if sched.ID == "" {
		// Documents without an id still need a stable handle for exports.
		sched.ID = uuid.NewString()
	}
	return &sched, nil
}

// SelectSource fetches the schedule for ref and replaces the active schedule
// wholesale. Each selection takes a monotonically increasing token; a
// completion whose token is no longer the latest is discarded with
// ErrStaleSelection, so an older in-flight fetch can never overwrite a newer
// selection. On a fetch failure the previous active schedule is untouched.
func (s *Store) SelectSource(ctx context.Context, ref string) (*WeeklySchedule, error) {
	s.mu.Lock()
	known := false
	for _, src := range s.sources {
		if src.Ref == ref {
			known = true
			break
		}
	}
	if !known {
		s.mu.Unlock()
		return nil, ErrUnknownSourceRef
	}
	s.selection++
	token := s.selection
	s.mu.Unlock()

	sched, err := s.fetchSchedule(ctx, ref)

	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.selection {
		return nil, ErrStaleSelection
	}
	if err != nil {
		return nil, err
	}
	s.schedules[ref] = sched
	s.active = sched
	s.activeRef = ref
	return sched, nil
}

// Active returns the currently active schedule, nil before the first
// successful load.
func (s *Store) Active() *WeeklySchedule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// ActiveRef returns the source reference of the active schedule.
func (s *Store) ActiveRef() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeRef
}

// Sources returns the successfully loaded sources in config order.
func (s *Store) Sources() []ScheduleSource {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ScheduleSource, len(s.sources))
	copy(out, s.sources)
	return out
}

// Schedule returns the loaded schedule for a source ref, or the active
// schedule when ref is empty. Nil when unknown.
func (s *Store) Schedule(ref string) *WeeklySchedule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if ref == "" {
		return s.active
	}
	return s.schedules[ref]
}

// Failed returns the per-source errors recorded during the bulk load.
func (s *Store) Failed() map[string]error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]error, len(s.failed))
	for ref, err := range s.failed {
		out[ref] = err
	}
	return out
}

// LoadError returns the fatal configuration load error, if any.
func (s *Store) LoadError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadErr
}
