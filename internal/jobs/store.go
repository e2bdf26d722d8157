package jobs

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Store holds job records. Get returns a snapshot plus a generation
// counter; Replace publishes a new snapshot only when the caller's
// generation is still current, which lets workers detect that a job was
// deleted (or otherwise superseded) while they held it.
type Store interface {
	Create(ctx context.Context, job *Job) error
	Get(ctx context.Context, id uuid.UUID) (*Job, uint64, error)
	// Replace returns the new generation on success.
	Replace(ctx context.Context, id uuid.UUID, gen uint64, job *Job) (uint64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*Job, error)
	CountByStatus(ctx context.Context) (map[Status]int, error)
}

type entry struct {
	job *Job
	gen uint64
}

type memoryStore struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*entry
}

// NewStore returns an in-memory Store. Snapshots returned by Get and List
// are deep copies.
func NewStore() Store {
	return &memoryStore{
		entries: make(map[uuid.UUID]*entry),
	}
}

func (s *memoryStore) Create(_ context.Context, job *Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[job.ID]; exists {
		return ErrExists
	}
	s.entries[job.ID] = &entry{job: job.Clone(), gen: 1}
	return nil
}

func (s *memoryStore) Get(_ context.Context, id uuid.UUID) (*Job, uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, 0, ErrNotFound
	}
	return e.job.Clone(), e.gen, nil
}

func (s *memoryStore) Replace(_ context.Context, id uuid.UUID, gen uint64, job *Job) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return 0, ErrNotFound
	}
	if e.gen != gen {
		return 0, ErrStale
	}
	e.job = job.Clone()
	e.gen++
	return e.gen, nil
}

func (s *memoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[id]; !ok {
		return ErrNotFound
	}
	delete(s.entries, id)
	return nil
}

func (s *memoryStore) List(_ context.Context) ([]*Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	jobs := make([]*Job, 0, len(s.entries))
	for _, e := range s.entries {
		jobs = append(jobs, e.job.Clone())
	}
	return jobs, nil
}

func (s *memoryStore) CountByStatus(_ context.Context) (map[Status]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := make(map[Status]int, 4)
	for _, status := range Statuses() {
		counts[status] = 0
	}
	for _, e := range s.entries {
		counts[e.job.Status]++
	}
	return counts, nil
}
