package dataset

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"leasedash/server/internal/models"
	"leasedash/server/internal/normalizer"
)

// Clock supplies the reference time for derived date-relative fields. Tests
// inject a fixed clock; production uses time.Now.
type Clock func() time.Time

// Service holds the current normalized snapshot. Handlers read it on every
// request; the refresher swaps in a new snapshot after each fetch. Records
// are immutable once normalized, so readers share them without copying.
type Service struct {
	mu        sync.RWMutex
	records   []*models.Record
	updatedAt time.Time
	clock     Clock
	logger    *logrus.Logger
}

func NewService(logger *logrus.Logger, clock Clock) *Service {
	if clock == nil {
		clock = time.Now
	}
	return &Service{
		clock:  clock,
		logger: logger,
	}
}

// Update normalizes a fetched row set against the current clock and makes
// it the served snapshot.
func (s *Service) Update(rows []models.RawRecord) {
	now := s.clock()
	records := normalizer.NormalizeAll(rows, now)

	s.mu.Lock()
	s.records = records
	s.updatedAt = now
	s.mu.Unlock()

	s.logger.WithField("records", len(records)).Info("Snapshot updated")
}

// Records returns the current snapshot. The returned slice is a copy, so
// callers may reorder it without affecting other readers.
func (s *Service) Records() []*models.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Record, len(s.records))
	copy(out, s.records)
	return out
}

// Len returns the size of the current snapshot.
func (s *Service) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// UpdatedAt returns when the snapshot was last replaced.
func (s *Service) UpdatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updatedAt
}

// Now exposes the service clock so date-relative metrics use the same
// reference time as normalization.
func (s *Service) Now() time.Time {
	return s.clock()
}
