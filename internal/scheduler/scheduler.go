package scheduler

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"leasedash/server/config"
	"leasedash/server/internal/database"
	"leasedash/server/internal/dataset"
	"leasedash/server/internal/models"
	"leasedash/server/internal/queue"
)

// Fetcher is the upstream boundary the refresher pulls rows from.
type Fetcher interface {
	FetchRecords(ctx context.Context) ([]models.RawRecord, error)
}

// Refresher periodically pulls the leasing dataset from upstream, swaps the
// in-memory snapshot, and feeds the persistence queue.
type Refresher struct {
	fetcher  Fetcher
	data     *dataset.Service
	queue    *queue.RecordQueue
	store    *database.Database
	config   *config.Config
	logger   *logrus.Logger
	stopChan chan struct{}
	wg       sync.WaitGroup
	jobMutex sync.Mutex // Ensures sequential refresh execution
}

// NewRefresher creates a new refresher
func NewRefresher(fetcher Fetcher, data *dataset.Service, q *queue.RecordQueue, store *database.Database, cfg *config.Config, logger *logrus.Logger) *Refresher {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
		logger.SetLevel(logrus.InfoLevel)
	}

	return &Refresher{
		fetcher:  fetcher,
		data:     data,
		queue:    q,
		store:    store,
		config:   cfg,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Start loads the persisted snapshot, runs a startup refresh, and begins the
// periodic refresh loop.
func (r *Refresher) Start() {
	r.loadPersistedSnapshot()

	r.wg.Add(1)
	go r.run()
}

// Stop gracefully stops the refresher
func (r *Refresher) Stop() {
	close(r.stopChan)
	r.wg.Wait()
}

// TriggerRefresh runs one refresh cycle immediately.
func (r *Refresher) TriggerRefresh() {
	go r.refresh()
}

func (r *Refresher) run() {
	defer r.wg.Done()

	// Startup run so the dashboard has fresh data without waiting a full
	// interval.
	go func() {
		r.logger.Info("Running startup refresh")
		r.refresh()
	}()

	interval := time.Duration(r.config.Refresh.IntervalMinutes) * time.Minute
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopChan:
			return
		case <-ticker.C:
			r.refresh()
		}
	}
}

// loadPersistedSnapshot serves the last stored dataset until the first
// upstream fetch succeeds.
func (r *Refresher) loadPersistedSnapshot() {
	rows, err := r.store.LoadRecords()
	if err != nil {
		r.logger.WithError(err).Warn("Could not load persisted snapshot")
		return
	}
	if len(rows) == 0 {
		return
	}
	r.data.Update(rows)

	log := r.logger.WithField("records", len(rows))
	if fetchedAt, err := r.store.LastFetchedAt(); err == nil && !fetchedAt.IsZero() {
		log = log.WithField("fetched_at", fetchedAt)
	}
	log.Info("Serving persisted snapshot")
}

// staleAfter is how long a persisted row survives without reappearing in an
// upstream fetch.
const staleAfter = 7 * 24 * time.Hour

func (r *Refresher) refresh() {
	r.jobMutex.Lock()
	defer r.jobMutex.Unlock()

	jobID := uuid.NewString()
	log := r.logger.WithField("job_id", jobID)
	log.Info("Starting dataset refresh")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	rows, err := r.fetcher.FetchRecords(ctx)
	if err != nil {
		log.WithError(err).Error("Dataset refresh failed; keeping previous snapshot")
		return
	}

	fetchedAt := r.data.Now()
	r.data.Update(rows)

	leaseRows := database.RowsFromRaw(rows, fetchedAt)
	batchSize := r.config.BatchProcessing.MaxBatchSize
	if batchSize <= 0 {
		batchSize = 100
	}
	for start := 0; start < len(leaseRows); start += batchSize {
		end := start + batchSize
		if end > len(leaseRows) {
			end = len(leaseRows)
		}
		if err := r.queue.Push(leaseRows[start:end]); err != nil {
			log.WithError(err).Error("Failed to enqueue batch for persistence")
		}
	}

	if removed, err := r.store.DeleteStale(fetchedAt.Add(-staleAfter)); err != nil {
		log.WithError(err).Warn("Failed to prune stale rows")
	} else if removed > 0 {
		log.WithField("removed", removed).Info("Pruned stale rows")
	}

	log.WithFields(logrus.Fields{
		"rows":    len(rows),
		"batches": (len(leaseRows) + batchSize - 1) / batchSize,
	}).Info("Dataset refresh completed")
}
