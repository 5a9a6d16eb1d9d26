package queue

import (
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"leasedash/server/internal/models"
)

func TestNewRecordQueue(t *testing.T) {
	logger := logrus.New()
	q := NewRecordQueue(10, logger)
	assert.NotNil(t, q)
	assert.Equal(t, 10, cap(q.items))
	assert.False(t, q.IsClosed())
}

func TestRecordQueue_Push(t *testing.T) {
	logger := logrus.New()
	q := NewRecordQueue(2, logger)

	// Test successful push
	rows := []*models.LeaseRow{{UnitID: "U-1"}}
	err := q.Push(rows)
	assert.NoError(t, err)
	assert.Equal(t, 1, q.Len())

	// Test queue full
	for i := 0; i < 2; i++ {
		rows := []*models.LeaseRow{{UnitID: "U-fill"}}
		_ = q.Push(rows)
	}
	err = q.Push(rows)
	assert.Equal(t, ErrQueueFull, err)

	// Test closed queue
	q.Close()
	err = q.Push(rows)
	assert.Equal(t, ErrQueueClosed, err)
}

func TestRecordQueue_Subscribe(t *testing.T) {
	logger := logrus.New()
	q := NewRecordQueue(10, logger)

	var processed []*models.LeaseRow
	var mu sync.Mutex

	// Add handler
	q.Subscribe(func(rows []*models.LeaseRow) error {
		mu.Lock()
		processed = append(processed, rows...)
		mu.Unlock()
		return nil
	})

	// Start queue
	q.Start()

	// Push items
	testRows := []*models.LeaseRow{{UnitID: "U-1"}, {UnitID: "U-2"}}
	err := q.Push(testRows)
	assert.NoError(t, err)

	// Wait for processing
	time.Sleep(100 * time.Millisecond)

	// Verify processing
	mu.Lock()
	assert.Equal(t, 2, len(processed))
	assert.Equal(t, "U-1", processed[0].UnitID)
	assert.Equal(t, "U-2", processed[1].UnitID)
	mu.Unlock()
}

func TestRecordQueue_Close(t *testing.T) {
	logger := logrus.New()
	q := NewRecordQueue(10, logger)

	// Test first close
	err := q.Close()
	assert.NoError(t, err)
	assert.True(t, q.IsClosed())

	// Test second close (should be no-op)
	err = q.Close()
	assert.NoError(t, err)
}

func TestRecordQueue_ProcessBatch(t *testing.T) {
	logger := logrus.New()
	q := NewRecordQueue(10, logger)

	var wg sync.WaitGroup
	processedBatches := 0
	var mu sync.Mutex

	// Add multiple handlers
	for i := 0; i < 3; i++ {
		wg.Add(1)
		q.Subscribe(func(rows []*models.LeaseRow) error {
			mu.Lock()
			processedBatches++
			mu.Unlock()
			wg.Done()
			return nil
		})
	}

	// Start queue
	q.Start()

	// Push a batch
	testRows := []*models.LeaseRow{{UnitID: "U-1"}}
	err := q.Push(testRows)
	assert.NoError(t, err)

	// Wait for all handlers
	wg.Wait()

	// Verify all handlers processed the batch
	mu.Lock()
	assert.Equal(t, 3, processedBatches)
	mu.Unlock()
}
