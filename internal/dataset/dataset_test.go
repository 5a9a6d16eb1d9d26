package dataset

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"leasedash/server/internal/models"
)

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func TestServiceUpdate(t *testing.T) {
	now := time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC)
	svc := NewService(logrus.New(), fixedClock(now))

	assert.Equal(t, 0, svc.Len())

	svc.Update([]models.RawRecord{
		{"unit_id": "A", "move_out": "2024-06-10"},
		{"unit_id": "B"},
	})

	assert.Equal(t, 2, svc.Len())
	assert.Equal(t, now, svc.UpdatedAt())

	records := svc.Records()
	assert.Len(t, records, 2)
	// Derived fields are computed against the injected clock
	assert.Equal(t, 10.0, *records[0].DaysOnMarket)
}

func TestServiceRecordsIsolation(t *testing.T) {
	svc := NewService(logrus.New(), nil)
	svc.Update([]models.RawRecord{
		{"unit_id": "A"},
		{"unit_id": "B"},
	})

	first := svc.Records()
	first[0], first[1] = first[1], first[0]

	// Reordering a returned slice must not affect other readers
	second := svc.Records()
	assert.Equal(t, "A", second[0].UnitID)
}

func TestServiceSwapReplacesSnapshot(t *testing.T) {
	svc := NewService(logrus.New(), nil)
	svc.Update([]models.RawRecord{{"unit_id": "A"}})
	svc.Update([]models.RawRecord{{"unit_id": "B"}, {"unit_id": "C"}})

	records := svc.Records()
	assert.Len(t, records, 2)
	assert.Equal(t, "B", records[0].UnitID)
}
