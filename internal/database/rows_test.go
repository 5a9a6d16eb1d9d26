package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leasedash/server/internal/models"
	"leasedash/server/internal/normalizer"
)

func TestRowFromRawRoundTrip(t *testing.T) {
	now := time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC)
	raw := models.RawRecord{
		"unit_id":        "U-1",
		"address":        "10 Main St",
		"unit_status":    "Vacant",
		"gross":          "$3,000",
		"previous_gross": 2500.0,
		"sqft":           1000.0,
		"rentable":       1.0,
		"move_out":       "2024-06-10",
	}

	row := RowFromRaw(raw, now)
	assert.Equal(t, "U-1", row.UnitID)
	assert.Equal(t, 3000.0, *row.Gross)
	assert.True(t, *row.Rentable)
	// Date strings persist verbatim
	assert.Equal(t, "2024-06-10", row.MoveOut)

	// A reloaded row normalizes identically to the live fetch
	fresh := normalizer.Normalize(raw, now)
	reloaded := normalizer.Normalize(row.ToRaw(), now)

	assert.Equal(t, fresh.UnitID, reloaded.UnitID)
	assert.Equal(t, *fresh.Gross, *reloaded.Gross)
	assert.Equal(t, *fresh.GrossChange, *reloaded.GrossChange)
	assert.Equal(t, *fresh.DaysOnMarket, *reloaded.DaysOnMarket)
	assert.Equal(t, fresh.MoveOut.Unix(), reloaded.MoveOut.Unix())
}

func TestRowFromRawFallbackID(t *testing.T) {
	row := RowFromRaw(models.RawRecord{"id": "row-9"}, time.Now())
	assert.Equal(t, "row-9", row.UnitID)
}

func TestRowsFromRawSkipsKeyless(t *testing.T) {
	rows := RowsFromRaw([]models.RawRecord{
		{"unit_id": "U-1"},
		{"address": "no key"},
		{"id": "U-2"},
	}, time.Now())

	require.Len(t, rows, 2)
	assert.Equal(t, "U-1", rows[0].UnitID)
	assert.Equal(t, "U-2", rows[1].UnitID)
}
