package database

import (
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"leasedash/server/internal/models"
	"leasedash/server/internal/normalizer"
)

// RowFromRaw coerces one upstream row into its persisted shape. Unparsable
// numerics persist as NULL; date strings persist verbatim.
func RowFromRaw(raw models.RawRecord, fetchedAt time.Time) *models.LeaseRow {
	num := func(key string) *float64 {
		if f, ok := normalizer.Float(raw[key]); ok {
			return &f
		}
		return nil
	}

	row := &models.LeaseRow{
		UnitID:             normalizer.String(raw["unit_id"]),
		Address:            normalizer.String(raw["address"]),
		Unit:               normalizer.String(raw["unit"]),
		LeaseType:          normalizer.String(raw["lease_type"]),
		Portfolio:          normalizer.String(raw["portfolio"]),
		UnitStatus:         normalizer.String(raw["unit_status"]),
		DealStatus:         normalizer.String(raw["deal_status"]),
		PreviousDealStatus: normalizer.String(raw["previous_deal_status"]),
		Beds:               num("beds"),
		Baths:              num("baths"),
		Sqft:               num("sqft"),
		Gross:              num("gross"),
		PreviousGross:      num("previous_gross"),
		ActualRent:         num("actual_rent"),
		PreviousActualRent: num("previous_actual_rent"),
		Concession:         num("concession"),
		Term:               num("term"),
		Rentable:           normalizer.Bool(raw["rentable"]),
		MoveIn:             normalizer.String(raw["move_in"]),
		MoveOut:            normalizer.String(raw["move_out"]),
		StartDate:          normalizer.String(raw["start_date"]),
		Expiry:             normalizer.String(raw["expiry"]),
		PreviousMoveOut:    normalizer.String(raw["previous_move_out"]),
		MostRecentNote:     normalizer.String(raw["most_recent_note"]),
		FetchedAt:          fetchedAt,
	}
	if row.UnitID == "" {
		row.UnitID = normalizer.String(raw["id"])
	}
	return row
}

// RowsFromRaw converts a fetched row set, skipping rows with no usable key.
func RowsFromRaw(raws []models.RawRecord, fetchedAt time.Time) []*models.LeaseRow {
	rows := make([]*models.LeaseRow, 0, len(raws))
	for _, raw := range raws {
		row := RowFromRaw(raw, fetchedAt)
		if row.UnitID == "" {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

// UpsertRows inserts or replaces a batch of lease rows keyed by unit_id.
func UpsertRows(tx *gorm.DB, rows []*models.LeaseRow) error {
	if len(rows) == 0 {
		return nil
	}
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "unit_id"}},
		UpdateAll: true,
	}).Create(rows).Error
	if err != nil {
		return fmt.Errorf("failed to upsert lease rows: %w", err)
	}
	return nil
}
