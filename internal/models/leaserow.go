package models

import "time"

// LeaseRow is the persisted shape of one upstream row. Dates stay as the raw
// strings the upstream sent so a reload normalizes exactly like a fresh
// fetch.
type LeaseRow struct {
	ID                 int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UnitID             string    `gorm:"column:unit_id;uniqueIndex" json:"unit_id"`
	Address            string    `gorm:"column:address" json:"address"`
	Unit               string    `gorm:"column:unit" json:"unit"`
	LeaseType          string    `gorm:"column:lease_type" json:"lease_type"`
	Portfolio          string    `gorm:"column:portfolio" json:"portfolio"`
	UnitStatus         string    `gorm:"column:unit_status" json:"unit_status"`
	DealStatus         string    `gorm:"column:deal_status" json:"deal_status"`
	PreviousDealStatus string    `gorm:"column:previous_deal_status" json:"previous_deal_status"`
	Beds               *float64  `gorm:"column:beds" json:"beds"`
	Baths              *float64  `gorm:"column:baths" json:"baths"`
	Sqft               *float64  `gorm:"column:sqft" json:"sqft"`
	Gross              *float64  `gorm:"column:gross" json:"gross"`
	PreviousGross      *float64  `gorm:"column:previous_gross" json:"previous_gross"`
	ActualRent         *float64  `gorm:"column:actual_rent" json:"actual_rent"`
	PreviousActualRent *float64  `gorm:"column:previous_actual_rent" json:"previous_actual_rent"`
	Concession         *float64  `gorm:"column:concession" json:"concession"`
	Term               *float64  `gorm:"column:term" json:"term"`
	Rentable           *bool     `gorm:"column:rentable" json:"rentable"`
	MoveIn             string    `gorm:"column:move_in" json:"move_in"`
	MoveOut            string    `gorm:"column:move_out" json:"move_out"`
	StartDate          string    `gorm:"column:start_date" json:"start_date"`
	Expiry             string    `gorm:"column:expiry" json:"expiry"`
	PreviousMoveOut    string    `gorm:"column:previous_move_out" json:"previous_move_out"`
	MostRecentNote     string    `gorm:"column:most_recent_note" json:"most_recent_note"`
	FetchedAt          time.Time `gorm:"column:fetched_at" json:"fetched_at"`
}

func (LeaseRow) TableName() string {
	return "lease_records"
}

// ToRaw rebuilds the upstream row shape so loaded snapshots flow through the
// same normalization path as a live fetch.
func (l *LeaseRow) ToRaw() RawRecord {
	raw := RawRecord{
		"unit_id":              l.UnitID,
		"address":              l.Address,
		"unit":                 l.Unit,
		"lease_type":           l.LeaseType,
		"portfolio":            l.Portfolio,
		"unit_status":          l.UnitStatus,
		"deal_status":          l.DealStatus,
		"previous_deal_status": l.PreviousDealStatus,
		"move_in":              l.MoveIn,
		"move_out":             l.MoveOut,
		"start_date":           l.StartDate,
		"expiry":               l.Expiry,
		"previous_move_out":    l.PreviousMoveOut,
		"most_recent_note":     l.MostRecentNote,
	}
	setNum := func(key string, v *float64) {
		if v != nil {
			raw[key] = *v
		}
	}
	setNum("beds", l.Beds)
	setNum("baths", l.Baths)
	setNum("sqft", l.Sqft)
	setNum("gross", l.Gross)
	setNum("previous_gross", l.PreviousGross)
	setNum("actual_rent", l.ActualRent)
	setNum("previous_actual_rent", l.PreviousActualRent)
	setNum("concession", l.Concession)
	setNum("term", l.Term)
	if l.Rentable != nil {
		raw["rentable"] = *l.Rentable
	}
	return raw
}
