package models

import "time"

// RawRecord is one row as returned by the upstream query API. Field types are
// not trusted: numerics may arrive as strings, dates in several formats, and
// any field may be missing, null, or a "-" placeholder.
type RawRecord map[string]interface{}

// Record is a normalized leasing observation. Nullable fields are pointers;
// nil means the upstream value was absent or unparsable. Derived fields are
// computed once at normalization time and never recomputed by consumers.
type Record struct {
	UnitID             string     `json:"unit_id"`
	Address            string     `json:"address"`
	Unit               string     `json:"unit"`
	LeaseType          string     `json:"lease_type"`
	Portfolio          string     `json:"portfolio"`
	UnitStatus         string     `json:"unit_status"`
	DealStatus         string     `json:"deal_status"`
	PreviousDealStatus string     `json:"previous_deal_status"`
	Beds               *float64   `json:"beds"`
	Baths              *float64   `json:"baths"`
	Sqft               *float64   `json:"sqft"`
	Gross              *float64   `json:"gross"`
	PreviousGross      *float64   `json:"previous_gross"`
	ActualRent         *float64   `json:"actual_rent"`
	PreviousActualRent *float64   `json:"previous_actual_rent"`
	Concession         *float64   `json:"concession"`
	Term               *float64   `json:"term"`
	Rentable           *bool      `json:"rentable"`
	MoveIn             *time.Time `json:"move_in"`
	MoveOut            *time.Time `json:"move_out"`
	StartDate          *time.Time `json:"start_date"`
	Expiry             *time.Time `json:"expiry"`
	PreviousMoveOut    *time.Time `json:"previous_move_out"`

	// Derived at normalization time.
	DaysOnMarket *float64 `json:"days_on_market"`
	GrossChange  *float64 `json:"gross_change_value"`
	RentChange   *float64 `json:"rent_change_value"`
	GPSF         *float64 `json:"gpsf"`
	PPSF         *float64 `json:"ppsf"`
	YOY          *float64 `json:"yoy"`

	// Transient annotation attached by the presentation layer; not part of
	// the derived financial fields.
	MostRecentNote string `json:"most_recent_note,omitempty"`
}
