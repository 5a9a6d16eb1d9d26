package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"leasedash/server/internal/models"
)

// Database is the local snapshot store for fetched leasing rows. Reads go
// through database/sql; the batch ingestion path upserts through gorm on the
// same connection.
type Database struct {
	db  *sql.DB
	orm *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable foreign keys
	_, err = db.Exec("PRAGMA foreign_keys = ON")
	if err != nil {
		return nil, err
	}

	orm, err := gorm.Open(sqlite.New(sqlite.Config{Conn: db}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm session: %w", err)
	}

	return &Database{db: db, orm: orm}, nil
}

// ORM exposes the gorm handle for the transactional upsert path.
func (d *Database) ORM() *gorm.DB {
	return d.orm
}

func (d *Database) Close() error {
	return d.db.Close()
}

// LoadRecords returns every persisted row as an upstream-shaped raw record,
// so a reload normalizes exactly like a fresh fetch.
func (d *Database) LoadRecords() ([]models.RawRecord, error) {
	rows, err := d.db.Query(`
        SELECT
            unit_id, address, unit, lease_type, portfolio,
            unit_status, deal_status, previous_deal_status,
            beds, baths, sqft,
            gross, previous_gross, actual_rent, previous_actual_rent,
            concession, term, rentable,
            COALESCE(move_in, '') as move_in,
            COALESCE(move_out, '') as move_out,
            COALESCE(start_date, '') as start_date,
            COALESCE(expiry, '') as expiry,
            COALESCE(previous_move_out, '') as previous_move_out,
            COALESCE(most_recent_note, '') as most_recent_note
        FROM lease_records
        ORDER BY address, unit
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.RawRecord
	for rows.Next() {
		var row models.LeaseRow
		var unitID, address, unit, leaseType, portfolio sql.NullString
		var unitStatus, dealStatus, prevDealStatus sql.NullString
		var beds, baths, sqft, gross, prevGross, actualRent, prevActualRent, concession, term sql.NullFloat64
		var rentable sql.NullBool

		err := rows.Scan(
			&unitID,
			&address,
			&unit,
			&leaseType,
			&portfolio,
			&unitStatus,
			&dealStatus,
			&prevDealStatus,
			&beds,
			&baths,
			&sqft,
			&gross,
			&prevGross,
			&actualRent,
			&prevActualRent,
			&concession,
			&term,
			&rentable,
			&row.MoveIn,
			&row.MoveOut,
			&row.StartDate,
			&row.Expiry,
			&row.PreviousMoveOut,
			&row.MostRecentNote,
		)
		if err != nil {
			return nil, err
		}

		// Handle nullable string fields
		if unitID.Valid {
			row.UnitID = unitID.String
		}
		if address.Valid {
			row.Address = address.String
		}
		if unit.Valid {
			row.Unit = unit.String
		}
		if leaseType.Valid {
			row.LeaseType = leaseType.String
		}
		if portfolio.Valid {
			row.Portfolio = portfolio.String
		}
		if unitStatus.Valid {
			row.UnitStatus = unitStatus.String
		}
		if dealStatus.Valid {
			row.DealStatus = dealStatus.String
		}
		if prevDealStatus.Valid {
			row.PreviousDealStatus = prevDealStatus.String
		}

		// Handle nullable numeric fields
		assign := func(dst **float64, src sql.NullFloat64) {
			if src.Valid {
				v := src.Float64
				*dst = &v
			}
		}
		assign(&row.Beds, beds)
		assign(&row.Baths, baths)
		assign(&row.Sqft, sqft)
		assign(&row.Gross, gross)
		assign(&row.PreviousGross, prevGross)
		assign(&row.ActualRent, actualRent)
		assign(&row.PreviousActualRent, prevActualRent)
		assign(&row.Concession, concession)
		assign(&row.Term, term)
		if rentable.Valid {
			b := rentable.Bool
			row.Rentable = &b
		}

		records = append(records, row.ToRaw())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lease records: %v", err)
	}
	return records, nil
}

// CountRecords returns the number of persisted rows.
func (d *Database) CountRecords() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM lease_records").Scan(&count)
	return count, err
}

// LastFetchedAt returns when the newest persisted row was fetched, or the
// zero time for an empty store.
func (d *Database) LastFetchedAt() (time.Time, error) {
	var raw sql.NullString
	err := d.db.QueryRow("SELECT MAX(fetched_at) FROM lease_records").Scan(&raw)
	if err != nil {
		return time.Time{}, err
	}
	if !raw.Valid || raw.String == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05.999999999-07:00", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, raw.String); err == nil {
			return t, nil
		}
	}
	return time.Time{}, nil
}

// DeleteStale removes rows last fetched before the cutoff, so units dropped
// upstream eventually leave the snapshot.
func (d *Database) DeleteStale(cutoff time.Time) (int64, error) {
	result, err := d.db.Exec("DELETE FROM lease_records WHERE fetched_at < ?", cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
