package database

func (d *Database) RunMigrations() error {
	_, err := d.db.Exec(`
		CREATE TABLE IF NOT EXISTS lease_records (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			unit_id TEXT UNIQUE NOT NULL,
			address TEXT,
			unit TEXT,
			lease_type TEXT,
			portfolio TEXT,
			unit_status TEXT,
			deal_status TEXT,
			previous_deal_status TEXT,
			beds REAL,
			baths REAL,
			sqft REAL,
			gross REAL,
			previous_gross REAL,
			actual_rent REAL,
			previous_actual_rent REAL,
			concession REAL,
			term REAL,
			rentable BOOLEAN,
			move_in TEXT,
			move_out TEXT,
			start_date TEXT,
			expiry TEXT,
			previous_move_out TEXT,
			most_recent_note TEXT,
			fetched_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return err
	}

	_, err = d.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_lease_records_unit_status
		ON lease_records(unit_status);
	`)
	if err != nil {
		return err
	}

	_, err = d.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_lease_records_move_out
		ON lease_records(move_out);
	`)
	if err != nil {
		return err
	}

	return nil
}
