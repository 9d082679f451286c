// src/database/database.go
package database

import (
	"database/sql"
	"fmt"

	cache "github.com/patrickmn/go-cache"
	"github.com/username/paybook/src/logger"
	_ "modernc.org/sqlite"
)

// InitDB opens (and if needed creates) the bookkeeping database and returns a
// Store bound to it. The schema and the lookup seed rows are ensured on every
// start, so the id lookups the import pipeline depends on (email_status
// "primary", contact_class "retail", ...) always resolve.
func InitDB(databasePath string) (*Store, error) {
	db, err := sql.Open("sqlite", databasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database at %s: %w", databasePath, err)
	}

	if _, err := db.Exec(createTableStatement); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	if _, err := db.Exec(seedStatement); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to seed lookup tables: %w", err)
	}

	if logger.L != nil {
		logger.L.Info("Database tables ensured/created.", "databasePath", databasePath)
	}

	return NewStore(db), nil
}

const createTableStatement = `
CREATE TABLE IF NOT EXISTS raw_imports (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	stages INTEGER NOT NULL DEFAULT 0,
	date TEXT,
	time TEXT,
	time_zone TEXT,
	name TEXT,
	type TEXT,
	status TEXT,
	currency TEXT,
	gross TEXT,
	fee TEXT,
	net TEXT,
	from_email TEXT,
	to_email TEXT,
	transaction_id TEXT,
	shipping_address TEXT,
	address_status TEXT,
	item_title TEXT,
	item_id TEXT,
	shipping TEXT,
	insurance_amount TEXT,
	sales_tax TEXT,
	option1_name TEXT,
	option1_value TEXT,
	option2_name TEXT,
	option2_value TEXT,
	reference_txn_id TEXT,
	invoice_number TEXT,
	custom_number TEXT,
	quantity TEXT,
	receipt_id TEXT,
	balance TEXT,
	address_line1 TEXT,
	address_line2 TEXT,
	city TEXT,
	state TEXT,
	postal_code TEXT,
	country TEXT,
	phone TEXT,
	subject TEXT,
	note TEXT,
	country_code TEXT,
	balance_impact TEXT
);

CREATE TABLE IF NOT EXISTS countries (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT,
	abbreviation TEXT
);

CREATE TABLE IF NOT EXISTS customers (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	date_created TEXT,
	name TEXT,
	address1 TEXT,
	address2 TEXT,
	city TEXT,
	state TEXT,
	zip TEXT,
	email_address TEXT,
	email_status_id INTEGER,
	phone_number TEXT,
	phone_status_id INTEGER,
	description TEXT,
	notes TEXT,
	country_id INTEGER,
	class_id INTEGER
);

CREATE TABLE IF NOT EXISTS vendors (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	date_created TEXT,
	name TEXT,
	contact_name TEXT,
	email_address TEXT,
	email_status_id INTEGER,
	phone_number TEXT,
	phone_status_id INTEGER,
	description TEXT,
	notes TEXT,
	type_id INTEGER
);

CREATE TABLE IF NOT EXISTS sale_records (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	date TEXT,
	customer_id INTEGER,
	raw_import_id INTEGER,
	status_id INTEGER,
	transaction_uuid TEXT,
	gross REAL,
	fees REAL,
	shipping REAL,
	notes TEXT,
	committed BOOLEAN DEFAULT FALSE
);

CREATE TABLE IF NOT EXISTS purchase_records (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	date TEXT,
	vendor_id INTEGER,
	raw_import_id INTEGER,
	status_id INTEGER,
	type_id INTEGER,
	transaction_uuid TEXT,
	gross REAL,
	tax REAL,
	shipping REAL,
	notes TEXT,
	committed BOOLEAN DEFAULT FALSE
);

CREATE TABLE IF NOT EXISTS import_runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_uuid TEXT NOT NULL,
	file_name TEXT NOT NULL,
	started_at TEXT NOT NULL,
	finished_at TEXT,
	status TEXT NOT NULL,
	accepted INTEGER DEFAULT 0,
	rejected INTEGER DEFAULT 0,
	countries INTEGER DEFAULT 0,
	customers INTEGER DEFAULT 0,
	vendors INTEGER DEFAULT 0,
	sales INTEGER DEFAULT 0,
	purchases INTEGER DEFAULT 0,
	error TEXT
);

CREATE TABLE IF NOT EXISTS email_status (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS phone_status (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS contact_class (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS vendor_type (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS sale_status (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS purchase_status (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS purchase_type (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE
);
`

// The import pipeline resolves these by name; they must exist before any
// import runs.
const seedStatement = `
INSERT OR IGNORE INTO email_status (name) VALUES ('primary'), ('secondary'), ('inactive');
INSERT OR IGNORE INTO phone_status (name) VALUES ('primary'), ('secondary'), ('inactive');
INSERT OR IGNORE INTO contact_class (name) VALUES ('retail'), ('wholesale');
INSERT OR IGNORE INTO vendor_type (name) VALUES ('unknown'), ('supplier'), ('service');
INSERT OR IGNORE INTO sale_status (name) VALUES ('complete'), ('pending'), ('refunded');
INSERT OR IGNORE INTO purchase_status (name) VALUES ('complete'), ('pending'), ('refunded');
INSERT OR IGNORE INTO purchase_type (name) VALUES ('unknown'), ('goods'), ('services');
`

// lookupTables are immutable after seeding, so their name->id resolutions are
// safe to cache for the life of the process.
var lookupTables = map[string]bool{
	"email_status":    true,
	"phone_status":    true,
	"contact_class":   true,
	"vendor_type":     true,
	"sale_status":     true,
	"purchase_status": true,
	"purchase_type":   true,
}

// NewStore wraps an open database handle. Exposed for tests that open their
// own in-memory database.
func NewStore(db *sql.DB) *Store {
	return &Store{
		db:      db,
		q:       db,
		lookups: cache.New(cache.NoExpiration, 0),
	}
}
