// Package db opens the application's SQLite database.
package db

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lendfolio/lendfolio/internal/errors"

	_ "embed"
	_ "github.com/mattn/go-sqlite3" // Enable sqlite3 driver
)

//go:embed schema.sql
var schemaScript string

// Database holds a single-writer read/write pool and a wider read-only pool.
// Separate pools are a SQLite best practice, see
// https://github.com/mattn/go-sqlite3/issues/1179#issuecomment-1638083995
type Database struct {
	ReadWrite *sqlx.DB
	ReadOnly  *sqlx.DB
}

// New opens the database at url and initializes the schema. Use ":memory:"
// for an in-memory database; each call then gets a private database so
// parallel tests do not share data.
func New(url string) (*Database, error) {
	var (
		err       error
		readWrite *sqlx.DB
		readOnly  *sqlx.DB
	)

	// In-memory databases need shared cache mode so both pools see the same
	// data, and a unique name so separate Database instances stay isolated.
	// mode=ro does not combine with mode=memory, so the read-only pool is
	// enforced with the query_only pragma instead.
	// See https://www.sqlite.org/inmemorydb.html.
	readWriteMode := "rwc"
	readOnlyMode := "ro"
	cacheConfig := "&cache=private"
	if url == ":memory:" {
		url = uuid.NewString()
		readWriteMode = "memory"
		readOnlyMode = "memory"
		cacheConfig = "&cache=shared"
	}
	commonConfig := "_journal_mode=wal&_busy_timeout=5000&_synchronous=normal&_foreign_keys=on"

	// Options prefixed with underscore '_' are SQLite pragmas documented at
	// https://www.sqlite.org/pragma.html, the rest are URI parameters from
	// https://www.sqlite.org/uri.html.
	readWriteConfig := fmt.Sprintf("file:%s?mode=%s&_txlock=immediate&%s%s", url, readWriteMode, commonConfig, cacheConfig)
	readOnlyConfig := fmt.Sprintf("file:%s?mode=%s&_txlock=deferred&_query_only=true&%s%s",
		url, readOnlyMode, commonConfig, cacheConfig)

	if readWrite, err = sqlx.Connect("sqlite3", readWriteConfig); err != nil {
		return nil, errors.Wrap(err, "open read-write database")
	}
	readWrite.SetMaxOpenConns(1)
	readWrite.SetMaxIdleConns(1)
	readWrite.SetConnMaxLifetime(time.Hour)
	readWrite.SetConnMaxIdleTime(time.Hour)

	if _, err = readWrite.Exec(schemaScript); err != nil {
		return nil, errors.Wrap(err, "initialize schema")
	}

	if readOnly, err = sqlx.Connect("sqlite3", readOnlyConfig); err != nil {
		return nil, errors.Wrap(err, "open read-only database")
	}
	maxReadConns := 10
	readOnly.SetMaxOpenConns(maxReadConns)
	readOnly.SetMaxIdleConns(maxReadConns)
	readOnly.SetConnMaxLifetime(time.Hour)
	readOnly.SetConnMaxIdleTime(time.Hour)

	return &Database{
		ReadWrite: readWrite,
		ReadOnly:  readOnly,
	}, nil
}

// Close closes both pools.
func (d *Database) Close() error {
	return errors.Join(d.ReadWrite.Close(), d.ReadOnly.Close())
}
