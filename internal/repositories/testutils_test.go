package repositories_test

import (
	"testing"

	_ "embed"

	"github.com/lendfolio/lendfolio/internal/db"
)

//go:embed testdata/fixtures.sql
var testFixtures string

// newTestDB creates a new in-memory database with test fixtures applied.
func newTestDB(t *testing.T) *db.Database {
	t.Helper()

	dbs, err := db.New(":memory:")
	if err != nil {
		t.Fatal(err)
	}

	// The mode=ro flag doesn't work together with :memory: and cache=shared,
	// so enforce read-only behavior with a pragma.
	if _, err = dbs.ReadOnly.Exec("PRAGMA query_only = TRUE;"); err != nil {
		t.Fatal(err)
	}

	if _, err = dbs.ReadWrite.Exec(testFixtures); err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() {
		if closeErr := dbs.Close(); closeErr != nil {
			t.Fatal(closeErr)
		}
	})

	return dbs
}
