package surrealdb

import (
	"testing"

	surreal "github.com/surrealdb/surrealdb.go"

	"github.com/bobmcallan/finsight/internal/common"
	tcommon "github.com/bobmcallan/finsight/tests/common"
)

// testDB returns a connection to an isolated database on the shared
// SurrealDB test container.
func testDB(t *testing.T) *surreal.DB {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping SurrealDB container test in short mode")
	}

	return tcommon.StartSurrealDB(t).ConnectDatabase(t)
}

// testLogger returns a silent logger for tests.
func testLogger() *common.Logger {
	return common.NewSilentLogger()
}
