package models

import (
	"context"
	"path/filepath"
	"testing"
)

func TestWithSQLiteForeignKeys(t *testing.T) {
	cases := map[string]string{
		"./db/rfrnce.db":                          "./db/rfrnce.db?_pragma=foreign_keys(1)",
		"file:x?mode=memory&cache=shared":         "file:x?mode=memory&cache=shared&_pragma=foreign_keys(1)",
		"file:y?_pragma=foreign_keys(1)":          "file:y?_pragma=foreign_keys(1)",
		"file:z?_pragma=foreign_keys(0)&mode=rwc": "file:z?_pragma=foreign_keys(0)&mode=rwc",
	}
	for dsn, want := range cases {
		if got := withSQLiteForeignKeys(dsn); got != want {
			t.Fatalf("dsn %q: got %q want %q", dsn, got, want)
		}
	}
}

func TestOpenDBEnablesForeignKeysOnEveryConnection(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "fk.db")
	db, err := OpenDB("sqlite", dsn, DBPoolConfig{MaxOpenConns: 4, MaxIdleConns: 4}, false)
	if err != nil {
		t.Fatalf("open db failed: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db failed: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		conn, err := sqlDB.Conn(ctx)
		if err != nil {
			t.Fatalf("acquire conn %d failed: %v", i, err)
		}
		defer conn.Close()

		var enabled int
		if err := conn.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&enabled); err != nil {
			t.Fatalf("query pragma on conn %d failed: %v", i, err)
		}
		if enabled != 1 {
			t.Fatalf("conn %d: foreign keys should be enabled, got %d", i, enabled)
		}
	}
}
