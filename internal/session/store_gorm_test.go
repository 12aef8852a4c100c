package session

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Unique in-memory database per test to avoid cross-test collisions.
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&Record{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestGormStore_SaveFindDelete(t *testing.T) {
	store := NewGormStore(setupTestDB(t))
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	rec := &Record{ID: "abc", AccessToken: "sealed-a", RefreshToken: "sealed-r", UserName: "Jean", CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	if err := store.Save(ctx, rec); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Find(ctx, "abc")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.UserName != "Jean" || got.AccessToken != "sealed-a" {
		t.Fatalf("unexpected record: %+v", got)
	}

	if err := store.Delete(ctx, "abc"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Find(ctx, "abc"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGormStore_DeleteExpired(t *testing.T) {
	store := NewGormStore(setupTestDB(t))
	ctx := context.Background()
	now := time.Now().UTC()

	_ = store.Save(ctx, &Record{ID: "old", AccessToken: "x", CreatedAt: now, ExpiresAt: now.Add(-time.Minute)})
	_ = store.Save(ctx, &Record{ID: "new", AccessToken: "y", CreatedAt: now, ExpiresAt: now.Add(time.Hour)})

	n, err := store.DeleteExpired(ctx, now)
	if err != nil {
		t.Fatalf("delete expired: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 deleted, got %d", n)
	}
	if _, err := store.Find(ctx, "new"); err != nil {
		t.Fatalf("live session removed: %v", err)
	}
}

func TestGormStore_WithManager(t *testing.T) {
	sealer, err := NewSealer("s")
	if err != nil {
		t.Fatal(err)
	}
	m := NewManager(NewGormStore(setupTestDB(t)), sealer, time.Hour, nil)
	ctx := context.Background()

	sess, err := m.Start(ctx, Values{AccessToken: "acc", RefreshToken: "ref", UserName: "Admin"})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	loaded, err := m.Load(ctx, sess.ID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.AccessToken != "acc" || loaded.UserName != "Admin" {
		t.Fatalf("unexpected session: %+v", loaded)
	}
	if err := m.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}
}
