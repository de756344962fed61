package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/Dicklesworthstone/skillport/pkg/model"
)

func openTemp(t *testing.T) *DB {
	t.Helper()
	db, err := Open("sqlite", filepath.Join(t.TempDir(), "nested", "local.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestKVRoundTrip(t *testing.T) {
	db := openTemp(t)

	if _, err := db.Get("bookmarkedJobs"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
	if err := db.Set("bookmarkedJobs", `["42"]`); err != nil {
		t.Fatal(err)
	}
	if err := db.Set("bookmarkedJobs", `["42","7"]`); err != nil {
		t.Fatal(err)
	}
	got, err := db.Get("bookmarkedJobs")
	if err != nil {
		t.Fatal(err)
	}
	if got != `["42","7"]` {
		t.Errorf("Get = %q", got)
	}

	if err := db.Delete("bookmarkedJobs"); err != nil {
		t.Fatal(err)
	}
	if err := db.Delete("bookmarkedJobs"); err != nil {
		t.Errorf("Deleting a missing key should not fail: %v", err)
	}
	if _, err := db.Get("bookmarkedJobs"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
}

func TestBookings(t *testing.T) {
	db := openTemp(t)

	invalid := &model.Booking{ConsultantID: "K1", Name: "Sam"}
	if err := db.CreateBooking(invalid); !errors.Is(err, model.ErrRequired) {
		t.Errorf("Expected ErrRequired for incomplete booking, got %v", err)
	}

	b := &model.Booking{ConsultantID: "K1", Name: "Sam", Email: "sam@example.com", Topic: "Career", Slot: "Mon 10:00"}
	if err := db.CreateBooking(b); err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}
	if b.ID == 0 || b.CreatedAt.IsZero() {
		t.Errorf("Expected ID and CreatedAt filled, got %+v", b)
	}

	taken, err := db.SlotTaken("K1", "Mon 10:00")
	if err != nil || !taken {
		t.Errorf("SlotTaken = (%v, %v), want (true, nil)", taken, err)
	}
	taken, _ = db.SlotTaken("K1", "Wed 09:00")
	if taken {
		t.Error("Expected free slot")
	}

	list, err := db.ListBookings()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Email != "sam@example.com" || list[0].CreatedAt.IsZero() {
		t.Errorf("ListBookings = %+v", list)
	}
}

func TestTryOpenFallsBackToMemory(t *testing.T) {
	// A path under a regular file cannot be created.
	blocker := filepath.Join(t.TempDir(), "file")
	if db, err := Open("sqlite", blocker); err != nil {
		t.Fatal(err)
	} else {
		db.Close()
	}

	db := TryOpen("sqlite", filepath.Join(blocker, "sub", "local.db"))
	defer db.Close()
	if err := db.Set("k", "v"); err != nil {
		t.Fatalf("fallback store should be writable: %v", err)
	}
	if v, _ := db.Get("k"); v != "v" {
		t.Errorf("Get = %q, want v", v)
	}
}
