package bookmarks

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/Dicklesworthstone/skillport/pkg/model"
	"github.com/Dicklesworthstone/skillport/pkg/store"
)

func localService(t *testing.T) (*Service, *store.DB) {
	t.Helper()
	db, err := store.Open("sqlite", filepath.Join(t.TempDir(), "local.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return New(nil, db), db
}

func TestAnonymousBookmarkWritesLocalKey(t *testing.T) {
	svc, db := localService(t)
	ctx := context.Background()

	if !svc.Anonymous() {
		t.Fatal("Expected anonymous service")
	}
	if err := svc.Add(ctx, model.Bookmark{Type: model.BookmarkJob, TargetID: "42"}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	raw, err := db.Get(KeyJobs)
	if err != nil {
		t.Fatal(err)
	}
	if raw != `["42"]` {
		t.Errorf("%s = %s, want [\"42\"]", KeyJobs, raw)
	}

	// Adding again does not duplicate.
	svc.Add(ctx, model.Bookmark{Type: model.BookmarkJob, TargetID: "42"})
	if raw, _ := db.Get(KeyJobs); raw != `["42"]` {
		t.Errorf("duplicate add changed value to %s", raw)
	}
}

func TestCorruptedLocalValueIsEmpty(t *testing.T) {
	svc, db := localService(t)
	if err := db.Set(KeyJobs, "{not json"); err != nil {
		t.Fatal(err)
	}
	set, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List should not fail on corrupted data: %v", err)
	}
	if set.Jobs == nil || len(set.Jobs) != 0 {
		t.Errorf("Expected empty job list, got %#v", set.Jobs)
	}

	// Writing over the corrupted value recovers.
	if err := svc.Add(context.Background(), model.Bookmark{Type: model.BookmarkJob, TargetID: "7"}); err != nil {
		t.Fatal(err)
	}
	if raw, _ := db.Get(KeyJobs); raw != `["7"]` {
		t.Errorf("Expected recovery write, got %s", raw)
	}
}

func TestToggleLocal(t *testing.T) {
	svc, _ := localService(t)
	ctx := context.Background()
	bm := model.Bookmark{Type: model.BookmarkCourse, TargetID: "go-101"}

	on, err := svc.Toggle(ctx, bm)
	if err != nil || !on {
		t.Fatalf("first toggle = (%v, %v)", on, err)
	}
	set, _ := svc.List(ctx)
	if !set.Has(model.BookmarkCourse, "go-101") {
		t.Error("Expected course bookmarked")
	}

	on, err = svc.Toggle(ctx, bm)
	if err != nil || on {
		t.Fatalf("second toggle = (%v, %v)", on, err)
	}
	set, _ = svc.List(ctx)
	if set.Has(model.BookmarkCourse, "go-101") {
		t.Error("Expected course removed")
	}
}

func TestInvalidType(t *testing.T) {
	svc, _ := localService(t)
	if err := svc.Add(context.Background(), model.Bookmark{Type: "PODCAST", TargetID: "1"}); err == nil {
		t.Error("Expected error for invalid type")
	}
}

type fakeRemote struct {
	bms     []model.Bookmark
	err     error
	added   []model.Bookmark
	removed []model.Bookmark
}

func (f *fakeRemote) Bookmarks(context.Context) ([]model.Bookmark, error) { return f.bms, f.err }
func (f *fakeRemote) AddBookmark(_ context.Context, bm model.Bookmark) error {
	f.added = append(f.added, bm)
	return nil
}
func (f *fakeRemote) RemoveBookmark(_ context.Context, bm model.Bookmark) error {
	f.removed = append(f.removed, bm)
	return nil
}

func TestRemoteList(t *testing.T) {
	remote := &fakeRemote{bms: []model.Bookmark{
		{Type: model.BookmarkJob, TargetID: "1"},
		{Type: model.BookmarkCourse, TargetID: "c"},
		{Type: model.BookmarkJob, TargetID: "2"},
	}}
	svc := New(remote, nil)

	set, err := svc.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(set.Jobs) != 2 || len(set.Courses) != 1 {
		t.Errorf("set = %+v", set)
	}

	on, err := svc.Toggle(context.Background(), model.Bookmark{Type: model.BookmarkJob, TargetID: "1"})
	if err != nil || on {
		t.Errorf("toggle existing = (%v, %v)", on, err)
	}
	if len(remote.removed) != 1 {
		t.Errorf("Expected remote removal, got %v", remote.removed)
	}
}

func TestRemoteErrorPropagates(t *testing.T) {
	svc := New(&fakeRemote{err: errors.New("offline")}, nil)
	if _, err := svc.List(context.Background()); err == nil {
		t.Error("Expected remote error")
	}
}
