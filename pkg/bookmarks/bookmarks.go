// Package bookmarks keeps the learner's bookmarked jobs and courses. It uses
// the API for signed-in users and the local store for anonymous ones.
package bookmarks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"slices"

	"github.com/Dicklesworthstone/skillport/pkg/model"
	"github.com/Dicklesworthstone/skillport/pkg/store"
)

// Local storage keys.
const (
	KeyJobs    = "bookmarkedJobs"
	KeyCourses = "bookmarkedCourses"
)

// Remote is the subset of the API client the service needs.
type Remote interface {
	Bookmarks(ctx context.Context) ([]model.Bookmark, error)
	AddBookmark(ctx context.Context, bm model.Bookmark) error
	RemoveBookmark(ctx context.Context, bm model.Bookmark) error
}

// Local is a string key-value store.
type Local interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// Set is the bookmarked ids split by type.
type Set struct {
	Jobs    []string
	Courses []string
}

// Has reports whether the set contains the target.
func (s Set) Has(t model.BookmarkType, id string) bool {
	switch t {
	case model.BookmarkJob:
		return slices.Contains(s.Jobs, id)
	case model.BookmarkCourse:
		return slices.Contains(s.Courses, id)
	}
	return false
}

// Service reads and writes bookmarks.
type Service struct {
	remote Remote
	local  Local
}

// New creates a service. A nil remote means the user is anonymous.
func New(remote Remote, local Local) *Service {
	return &Service{remote: remote, local: local}
}

// Anonymous reports whether bookmarks live in local storage.
func (s *Service) Anonymous() bool {
	return s.remote == nil
}

// List returns the current bookmarks. Local data never fails: unreadable
// values count as empty.
func (s *Service) List(ctx context.Context) (Set, error) {
	if s.remote == nil {
		return Set{Jobs: s.readLocal(KeyJobs), Courses: s.readLocal(KeyCourses)}, nil
	}
	bms, err := s.remote.Bookmarks(ctx)
	if err != nil {
		return Set{}, fmt.Errorf("list bookmarks: %w", err)
	}
	var set Set
	for _, bm := range bms {
		switch bm.Type {
		case model.BookmarkJob:
			set.Jobs = append(set.Jobs, bm.TargetID)
		case model.BookmarkCourse:
			set.Courses = append(set.Courses, bm.TargetID)
		}
	}
	return set, nil
}

// Add bookmarks a target. Adding twice is harmless.
func (s *Service) Add(ctx context.Context, bm model.Bookmark) error {
	if !bm.Type.IsValid() {
		return fmt.Errorf("invalid bookmark type %q", bm.Type)
	}
	if s.remote != nil {
		return s.remote.AddBookmark(ctx, bm)
	}
	key := localKey(bm.Type)
	ids := s.readLocal(key)
	if slices.Contains(ids, bm.TargetID) {
		return nil
	}
	return s.writeLocal(key, append(ids, bm.TargetID))
}

// Remove deletes a bookmark. Removing a missing one is harmless.
func (s *Service) Remove(ctx context.Context, bm model.Bookmark) error {
	if !bm.Type.IsValid() {
		return fmt.Errorf("invalid bookmark type %q", bm.Type)
	}
	if s.remote != nil {
		return s.remote.RemoveBookmark(ctx, bm)
	}
	key := localKey(bm.Type)
	ids := s.readLocal(key)
	idx := slices.Index(ids, bm.TargetID)
	if idx < 0 {
		return nil
	}
	return s.writeLocal(key, slices.Delete(ids, idx, idx+1))
}

// Toggle flips a bookmark and reports whether it is now bookmarked.
func (s *Service) Toggle(ctx context.Context, bm model.Bookmark) (bool, error) {
	set, err := s.List(ctx)
	if err != nil {
		return false, err
	}
	if set.Has(bm.Type, bm.TargetID) {
		return false, s.Remove(ctx, bm)
	}
	return true, s.Add(ctx, bm)
}

func localKey(t model.BookmarkType) string {
	if t == model.BookmarkCourse {
		return KeyCourses
	}
	return KeyJobs
}

// readLocal decodes a JSON array of ids. Missing, unreadable or malformed
// values are treated as an empty list.
func (s *Service) readLocal(key string) []string {
	if s.local == nil {
		return []string{}
	}
	raw, err := s.local.Get(key)
	if errors.Is(err, store.ErrNotFound) {
		return []string{}
	}
	if err != nil {
		log.Printf("Warning: reading %s: %v", key, err)
		return []string{}
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		log.Printf("Warning: discarding malformed %s: %v", key, err)
		return []string{}
	}
	if ids == nil {
		ids = []string{}
	}
	return ids
}

func (s *Service) writeLocal(key string, ids []string) error {
	if s.local == nil {
		return errors.New("no local store")
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return s.local.Set(key, string(data))
}
