package ui

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Dicklesworthstone/skillport/pkg/api"
	"github.com/Dicklesworthstone/skillport/pkg/bookmarks"
	"github.com/Dicklesworthstone/skillport/pkg/loader"
	"github.com/Dicklesworthstone/skillport/pkg/model"
)

// fakePortal serves the jobs, bookmarks and job-profile endpoints.
type fakePortal struct {
	mu        sync.Mutex
	jobs      []model.Job
	bookmarks []model.Bookmark
	profile   *model.JobProfile
	failJobs  bool
}

func (f *fakePortal) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch {
	case r.URL.Path == "/jobs":
		if f.failJobs {
			http.Error(w, "down", http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(f.jobs)
	case r.URL.Path == "/bookmarks" && r.Method == http.MethodGet:
		json.NewEncoder(w).Encode(f.bookmarks)
	case r.URL.Path == "/bookmarks" && r.Method == http.MethodPost:
		var bm model.Bookmark
		json.NewDecoder(r.Body).Decode(&bm)
		f.bookmarks = append(f.bookmarks, bm)
		w.WriteHeader(http.StatusCreated)
	case r.URL.Path == "/job-profile":
		switch r.Method {
		case http.MethodGet:
			if f.profile == nil {
				http.NotFound(w, r)
				return
			}
			json.NewEncoder(w).Encode(f.profile)
		case http.MethodPut:
			var p model.JobProfile
			json.NewDecoder(r.Body).Decode(&p)
			f.profile = &p
			json.NewEncoder(w).Encode(p)
		case http.MethodDelete:
			f.profile = nil
			w.WriteHeader(http.StatusNoContent)
		}
	default:
		http.NotFound(w, r)
	}
}

func newAuthedEnv(t *testing.T, ds loader.Dataset, portal *fakePortal) *env {
	t.Helper()
	srv := httptest.NewServer(portal)
	t.Cleanup(srv.Close)
	client := api.New(srv.URL, "test-token", 0)

	e := newTestEnv(t, ds)
	e.api = client
	e.authed = true
	e.marks = bookmarks.New(client, e.store)
	return e
}

// run executes cmd and returns its message.
func run(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("Expected a command")
	}
	return cmd()
}

func TestJobsLoadAndBookmark(t *testing.T) {
	portal := &fakePortal{
		jobs: []model.Job{
			{ID: "J1", Title: "Go Developer", Company: "Acme", URL: "https://acme.example/jobs/1"},
			{ID: "J2", Title: "Data Analyst", Company: "Globex"},
		},
		bookmarks: []model.Bookmark{{Type: model.BookmarkJob, TargetID: "J2"}},
	}
	e := newAuthedEnv(t, loader.Dataset{}, portal)
	s := newJobsScreen(e)
	s.Resize(1280)
	s.SetSize(100, 20)

	msg := run(t, s.Activate())
	loaded, ok := msg.(jobsLoadedMsg)
	if !ok || loaded.err != nil {
		t.Fatalf("Expected jobs loaded, got %#v", msg)
	}
	s.Update(loaded)
	if got := len(s.nav.Items()); got != 2 {
		t.Fatalf("Expected 2 jobs, got %d", got)
	}
	if !s.marks.Has(model.BookmarkJob, "J2") {
		t.Error("Expected J2 to be bookmarked")
	}
	if len(e.jobs) != 2 {
		t.Errorf("Expected the listing shared with other screens, got %d", len(e.jobs))
	}
	if s.Activate() != nil {
		t.Error("Expected no reload once loaded")
	}

	toggled, ok := run(t, s.Update(keyMsg("b"))).(bookmarkToggledMsg)
	if !ok || toggled.err != nil || !toggled.on || toggled.bm.TargetID != "J1" {
		t.Fatalf("Expected J1 bookmarked, got %+v", toggled)
	}
	s.Update(toggled)
	if !s.marks.Has(model.BookmarkJob, "J1") {
		t.Error("Expected J1 in the marks after toggle")
	}
}

func TestJobsBookmarkFailureClearsMarks(t *testing.T) {
	s := newJobsScreen(newTestEnv(t, loader.Dataset{}))
	s.Update(bookmarksLoadedMsg{marks: bookmarks.Set{Jobs: []string{"J1"}}})
	if !s.marks.Has(model.BookmarkJob, "J1") {
		t.Fatal("Expected J1 bookmarked")
	}
	s.Update(bookmarksLoadedMsg{err: errors.New("unavailable")})
	if s.marks.Has(model.BookmarkJob, "J1") {
		t.Error("Expected a failed bookmark fetch to clear stale marks")
	}
}

func TestJobsLoadFailureLeavesListEmpty(t *testing.T) {
	portal := &fakePortal{failJobs: true}
	e := newAuthedEnv(t, loader.Dataset{}, portal)
	e.jobs = []model.Job{{ID: "stale"}}
	s := newJobsScreen(e)
	s.Resize(1280)
	s.SetSize(100, 20)

	loaded := run(t, s.Activate()).(jobsLoadedMsg)
	if loaded.err == nil {
		t.Fatal("Expected a load error")
	}
	toast, ok := run(t, s.Update(loaded)).(toastMsg)
	if !ok || !toast.isErr {
		t.Errorf("Expected an error toast, got %#v", toast)
	}
	if len(s.nav.Items()) != 0 || len(e.jobs) != 0 {
		t.Errorf("Expected an empty listing, got %d items", len(s.nav.Items()))
	}
	if !strings.Contains(s.View(), "unavailable") {
		t.Error("Expected the unavailable message")
	}
}

func TestJobsCopyLink(t *testing.T) {
	var copied string
	orig := copyToClipboard
	copyToClipboard = func(s string) error { copied = s; return nil }
	t.Cleanup(func() { copyToClipboard = orig })

	e := newTestEnv(t, loader.Dataset{})
	s := newJobsScreen(e)
	s.Update(jobsLoadedMsg{jobs: []model.Job{{ID: "J1", Title: "Go Developer", URL: "https://acme.example/1"}}})
	s.Update(keyMsg("y"))
	if copied != "https://acme.example/1" {
		t.Errorf("Expected the job URL copied, got %q", copied)
	}
}

func TestBookmarksShowsStubsForUnknownJobs(t *testing.T) {
	ds := loader.Dataset{Courses: []model.Course{{ID: "c1", Title: "Go Fundamentals", Provider: "SkillPort"}}}
	e := newTestEnv(t, ds)
	s := newBookmarksScreen(e)
	s.SetSize(80, 20)

	s.Update(bookmarksLoadedMsg{marks: bookmarks.Set{Jobs: []string{"42"}, Courses: []string{"c1", "gone"}}})
	if got := len(s.rows); got != 2 {
		t.Fatalf("Expected 2 rows (unknown course skipped), got %d", got)
	}
	if s.rows[0].title != "Job #42" || s.rows[0].sub != "not in the current listing" {
		t.Errorf("Expected a job stub first, got %+v", s.rows[0])
	}
	out := s.View()
	for _, want := range []string{"Jobs (1)", "Courses (1)", "Go Fundamentals"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in view", want)
		}
	}

	e.jobs = []model.Job{{ID: "42", Title: "Platform Engineer", Company: "Initech"}}
	s.Update(jobsLoadedMsg{jobs: e.jobs})
	if s.rows[0].title != "Platform Engineer" {
		t.Errorf("Expected the stub resolved once jobs load, got %q", s.rows[0].title)
	}
}

func TestBookmarksRemoveLocal(t *testing.T) {
	ds := loader.Dataset{Courses: []model.Course{{ID: "c1", Title: "Go Fundamentals"}}}
	e := newTestEnv(t, ds)
	if _, err := e.marks.Toggle(context.Background(), model.Bookmark{Type: model.BookmarkCourse, TargetID: "c1"}); err != nil {
		t.Fatalf("seed bookmark: %v", err)
	}
	s := newBookmarksScreen(e)
	s.Update(run(t, loadBookmarksCmd(e)))
	if len(s.rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(s.rows))
	}

	toggled := run(t, s.Update(keyMsg("d"))).(bookmarkToggledMsg)
	if toggled.err != nil || toggled.on {
		t.Fatalf("Expected bookmark removed, got %+v", toggled)
	}
	s.Update(toggled)
	if len(s.rows) != 0 {
		t.Errorf("Expected no rows after removal, got %d", len(s.rows))
	}
}

func TestBookmarksLoadError(t *testing.T) {
	s := newBookmarksScreen(newTestEnv(t, loader.Dataset{}))
	cmd := s.Update(bookmarksLoadedMsg{err: errors.New("offline")})
	if toast, ok := run(t, cmd).(toastMsg); !ok || !toast.isErr {
		t.Errorf("Expected an error toast, got %#v", toast)
	}
	if !strings.Contains(s.View(), "No bookmarks yet") {
		t.Error("Expected the empty state after a failed load")
	}
}

func testConsultants() []model.Consultant {
	return []model.Consultant{
		{ID: "K1", Name: "Ada Park", Expertise: "Career coaching", Slots: []string{"Mon 10:00", "Mon 14:00"}},
		{ID: "K2", Name: "Ben Okafor", Expertise: "Go", Slots: []string{"Fri 13:00"}},
	}
}

func TestConsultationsBookStoresBooking(t *testing.T) {
	e := newTestEnv(t, loader.Dataset{Consultants: testConsultants()})
	s := newConsultationsScreen(e)
	s.SetSize(80, 24)
	s.Activate()

	s.draft = model.Booking{ConsultantID: "K1", Name: "Sam", Email: "sam@example.com", Topic: "CV review", Slot: "Mon 10:00"}
	toast := run(t, s.book()).(toastMsg)
	if toast.isErr || toast.text != "Booked Mon 10:00" {
		t.Errorf("Expected a booking toast, got %+v", toast)
	}
	if len(s.bookings) != 1 {
		t.Fatalf("Expected 1 booking, got %d", len(s.bookings))
	}

	toast = run(t, s.book()).(toastMsg)
	if !toast.isErr {
		t.Error("Expected a second booking of the same slot to fail")
	}
	if len(s.bookings) != 1 {
		t.Errorf("Expected still 1 booking, got %d", len(s.bookings))
	}
}

func TestConsultationsNoFreeSlots(t *testing.T) {
	e := newTestEnv(t, loader.Dataset{Consultants: testConsultants()})
	s := newConsultationsScreen(e)
	if err := e.store.CreateBooking(&model.Booking{ConsultantID: "K2", Name: "Sam", Email: "sam@example.com", Topic: "Go", Slot: "Fri 13:00"}); err != nil {
		t.Fatalf("seed booking: %v", err)
	}

	s.Update(keyMsg("down"))
	toast := run(t, s.Update(keyMsg("enter"))).(toastMsg)
	if !toast.isErr || !strings.Contains(toast.text, "no free slots") {
		t.Errorf("Expected a no-free-slots toast, got %+v", toast)
	}
	if s.form != nil {
		t.Error("Expected no form without free slots")
	}
}

func TestConsultationsFormCancel(t *testing.T) {
	e := newTestEnv(t, loader.Dataset{Consultants: testConsultants()})
	s := newConsultationsScreen(e)
	s.SetSize(80, 24)

	s.Update(keyMsg("enter"))
	if !s.Capturing() {
		t.Fatal("Expected the booking form to capture keys")
	}
	s.Update(keyMsg("esc"))
	if s.Capturing() {
		t.Error("Expected esc to close the form")
	}
}

func TestProfileLoadMissingAndSave(t *testing.T) {
	portal := &fakePortal{}
	e := newAuthedEnv(t, loader.Dataset{}, portal)
	s := newProfileScreen(e)
	s.SetSize(80, 24)

	loaded := run(t, s.Activate()).(profileLoadedMsg)
	if loaded.err != nil || loaded.profile != nil {
		t.Fatalf("Expected no profile and no error, got %+v", loaded)
	}
	s.Update(loaded)
	if !strings.Contains(s.View(), "no job profile yet") {
		t.Error("Expected the create prompt")
	}

	s.draft = profileDraft{headline: " Go engineer ", location: "Berlin", skills: "go, sql, ", open: true}
	saved := run(t, s.submit()).(profileSavedMsg)
	if saved.err != nil {
		t.Fatalf("Expected save to succeed, got %v", saved.err)
	}
	s.Update(saved)
	if s.profile == nil || s.profile.Headline != "Go engineer" || len(s.profile.Skills) != 2 {
		t.Errorf("Expected the trimmed profile stored, got %+v", s.profile)
	}
	if !strings.Contains(s.View(), "open to work") {
		t.Error("Expected the open-to-work marker")
	}
}

func TestProfileSubmitValidates(t *testing.T) {
	e := newAuthedEnv(t, loader.Dataset{}, &fakePortal{})
	s := newProfileScreen(e)
	s.draft = profileDraft{headline: "  ", location: "Berlin"}
	toast, ok := run(t, s.submit()).(toastMsg)
	if !ok || !toast.isErr || !strings.Contains(toast.text, "headline") {
		t.Errorf("Expected a headline error toast, got %#v", toast)
	}
}

func TestProfileDelete(t *testing.T) {
	portal := &fakePortal{profile: &model.JobProfile{Headline: "Go engineer", Location: "Berlin"}}
	e := newAuthedEnv(t, loader.Dataset{}, portal)
	s := newProfileScreen(e)
	s.Update(run(t, s.Activate()))
	if s.profile == nil {
		t.Fatal("Expected the profile to load")
	}

	s.deleting = true
	s.draft.confirm = true
	deleted := run(t, s.submit()).(profileDeletedMsg)
	if deleted.err != nil {
		t.Fatalf("Expected delete to succeed, got %v", deleted.err)
	}
	s.Update(deleted)
	if s.profile != nil {
		t.Error("Expected the profile cleared")
	}
}

func TestProfileAnonymous(t *testing.T) {
	s := newProfileScreen(newTestEnv(t, loader.Dataset{}))
	if s.Activate() != nil {
		t.Error("Expected no load for anonymous users")
	}
	if s.Update(keyMsg("e")) != nil || s.form != nil {
		t.Error("Expected editing to be disabled for anonymous users")
	}
	if !strings.Contains(s.View(), "Sign in") {
		t.Error("Expected a sign-in hint")
	}
}

func TestDashboardExport(t *testing.T) {
	ds := loader.Dataset{Courses: []model.Course{
		{ID: "c1", Title: "Go Fundamentals", Hours: 10, Enrolled: true, Progress: 0.5},
	}}
	e := newTestEnv(t, ds)
	e.exportDir = t.TempDir()
	s := newDashboardScreen(e)
	s.SetSize(100, 30)

	toast := run(t, s.Update(keyMsg("e"))).(toastMsg)
	if toast.isErr {
		t.Fatalf("Expected export to succeed, got %q", toast.text)
	}
	for _, name := range []string{"skillport-progress.svg", "skillport-progress.png"} {
		if _, err := os.Stat(filepath.Join(e.exportDir, name)); err != nil {
			t.Errorf("Expected %s written: %v", name, err)
		}
	}
	if !strings.Contains(s.View(), "Go Fundamentals") {
		t.Error("Expected the enrolled course in the dashboard")
	}
}

func TestCoursesDetailAndBack(t *testing.T) {
	ds := loader.Dataset{Courses: []model.Course{
		{ID: "c1", Title: "Go Fundamentals", Provider: "SkillPort", Level: model.LevelBeginner, Description: "Learn Go."},
		{ID: "c2", Title: "UX Research", Provider: "SkillPort"},
	}}
	e := newTestEnv(t, ds)
	s := newCoursesScreen(e)
	s.SetSize(100, 20)

	s.Update(keyMsg("enter"))
	if !s.open {
		t.Fatal("Expected the course detail to open")
	}
	if tb := s.TopBar(); tb.Title != "Go Fundamentals" {
		t.Errorf("Expected the course title in the top bar, got %q", tb.Title)
	}
	if !s.Back() || s.open {
		t.Error("Expected back to close the detail")
	}
	if s.Back() {
		t.Error("Expected nothing left to go back from")
	}
}

func TestCoursesBookmarkToggleMarksItem(t *testing.T) {
	ds := loader.Dataset{Courses: []model.Course{{ID: "c1", Title: "Go Fundamentals"}}}
	e := newTestEnv(t, ds)
	s := newCoursesScreen(e)
	s.SetSize(100, 20)

	toggled := run(t, s.Update(keyMsg("b"))).(bookmarkToggledMsg)
	if !toggled.on {
		t.Fatal("Expected the course bookmarked")
	}
	s.Update(toggled)
	it, ok := s.list.SelectedItem().(CourseItem)
	if !ok || !it.Bookmarked {
		t.Errorf("Expected the list item marked, got %+v", it)
	}
}

func TestSetMember(t *testing.T) {
	got := setMember([]string{"a", "b"}, "c", true)
	if strings.Join(got, ",") != "a,b,c" {
		t.Errorf("Expected a,b,c, got %v", got)
	}
	got = setMember(got, "a", false)
	if strings.Join(got, ",") != "b,c" {
		t.Errorf("Expected b,c, got %v", got)
	}
	got = setMember(got, "b", true)
	if strings.Join(got, ",") != "c,b" {
		t.Errorf("Expected no duplicate, got %v", got)
	}
}
