package ui

import (
	"context"
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/Dicklesworthstone/skillport/pkg/api"
	"github.com/Dicklesworthstone/skillport/pkg/bookmarks"
	"github.com/Dicklesworthstone/skillport/pkg/loader"
	"github.com/Dicklesworthstone/skillport/pkg/model"
	"github.com/Dicklesworthstone/skillport/pkg/store"
	"github.com/Dicklesworthstone/skillport/pkg/viewport"
)

// requestTimeout bounds every API command.
const requestTimeout = 10 * time.Second

// env is shared by every screen.
type env struct {
	theme Theme
	keys  KeyMap
	md    *MarkdownRenderer
	bp    viewport.Breakpoints

	ctx   context.Context
	api   *api.Client // nil disables remote features
	marks *bookmarks.Service
	store *store.DB

	authed    bool
	data      loader.Dataset
	jobs      []model.Job
	learner   string
	exportDir string

	// inbox reports live unread counts; nil falls back to the dataset.
	inbox func() (messages, notifications int)
}

func (e *env) inboxCounts() (messages, notifications int) {
	if e.inbox != nil {
		return e.inbox()
	}
	for _, c := range e.data.Conversations {
		messages += c.Unread
	}
	for _, n := range e.data.Notifications {
		if !n.Read {
			notifications++
		}
	}
	return messages, notifications
}

// index resolves bookmark ids against the current dataset and job listing.
func (e *env) index() *loader.Index {
	return loader.BuildIndex(e.data, e.jobs)
}

func (e *env) withTimeout() (context.Context, context.CancelFunc) {
	ctx := e.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, requestTimeout)
}

// ══════════════════════════════════════════════════════════════════════════════
// MESSAGES
// ══════════════════════════════════════════════════════════════════════════════

// toastMsg asks the app to show a toast.
type toastMsg struct {
	text  string
	isErr bool
}

func notify(text string, isErr bool) tea.Cmd {
	return func() tea.Msg { return toastMsg{text: text, isErr: isErr} }
}

// jobsLoadedMsg carries the job listing and bookmarks fetched together.
type jobsLoadedMsg struct {
	jobs  []model.Job
	marks bookmarks.Set
	err   error
}

// bookmarksLoadedMsg carries a fresh bookmark set.
type bookmarksLoadedMsg struct {
	marks bookmarks.Set
	err   error
}

// bookmarkToggledMsg reports the outcome of a bookmark toggle.
type bookmarkToggledMsg struct {
	bm  model.Bookmark
	on  bool
	err error
}

// profileLoadedMsg carries the job profile; nil means none exists yet.
type profileLoadedMsg struct {
	profile *model.JobProfile
	err     error
}

type profileSavedMsg struct {
	profile *model.JobProfile
	err     error
}

type profileDeletedMsg struct {
	err error
}

// DatasetReloadedMsg is sent when the data directory changed on disk.
type DatasetReloadedMsg struct {
	Dataset loader.Dataset
	Err     error
}

// ══════════════════════════════════════════════════════════════════════════════
// COMMANDS
// ══════════════════════════════════════════════════════════════════════════════

// loadJobsCmd fetches jobs and bookmarks in parallel.
func loadJobsCmd(e *env) tea.Cmd {
	return func() tea.Msg {
		if e.api == nil {
			return jobsLoadedMsg{err: fmt.Errorf("jobs: no API configured")}
		}
		ctx, cancel := e.withTimeout()
		defer cancel()

		var (
			jobs  []model.Job
			marks bookmarks.Set
		)
		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			jobs, err = e.api.Jobs(ctx)
			return err
		})
		g.Go(func() error {
			var err error
			marks, err = e.marks.List(ctx)
			if err != nil {
				// Bookmarks are decoration here; the listing still shows.
				log.Printf("Warning: %v", err)
				marks = bookmarks.Set{}
			}
			return nil
		})
		if err := g.Wait(); err != nil {
			log.Printf("Warning: load jobs: %v", err)
			return jobsLoadedMsg{marks: marks, err: err}
		}
		return jobsLoadedMsg{jobs: jobs, marks: marks}
	}
}

func loadBookmarksCmd(e *env) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := e.withTimeout()
		defer cancel()
		set, err := e.marks.List(ctx)
		if err != nil {
			log.Printf("Warning: %v", err)
		}
		return bookmarksLoadedMsg{marks: set, err: err}
	}
}

func toggleBookmarkCmd(e *env, bm model.Bookmark) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := e.withTimeout()
		defer cancel()
		on, err := e.marks.Toggle(ctx, bm)
		if err != nil {
			log.Printf("Warning: toggle bookmark %s %s: %v", bm.Type, bm.TargetID, err)
		}
		return bookmarkToggledMsg{bm: bm, on: on, err: err}
	}
}

func loadProfileCmd(e *env) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := e.withTimeout()
		defer cancel()
		p, err := e.api.JobProfile(ctx)
		if err != nil {
			log.Printf("Warning: load job profile: %v", err)
		}
		return profileLoadedMsg{profile: p, err: err}
	}
}

func saveProfileCmd(e *env, p model.JobProfile) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := e.withTimeout()
		defer cancel()
		saved, err := e.api.SaveJobProfile(ctx, p)
		if err != nil {
			log.Printf("Warning: save job profile: %v", err)
		}
		return profileSavedMsg{profile: saved, err: err}
	}
}

func deleteProfileCmd(e *env) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := e.withTimeout()
		defer cancel()
		err := e.api.DeleteJobProfile(ctx)
		if err != nil {
			log.Printf("Warning: delete job profile: %v", err)
		}
		return profileDeletedMsg{err: err}
	}
}

// bookmarkLabel names the bookmark for toasts.
func bookmarkLabel(on bool) string {
	if on {
		return "Bookmarked"
	}
	return "Bookmark removed"
}
