package ui

import (
	"errors"
	"testing"
	"time"

	"github.com/Dicklesworthstone/skillport/pkg/bookmarks"
	"github.com/Dicklesworthstone/skillport/pkg/loader"
	"github.com/Dicklesworthstone/skillport/pkg/model"
	"github.com/Dicklesworthstone/skillport/pkg/viewport"
)

var testNow = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

func newTestEnv(t *testing.T, ds loader.Dataset) *env {
	t.Helper()
	db := newTestDB(t)
	return &env{
		theme: DefaultTheme(nil),
		keys:  DefaultKeyMap(),
		md:    NewMarkdownRenderer("dark"),
		bp:    viewport.DefaultBreakpoints(),
		marks: bookmarks.New(nil, db),
		store: db,
		data:  ds,
	}
}

func testConversations() []model.Conversation {
	return []model.Conversation{
		{ID: "C1", With: "Priya Raman", Role: "Mentor", Unread: 2, Messages: []model.Message{
			{From: "Priya Raman", Text: "How is the Go course going?", SentAt: testNow.Add(-time.Hour)},
		}},
		{ID: "C2", With: "Marcus Lee", Role: "Recruiter", Unread: 1, Messages: []model.Message{
			{From: "Marcus Lee", Text: "Are you open to a backend role?", SentAt: testNow.Add(-2 * time.Hour)},
		}},
		{ID: "C3", With: "Study Group", Messages: nil},
	}
}

func newTestMessages(t *testing.T) *messagesScreen {
	t.Helper()
	s := newMessagesScreen(newTestEnv(t, loader.Dataset{Conversations: testConversations()}))
	s.now = func() time.Time { return testNow }
	s.Resize(1280)
	s.SetSize(100, 20)
	return s
}

func TestMessagesSelectMarksRead(t *testing.T) {
	s := newTestMessages(t)
	if got := s.Unread(); got != 3 {
		t.Fatalf("Expected 3 unread, got %d", got)
	}
	s.Update(keyMsg("enter"))
	if got := s.Unread(); got != 1 {
		t.Errorf("Expected 1 unread after opening C1, got %d", got)
	}
	if id, _ := s.nav.SelectedID(); id != "C1" {
		t.Errorf("Expected C1 selected, got %q", id)
	}
}

func TestMessagesDoesNotMutateDataset(t *testing.T) {
	convs := testConversations()
	s := newMessagesScreen(newTestEnv(t, loader.Dataset{Conversations: convs}))
	s.Resize(1280)
	s.Update(keyMsg("enter"))
	if convs[0].Unread != 2 {
		t.Errorf("Expected dataset unread to stay 2, got %d", convs[0].Unread)
	}
}

func TestMessagesSearchDropsHiddenSelection(t *testing.T) {
	s := newTestMessages(t)
	s.Update(keyMsg("enter")) // C1
	if !s.nav.ContainsSelection() {
		t.Fatal("Expected selection to be visible")
	}

	s.Update(keyMsg("/"))
	if !s.Capturing() {
		t.Fatal("Expected search to capture keys")
	}
	for _, r := range "marcus" {
		s.Update(keyMsg(string(r)))
	}
	if got := len(s.nav.Items()); got != 1 {
		t.Fatalf("Expected 1 match, got %d", got)
	}
	if _, ok := s.nav.SelectedID(); ok {
		t.Error("Expected selection cleared once filtered out")
	}

	s.Update(keyMsg("enter"))
	if s.Capturing() {
		t.Error("Expected enter to leave the search box")
	}
	if s.search.Query() != "marcus" {
		t.Errorf("Expected query kept, got %q", s.search.Query())
	}

	if !s.Back() {
		t.Error("Expected back to clear the search on desktop")
	}
	if got := len(s.nav.Items()); got != 3 {
		t.Errorf("Expected all conversations after clearing, got %d", got)
	}
}

func TestMessagesSearchMatchesContactOnly(t *testing.T) {
	tests := []struct {
		query string
		want  []string
	}{
		{"marcus", []string{"C2"}},
		{"priya", []string{"C1"}},
		{"mentor", []string{"C1"}},
		{"study", []string{"C3"}},
		{"backend", nil}, // only in C2's message text
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			s := newTestMessages(t)
			s.Update(keyMsg("/"))
			for _, r := range tt.query {
				s.Update(keyMsg(string(r)))
			}
			items := s.nav.Items()
			if len(items) != len(tt.want) {
				t.Fatalf("Expected %v, got %d items", tt.want, len(items))
			}
			for i, c := range items {
				if c.ID != tt.want[i] {
					t.Errorf("Expected %s at %d, got %s", tt.want[i], i, c.ID)
				}
			}
		})
	}
}

func TestMessagesComposeAppendsReply(t *testing.T) {
	s := newTestMessages(t)
	s.Update(keyMsg("c"))
	if s.compose != nil {
		t.Fatal("Expected compose to need an open conversation")
	}

	s.Update(keyMsg("enter"))
	s.Update(keyMsg("c"))
	if s.compose == nil {
		t.Fatal("Expected compose to open")
	}
	for _, r := range "thanks" {
		s.Update(keyMsg(string(r)))
	}
	cmd := s.Update(keyMsg("ctrl+s"))
	if s.compose != nil {
		t.Fatal("Expected compose to close after submit")
	}
	if cmd == nil {
		t.Fatal("Expected a toast command")
	}
	if msg, ok := cmd().(toastMsg); !ok || msg.text != "Reply sent" {
		t.Errorf("Expected 'Reply sent' toast, got %#v", cmd())
	}

	conv, _ := s.nav.Selected()
	last, _ := conv.LastMessage()
	if !last.Mine || last.Text != "thanks" || last.From != "You" {
		t.Errorf("Expected own reply appended, got %+v", last)
	}
}

func TestMessagesComposeCancel(t *testing.T) {
	s := newTestMessages(t)
	s.Update(keyMsg("enter"))
	s.Update(keyMsg("c"))
	s.Update(keyMsg("esc"))
	if s.compose != nil {
		t.Error("Expected esc to cancel compose")
	}
	conv, _ := s.nav.Selected()
	if len(conv.Messages) != 1 {
		t.Errorf("Expected no reply appended, got %d messages", len(conv.Messages))
	}
}

func TestMessagesCopyLast(t *testing.T) {
	var copied string
	orig := copyToClipboard
	copyToClipboard = func(s string) error { copied = s; return nil }
	t.Cleanup(func() { copyToClipboard = orig })

	s := newTestMessages(t)
	s.Update(keyMsg("enter"))
	s.Update(keyMsg("y"))
	if copied != "How is the Go course going?" {
		t.Errorf("Expected last message copied, got %q", copied)
	}

	copyToClipboard = func(string) error { return errors.New("no clipboard") }
	cmd := s.Update(keyMsg("y"))
	if msg, ok := cmd().(toastMsg); !ok || !msg.isErr {
		t.Errorf("Expected an error toast, got %#v", msg)
	}
}

func TestMessagesEmptyThreadRendersHeader(t *testing.T) {
	s := newTestMessages(t)
	s.nav.Select("C3")
	if out := s.View(); out == "" {
		t.Error("Expected a view for an empty thread")
	}
}
