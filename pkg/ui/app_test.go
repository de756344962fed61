package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Dicklesworthstone/skillport/pkg/loader"
	"github.com/Dicklesworthstone/skillport/pkg/navigator"
	"github.com/Dicklesworthstone/skillport/pkg/store"
)

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+b":
		return tea.KeyMsg{Type: tea.KeyCtrlB}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func newTestDB(t *testing.T) *store.DB {
	t.Helper()
	db, err := store.Open("sqlite", store.MemoryPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestApp(t *testing.T, start Page) *App {
	t.Helper()
	ds, err := loader.LoadDataset("")
	if err != nil {
		t.Fatalf("load dataset: %v", err)
	}
	a := NewApp(Options{Dataset: ds, Store: newTestDB(t), StartPage: start})
	a.Init()
	t.Cleanup(a.Close)
	return a
}

func resize(a *App, cols int) {
	a.Update(tea.WindowSizeMsg{Width: cols, Height: 30})
}

func press(a *App, keys ...string) {
	for _, k := range keys {
		a.Update(keyMsg(k))
	}
}

func TestLandingHasRootPaddingUntilPortalOpens(t *testing.T) {
	a := newTestApp(t, "")
	resize(a, 120)

	if a.Page() != "" {
		t.Fatalf("Expected landing screen, got page %q", a.Page())
	}
	if a.chrome.Marked() {
		t.Error("Expected chrome to be unmarked on the landing screen")
	}
	if !strings.Contains(a.View(), "SkillPort") {
		t.Error("Expected landing view to show the product name")
	}

	press(a, "enter")
	if a.Page() != PageDashboard {
		t.Fatalf("Expected dashboard after enter, got %q", a.Page())
	}
	if !a.chrome.Marked() {
		t.Error("Expected chrome to be marked once a shell is mounted")
	}
}

func TestRootPaddingFollowsChromeMarker(t *testing.T) {
	a := newTestApp(t, PageMessages)
	a.messages.now = func() time.Time { return testNow }
	resize(a, 160)

	if !a.chrome.Marked() {
		t.Fatal("Expected a mounted shell to mark the chrome")
	}
	bare := a.shell.View(a.width, a.height, a.screens[a.page].View())
	if got := a.View(); got != bare {
		t.Error("Expected the shell frame without root padding while marked")
	}

	a.release()
	a.release = nil
	if a.chrome.Marked() {
		t.Fatal("Expected chrome unmarked after release")
	}
	w := a.width - rootPadding.GetHorizontalFrameSize()
	h := a.height - rootPadding.GetVerticalFrameSize()
	padded := rootPadding.Render(a.shell.View(w, h, a.screens[a.page].View()))
	if got := a.View(); got != padded {
		t.Error("Expected root padding once no shell marks the chrome")
	}
	if a.View() == bare {
		t.Error("Expected the padded frame to differ from the bare one")
	}
}

func TestDesktopToggleAndNavigate(t *testing.T) {
	a := newTestApp(t, PageDashboard)
	resize(a, 160) // 1280 units

	if got := a.Shell().ReservedUnits(); got != 80 {
		t.Fatalf("Expected 80 reserved units, got %d", got)
	}
	press(a, "ctrl+b")
	if got := a.Shell().ReservedUnits(); got != 256 {
		t.Errorf("Expected 256 reserved units after toggle, got %d", got)
	}
	press(a, "ctrl+b")
	if got := a.Shell().ReservedUnits(); got != 80 {
		t.Errorf("Expected 80 reserved units after second toggle, got %d", got)
	}

	press(a, "ctrl+b", "5")
	if a.Page() != PageMessages {
		t.Fatalf("Expected messages page, got %q", a.Page())
	}
	if a.Sidebar().Expanded() {
		t.Error("Expected navigate to collapse the sidebar")
	}
	if got := a.Shell().ReservedUnits(); got != 80 {
		t.Errorf("Expected 80 reserved units on the new page, got %d", got)
	}
	if got := a.bus.Len(); got != 1 {
		t.Errorf("Expected exactly one subscribed shell, got %d", got)
	}
}

func TestMobileDrawerOpenAndEscape(t *testing.T) {
	a := newTestApp(t, PageDashboard)
	resize(a, 47) // 376 units

	if a.Shell().ReservedUnits() != 0 {
		t.Errorf("Expected no reserved width on mobile, got %d", a.Shell().ReservedUnits())
	}
	press(a, "ctrl+b")
	if !a.Sidebar().DrawerOpen() {
		t.Fatal("Expected drawer to open")
	}
	press(a, "esc")
	if a.Sidebar().DrawerOpen() {
		t.Error("Expected esc to close the drawer")
	}
}

func TestMobileDrawerClosesOnOutsideClick(t *testing.T) {
	a := newTestApp(t, PageDashboard)
	resize(a, 47)
	press(a, "ctrl+b")

	a.Update(tea.MouseMsg{X: 40, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if a.Sidebar().DrawerOpen() {
		t.Error("Expected click outside the drawer to close it")
	}
}

func TestMenuButtonOpensDrawer(t *testing.T) {
	a := newTestApp(t, PageDashboard)
	resize(a, 47)

	a.Update(tea.MouseMsg{X: 1, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if !a.Sidebar().DrawerOpen() {
		t.Error("Expected the menu button to open the drawer")
	}
}

func TestSidebarClickNavigates(t *testing.T) {
	a := newTestApp(t, PageDashboard)
	resize(a, 160)

	// messages is the fifth link, drawn two rows below the logo
	a.Update(tea.MouseMsg{X: 2, Y: 2 + 4, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if a.Page() != PageMessages {
		t.Errorf("Expected click to open messages, got %q", a.Page())
	}
}

func TestMessagesPaneFollowsResize(t *testing.T) {
	a := newTestApp(t, PageMessages)
	resize(a, 47)

	if got := a.messages.nav.Pane(); got != navigator.ListOnly {
		t.Fatalf("Expected list only before selecting, got %v", got)
	}
	press(a, "enter")
	id, ok := a.messages.nav.SelectedID()
	if !ok || id != "C1" {
		t.Fatalf("Expected C1 selected, got %q (%v)", id, ok)
	}
	if got := a.messages.nav.Pane(); got != navigator.DetailOnly {
		t.Errorf("Expected detail only on mobile, got %v", got)
	}

	resize(a, 160)
	if got := a.messages.nav.Pane(); got != navigator.Both {
		t.Errorf("Expected both panes on desktop, got %v", got)
	}
	if id, _ := a.messages.nav.SelectedID(); id != "C1" {
		t.Errorf("Expected selection kept across resize, got %q", id)
	}

	resize(a, 47)
	if got := a.messages.nav.Pane(); got != navigator.DetailOnly {
		t.Errorf("Expected detail only after shrinking, got %v", got)
	}

	press(a, "esc")
	if _, ok := a.messages.nav.SelectedID(); ok {
		t.Error("Expected esc to clear the selection")
	}
	if got := a.messages.nav.Pane(); got != navigator.ListOnly {
		t.Errorf("Expected list only after back, got %v", got)
	}
}

func TestOpeningConversationUpdatesBadge(t *testing.T) {
	a := newTestApp(t, PageMessages)
	resize(a, 160)

	before := a.messages.Unread()
	press(a, "enter")
	if got := a.messages.Unread(); got != before-2 {
		t.Errorf("Expected unread to drop by 2, got %d -> %d", before, got)
	}
}

func TestHelpOverlayClosesOnAnyKey(t *testing.T) {
	a := newTestApp(t, PageDashboard)
	resize(a, 120)

	press(a, "?")
	if !a.help.IsVisible() {
		t.Fatal("Expected help overlay to be visible")
	}
	if !strings.Contains(a.View(), "NAVIGATION") {
		t.Error("Expected help view to list navigation keys")
	}
	press(a, "x")
	if a.help.IsVisible() {
		t.Error("Expected any key to close the help overlay")
	}
	if a.Page() != PageDashboard {
		t.Errorf("Expected closing help to keep the page, got %q", a.Page())
	}
}

func TestQuitReleasesShell(t *testing.T) {
	a := newTestApp(t, PageDashboard)
	resize(a, 120)

	_, cmd := a.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("Expected a quit command")
	}
	if a.chrome.Marked() {
		t.Error("Expected chrome unmarked after quit")
	}
	if a.bus.Len() != 0 {
		t.Errorf("Expected no listeners after quit, got %d", a.bus.Len())
	}
	a.Close()
}

func TestToastShowsInTopBar(t *testing.T) {
	a := newTestApp(t, PageDashboard)
	resize(a, 160)

	a.Update(toastMsg{text: "Saved"})
	if len(a.toasts) != 1 {
		t.Fatalf("Expected one toast, got %d", len(a.toasts))
	}
	if !strings.Contains(a.View(), "Saved") {
		t.Error("Expected toast text in the view")
	}
	a.Update(toastExpiredMsg{ID: a.toasts[0].ID})
	if len(a.toasts) != 0 {
		t.Errorf("Expected toast to expire, got %d", len(a.toasts))
	}
}

func TestPageForDigit(t *testing.T) {
	tests := []struct {
		in   string
		want Page
		ok   bool
	}{
		{"1", PageDashboard, true},
		{"5", PageMessages, true},
		{"8", PageProfile, true},
		{"9", "", false},
		{"0", "", false},
		{"a", "", false},
		{"12", "", false},
	}
	for _, tt := range tests {
		got, ok := pageForDigit(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("pageForDigit(%q) = %q, %v; expected %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestDatasetReloadRefreshesScreens(t *testing.T) {
	a := newTestApp(t, PageMessages)
	resize(a, 160)

	ds := a.env.data
	ds.Conversations = ds.Conversations[:1]
	a.Update(DatasetReloadedMsg{Dataset: ds})
	if got := len(a.messages.nav.Items()); got != 1 {
		t.Errorf("Expected 1 conversation after reload, got %d", got)
	}
}
