// Package ui is the SkillPort terminal portal: a landing screen and the
// portal pages, each mounted inside a shell with the shared sidebar.
package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Dicklesworthstone/skillport/pkg/api"
	"github.com/Dicklesworthstone/skillport/pkg/bookmarks"
	"github.com/Dicklesworthstone/skillport/pkg/broadcast"
	"github.com/Dicklesworthstone/skillport/pkg/config"
	"github.com/Dicklesworthstone/skillport/pkg/loader"
	"github.com/Dicklesworthstone/skillport/pkg/shell"
	"github.com/Dicklesworthstone/skillport/pkg/sidebar"
	"github.com/Dicklesworthstone/skillport/pkg/store"
	"github.com/Dicklesworthstone/skillport/pkg/viewport"
	"github.com/Dicklesworthstone/skillport/pkg/watcher"
)

// Options wires the app to its collaborators.
type Options struct {
	Config  *config.Config
	Dataset loader.Dataset
	Store   *store.DB
	API     *api.Client      // nil disables remote features
	Watcher *watcher.Watcher // nil disables live reload
	Learner string

	// StartPage skips the landing screen when set.
	StartPage Page
	Renderer  *lipgloss.Renderer
	Context   context.Context
}

// App is the root bubbletea model.
type App struct {
	env       *env
	bus       *broadcast.Bus
	chrome    *shell.Chrome
	sidebar   *sidebar.Controller
	cellWidth int

	// the shell of the mounted page and its release func
	shell   *shell.Shell
	release func()

	landing bool
	page    Page
	screens map[Page]screen

	messages      *messagesScreen
	notifications *notificationsScreen

	help   HelpOverlayModel
	toasts []Toast

	width, height int
	units         int
	sized         bool

	watcher  *watcher.Watcher
	dataDir  string
	quitting bool
}

// NewApp builds the app. Call Close when the program exits.
func NewApp(opts Options) *App {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	db := opts.Store
	if db == nil {
		db = store.TryOpen("sqlite", store.MemoryPath)
	}

	// Anonymous users keep bookmarks locally; pass a true nil remote.
	var remote bookmarks.Remote
	authed := opts.API != nil && opts.API.Authenticated()
	if authed {
		remote = opts.API
	}

	theme := DefaultTheme(opts.Renderer)
	e := &env{
		theme:     theme,
		keys:      DefaultKeyMap(),
		md:        NewMarkdownRenderer("dark"),
		bp:        cfg.Breakpoints(),
		ctx:       ctx,
		api:       opts.API,
		marks:     bookmarks.New(remote, db),
		store:     db,
		authed:    authed,
		data:      opts.Dataset,
		learner:   opts.Learner,
		exportDir: ".",
	}

	bus := broadcast.New()
	a := &App{
		env:       e,
		bus:       bus,
		chrome:    shell.NewChrome(),
		sidebar:   sidebar.New(bus, e.bp, cfg.Display.CellWidth, Links),
		cellWidth: cfg.Display.CellWidth,
		landing:   true,
		page:      PageDashboard,
		help:      NewHelpOverlayModel(theme),
		watcher:   opts.Watcher,
		dataDir:   cfg.Data.Dir,
	}
	if a.cellWidth <= 0 {
		a.cellWidth = viewport.DefaultCellWidth
	}

	a.messages = newMessagesScreen(e)
	a.notifications = newNotificationsScreen(e)
	e.inbox = func() (int, int) { return a.messages.Unread(), a.notifications.Unread() }
	a.screens = map[Page]screen{
		PageDashboard:     newDashboardScreen(e),
		PageCourses:       newCoursesScreen(e),
		PageJobs:          newJobsScreen(e),
		PageBookmarks:     newBookmarksScreen(e),
		PageMessages:      a.messages,
		PageNotifications: a.notifications,
		PageConsultations: newConsultationsScreen(e),
		PageProfile:       newProfileScreen(e),
	}
	if opts.StartPage != "" {
		if _, ok := a.screens[opts.StartPage]; ok {
			a.page = opts.StartPage
			a.landing = false
		}
	}
	a.syncBadges()
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.SetWindowTitle("SkillPort")}
	if !a.landing {
		cmds = append(cmds, a.mount(a.page))
	}
	if a.watcher != nil {
		cmds = append(cmds, waitForDataChange(a.watcher, a.dataDir))
	}
	return tea.Batch(cmds...)
}

// Close releases the mounted shell and the watcher. Safe to call twice.
func (a *App) Close() {
	if a.release != nil {
		a.release()
		a.release = nil
	}
	if a.watcher != nil {
		a.watcher.Close()
	}
}

// Page returns the mounted page, or "" on the landing screen.
func (a *App) Page() Page {
	if a.landing {
		return ""
	}
	return a.page
}

// Sidebar exposes the sidebar controller.
func (a *App) Sidebar() *sidebar.Controller {
	return a.sidebar
}

// Shell returns the mounted shell, nil on the landing screen.
func (a *App) Shell() *shell.Shell {
	return a.shell
}

// mount swaps the shell for page p. The previous shell is released first so
// at most one listener per page is ever subscribed.
func (a *App) mount(p Page) tea.Cmd {
	scr, ok := a.screens[p]
	if !ok {
		return nil
	}
	if a.release != nil {
		a.release()
		a.release = nil
	}
	a.landing = false
	a.page = p
	a.shell = shell.New(a.bus, a.chrome, a.sidebar, shell.Options{
		TopBar:      scr.TopBar(),
		CellWidth:   a.cellWidth,
		Breakpoints: a.env.bp,
	})
	a.release = a.shell.Mount()
	if a.sized {
		a.shell.Resize(a.units)
	}
	a.sidebar.SetActive(string(p))
	a.help.SetPage(pageLabel(p), scr.Help())
	a.layout()
	return scr.Activate()
}

// navigate runs the sidebar navigate transition and mounts p if it is not
// already mounted.
func (a *App) navigate(p Page) tea.Cmd {
	if _, ok := a.sidebar.Navigate(string(p)); !ok {
		return nil
	}
	return a.route(p)
}

func (a *App) route(p Page) tea.Cmd {
	if !a.landing && p == a.page && a.shell != nil {
		return nil
	}
	return a.mount(p)
}

func (a *App) quit() tea.Cmd {
	a.quitting = true
	a.Close()
	return tea.Quit
}

// layout pushes the content size to the mounted screen.
func (a *App) layout() {
	if !a.sized {
		return
	}
	a.help.SetSize(a.width, a.height)
	if a.landing || a.shell == nil {
		return
	}
	scr := a.screens[a.page]
	a.shell.SetTopBar(a.topBar(scr))
	w, h := a.shell.ContentSize(a.width, a.height)
	scr.SetSize(w, h)
}

// topBar merges the newest toast into the screen's action slot.
func (a *App) topBar(scr screen) *shell.TopBar {
	tb := scr.TopBar()
	if len(a.toasts) == 0 {
		return tb
	}
	if tb == nil {
		tb = &shell.TopBar{}
	}
	cp := *tb
	cp.Action = RenderToasts(a.toasts[len(a.toasts)-1:], ModalMaxWidth)
	return &cp
}

func (a *App) syncBadges() {
	a.sidebar.SetBadge(string(PageMessages), a.messages.Unread())
	a.sidebar.SetBadge(string(PageNotifications), a.notifications.Unread())
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := a.update(msg)
	a.syncBadges()
	a.layout()
	return a, cmd
}

func (a *App) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.units = viewport.FromCells(msg.Width, a.cellWidth)
		a.sized = true
		// Every consumer re-derives its own class from the same width.
		a.sidebar.Resize(a.units)
		if a.shell != nil {
			a.shell.Resize(a.units)
		}
		for _, s := range a.screens {
			s.Resize(a.units)
		}
		return nil

	case toastMsg:
		t, cmd := NewToast(msg.text, msg.isErr)
		a.toasts = pushToast(a.toasts, t)
		return cmd

	case toastExpiredMsg:
		a.toasts = removeToast(a.toasts, msg.ID)
		return nil

	case DatasetReloadedMsg:
		cmds := []tea.Cmd{}
		if a.watcher != nil {
			cmds = append(cmds, waitForDataChange(a.watcher, a.dataDir))
		}
		if msg.Err != nil {
			cmds = append(cmds, notify("Reload failed: "+msg.Err.Error(), true))
			return tea.Batch(cmds...)
		}
		a.env.data = msg.Dataset
		for _, s := range a.screens {
			cmds = append(cmds, s.Update(msg))
		}
		cmds = append(cmds, notify("Data reloaded", false))
		return tea.Batch(cmds...)

	case jobsLoadedMsg, bookmarksLoadedMsg, bookmarkToggledMsg:
		// Bookmark state is shown on several pages.
		var cmds []tea.Cmd
		for _, s := range a.screens {
			cmds = append(cmds, s.Update(msg))
		}
		if t, ok := msg.(bookmarkToggledMsg); ok {
			if t.err != nil {
				cmds = append(cmds, notify("Bookmark failed", true))
			} else {
				cmds = append(cmds, notify(bookmarkLabel(t.on), false))
			}
		}
		return tea.Batch(cmds...)

	case tea.MouseMsg:
		return a.handleMouse(msg)

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	if a.landing {
		return nil
	}
	return a.screens[a.page].Update(msg)
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if a.help.IsVisible() {
		a.help, _ = a.help.Update(msg)
		return nil
	}
	if msg.String() == "ctrl+c" {
		return a.quit()
	}
	if a.landing {
		return a.handleLandingKey(msg)
	}

	scr := a.screens[a.page]
	if scr.Capturing() {
		return scr.Update(msg)
	}

	k := a.env.keys
	if key.Matches(msg, k.ToggleSidebar) {
		a.toggleSidebar()
		return nil
	}
	if a.sidebar.Focused() {
		return a.handleSidebarKey(msg)
	}

	switch {
	case key.Matches(msg, k.Quit):
		return a.quit()
	case key.Matches(msg, k.Help):
		a.help.Show()
		return nil
	case key.Matches(msg, k.FocusSidebar):
		if a.sidebar.Class().Compact() {
			a.sidebar.MobileToggle()
		} else {
			a.sidebar.Focus()
		}
		return nil
	case key.Matches(msg, k.Back):
		if a.sidebar.OutsideClick() {
			return nil
		}
		scr.Back()
		return nil
	}
	if p, ok := pageForDigit(msg.String()); ok {
		return a.navigate(p)
	}
	return scr.Update(msg)
}

// toggleSidebar dispatches to the docked or drawer toggle by viewport class.
func (a *App) toggleSidebar() {
	if a.sidebar.Class().Compact() {
		a.sidebar.MobileToggle()
		return
	}
	a.sidebar.Toggle()
}

func (a *App) handleSidebarKey(msg tea.KeyMsg) tea.Cmd {
	k := a.env.keys
	switch {
	case key.Matches(msg, k.Up):
		a.sidebar.CursorUp()
	case key.Matches(msg, k.Down):
		a.sidebar.CursorDown()
	case key.Matches(msg, k.Select):
		if link, ok := a.sidebar.NavigateCursor(); ok {
			return a.route(Page(link.ID))
		}
	case key.Matches(msg, k.Back), key.Matches(msg, k.FocusSidebar):
		if !a.sidebar.OutsideClick() {
			a.sidebar.Blur()
		}
	case key.Matches(msg, k.Quit):
		return a.quit()
	case key.Matches(msg, k.Help):
		a.help.Show()
	default:
		if p, ok := pageForDigit(msg.String()); ok {
			return a.navigate(p)
		}
	}
	return nil
}

func (a *App) handleLandingKey(msg tea.KeyMsg) tea.Cmd {
	k := a.env.keys
	switch {
	case key.Matches(msg, k.Quit):
		return a.quit()
	case key.Matches(msg, k.Help):
		a.help.Show()
		return nil
	case key.Matches(msg, k.Select), msg.String() == " ":
		return a.navigate(PageDashboard)
	}
	if p, ok := pageForDigit(msg.String()); ok {
		return a.navigate(p)
	}
	return nil
}

// handleMouse maps clicks onto the sidebar, the menu button and the area
// outside an open drawer.
func (a *App) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if a.landing || a.shell == nil || a.help.IsVisible() {
		return nil
	}
	scr := a.screens[a.page]
	if msg.Action != tea.MouseActionPress {
		return nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		return scr.Update(tea.KeyMsg{Type: tea.KeyUp})
	case tea.MouseButtonWheelDown:
		return scr.Update(tea.KeyMsg{Type: tea.KeyDown})
	case tea.MouseButtonLeft:
	default:
		return nil
	}

	compact := a.sidebar.Class().Compact()
	if compact && !a.sidebar.DrawerOpen() && msg.Y == 0 && msg.X <= 2 {
		a.sidebar.MobileToggle()
		return nil
	}
	if w := a.sidebar.WidthCells(); w > 0 && msg.X < w {
		// logo row, blank row, then one row per link
		if idx := msg.Y - 2; idx >= 0 && idx < len(Links) {
			return a.navigate(Page(Links[idx].ID))
		}
		return nil
	}
	a.sidebar.OutsideClick()
	return nil
}

func pageForDigit(s string) (Page, bool) {
	if len(s) != 1 || s[0] < '1' || s[0] > '9' {
		return "", false
	}
	i := int(s[0] - '1')
	if i >= len(Links) {
		return "", false
	}
	return Page(Links[i].ID), true
}

func pageLabel(p Page) string {
	for _, l := range Links {
		if l.ID == string(p) {
			return l.Label
		}
	}
	return string(p)
}

// waitForDataChange blocks until the watcher reports a change, then reloads.
func waitForDataChange(w *watcher.Watcher, dir string) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-w.Done():
			return nil
		case <-w.Changes():
		}
		ds, err := loader.LoadDataset(dir)
		if err != nil {
			err = fmt.Errorf("reload %s: %w", dir, err)
		}
		return DatasetReloadedMsg{Dataset: ds, Err: err}
	}
}

// View implements tea.Model. The root padding frames every view until a
// shell marks the chrome.
func (a *App) View() string {
	if a.quitting {
		return ""
	}
	if !a.sized {
		return "Loading SkillPort..."
	}
	w, h := a.width, a.height
	padded := !a.chrome.Marked()
	if padded {
		w -= rootPadding.GetHorizontalFrameSize()
		h -= rootPadding.GetVerticalFrameSize()
		w, h = max(w, 1), max(h, 1)
	}

	var out string
	switch {
	case a.help.IsVisible():
		out = lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, a.help.View())
	case a.landing || a.shell == nil:
		out = a.landingView(w, h)
	default:
		out = a.shell.View(w, h, a.screens[a.page].View())
	}
	if padded {
		return rootPadding.Render(out)
	}
	return out
}

// landingView renders the hero in a w×h area.
func (a *App) landingView(w, h int) string {
	t := a.env.theme
	logo := t.Renderer.NewStyle().Bold(true).Foreground(t.Primary).Render("◆ SkillPort")
	tagline := t.Renderer.NewStyle().Foreground(t.Subtext).Render("Learn, connect and get hired from your terminal.")

	features := []string{
		"📘  Courses and learning progress",
		"💼  Job listings with bookmarks",
		"💬  Messages and notifications",
		"📅  Consultations with mentors",
	}
	var b strings.Builder
	b.WriteString(logo + "\n\n" + tagline + "\n\n")
	for _, f := range features {
		b.WriteString(t.Base.Render(f) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(HintStyle.Render("enter: open portal   1-8: jump to page   ?: help   q: quit"))
	if len(a.toasts) > 0 {
		b.WriteString("\n\n" + RenderToasts(a.toasts, w))
	}

	if w < landingMinWidth {
		return b.String()
	}
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, b.String())
}

var rootPadding = lipgloss.NewStyle().Padding(1, 2)
