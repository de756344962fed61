package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Dicklesworthstone/skillport/pkg/shell"
	"github.com/Dicklesworthstone/skillport/pkg/sidebar"
)

// Page identifies a portal screen; it doubles as the sidebar link id.
type Page string

const (
	PageDashboard     Page = "dashboard"
	PageCourses       Page = "courses"
	PageJobs          Page = "jobs"
	PageBookmarks     Page = "bookmarks"
	PageMessages      Page = "messages"
	PageNotifications Page = "notifications"
	PageConsultations Page = "consultations"
	PageProfile       Page = "profile"
)

// Links is the sidebar navigation, in display order.
var Links = []sidebar.Link{
	{ID: string(PageDashboard), Label: "Dashboard", Icon: "⌂"},
	{ID: string(PageCourses), Label: "Courses", Icon: "📘"},
	{ID: string(PageJobs), Label: "Jobs", Icon: "💼"},
	{ID: string(PageBookmarks), Label: "Bookmarks", Icon: "★"},
	{ID: string(PageMessages), Label: "Messages", Icon: "💬"},
	{ID: string(PageNotifications), Label: "Notifications", Icon: "🔔"},
	{ID: string(PageConsultations), Label: "Consultations", Icon: "📅"},
	{ID: string(PageProfile), Label: "Job Profile", Icon: "👤"},
}

// screen is a portal page rendered inside the shell.
type screen interface {
	// TopBar describes the header; nil hides it on wide viewports.
	TopBar() *shell.TopBar
	// Help lists page-specific shortcuts.
	Help() []helpEntry
	// Activate runs when the page is mounted.
	Activate() tea.Cmd
	// Resize forwards the viewport width in logical units.
	Resize(units int)
	// SetSize sets the content area in cells.
	SetSize(width, height int)
	// Capturing reports whether an input, form or modal owns the keyboard.
	Capturing() bool
	// Back handles esc; false lets the app treat it as unhandled.
	Back() bool
	Update(msg tea.Msg) tea.Cmd
	View() string
}
