// Package viewport classifies the terminal width into layout breakpoints.
//
// Widths are expressed in logical units rather than terminal cells so the
// breakpoints stay meaningful across fonts: one cell is CellWidth units by
// default, making an 80-column terminal 640 units wide.
package viewport

// Layout breakpoints in logical units.
const (
	// BreakpointSmall is the width below which the layout is considered small.
	// Used in: shell top bar (subtitle hidden), content padding.
	BreakpointSmall = 640

	// BreakpointWide is the width at and above which the layout is wide.
	// Below it the sidebar becomes a drawer and list-detail screens show one pane.
	BreakpointWide = 1024

	// DefaultCellWidth is the number of logical units in one terminal cell.
	DefaultCellWidth = 8
)

// Class is a discrete breakpoint class derived from width.
type Class int

const (
	Mobile Class = iota
	Tablet
	Desktop
)

// String returns the human-readable name of the class.
func (c Class) String() string {
	switch c {
	case Mobile:
		return "mobile"
	case Tablet:
		return "tablet"
	case Desktop:
		return "desktop"
	default:
		return "unknown"
	}
}

// Small reports whether the class is below the small breakpoint.
func (c Class) Small() bool {
	return c == Mobile
}

// Compact reports whether the class is below the wide breakpoint. Compact
// viewports get the sidebar drawer and single-pane list-detail screens.
func (c Class) Compact() bool {
	return c != Desktop
}

// Breakpoints holds the two load-bearing thresholds.
type Breakpoints struct {
	Small int
	Wide  int
}

// DefaultBreakpoints returns the standard 640/1024 thresholds.
func DefaultBreakpoints() Breakpoints {
	return Breakpoints{Small: BreakpointSmall, Wide: BreakpointWide}
}

// Normalize replaces unusable thresholds with the defaults.
func (b Breakpoints) Normalize() Breakpoints {
	if b.Small <= 0 || b.Wide <= 0 || b.Small >= b.Wide {
		return DefaultBreakpoints()
	}
	return b
}

// Classify maps a width in units to a class.
func (b Breakpoints) Classify(units int) Class {
	b = b.Normalize()
	switch {
	case units < b.Small:
		return Mobile
	case units < b.Wide:
		return Tablet
	default:
		return Desktop
	}
}

// Classify maps a width in units to a class using the default breakpoints.
func Classify(units int) Class {
	return DefaultBreakpoints().Classify(units)
}

// FromCells converts a terminal width in cells to logical units.
func FromCells(cols, cellWidth int) int {
	if cellWidth <= 0 {
		cellWidth = DefaultCellWidth
	}
	if cols < 0 {
		cols = 0
	}
	return cols * cellWidth
}

// ToCells converts logical units to terminal cells, rounding up so a reserved
// region never comes out narrower than requested.
func ToCells(units, cellWidth int) int {
	if cellWidth <= 0 {
		cellWidth = DefaultCellWidth
	}
	if units <= 0 {
		return 0
	}
	return (units + cellWidth - 1) / cellWidth
}

// Tracker observes widths on behalf of a single consumer. Every consumer
// embeds its own Tracker; there is no shared viewport state, so a consumer
// stays correct whether or not any other consumer is mounted.
type Tracker struct {
	bp    Breakpoints
	units int
	class Class
	known bool
}

// NewTracker creates a tracker using the given breakpoints.
func NewTracker(bp Breakpoints) Tracker {
	return Tracker{bp: bp.Normalize()}
}

// Observe records a new width and reports the resulting class and whether it
// differs from the previously observed class. The first observation never
// reports a change.
func (t *Tracker) Observe(units int) (Class, bool) {
	if t.bp == (Breakpoints{}) {
		t.bp = DefaultBreakpoints()
	}
	next := t.bp.Classify(units)
	changed := t.known && next != t.class
	t.units = units
	t.class = next
	t.known = true
	return next, changed
}

// Class returns the last observed class. Before any observation it reports
// Desktop, the class that leaves every pane visible.
func (t Tracker) Class() Class {
	if !t.known {
		return Desktop
	}
	return t.class
}

// Units returns the last observed width.
func (t Tracker) Units() int {
	return t.units
}

// Known reports whether at least one width has been observed.
func (t Tracker) Known() bool {
	return t.known
}
