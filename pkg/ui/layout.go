package ui

// Box and panel dimension constraints.
const (
	// MinBoxWidth is the minimum width for bordered content boxes.
	MinBoxWidth = 20

	// ModalMaxWidth caps compose and help overlays.
	ModalMaxWidth = 64

	// landingMinWidth is the narrowest terminal the landing hero is centred in.
	landingMinWidth = 40
)

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
