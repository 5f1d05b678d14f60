package window

// DefaultViewportHeight is assumed when the viewport has not been measured
// yet (or reports a non-positive height).
const DefaultViewportHeight = 600

// DefaultOverscan is the number of extra rows materialized beyond each edge
// of the visible range to mask rendering latency during fast scrolling.
const DefaultOverscan = 10

// Window is the contiguous half-open row range [Start, End) a view must
// materialize, plus the layout values that keep scrolling continuous.
type Window struct {
	// Start is the first materialized row index.
	Start int

	// End is one past the last materialized row index.
	End int

	// StartOffset is Start * rowHeight: the offset at which the rendered
	// rows must be positioned inside the full-height scroll track.
	StartOffset int

	// TotalHeight is count * rowHeight: the scrollable height presented to
	// the scroll container, independent of how many rows are materialized.
	TotalHeight int
}

// Len returns the number of materialized rows.
func (w Window) Len() int {
	return w.End - w.Start
}

// Contains reports whether row index i falls inside the window.
func (w Window) Contains(i int) bool {
	return i >= w.Start && i < w.End
}

// Compute derives the visible window for a list of count rows of rowHeight
// each, given the current scroll offset and viewport height.
//
// The overscan margin only ever grows the range: the result is always a
// superset of the rows intersecting [scrollTop, scrollTop+viewportHeight).
// End is taken from the bottom edge with integer division, so a partially
// visible trailing row is covered by the overscan margin rather than the
// base range; callers that set overscan to 0 must size the viewport as an
// exact multiple of rowHeight.
//
// All inputs are clamped defensively: negative scrollTop and overscan are
// treated as 0, a non-positive rowHeight as 1, and a non-positive
// viewportHeight falls back to DefaultViewportHeight.
func Compute(count, rowHeight, overscan, scrollTop, viewportHeight int) Window {
	if count < 0 {
		count = 0
	}
	if rowHeight <= 0 {
		rowHeight = 1
	}
	if overscan < 0 {
		overscan = 0
	}
	if scrollTop < 0 {
		scrollTop = 0
	}
	if viewportHeight <= 0 {
		viewportHeight = DefaultViewportHeight
	}

	start := scrollTop/rowHeight - overscan
	if start < 0 {
		start = 0
	}

	end := (scrollTop+viewportHeight)/rowHeight + overscan
	if end > count {
		end = count
	}
	if end < start {
		// Scrolled past the end of a shrunken list.
		start = end
	}

	return Window{
		Start:       start,
		End:         end,
		StartOffset: start * rowHeight,
		TotalHeight: count * rowHeight,
	}
}

// MaxScrollTop returns the largest useful scroll offset for a list of count
// rows in a viewport of the given height. Scrolling beyond it only reveals
// empty track.
func MaxScrollTop(count, rowHeight, viewportHeight int) int {
	if rowHeight <= 0 {
		rowHeight = 1
	}
	if viewportHeight <= 0 {
		viewportHeight = DefaultViewportHeight
	}
	maxTop := count*rowHeight - viewportHeight
	if maxTop < 0 {
		return 0
	}
	return maxTop
}
