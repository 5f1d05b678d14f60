package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute_TopOfList(t *testing.T) {
	w := Compute(1000, 40, 10, 0, 600)

	assert.Equal(t, 0, w.Start)
	assert.Equal(t, 25, w.End) // floor(600/40) + 10
	assert.Equal(t, 0, w.StartOffset)
	assert.Equal(t, 40000, w.TotalHeight)
	assert.Equal(t, 25, w.Len())
}

func TestCompute_MidScroll(t *testing.T) {
	w := Compute(1000, 40, 10, 4000, 600)

	assert.Equal(t, 90, w.Start) // rawStart 100 minus overscan
	assert.Equal(t, 125, w.End)  // floor(4600/40) + 10
	assert.Equal(t, 3600, w.StartOffset)
	assert.Equal(t, 40000, w.TotalHeight)
}

func TestCompute_EmptyList(t *testing.T) {
	w := Compute(0, 40, 10, 0, 600)

	assert.Equal(t, 0, w.Start)
	assert.Equal(t, 0, w.End)
	assert.Equal(t, 0, w.StartOffset)
	assert.Equal(t, 0, w.TotalHeight)
	assert.Equal(t, 0, w.Len())
}

func TestCompute_EndClampedToCount(t *testing.T) {
	w := Compute(20, 40, 10, 0, 600)

	assert.Equal(t, 0, w.Start)
	assert.Equal(t, 20, w.End)
	assert.Equal(t, 800, w.TotalHeight)
}

func TestCompute_ScrolledPastShrunkenList(t *testing.T) {
	// Filter shrank the list while the scroll offset stayed where it was.
	w := Compute(5, 40, 10, 4000, 600)

	assert.Equal(t, w.Start, w.End)
	assert.Equal(t, 5, w.End)
	assert.Equal(t, w.Start*40, w.StartOffset)
	assert.Equal(t, 200, w.TotalHeight)
}

func TestCompute_DegenerateInputsClamped(t *testing.T) {
	tests := []struct {
		name                                            string
		count, rowHeight, overscan, scrollTop, viewport int
	}{
		{name: "negative scrollTop", count: 100, rowHeight: 40, overscan: 5, scrollTop: -500, viewport: 600},
		{name: "negative overscan", count: 100, rowHeight: 40, overscan: -3, scrollTop: 200, viewport: 600},
		{name: "zero rowHeight", count: 100, rowHeight: 0, overscan: 5, scrollTop: 200, viewport: 600},
		{name: "unmeasured viewport", count: 100, rowHeight: 40, overscan: 5, scrollTop: 200, viewport: 0},
		{name: "negative viewport", count: 100, rowHeight: 40, overscan: 5, scrollTop: 200, viewport: -50},
		{name: "negative count", count: -1, rowHeight: 40, overscan: 5, scrollTop: 0, viewport: 600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := Compute(tt.count, tt.rowHeight, tt.overscan, tt.scrollTop, tt.viewport)

			count := tt.count
			if count < 0 {
				count = 0
			}
			assert.GreaterOrEqual(t, w.Start, 0)
			assert.LessOrEqual(t, w.Start, w.End)
			assert.LessOrEqual(t, w.End, count)
		})
	}
}

func TestCompute_UnmeasuredViewportUsesFallback(t *testing.T) {
	measured := Compute(1000, 40, 10, 0, DefaultViewportHeight)
	fallback := Compute(1000, 40, 10, 0, 0)

	assert.Equal(t, measured, fallback)
}

// TestCompute_WindowCoversVisibleRange checks the superset guarantee: every
// row intersecting [scrollTop, scrollTop+viewport) is materialized, for a
// sweep of scroll offsets including non-aligned ones.
func TestCompute_WindowCoversVisibleRange(t *testing.T) {
	const (
		count     = 500
		rowHeight = 40
		overscan  = 10
		viewport  = 613 // deliberately not a multiple of rowHeight
	)

	for scrollTop := 0; scrollTop <= MaxScrollTop(count, rowHeight, viewport); scrollTop += 7 {
		w := Compute(count, rowHeight, overscan, scrollTop, viewport)

		require.GreaterOrEqual(t, w.Start, 0)
		require.LessOrEqual(t, w.End, count)
		require.Equal(t, w.Start*rowHeight, w.StartOffset)
		require.Equal(t, count*rowHeight, w.TotalHeight)

		for i := 0; i < count; i++ {
			rowTop := i * rowHeight
			if rowTop >= scrollTop && rowTop < scrollTop+viewport {
				require.True(t, w.Contains(i),
					"row %d (top %d) visible at scrollTop %d but outside [%d, %d)",
					i, rowTop, scrollTop, w.Start, w.End)
			}
		}
	}
}

// TestCompute_StartMonotonicInScrollTop checks that scrolling down never
// moves the window start back up.
func TestCompute_StartMonotonicInScrollTop(t *testing.T) {
	const (
		count     = 300
		rowHeight = 40
		overscan  = 10
		viewport  = 600
	)

	prevStart := -1
	for scrollTop := 0; scrollTop <= count*rowHeight; scrollTop += 13 {
		w := Compute(count, rowHeight, overscan, scrollTop, viewport)
		require.GreaterOrEqual(t, w.Start, prevStart, "start regressed at scrollTop %d", scrollTop)
		prevStart = w.Start
	}
}

func TestCompute_TotalHeightIndependentOfScroll(t *testing.T) {
	for _, scrollTop := range []int{0, 40, 999, 39999, 1 << 20} {
		w := Compute(1000, 40, 10, scrollTop, 600)
		assert.Equal(t, 40000, w.TotalHeight)
	}
}

func TestMaxScrollTop(t *testing.T) {
	assert.Equal(t, 39400, MaxScrollTop(1000, 40, 600))
	assert.Equal(t, 0, MaxScrollTop(10, 40, 600)) // list shorter than viewport
	assert.Equal(t, 0, MaxScrollTop(0, 40, 600))
}
