// Package virtual computes which slice of a long list is on screen.
//
// Every item is assumed to be ItemHeight rows tall. Real cards vary, so the
// window is an estimate: items are placed at index*ItemHeight and cut or
// padded to that height by the renderer.
package virtual

const (
	// DefaultThreshold is the item count above which a list is windowed.
	DefaultThreshold = 50
	// DefaultBuffer is how many extra items are kept on each side of the
	// visible range so fast scrolling does not show gaps.
	DefaultBuffer = 3
)

// Params describes a list and its viewport. All sizes are in rows.
type Params struct {
	Count          int
	ScrollOffset   int
	ViewportHeight int
	ItemHeight     int
	Buffer         int
}

// Window is the half-open index range [Start, End) that should be rendered.
type Window struct {
	Start       int
	End         int
	ItemHeight  int
	TotalHeight int
}

// Enabled reports whether a list of count items should be windowed.
func Enabled(count, threshold int) bool {
	if threshold < 0 {
		threshold = DefaultThreshold
	}
	return count > threshold
}

// Compute returns the window for p.
func Compute(p Params) Window {
	h := p.ItemHeight
	if h <= 0 {
		h = 1
	}
	count := max(p.Count, 0)
	buffer := max(p.Buffer, 0)
	scroll := max(p.ScrollOffset, 0)
	viewport := max(p.ViewportHeight, 0)

	start := max(0, scroll/h-buffer)
	start = min(start, count)
	span := (viewport + h - 1) / h
	end := min(count, start+span+2*buffer)

	return Window{
		Start:       start,
		End:         end,
		ItemHeight:  h,
		TotalHeight: count * h,
	}
}

// Len is the number of items in the window.
func (w Window) Len() int {
	return w.End - w.Start
}

// Contains reports whether item i is rendered.
func (w Window) Contains(i int) bool {
	return i >= w.Start && i < w.End
}

// Offset is the row at which item i starts.
func (w Window) Offset(i int) int {
	return i * w.ItemHeight
}

// ClampScroll keeps a scroll offset inside [0, total-viewport].
func ClampScroll(offset, total, viewport int) int {
	maxOffset := max(total-viewport, 0)
	return min(max(offset, 0), maxOffset)
}

// ScrollToReveal returns the smallest change to offset that makes the rows
// [top, top+height) visible in a viewport of the given size.
func ScrollToReveal(offset, top, height, viewport int) int {
	if viewport <= 0 {
		return top
	}
	if top < offset {
		return top
	}
	if bottom := top + height; bottom > offset+viewport {
		if height >= viewport {
			return top
		}
		return bottom - viewport
	}
	return offset
}

// Scrollbar returns the thumb position and size for a scrollbar track of
// viewport rows. ok is false when everything fits and no bar is needed.
func Scrollbar(total, viewport, offset int) (pos, size int, ok bool) {
	if viewport <= 0 || total <= viewport {
		return 0, 0, false
	}
	size = max(1, viewport*viewport/total)
	offset = ClampScroll(offset, total, viewport)
	pos = offset * (viewport - size) / (total - viewport)
	return pos, size, true
}
