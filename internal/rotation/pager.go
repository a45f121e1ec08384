// Package rotation holds the timer-driven display controllers: a paginated
// window that auto-advances, and a cyclic index over locations.
package rotation

// Mode is the pager's auto-advance state
type Mode int

const (
	ModeAuto   Mode = iota // advancing on every tick
	ModePaused             // manual navigation, waiting for resume
)

// String returns a human-readable mode name
func (m Mode) String() string {
	if m == ModePaused {
		return "paused"
	}
	return "auto"
}

// ResumeToken identifies one manual navigation. Only the token from the most
// recent navigation can resume auto-advance, so a stale resume timer is a no-op.
type ResumeToken uint64

// Pager windows a list into pages and advances through them.
// Offsets are page aligned: advancing past the last page wraps to 0 and going
// back from 0 lands on the last page.
type Pager[T any] struct {
	items    []T
	offset   int
	pageSize int
	mode     Mode
	token    ResumeToken
}

// NewPager creates a pager in auto mode at offset 0
func NewPager[T any](pageSize int) *Pager[T] {
	if pageSize < 1 {
		pageSize = 1
	}
	return &Pager[T]{pageSize: pageSize, mode: ModeAuto}
}

// SetItems replaces the list wholesale. The offset is renormalized modulo the
// new count and snapped back to a page boundary, so a list that shrank to a
// single page shows from the top.
func (p *Pager[T]) SetItems(items []T) {
	p.items = items
	p.normalize()
}

func (p *Pager[T]) normalize() {
	n := len(p.items)
	if n == 0 {
		p.offset = 0
		return
	}
	p.offset = (p.offset % n) / p.pageSize * p.pageSize
}

// Tick advances one page if auto-advancing and there is more than one page.
// It reports whether the offset moved.
func (p *Pager[T]) Tick() bool {
	if p.mode != ModeAuto || len(p.items) <= p.pageSize {
		return false
	}
	p.advance()
	return true
}

// Next moves forward one page and pauses auto-advance. With no items it is a
// no-op and ok is false.
func (p *Pager[T]) Next() (tok ResumeToken, ok bool) {
	if len(p.items) == 0 {
		return 0, false
	}
	p.advance()
	return p.pause(), true
}

// Prev moves back one page and pauses auto-advance. With no items it is a
// no-op and ok is false.
func (p *Pager[T]) Prev() (tok ResumeToken, ok bool) {
	n := len(p.items)
	if n == 0 {
		return 0, false
	}
	switch {
	case p.offset == 0:
		p.offset = ((n - 1) / p.pageSize) * p.pageSize
	case p.offset < p.pageSize:
		p.offset = 0
	default:
		p.offset -= p.pageSize
	}
	return p.pause(), true
}

// Resume returns to auto mode if tok is from the latest manual navigation.
func (p *Pager[T]) Resume(tok ResumeToken) bool {
	if p.mode != ModePaused || tok != p.token {
		return false
	}
	p.mode = ModeAuto
	return true
}

func (p *Pager[T]) advance() {
	p.normalize()
	next := p.offset + p.pageSize
	if next >= len(p.items) {
		next = 0
	}
	p.offset = next
}

func (p *Pager[T]) pause() ResumeToken {
	p.mode = ModePaused
	p.token++
	return p.token
}

// Window returns items[offset : offset+pageSize], clamped to the list length.
func (p *Pager[T]) Window() []T {
	p.normalize()
	start, end := p.Bounds()
	return p.items[start:end]
}

// Bounds returns the half-open index range of the visible window
func (p *Pager[T]) Bounds() (start, end int) {
	n := len(p.items)
	if n == 0 {
		return 0, 0
	}
	start = p.offset
	if start >= n {
		start %= n
	}
	end = start + p.pageSize
	if end > n {
		end = n
	}
	return start, end
}

// Offset returns the index of the first visible item
func (p *Pager[T]) Offset() int { return p.offset }

// PageSize returns the configured window size
func (p *Pager[T]) PageSize() int { return p.pageSize }

// Len returns the number of items
func (p *Pager[T]) Len() int { return len(p.items) }

// Mode returns the current auto-advance state
func (p *Pager[T]) Mode() Mode { return p.mode }

// Items returns the full list
func (p *Pager[T]) Items() []T { return p.items }
