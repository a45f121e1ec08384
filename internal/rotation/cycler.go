package rotation

// Cycler is a cyclic index over a list of n entries, advanced on each tick
type Cycler struct {
	index int
	n     int
}

// NewCycler creates a cycler over n entries starting at 0
func NewCycler(n int) *Cycler {
	c := &Cycler{}
	c.SetLen(n)
	return c
}

// SetLen changes the number of entries, keeping the index in range
func (c *Cycler) SetLen(n int) {
	if n < 0 {
		n = 0
	}
	c.n = n
	if n == 0 {
		c.index = 0
		return
	}
	c.index %= n
}

// Tick advances the index, wrapping to 0 after the last entry
func (c *Cycler) Tick() {
	if c.n == 0 {
		return
	}
	c.index = (c.index + 1) % c.n
}

// Index returns the current entry
func (c *Cycler) Index() int { return c.index }

// Len returns the number of entries
func (c *Cycler) Len() int { return c.n }
