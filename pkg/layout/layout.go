// Package layout tracks the vertical cursor and page count while a report is
// laid out, breaking to a new page when a block would run into the footer.
package layout

// Geometry describes the page in millimetres.
type Geometry struct {
	Width         float64
	Height        float64
	Margin        float64
	FooterReserve float64
}

// A4 returns portrait A4 with a 20 mm margin and 15 mm kept for the footer.
func A4() Geometry {
	return Geometry{Width: 210, Height: 297, Margin: 20, FooterReserve: 15}
}

// ContentWidth is the width between the side margins.
func (g Geometry) ContentWidth() float64 {
	return g.Width - 2*g.Margin
}

// Limit is the lowest cursor position a block may end at.
func (g Geometry) Limit() float64 {
	return g.Height - g.Margin - g.FooterReserve
}

// FooterY is the baseline of the page footer.
func (g Geometry) FooterY() float64 {
	return g.Height - 10
}

// Context is the per-build document state. It is owned by a single build and
// never shared.
type Context struct {
	Geometry Geometry

	// Y is the vertical cursor.
	Y float64

	// Page is the 1-based number of the page being drawn.
	Page int

	newPage func()
	footer  func(page int)
}

// NewContext returns a cursor at the top margin of page 1. newPage emits a
// page break and footer stamps the footer of the given page.
func NewContext(g Geometry, newPage func(), footer func(page int)) *Context {
	if newPage == nil {
		newPage = func() {}
	}
	if footer == nil {
		footer = func(int) {}
	}
	return &Context{Geometry: g, Y: g.Margin, Page: 1, newPage: newPage, footer: footer}
}

// EnsureSpace breaks to a new page when a block of the given height would end
// past Limit. It reports whether a break happened. At most one break occurs
// per call, so a block taller than a page still starts at the top margin.
func (c *Context) EnsureSpace(required float64) bool {
	if c.Y+required <= c.Geometry.Limit() {
		return false
	}
	c.footer(c.Page)
	c.newPage()
	c.Page++
	c.Y = c.Geometry.Margin
	return true
}

// Advance moves the cursor down by dy.
func (c *Context) Advance(dy float64) {
	c.Y += dy
}

// MoveTo places the cursor at y.
func (c *Context) MoveTo(y float64) {
	c.Y = y
}

// Finish stamps the footer on the last page.
func (c *Context) Finish() {
	c.footer(c.Page)
}
