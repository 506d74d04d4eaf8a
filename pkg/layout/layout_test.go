package layout

import (
	"math/rand"
	"testing"
)

func TestA4Geometry(t *testing.T) {
	g := A4()
	if g.ContentWidth() != 170 {
		t.Errorf("expected content width 170, got %.2f", g.ContentWidth())
	}
	if g.Limit() != 262 {
		t.Errorf("expected limit 262, got %.2f", g.Limit())
	}
	if g.FooterY() != 287 {
		t.Errorf("expected footer baseline 287, got %.2f", g.FooterY())
	}
}

func TestEnsureSpaceBreaks(t *testing.T) {
	var footers []int
	pages := 0
	c := NewContext(A4(), func() { pages++ }, func(p int) { footers = append(footers, p) })

	c.MoveTo(200)
	if c.EnsureSpace(50) {
		t.Fatal("expected 200+50 to fit under 262")
	}
	if !c.EnsureSpace(63) {
		t.Fatal("expected 200+63 to break")
	}

	if c.Y != 20 {
		t.Errorf("expected cursor reset to margin, got %.2f", c.Y)
	}
	if c.Page != 2 || pages != 1 {
		t.Errorf("expected page 2 after one break, got page=%d newPage calls=%d", c.Page, pages)
	}
	if len(footers) != 1 || footers[0] != 1 {
		t.Errorf("expected footer stamped on page 1, got %v", footers)
	}

	c.Finish()
	if footers[len(footers)-1] != 2 {
		t.Errorf("expected final footer on page 2, got %v", footers)
	}
}

func TestEnsureSpaceExactLimitFits(t *testing.T) {
	c := NewContext(A4(), nil, nil)
	c.MoveTo(212)
	if c.EnsureSpace(50) {
		t.Error("expected a block ending exactly at the limit to fit")
	}
}

func TestPaginationMonotonicity(t *testing.T) {
	g := A4()
	rng := rand.New(rand.NewSource(7))

	for run := 0; run < 50; run++ {
		c := NewContext(g, nil, nil)
		lastPage := c.Page
		for i := 0; i < 200; i++ {
			req := rng.Float64() * (g.Limit() - g.Margin)
			c.EnsureSpace(req)
			if c.Y+req > g.Limit() {
				t.Fatalf("run %d step %d: cursor %.2f + %.2f exceeds limit %.2f", run, i, c.Y, req, g.Limit())
			}
			if c.Page < lastPage {
				t.Fatalf("run %d step %d: page went backwards %d -> %d", run, i, lastPage, c.Page)
			}
			lastPage = c.Page
			c.Advance(req)
		}
	}
}
