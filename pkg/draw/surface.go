package draw

import (
	"strconv"

	werrors "github.com/r3d91ll/qmreport/pkg/errors"
	"github.com/r3d91ll/qmreport/pkg/theme"
)

// Surface is an output target for recorded commands.
type Surface interface {
	AddPage()
	FillRect(x, y, w, h float64, c theme.Color)
	StrokeRect(x, y, w, h float64, c theme.Color, width float64)
	Line(x1, y1, x2, y2 float64, c theme.Color, width float64)
	FillCircle(x, y, r float64, c theme.Color, alpha float64)
	Text(t Text)

	// Err returns the first error the surface hit, if any.
	Err() error
}

// Execute replays cmds on s in order and stops at the first surface error.
func Execute(s Surface, cmds []Command) error {
	for i, c := range cmds {
		c.apply(s)
		if err := s.Err(); err != nil {
			return werrors.Wrap(err, werrors.ErrRenderFailed, werrors.CategoryRender, "drawing surface failed").
				WithContext("command", strconv.Itoa(i)).
				WithContext("op", Describe(c))
		}
	}
	return nil
}

// Pages counts the page breaks in cmds.
func Pages(cmds []Command) int {
	n := 0
	for _, c := range cmds {
		if _, ok := c.(NewPage); ok {
			n++
		}
	}
	return n
}

// Split groups cmds by page. Commands before the first NewPage are dropped;
// each returned slice excludes its NewPage marker.
func Split(cmds []Command) [][]Command {
	var pages [][]Command
	for _, c := range cmds {
		if _, ok := c.(NewPage); ok {
			pages = append(pages, nil)
			continue
		}
		if len(pages) == 0 {
			continue
		}
		pages[len(pages)-1] = append(pages[len(pages)-1], c)
	}
	return pages
}
