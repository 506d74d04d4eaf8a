package metrics

import (
	"fmt"

	werrors "github.com/r3d91ll/qmreport/pkg/errors"
)

// ConfusionMatrix is an N×N grid of counts; rows are actual classes and
// columns predicted classes.
type ConfusionMatrix [][]int

// Validate rejects empty, non-square and negative matrices.
func (m ConfusionMatrix) Validate() error {
	n := len(m)
	if n == 0 {
		return werrors.MatrixMalformed("matrix is empty")
	}
	for i, row := range m {
		if len(row) != n {
			return werrors.MatrixMalformed(fmt.Sprintf("row %d has %d cells, want %d", i, len(row), n)).
				WithContext("size", fmt.Sprint(n))
		}
		for j, v := range row {
			if v < 0 {
				return werrors.MatrixMalformed(fmt.Sprintf("cell (%d,%d) is negative", i, j))
			}
		}
	}
	return nil
}

// Size is the number of classes.
func (m ConfusionMatrix) Size() int { return len(m) }

// Max is the largest count, or 0 for an empty matrix.
func (m ConfusionMatrix) Max() int {
	peak := 0
	for _, row := range m {
		for _, v := range row {
			if v > peak {
				peak = v
			}
		}
	}
	return peak
}

// Total is the sum of all counts.
func (m ConfusionMatrix) Total() int {
	total := 0
	for _, row := range m {
		for _, v := range row {
			total += v
		}
	}
	return total
}

// Correct is the sum of the diagonal.
func (m ConfusionMatrix) Correct() int {
	c := 0
	for i := range m {
		if i < len(m[i]) {
			c += m[i][i]
		}
	}
	return c
}

// DisplayLabels returns labels for an n-class matrix: the first n supplied
// labels when there are enough, otherwise "Class 1".."Class n".
func DisplayLabels(n int, supplied []string) []string {
	if len(supplied) >= n {
		return append([]string(nil), supplied[:n]...)
	}
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("Class %d", i+1)
	}
	return out
}

// BinaryConfusion builds a two-class matrix from per-class totals and the
// number classified correctly in each class.
func BinaryConfusion(total0, correct0, total1, correct1 int) ConfusionMatrix {
	return ConfusionMatrix{
		{correct0, total0 - correct0},
		{total1 - correct1, correct1},
	}
}
