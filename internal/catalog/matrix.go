// Marquee - Film Affinity Estimator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

// Matrix maps a row key (theme, rating, genre, season or planning category) to one
// weight per genre column. Row order is fixed at load time.
type Matrix struct {
	keys []string
	rows map[string][]float64
}

func newMatrix(keys []string, rows map[string][]float64) Matrix {
	return Matrix{keys: keys, rows: rows}
}

// Keys returns the row keys in catalog order.
func (m Matrix) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len returns the number of rows.
func (m Matrix) Len() int {
	return len(m.keys)
}

// Has reports whether the matrix has a row for key.
func (m Matrix) Has(key string) bool {
	_, ok := m.rows[key]
	return ok
}

// Row returns a copy of the weights for key.
func (m Matrix) Row(key string) ([]float64, bool) {
	row, ok := m.rows[key]
	if !ok {
		return nil, false
	}
	out := make([]float64, len(row))
	copy(out, row)
	return out, true
}

// Value returns the weight at (key, col). Missing rows, negative columns and columns
// past the end of a short row all read as zero.
func (m Matrix) Value(key string, col int) float64 {
	if col < 0 {
		return 0
	}
	row := m.rows[key]
	if col >= len(row) {
		return 0
	}
	return row[col]
}
