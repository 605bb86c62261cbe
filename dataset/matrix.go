// Package dataset implements a column-major, read-only view over a dense
// numeric feature matrix. Column-major layout is mandatory: the splitter
// scans every sample of one feature at a time, and a row-major layout would
// thrash cache during that scan.
package dataset

// Matrix is a borrowed column-major view over a feature matrix: all values
// of a given feature are contiguous. A Matrix is created per training or
// prediction call and is not owned by any model.
type Matrix struct {
	data       []float32
	numSamples int
	numFeat    int
}

// NewMatrix builds a column-major Matrix from a row-major slice, the layout
// user-facing APIs receive: row i's F values occupy data[i*F : i*F+F].
// len(rowMajor) must be an exact multiple of numFeatures.
func NewMatrix(rowMajor []float32, numFeatures int) *Matrix {
	if numFeatures <= 0 {
		panic("dataset: numFeatures must be positive")
	}
	if len(rowMajor)%numFeatures != 0 {
		panic("dataset: row-major data length is not a multiple of numFeatures")
	}
	n := len(rowMajor) / numFeatures

	col := make([]float32, len(rowMajor))
	for s := 0; s < n; s++ {
		for f := 0; f < numFeatures; f++ {
			col[f*n+s] = rowMajor[s*numFeatures+f]
		}
	}

	return &Matrix{data: col, numSamples: n, numFeat: numFeatures}
}

// NewColumnMajor wraps data that is already laid out column-major (feature f's
// n values contiguous at data[f*n : f*n+n]), building a view without a
// transpose step.
func NewColumnMajor(data []float32, numSamples, numFeatures int) *Matrix {
	if numSamples*numFeatures != len(data) {
		panic("dataset: data length does not match numSamples*numFeatures")
	}
	return &Matrix{data: data, numSamples: numSamples, numFeat: numFeatures}
}

// NumFeatures returns F, the number of columns.
func (m *Matrix) NumFeatures() int { return m.numFeat }

// NumSamples returns N, the number of rows.
func (m *Matrix) NumSamples() int { return m.numSamples }

// FeatureVal returns the value of feature f for sample s in O(1).
func (m *Matrix) FeatureVal(sample, feature int) float32 {
	return m.data[feature*m.numSamples+sample]
}
