// Package csvdata reads row-major CSV training/prediction data into the
// plain slices the rf façade package expects. It contributes no training
// or prediction algorithms of its own, only I/O and parsing.
package csvdata

import (
	"encoding/csv"
	"io"
	"strconv"
)

// ClassificationSet holds a CSV file's contents once parsed for a
// classifier: row-major features plus one int64 label per row.
type ClassificationSet struct {
	Data        []float32
	Labels      []int64
	NumFeatures int
}

// RegressionSet holds a CSV file's contents once parsed for a regressor.
type RegressionSet struct {
	Data        []float32
	Targets     []float32
	NumFeatures int
}

// ReadClassification parses CSV rows of the form
// label,feature_1,...,feature_F (labelFirst=true) or
// feature_1,...,feature_F,label (labelFirst=false). hasHeader skips the
// first row.
func ReadClassification(r io.Reader, labelFirst, hasHeader bool) (*ClassificationSet, error) {
	rows, err := readRows(r, hasHeader)
	if err != nil {
		return nil, err
	}

	set := &ClassificationSet{}
	for _, row := range rows {
		label, features, err := splitRow(row, labelFirst)
		if err != nil {
			return nil, err
		}
		l, err := strconv.ParseInt(label, 10, 64)
		if err != nil {
			return nil, err
		}
		set.Labels = append(set.Labels, l)
		set.Data = append(set.Data, features...)
		set.NumFeatures = len(features)
	}
	return set, nil
}

// ReadRegression parses CSV rows the same way as ReadClassification, but
// the lead/trail column is a float32 target rather than an int64 label.
func ReadRegression(r io.Reader, targetFirst, hasHeader bool) (*RegressionSet, error) {
	rows, err := readRows(r, hasHeader)
	if err != nil {
		return nil, err
	}

	set := &RegressionSet{}
	for _, row := range rows {
		target, features, err := splitRow(row, targetFirst)
		if err != nil {
			return nil, err
		}
		v, err := strconv.ParseFloat(target, 32)
		if err != nil {
			return nil, err
		}
		set.Targets = append(set.Targets, float32(v))
		set.Data = append(set.Data, features...)
		set.NumFeatures = len(features)
	}
	return set, nil
}

// ReadFeatures parses a CSV file of features only, no label/target column
// (used for `rafor predict`).
func ReadFeatures(r io.Reader, hasHeader bool) (data []float32, numFeatures int, err error) {
	rows, err := readRows(r, hasHeader)
	if err != nil {
		return nil, 0, err
	}
	for _, row := range rows {
		features, err := parseFloats(row)
		if err != nil {
			return nil, 0, err
		}
		data = append(data, features...)
		numFeatures = len(features)
	}
	return data, numFeatures, nil
}

func readRows(r io.Reader, hasHeader bool) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.ReuseRecord = true

	var rows [][]string
	first := true
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if first && hasHeader {
			first = false
			continue
		}
		first = false

		cp := make([]string, len(row))
		copy(cp, row)
		rows = append(rows, cp)
	}
	return rows, nil
}

func splitRow(row []string, leadColumn bool) (label string, features []float32, err error) {
	if leadColumn {
		label = row[0]
		features, err = parseFloats(row[1:])
	} else {
		label = row[len(row)-1]
		features, err = parseFloats(row[:len(row)-1])
	}
	return label, features, err
}

func parseFloats(cols []string) ([]float32, error) {
	out := make([]float32, len(cols))
	for i, c := range cols {
		v, err := strconv.ParseFloat(c, 32)
		if err != nil {
			return nil, err
		}
		out[i] = float32(v)
	}
	return out, nil
}
