package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/savthe/rafor/internal/csvdata"
	"github.com/savthe/rafor/rf"
)

var (
	predictModel   string
	predictData    string
	predictOut     string
	predictHeader  bool
	predictThreads int
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict labels/targets for unlabeled CSV data",
	RunE:  runPredict,
}

func init() {
	f := predictCmd.Flags()
	f.StringVar(&predictModel, "model", "model.bin", "model file written by `rafor fit`")
	f.StringVar(&predictData, "data", "", "feature-only CSV file (required)")
	f.StringVar(&predictOut, "out", "", "file to write predictions to (default: stdout)")
	f.BoolVar(&predictHeader, "header", false, "CSV has a header row to skip")
	f.IntVar(&predictThreads, "threads", 1, "worker threads (ensembles only)")
	_ = predictCmd.MarkFlagRequired("data")
}

func runPredict(_ *cobra.Command, _ []string) error {
	kind, mf, err := openModel(predictModel)
	if err != nil {
		return err
	}
	defer mf.Close()

	df, err := os.Open(predictData)
	if err != nil {
		return fmt.Errorf("opening data file %s: %w", predictData, err)
	}
	defer df.Close()

	data, numFeatures, err := csvdata.ReadFeatures(df, predictHeader)
	if err != nil {
		return fmt.Errorf("parsing prediction data: %w", err)
	}

	var lines []string
	switch kind {
	case kindClassifierForest:
		clf := new(rf.Classifier)
		if err := clf.Load(mf); err != nil {
			return err
		}
		checkFeatureCount(numFeatures, clf.NumFeatures())
		for _, v := range clf.Predict(data, predictThreads) {
			lines = append(lines, strconv.FormatInt(v, 10))
		}
	case kindRegressorForest:
		reg := new(rf.Regressor)
		if err := reg.Load(mf); err != nil {
			return err
		}
		checkFeatureCount(numFeatures, reg.NumFeatures())
		for _, v := range reg.Predict(data, predictThreads) {
			lines = append(lines, strconv.FormatFloat(float64(v), 'g', -1, 32))
		}
	case kindClassifierTree:
		dtc := new(rf.DecisionTreeClassifier)
		if err := dtc.Load(mf); err != nil {
			return err
		}
		checkFeatureCount(numFeatures, dtc.NumFeatures())
		for _, v := range dtc.Predict(data) {
			lines = append(lines, strconv.FormatInt(v, 10))
		}
	case kindRegressorTree:
		dtr := new(rf.DecisionTreeRegressor)
		if err := dtr.Load(mf); err != nil {
			return err
		}
		checkFeatureCount(numFeatures, dtr.NumFeatures())
		for _, v := range dtr.Predict(data) {
			lines = append(lines, strconv.FormatFloat(float64(v), 'g', -1, 32))
		}
	default:
		return fmt.Errorf("predict: unrecognized model file %s", predictModel)
	}

	return writeLines(predictOut, lines)
}

func checkFeatureCount(got, want int) {
	if got != want {
		panic(fmt.Sprintf("rafor: prediction data has %d features, model was fit on %d", got, want))
	}
}

func writeLines(path string, lines []string) error {
	w := os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating output file %s: %w", path, err)
		}
		defer f.Close()
		w = f
	}

	bw := bufio.NewWriter(w)
	for _, line := range lines {
		if _, err := bw.WriteString(line); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
