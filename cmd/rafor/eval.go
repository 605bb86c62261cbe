package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/savthe/rafor/internal/csvdata"
	"github.com/savthe/rafor/rf"
)

var (
	evalModel      string
	evalData       string
	evalLabelFirst bool
	evalHeader     bool
	evalThreads    int
)

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Evaluate a fitted model against labeled CSV data",
	RunE:  runEval,
}

func init() {
	f := evalCmd.Flags()
	f.StringVar(&evalModel, "model", "model.bin", "model file written by `rafor fit`")
	f.StringVar(&evalData, "data", "", "labeled CSV test file (required)")
	f.BoolVar(&evalLabelFirst, "label-first", true, "label/target is the first CSV column (otherwise the last)")
	f.BoolVar(&evalHeader, "header", false, "CSV has a header row to skip")
	f.IntVar(&evalThreads, "threads", 1, "worker threads (ensembles only)")
	_ = evalCmd.MarkFlagRequired("data")
}

func runEval(_ *cobra.Command, _ []string) error {
	kind, mf, err := openModel(evalModel)
	if err != nil {
		return err
	}
	defer mf.Close()

	df, err := os.Open(evalData)
	if err != nil {
		return fmt.Errorf("opening data file %s: %w", evalData, err)
	}
	defer df.Close()

	highlight := color.New(color.FgGreen, color.Bold)

	switch kind {
	case kindClassifierForest, kindClassifierTree:
		set, err := csvdata.ReadClassification(df, evalLabelFirst, evalHeader)
		if err != nil {
			return fmt.Errorf("parsing test data: %w", err)
		}
		var preds []int64
		if kind == kindClassifierForest {
			clf := new(rf.Classifier)
			if err := clf.Load(mf); err != nil {
				return err
			}
			preds = clf.Predict(set.Data, evalThreads)
		} else {
			dtc := new(rf.DecisionTreeClassifier)
			if err := dtc.Load(mf); err != nil {
				return err
			}
			preds = dtc.Predict(set.Data)
		}
		acc, f1 := classificationMetrics(set.Labels, preds)
		fmt.Printf("accuracy: %.4f\n", acc)
		highlight.Printf("macro F1: %.4f\n", f1)

	case kindRegressorForest, kindRegressorTree:
		set, err := csvdata.ReadRegression(df, evalLabelFirst, evalHeader)
		if err != nil {
			return fmt.Errorf("parsing test data: %w", err)
		}
		var preds []float32
		if kind == kindRegressorForest {
			reg := new(rf.Regressor)
			if err := reg.Load(mf); err != nil {
				return err
			}
			preds = reg.Predict(set.Data, evalThreads)
		} else {
			dtr := new(rf.DecisionTreeRegressor)
			if err := dtr.Load(mf); err != nil {
				return err
			}
			preds = dtr.Predict(set.Data)
		}
		mse, r2 := regressionMetrics(set.Targets, preds)
		fmt.Printf("MSE: %.4f\n", mse)
		highlight.Printf("R^2: %.4f\n", r2)

	default:
		return fmt.Errorf("eval: unrecognized model file %s", evalModel)
	}

	return nil
}

// classificationMetrics returns overall accuracy and the macro-averaged F1
// score across every class observed in labels or in preds.
func classificationMetrics(labels, preds []int64) (accuracy, macroF1 float64) {
	n := len(labels)
	if n == 0 {
		return 0, 0
	}

	type counts struct{ tp, fp, fn int }
	perClass := make(map[int64]*counts)
	correct := 0

	for i, actual := range labels {
		pred := preds[i]
		if actual == pred {
			correct++
		}
		if _, ok := perClass[actual]; !ok {
			perClass[actual] = &counts{}
		}
		if _, ok := perClass[pred]; !ok {
			perClass[pred] = &counts{}
		}
		if actual == pred {
			perClass[actual].tp++
		} else {
			perClass[actual].fn++
			perClass[pred].fp++
		}
	}

	accuracy = float64(correct) / float64(n)

	var f1Sum float64
	for _, c := range perClass {
		precision := 0.0
		if c.tp+c.fp > 0 {
			precision = float64(c.tp) / float64(c.tp+c.fp)
		}
		recall := 0.0
		if c.tp+c.fn > 0 {
			recall = float64(c.tp) / float64(c.tp+c.fn)
		}
		f1 := 0.0
		if precision+recall > 0 {
			f1 = 2 * precision * recall / (precision + recall)
		}
		f1Sum += f1
	}
	if len(perClass) > 0 {
		macroF1 = f1Sum / float64(len(perClass))
	}
	return accuracy, macroF1
}

// regressionMetrics returns mean squared error and the coefficient of
// determination (R^2) against the test targets.
func regressionMetrics(targets, preds []float32) (mse, r2 float64) {
	n := len(targets)
	if n == 0 {
		return 0, 0
	}

	var mean float64
	for _, y := range targets {
		mean += float64(y)
	}
	mean /= float64(n)

	var sumSq, totalSq float64
	for i, y := range targets {
		diff := float64(y) - float64(preds[i])
		sumSq += diff * diff
		centered := float64(y) - mean
		totalSq += centered * centered
	}

	mse = sumSq / float64(n)
	if totalSq > 0 {
		r2 = 1 - sumSq/totalSq
	}
	return mse, r2
}
