package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/savthe/rafor/internal/csvdata"
	"github.com/savthe/rafor/rf"
)

var (
	fitData            string
	fitOut             string
	fitTask            string
	fitLabelFirst      bool
	fitHeader          bool
	fitSingleTree      bool
	fitMaxDepth        int
	fitMinSamplesSplit int
	fitMinSamplesLeaf  int
	fitMaxFeatures     string
	fitSeed            int64
	fitNumTrees        int
	fitNumThreads      int
	fitOOB             bool
)

var fitCmd = &cobra.Command{
	Use:   "fit",
	Short: "Train a classifier or regressor from CSV data",
	RunE:  runFit,
}

func init() {
	f := fitCmd.Flags()
	f.StringVar(&fitData, "data", "", "training CSV file (required)")
	f.StringVar(&fitOut, "out", "model.bin", "file to write the fitted model to")
	f.StringVar(&fitTask, "task", "classification", `"classification" or "regression"`)
	f.BoolVar(&fitLabelFirst, "label-first", true, "label/target is the first CSV column (otherwise the last)")
	f.BoolVar(&fitHeader, "header", false, "CSV has a header row to skip")
	f.BoolVar(&fitSingleTree, "single-tree", false, "fit one decision tree instead of a forest")
	f.IntVar(&fitMaxDepth, "max-depth", -1, "maximum tree depth, -1 for unlimited")
	f.IntVar(&fitMinSamplesSplit, "min-samples-split", 2, "minimum samples required to split a node")
	f.IntVar(&fitMinSamplesLeaf, "min-samples-leaf", 1, "minimum samples required in a leaf")
	f.StringVar(&fitMaxFeatures, "max-features", "", `"sqrt", "log2", "all", or an integer; empty keeps the façade default`)
	f.Int64Var(&fitSeed, "seed", 42, "master seed")
	f.IntVar(&fitNumTrees, "trees", 100, "number of trees (ensembles only)")
	f.IntVar(&fitNumThreads, "threads", 1, "worker threads (ensembles only)")
	f.BoolVar(&fitOOB, "oob", false, "compute out-of-bag accuracy/error (ensembles only)")
	_ = fitCmd.MarkFlagRequired("data")
}

func runFit(cmd *cobra.Command, _ []string) error {
	fc, err := loadFileConfig(configPath)
	if err != nil {
		return err
	}
	opts, err := fc.options()
	if err != nil {
		return err
	}
	opts = append(opts, cliFitOverrides(cmd)...)

	df, err := os.Open(fitData)
	if err != nil {
		return fmt.Errorf("opening data file %s: %w", fitData, err)
	}
	defer df.Close()

	start := time.Now()
	report := newFitReport(fitTask, fitNumTrees)
	if fitSingleTree {
		report.numTrees = 1
	}

	switch fitTask {
	case "classification":
		return fitClassification(df, opts, report, start)
	case "regression":
		return fitRegression(df, opts, report, start)
	default:
		return fmt.Errorf(`fit: --task must be "classification" or "regression", got %q`, fitTask)
	}
}

func cliFitOverrides(cmd *cobra.Command) []rf.Option {
	var opts []rf.Option
	flags := cmd.Flags()
	if flags.Changed("max-depth") {
		opts = append(opts, rf.WithMaxDepth(fitMaxDepth))
	}
	if flags.Changed("min-samples-split") {
		opts = append(opts, rf.WithMinSamplesSplit(fitMinSamplesSplit))
	}
	if flags.Changed("min-samples-leaf") {
		opts = append(opts, rf.WithMinSamplesLeaf(fitMinSamplesLeaf))
	}
	if flags.Changed("max-features") && fitMaxFeatures != "" {
		if opt, err := parseMaxFeatures(fitMaxFeatures); err == nil {
			opts = append(opts, opt)
		}
	}
	if flags.Changed("seed") {
		opts = append(opts, rf.WithSeed(fitSeed))
	}
	if flags.Changed("trees") {
		opts = append(opts, rf.WithNumTrees(fitNumTrees))
	}
	if flags.Changed("threads") {
		opts = append(opts, rf.WithNumThreads(fitNumThreads))
	}
	if flags.Changed("oob") && fitOOB {
		opts = append(opts, rf.WithComputeOOB())
	}
	return opts
}

func fitClassification(df *os.File, opts []rf.Option, report *fitReport, start time.Time) error {
	set, err := csvdata.ReadClassification(df, fitLabelFirst, fitHeader)
	if err != nil {
		return fmt.Errorf("parsing training data: %w", err)
	}

	if fitSingleTree {
		dtc := rf.NewDecisionTreeClassifier(opts...)
		dtc.Fit(set.Data, set.Labels)
		report.finish(start, nil)
		report.log()
		report.printSummary()
		return writeModel(fitOut, kindClassifierTree, dtc)
	}

	clf := rf.NewClassifier(opts...)
	clf.Fit(set.Data, set.Labels)
	report.finish(start, clf.OOB())
	report.log()
	report.printSummary()
	return writeModel(fitOut, kindClassifierForest, clf)
}

func fitRegression(df *os.File, opts []rf.Option, report *fitReport, start time.Time) error {
	set, err := csvdata.ReadRegression(df, fitLabelFirst, fitHeader)
	if err != nil {
		return fmt.Errorf("parsing training data: %w", err)
	}

	if fitSingleTree {
		dtr := rf.NewDecisionTreeRegressor(opts...)
		dtr.Fit(set.Data, set.Targets)
		report.finish(start, nil)
		report.log()
		report.printSummary()
		return writeModel(fitOut, kindRegressorTree, dtr)
	}

	reg := rf.NewRegressor(opts...)
	reg.Fit(set.Data, set.Targets)
	report.finish(start, reg.OOB())
	report.log()
	report.printSummary()
	return writeModel(fitOut, kindRegressorForest, reg)
}
