package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/savthe/rafor/forest"
)

// fitReport summarizes a completed fit for logging/operator feedback; it
// is never persisted alongside the model.
type fitReport struct {
	runID    string
	task     string
	elapsed  time.Duration
	numTrees int
	oob      *forest.OOBStats
}

func newFitReport(task string, numTrees int) *fitReport {
	return &fitReport{runID: uuid.NewString(), task: task, numTrees: numTrees}
}

func (r *fitReport) finish(start time.Time, oob *forest.OOBStats) {
	r.elapsed = time.Since(start)
	r.oob = oob
}

// log emits a structured progress line tagged with runID for cross-run
// correlation.
func (r *fitReport) log() {
	entry := logrus.WithFields(logrus.Fields{
		"run_id":    r.runID,
		"task":      r.task,
		"num_trees": r.numTrees,
		"elapsed_s": r.elapsed.Seconds(),
	})
	if r.oob != nil {
		if r.task == "classification" {
			entry = entry.WithField("oob_accuracy", r.oob.Accuracy)
		} else {
			entry = entry.WithField("oob_mse", r.oob.MSE)
		}
	}
	entry.Info("fit complete")
}

// printSummary highlights the headline metric in color, falling back to a
// plain elapsed-time line when no OOB estimate was requested.
func (r *fitReport) printSummary() {
	successColor := color.New(color.FgGreen, color.Bold)
	fmt.Printf("fitted %d trees in %.2fs (run %s)\n", r.numTrees, r.elapsed.Seconds(), r.runID)
	if r.oob == nil {
		return
	}
	if r.task == "classification" {
		successColor.Printf("out-of-bag accuracy: %.4f\n", r.oob.Accuracy)
	} else {
		successColor.Printf("out-of-bag MSE: %.4f\n", r.oob.MSE)
	}
}
