package main

import "testing"

func TestClassificationMetricsPerfect(t *testing.T) {
	labels := []int64{0, 1, 0, 1}
	preds := []int64{0, 1, 0, 1}

	acc, f1 := classificationMetrics(labels, preds)
	if acc != 1.0 {
		t.Error("expected perfect accuracy, got:", acc)
	}
	if f1 != 1.0 {
		t.Error("expected perfect macro F1, got:", f1)
	}
}

func TestClassificationMetricsAllWrong(t *testing.T) {
	labels := []int64{0, 0, 1, 1}
	preds := []int64{1, 1, 0, 0}

	acc, _ := classificationMetrics(labels, preds)
	if acc != 0.0 {
		t.Error("expected zero accuracy, got:", acc)
	}
}

func TestRegressionMetricsPerfectFit(t *testing.T) {
	targets := []float32{1, 2, 3, 4}
	preds := []float32{1, 2, 3, 4}

	mse, r2 := regressionMetrics(targets, preds)
	if mse != 0 {
		t.Error("expected zero MSE, got:", mse)
	}
	if r2 != 1.0 {
		t.Error("expected R^2 of 1, got:", r2)
	}
}

func TestRegressionMetricsConstantBaseline(t *testing.T) {
	targets := []float32{5, 5, 5}
	preds := []float32{1, 2, 3}

	_, r2 := regressionMetrics(targets, preds)
	if r2 != 0 {
		t.Error("expected R^2 of 0 when targets have zero variance, got:", r2)
	}
}
