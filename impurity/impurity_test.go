package impurity

import (
	"math"
	"testing"
)

func TestGiniPushPop(t *testing.T) {
	g := NewGini(2)
	g.Push(0, 3)
	g.Push(1, 2)

	if g.Weight() != 5 {
		t.Error("expected weight 5, got:", g.Weight())
	}

	want := 1 - (float64(3*3+2*2) / (5 * 5))
	if math.Abs(g.Impurity()-want) > 1e-9 {
		t.Error("expected impurity:", want, "got:", g.Impurity())
	}

	g.Pop(0, 3)
	if g.Weight() != 2 {
		t.Error("expected weight 2 after pop, got:", g.Weight())
	}
	if math.Abs(g.Impurity()-0) > 1e-9 {
		t.Error("expected pure node after popping class 0, got impurity:", g.Impurity())
	}
}

func TestGiniEmptyImpurity(t *testing.T) {
	g := NewGini(3)
	if g.Impurity() != 0 {
		t.Error("expected empty accumulator impurity 0, got:", g.Impurity())
	}
}

func TestGiniSplitImpurityPureSplit(t *testing.T) {
	left := NewGini(2)
	left.Push(0, 5)
	right := NewGini(2)
	right.Push(1, 5)

	score := left.SplitImpurity(right)
	if math.Abs(score-0) > 1e-9 {
		t.Error("expected perfectly pure split to score 0, got:", score)
	}
}

func TestGiniCloneIndependence(t *testing.T) {
	g := NewGini(2)
	g.Push(0, 4)
	clone := g.Clone().(*Gini)
	clone.Push(1, 1)

	if g.Weight() == clone.Weight() {
		t.Error("expected clone mutation not to affect original")
	}
}

func TestMSEPushPop(t *testing.T) {
	m := NewMSE()
	vals := []float32{1, 2, 3, 4}
	for _, v := range vals {
		m.Push(v, 1)
	}

	wantMean := 2.5
	if math.Abs(m.Mean()-wantMean) > 1e-9 {
		t.Error("expected mean:", wantMean, "got:", m.Mean())
	}

	m.Pop(1, 1)
	m.Pop(2, 1)
	if math.Abs(m.Mean()-3.5) > 1e-9 {
		t.Error("expected mean 3.5 after popping 1 and 2, got:", m.Mean())
	}
	if m.Weight() != 2 {
		t.Error("expected weight 2, got:", m.Weight())
	}
}

func TestMSEImpurityConstant(t *testing.T) {
	m := NewMSE()
	for i := 0; i < 5; i++ {
		m.Push(7, 1)
	}
	if m.Impurity() != 0 {
		t.Error("expected zero impurity for constant target, got:", m.Impurity())
	}
}

func TestMSESplitScore(t *testing.T) {
	left := NewMSE()
	left.Push(1, 1)
	left.Push(1, 1)
	right := NewMSE()
	right.Push(5, 1)
	right.Push(5, 1)

	score := left.SplitImpurity(right)
	if math.Abs(score-0) > 1e-9 {
		t.Error("expected two constant-valued halves to score 0, got:", score)
	}
}

func TestMSECloneIndependence(t *testing.T) {
	m := NewMSE()
	m.Push(1, 1)
	clone := m.Clone().(*MSE)
	clone.Push(9, 1)

	if m.Mean() == clone.Mean() {
		t.Error("expected clone mutation not to affect original")
	}
}
