package rf

import (
	"bytes"
	"encoding/gob"
	"io"
	"math/rand"

	"github.com/savthe/rafor/classenc"
	"github.com/savthe/rafor/dataset"
	"github.com/savthe/rafor/tree"
)

// DecisionTreeClassifier is a single classification tree over dense
// float32 features and arbitrary int64 class labels. Single-tree façades
// omit the threads argument Classifier.Predict/Proba take: there is
// exactly one tree to traverse, so the call is already single-threaded.
type DecisionTreeClassifier struct {
	tree        *tree.Tree
	classes     *classenc.Table
	cfg         Config
	numFeatures int
}

// NewDecisionTreeClassifier returns a classifier tree configured with the
// package's single-tree defaults (unlimited depth, all features per
// split) before applying opts.
func NewDecisionTreeClassifier(opts ...Option) *DecisionTreeClassifier {
	cfg := defaultSingleTreeConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &DecisionTreeClassifier{cfg: cfg}
}

func (c *DecisionTreeClassifier) Fit(data []float32, labels []int64) {
	if len(labels) == 0 {
		panic("rf: DecisionTreeClassifier.Fit requires at least one label")
	}
	if len(data)%len(labels) != 0 {
		panic("rf: DecisionTreeClassifier.Fit requires len(data) % len(labels) == 0")
	}
	numFeatures := len(data) / len(labels)

	c.classes = classenc.NewTable(labels)
	c.numFeatures = numFeatures
	view := dataset.NewMatrix(data, numFeatures)

	targets := make([]float32, len(labels))
	weights := make([]uint32, len(labels))
	for i, l := range labels {
		targets[i] = float32(c.classes.Encode(l))
		weights[i] = 1
	}

	space := tree.NewSpace(view, targets, weights)
	rng := rand.New(rand.NewSource(c.cfg.Seed))
	c.tree = tree.Fit(space, numFeatures, c.classes.NumClasses(), c.cfg.toTreeConfig(treeMetricGini), rng)
}

func (c *DecisionTreeClassifier) Predict(data []float32) []int64 {
	probs := c.Proba(data)
	k := c.NumClasses()
	n := len(probs) / k
	out := make([]int64, n)
	for s := 0; s < n; s++ {
		out[s] = c.classes.Decode(argmax(probs[s*k : s*k+k]))
	}
	return out
}

func (c *DecisionTreeClassifier) Proba(data []float32) []float32 {
	view := dataset.NewMatrix(data, c.NumFeatures())
	k := c.NumClasses()
	n := view.NumSamples()
	out := make([]float32, n*k)
	for s := 0; s < n; s++ {
		probs := c.tree.PredictProbs(func(f int) float32 { return view.FeatureVal(s, f) })
		for i, p := range probs {
			out[s*k+i] = float32(p)
		}
	}
	return out
}

func (c *DecisionTreeClassifier) PredictOne(sample []float32) int64 {
	return c.Predict(sample)[0]
}

// NumFeatures returns F. Tracked separately rather than derived from the
// tree, since a pure single-leaf tree never references any feature index.
func (c *DecisionTreeClassifier) NumFeatures() int { return c.numFeatures }

func (c *DecisionTreeClassifier) NumClasses() int { return c.classes.NumClasses() }

func (c *DecisionTreeClassifier) Decode(code uint32) int64 { return c.classes.Decode(code) }

func (c *DecisionTreeClassifier) GetDecodeTable() []int64 { return c.classes.DecodeTable() }

func (c *DecisionTreeClassifier) Save(w io.Writer) error {
	state := struct {
		Tree        *tree.Tree
		DecodeTable []int64
		Cfg         Config
		NumFeatures int
	}{c.tree, c.classes.DecodeTable(), c.cfg, c.numFeatures}
	return gob.NewEncoder(w).Encode(&state)
}

func (c *DecisionTreeClassifier) Load(r io.Reader) error {
	var state struct {
		Tree        *tree.Tree
		DecodeTable []int64
		Cfg         Config
		NumFeatures int
	}
	if err := gob.NewDecoder(r).Decode(&state); err != nil {
		return err
	}
	c.tree = state.Tree
	c.classes = classenc.FromDecodeTable(state.DecodeTable)
	c.cfg = state.Cfg
	c.numFeatures = state.NumFeatures
	return nil
}

func (c *DecisionTreeClassifier) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *DecisionTreeClassifier) UnmarshalBinary(data []byte) error {
	return c.Load(bytes.NewReader(data))
}

// DecisionTreeRegressor is a single regression tree over dense float32
// features and real-valued float32 targets.
type DecisionTreeRegressor struct {
	tree        *tree.Tree
	cfg         Config
	numFeatures int
}

// NewDecisionTreeRegressor returns a regressor tree configured with the
// package's single-tree defaults before applying opts.
func NewDecisionTreeRegressor(opts ...Option) *DecisionTreeRegressor {
	cfg := defaultSingleTreeConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &DecisionTreeRegressor{cfg: cfg}
}

func (r *DecisionTreeRegressor) Fit(data []float32, targets []float32) {
	if len(targets) == 0 {
		panic("rf: DecisionTreeRegressor.Fit requires at least one target")
	}
	if len(data)%len(targets) != 0 {
		panic("rf: DecisionTreeRegressor.Fit requires len(data) % len(targets) == 0")
	}
	numFeatures := len(data) / len(targets)
	r.numFeatures = numFeatures

	view := dataset.NewMatrix(data, numFeatures)
	weights := make([]uint32, len(targets))
	for i := range weights {
		weights[i] = 1
	}

	space := tree.NewSpace(view, targets, weights)
	rng := rand.New(rand.NewSource(r.cfg.Seed))
	r.tree = tree.Fit(space, numFeatures, 0, r.cfg.toTreeConfig(treeMetricMSE), rng)
}

func (r *DecisionTreeRegressor) Predict(data []float32) []float32 {
	view := dataset.NewMatrix(data, r.numFeatures)
	n := view.NumSamples()
	out := make([]float32, n)
	for s := 0; s < n; s++ {
		out[s] = float32(r.tree.PredictValue(func(f int) float32 { return view.FeatureVal(s, f) }))
	}
	return out
}

func (r *DecisionTreeRegressor) PredictOne(sample []float32) float32 {
	return r.Predict(sample)[0]
}

func (r *DecisionTreeRegressor) NumFeatures() int { return r.numFeatures }

func (r *DecisionTreeRegressor) Save(w io.Writer) error {
	state := struct {
		Tree        *tree.Tree
		Cfg         Config
		NumFeatures int
	}{r.tree, r.cfg, r.numFeatures}
	return gob.NewEncoder(w).Encode(&state)
}

func (r *DecisionTreeRegressor) Load(rd io.Reader) error {
	var state struct {
		Tree        *tree.Tree
		Cfg         Config
		NumFeatures int
	}
	if err := gob.NewDecoder(rd).Decode(&state); err != nil {
		return err
	}
	r.tree = state.Tree
	r.cfg = state.Cfg
	r.numFeatures = state.NumFeatures
	return nil
}

func (r *DecisionTreeRegressor) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *DecisionTreeRegressor) UnmarshalBinary(data []byte) error {
	return r.Load(bytes.NewReader(data))
}
