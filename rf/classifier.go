package rf

import (
	"bytes"
	"encoding/gob"
	"io"
	"math"

	"github.com/savthe/rafor/classenc"
	"github.com/savthe/rafor/dataset"
	"github.com/savthe/rafor/forest"
)

// Classifier is a random forest classifier over dense float32 features and
// arbitrary int64 class labels.
type Classifier struct {
	ensemble *forest.Ensemble
	classes  *classenc.Table
	cfg      Config
}

// NewClassifier returns a classifier configured with the package's default
// ensemble settings (100 trees, SQRT(F) features per split, 1 worker, seed
// 42) before applying opts.
func NewClassifier(opts ...Option) *Classifier {
	cfg := defaultEnsembleConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Classifier{cfg: cfg}
}

// Fit trains the forest. len(data) must be a multiple of len(labels); the
// feature count is inferred as len(data)/len(labels). Rows are contiguous
// (row-major) in data.
func (c *Classifier) Fit(data []float32, labels []int64) {
	if len(labels) == 0 {
		panic("rf: Classifier.Fit requires at least one label")
	}
	if len(data)%len(labels) != 0 {
		panic("rf: Classifier.Fit requires len(data) % len(labels) == 0")
	}
	numFeatures := len(data) / len(labels)

	c.classes = classenc.NewTable(labels)
	view := dataset.NewMatrix(data, numFeatures)

	targets := make([]float32, len(labels))
	for i, l := range labels {
		targets[i] = float32(c.classes.Encode(l))
	}

	ecfg := forest.EnsembleConfig{
		Tree:       c.cfg.toTreeConfig(treeMetricGini),
		NumTrees:   c.cfg.NumTrees,
		NumThreads: c.cfg.NumThreads,
		Seed:       c.cfg.Seed,
		ComputeOOB: c.cfg.ComputeOOB,
	}
	c.ensemble = forest.Train(view, targets, ecfg)
}

// OOB returns the out-of-bag confusion matrix and accuracy gathered during
// Fit when the classifier was configured with WithComputeOOB, or nil
// otherwise.
func (c *Classifier) OOB() *forest.OOBStats { return c.ensemble.OOB }

// Predict returns one predicted class label per row of data.
func (c *Classifier) Predict(data []float32, threads int) []int64 {
	probs := c.Proba(data, threads)
	k := c.NumClasses()
	n := len(probs) / k

	out := make([]int64, n)
	for s := 0; s < n; s++ {
		out[s] = c.classes.Decode(argmax(probs[s*k : s*k+k]))
	}
	return out
}

// Proba returns the class-probability vector for each row of data,
// length NumSamples()*NumClasses(); each K-chunk sums to 1 within float
// error.
func (c *Classifier) Proba(data []float32, threads int) []float32 {
	view := dataset.NewMatrix(data, c.NumFeatures())
	result := c.ensemble.Predict(view, threads)

	out := make([]float32, len(result))
	for i, v := range result {
		out[i] = float32(v)
	}
	return out
}

// PredictOne predicts the class label of a single sample.
func (c *Classifier) PredictOne(sample []float32) int64 {
	return c.Predict(sample, 1)[0]
}

// NumFeatures returns F, the feature count every tree was trained on.
func (c *Classifier) NumFeatures() int { return c.ensemble.NumFeatures }

// NumClasses returns K, the number of distinct training labels.
func (c *Classifier) NumClasses() int { return c.classes.NumClasses() }

// Decode translates an internal dense class code back to its external
// label.
func (c *Classifier) Decode(code uint32) int64 { return c.classes.Decode(code) }

// GetDecodeTable returns the sorted-ascending table mapping class codes to
// external labels.
func (c *Classifier) GetDecodeTable() []int64 { return c.classes.DecodeTable() }

// classifierState is the gob-serializable projection of Classifier: the
// encoding/gob encoder requires exported fields, which classenc.Table
// deliberately does not expose (the encode/decode mapping is guarded
// behind the Table API), so persistence goes through this intermediate
// value rather than the live struct.
type classifierState struct {
	Ensemble    *forest.Ensemble
	DecodeTable []int64
	Cfg         Config
}

// Save serializes the classifier with encoding/gob. Round-tripping through
// Save/Load reproduces bit-identical predictions, which any self-describing
// binary encoder over the exported struct fields satisfies.
func (c *Classifier) Save(w io.Writer) error {
	state := classifierState{
		Ensemble:    c.ensemble,
		DecodeTable: c.classes.DecodeTable(),
		Cfg:         c.cfg,
	}
	return gob.NewEncoder(w).Encode(&state)
}

// Load deserializes a classifier previously written by Save.
func (c *Classifier) Load(r io.Reader) error {
	var state classifierState
	if err := gob.NewDecoder(r).Decode(&state); err != nil {
		return err
	}
	c.ensemble = state.Ensemble
	c.classes = classenc.FromDecodeTable(state.DecodeTable)
	c.cfg = state.Cfg
	return nil
}

// MarshalBinary/UnmarshalBinary let Classifier nest inside another gob
// payload without re-deriving its field layout.
func (c *Classifier) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *Classifier) UnmarshalBinary(data []byte) error {
	return c.Load(bytes.NewReader(data))
}

func argmax(v []float32) uint32 {
	best := 0
	bestVal := float32(math.Inf(-1))
	for i, x := range v {
		if x > bestVal {
			bestVal = x
			best = i
		}
	}
	return uint32(best)
}
