package rf

import (
	"bytes"
	"encoding/gob"
	"io"

	"github.com/savthe/rafor/dataset"
	"github.com/savthe/rafor/forest"
)

// Regressor is a random forest regressor over dense float32 features and
// real-valued float32 targets.
type Regressor struct {
	ensemble *forest.Ensemble
	cfg      Config
}

// NewRegressor returns a regressor configured with the package's default
// ensemble settings before applying opts.
func NewRegressor(opts ...Option) *Regressor {
	cfg := defaultEnsembleConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Regressor{cfg: cfg}
}

// Fit trains the forest. len(data) must be a multiple of len(targets);
// the feature count is inferred as len(data)/len(targets).
func (r *Regressor) Fit(data []float32, targets []float32) {
	if len(targets) == 0 {
		panic("rf: Regressor.Fit requires at least one target")
	}
	if len(data)%len(targets) != 0 {
		panic("rf: Regressor.Fit requires len(data) % len(targets) == 0")
	}
	numFeatures := len(data) / len(targets)

	view := dataset.NewMatrix(data, numFeatures)
	ecfg := forest.EnsembleConfig{
		Tree:       r.cfg.toTreeConfig(treeMetricMSE),
		NumTrees:   r.cfg.NumTrees,
		NumThreads: r.cfg.NumThreads,
		Seed:       r.cfg.Seed,
		ComputeOOB: r.cfg.ComputeOOB,
	}
	r.ensemble = forest.Train(view, targets, ecfg)
}

// OOB returns the out-of-bag MSE gathered during Fit when the regressor
// was configured with WithComputeOOB, or nil otherwise.
func (r *Regressor) OOB() *forest.OOBStats { return r.ensemble.OOB }

// Predict returns one predicted value per row of data.
func (r *Regressor) Predict(data []float32, threads int) []float32 {
	view := dataset.NewMatrix(data, r.NumFeatures())
	result := r.ensemble.Predict(view, threads)

	out := make([]float32, len(result))
	for i, v := range result {
		out[i] = float32(v)
	}
	return out
}

// PredictOne predicts the value of a single sample.
func (r *Regressor) PredictOne(sample []float32) float32 {
	return r.Predict(sample, 1)[0]
}

// NumFeatures returns F, the feature count every tree was trained on.
func (r *Regressor) NumFeatures() int { return r.ensemble.NumFeatures }

func (r *Regressor) Save(w io.Writer) error {
	state := struct {
		Ensemble *forest.Ensemble
		Cfg      Config
	}{r.ensemble, r.cfg}
	return gob.NewEncoder(w).Encode(&state)
}

func (r *Regressor) Load(rd io.Reader) error {
	var state struct {
		Ensemble *forest.Ensemble
		Cfg      Config
	}
	if err := gob.NewDecoder(rd).Decode(&state); err != nil {
		return err
	}
	r.ensemble = state.Ensemble
	r.cfg = state.Cfg
	return nil
}

func (r *Regressor) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *Regressor) UnmarshalBinary(data []byte) error {
	return r.Load(bytes.NewReader(data))
}
