// Package rf implements the public façade types of the training engine:
// Classifier/Regressor (random forest) and DecisionTreeClassifier/
// DecisionTreeRegressor (single tree), their functional-options
// configuration, and gob-based persistence. A single flat Config struct
// backs both tree and forest façades; per-field setter interfaces split
// across separate tree/forest configers would buy nothing here since one
// struct already covers both.
package rf

import "github.com/savthe/rafor/tree"

const (
	treeMetricGini = tree.Gini
	treeMetricMSE  = tree.MSE
)

// MaxFeatures selects how many features are considered per split.
type MaxFeatures = tree.MaxFeaturesMode

const (
	MaxFeaturesSQRT = tree.SQRTFeatures
	MaxFeaturesLog2 = tree.Log2Features
	MaxFeaturesAll  = tree.AllFeatures
)

// Config holds every hyperparameter a tree or forest façade accepts.
type Config struct {
	MaxDepth        int // unlimited if < 0
	MinSamplesSplit int
	MinSamplesLeaf  int
	MaxFeaturesMode MaxFeatures
	MaxFeaturesK    int // used only when MaxFeaturesMode is an exact count
	Seed            int64
	NumTrees        int  // ensembles only
	NumThreads      int  // ensembles only
	ComputeOOB      bool // ensembles only; see WithComputeOOB
}

// Option configures a Config; NewClassifier/NewRegressor/NewDecisionTree*
// apply a Config's defaults first and then each Option in order.
type Option func(*Config)

// WithMaxDepth limits tree depth; the root is depth 0.
func WithMaxDepth(n int) Option { return func(c *Config) { c.MaxDepth = n } }

// WithMinSamplesSplit sets the minimum node size eligible for a split.
func WithMinSamplesSplit(n int) Option { return func(c *Config) { c.MinSamplesSplit = n } }

// WithMinSamplesLeaf sets the minimum number of samples per leaf; in an
// ensemble each in-bag sample counts once, whatever its bootstrap weight.
func WithMinSamplesLeaf(n int) Option { return func(c *Config) { c.MinSamplesLeaf = n } }

// WithMaxFeaturesSQRT considers ceil(sqrt(F)) features per split.
func WithMaxFeaturesSQRT() Option {
	return func(c *Config) { c.MaxFeaturesMode = tree.SQRTFeatures }
}

// WithMaxFeaturesLog2 considers ceil(log2(F)) features per split.
func WithMaxFeaturesLog2() Option {
	return func(c *Config) { c.MaxFeaturesMode = tree.Log2Features }
}

// WithMaxFeaturesExact considers exactly n features per split, clamped to F.
func WithMaxFeaturesExact(n int) Option {
	return func(c *Config) {
		c.MaxFeaturesMode = tree.ExactFeatures
		c.MaxFeaturesK = n
	}
}

// WithMaxFeaturesAll considers every feature per split.
func WithMaxFeaturesAll() Option {
	return func(c *Config) { c.MaxFeaturesMode = tree.AllFeatures }
}

// WithSeed sets the master seed driving bootstrap draws and feature
// subsampling.
func WithSeed(seed int64) Option { return func(c *Config) { c.Seed = seed } }

// WithNumTrees sets the ensemble size; ignored by single-tree façades.
func WithNumTrees(n int) Option { return func(c *Config) { c.NumTrees = n } }

// WithNumThreads sets the worker-pool size for fit/predict; ignored by
// single-tree façades. Must be >= 1.
func WithNumThreads(n int) Option { return func(c *Config) { c.NumThreads = n } }

// WithComputeOOB requests out-of-bag accuracy/error estimation during Fit;
// ignored by single-tree façades, which have no held-out samples to score
// against.
func WithComputeOOB() Option { return func(c *Config) { c.ComputeOOB = true } }

func (c Config) toTreeConfig(metric tree.Metric) tree.Config {
	return tree.Config{
		MaxDepth:        c.MaxDepth,
		MinSamplesSplit: c.MinSamplesSplit,
		MinSamplesLeaf:  c.MinSamplesLeaf,
		MaxFeaturesMode: c.MaxFeaturesMode,
		MaxFeaturesK:    c.MaxFeaturesK,
		Metric:          metric,
	}
}

func defaultSingleTreeConfig() Config {
	return Config{
		MaxDepth:        -1,
		MinSamplesSplit: 2,
		MinSamplesLeaf:  1,
		MaxFeaturesMode: tree.AllFeatures,
		Seed:            42,
	}
}

func defaultEnsembleConfig() Config {
	c := defaultSingleTreeConfig()
	c.MaxFeaturesMode = tree.SQRTFeatures
	c.NumTrees = 100
	c.NumThreads = 1
	return c
}
