package main

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/savthe/rafor/rf"
)

// fileConfig mirrors rf.Config's fields for YAML override files. Pointer
// fields distinguish "unset" (nil, fall through to the built-in default or
// an earlier layer) from an explicit zero value. Config layers resolve in
// order: built-in defaults, then the YAML file, then CLI flags.
type fileConfig struct {
	MaxDepth        *int    `yaml:"max_depth"`
	MinSamplesSplit *int    `yaml:"min_samples_split"`
	MinSamplesLeaf  *int    `yaml:"min_samples_leaf"`
	MaxFeatures     *string `yaml:"max_features"` // "sqrt", "log2", "all", or an integer
	Seed            *int64  `yaml:"seed"`
	NumTrees        *int    `yaml:"num_trees"`
	NumThreads      *int    `yaml:"num_threads"`
	ComputeOOB      *bool   `yaml:"compute_oob"`
}

// loadFileConfig parses path as YAML; an empty path returns a zero-value
// (all-nil) fileConfig so callers can merge unconditionally.
func loadFileConfig(path string) (*fileConfig, error) {
	if path == "" {
		return &fileConfig{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return &fc, nil
}

// options turns the file layer into rf.Options, applied before CLI flags
// so flags always win.
func (fc *fileConfig) options() ([]rf.Option, error) {
	var opts []rf.Option
	if fc.MaxDepth != nil {
		opts = append(opts, rf.WithMaxDepth(*fc.MaxDepth))
	}
	if fc.MinSamplesSplit != nil {
		opts = append(opts, rf.WithMinSamplesSplit(*fc.MinSamplesSplit))
	}
	if fc.MinSamplesLeaf != nil {
		opts = append(opts, rf.WithMinSamplesLeaf(*fc.MinSamplesLeaf))
	}
	if fc.MaxFeatures != nil {
		opt, err := parseMaxFeatures(*fc.MaxFeatures)
		if err != nil {
			return nil, err
		}
		opts = append(opts, opt)
	}
	if fc.Seed != nil {
		opts = append(opts, rf.WithSeed(*fc.Seed))
	}
	if fc.NumTrees != nil {
		opts = append(opts, rf.WithNumTrees(*fc.NumTrees))
	}
	if fc.NumThreads != nil {
		opts = append(opts, rf.WithNumThreads(*fc.NumThreads))
	}
	if fc.ComputeOOB != nil && *fc.ComputeOOB {
		opts = append(opts, rf.WithComputeOOB())
	}
	return opts, nil
}

// parseMaxFeatures accepts "sqrt", "log2", "all", or a bare integer string.
func parseMaxFeatures(s string) (rf.Option, error) {
	switch s {
	case "sqrt":
		return rf.WithMaxFeaturesSQRT(), nil
	case "log2":
		return rf.WithMaxFeaturesLog2(), nil
	case "all", "":
		return rf.WithMaxFeaturesAll(), nil
	default:
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("max_features: %q is not sqrt, log2, all, or an integer", s)
		}
		return rf.WithMaxFeaturesExact(n), nil
	}
}
