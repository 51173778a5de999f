package urbcsp

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is a batch of generator runs read from YAML:
//
//	runs:
//	  - variables: 100
//	    domainSize: 10
//	    constraints: 10
//	    noGoods: 10
//	    seed: 100
//	    instances: 99
//	    constraintDefs: 5   # optional, defaults to constraints
//	    output: out.json    # optional, defaults to stdout
type Config struct {
	Runs []Run `yaml:"runs"`
}

// Run is one entry of a Config.
type Run struct {
	Variables      int    `yaml:"variables"`
	DomainSize     int    `yaml:"domainSize"`
	Constraints    int    `yaml:"constraints"`
	NoGoods        int    `yaml:"noGoods"`
	Seed           int32  `yaml:"seed"`
	Instances      int    `yaml:"instances"`
	ConstraintDefs int    `yaml:"constraintDefs,omitempty"`
	Output         string `yaml:"output,omitempty"`
}

// Params converts r to generator parameters.
func (r Run) Params() Params {
	return Params{
		N: r.Variables,
		D: r.DomainSize,
		C: r.Constraints,
		T: r.NoGoods,
		S: r.Seed,
		I: r.Instances,
		K: r.ConstraintDefs,
	}
}

// LoadConfig reads and parses the YAML file at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read the config file: %w", methodLoadConfig, err)
	}
	return ParseConfig(data)
}

// ParseConfig parses a YAML config. Unknown keys are rejected and every run
// is validated.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: %w", methodParseConfig, err)
	}
	for i, r := range cfg.Runs {
		if err := r.Params().Validate(); err != nil {
			return nil, fmt.Errorf("%s: runs[%d]: %w", methodParseConfig, i, err)
		}
	}
	return &cfg, nil
}
