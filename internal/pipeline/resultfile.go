// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/research-finder/pkg/types"
)

// ResultFile is the on-disk representation of one query run. The researcher
// can save a run to a file and revisit it without re-querying the store or
// the citation providers.
type ResultFile struct {
	Query      string                 `yaml:"query"`
	Predicates types.QueryPredicates  `yaml:"predicates"`
	SQL        string                 `yaml:"sql"`
	Results    []types.AnnotatedPaper `yaml:"results"`
	Stats      types.Statistics       `yaml:"statistics"`
	Timestamp  time.Time              `yaml:"timestamp"`
}

// WriteResultFile saves the output of one run to a YAML file.
func WriteResultFile(path string, out Output) error {
	rf := ResultFile{
		Query:      out.Query,
		Predicates: out.Predicates,
		SQL:        out.SQL,
		Results:    out.Results.Papers,
		Stats:      out.Results.Stats,
		Timestamp:  time.Now(),
	}

	data, err := yaml.Marshal(&rf)
	if err != nil {
		return fmt.Errorf("marshaling result file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadResultFile loads a previously saved run from disk.
func ReadResultFile(path string) (*ResultFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading result file: %w", err)
	}
	var rf ResultFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing result file: %w", err)
	}
	return &rf, nil
}
