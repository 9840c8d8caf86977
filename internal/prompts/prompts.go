// Package prompts implements the daily drawing prompt rotation.
package prompts

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed prompts.yml
var defaultAsset []byte

type promptFile struct {
	Prompts []string `yaml:"prompts"`
}

// Rotator maps calendar dates onto a fixed ordered prompt list. It is pure:
// the same date and list always produce the same prompt, and dates one full
// list-length apart wrap to the same entry.
type Rotator struct {
	list []string
}

// New returns a Rotator over the given prompt list.
func New(list []string) (*Rotator, error) {
	if len(list) == 0 {
		return nil, fmt.Errorf("prompt list must not be empty")
	}
	return &Rotator{list: list}, nil
}

// Load builds a Rotator from the YAML asset at path, or from the embedded
// default list when path is empty.
func Load(path string) (*Rotator, error) {
	data := defaultAsset
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read prompts file %s: %w", path, err)
		}
		data = b
	}

	var pf promptFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("failed to parse prompts asset: %w", err)
	}
	return New(pf.Prompts)
}

// ForDate returns the prompt for the given date: the 1-based day of the year
// modulo the list length selects the entry.
func (r *Rotator) ForDate(date time.Time) string {
	return r.list[date.YearDay()%len(r.list)]
}

// Today returns the prompt for the current date.
func (r *Rotator) Today() string {
	return r.ForDate(time.Now())
}

// Len returns the number of prompts in the list.
func (r *Rotator) Len() int {
	return len(r.list)
}
