package judge

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Sample is one downloaded testcase: an input file and its expected output.
type Sample struct {
	Name   string
	Input  string
	Output string
}

// LoadSamples returns the samples stored in dir, sorted by name. Inputs use
// the .in extension and expected outputs .out; inputs without an output are
// ignored.
func LoadSamples(dir string) ([]Sample, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read samples directory: %w", err)
	}

	var samples []Sample
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".in") {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".in")
		output := filepath.Join(dir, name+".out")
		if _, err := os.Stat(output); err != nil {
			continue
		}
		samples = append(samples, Sample{
			Name:   name,
			Input:  filepath.Join(dir, entry.Name()),
			Output: output,
		})
	}

	// Sort by name for deterministic order
	sort.Slice(samples, func(i, j int) bool {
		return samples[i].Name < samples[j].Name
	})
	return samples, nil
}
