// Package starter provides the embedded sample inputs that ship with toonify.
package starter

import (
	"embed"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/HartBrook/toonify/internal/convert"
)

//go:embed samples/*
var samplesFS embed.FS

// Sample is one embedded input. It is named after the format it demonstrates.
type Sample struct {
	Name    string
	File    string
	Format  convert.Format
	Content string
}

// Samples returns every embedded sample, sorted by name.
func Samples() []Sample {
	entries, err := samplesFS.ReadDir("samples")
	if err != nil {
		return nil
	}

	var samples []Sample
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		format := convert.FormatForPath(entry.Name())
		if !format.IsConcrete() {
			continue
		}
		content, err := samplesFS.ReadFile(path.Join("samples", entry.Name()))
		if err != nil {
			continue
		}
		samples = append(samples, Sample{
			Name:    string(format),
			File:    entry.Name(),
			Format:  format,
			Content: string(content),
		})
	}

	sort.Slice(samples, func(i, j int) bool { return samples[i].Name < samples[j].Name })
	return samples
}

// SampleNames returns the list of available sample names.
func SampleNames() []string {
	var names []string
	for _, s := range Samples() {
		names = append(names, s.Name)
	}
	return names
}

// GetSample returns a sample by name (json, yaml, html, react or text).
func GetSample(name string) (Sample, error) {
	for _, s := range Samples() {
		if s.Name == name {
			return s, nil
		}
	}
	return Sample{}, fmt.Errorf("no sample named %q", name)
}

// BootstrapSamples copies the sample files to the target directory.
// It skips files that already exist. Returns the number of samples copied.
func BootstrapSamples(targetDir string) (int, error) {
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create samples directory: %w", err)
	}

	copied := 0
	for _, s := range Samples() {
		targetPath := filepath.Join(targetDir, s.File)

		// Skip if file already exists
		if _, err := os.Stat(targetPath); err == nil {
			continue
		}

		if err := os.WriteFile(targetPath, []byte(s.Content), 0644); err != nil {
			return copied, fmt.Errorf("failed to write %s: %w", s.File, err)
		}

		copied++
	}

	return copied, nil
}
