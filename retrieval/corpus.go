package retrieval

import (
	"encoding/json"
	"fmt"
	"os"
)

// StatuteSection is one entry of the statute corpus. Sections are immutable
// once indexed; the only way to change them is a full index rebuild.
type StatuteSection struct {
	ID            string    `json:"id"`
	SectionNumber string    `json:"section_number"`
	Title         string    `json:"title"`
	BodyText      string    `json:"body_text"`
	Embedding     []float32 `json:"-"`
}

// LoadCorpus reads a statute corpus from a JSON file containing an ordered
// array of section records. It validates that every record has a unique,
// non-empty ID and non-empty body text.
func LoadCorpus(path string) ([]StatuteSection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus file: %w", err)
	}

	var sections []StatuteSection
	if err := json.Unmarshal(data, &sections); err != nil {
		return nil, fmt.Errorf("failed to parse corpus file %s: %w", path, err)
	}

	seen := make(map[string]bool, len(sections))
	for i, s := range sections {
		if s.ID == "" {
			return nil, fmt.Errorf("corpus record %d has empty id", i)
		}
		if seen[s.ID] {
			return nil, fmt.Errorf("corpus contains duplicate id %q", s.ID)
		}
		seen[s.ID] = true
		if s.BodyText == "" {
			return nil, fmt.Errorf("corpus record %q has empty body text", s.ID)
		}
	}

	return sections, nil
}
