// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package harvest

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"
)

// QuestionFile is the on-disk form of a harvested question list. A harvest
// can be saved once and replayed by later runs without querying the
// suggestion endpoint.
type QuestionFile struct {
	Source      string    `yaml:"source"`
	HarvestedAt time.Time `yaml:"harvested_at"`
	Questions   []string  `yaml:"questions"`
}

// WriteQuestionFile saves questions to a YAML file.
func WriteQuestionFile(path, source string, questions []string, now time.Time) error {
	qf := QuestionFile{
		Source:      source,
		HarvestedAt: now.UTC(),
		Questions:   questions,
	}
	data, err := yaml.Marshal(&qf)
	if err != nil {
		return fmt.Errorf("marshaling question file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadQuestionFile loads a question file from disk.
func ReadQuestionFile(path string) (*QuestionFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading question file: %w", err)
	}
	var qf QuestionFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing question file: %w", err)
	}
	return &qf, nil
}

// FileSource serves the questions stored in a question file.
type FileSource struct {
	Path string
}

// Name returns the source identifier.
func (s FileSource) Name() string { return "file" }

// Questions reads the file and returns its cleaned question list.
func (s FileSource) Questions(context.Context) ([]string, error) {
	qf, err := ReadQuestionFile(s.Path)
	if err != nil {
		return nil, err
	}
	qs := Clean(qf.Questions)
	if len(qs) == 0 {
		return nil, fmt.Errorf("%s: %w", s.Path, ErrNoQuestions)
	}
	return qs, nil
}
