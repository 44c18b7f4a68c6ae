// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package workflow emits the GitHub Actions workflow that runs the engine
// on a schedule and commits its output.
package workflow

import (
	"bytes"
	"fmt"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/geo-engine/pkg/types"
)

// DefaultPath is where GitHub looks for the workflow.
const DefaultPath = ".github/workflows/geo-auto-update.yml"

// Options controls the generated workflow.
type Options struct {
	Name          string
	Cron          string
	GoVersion     string
	Command       string
	AuthorName    string
	AuthorEmail   string
	CommitMessage string
}

// DefaultOptions returns the twice-daily workflow, signed with the
// publish author from cfg.
func DefaultOptions(cfg types.PublishConfig) Options {
	return Options{
		Name:          "GEO Auto-Update",
		Cron:          "0 */12 * * *",
		GoVersion:     "stable",
		Command:       "go run ./cmd/geo-engine",
		AuthorName:    cfg.AuthorName,
		AuthorEmail:   cfg.AuthorEmail,
		CommitMessage: cfg.CommitMessage,
	}
}

// Workflow is the subset of the GitHub Actions schema the engine uses.
type Workflow struct {
	Name        string            `yaml:"name"`
	On          Triggers          `yaml:"on"`
	Permissions map[string]string `yaml:"permissions,omitempty"`
	Jobs        map[string]Job    `yaml:"jobs"`
}

// Triggers lists the workflow's events.
type Triggers struct {
	Schedule         []Cron            `yaml:"schedule,omitempty"`
	WorkflowDispatch map[string]string `yaml:"workflow_dispatch"`
}

// Cron is one schedule entry.
type Cron struct {
	Cron string `yaml:"cron"`
}

// Job is a single workflow job.
type Job struct {
	RunsOn string `yaml:"runs-on"`
	Steps  []Step `yaml:"steps"`
}

// Step is one job step.
type Step struct {
	Name string            `yaml:"name,omitempty"`
	Uses string            `yaml:"uses,omitempty"`
	With map[string]string `yaml:"with,omitempty"`
	Run  string            `yaml:"run,omitempty"`
}

// JobName is the key of the generated job.
const JobName = "update-content"

// Build assembles the workflow described by opts.
func Build(opts Options) (*Workflow, error) {
	if strings.TrimSpace(opts.Cron) == "" {
		return nil, fmt.Errorf("workflow cron expression is required")
	}
	if len(strings.Fields(opts.Cron)) != 5 {
		return nil, fmt.Errorf("invalid cron expression %q: want 5 fields", opts.Cron)
	}
	if strings.TrimSpace(opts.Command) == "" {
		return nil, fmt.Errorf("workflow command is required")
	}

	commit := strings.Join([]string{
		fmt.Sprintf("git config --global user.name '%s'", opts.AuthorName),
		fmt.Sprintf("git config --global user.email '%s'", opts.AuthorEmail),
		"git add .",
		fmt.Sprintf("git diff --staged --quiet || git commit -m %q", opts.CommitMessage),
		"git push",
	}, "\n") + "\n"

	return &Workflow{
		Name: opts.Name,
		On: Triggers{
			Schedule:         []Cron{{Cron: opts.Cron}},
			WorkflowDispatch: map[string]string{},
		},
		Permissions: map[string]string{"contents": "write"},
		Jobs: map[string]Job{
			JobName: {
				RunsOn: "ubuntu-latest",
				Steps: []Step{
					{Uses: "actions/checkout@v4"},
					{
						Name: "Setup Go",
						Uses: "actions/setup-go@v5",
						With: map[string]string{"go-version": opts.GoVersion},
					},
					{Name: "Run GEO Automation", Run: opts.Command + "\n"},
					{Name: "Commit and Push", Run: commit},
				},
			},
		},
	}, nil
}

// Generate renders the workflow described by opts as YAML.
func Generate(opts Options) ([]byte, error) {
	wf, err := Build(opts)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(wf); err != nil {
		return nil, fmt.Errorf("encoding workflow: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding workflow: %w", err)
	}
	return buf.Bytes(), nil
}
