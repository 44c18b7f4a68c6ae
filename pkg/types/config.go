// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout bounds each HTTP request. A hung suggestion fetch degrades to
	// zero suggestions once it expires.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "geo-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// QuestionSource selects where the batch driver gets its questions.
type QuestionSource string

const (
	SourceSuggest QuestionSource = "suggest"
	SourceStatic  QuestionSource = "static"
	SourceFile    QuestionSource = "file"
)

// HarvestConfig holds settings for the question harvesting stage.
type HarvestConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Source selects the question source: suggest, static, or file.
	Source QuestionSource `json:"source" yaml:"source" mapstructure:"source"`

	// Endpoint is the autocomplete suggestion endpoint.
	Endpoint string `json:"endpoint" yaml:"endpoint" mapstructure:"endpoint"`

	// Product is the phrase combined with each trend term (e.g. "medical scribe cost").
	Product string `json:"product" yaml:"product" mapstructure:"product"`

	// Seeds lists the seed terms queried first.
	Seeds []string `json:"seeds" yaml:"seeds" mapstructure:"seeds"`

	// Trends lists the terms appended to Product for a second round of queries.
	Trends []string `json:"trends" yaml:"trends" mapstructure:"trends"`

	// Questions is the static question list used by the static source.
	Questions []string `json:"questions" yaml:"questions" mapstructure:"questions"`

	// QuestionFile is the YAML question file read by the file source.
	QuestionFile string `json:"question_file" yaml:"question_file" mapstructure:"question_file"`
}

// ContentConfig holds settings for answer and citation matching.
type ContentConfig struct {
	// TemplatesFile optionally overrides the built-in answer templates.
	TemplatesFile string `json:"templates_file" yaml:"templates_file" mapstructure:"templates_file"`

	// CatalogFile optionally overrides the built-in citation catalog.
	CatalogFile string `json:"catalog_file" yaml:"catalog_file" mapstructure:"catalog_file"`

	// MaxQuestions caps the number of questions processed in one run (default 10).
	MaxQuestions int `json:"max_questions" yaml:"max_questions" mapstructure:"max_questions"`
}

// RenderConfig holds settings for the page renderer.
type RenderConfig struct {
	// EscapeHTML escapes question, answer and source text before substitution.
	// Off by default: generated pages carry the text as-is.
	EscapeHTML bool `json:"escape_html" yaml:"escape_html" mapstructure:"escape_html"`
}

// PublishConfig holds settings for writing and committing generated output.
type PublishConfig struct {
	// OutputDir receives the generated pages, sitemap.xml and manifest.yaml.
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// BaseURL is the public site root used in sitemap entries.
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// ReportFile is the Markdown run report path, relative to OutputDir. Empty disables it.
	ReportFile string `json:"report_file" yaml:"report_file" mapstructure:"report_file"`

	// MetricsFile is a Prometheus textfile path. Empty disables the export.
	MetricsFile string `json:"metrics_file" yaml:"metrics_file" mapstructure:"metrics_file"`

	// Commit records the written files in the enclosing git repository.
	Commit bool `json:"commit" yaml:"commit" mapstructure:"commit"`

	// Push pushes the commit to Remote after committing.
	Push bool `json:"push" yaml:"push" mapstructure:"push"`

	// Remote is the git remote name used for pushing (default "origin").
	Remote string `json:"remote" yaml:"remote" mapstructure:"remote"`

	// CommitMessage is the commit subject for generated content.
	CommitMessage string `json:"commit_message" yaml:"commit_message" mapstructure:"commit_message"`

	// AuthorName and AuthorEmail sign automated commits.
	AuthorName  string `json:"author_name" yaml:"author_name" mapstructure:"author_name"`
	AuthorEmail string `json:"author_email" yaml:"author_email" mapstructure:"author_email"`
}

// Competitor is one product compared against the brand on a comparison page.
type Competitor struct {
	Name   string `json:"name" yaml:"name" mapstructure:"name"`
	Price  string `json:"price" yaml:"price" mapstructure:"price"`
	Launch string `json:"launch" yaml:"launch" mapstructure:"launch"`
}

// SiteConfig holds settings for the periodic homepage rewriter.
type SiteConfig struct {
	// IndexPath is the homepage rewritten in place.
	IndexPath string `json:"index_path" yaml:"index_path" mapstructure:"index_path"`

	// OutputDir receives the comparison pages.
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// PagesDir receives the specialty pages.
	PagesDir string `json:"pages_dir" yaml:"pages_dir" mapstructure:"pages_dir"`

	// Brand is the product name used in generated copy.
	Brand string `json:"brand" yaml:"brand" mapstructure:"brand"`

	// Competitors lists the products that get a comparison page.
	Competitors []Competitor `json:"competitors" yaml:"competitors" mapstructure:"competitors"`

	// Specialties lists the slugs that get a specialty page.
	Specialties []string `json:"specialties" yaml:"specialties" mapstructure:"specialties"`
}

// ScheduleConfig holds the intervals used by the schedule command.
type ScheduleConfig struct {
	// BatchInterval is the period between FAQ batch runs (default 24h).
	BatchInterval time.Duration `json:"batch_interval" yaml:"batch_interval" mapstructure:"batch_interval"`

	// RewriteInterval is the period between homepage rewrites. Zero disables them.
	RewriteInterval time.Duration `json:"rewrite_interval" yaml:"rewrite_interval" mapstructure:"rewrite_interval"`
}

// LoggingConfig selects the logger level and encoding.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is "console" or "json".
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// Config groups all stage configurations.
type Config struct {
	Harvest  HarvestConfig  `json:"harvest" yaml:"harvest" mapstructure:"harvest"`
	Content  ContentConfig  `json:"content" yaml:"content" mapstructure:"content"`
	Render   RenderConfig   `json:"render" yaml:"render" mapstructure:"render"`
	Publish  PublishConfig  `json:"publish" yaml:"publish" mapstructure:"publish"`
	Site     SiteConfig     `json:"site" yaml:"site" mapstructure:"site"`
	Schedule ScheduleConfig `json:"schedule" yaml:"schedule" mapstructure:"schedule"`
	Logging  LoggingConfig  `json:"logging" yaml:"logging" mapstructure:"logging"`
}

// DefaultMaxQuestions caps a single batch run.
const DefaultMaxQuestions = 10

// DefaultConfig returns the configuration the CLI runs with when no config
// file or environment overrides are present.
func DefaultConfig() Config {
	return Config{
		Harvest: HarvestConfig{
			HTTPConfig: HTTPConfig{
				Timeout:   10 * time.Second,
				UserAgent: "geo-engine/0.1",
			},
			Source:   SourceSuggest,
			Endpoint: "https://suggestqueries.google.com/complete/search",
			Product:  "medical scribe",
			Seeds: []string{
				"medical scribe",
				"AI clinical documentation",
				"HIPAA compliant scribe",
				"medical transcription software",
			},
			Trends: []string{"vs", "cost", "review", "alternative", "best"},
			Questions: []string{
				"What is an AI medical scribe?",
				"How much does a medical scribe cost?",
				"What are the benefits of an AI scribe?",
				"How accurate are AI medical scribes?",
				"Is an AI scribe HIPAA compliant?",
				"Does an AI scribe integrate with Epic?",
				"How long does AI scribe setup take?",
			},
			QuestionFile: "questions.yaml",
		},
		Content: ContentConfig{
			MaxQuestions: DefaultMaxQuestions,
		},
		Publish: PublishConfig{
			OutputDir:     "site",
			BaseURL:       "https://your-username.github.io/geo-demo",
			ReportFile:    "run-report.md",
			Remote:        "origin",
			CommitMessage: "Auto-update: Generated new FAQ content",
			AuthorName:    "GEO Bot",
			AuthorEmail:   "bot@users.noreply.github.com",
		},
		Site: SiteConfig{
			IndexPath: "index.html",
			OutputDir: ".",
			PagesDir:  "auto-generated",
			Brand:     "Freed AI",
			Competitors: []Competitor{
				{Name: "Nuance DAX Express", Price: "$250", Launch: "2024"},
				{Name: "Amazon HealthScribe", Price: "$199", Launch: "2024"},
				{Name: "Google Med-PaLM Scribe", Price: "TBD", Launch: "2025"},
			},
			Specialties: []string{"cardiology", "psychiatry", "pediatrics", "emergency-medicine"},
		},
		Schedule: ScheduleConfig{
			BatchInterval:   24 * time.Hour,
			RewriteInterval: 24 * time.Hour,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
