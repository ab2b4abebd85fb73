package model

import "time"

// Config is the complete runtime configuration.
// Hierarchy: CLI flags > APPEALGEN_* env vars > config file > defaults.
type Config struct {
	Documents   DocumentsConfig   `yaml:"documents" mapstructure:"documents"`
	Eligibility EligibilityConfig `yaml:"eligibility" mapstructure:"eligibility"`
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// DocumentsConfig controls document parsing. Date layouts use Go
// reference-time syntax and must match what each document actually
// contains; the extractor never guesses a format.
type DocumentsConfig struct {
	BenefitsDateLayout string `yaml:"benefits_date_layout" mapstructure:"benefits_date_layout"` // e.g. "2006-01-02" or "01/02/2006"
	DenialDateLayout   string `yaml:"denial_date_layout" mapstructure:"denial_date_layout"`
	MaxClinicalExcerpt int    `yaml:"max_clinical_excerpt" mapstructure:"max_clinical_excerpt"` // Chars of clinical text carried into prompts
}

// TimelinessBasis selects which date a claim's age is measured against
type TimelinessBasis string

const (
	BasisProcessingDate TimelinessBasis = "processing-date" // Claim date vs the run's reference date
	BasisDenialDate     TimelinessBasis = "denial-date"     // Claim date vs the matched denial's date
)

// UnparsedDatePolicy decides claims whose dates failed to parse
type UnparsedDatePolicy string

const (
	UnparsedFailOpen   UnparsedDatePolicy = "fail-open"   // Treat as not late (original behavior)
	UnparsedFailClosed UnparsedDatePolicy = "fail-closed" // Reject as late
)

// EligibilityConfig holds the appeal eligibility policy
type EligibilityConfig struct {
	MaxAppealDays   int                `yaml:"max_appeal_days" mapstructure:"max_appeal_days"`
	Exclusions      []string           `yaml:"exclusions" mapstructure:"exclusions"` // Case-insensitive service phrases
	TimelinessBasis TimelinessBasis    `yaml:"timeliness_basis" mapstructure:"timeliness_basis"`
	UnparsedDates   UnparsedDatePolicy `yaml:"unparsed_dates" mapstructure:"unparsed_dates"`
}

// LLMConfig holds narrative generator configuration
type LLMConfig struct {
	Provider    string  `yaml:"provider" mapstructure:"provider"` // "openai", "ollama"
	Model       string  `yaml:"model" mapstructure:"model"`
	APIKey      string  `yaml:"-" mapstructure:"-"` // Never persisted; env var only
	BaseURL     string  `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout     int     `yaml:"timeout" mapstructure:"timeout"` // Seconds per generation call
	MaxTokens   int     `yaml:"max_tokens" mapstructure:"max_tokens"`
	Temperature float32 `yaml:"temperature" mapstructure:"temperature"`
}

// ConcurrencyConfig bounds claim fan-out and generator call rate.
// ProviderRates overrides the default request rate for a named
// provider bucket, e.g. a local ollama can run unthrottled while a
// hosted API stays limited.
type ConcurrencyConfig struct {
	Workers           int                `yaml:"workers" mapstructure:"workers"`
	RequestsPerSecond float64            `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int                `yaml:"burst_size" mapstructure:"burst_size"`
	ProviderRates     map[string]float64 `yaml:"provider_rates,omitempty" mapstructure:"provider_rates"`
}

// CacheConfig controls in-process letter memoization
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// OutputConfig controls rendered artifacts
type OutputConfig struct {
	Dir     string `yaml:"dir" mapstructure:"dir"`
	CSV     bool   `yaml:"csv" mapstructure:"csv"`
	JSON    bool   `yaml:"json" mapstructure:"json"`
	Letters bool   `yaml:"letters" mapstructure:"letters"`
	Verbose bool   `yaml:"-" mapstructure:"-"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Documents: DocumentsConfig{
			BenefitsDateLayout: "2006-01-02",
			DenialDateLayout:   "2006-01-02",
			MaxClinicalExcerpt: 4000,
		},
		Eligibility: EligibilityConfig{
			MaxAppealDays:   30,
			Exclusions:      []string{},
			TimelinessBasis: BasisProcessingDate,
			UnparsedDates:   UnparsedFailOpen,
		},
		LLM: LLMConfig{
			Provider:    "openai",
			Model:       "",
			Timeout:     60,
			MaxTokens:   1200,
			Temperature: 0.7,
		},
		Concurrency: ConcurrencyConfig{
			Workers:           4,
			RequestsPerSecond: 1,
			BurstSize:         2,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     1 * time.Hour,
		},
		Output: OutputConfig{
			Dir:     "./appeal-results",
			CSV:     true,
			JSON:    true,
			Letters: true,
		},
	}
}
