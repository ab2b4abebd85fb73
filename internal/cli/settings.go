package cli

import (
	"fmt"

	"github.com/kirthika85/appealgen/internal/model"
	"github.com/spf13/viper"
)

// registerDefaults seeds viper with every configuration key so env
// vars and config-file entries resolve even for keys the file never
// mentions. Values mirror model.DefaultConfig.
func registerDefaults() {
	cfg := model.DefaultConfig()

	viper.SetDefault("documents.benefits_date_layout", cfg.Documents.BenefitsDateLayout)
	viper.SetDefault("documents.denial_date_layout", cfg.Documents.DenialDateLayout)
	viper.SetDefault("documents.max_clinical_excerpt", cfg.Documents.MaxClinicalExcerpt)

	viper.SetDefault("eligibility.max_appeal_days", cfg.Eligibility.MaxAppealDays)
	viper.SetDefault("eligibility.exclusions", cfg.Eligibility.Exclusions)
	viper.SetDefault("eligibility.timeliness_basis", string(cfg.Eligibility.TimelinessBasis))
	viper.SetDefault("eligibility.unparsed_dates", string(cfg.Eligibility.UnparsedDates))

	viper.SetDefault("llm.provider", cfg.LLM.Provider)
	viper.SetDefault("llm.model", cfg.LLM.Model)
	viper.SetDefault("llm.base_url", cfg.LLM.BaseURL)
	viper.SetDefault("llm.timeout", cfg.LLM.Timeout)
	viper.SetDefault("llm.max_tokens", cfg.LLM.MaxTokens)
	viper.SetDefault("llm.temperature", cfg.LLM.Temperature)

	viper.SetDefault("concurrency.workers", cfg.Concurrency.Workers)
	viper.SetDefault("concurrency.requests_per_second", cfg.Concurrency.RequestsPerSecond)
	viper.SetDefault("concurrency.burst_size", cfg.Concurrency.BurstSize)
	viper.SetDefault("concurrency.provider_rates", cfg.Concurrency.ProviderRates)

	viper.SetDefault("cache.enabled", cfg.Cache.Enabled)
	viper.SetDefault("cache.ttl", cfg.Cache.TTL)

	viper.SetDefault("output.dir", cfg.Output.Dir)
	viper.SetDefault("output.csv", cfg.Output.CSV)
	viper.SetDefault("output.json", cfg.Output.JSON)
	viper.SetDefault("output.letters", cfg.Output.Letters)
}

// effectiveConfig resolves defaults, the config file, and APPEALGEN_*
// env vars into one configuration. CLI flags layer on top in
// buildConfig; commands without flags use this directly.
func effectiveConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("read configuration: %w", err)
	}
	return cfg, nil
}
