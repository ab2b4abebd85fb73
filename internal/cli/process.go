package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/kirthika85/appealgen/internal/llm"
	"github.com/kirthika85/appealgen/internal/model"
	"github.com/kirthika85/appealgen/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	benefitsPath string
	clinicalPath string
	denialPath   string

	maxAppealDays   int
	exclusions      []string
	referenceDate   string
	timelinessBasis string
	unparsedDates   string
	benefitsLayout  string
	denialLayout    string

	llmProvider string
	llmModel    string
	noLLM       bool

	workers        int
	rps            float64
	noCache        bool
	processTimeout time.Duration

	outputDir string
	noCSV     bool
	noJSON    bool
	noLetters bool
)

// processCmd represents the process command
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Process one batch of documents into appeal letters",
	Long: `Process reads three documents, reconciles the claims across them,
and drafts an appeal letter for every claim that qualifies:
- Extract claim rows from the explanation of benefits
- Extract denial rows from the denial notice
- Read patient details from the clinical record
- Match claims to denials by claim number
- Reject unmatched, late, and uncovered claims with explicit reasons
- Generate one appeal letter per remaining claim

Example:
  appealgen process --benefits eob.txt --clinical record.txt --denial notice.txt
  appealgen process --benefits eob.txt --clinical record.txt --denial notice.txt \
    --max-appeal-days 60 --exclude cosmetic --exclude experimental
  appealgen process --benefits eob.txt --clinical record.txt --denial notice.txt \
    --no-llm --output-dir ./results`,
	RunE: runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)

	// Document flags
	processCmd.Flags().StringVar(&benefitsPath, "benefits", "", "explanation of benefits file (required)")
	processCmd.Flags().StringVar(&clinicalPath, "clinical", "", "clinical record file (required)")
	processCmd.Flags().StringVar(&denialPath, "denial", "", "denial notice file (required)")
	_ = processCmd.MarkFlagRequired("benefits")
	_ = processCmd.MarkFlagRequired("clinical")
	_ = processCmd.MarkFlagRequired("denial")

	// Eligibility flags
	processCmd.Flags().IntVar(&maxAppealDays, "max-appeal-days", 30, "appeal window in days")
	processCmd.Flags().StringArrayVar(&exclusions, "exclude", nil, "service phrase excluded from coverage (repeatable)")
	processCmd.Flags().StringVar(&referenceDate, "reference-date", "", "date claims are measured against, YYYY-MM-DD (default: today)")
	processCmd.Flags().StringVar(&timelinessBasis, "timeliness-basis", string(model.BasisProcessingDate), "date the appeal window is measured against (processing-date, denial-date)")
	processCmd.Flags().StringVar(&unparsedDates, "unparsed-dates", string(model.UnparsedFailOpen), "how to treat unreadable claim dates (fail-open, fail-closed)")
	processCmd.Flags().StringVar(&benefitsLayout, "benefits-date-format", "2006-01-02", "date format in the benefits statement (Go reference time)")
	processCmd.Flags().StringVar(&denialLayout, "denial-date-format", "2006-01-02", "date format in the denial notice (Go reference time)")

	// LLM flags
	processCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	processCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name (provider default when empty)")
	processCmd.Flags().BoolVar(&noLLM, "no-llm", false, "skip letter generation; decisions only")

	// Concurrency flags
	processCmd.Flags().IntVar(&workers, "concurrency", 4, "concurrent generation workers")
	processCmd.Flags().Float64Var(&rps, "rps", 1, "generator requests per second (0 = unlimited)")
	processCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable letter caching")
	processCmd.Flags().DurationVar(&processTimeout, "timeout", 10*time.Minute, "total timeout for the run")

	// Output flags
	processCmd.Flags().StringVar(&outputDir, "output-dir", "./appeal-results", "output directory for results and letters")
	processCmd.Flags().BoolVar(&noCSV, "no-csv", false, "skip the results CSV")
	processCmd.Flags().BoolVar(&noJSON, "no-json", false, "skip the JSON report")
	processCmd.Flags().BoolVar(&noLetters, "no-letters", false, "skip per-claim letter files")
}

func runProcess(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), processTimeout)
	defer cancel()

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	refDate, err := resolveReferenceDate()
	if err != nil {
		return err
	}

	generator, err := buildGenerator(cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Appealgen Claim Processing\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Benefits:        %s\n", benefitsPath)
	fmt.Fprintf(os.Stderr, "  Clinical:        %s\n", clinicalPath)
	fmt.Fprintf(os.Stderr, "  Denial:          %s\n", denialPath)
	fmt.Fprintf(os.Stderr, "  Appeal window:   %d days\n", cfg.Eligibility.MaxAppealDays)
	fmt.Fprintf(os.Stderr, "  Reference date:  %s\n", refDate.Format("2006-01-02"))
	if generator != nil {
		fmt.Fprintf(os.Stderr, "  LLM:             %s/%s\n", cfg.LLM.Provider, displayModel(cfg))
	} else {
		fmt.Fprintf(os.Stderr, "  LLM:             disabled\n")
	}
	fmt.Fprintf(os.Stderr, "\n")

	// Load documents
	docs, err := pipeline.LoadDocuments(ctx, pipeline.NewTextExtractor(), benefitsPath, clinicalPath, denialPath)
	if err != nil {
		return fmt.Errorf("load documents: %w", err)
	}

	// Process
	p := pipeline.New(cfg, generator, refDate)
	report, err := p.Run(ctx, docs)
	if err != nil {
		return fmt.Errorf("process documents: %w", err)
	}

	// Render outputs
	renderer := pipeline.NewRenderer(cfg.Output.Dir)
	if cfg.Output.CSV {
		if err := renderer.RenderCSV(report, "results.csv"); err != nil {
			return fmt.Errorf("render CSV: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote CSV: %s/results.csv\n", cfg.Output.Dir)
		}
	}
	if cfg.Output.JSON {
		if err := renderer.RenderJSON(report, "report.json"); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s/report.json\n", cfg.Output.Dir)
		}
	}
	if cfg.Output.Letters {
		paths, err := renderer.RenderLetters(report)
		if err != nil {
			return fmt.Errorf("render letters: %w", err)
		}
		if verbose {
			for _, path := range paths {
				fmt.Fprintf(os.Stderr, "✓ Wrote letter: %s\n", path)
			}
		}
	}

	renderer.RenderSummary(report)
	return nil
}

// buildConfig resolves the effective configuration for one run:
// flags > APPEALGEN_* env > config file > defaults. A flag only
// overrides the merged value when it was set on the command line,
// so a config-file setting survives unless explicitly countermanded.
func buildConfig(cmd *cobra.Command) (*model.Config, error) {
	cfg, err := effectiveConfig()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("benefits-date-format") {
		cfg.Documents.BenefitsDateLayout = benefitsLayout
	}
	if flags.Changed("denial-date-format") {
		cfg.Documents.DenialDateLayout = denialLayout
	}
	if flags.Changed("max-appeal-days") {
		cfg.Eligibility.MaxAppealDays = maxAppealDays
	}
	if flags.Changed("exclude") {
		cfg.Eligibility.Exclusions = exclusions
	}
	if flags.Changed("timeliness-basis") {
		cfg.Eligibility.TimelinessBasis = model.TimelinessBasis(timelinessBasis)
	}
	if flags.Changed("unparsed-dates") {
		cfg.Eligibility.UnparsedDates = model.UnparsedDatePolicy(unparsedDates)
	}
	if flags.Changed("llm-provider") {
		cfg.LLM.Provider = llmProvider
	}
	if flags.Changed("llm-model") {
		cfg.LLM.Model = llmModel
	}
	if flags.Changed("concurrency") {
		cfg.Concurrency.Workers = workers
	}
	if flags.Changed("rps") {
		cfg.Concurrency.RequestsPerSecond = rps
	}
	if flags.Changed("no-cache") {
		cfg.Cache.Enabled = !noCache
	}
	if flags.Changed("output-dir") {
		cfg.Output.Dir = outputDir
	}
	if flags.Changed("no-csv") {
		cfg.Output.CSV = !noCSV
	}
	if flags.Changed("no-json") {
		cfg.Output.JSON = !noJSON
	}
	if flags.Changed("no-letters") {
		cfg.Output.Letters = !noLetters
	}
	cfg.Output.Verbose = verbose

	if noLLM {
		cfg.LLM.Provider = ""
	}

	// Validate merged values whatever their source.
	switch cfg.Eligibility.TimelinessBasis {
	case model.BasisProcessingDate, model.BasisDenialDate:
	default:
		return nil, fmt.Errorf("unknown timeliness basis: %s (supported: %s, %s)",
			cfg.Eligibility.TimelinessBasis, model.BasisProcessingDate, model.BasisDenialDate)
	}
	switch cfg.Eligibility.UnparsedDates {
	case model.UnparsedFailOpen, model.UnparsedFailClosed:
	default:
		return nil, fmt.Errorf("unknown unparsed-date policy: %s (supported: %s, %s)",
			cfg.Eligibility.UnparsedDates, model.UnparsedFailOpen, model.UnparsedFailClosed)
	}

	return cfg, nil
}

// resolveReferenceDate parses the --reference-date flag, defaulting
// to today at midnight UTC so same-day runs decide identically.
func resolveReferenceDate() (time.Time, error) {
	if referenceDate == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse("2006-01-02", referenceDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid reference date %q (want YYYY-MM-DD): %w", referenceDate, err)
	}
	return t, nil
}

// buildGenerator resolves credentials and constructs the provider.
// Missing credentials fail here, before any document is read.
func buildGenerator(cfg *model.Config) (llm.Provider, error) {
	if cfg.LLM.Provider == "" {
		return nil, nil
	}

	switch cfg.LLM.Provider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set (use --no-llm to skip letter generation)")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}

	generator, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return nil, fmt.Errorf("initialize LLM provider: %w", err)
	}
	return generator, nil
}

func displayModel(cfg *model.Config) string {
	if cfg.LLM.Model != "" {
		return cfg.LLM.Model
	}
	return "default"
}
