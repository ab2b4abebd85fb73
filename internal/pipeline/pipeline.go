// Package pipeline orchestrates one processing run: normalize the
// three documents, extract claim and denial records, join them,
// decide eligibility, and drive letter generation for eligible
// claims. Every stage before generation is a pure computation over
// in-memory text; only the generator call touches the network.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/kirthika85/appealgen/internal/cache"
	"github.com/kirthika85/appealgen/internal/eligibility"
	"github.com/kirthika85/appealgen/internal/extract"
	"github.com/kirthika85/appealgen/internal/llm"
	"github.com/kirthika85/appealgen/internal/match"
	"github.com/kirthika85/appealgen/internal/model"
	"github.com/kirthika85/appealgen/internal/normalize"
	"github.com/kirthika85/appealgen/internal/worker"
)

// letterDateFormat is the human-readable date written into letters.
const letterDateFormat = "Monday, January 2, 2006"

// Pipeline runs the extraction-matching-eligibility-generation chain
type Pipeline struct {
	extractor   *extract.Extractor
	matcher     *match.Matcher
	generator   llm.Provider // Nil when generation is disabled
	limiter     *worker.Limiter
	letterCache cache.Cache // Nil when caching is disabled
	config      *model.Config
	refDate     time.Time
}

// New creates a pipeline from configuration. The reference date is
// injected so eligibility decisions are repeatable; pass time.Now()
// rounded to a day for live runs. A nil generator disables letter
// generation while keeping extraction and eligibility intact.
func New(cfg *model.Config, generator llm.Provider, refDate time.Time) *Pipeline {
	var letterCache cache.Cache
	if cfg.Cache.Enabled {
		letterCache = cache.NewMemoryCache(cfg.Cache.TTL, 2*cfg.Cache.TTL)
	}

	limiter := worker.NewLimiter(cfg.Concurrency.RequestsPerSecond, cfg.Concurrency.BurstSize)
	for name, rps := range cfg.Concurrency.ProviderRates {
		limiter.SetBucketRate(name, rps, cfg.Concurrency.BurstSize)
	}

	return &Pipeline{
		extractor:   extract.New(),
		matcher:     match.New(),
		generator:   generator,
		limiter:     limiter,
		letterCache: letterCache,
		config:      cfg,
		refDate:     refDate,
	}
}

// Run processes one batch of documents into a run report. Per-claim
// failures are recorded in that claim's outcome row; Run itself only
// fails on batch-level problems. Every distinct claim number gets
// exactly one outcome row, and an empty claim list yields an empty —
// but explicit — report, never silence.
func (p *Pipeline) Run(ctx context.Context, docs RawDocuments) (*model.RunReport, error) {
	// 1. Normalize raw document text
	benefits := normalize.Normalize(docs.Benefits)
	clinical := normalize.Normalize(docs.Clinical)
	denial := normalize.Normalize(docs.Denial)

	// 2. Extract structured records
	claims := p.extractor.ClaimRecords(benefits, p.config.Documents.BenefitsDateLayout)
	denials := p.extractor.DenialRecords(denial, p.config.Documents.DenialDateLayout)
	profile := p.extractor.ExtractPatient(clinical)

	p.verbosef("✓ Extracted %d claim records, %d denial records\n", len(claims), len(denials))

	// 3. Join claims against denials
	joined := p.matcher.Match(claims, denials)

	// 4. Decide eligibility per claim
	evaluator := eligibility.New(eligibility.Policy{
		ReferenceDate: p.refDate,
		MaxAppealDays: p.config.Eligibility.MaxAppealDays,
		Exclusions:    p.config.Eligibility.Exclusions,
		Basis:         p.config.Eligibility.TimelinessBasis,
		UnparsedDates: p.config.Eligibility.UnparsedDates,
	})

	verdicts := make([]model.Verdict, len(joined))
	for i, j := range joined {
		verdicts[i] = evaluator.Evaluate(j)
	}

	// 5. Generate letters for eligible claims
	outcomes := make([]model.AppealOutcome, len(joined))
	letters := make(map[string]string)

	excerpt := clinicalExcerpt(clinical, p.config.Documents.MaxClinicalExcerpt)
	jobs := p.buildOutcomes(joined, verdicts, profile, excerpt, outcomes, letters)

	if len(jobs) > 0 {
		p.verbosef("⚙️  Generating %d appeal letters...\n", len(jobs))
		p.runGeneration(ctx, jobs, outcomes, letters)
	}

	// 6. Aggregate
	report := &model.RunReport{
		GeneratedAt: time.Now().UTC(),
		Patient:     profile,
		Outcomes:    outcomes,
		Letters:     letters,
		ClaimsFound: len(joined),
	}
	for _, o := range outcomes {
		if o.Status == model.StatusSent {
			report.SentCount++
		}
	}

	return report, nil
}

// buildOutcomes fills the outcome slots for every claim and returns
// the generation jobs for claims that need a letter. Rejected claims
// are terminal here; eligible claims get a provisional not_sent row
// that generation later upgrades. Cached letters short-circuit the
// generator entirely.
func (p *Pipeline) buildOutcomes(
	joined []model.JoinedClaim,
	verdicts []model.Verdict,
	profile model.PatientProfile,
	excerpt string,
	outcomes []model.AppealOutcome,
	letters map[string]string,
) []worker.GenerationJob {
	var jobs []worker.GenerationJob

	for i, j := range joined {
		outcomes[i] = model.AppealOutcome{
			ClaimNumber:  j.Claim.ClaimNumber,
			ClaimDate:    j.Claim.RawClaimDate,
			PatientName:  profile.Name,
			PolicyNumber: profile.PolicyNumber,
			Status:       model.StatusNotSent,
			Reason:       verdicts[i].Reason,
		}

		if !verdicts[i].Eligible() {
			continue
		}

		req := p.buildRequest(j, profile, excerpt)

		if p.letterCache != nil {
			if cached, ok := p.letterCache.Get(cache.LetterKey(llm.BuildPrompt(req))); ok {
				outcomes[i].Status = model.StatusSent
				outcomes[i].Reason = ""
				outcomes[i].Letter = string(cached)
				letters[j.Claim.ClaimNumber] = string(cached)
				continue
			}
		}

		if p.generator == nil {
			outcomes[i].Reason = "Narrative generation disabled"
			continue
		}

		jobs = append(jobs, worker.GenerationJob{
			Index:       i,
			ClaimNumber: j.Claim.ClaimNumber,
			Request:     req,
		})
	}

	return jobs
}

// buildRequest scopes a generation request to exactly one claim.
// Nothing from any other claim is reachable through the request, so
// letters cannot contaminate each other in multi-claim batches.
func (p *Pipeline) buildRequest(j model.JoinedClaim, profile model.PatientProfile, excerpt string) llm.GenerateRequest {
	reason := model.ReasonNotFound
	if j.Denial != nil {
		reason = j.Denial.DenialReason
	}

	amount := j.Claim.RawAmount
	if j.Claim.AmountCents > 0 {
		amount = extract.FormatCents(j.Claim.AmountCents)
	}

	return llm.GenerateRequest{
		ClaimNumber:        j.Claim.ClaimNumber,
		ClaimDate:          j.Claim.RawClaimDate,
		ServiceDescription: j.Claim.ServiceDescription,
		AmountBilled:       amount,
		DenialReason:       reason,
		Patient:            profile,
		ClinicalExcerpt:    excerpt,
		ReferenceDate:      p.refDate.Format(letterDateFormat),
	}
}

// runGeneration fans the jobs out and folds the results back into
// their outcome slots. A generator failure is recorded on its claim
// and processing of the others continues.
func (p *Pipeline) runGeneration(ctx context.Context, jobs []worker.GenerationJob, outcomes []model.AppealOutcome, letters map[string]string) {
	runner := worker.NewRunner(p.generator, p.limiter, p.generator.Name(), p.config.Concurrency.Workers)
	results := runner.Run(ctx, jobs)

	// Results arrive in job order; res.Index is the outcome slot.
	for i, res := range results {
		if res.Err != nil {
			outcomes[res.Index].Status = model.StatusNotSent
			outcomes[res.Index].Reason = fmt.Sprintf("Generation failed: %v", res.Err)
			p.verbosef("✗ Claim %s: %v\n", res.ClaimNumber, res.Err)
			continue
		}

		outcomes[res.Index].Status = model.StatusSent
		outcomes[res.Index].Reason = ""
		outcomes[res.Index].Letter = res.Letter
		letters[res.ClaimNumber] = res.Letter

		if p.letterCache != nil {
			key := cache.LetterKey(llm.BuildPrompt(jobs[i].Request))
			_ = p.letterCache.Set(key, []byte(res.Letter), p.config.Cache.TTL)
		}
	}
}

// clinicalExcerpt bounds the clinical text carried into prompts so a
// single oversized record cannot blow the generator's token budget.
func clinicalExcerpt(clinical string, maxChars int) string {
	if maxChars <= 0 || len(clinical) <= maxChars {
		return clinical
	}
	return clinical[:maxChars]
}

func (p *Pipeline) verbosef(format string, args ...any) {
	if p.config.Output.Verbose {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
