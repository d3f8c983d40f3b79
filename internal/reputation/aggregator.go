package reputation

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/guardiao60/linkguard/internal/config"
	"github.com/guardiao60/linkguard/internal/domain"
	"github.com/guardiao60/linkguard/internal/logger"
	"github.com/guardiao60/linkguard/internal/telemetry"
)

// localSource tags the heuristic scorer in every result's source list.
const localSource = "local"

type entry struct {
	provider Provider
	floor    int
	reason   string
}

// Aggregator fans a URL out to every reputation provider and merges the
// verdicts into a locally computed score. A provider hit raises the
// score to that provider's floor; provider failures are logged and
// tagged but never fail the check.
type Aggregator struct {
	entries   []entry
	timeout   time.Duration
	telemetry *telemetry.Provider
	log       logger.Logger
}

// NewAggregator wires the configured providers in fixed order. The
// telemetry provider may be nil.
func NewAggregator(cfg config.ReputationConfig, tel *telemetry.Provider, log logger.Logger) *Aggregator {
	return &Aggregator{
		telemetry: tel,
		entries: []entry{
			{
				provider: NewSafeBrowsing(cfg.SafeBrowsingKey, ""),
				floor:    cfg.SafeBrowsingFloor,
				reason:   domain.ReasonSafeBrowsingMatch,
			},
			{
				provider: NewOpenPhish(cfg.OpenPhishFeedURL),
				floor:    cfg.OpenPhishFloor,
				reason:   domain.ReasonOpenPhishMatch,
			},
		},
		timeout: cfg.LookupTimeout,
		log:     log,
	}
}

// NewAggregatorWith builds an aggregator over explicit providers. Used
// by tests to substitute fakes for the HTTP-backed providers.
func NewAggregatorWith(timeout time.Duration, tel *telemetry.Provider, log logger.Logger, providers ...ProviderSpec) *Aggregator {
	entries := make([]entry, 0, len(providers))
	for _, p := range providers {
		entries = append(entries, entry{provider: p.Provider, floor: p.Floor, reason: p.Reason})
	}
	return &Aggregator{entries: entries, timeout: timeout, telemetry: tel, log: log}
}

// ProviderSpec pairs a provider with its hit floor and reason tag.
type ProviderSpec struct {
	Provider Provider
	Floor    int
	Reason   string
}

type lookupOutcome struct {
	hit     bool
	err     error
	elapsed time.Duration
}

// Augment checks url against every provider concurrently and folds the
// verdicts into base. The local source is recorded first, then one
// source tag per provider in wiring order, with ":stub" or ":error"
// suffixes for providers that did not produce a real verdict.
func (a *Aggregator) Augment(ctx context.Context, url string, base domain.ScoreResult) domain.ScoreResult {
	result := base
	result.AddSource(localSource)

	outcomes := make([]lookupOutcome, len(a.entries))
	var wg sync.WaitGroup
	for i, e := range a.entries {
		wg.Add(1)
		go func(i int, e entry) {
			defer wg.Done()
			lookupCtx, cancel := context.WithTimeout(ctx, a.timeout)
			defer cancel()
			start := time.Now()
			hit, err := e.provider.Check(lookupCtx, url)
			outcomes[i] = lookupOutcome{hit: hit, err: err, elapsed: time.Since(start)}
		}(i, e)
	}
	wg.Wait()

	for i, e := range a.entries {
		out := outcomes[i]
		name := e.provider.Name()
		switch {
		case errors.Is(out.err, ErrNotConfigured):
			result.AddSource(name + ":stub")
			a.record(ctx, name, "stub", out.elapsed)
		case out.err != nil:
			a.log.Warn("reputation lookup failed",
				logger.String("provider", name),
				logger.Error(out.err))
			result.AddSource(name + ":error")
			a.record(ctx, name, "error", out.elapsed)
		default:
			result.AddSource(name)
			outcome := "miss"
			if out.hit {
				outcome = "hit"
				result.AddReason(e.reason)
				if e.floor > result.Score {
					result.Score = e.floor
				}
			}
			a.record(ctx, name, outcome, out.elapsed)
		}
	}

	result.Score = domain.ClampScore(result.Score)
	return result
}

func (a *Aggregator) record(ctx context.Context, provider, outcome string, elapsed time.Duration) {
	if a.telemetry == nil {
		return
	}
	a.telemetry.RecordReputationLookup(ctx, provider, outcome, elapsed)
}
