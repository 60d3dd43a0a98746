// Package check orchestrates registry validation and chain verification
// and assembles one consolidated report per run.
package check

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/wasmregistry/codemap/pkg/chain"
	"github.com/wasmregistry/codemap/pkg/constants"
	pkgerrors "github.com/wasmregistry/codemap/pkg/errors"
	"github.com/wasmregistry/codemap/pkg/logging"
	"github.com/wasmregistry/codemap/pkg/reconcile"
	"github.com/wasmregistry/codemap/pkg/registry"
	"github.com/wasmregistry/codemap/pkg/schema"
)

// Options configure one run.
type Options struct {
	RegistryPath   string
	Mode           Mode
	Mainnet        chain.Config
	Testnet        *chain.Config // nil for a single-network run
	ProposalStatus chain.ProposalStatus
	SkipGovernance bool
	HTTPClient     *http.Client
}

// Option configures a run.
type Option func(*Options) error

// defaults returns the baseline options: check everything against the
// built-in mainnet, mainnet only.
func defaults() *Options {
	return &Options{
		RegistryPath:   constants.DefaultRegistryPath,
		Mode:           ModeAll,
		Mainnet:        chain.DefaultMainnet(),
		ProposalStatus: chain.ProposalStatusPassed,
	}
}

// WithRegistryPath sets the registry file to check.
func WithRegistryPath(path string) Option {
	return func(o *Options) error {
		if path == "" {
			return &pkgerrors.ConfigError{Component: "check", Message: "registry path cannot be empty"}
		}
		o.RegistryPath = path
		return nil
	}
}

// WithMode selects which phases run.
func WithMode(mode Mode) Option {
	return func(o *Options) error {
		if !mode.Valid() {
			return &pkgerrors.ConfigError{Component: "check", Message: fmt.Sprintf("unknown run mode %q", mode)}
		}
		o.Mode = mode
		return nil
	}
}

// WithMainnet overrides the mainnet endpoint configuration.
func WithMainnet(cfg chain.Config) Option {
	return func(o *Options) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		o.Mainnet = cfg
		return nil
	}
}

// WithTestnet enables testnet checks against the given endpoint.
func WithTestnet(cfg chain.Config) Option {
	return func(o *Options) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		o.Testnet = &cfg
		return nil
	}
}

// WithProposalStatus narrows the governance query to one status code.
func WithProposalStatus(status chain.ProposalStatus) Option {
	return func(o *Options) error {
		o.ProposalStatus = status
		return nil
	}
}

// WithSkipGovernance disables the advisory governance-proposal fetch.
func WithSkipGovernance() Option {
	return func(o *Options) error {
		o.SkipGovernance = true
		return nil
	}
}

// WithHTTPClient overrides the HTTP client used for LCD requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *Options) error {
		o.HTTPClient = hc
		return nil
	}
}

// Run executes the configured phases and assembles the consolidated
// report. Phases never short-circuit each other: a failing validation
// still lets verification run so the report carries complete findings.
// The returned error covers option problems only; phase outcomes live
// in the report.
func Run(ctx context.Context, opts ...Option) (*Report, error) {
	o := defaults()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}

	report := &Report{
		RunID:        uuid.New().String(),
		Mode:         o.Mode,
		RegistryPath: o.RegistryPath,
		StartedAt:    time.Now().UTC(),
	}
	ctx = logging.WithRunID(ctx, report.RunID)

	logging.Ctx(ctx).Info().
		Str("mode", string(o.Mode)).
		Str("registry", o.RegistryPath).
		Msg("Starting registry check")

	if o.Mode.includesValidate() {
		report.Validation = runValidation(ctx, o.RegistryPath)
	}
	if o.Mode.includesVerify() {
		report.Verification = runVerification(ctx, o)
	}

	report.Duration = time.Since(report.StartedAt)
	report.Success = report.succeeded()

	logging.Ctx(ctx).Info().
		Bool("success", report.Success).
		Dur("duration", report.Duration).
		Msg(report.Summary())

	return report, nil
}

// runValidation loads the raw registry document and validates it
// against the collection schema. Schema problems never abort the
// phase; every violation is collected into the result.
func runValidation(ctx context.Context, path string) Validation {
	v := Validation{Executed: true}
	log := logging.Ctx(ctx)

	value, err := registry.LoadRaw(path)
	if err != nil {
		v.Error = err.Error()
		log.Error().Err(err).Str("registry", path).Msg("Validation could not read the registry")
		return v
	}

	if records, ok := value.([]any); ok {
		v.Records = len(records)
	}

	if err := registry.Validate(value); err != nil {
		var verrs *schema.Errors
		if errors.As(err, &verrs) {
			for _, fe := range verrs.Errors {
				v.Problems = append(v.Problems, Problem{Path: fe.Path, Message: fe.Message})
			}
		} else {
			v.Problems = append(v.Problems, Problem{Path: path, Message: err.Error()})
		}
		log.Warn().
			Int("problems", len(v.Problems)).
			Str("registry", path).
			Msg("Registry validation failed")
		return v
	}

	v.Valid = true
	log.Info().Int("records", v.Records).Msg("Registry validation passed")
	return v
}

// runVerification fans out the independent fetches, joins, and
// reconciles. The registry load and the code fetches are load-bearing:
// any failure aborts the phase and discards partial results. The
// governance-proposal fetch is advisory and degrades to an empty set.
func runVerification(ctx context.Context, o *Options) Verification {
	v := Verification{Executed: true, Mainnet: o.Mainnet.REST}
	log := logging.Ctx(ctx)

	var copts []chain.Option
	if o.HTTPClient != nil {
		copts = append(copts, chain.WithHTTPClient(o.HTTPClient))
	}
	mainnet := chain.New(o.Mainnet, copts...)

	var (
		collection   *registry.Collection
		mainnetInfos []chain.CodeInfo
		testnetInfos []chain.CodeInfo
		proposals    = []chain.Proposal{}
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		c, err := registry.Load(o.RegistryPath)
		if err != nil {
			return err
		}
		collection = c
		return nil
	})

	g.Go(func() error {
		infos, err := mainnet.CodeInfos(gctx)
		if err != nil {
			return err
		}
		mainnetInfos = infos
		return nil
	})

	if o.SkipGovernance {
		log.Debug().Msg("Skipping governance-proposal fetch")
	} else {
		g.Go(func() error {
			ps, err := mainnet.Proposals(gctx, o.ProposalStatus)
			if err != nil {
				// Advisory: reconcile without a governance index.
				log.Warn().
					Err(err).
					Str("network", o.Mainnet.Name).
					Msg("Governance proposal fetch failed; continuing without governance index")
				return nil
			}
			proposals = ps
			return nil
		})
	}

	if o.Testnet != nil {
		v.Testnet = o.Testnet.REST
		testnet := chain.New(*o.Testnet, copts...)
		g.Go(func() error {
			infos, err := testnet.CodeInfos(gctx)
			if err != nil {
				return err
			}
			testnetInfos = infos
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		v.Error = err.Error()
		log.Error().Err(err).Msg("Verification aborted; partial results discarded")
		return v
	}

	var testnetSlice []chain.CodeInfo
	if o.Testnet != nil {
		testnetSlice = testnetInfos
	}

	result := reconcile.Reconcile(collection.Contracts, mainnetInfos, testnetSlice, proposals)
	v.Result = result
	v.Passed = result.Actionable() == 0

	log.Info().
		Int("discrepancies", result.Summary.Total).
		Int("actionable", result.Actionable()).
		Int("matched", result.Summary.Matched).
		Msg("Reconciliation complete")

	return v
}
