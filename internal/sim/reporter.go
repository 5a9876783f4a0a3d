package sim

import (
	"context"
	"log/slog"
	"time"

	"github.com/roach88/protosim/internal/random"
)

// Report describes a finished progress walk.
type Report struct {
	SessionID string
	// Stages are the stage names in the order they were rendered.
	Stages []string
	// Injected are the 1-based indices that raised a synthetic error, ascending.
	Injected []int
	// Errors are the catalog entries shown, in stage order.
	Errors []string
	// Probed are the stages that ran a synthetic generator.
	Probed  []string
	Elapsed time.Duration
	Status  string
}

// Reporter renders staged progress with error injection.
type Reporter struct {
	renderer  Renderer
	rng       *random.Provider
	pacer     *Pacer
	pacing    Pacing
	telemetry *Telemetry
	injector  *Injector
	stages    []string
	catalog   []string
}

// ReporterConfig wires a Reporter.
type ReporterConfig struct {
	Renderer Renderer
	Random   *random.Provider
	Clock    Clock
	Sleeper  Sleeper
	Pacing   Pacing
	Bounds   Bounds
}

// NewReporter validates the injection bounds against the stage list.
func NewReporter(cfg ReporterConfig) (*Reporter, error) {
	st := Stages()
	injector, err := NewInjector(cfg.Random, cfg.Bounds, len(st))
	if err != nil {
		return nil, err
	}
	return &Reporter{
		renderer:  cfg.Renderer,
		rng:       cfg.Random,
		pacer:     NewPacer(cfg.Random, cfg.Sleeper),
		pacing:    cfg.Pacing,
		telemetry: NewTelemetry(cfg.Random, cfg.Clock),
		injector:  injector,
		stages:    st,
		catalog:   ErrorCatalog(),
	}, nil
}

// Run renders the banner, the session header, every stage in order and the
// closing summary. The session clock restarts at the banner, so the reported
// elapsed time excludes startup and login. The error plan is drawn once at
// the start and reused for every stage. Run only fails when ctx is cancelled
// mid-pause.
func (r *Reporter) Run(ctx context.Context, s *Session, authenticated bool) (*Report, error) {
	s.Begin()
	r.renderer.Banner()
	r.renderer.SessionHeader(r.header(authenticated))

	plan := r.injector.Plan()
	report := &Report{
		SessionID: s.ID,
		Injected:  plan.Indices(),
		Status:    StatusIncomplete,
	}
	slog.Debug("error plan drawn", "session", s.ID, "indices", report.Injected)

	total := len(r.stages)
	for i, stage := range r.stages {
		index := i + 1

		r.renderer.Progress(stage, index, total)
		report.Stages = append(report.Stages, stage)
		if err := r.pacer.Pause(ctx, r.pacing.Stage); err != nil {
			return report, err
		}

		if plan.Contains(index) {
			msg := random.Pick(r.rng, r.catalog)
			report.Errors = append(report.Errors, msg)
			r.renderer.StageError(msg)
			if err := r.pacer.Pause(ctx, r.pacing.Recovery); err != nil {
				return report, err
			}
			r.renderer.RecoveryFailed()
		}

		if r.probe(stage, authenticated) {
			report.Probed = append(report.Probed, stage)
		}
	}

	report.Elapsed = s.Elapsed()
	r.renderer.Summary(report.Elapsed, report.Status)
	return report, nil
}

func (r *Reporter) header(authenticated bool) Header {
	if authenticated {
		return Header{
			Authenticated:   true,
			DeviceHash:      r.telemetry.DeviceHash(),
			ProtectionScore: r.telemetry.ProtectionScore(),
			Latency:         r.telemetry.PingLatency(),
		}
	}
	return Header{
		Latency:          r.telemetry.PingLatency(),
		ActiveValidators: r.telemetry.ActiveValidators(),
	}
}

// probe exercises the generator tied to stage. Results are only logged.
func (r *Reporter) probe(stage string, authenticated bool) bool {
	switch stage {
	case StageWhitelist:
		address := r.telemetry.WalletAddress()
		slog.Debug("whitelist probe", "address", address,
			"status", r.telemetry.WhitelistStatus(address), "authenticated", authenticated)
	case StageNodeConf:
		cfg := r.telemetry.NodeConfiguration()
		slog.Debug("node configuration probe", "node_id", cfg.NodeID, "region", cfg.Region, "validators", cfg.Validators)
	case StageHeartbeat:
		slog.Debug("heartbeat probe", "ping", r.telemetry.PingBroadcast())
	default:
		return false
	}
	return true
}
