package fleet

import (
	"context"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/netaudit/netaudit/internal/compliance"
	"github.com/netaudit/netaudit/pkg/device"
)

// Runner audits a set of devices against one golden template.
//
// Audits are independent per device and run concurrently against the
// shared read-only template. A failure to retrieve one device's
// configuration never aborts the batch: the device is audited against
// empty configuration and its result is marked unreachable.
type Runner struct {
	template *compliance.ComplianceTemplate
	source   device.ConfigSource
	limit    int
	logger   *log.Logger
}

// RunnerConfig holds configuration for a fleet runner.
type RunnerConfig struct {
	Template *compliance.ComplianceTemplate
	Source   device.ConfigSource
	Limit    int // max concurrent device audits (default 8)
	Logger   *log.Logger
}

// NewRunner creates a fleet audit runner.
func NewRunner(cfg RunnerConfig) *Runner {
	if cfg.Limit <= 0 {
		cfg.Limit = 8
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	return &Runner{
		template: cfg.Template,
		source:   cfg.Source,
		limit:    cfg.Limit,
		logger:   cfg.Logger,
	}
}

// Run audits every device and returns the completed run. Results keep the
// order devices were submitted in, regardless of completion order.
func (r *Runner) Run(ctx context.Context, devices []string) (*AuditRun, error) {
	started := time.Now().UTC()
	results := make([]compliance.DeviceAuditResult, len(devices))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(r.limit)

	for i, id := range devices {
		i, id := i, id
		g.Go(func() error {
			results[i] = r.auditDevice(gCtx, id)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	run := &AuditRun{
		ID:              NewRunID(),
		TemplateName:    r.template.Name,
		TemplateVersion: r.template.Version,
		StartedAt:       started,
		FinishedAt:      time.Now().UTC(),
		Report:          compliance.Aggregate(results),
	}
	return run, nil
}

func (r *Runner) auditDevice(ctx context.Context, id string) compliance.DeviceAuditResult {
	config, err := r.source.Fetch(ctx, id)
	if err != nil {
		r.logger.Printf("fleet runner: device %s unreachable: %v", id, err)
		res := compliance.Audit(r.template, id, "")
		res.Unreachable = true
		res.RetrievalError = err.Error()
		return res
	}
	return compliance.Audit(r.template, id, config)
}
