package jobs

import (
	"context"
	"log/slog"
	"time"

	"bondi/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// DefaultProbeSchedule runs the probe every ten seconds.
const DefaultProbeSchedule = "*/10 * * * * *"

// StorageProbeJob periodically checks that the storage is reachable. A run
// is skipped while the previous probe is still waiting on the storage, so
// results are recorded in order.
type StorageProbeJob struct {
	pinger   ports.Pinger
	status   *HealthStatus
	schedule string
	timeout  time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewStorageProbeJob(
	pinger ports.Pinger,
	status *HealthStatus,
	schedule string,
	timeout time.Duration,
	logger *slog.Logger,
) *StorageProbeJob {
	if schedule == "" {
		schedule = DefaultProbeSchedule
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "storage_probe_job")
	cl := cronLogger{logger: logger}
	return &StorageProbeJob{
		pinger:   pinger,
		status:   status,
		schedule: schedule,
		timeout:  timeout,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithLogger(cl),
			cron.WithChain(cron.SkipIfStillRunning(cl)),
		),
		logger: logger,
	}
}

// cronLogger routes cron's own messages, such as skipped runs, to slog.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}

// Probe pings the storage once and records the result.
func (j *StorageProbeJob) Probe(ctx context.Context) error {
	if j.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}

	err := j.pinger.Ping(ctx)
	if changed := j.status.Record(err, time.Now()); changed {
		if err != nil {
			j.logger.ErrorContext(ctx, "Storage became unreachable", "error", err)
		} else {
			j.logger.InfoContext(ctx, "Storage is reachable again")
		}
	}
	return err
}

func (j *StorageProbeJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		_ = j.Probe(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Storage probe job started", "schedule", j.schedule)
	return nil
}

func (j *StorageProbeJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Storage probe job stopped")
}
