package background

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"stockconsole/internal/config"
	"stockconsole/internal/jobs"
	"stockconsole/internal/models"
	"stockconsole/internal/services"
	"stockconsole/internal/upstream"
)

const (
	JobSnapshotRefresh = "snapshot-refresh"
	JobInventoryAlerts = "inventory-alerts"
	JobReportPrune     = "report-prune"

	reportPruneInterval = 15 * time.Minute
	// Report state idle this long belongs to a session that has expired.
	reportIdleTimeout = services.DefaultSessionTTL

	// sessionRenewMargin renews the service session before it lapses mid-run.
	sessionRenewMargin = time.Minute
)

var ErrUnknownJob = errors.New("unknown job")

// ReportPruner drops report state left behind by sessions that never
// logged out.
type ReportPruner interface {
	Prune(maxIdle time.Duration) int
}

// JobStatus describes one registered job.
type JobStatus struct {
	Name    string     `json:"name"`
	NextRun *time.Time `json:"next_run,omitempty"`
	LastRun *time.Time `json:"last_run,omitempty"`
}

// JobScheduler runs the gateway's periodic jobs under a service-account
// session.
type JobScheduler struct {
	scheduler gocron.Scheduler
	authSvc   services.AuthService
	refresh   *jobs.SnapshotRefreshService
	alerts    *jobs.InventoryAlertService
	pruner    ReportPruner
	cfg       config.JobsConfig
	jobJobs   map[string]gocron.Job
	mu        sync.RWMutex

	sessMu  sync.Mutex
	session *models.Session
}

// NewJobScheduler creates a new job scheduler. The upstream jobs are
// registered only when service credentials are configured; report pruning
// runs whenever a pruner is given.
func NewJobScheduler(cfg config.JobsConfig, authSvc services.AuthService,
	refresh *jobs.SnapshotRefreshService, alerts *jobs.InventoryAlertService, pruner ReportPruner) (*JobScheduler, error) {

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	js := &JobScheduler{
		scheduler: scheduler,
		authSvc:   authSvc,
		refresh:   refresh,
		alerts:    alerts,
		pruner:    pruner,
		cfg:       cfg,
		jobJobs:   make(map[string]gocron.Job),
	}

	if pruner != nil {
		js.addJob(JobReportPrune, reportPruneInterval, js.pruneReports)
	}
	if cfg.ServiceEmail == "" {
		log.Printf("WARN: no service account configured, upstream jobs disabled")
		return js, nil
	}
	js.registerJobs()
	return js, nil
}

// Start starts the job scheduler
func (js *JobScheduler) Start() error {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
	return nil
}

// Stop stops the job scheduler
func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() {
	js.addJob(JobSnapshotRefresh, minutes(js.cfg.RefreshMinutes, 5), js.refreshSnapshot)
	js.addJob(JobInventoryAlerts, minutes(js.cfg.AlertMinutes, 30), js.processInventoryAlerts)
	log.Printf("Registered %d background jobs", len(js.jobJobs))
}

func minutes(n, fallback int) time.Duration {
	if n <= 0 {
		n = fallback
	}
	return time.Duration(n) * time.Minute
}

func (js *JobScheduler) addJob(name string, interval time.Duration, fn func(context.Context) error) {
	job, err := js.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(fn, context.Background()),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create %s job: %v", name, err)
		return
	}

	js.mu.Lock()
	js.jobJobs[name] = job
	js.mu.Unlock()
}

// serviceSession returns the cached service-account session, logging in
// again when it is missing or about to expire.
func (js *JobScheduler) serviceSession(ctx context.Context) (models.Session, error) {
	js.sessMu.Lock()
	defer js.sessMu.Unlock()

	if js.session != nil && time.Until(js.session.ExpiresAt) > sessionRenewMargin {
		return *js.session, nil
	}
	sess, err := js.authSvc.Login(ctx, js.cfg.ServiceEmail, js.cfg.ServicePassword)
	if err != nil {
		return models.Session{}, fmt.Errorf("service account login failed: %w", err)
	}
	js.session = sess
	return *sess, nil
}

// dropSession forgets the service session after the upstream rejected it.
func (js *JobScheduler) dropSession(ctx context.Context, err error) {
	if !errors.Is(err, upstream.ErrUnauthorized) {
		return
	}
	js.sessMu.Lock()
	defer js.sessMu.Unlock()
	if js.session != nil {
		if logoutErr := js.authSvc.Logout(ctx, js.session.ID); logoutErr != nil {
			log.Printf("WARN: failed to drop service session: %v", logoutErr)
		}
		js.session = nil
	}
}

func (js *JobScheduler) refreshSnapshot(ctx context.Context) error {
	sess, err := js.serviceSession(ctx)
	if err != nil {
		log.Printf("Snapshot refresh skipped: %v", err)
		return err
	}
	if _, err := js.refresh.Refresh(ctx, sess); err != nil {
		js.dropSession(ctx, err)
		return err
	}
	return nil
}

func (js *JobScheduler) processInventoryAlerts(ctx context.Context) error {
	sess, err := js.serviceSession(ctx)
	if err != nil {
		log.Printf("Inventory alerts skipped: %v", err)
		return err
	}
	if err := js.alerts.ScheduledLowStockCheck(ctx, sess); err != nil {
		js.dropSession(ctx, err)
		return err
	}
	return nil
}

func (js *JobScheduler) pruneReports(ctx context.Context) error {
	if n := js.pruner.Prune(reportIdleTimeout); n > 0 {
		log.Printf("DEBUG: pruned report state of %d idle sessions", n)
	}
	return nil
}

// RunNow triggers a registered job outside its schedule.
func (js *JobScheduler) RunNow(name string) error {
	js.mu.RLock()
	job, exists := js.jobJobs[name]
	js.mu.RUnlock()

	if !exists {
		return fmt.Errorf("%w: %s", ErrUnknownJob, name)
	}
	return job.RunNow()
}

// GetJobStatus returns information about scheduled jobs
func (js *JobScheduler) GetJobStatus() []JobStatus {
	js.mu.RLock()
	defer js.mu.RUnlock()

	status := make([]JobStatus, 0, len(js.jobJobs))
	for name, job := range js.jobJobs {
		st := JobStatus{Name: name}
		if next, err := job.NextRun(); err == nil && !next.IsZero() {
			st.NextRun = &next
		}
		if last, err := job.LastRun(); err == nil && !last.IsZero() {
			st.LastRun = &last
		}
		status = append(status, st)
	}
	sort.Slice(status, func(i, j int) bool { return status[i].Name < status[j].Name })
	return status
}
