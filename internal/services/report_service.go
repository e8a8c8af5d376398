package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"path"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"stockconsole/internal/metrics"
	"stockconsole/internal/models"
	"stockconsole/internal/report"
)

var (
	ErrWarehouseNotFound = errors.New("warehouse not found")
	ErrExportUnavailable = errors.New("report export storage is not configured")
)

// ExportResult points at an uploaded CSV report.
type ExportResult struct {
	ObjectName string    `json:"objectName"`
	FileName   string    `json:"fileName"`
	URL        string    `json:"url"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

type ReportService interface {
	// Generate aggregates a fresh report for the warehouse and records it as
	// the session's current report when no newer request overtook it.
	Generate(ctx context.Context, sess models.Session, warehouseID models.ID) (*report.Report, error)
	Current(sessionID string) *report.Report
	CSV(ctx context.Context, sess models.Session, warehouseID models.ID) (string, []byte, error)
	Export(ctx context.Context, sess models.Session, warehouseID models.ID) (*ExportResult, error)
	// AggregateAll builds one report per warehouse in the snapshot.
	AggregateAll(snap *Snapshot) []*report.Report
	Forget(sessionID string)
	// Prune drops the report state of sessions unused for longer than
	// maxIdle and returns how many were dropped.
	Prune(maxIdle time.Duration) int
}

type ExportConfig struct {
	Bucket    string
	URLExpiry time.Duration
}

type reportService struct {
	snapshots  SnapshotService
	aggregator *report.Aggregator
	storage    MinioService
	export     ExportConfig
	metrics    *metrics.Metrics
	trackers   sync.Map // session id -> *sessionReports
	now        func() time.Time
}

// sessionReports is the report state kept for one session.
type sessionReports struct {
	report.Tracker
	lastUsed atomic.Int64 // unix nanoseconds
}

func (r *sessionReports) touch(t time.Time) { r.lastUsed.Store(t.UnixNano()) }

// NewReportService wires report generation. storage may be nil, in which
// case Export fails with ErrExportUnavailable.
func NewReportService(snapshots SnapshotService, aggregator *report.Aggregator, storage MinioService, export ExportConfig, m *metrics.Metrics) ReportService {
	if aggregator == nil {
		aggregator = report.NewAggregator()
	}
	return &reportService{
		snapshots:  snapshots,
		aggregator: aggregator,
		storage:    storage,
		export:     export,
		metrics:    m,
		now:        time.Now,
	}
}

func (s *reportService) tracker(sessionID string) *sessionReports {
	t, _ := s.trackers.LoadOrStore(sessionID, &sessionReports{})
	sr := t.(*sessionReports)
	sr.touch(s.now())
	return sr
}

func (s *reportService) aggregate(snap *Snapshot, warehouseID models.ID) *report.Report {
	start := time.Now()
	r := s.aggregator.Aggregate(snap.Warehouses, snap.Products, snap.Inventory, snap.Suppliers, warehouseID)
	s.metrics.ObserveAggregation(r != nil, time.Since(start))
	return r
}

func (s *reportService) Generate(ctx context.Context, sess models.Session, warehouseID models.ID) (*report.Report, error) {
	tracker := s.tracker(sess.ID)
	ticket := tracker.Begin()

	snap, err := s.snapshots.Fetch(ctx, sess)
	if err != nil {
		return nil, err
	}

	r := s.aggregate(snap, warehouseID)
	if !tracker.Commit(ticket, r) {
		log.Printf("DEBUG: report for warehouse %s superseded by a newer request", warehouseID)
	}
	if r == nil {
		return nil, fmt.Errorf("%w: %s", ErrWarehouseNotFound, warehouseID)
	}
	return r, nil
}

func (s *reportService) Current(sessionID string) *report.Report {
	t, ok := s.trackers.Load(sessionID)
	if !ok {
		return nil
	}
	sr := t.(*sessionReports)
	sr.touch(s.now())
	return sr.Current()
}

func (s *reportService) CSV(ctx context.Context, sess models.Session, warehouseID models.ID) (string, []byte, error) {
	r, err := s.Generate(ctx, sess, warehouseID)
	if err != nil {
		return "", nil, err
	}
	s.metrics.ObserveExport("download", nil)
	return report.FileName(r), report.ToCSV(r), nil
}

func (s *reportService) Export(ctx context.Context, sess models.Session, warehouseID models.ID) (*ExportResult, error) {
	if s.storage == nil {
		return nil, ErrExportUnavailable
	}

	r, err := s.Generate(ctx, sess, warehouseID)
	if err != nil {
		return nil, err
	}

	result, err := s.upload(ctx, r)
	s.metrics.ObserveExport("object_storage", err)
	if err != nil {
		return nil, err
	}
	log.Printf("DEBUG: exported report for warehouse %s to %s/%s", warehouseID, s.export.Bucket, result.ObjectName)
	return result, nil
}

func (s *reportService) upload(ctx context.Context, r *report.Report) (*ExportResult, error) {
	fileName := report.FileName(r)
	objectName := path.Join("reports", r.Warehouse.ID.String(), uuid.NewString(), fileName)
	data := report.ToCSV(r)

	if err := s.storage.EnsureBucketExists(ctx, s.export.Bucket); err != nil {
		return nil, fmt.Errorf("failed to prepare bucket %s: %w", s.export.Bucket, err)
	}
	if err := s.storage.UploadObject(ctx, s.export.Bucket, objectName, bytes.NewReader(data), int64(len(data)), "text/csv"); err != nil {
		return nil, fmt.Errorf("failed to upload report: %w", err)
	}
	url, err := s.storage.GetPresignedURL(ctx, s.export.Bucket, objectName, s.export.URLExpiry)
	if err != nil {
		// An object nobody can download is only clutter
		if delErr := s.storage.DeleteObject(ctx, s.export.Bucket, objectName); delErr != nil {
			log.Printf("WARN: failed to remove unsigned export %s: %v", objectName, delErr)
		}
		return nil, fmt.Errorf("failed to presign report URL: %w", err)
	}

	return &ExportResult{
		ObjectName: objectName,
		FileName:   fileName,
		URL:        url,
		ExpiresAt:  time.Now().Add(s.export.URLExpiry),
	}, nil
}

func (s *reportService) AggregateAll(snap *Snapshot) []*report.Report {
	if snap == nil {
		return nil
	}
	reports := make([]*report.Report, 0, len(snap.Warehouses))
	for _, w := range snap.Warehouses {
		if r := s.aggregate(snap, w.ID); r != nil {
			reports = append(reports, r)
		}
	}
	return reports
}

func (s *reportService) Forget(sessionID string) {
	s.trackers.Delete(sessionID)
}

func (s *reportService) Prune(maxIdle time.Duration) int {
	cutoff := s.now().Add(-maxIdle).UnixNano()
	pruned := 0
	s.trackers.Range(func(key, value any) bool {
		if value.(*sessionReports).lastUsed.Load() < cutoff {
			s.trackers.Delete(key)
			pruned++
		}
		return true
	})
	return pruned
}
