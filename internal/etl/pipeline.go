package etl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/tanmayd/user_platform_app/internal/core/domain"
	portsrepo "github.com/tanmayd/user_platform_app/internal/core/ports/repositories"
	"github.com/tanmayd/user_platform_app/internal/etl/apod"
)

// Extractor fetches one raw APOD payload for a date. The production
// implementation is *apod.Client; tests substitute a fake.
type Extractor interface {
	Fetch(ctx context.Context, date string) (*apod.Response, error)
}

// FlatFileSink is the flat-file side of the dual load.
type FlatFileSink interface {
	Load(record domain.APODRecord) error
}

// Snapshotter versions the flat file and commits the pointer.
type Snapshotter interface {
	Snapshot(ctx context.Context) error
	CommitPointer(ctx context.Context) error
}

// Pipeline runs the daily task chain:
//
//	Extract -> Transform -> {LoadRelational, LoadFlatFile} -> Snapshot -> CommitPointer
//
// The two loads run concurrently and independently; a failure in either stops
// the downstream steps, but there is no rollback across sinks.
type Pipeline struct {
	extractor Extractor
	repo      portsrepo.APODRepository
	flatFile  FlatFileSink
	versioner Snapshotter
	locker    *RunLock
	logger    *slog.Logger
}

// NewPipeline assembles the task chain.
func NewPipeline(extractor Extractor, repo portsrepo.APODRepository, flatFile FlatFileSink, versioner Snapshotter, locker *RunLock, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		extractor: extractor,
		repo:      repo,
		flatFile:  flatFile,
		versioner: versioner,
		locker:    locker,
		logger:    logger,
	}
}

// Run executes one unit of work for the given date ("YYYY-MM-DD").
// Overlapping runs are rejected by the run lock.
func (p *Pipeline) Run(ctx context.Context, date string) error {
	release, err := p.locker.Acquire()
	if err != nil {
		return fmt.Errorf("another run appears to be in flight: %w", err)
	}
	defer release()

	start := time.Now()
	p.logger.InfoContext(ctx, "Pipeline run starting", slog.String("date", date))

	// Extract
	raw, err := p.extractor.Fetch(ctx, date)
	if err != nil {
		return fmt.Errorf("extract failed: %w", err)
	}
	p.logger.InfoContext(ctx, "Extract complete", slog.String("title", raw.Title), slog.String("media_type", raw.MediaType))

	// Transform
	record, err := Transform(raw, time.Now())
	if err != nil {
		return fmt.Errorf("transform failed: %w", err)
	}

	// Dual load, parallel and independent.
	var wg sync.WaitGroup
	var pgErr, csvErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		pgErr = p.loadRelational(ctx, record)
	}()
	go func() {
		defer wg.Done()
		csvErr = p.flatFile.Load(record)
	}()
	wg.Wait()

	if err := errors.Join(pgErr, csvErr); err != nil {
		// One sink may have been written while the other failed; that
		// inconsistency window is accepted, not remediated.
		return fmt.Errorf("load failed: %w", err)
	}
	p.logger.InfoContext(ctx, "Dual load complete", slog.String("date", record.Date))

	// Snapshot
	if err := p.versioner.Snapshot(ctx); err != nil {
		return fmt.Errorf("snapshot failed: %w", err)
	}

	// CommitPointer
	if err := p.versioner.CommitPointer(ctx); err != nil {
		return fmt.Errorf("commit pointer failed: %w", err)
	}

	p.logger.InfoContext(ctx, "Pipeline run finished", slog.String("date", date), slog.Duration("duration", time.Since(start)))
	return nil
}

func (p *Pipeline) loadRelational(ctx context.Context, record domain.APODRecord) error {
	if err := p.repo.UpsertRecord(ctx, record); err != nil {
		return err
	}
	count, err := p.repo.CountRecordsByDate(ctx, record.Date)
	if err != nil {
		return err
	}
	p.logger.InfoContext(ctx, "Relational load verified", slog.String("date", record.Date), slog.Int("rows", count))
	return nil
}
