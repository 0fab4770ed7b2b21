package etl

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanmayd/user_platform_app/internal/core/domain"
	"github.com/tanmayd/user_platform_app/internal/etl/apod"
)

type fakeExtractor struct {
	resp *apod.Response
	err  error
}

func (f *fakeExtractor) Fetch(ctx context.Context, date string) (*apod.Response, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type fakeAPODRepo struct {
	mu       sync.Mutex
	upserted []domain.APODRecord
	err      error
}

func (f *fakeAPODRepo) UpsertRecord(ctx context.Context, record domain.APODRecord) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upserted = append(f.upserted, record)
	return nil
}

func (f *fakeAPODRepo) CountRecordsByDate(ctx context.Context, date string) (int, error) {
	return 1, nil
}

type fakeFlatFile struct {
	mu     sync.Mutex
	loaded []domain.APODRecord
	err    error
}

func (f *fakeFlatFile) Load(record domain.APODRecord) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loaded = append(f.loaded, record)
	return nil
}

type fakeVersioner struct {
	snapshots int
	commits   int
	err       error
}

func (f *fakeVersioner) Snapshot(ctx context.Context) error {
	if f.err != nil {
		return f.err
	}
	f.snapshots++
	return nil
}

func (f *fakeVersioner) CommitPointer(ctx context.Context) error {
	f.commits++
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestPipeline(t *testing.T, extractor Extractor, repo *fakeAPODRepo, flatFile *fakeFlatFile, versioner *fakeVersioner) *Pipeline {
	t.Helper()
	lock := NewRunLock(filepath.Join(t.TempDir(), "run.lock"))
	return NewPipeline(extractor, repo, flatFile, versioner, lock, testLogger())
}

func validResponse() *apod.Response {
	return &apod.Response{Date: "2024-06-01", Title: "A Quiet Nebula", MediaType: "image"}
}

func TestPipeline_RunsAllSteps(t *testing.T) {
	repo := &fakeAPODRepo{}
	flatFile := &fakeFlatFile{}
	versioner := &fakeVersioner{}
	p := newTestPipeline(t, &fakeExtractor{resp: validResponse()}, repo, flatFile, versioner)

	require.NoError(t, p.Run(context.Background(), "2024-06-01"))

	require.Len(t, repo.upserted, 1)
	require.Len(t, flatFile.loaded, 1)
	assert.Equal(t, repo.upserted[0], flatFile.loaded[0], "both sinks receive the same record")
	assert.Equal(t, 1, versioner.snapshots)
	assert.Equal(t, 1, versioner.commits)
}

func TestPipeline_ExtractFailureStopsChain(t *testing.T) {
	repo := &fakeAPODRepo{}
	flatFile := &fakeFlatFile{}
	versioner := &fakeVersioner{}
	p := newTestPipeline(t, &fakeExtractor{err: errors.New("api unreachable")}, repo, flatFile, versioner)

	err := p.Run(context.Background(), "2024-06-01")
	require.Error(t, err)
	assert.ErrorContains(t, err, "extract failed")
	assert.Empty(t, repo.upserted)
	assert.Empty(t, flatFile.loaded)
	assert.Zero(t, versioner.snapshots)
}

func TestPipeline_TransformFailureStopsChain(t *testing.T) {
	repo := &fakeAPODRepo{}
	flatFile := &fakeFlatFile{}
	versioner := &fakeVersioner{}
	// Payload with no title fails the quality checks.
	p := newTestPipeline(t, &fakeExtractor{resp: &apod.Response{Date: "2024-06-01"}}, repo, flatFile, versioner)

	err := p.Run(context.Background(), "2024-06-01")
	require.Error(t, err)
	assert.ErrorContains(t, err, "transform failed")
	assert.Empty(t, repo.upserted)
}

func TestPipeline_OneSinkFailingStopsVersioning(t *testing.T) {
	repo := &fakeAPODRepo{err: errors.New("connection refused")}
	flatFile := &fakeFlatFile{}
	versioner := &fakeVersioner{}
	p := newTestPipeline(t, &fakeExtractor{resp: validResponse()}, repo, flatFile, versioner)

	err := p.Run(context.Background(), "2024-06-01")
	require.Error(t, err)
	assert.ErrorContains(t, err, "load failed")
	assert.Len(t, flatFile.loaded, 1, "the other sink still runs to completion")
	assert.Zero(t, versioner.snapshots, "versioning must not run after a failed load")
	assert.Zero(t, versioner.commits)
}

func TestPipeline_SnapshotFailureSkipsCommit(t *testing.T) {
	repo := &fakeAPODRepo{}
	flatFile := &fakeFlatFile{}
	versioner := &fakeVersioner{err: errors.New("dvc not initialized")}
	p := newTestPipeline(t, &fakeExtractor{resp: validResponse()}, repo, flatFile, versioner)

	err := p.Run(context.Background(), "2024-06-01")
	require.Error(t, err)
	assert.ErrorContains(t, err, "snapshot failed")
	assert.Zero(t, versioner.commits)
}

func TestPipeline_RejectsOverlappingRun(t *testing.T) {
	lock := NewRunLock(filepath.Join(t.TempDir(), "run.lock"))
	p := NewPipeline(&fakeExtractor{resp: validResponse()}, &fakeAPODRepo{}, &fakeFlatFile{}, &fakeVersioner{}, lock, testLogger())

	release, err := lock.Acquire()
	require.NoError(t, err)
	defer release()

	err = p.Run(context.Background(), "2024-06-01")
	require.Error(t, err)
	assert.ErrorContains(t, err, "another run appears to be in flight")
}

func TestRunLock_ReleaseAllowsNextRun(t *testing.T) {
	lock := NewRunLock(filepath.Join(t.TempDir(), "run.lock"))

	release, err := lock.Acquire()
	require.NoError(t, err)

	_, err = lock.Acquire()
	require.Error(t, err)

	release()

	release2, err := lock.Acquire()
	require.NoError(t, err)
	release2()
}
