package etl

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"time"
)

// Versioner snapshots the CSV sink with DVC and commits the resulting
// pointer file to Git. Only the pointer file is ever staged, never the raw
// data.
type Versioner struct {
	// RepoDir is the working directory holding both the DVC and Git repos.
	RepoDir string
	// CSVPath is the flat-file sink path, relative to RepoDir.
	CSVPath string
	// Timeout bounds each external command.
	Timeout time.Duration

	logger *slog.Logger
}

// NewVersioner creates a Versioner.
func NewVersioner(repoDir, csvPath string, timeout time.Duration, logger *slog.Logger) *Versioner {
	return &Versioner{
		RepoDir: repoDir,
		CSVPath: csvPath,
		Timeout: timeout,
		logger:  logger,
	}
}

// Snapshot registers the CSV file's current content hash with DVC, producing
// the .dvc pointer file.
func (v *Versioner) Snapshot(ctx context.Context) error {
	out, err := v.run(ctx, "dvc", "add", v.CSVPath)
	if err != nil {
		return fmt.Errorf("dvc add failed: %w", err)
	}
	v.logger.InfoContext(ctx, "DVC snapshot registered", slog.String("file", v.CSVPath), slog.String("output", out))
	return nil
}

// CommitPointer stages the pointer file and commits it with a dated message.
// An unchanged pointer is a no-op, not a failure.
func (v *Versioner) CommitPointer(ctx context.Context) error {
	pointer := v.CSVPath + ".dvc"
	gitignore := filepath.Join(filepath.Dir(v.CSVPath), ".gitignore")

	if _, err := v.run(ctx, "git", "add", pointer, gitignore); err != nil {
		return fmt.Errorf("git add failed: %w", err)
	}

	// Nothing staged means the pointer is unchanged since the last commit.
	if _, err := v.run(ctx, "git", "diff", "--cached", "--quiet"); err == nil {
		v.logger.InfoContext(ctx, "Pointer unchanged, skipping commit")
		return nil
	}

	message := fmt.Sprintf("Update APOD data version - %s", time.Now().Format("2006-01-02_15-04-05"))
	if _, err := v.run(ctx, "git", "commit", "-m", message); err != nil {
		return fmt.Errorf("git commit failed: %w", err)
	}

	v.logger.InfoContext(ctx, "Pointer committed", slog.String("message", message))
	return nil
}

func (v *Versioner) run(ctx context.Context, name string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, v.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = v.RepoDir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return string(out), fmt.Errorf("%s %v: %w (%s)", name, args, err, string(out))
	}
	return string(out), nil
}
