package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// Manifest lists the jobs of a batch run.
type Manifest struct {
	Jobs []Job `yaml:"jobs"`
}

// LoadManifest reads a YAML manifest. Relative paths are resolved against
// the manifest's directory.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("render: read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("render: parse manifest %s: %w", path, err)
	}
	if len(m.Jobs) == 0 {
		return nil, fmt.Errorf("%w: manifest %s has no jobs", ErrJob, path)
	}

	base := filepath.Dir(path)
	for i := range m.Jobs {
		j := &m.Jobs[i]
		if err := j.Validate(); err != nil {
			return nil, fmt.Errorf("render: manifest job %d: %w", i, err)
		}
		j.Dry = resolve(base, j.Dry)
		j.IR = resolve(base, j.IR)
		j.Out = resolve(base, j.Out)
	}
	return &m, nil
}

func resolve(base, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

// Batch renders jobs concurrently with at most workers in flight
// (GOMAXPROCS when workers <= 0). The first failure stops jobs that have
// not started yet. Reports are returned in job order; entries for jobs that
// did not finish are nil.
func (r *Renderer) Batch(ctx context.Context, jobs []Job, workers int) ([]*Report, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	reports := make([]*Report, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	r.log.Info("batch started", zap.Int("jobs", len(jobs)), zap.Int("workers", workers))

	for i, job := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rep, err := r.Run(gctx, job)
			if err != nil {
				return fmt.Errorf("job %d (%s): %w", i, job.Out, err)
			}
			reports[i] = rep
			return nil
		})
	}

	err := g.Wait()
	return reports, err
}
