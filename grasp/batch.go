package grasp

import (
	"context"
	"runtime"

	"go.viam.com/rdk/spatialmath"
	"golang.org/x/sync/errgroup"
)

// Request is one independent generation request.
type Request struct {
	Name       string
	ObjectPose spatialmath.Pose
	Config     Config
}

// GenerateBatch runs independent requests concurrently, one worker per request and at most
// workers at a time (GOMAXPROCS when workers <= 0). Results are in request order. The first
// failure is returned and requests not yet started are skipped.
func (g *Generator) GenerateBatch(ctx context.Context, requests []Request, workers int) ([][]Candidate, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	results := make([][]Candidate, len(requests))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i := range requests {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			// each worker owns its copy of the configuration
			cfg := requests[i].Config
			candidates, err := generate(g.policy, requests[i].ObjectPose, &cfg)
			if err != nil {
				g.logger.Errorw("grasp generation failed", "request", requests[i].Name, "error", err)
				return err
			}
			g.logger.Debugw("generated grasps", "request", requests[i].Name, "count", len(candidates))
			results[i] = candidates
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
