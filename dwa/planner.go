package dwa

import (
	"context"
	"math"
	"sync"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	goutils "go.viam.com/utils"
)

// Planner searches the dynamic window for the minimum-cost velocity command.
// It is stateless per call and safe for concurrent use.
type Planner struct {
	cfg    *Config
	logger golog.Logger
}

// NewPlanner validates the config and returns a planner.
func NewPlanner(cfg *Config, logger golog.Logger) (*Planner, error) {
	if cfg == nil {
		return nil, errors.New("planner requires a config")
	}
	if err := cfg.Validate(""); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = golog.Global()
	}
	return &Planner{cfg: cfg, logger: logger}, nil
}

// candidate is a scored (v, w) sample from the dynamic window.
type candidate struct {
	cmd  Command
	traj Trajectory
	cost float64
}

// Plan computes the dynamic window for the current state, rolls out and scores
// every sampled command, and returns the minimum-cost command together with
// its predicted trajectory. Ties prefer the later-enumerated candidate; a
// window with all candidates in collision still selects the last one rather
// than failing. If the window admits no candidates at all, the zero command
// and a single-point trajectory are returned.
func (p *Planner) Plan(ctx context.Context, s State, goal r2.Point, obstacles []r2.Point) (Command, Trajectory, error) {
	if err := ctx.Err(); err != nil {
		return Command{}, nil, err
	}

	w := ComputeWindow(s, p.cfg)
	vs := sampleAxis(w.VMin, w.VMax, p.cfg.VResolution)
	ws := sampleAxis(w.WMin, w.WMax, p.cfg.YawRateResolution)
	if len(vs) == 0 || len(ws) == 0 {
		p.logger.Debugw("dynamic window is empty, returning zero command",
			"vMin", w.VMin, "vMax", w.VMax, "wMin", w.WMin, "wMax", w.WMax)
		return Command{}, Trajectory{s}, nil
	}

	var best candidate
	if p.cfg.SearchWorkers > 1 {
		best = p.searchParallel(s, goal, obstacles, vs, ws, p.cfg.SearchWorkers)
	} else {
		best = p.searchStripe(s, goal, obstacles, vs, ws)
	}
	return best.cmd, best.traj, nil
}

// searchStripe scans the given velocity samples sequentially and keeps the
// minimum-cost candidate. The comparison is ">=" so later ties override
// earlier ones; combined with stripe-ordered merging this keeps the parallel
// search bit-identical to a full sequential scan.
func (p *Planner) searchStripe(s State, goal r2.Point, obstacles []r2.Point, vs, ws []float64) candidate {
	best := candidate{cmd: Command{}, traj: Trajectory{s}, cost: math.Inf(1)}
	for _, v := range vs {
		for _, w := range ws {
			cmd := Command{LinVel: v, AngVel: w}
			traj := PredictTrajectory(s, cmd, p.cfg)
			cost := evaluate(traj, goal, obstacles, p.cfg)
			if best.cost >= cost {
				best = candidate{cmd: cmd, traj: traj, cost: cost}
				if math.Abs(v) < p.cfg.RobotStuckFlagCons && math.Abs(s.LinVel) < p.cfg.RobotStuckFlagCons {
					// Both the candidate and the robot are effectively
					// stationary; force a turn so the robot cannot deadlock
					// facing an obstacle. The trajectory is left as rolled out.
					best.cmd.AngVel = -p.cfg.MaxDeltaYawRate
				}
			}
		}
	}
	return best
}

// searchParallel partitions the velocity axis into contiguous stripes, scans
// each in its own goroutine, and merges the stripe-local bests in stripe order
// under the same ">=" rule as searchStripe.
func (p *Planner) searchParallel(s State, goal r2.Point, obstacles []r2.Point, vs, ws []float64, workers int) candidate {
	if workers > len(vs) {
		workers = len(vs)
	}
	bests := make([]candidate, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		lo := i * len(vs) / workers
		hi := (i + 1) * len(vs) / workers
		stripe := i
		wg.Add(1)
		goutils.PanicCapturingGo(func() {
			defer wg.Done()
			bests[stripe] = p.searchStripe(s, goal, obstacles, vs[lo:hi], ws)
		})
	}
	wg.Wait()

	best := bests[0]
	for _, b := range bests[1:] {
		if best.cost >= b.cost {
			best = b
		}
	}
	return best
}
