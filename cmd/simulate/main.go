// Package main runs the dynamic-window planner in a closed loop against a
// static obstacle field, feeding obstacle observations into a probability grid
// along the way. It stands in for a real base driver: each tick it plans a
// command, applies it through the motion model, and stops once the robot is
// within its collision radius of the goal.
package main

import (
	"context"
	"encoding/json"
	"math"
	"os"
	"strconv"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"go.viam.com/utils"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"go.viam.com/localnav/dwa"
	"go.viam.com/localnav/probgrid"
)

var logger = golog.NewDevelopmentLogger("simulate")

func main() {
	utils.ContextualMain(mainWithArgs, logger)
}

// Arguments for the command.
type Arguments struct {
	ConfigFile string `flag:"config,usage=scene config file (JSON)"`
	GoalX      string `flag:"goal-x,default=2.0,usage=goal x coordinate (m)"`
	GoalY      string `flag:"goal-y,default=1.5,usage=goal y coordinate (m)"`
	MaxTicks   int    `flag:"max-ticks,default=1000,usage=give up after this many control ticks"`
	PlotFile   string `flag:"plot,usage=write a PNG of the run to this path"`
}

// sceneConfig is the on-disk shape of a simulation scene. Missing sections
// fall back to the package defaults.
type sceneConfig struct {
	Planner   *dwa.Config      `json:"planner,omitempty"`
	Grid      *probgrid.Config `json:"grid,omitempty"`
	Obstacles [][]float64      `json:"obstacles,omitempty"`
}

func mainWithArgs(ctx context.Context, args []string, logger golog.Logger) error {
	var argsParsed Arguments
	if err := utils.ParseFlags(args, &argsParsed); err != nil {
		return err
	}
	gx, err := strconv.ParseFloat(argsParsed.GoalX, 64)
	if err != nil {
		return errors.Wrap(err, "invalid goal-x")
	}
	gy, err := strconv.ParseFloat(argsParsed.GoalY, 64)
	if err != nil {
		return errors.Wrap(err, "invalid goal-y")
	}

	scene, err := loadScene(argsParsed.ConfigFile)
	if err != nil {
		return err
	}

	planner, err := dwa.NewPlanner(scene.Planner, logger)
	if err != nil {
		return err
	}
	grid, err := probgrid.New(scene.Grid)
	if err != nil {
		return err
	}

	obstacles := make([]r2.Point, 0, len(scene.Obstacles))
	for _, ob := range scene.Obstacles {
		if len(ob) != 2 {
			return errors.Errorf("obstacle %v must be an [x, y] pair", ob)
		}
		obstacles = append(obstacles, r2.Point{X: ob[0], Y: ob[1]})
	}

	return runSimulation(ctx, logger, planner, grid, scene.Planner, obstacles,
		r2.Point{X: gx, Y: gy}, argsParsed.MaxTicks, argsParsed.PlotFile)
}

func loadScene(path string) (*sceneConfig, error) {
	scene := &sceneConfig{
		// the stock scene from the planner's reference environment
		Obstacles: [][]float64{{0, 2}, {4, 2}},
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "cannot read scene config")
		}
		if err := json.Unmarshal(data, scene); err != nil {
			return nil, errors.Wrap(err, "cannot parse scene config")
		}
	}
	if scene.Planner == nil {
		scene.Planner = dwa.DefaultConfig()
	}
	if scene.Grid == nil {
		scene.Grid = probgrid.DefaultConfig()
	}
	return scene, nil
}

func runSimulation(
	ctx context.Context,
	logger golog.Logger,
	planner *dwa.Planner,
	grid *probgrid.Grid,
	cfg *dwa.Config,
	obstacles []r2.Point,
	goal r2.Point,
	maxTicks int,
	plotFile string,
) error {
	state := dwa.State{Heading: math.Pi / 8.0}
	traversed := dwa.Trajectory{state}
	var predicted dwa.Trajectory
	reached := false

	for tick := 0; tick < maxTicks; tick++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		cmd, traj, err := planner.Plan(ctx, state, goal, obstacles)
		if err != nil {
			return err
		}
		predicted = traj
		state = dwa.Motion(state, cmd, cfg.DT)
		traversed = append(traversed, state)

		for _, ob := range obstacles {
			grid.Update(probgrid.Point{Row: int(math.Round(ob.Y)), Col: int(math.Round(ob.X))})
		}

		if tick%10 == 0 {
			logger.Infow("tick",
				"tick", tick,
				"x", state.X, "y", state.Y, "heading", state.Heading,
				"v", cmd.LinVel, "w", cmd.AngVel,
				"hottest", grid.TopK(3))
		}

		if math.Hypot(state.X-goal.X, state.Y-goal.Y) <= cfg.RobotRadius {
			logger.Infow("goal reached", "ticks", tick+1, "x", state.X, "y", state.Y)
			reached = true
			break
		}
	}

	if plotFile != "" {
		if err := savePlot(plotFile, traversed, predicted, obstacles, goal); err != nil {
			return err
		}
		logger.Infow("wrote plot", "path", plotFile)
	}
	if !reached {
		return errors.Errorf("goal not reached within %d ticks", maxTicks)
	}
	return nil
}

func savePlot(path string, traversed, predicted dwa.Trajectory, obstacles []r2.Point, goal r2.Point) error {
	p := plot.New()
	p.Title.Text = "dynamic window simulation"
	p.X.Label.Text = "x (m)"
	p.Y.Label.Text = "y (m)"

	trajXYs := func(t dwa.Trajectory) plotter.XYs {
		xys := make(plotter.XYs, len(t))
		for i, s := range t {
			xys[i].X, xys[i].Y = s.X, s.Y
		}
		return xys
	}

	traversedLine, err := plotter.NewLine(trajXYs(traversed))
	if err != nil {
		return err
	}
	predictedLine, err := plotter.NewLine(trajXYs(predicted))
	if err != nil {
		return err
	}
	predictedLine.LineStyle.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}

	obstacleXYs := make(plotter.XYs, len(obstacles))
	for i, ob := range obstacles {
		obstacleXYs[i].X, obstacleXYs[i].Y = ob.X, ob.Y
	}
	obstacleScatter, err := plotter.NewScatter(obstacleXYs)
	if err != nil {
		return err
	}
	goalScatter, err := plotter.NewScatter(plotter.XYs{{X: goal.X, Y: goal.Y}})
	if err != nil {
		return err
	}

	p.Add(traversedLine, predictedLine, obstacleScatter, goalScatter)
	return p.Save(6*vg.Inch, 6*vg.Inch, path)
}
