package dwa

import (
	"math"

	"github.com/golang/geo/r2"
)

// goalHeadingCost is the absolute angle between the trajectory's final heading
// and the bearing from its final position to the goal, wrapped into (-pi, pi].
// Zero when perfectly aligned, pi when facing directly away.
func goalHeadingCost(traj Trajectory, goal r2.Point) float64 {
	last := traj.Last()
	bearing := math.Atan2(goal.Y-last.Y, goal.X-last.X)
	diff := bearing - last.Heading
	return math.Abs(math.Atan2(math.Sin(diff), math.Cos(diff)))
}

// speedCost penalizes terminal speeds below the speed limit.
func speedCost(traj Trajectory, cfg *Config) float64 {
	return cfg.MaxSpeed - traj.Last().LinVel
}

// obstacleCost returns +Inf if any trajectory sample comes within the robot
// radius of any obstacle, vetoing the candidate outright. Otherwise it is the
// reciprocal of the minimum clearance over every (sample, obstacle) pair, so
// tighter passes cost more. An empty obstacle set costs nothing.
func obstacleCost(traj Trajectory, obstacles []r2.Point, cfg *Config) float64 {
	minDist := math.Inf(1)
	for _, s := range traj {
		for _, ob := range obstacles {
			d := math.Hypot(s.X-ob.X, s.Y-ob.Y)
			if d <= cfg.RobotRadius {
				return math.Inf(1)
			}
			if d < minDist {
				minDist = d
			}
		}
	}
	if math.IsInf(minDist, 1) {
		return 0
	}
	return 1.0 / minDist
}

// evaluate combines the three cost terms with the configured gains. Any
// infinite term makes the total infinite.
func evaluate(traj Trajectory, goal r2.Point, obstacles []r2.Point, cfg *Config) float64 {
	return cfg.ToGoalCostGain*goalHeadingCost(traj, goal) +
		cfg.SpeedCostGain*speedCost(traj, cfg) +
		cfg.ObstacleCostGain*obstacleCost(traj, obstacles, cfg)
}
