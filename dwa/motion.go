// Package dwa implements a dynamic-window-approach local planner for
// differential-drive-like bases. Given the current robot state, a goal point,
// and a set of point obstacles, the planner samples the admissible velocity
// window, forward-simulates every candidate command, and returns the one with
// the lowest combined goal-heading, speed, and obstacle-clearance cost.
package dwa

import "math"

// State is a snapshot of a robot pose and velocity in world coordinates.
type State struct {
	X       float64 `json:"x"`       // meters
	Y       float64 `json:"y"`       // meters
	Heading float64 `json:"heading"` // radians
	LinVel  float64 `json:"lin_vel"` // m/s
	AngVel  float64 `json:"ang_vel"` // rad/s
}

// Command is a (linear velocity, yaw rate) pair to hold for one control period.
type Command struct {
	LinVel float64 // m/s
	AngVel float64 // rad/s
}

// Motion advances a state by one time step under the given command and returns
// the result. The heading update is applied before the position integration;
// the rollout relies on this first-order convention and it must not be
// reordered. The state's velocity fields are overwritten with the command.
func Motion(s State, cmd Command, dt float64) State {
	s.Heading += cmd.AngVel * dt
	s.X += cmd.LinVel * math.Cos(s.Heading) * dt
	s.Y += cmd.LinVel * math.Sin(s.Heading) * dt
	s.LinVel = cmd.LinVel
	s.AngVel = cmd.AngVel
	return s
}
