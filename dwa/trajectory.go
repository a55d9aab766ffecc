package dwa

// Trajectory is the ordered sequence of states visited when a command is held
// over the prediction horizon, beginning with the rollout's initial state.
// It is immutable once produced.
type Trajectory []State

// Last returns the trajectory's final state.
func (t Trajectory) Last() State {
	return t[len(t)-1]
}

// PredictTrajectory forward-simulates a candidate command from the given state
// until the accumulated simulated time exceeds the prediction horizon. The
// start state is copied, never mutated, so rollouts are independent of the
// caller's state and of each other.
func PredictTrajectory(start State, cmd Command, cfg *Config) Trajectory {
	traj := make(Trajectory, 0, int(cfg.PredictTime/cfg.DT)+2)
	traj = append(traj, start)
	s := start
	for elapsed := 0.0; elapsed <= cfg.PredictTime; elapsed += cfg.DT {
		s = Motion(s, cmd, cfg.DT)
		traj = append(traj, s)
	}
	return traj
}
