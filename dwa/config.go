package dwa

import (
	"math"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	goutils "go.viam.com/utils"
)

// Config holds the kinematic limits, search resolutions, and cost gains for
// the planner. It is immutable after construction and shared read-only by the
// dynamic window, the rollout, the cost evaluator, and the planner.
type Config struct {
	MaxSpeed        float64 `json:"max_speed"`          // m/s
	MinSpeed        float64 `json:"min_speed"`          // m/s
	MaxYawRate      float64 `json:"max_yaw_rate"`       // rad/s
	MaxAccel        float64 `json:"max_accel"`          // m/s^2
	MaxDeltaYawRate float64 `json:"max_delta_yaw_rate"` // rad/s^2

	VResolution       float64 `json:"v_resolution"`        // m/s
	YawRateResolution float64 `json:"yaw_rate_resolution"` // rad/s

	DT          float64 `json:"dt"`           // integration step, seconds
	PredictTime float64 `json:"predict_time"` // rollout horizon, seconds

	ToGoalCostGain   float64 `json:"to_goal_cost_gain"`
	SpeedCostGain    float64 `json:"speed_cost_gain"`
	ObstacleCostGain float64 `json:"obstacle_cost_gain"`

	// RobotStuckFlagCons is the velocity magnitude below which the robot and
	// its best candidate are considered stuck, triggering the escape maneuver.
	RobotStuckFlagCons float64 `json:"robot_stuck_flag_cons"` // m/s
	RobotRadius        float64 `json:"robot_radius"`          // m, collision check

	// SearchWorkers partitions the velocity axis of the window search across
	// this many goroutines. Zero or one means a sequential search. Results are
	// identical either way.
	SearchWorkers int `json:"search_workers,omitempty"`
}

// DefaultConfig returns a config with the stock limits for a small indoor
// differential-drive base.
func DefaultConfig() *Config {
	return &Config{
		MaxSpeed:           1.0,
		MinSpeed:           -0.5,
		MaxYawRate:         40.0 * math.Pi / 180.0,
		MaxAccel:           0.2,
		MaxDeltaYawRate:    40.0 * math.Pi / 180.0,
		VResolution:        0.01,
		YawRateResolution:  0.1 * math.Pi / 180.0,
		DT:                 0.1,
		PredictTime:        3.0,
		ToGoalCostGain:     0.15,
		SpeedCostGain:      1.0,
		ObstacleCostGain:   1.0,
		RobotStuckFlagCons: 0.001,
		RobotRadius:        0.5,
	}
}

// Validate rejects configs whose values would break downstream arithmetic.
func (cfg *Config) Validate(path string) error {
	var err error
	if cfg.MinSpeed > cfg.MaxSpeed {
		err = multierr.Append(err, goutils.NewConfigValidationError(path,
			errors.Errorf("min_speed (%v) cannot exceed max_speed (%v)", cfg.MinSpeed, cfg.MaxSpeed)))
	}
	if cfg.MaxYawRate < 0 {
		err = multierr.Append(err, goutils.NewConfigValidationError(path, errors.New("max_yaw_rate cannot be negative")))
	}
	if cfg.MaxAccel < 0 {
		err = multierr.Append(err, goutils.NewConfigValidationError(path, errors.New("max_accel cannot be negative")))
	}
	if cfg.MaxDeltaYawRate < 0 {
		err = multierr.Append(err, goutils.NewConfigValidationError(path, errors.New("max_delta_yaw_rate cannot be negative")))
	}
	if cfg.VResolution <= 0 {
		err = multierr.Append(err, goutils.NewConfigValidationError(path, errors.New("v_resolution must be positive")))
	}
	if cfg.YawRateResolution <= 0 {
		err = multierr.Append(err, goutils.NewConfigValidationError(path, errors.New("yaw_rate_resolution must be positive")))
	}
	if cfg.DT <= 0 {
		err = multierr.Append(err, goutils.NewConfigValidationError(path, errors.New("dt must be positive")))
	}
	if cfg.PredictTime <= 0 {
		err = multierr.Append(err, goutils.NewConfigValidationError(path, errors.New("predict_time must be positive")))
	}
	if cfg.RobotRadius <= 0 {
		err = multierr.Append(err, goutils.NewConfigValidationError(path, errors.New("robot_radius must be positive")))
	}
	if cfg.SearchWorkers < 0 {
		err = multierr.Append(err, goutils.NewConfigValidationError(path, errors.New("search_workers cannot be negative")))
	}
	return err
}
