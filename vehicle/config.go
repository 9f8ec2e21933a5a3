// Package vehicle implements the per-frame ground vehicle dynamics model.
//
// A vehicle is a single body reduced to a ground-plane position and a yaw
// angle. Each frame the model accumulates traction, resistance and optional
// handbrake forces, integrates them with explicit Euler, applies one of two
// damping strategies, and turns the body at a rate proportional to its
// forward speed.
package vehicle

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when a Config fails validation.
var ErrInvalidConfig = errors.New("vehicle: invalid config")

// Damping selects how velocity is bled off after integration.
type Damping uint8

const (
	// DampingLateral removes a fraction of sideways slip each frame and
	// leaves forward speed untouched. Used by heavy vehicles.
	DampingLateral Damping = iota
	// DampingDownforce adds speed-dependent virtual mass and scales the
	// whole velocity by a ground friction multiplier. Used by light cars.
	DampingDownforce
)

var dampingNames = [...]string{
	DampingLateral:   "lateral",
	DampingDownforce: "downforce",
}

// String returns the YAML name of the strategy.
func (d Damping) String() string {
	if int(d) < len(dampingNames) {
		return dampingNames[d]
	}
	return fmt.Sprintf("Damping(%d)", uint8(d))
}

// ParseDamping converts a strategy name into a Damping.
func ParseDamping(s string) (Damping, error) {
	for i, name := range dampingNames {
		if name == s {
			return Damping(i), nil
		}
	}
	return 0, fmt.Errorf("unknown damping strategy %q", s)
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Damping) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseDamping(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Damping) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// Config holds the physical constants of one vehicle archetype.
// It is immutable once a Model has been built from it.
type Config struct {
	Mass              float64 `yaml:"mass" validate:"gt=0"`                    // kg
	TractionForce     float64 `yaml:"traction_force" validate:"gte=0"`         // N
	ReverseFactor     float64 `yaml:"reverse_factor" validate:"gte=0,lte=1"`   // reverse traction = TractionForce * this
	AirResistance     float64 `yaml:"air_resistance" validate:"gte=0"`         // quadratic drag coefficient
	RollingResistance float64 `yaml:"rolling_resistance" validate:"gte=0"`     // linear drag coefficient
	LateralFriction   float64 `yaml:"lateral_friction" validate:"gte=0,lte=1"` // fraction of slip removed per frame
	BrakeForce        float64 `yaml:"brake_force" validate:"gte=0"`            // N, 0 disables the handbrake
	MaxSpeed          float64 `yaml:"max_speed" validate:"gte=0"`              // m/s, 0 = uncapped
	TurningRadius     float64 `yaml:"turning_radius" validate:"gt=0"`          // m
	WheelRadius       float64 `yaml:"wheel_radius" validate:"gt=0"`            // m
	MaxSteerDeg       float64 `yaml:"max_steer_deg" validate:"gte=0,lte=90"`   // front wheel yaw at full lock
	SteeringRate      float64 `yaml:"steering_rate" validate:"gt=0"`           // normalized steering units per second
	Damping           Damping `yaml:"damping"`                                 // lateral | downforce
	DownforceCoeff    float64 `yaml:"downforce_coeff" validate:"gte=0"`        // virtual kg per (m/s)^2
	GroundFriction    float64 `yaml:"ground_friction" validate:"gte=0,lte=1"`  // per-frame velocity multiplier
}

var validate = validator.New()

// Validate reports whether the constants describe a usable vehicle.
// The returned error wraps ErrInvalidConfig.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	for _, v := range []float64{
		c.Mass, c.TractionForce, c.ReverseFactor, c.AirResistance, c.RollingResistance,
		c.LateralFriction, c.BrakeForce, c.MaxSpeed, c.TurningRadius, c.WheelRadius,
		c.MaxSteerDeg, c.SteeringRate, c.DownforceCoeff, c.GroundFriction,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite constant", ErrInvalidConfig)
		}
	}
	switch c.Damping {
	case DampingLateral:
	case DampingDownforce:
		if c.GroundFriction <= 0 {
			return fmt.Errorf("%w: downforce damping requires ground_friction > 0", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown damping %s", ErrInvalidConfig, c.Damping)
	}
	return nil
}

// MaxSteerAngle returns the front wheel yaw at full lock in radians.
func (c Config) MaxSteerAngle() float64 {
	return c.MaxSteerDeg * math.Pi / 180
}

// TerminalSpeed returns the forward speed at which full traction is balanced
// by air and rolling resistance, ignoring damping and the speed cap.
// Solves Air*v^2 + Rolling*v = TractionForce for v >= 0.
func (c Config) TerminalSpeed() float64 {
	a, b, f := c.AirResistance, c.RollingResistance, c.TractionForce
	if f <= 0 {
		return 0
	}
	if a == 0 {
		if b == 0 {
			return math.Inf(1)
		}
		return f / b
	}
	return (-b + math.Sqrt(b*b+4*a*f)) / (2 * a)
}

// LightCar returns the light archetype: full-strength reverse, downforce
// damping, no handbrake and no speed cap.
func LightCar() Config {
	return Config{
		Mass:              610,
		TractionForce:     16000,
		ReverseFactor:     1.0,
		AirResistance:     2.5,
		RollingResistance: 30,
		LateralFriction:   0,
		BrakeForce:        0,
		MaxSpeed:          0,
		TurningRadius:     5,
		WheelRadius:       0.33,
		MaxSteerDeg:       30,
		SteeringRate:      2.5,
		Damping:           DampingDownforce,
		DownforceCoeff:    0.01,
		GroundFriction:    0.99,
	}
}

// HeavyTruck returns the heavy archetype: half-strength reverse, handbrake,
// lateral slip damping and a hard speed cap.
func HeavyTruck() Config {
	return Config{
		Mass:              3000,
		TractionForce:     24000,
		ReverseFactor:     0.5,
		AirResistance:     1.2,
		RollingResistance: 20,
		LateralFriction:   0.2,
		BrakeForce:        12000,
		MaxSpeed:          30,
		TurningRadius:     9,
		WheelRadius:       0.5,
		MaxSteerDeg:       25,
		SteeringRate:      1.5,
		Damping:           DampingLateral,
	}
}
