package telemetry

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/drive/vehicle"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Vehicle roles in a snapshot.
const (
	RolePlayer  = "player"
	RoleTraffic = "traffic"
)

// Snapshot holds every vehicle's state so a session can be resumed.
type Snapshot struct {
	Version int     `json:"version"`
	Tick    int32   `json:"tick"`
	SimTime float64 `json:"sim_time"`

	Vehicles []VehicleState `json:"vehicles"`
}

// VehicleState holds one vehicle's complete state.
type VehicleState struct {
	Role      string `json:"role"`
	Slot      int    `json:"slot"` // traffic slot; unused for the player
	Archetype string `json:"archetype"`

	// Pose and movement
	X    float64 `json:"x"`
	Z    float64 `json:"z"`
	Yaw  float64 `json:"yaw"`
	VelX float64 `json:"vel_x"`
	VelZ float64 `json:"vel_z"`

	// Steering and wheels
	Steering   float64 `json:"steering"`
	SteerAngle float64 `json:"steer_angle"`
	WheelSpin  float64 `json:"wheel_spin"`

	// Trip stats
	Distance float64 `json:"distance"`
	TopSpeed float64 `json:"top_speed"`
}

// NewVehicleState captures a vehicle for a snapshot.
func NewVehicleState(role string, slot int, archetype string, s vehicle.State, distance, topSpeed float64) VehicleState {
	return VehicleState{
		Role:       role,
		Slot:       slot,
		Archetype:  archetype,
		X:          s.Position.X,
		Z:          s.Position.Z,
		Yaw:        s.Yaw,
		VelX:       s.Velocity.X,
		VelZ:       s.Velocity.Z,
		Steering:   s.Steering,
		SteerAngle: s.SteerAngle,
		WheelSpin:  s.WheelSpin,
		Distance:   distance,
		TopSpeed:   topSpeed,
	}
}

// State rebuilds the simulation state on the ground plane.
func (v VehicleState) State() vehicle.State {
	return vehicle.State{
		Position:   r3.Vec{X: v.X, Z: v.Z},
		Yaw:        v.Yaw,
		Velocity:   r3.Vec{X: v.VelX, Z: v.VelZ},
		Steering:   v.Steering,
		SteerAngle: v.SteerAngle,
		WheelSpin:  v.WheelSpin,
	}
}

// Player returns the player vehicle entry, if present.
func (s *Snapshot) Player() (VehicleState, bool) {
	for _, v := range s.Vehicles {
		if v.Role == RolePlayer {
			return v, true
		}
	}
	return VehicleState{}, false
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("snapshot_%d.json", snapshot.Tick))

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d not supported (want %d)", snapshot.Version, SnapshotVersion)
	}
	for i, v := range snapshot.Vehicles {
		if math.IsNaN(v.Steering) || v.Steering < -1 || v.Steering > 1 {
			return nil, fmt.Errorf("snapshot vehicle %d: steering %v outside [-1, 1]", i, v.Steering)
		}
	}

	return &snapshot, nil
}
