package systems

// SystemInfo names one timed frame phase.
type SystemInfo struct {
	ID          string // perf phase key
	Name        string // display name
	Description string
}

// defaultPhases lists the frame phases in execution order. IDs match the
// telemetry phase names.
var defaultPhases = []SystemInfo{
	{ID: "input", Name: "Input", Description: "Polls control sources"},
	{ID: "dynamics", Name: "Dynamics", Description: "Forces, steering, heading and wheels"},
	{ID: "camera", Name: "Camera", Description: "Chase camera follow"},
	{ID: "telemetry", Name: "Telemetry", Description: "Window stats and trace"},
}

// SystemRegistry maps phase IDs to display metadata and keeps frame order.
type SystemRegistry struct {
	order []SystemInfo
	index map[string]int
}

// NewSystemRegistry creates a registry holding the default frame phases.
func NewSystemRegistry() *SystemRegistry {
	r := &SystemRegistry{index: make(map[string]int, len(defaultPhases))}
	for _, info := range defaultPhases {
		r.Register(info)
	}
	return r
}

// Register adds a phase, or replaces the metadata of a known ID in place.
func (r *SystemRegistry) Register(info SystemInfo) {
	if i, ok := r.index[info.ID]; ok {
		r.order[i] = info
		return
	}
	r.index[info.ID] = len(r.order)
	r.order = append(r.order, info)
}

// Get returns phase info by ID.
func (r *SystemRegistry) Get(id string) (SystemInfo, bool) {
	i, ok := r.index[id]
	if !ok {
		return SystemInfo{}, false
	}
	return r.order[i], true
}

// GetName returns the display name for a phase ID, or the ID itself.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.Get(id); ok {
		return info.Name
	}
	return id
}

// IDs returns all phase IDs in frame order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.order))
	for i, info := range r.order {
		ids[i] = info.ID
	}
	return ids
}
