package menu

import (
	"errors"

	"github.com/fastxteam/fastx-tui/internal/interfaces"
)

// Recorder wraps a Graph and implements interfaces.MenuRegisterer, tracking
// every ID a single plugin's Register call successfully contributes so the
// caller (the Plugin Registry) can populate that plugin's registered_ids
// for clean removal later (§4.3). Collisions — an ID already present in the
// graph — are not propagated as a Register error; they're recorded so the
// registry can log them and continue the plugin's remaining calls, exactly
// matching §4.3's ID collision policy.
type Recorder struct {
	graph      *Graph
	recorded   []string
	collisions []string
}

// NewRecorder creates a Recorder over graph for one plugin's Register call.
func NewRecorder(graph *Graph) *Recorder {
	return &Recorder{graph: graph}
}

func (r *Recorder) RegisterNode(spec interfaces.MenuNodeSpec) error {
	node := MenuNode{
		ID:          spec.ID,
		Name:        spec.Name,
		Description: spec.Description,
		Icon:        spec.Icon,
		Kind:        KindSub,
	}
	err := r.graph.RegisterNode(node)
	if errors.Is(err, ErrDuplicateID) {
		r.collisions = append(r.collisions, spec.ID)
		return nil
	}
	if err != nil {
		return err
	}
	r.recorded = append(r.recorded, spec.ID)
	return nil
}

func (r *Recorder) RegisterAction(spec interfaces.ActionItemSpec) error {
	action := ActionItem{
		ID:             spec.ID,
		Name:           spec.Name,
		Description:    spec.Description,
		Icon:           spec.Icon,
		Kind:           spec.Kind,
		Payload:        spec.Payload,
		TimeoutSeconds: spec.TimeoutSeconds,
		Enabled:        spec.Enabled,
	}
	err := r.graph.RegisterAction(action)
	if errors.Is(err, ErrDuplicateID) {
		r.collisions = append(r.collisions, spec.ID)
		return nil
	}
	if err != nil {
		return err
	}
	r.recorded = append(r.recorded, spec.ID)
	return nil
}

func (r *Recorder) AddChild(parentID, childID string) error {
	return r.graph.AddChild(parentID, childID)
}

// Recorded returns the IDs this plugin successfully registered, in call
// order — exactly the set the registry stores as registered_ids.
func (r *Recorder) Recorded() []string {
	out := make([]string, len(r.recorded))
	copy(out, r.recorded)
	return out
}

// Collisions returns IDs the plugin attempted to register that were
// already present in the graph.
func (r *Recorder) Collisions() []string {
	out := make([]string, len(r.collisions))
	copy(out, r.collisions)
	return out
}

var _ interfaces.MenuRegisterer = (*Recorder)(nil)
