package minigrid

// ObjectType is the type index of a world object in an encoded grid
type ObjectType int

// Type indices follow the MiniGrid encoding so that encoded grids are
// interchangeable with it. Arrow is appended after Agent.
const (
	UnseenType ObjectType = 0
	EmptyType  ObjectType = 1
	WallType   ObjectType = 2
	GoalType   ObjectType = 8
	LavaType   ObjectType = 9
	AgentType  ObjectType = 10
	ArrowType  ObjectType = 11
)

// MaxObjectType is the largest type index that can appear in an
// encoded grid
const MaxObjectType = ArrowType

// Object is anything that can occupy a Grid cell
type Object interface {
	// Type returns the type of the object as seen by the agent
	Type() ObjectType
	Color() Color

	// CanOverlap returns whether the agent can move onto the object
	CanOverlap() bool

	// Encode returns the (type, colour, state) triple of the object
	Encode() [3]int
}

// Hazard is implemented by objects which end the episode when the
// agent moves onto them
type Hazard interface {
	Object
	Hazardous() bool
}

// Wall is an impassable cell
type Wall struct{}

func (Wall) Type() ObjectType { return WallType }
func (Wall) Color() Color     { return Grey }
func (Wall) CanOverlap() bool { return false }
func (w Wall) Encode() [3]int { return [3]int{int(WallType), int(Grey), 0} }

// Goal ends the episode with a positive reward
type Goal struct{}

func (Goal) Type() ObjectType { return GoalType }
func (Goal) Color() Color     { return Green }
func (Goal) CanOverlap() bool { return true }
func (g Goal) Encode() [3]int { return [3]int{int(GoalType), int(Green), 0} }

// Lava ends the episode with zero reward
type Lava struct{}

func (Lava) Type() ObjectType { return LavaType }
func (Lava) Color() Color     { return Red }
func (Lava) CanOverlap() bool { return true }
func (Lava) Hazardous() bool  { return true }
func (l Lava) Encode() [3]int { return [3]int{int(LavaType), int(Red), 0} }

// HiddenLava behaves exactly like Lava but is seen by the agent as an
// empty cell. It is used when Arrows are the only cue to hazards.
type HiddenLava struct{}

func (HiddenLava) Type() ObjectType { return EmptyType }
func (HiddenLava) Color() Color     { return Red }
func (HiddenLava) CanOverlap() bool { return true }
func (HiddenLava) Hazardous() bool  { return true }
func (h HiddenLava) Encode() [3]int { return [3]int{int(EmptyType), 0, 0} }

// Arrow is a border tile pointing at a hazard. Its Orientation names
// the edge it sits on and its colour encodes the distance to the hazard.
type Arrow struct {
	Orientation Orientation
	Colour      Color
}

func (Arrow) Type() ObjectType { return ArrowType }
func (a Arrow) Color() Color   { return a.Colour }
func (Arrow) CanOverlap() bool { return false }

func (a Arrow) Encode() [3]int {
	return [3]int{int(ArrowType), int(a.Colour), int(a.Orientation)}
}

// isHazard returns whether o ends the episode when stepped on
func isHazard(o Object) bool {
	h, ok := o.(Hazard)
	return ok && h.Hazardous()
}
