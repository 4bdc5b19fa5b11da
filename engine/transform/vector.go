package transform

import "github.com/go-gl/mathgl/mgl32"

// Axis selects one component of a Vector2. Only AxisX and AxisY are valid.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// Valid reports whether a is AxisX or AxisY.
func (a Axis) Valid() bool {
	return a == AxisX || a == AxisY
}

// Vector2 is a 2D vector owned by a node. Every mutation notifies the owner so it can mark
// its cached matrix stale.
type Vector2 struct {
	v        mgl32.Vec2
	onChange func()
}

// NewVector2 creates a vector that calls onChange after every mutation. onChange may be nil.
func NewVector2(x, y float32, onChange func()) *Vector2 {
	return &Vector2{v: mgl32.Vec2{x, y}, onChange: onChange}
}

func (v *Vector2) changed() {
	if v.onChange != nil {
		v.onChange()
	}
}

// X returns the x component.
func (v *Vector2) X() float32 {
	return v.v[0]
}

// Y returns the y component.
func (v *Vector2) Y() float32 {
	return v.v[1]
}

// Axis returns the component selected by axis, or 0 for an invalid axis.
func (v *Vector2) Axis(axis Axis) float32 {
	if !axis.Valid() {
		return 0
	}
	return v.v[axis]
}

// Vec returns the components as an mgl32 vector.
func (v *Vector2) Vec() mgl32.Vec2 {
	return v.v
}

// Reset sets both components.
func (v *Vector2) Reset(x, y float32) {
	v.v = mgl32.Vec2{x, y}
	v.changed()
}

// ResetAxis sets one component. An invalid axis leaves the vector and its owner untouched.
func (v *Vector2) ResetAxis(value float32, axis Axis) {
	if !axis.Valid() {
		return
	}
	v.v[axis] = value
	v.changed()
}

// Shift adds delta to one component. An invalid axis leaves the vector and its owner untouched.
func (v *Vector2) Shift(delta float32, axis Axis) {
	if !axis.Valid() {
		return
	}
	v.v[axis] += delta
	v.changed()
}
