package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestForces(t *testing.T) {
	tests := []struct {
		name     string
		force    Force
		velocity mgl32.Vec2
		dt       float32
		want     mgl32.Vec2
	}{
		{
			name:     "net force keeps velocity",
			force:    NetForce{},
			velocity: mgl32.Vec2{3, -2},
			dt:       1,
			want:     mgl32.Vec2{3, -2},
		},
		{
			name:     "push adds scaled quantity",
			force:    Push(mgl32.Vec2{10, 0}, nil),
			velocity: mgl32.Vec2{1, 1},
			dt:       0.5,
			want:     mgl32.Vec2{6, 1},
		},
		{
			name:     "pull subtracts scaled quantity",
			force:    Pull(mgl32.Vec2{0, 4}, nil),
			velocity: mgl32.Vec2{1, 1},
			dt:       0.25,
			want:     mgl32.Vec2{1, 0},
		},
		{
			name:     "resist slows toward zero",
			force:    Resist(mgl32.Vec2{2, 2}, nil),
			velocity: mgl32.Vec2{5, -5},
			dt:       1,
			want:     mgl32.Vec2{3, -3},
		},
		{
			name:     "resist never crosses zero",
			force:    Resist(mgl32.Vec2{10, 10}, nil),
			velocity: mgl32.Vec2{5, -5},
			dt:       1,
			want:     mgl32.Vec2{0, 0},
		},
		{
			name:     "resist acts after the chain",
			force:    Resist(mgl32.Vec2{1, 0}, Push(mgl32.Vec2{4, 0}, nil)),
			velocity: mgl32.Vec2{0, 0},
			dt:       1,
			want:     mgl32.Vec2{3, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.force.Apply(tt.velocity, tt.dt)
			assert.InDelta(t, tt.want[0], got[0], 1e-6)
			assert.InDelta(t, tt.want[1], got[1], 1e-6)
		})
	}
}

func TestPullSubtractsFromVelocity(t *testing.T) {
	q := mgl32.Vec2{3, -2}
	v := mgl32.Vec2{1, 1}

	pulled := Pull(q, nil).Apply(v, 0.5)
	assert.Equal(t, mgl32.Vec2{-0.5, 2}, pulled)
	assert.Equal(t, Push(q.Mul(-1), nil).Apply(v, 0.5), pulled)
}
