// Copyright © 2024 The myphysicslab-sub011 Authors.
// Use is governed by a BSD-style license found in the LICENSE file.

package scenario

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/myphysicslab/myphysicslab-sub011/solver"
)

// TestLoadRoundTripsYAML exercises Load against a minimal document
// covering every Spec/BodySpec/JointSpec field, the scenario package's
// counterpart to a config-file round-trip test.
func TestLoadRoundTripsYAML(t *testing.T) {
	doc := `
name: two-block-joint
gravity: 9.8
damping: 0.1
collision_handling: SERIAL_GROUPED
dist_tol: 0.02
velocity_tol: 0.25
accuracy: 0.2
bodies:
  - name: a
    shape: square
    size: 0.5
    mass: 2
    x: 1
    vx: 0.5
  - name: b
    shape: disc
    size: 0.3
    mass: 1
    fixed: true
joints:
  - body1: a
    body2: b
    attach1x: 0.5
    attach2x: -0.3
    normalx: 1
`
	sp, err := Load(strings.NewReader(doc))
	require.NoError(t, err)
	require.Equal(t, "two-block-joint", sp.Name)
	require.Equal(t, 9.8, sp.Gravity)
	require.Equal(t, 0.1, sp.Damping)
	require.Len(t, sp.Bodies, 2)
	require.Equal(t, "square", sp.Bodies[0].Shape)
	require.Equal(t, 1.0, sp.Bodies[0].X)
	require.True(t, sp.Bodies[1].Fixed)
	require.Len(t, sp.Joints, 1)
	require.Equal(t, "a", sp.Joints[0].Body1)
	require.Equal(t, 1.0, sp.Joints[0].NormalX)

	mode, err := sp.collisionMode()
	require.NoError(t, err)
	require.Equal(t, solver.SERIAL_GROUPED, mode)
	require.Equal(t, 0.02, sp.DistTol)
}

func TestLoadRejectsUnknownCollisionHandling(t *testing.T) {
	doc := "name: bad\ncollision_handling: NOT_A_MODE\n"
	sp, err := Load(strings.NewReader(doc))
	require.NoError(t, err)
	_, err = sp.collisionMode()
	require.Error(t, err)
}

func TestLoadPropagatesDecodeError(t *testing.T) {
	_, err := Load(strings.NewReader("not: [valid"))
	require.Error(t, err)
}

// TestBuildSquareOnFloorBouncesElastically exercises §8 scenario 1: a
// unit square dropped from rest onto a fixed floor with full
// elasticity keeps its total energy within 1e-3 over 200 steps of 0.01
// and stays above the floor.
func TestBuildSquareOnFloorBouncesElastically(t *testing.T) {
	built, err := Build(SquareOnFloor())
	require.NoError(t, err)

	s := built.Advance.Sim
	e0 := s.TotalEnergy()

	for i := 0; i < 200; i++ {
		_, err := built.Advance.Step(0.01)
		require.NoError(t, err)
	}

	e1 := s.TotalEnergy()
	require.InDelta(t, e0, e1, 1e-3, "energy should be conserved across elastic bounces")

	block := built.Bodies["block"]
	require.Greater(t, block.Position().Y, 0.0, "block should not have fallen through the floor")
}

// TestBuildTwoDiscsHeadOnExchangesVelocity exercises §8 scenario 2:
// equal-mass discs in a perfectly elastic head-on collision exchange
// their velocities.
func TestBuildTwoDiscsHeadOnExchangesVelocity(t *testing.T) {
	built, err := Build(TwoDiscsHeadOn())
	require.NoError(t, err)

	left, right := built.Bodies["left"], built.Bodies["right"]

	var collided bool
	for i := 0; i < 500 && !collided; i++ {
		report, err := built.Advance.Step(0.01)
		require.NoError(t, err)
		if report.CollisionsHandled > 0 {
			collided = true
		}
	}
	require.True(t, collided, "discs should have collided within the simulated window")
	require.InDelta(t, -1.0, left.LinearVelocity().X, 0.5, "left disc should reverse toward -1 m/s")
	require.InDelta(t, 1.0, right.LinearVelocity().X, 0.5, "right disc should reverse toward +1 m/s")
}

// TestBuildPendulumConservesEnergy exercises §8 scenario 4: a bob held
// to a circular path by a PathJoint swings without the path itself
// doing any work, so total mechanical energy stays constant.
func TestBuildPendulumConservesEnergy(t *testing.T) {
	built, err := BuildPendulum(2)
	require.NoError(t, err)

	s := built.Advance.Sim
	e0 := s.TotalEnergy()
	for i := 0; i < 50; i++ {
		_, err := built.Advance.Step(0.01)
		require.NoError(t, err)
	}
	e1 := s.TotalEnergy()
	require.InDelta(t, e0, e1, 1e-2, "pendulum energy should be conserved by a workless path constraint")

	bob := built.Bodies["bob"]
	r := bob.Position().Length()
	require.InDelta(t, 2.0, r, 0.05, "bob should stay on its circular path")
}

// TestBuildBlockStackOnWallStaysAtRest exercises §8 scenario 3: blocks
// stacked at rest on a floor under gravity stay essentially motionless
// once the simultaneous solver resolves their contacts.
func TestBuildBlockStackOnWallStaysAtRest(t *testing.T) {
	built, err := Build(BlockStackOnWall())
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		_, err := built.Advance.Step(0.01)
		require.NoError(t, err)
	}

	for _, name := range []string{"block1", "block2", "block3"} {
		b := built.Bodies[name]
		require.Less(t, math.Abs(b.LinearVelocity().Y), 1.0, "%s should have settled, not be in free fall", name)
	}
}
