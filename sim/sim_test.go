// Copyright © 2024 The myphysicslab-sub011 Authors.
// Use is governed by a BSD-style license found in the LICENSE file.

package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/myphysicslab/myphysicslab-sub011/math2d"
	"github.com/myphysicslab/myphysicslab-sub011/rigidbody"
)

func newFallingBlock(name string, mass float64) *rigidbody.Polygon {
	poly := rigidbody.NewPolygon(name)
	a := poly.AddVertex(math2d.New(-0.5, -0.5))
	b := poly.AddVertex(math2d.New(0.5, -0.5))
	c := poly.AddVertex(math2d.New(0.5, 0.5))
	d := poly.AddVertex(math2d.New(-0.5, 0.5))
	poly.AddStraightEdge(a, b, false)
	poly.AddStraightEdge(b, c, false)
	poly.AddStraightEdge(c, d, false)
	poly.AddStraightEdge(d, a, false)
	poly.SetMass(mass, mass/6)
	return poly
}

func TestVarsListSequenceBumpsOnDiscontinuousWrite(t *testing.T) {
	vl := NewVarsList(1)
	require.EqualValues(t, 0, vl.Seq(0))
	vl.SetContinuous(0, 1)
	require.EqualValues(t, 0, vl.Seq(0))
	vl.SetDiscontinuous(0, 2)
	require.EqualValues(t, 1, vl.Seq(0))
	require.Equal(t, 2.0, vl.Get(0))
}

func TestImpulseSimEvaluateGravityOnly(t *testing.T) {
	s := NewImpulseSim(NewConfig())
	s.Gravity = 10
	s.AddBody(newFallingBlock("block", 2))

	vars := s.Vars().Values()
	change := make([]float64, len(vars))
	require.NoError(t, s.Evaluate(vars, change, 0))

	require.Equal(t, vars[1], change[0]) // x' = vx
	require.Equal(t, 0.0, change[1])     // vx', no horizontal force
	require.Equal(t, vars[3], change[2]) // y' = vy
	require.Equal(t, -10.0, change[3])   // vy' = -g
	require.Equal(t, 1.0, change[s.Vars().TimeIndex()])
}

func TestImpulseSimEvaluateSkipsFixedBody(t *testing.T) {
	s := NewImpulseSim(NewConfig())
	s.Gravity = 10
	floor := newFallingBlock("floor", 1)
	floor.SetMass(math.Inf(1), math.Inf(1))
	s.AddBody(floor)

	vars := s.Vars().Values()
	change := make([]float64, len(vars))
	require.NoError(t, s.Evaluate(vars, change, 0))
	for i := 0; i < 6; i++ {
		require.Equal(t, 0.0, change[i])
	}
}

func TestImpulseSimModifyObjectsRoundTrip(t *testing.T) {
	s := NewImpulseSim(NewConfig())
	s.AddBody(newFallingBlock("a", 1))

	o := BodyIndex(0)
	s.Vars().SetContinuous(o+0, 3)
	s.Vars().SetContinuous(o+2, 4)
	s.Vars().SetContinuous(o+4, math.Pi/2)
	s.ModifyObjects()

	pos := s.Bodies()[0].Position()
	require.InDelta(t, 3, pos.X, 1e-12)
	require.InDelta(t, 4, pos.Y, 1e-12)
	require.InDelta(t, math.Pi/2, s.Bodies()[0].Angle(), 1e-12)
}

func TestImpulseSimSaveRestoreStateRoundTrip(t *testing.T) {
	s := NewImpulseSim(NewConfig())
	s.AddBody(newFallingBlock("a", 1))

	snap := s.SaveState()
	o := BodyIndex(0)
	s.Vars().SetDiscontinuous(o+0, 99)
	s.ModifyObjects()
	require.Equal(t, 99.0, s.Bodies()[0].Position().X)

	s.RestoreState(snap)
	require.Equal(t, 0.0, s.Bodies()[0].Position().X)
}

func TestImpulseSimAddBodyEmitsObjectAdded(t *testing.T) {
	s := NewImpulseSim(NewConfig())
	var got []Event
	s.AddListener(func(e Event) { got = append(got, e) })
	s.AddBody(newFallingBlock("a", 1))

	require.Len(t, got, 1)
	require.Equal(t, ObjectAdded, got[0].Type)
	require.Equal(t, "a", got[0].Body)
}

func TestImpulseSimTotalEnergyMatchesPotentialAtRest(t *testing.T) {
	s := NewImpulseSim(NewConfig())
	s.Gravity = 10
	b := newFallingBlock("a", 2)
	s.AddBody(b)
	b.SetPose(rigidbody.Pose{Position: math2d.New(0, 5)})

	require.InDelta(t, 2*10*5, s.TotalEnergy(), 1e-9)
}
