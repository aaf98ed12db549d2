// Copyright © 2024 The myphysicslab-sub011 Authors.
// Use is governed by a BSD-style license found in the LICENSE file.

package rigidbody

import (
	"fmt"
	"math"

	"github.com/myphysicslab/myphysicslab-sub011/math2d"
)

// Pose is a rigid body's position and orientation, captured as a unit so
// it can be saved as an "old copy" snapshot (§4.2) and restored whole.
type Pose struct {
	Position math2d.Vector
	Angle    float64
}

// Transform returns the AffineTransform that maps body coordinates to
// world coordinates for this pose.
func (p Pose) Transform() math2d.AffineTransform {
	return math2d.NewTransform(p.Angle, p.Position.X, p.Position.Y)
}

// Polygon is a RigidBody: an ordered loop of vertices and edges with mass,
// pose, and velocity. Vertices and edges are owned in arenas indexed by
// VertexID/EdgeID (see §9); cross references between them are stable
// indices rather than pointers.
type Polygon struct {
	Name string

	vertices []Vertex
	edges    []Edge

	centroid math2d.Vector // in body coordinates

	mass    float64 // may be +Inf for a fixed body
	inertia float64 // moment of inertia about the CM

	pose Pose
	linV math2d.Vector // linear velocity of the CM, world coordinates
	angV float64       // angular velocity, radians/sec

	elasticity  float64 // in [0, 1]
	distanceTol float64
	velocityTol float64
	accuracy    float64 // in (0, 1]

	nonCollide map[string]bool // names of bodies this one never collides with

	oldPose *Pose // snapshot from the previous accepted step, nil if unset
}

// NewPolygon returns an empty polygon ready to have vertices and edges
// added to it.
func NewPolygon(name string) *Polygon {
	return &Polygon{
		Name:        name,
		nonCollide:  map[string]bool{},
		elasticity:  1,
		distanceTol: 0.01,
		velocityTol: 0.5,
		accuracy:    0.1,
	}
}

// AddVertex appends an ordinary (non-decorated) vertex at p in body
// coordinates and returns its id.
func (poly *Polygon) AddVertex(p math2d.Vector) VertexID {
	id := VertexID(len(poly.vertices))
	poly.vertices = append(poly.vertices, Vertex{id: id, point: p, edge1: noEdge, edge2: noEdge})
	return id
}

// addDecoratedVertex appends a mid-edge vertex whose sole neighbor is
// edge e.
func (poly *Polygon) addDecoratedVertex(p math2d.Vector, e EdgeID) VertexID {
	id := VertexID(len(poly.vertices))
	poly.vertices = append(poly.vertices, Vertex{id: id, point: p, edge1: e, edge2: e, decor: true})
	return id
}

// setVertexEdge assigns edge e as vertex v's previous (slot 1) or next
// (slot 2) edge. Each edge reference is set exactly once; calling this
// twice for the same slot is a construction error in the caller.
func (poly *Polygon) setVertexEdge(v VertexID, e EdgeID, slot int) {
	if slot == 1 {
		poly.vertices[v].edge1 = e
	} else {
		poly.vertices[v].edge2 = e
	}
}

// AddStraightEdge adds a line segment edge from start to end, with
// outsideIsUp indicating which side of the segment is the body's
// exterior.
func (poly *Polygon) AddStraightEdge(start, end VertexID, outsideIsUp bool) EdgeID {
	id := EdgeID(len(poly.edges))
	e := &StraightEdge{id: id, start: start, end: end, outsideIsUp: outsideIsUp}
	poly.edges = append(poly.edges, e)
	poly.setVertexEdge(start, id, 2)
	poly.setVertexEdge(end, id, 1)
	return id
}

// Vertex returns the vertex with the given id.
func (poly *Polygon) Vertex(id VertexID) Vertex { return poly.vertices[id] }

// VertexPoint returns the body-coordinate position of vertex id.
func (poly *Polygon) VertexPoint(id VertexID) math2d.Vector { return poly.vertices[id].point }

// Vertices returns all vertices, endpoint and decorated, in id order.
func (poly *Polygon) Vertices() []Vertex { return poly.vertices }

// Edge returns the edge with the given id.
func (poly *Polygon) Edge(id EdgeID) Edge { return poly.edges[id] }

// Edges returns all edges in id order.
func (poly *Polygon) Edges() []Edge { return poly.edges }

// SetCentroid sets the polygon's centroid in body coordinates. Callers
// that build a polygon from vertices should compute this from the
// vertex loop (the standard polygon-centroid formula); it is a setter
// here because Polygon does not mandate any particular construction
// order for edges vs. centroid.
func (poly *Polygon) SetCentroid(c math2d.Vector) { poly.centroid = c }

// Centroid returns the polygon's centroid in body coordinates.
func (poly *Polygon) Centroid() math2d.Vector { return poly.centroid }

// SetMass sets the mass (use +Inf for a fixed/unmoving body) and moment
// of inertia about the center of mass.
func (poly *Polygon) SetMass(mass, inertia float64) {
	poly.mass = mass
	poly.inertia = inertia
}

// Mass returns the body's mass; +Inf for a fixed body.
func (poly *Polygon) Mass() float64 { return poly.mass }

// InvMass returns 1/Mass, or 0 for a fixed (infinite mass) body.
func (poly *Polygon) InvMass() float64 {
	if math.IsInf(poly.mass, 1) {
		return 0
	}
	return 1 / poly.mass
}

// Inertia returns the moment of inertia about the center of mass.
func (poly *Polygon) Inertia() float64 { return poly.inertia }

// InvInertia returns 1/Inertia, or 0 for a fixed body.
func (poly *Polygon) InvInertia() float64 {
	if math.IsInf(poly.mass, 1) || poly.inertia == 0 {
		return 0
	}
	return 1 / poly.inertia
}

// IsFixed reports whether this body has infinite mass.
func (poly *Polygon) IsFixed() bool { return math.IsInf(poly.mass, 1) }

// SetElasticity sets the coefficient of restitution in [0, 1].
func (poly *Polygon) SetElasticity(e float64) { poly.elasticity = e }

// Elasticity returns the coefficient of restitution.
func (poly *Polygon) Elasticity() float64 { return poly.elasticity }

// SetTolerances sets the body's distance and velocity tolerances and
// accuracy fraction. §4.2: these are body-local fields but are expected
// to be equal across a simulation; ImpulseSim owns the canonical values
// and propagates them here.
func (poly *Polygon) SetTolerances(distTol, velTol, accuracy float64) {
	poly.distanceTol = distTol
	poly.velocityTol = velTol
	poly.accuracy = accuracy
}

func (poly *Polygon) DistanceTol() float64 { return poly.distanceTol }
func (poly *Polygon) VelocityTol() float64 { return poly.velocityTol }
func (poly *Polygon) Accuracy() float64    { return poly.accuracy }

// AddNonCollide forbids collision generation between poly and each of
// the named bodies.
func (poly *Polygon) AddNonCollide(bodies []*Polygon) {
	for _, b := range bodies {
		poly.nonCollide[b.Name] = true
		b.nonCollide[poly.Name] = true
	}
}

// DoesNotCollide reports whether poly has opted out of colliding with b.
func (poly *Polygon) DoesNotCollide(b *Polygon) bool { return poly.nonCollide[b.Name] }

// SetPosition sets the CM's world position.
func (poly *Polygon) SetPosition(p math2d.Vector) { poly.pose.Position = p }

// Position returns the CM's world position.
func (poly *Polygon) Position() math2d.Vector { return poly.pose.Position }

// SetAngle sets the body's angular position, radians.
func (poly *Polygon) SetAngle(a float64) { poly.pose.Angle = a }

// Angle returns the body's angular position, radians.
func (poly *Polygon) Angle() float64 { return poly.pose.Angle }

// Pose returns the body's current position and angle as a unit.
func (poly *Polygon) Pose() Pose { return poly.pose }

// SetPose sets the body's position and angle as a unit.
func (poly *Polygon) SetPose(p Pose) { poly.pose = p }

// SetLinearVelocity sets the CM's linear velocity, world coordinates.
func (poly *Polygon) SetLinearVelocity(v math2d.Vector) { poly.linV = v }

// LinearVelocity returns the CM's linear velocity, world coordinates.
func (poly *Polygon) LinearVelocity() math2d.Vector { return poly.linV }

// SetAngularVelocity sets the angular velocity, radians/sec.
func (poly *Polygon) SetAngularVelocity(w float64) { poly.angV = w }

// AngularVelocity returns the angular velocity, radians/sec.
func (poly *Polygon) AngularVelocity() float64 { return poly.angV }

// BodyToWorld maps a point in body coordinates to world coordinates.
func (poly *Polygon) BodyToWorld(p math2d.Vector) math2d.Vector {
	return poly.pose.Transform().Transform(p)
}

// WorldToBody maps a point in world coordinates to body coordinates.
func (poly *Polygon) WorldToBody(p math2d.Vector) math2d.Vector {
	return poly.pose.Transform().InverseTransform(p)
}

// RotateBodyToWorld rotates a direction vector from body to world
// coordinates, ignoring translation.
func (poly *Polygon) RotateBodyToWorld(d math2d.Vector) math2d.Vector {
	return poly.pose.Transform().Rotate(d)
}

// RotateWorldToBody rotates a direction vector from world to body
// coordinates, ignoring translation.
func (poly *Polygon) RotateWorldToBody(d math2d.Vector) math2d.Vector {
	return poly.pose.Transform().InverseRotate(d)
}

// GetVelocity returns the linear velocity of the material point at pWorld
// (world coordinates): the CM velocity plus omega x (pWorld - CM).
func (poly *Polygon) GetVelocity(pWorld math2d.Vector) math2d.Vector {
	r := pWorld.Sub(poly.pose.Position)
	return poly.linV.Add(math2d.CrossScalar(poly.angV, r))
}

// GetKineticEnergy returns linear plus rotational kinetic energy.
func (poly *Polygon) GetKineticEnergy() float64 {
	return 0.5*poly.mass*poly.linV.LengthSqr() + 0.5*poly.inertia*poly.angV*poly.angV
}

// SaveOldCopy captures the current pose as the "old coords" snapshot
// used by continuous collision detection.
func (poly *Polygon) SaveOldCopy() {
	p := poly.pose
	poly.oldPose = &p
}

// GetOldCopy returns the saved pose snapshot, or nil if none is set.
func (poly *Polygon) GetOldCopy() *Pose { return poly.oldPose }

// SetOldCopy installs p as the saved pose snapshot directly, used when
// restoring a previously captured snapshot rather than capturing the
// current pose.
func (poly *Polygon) SetOldCopy(p *Pose) { poly.oldPose = p }

// EraseOldCopy clears the saved pose snapshot.
func (poly *Polygon) EraseOldCopy() { poly.oldPose = nil }

// WorldAABB returns the body's current world-coordinate bounding box,
// the union of all edge bounding boxes transformed to world space.
func (poly *Polygon) WorldAABB() AABB {
	box := EmptyAABB()
	t := poly.pose.Transform()
	for _, e := range poly.edges {
		b := e.BoundingBox(poly)
		box = box.Expand(t.Transform(math2d.New(b.MinX, b.MinY)))
		box = box.Expand(t.Transform(math2d.New(b.MaxX, b.MinY)))
		box = box.Expand(t.Transform(math2d.New(b.MinX, b.MaxY)))
		box = box.Expand(t.Transform(math2d.New(b.MaxX, b.MaxY)))
	}
	return box
}

// String implements fmt.Stringer for debugging/log output.
func (poly *Polygon) String() string {
	return fmt.Sprintf("Polygon(%s, verts=%d, edges=%d, mass=%g)", poly.Name, len(poly.vertices), len(poly.edges), poly.mass)
}
