package snap

import (
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canopy-cad/canopy/pkg/geometry"
	"github.com/canopy-cad/canopy/pkg/scene"
)

func testOps() *Ops {
	s := testState()
	return NewOps(s, testEngine(), zerolog.Nop())
}

func objectAt(name string, pos geometry.Vector3) *scene.Object {
	obj := scene.NewObject(name, scene.UnitCube())
	obj.SetPosition(pos)
	return obj
}

func setMarker(m *Marker, obj *scene.Object, loc geometry.Vector3, kind ElementKind) {
	*m = Marker{Location: loc, Owner: obj, Kind: kind, set: true}
}

func TestMoveToSecondaryPreconditions(t *testing.T) {
	o := testOps()

	assert.ErrorIs(t, o.MoveToSecondary(), ErrNoPrimary)

	setMarker(&o.State.Primary, objectAt("a", geometry.Vector3{}), geometry.Vector3{}, ElementVertex)
	assert.ErrorIs(t, o.MoveToSecondary(), ErrNoSecondary)
}

func TestMoveToSecondary(t *testing.T) {
	o := testOps()
	a := objectAt("a", geometry.NewVector3(0, 0, 0))
	b := objectAt("b", geometry.NewVector3(10, 0, 0))

	// Primary marker on a vertex of a, offset from the object origin
	setMarker(&o.State.Primary, a, geometry.NewVector3(1, 1, 1), ElementVertex)
	setMarker(&o.State.Secondary, b, geometry.NewVector3(9, 0, 1), ElementVertex)

	require.NoError(t, o.MoveToSecondary())

	// The marker landed on the secondary, the object kept its offset
	assert.Equal(t, geometry.NewVector3(9, 0, 1), o.State.Primary.Location)
	assert.Equal(t, geometry.NewVector3(8, -1, 0), a.Position())
	// The secondary object did not move
	assert.Equal(t, geometry.NewVector3(10, 0, 0), b.Position())
}

func TestMoveToSecondaryStaleOwner(t *testing.T) {
	o := testOps()
	a := objectAt("a", geometry.Vector3{})
	sc := scene.New()
	sc.Add(a)

	setMarker(&o.State.Primary, a, geometry.NewVector3(1, 1, 1), ElementVertex)
	setMarker(&o.State.Secondary, objectAt("b", geometry.Vector3{}), geometry.NewVector3(2, 0, 0), ElementVertex)

	sc.Remove(a)
	assert.ErrorIs(t, o.MoveToSecondary(), ErrStaleOwner)
}

func TestSwapExchangesObjectsAndKinds(t *testing.T) {
	o := testOps()
	a := objectAt("a", geometry.NewVector3(0, 0, 0))
	b := objectAt("b", geometry.NewVector3(10, 0, 0))

	pLoc := geometry.NewVector3(1, 1, 0)
	sLoc := geometry.NewVector3(9, -1, 0)
	setMarker(&o.State.Primary, a, pLoc, ElementVertex)
	setMarker(&o.State.Secondary, b, sLoc, ElementEdge)

	require.NoError(t, o.Swap())

	// Marker locations are unchanged, owners and kinds exchanged
	assert.Equal(t, pLoc, o.State.Primary.Location)
	assert.Equal(t, sLoc, o.State.Secondary.Location)
	assert.Equal(t, b, o.State.Primary.Owner)
	assert.Equal(t, a, o.State.Secondary.Owner)
	assert.Equal(t, ElementEdge, o.State.Primary.Kind)
	assert.Equal(t, ElementVertex, o.State.Secondary.Kind)

	// Each object kept its offset from its former marker
	assert.Equal(t, geometry.NewVector3(8, -2, 0), a.Position())
	assert.Equal(t, geometry.NewVector3(2, 2, 0), b.Position())
}

func TestSnapSelectionToPrimary(t *testing.T) {
	o := testOps()
	setMarker(&o.State.Primary, objectAt("ref", geometry.Vector3{}), geometry.NewVector3(10, 10, 0), ElementVertex)

	a := objectAt("a", geometry.NewVector3(0, 0, 0))
	b := objectAt("b", geometry.NewVector3(2, 0, 0))
	require.NoError(t, o.SnapSelectionToPrimary([]Object{a, b}))

	// The centroid moved onto the marker, relative layout preserved
	assert.Equal(t, geometry.NewVector3(9, 10, 0), a.Position())
	assert.Equal(t, geometry.NewVector3(11, 10, 0), b.Position())

	assert.ErrorIs(t, o.SnapSelectionToPrimary(nil), ErrNoSelection)
}

func TestMoveByOffset(t *testing.T) {
	o := testOps()
	setMarker(&o.State.Primary, objectAt("p", geometry.Vector3{}), geometry.NewVector3(0, 0, 0), ElementVertex)
	setMarker(&o.State.Secondary, objectAt("s", geometry.Vector3{}), geometry.NewVector3(3, 4, 5), ElementVertex)

	obj := objectAt("a", geometry.NewVector3(1, 1, 1))
	require.NoError(t, o.MoveByOffset([]Object{obj}))
	assert.Equal(t, geometry.NewVector3(4, 5, 6), obj.Position())
}

func TestAlignToAxis(t *testing.T) {
	o := testOps()
	setMarker(&o.State.Primary, objectAt("ref", geometry.Vector3{}), geometry.NewVector3(0, 7, 0), ElementVertex)

	a := objectAt("a", geometry.NewVector3(1, 0, 2))
	b := objectAt("b", geometry.NewVector3(3, -4, 5))
	require.NoError(t, o.AlignToAxis(geometry.AxisY, []Object{a, b}))

	assert.Equal(t, geometry.NewVector3(1, 7, 2), a.Position())
	assert.Equal(t, geometry.NewVector3(3, 7, 5), b.Position())
}

func TestDistributeLinear(t *testing.T) {
	o := testOps()
	setMarker(&o.State.Primary, objectAt("p", geometry.Vector3{}), geometry.NewVector3(0, 0, 0), ElementVertex)
	setMarker(&o.State.Secondary, objectAt("s", geometry.Vector3{}), geometry.NewVector3(10, 0, 0), ElementVertex)

	// Deliberately unsorted relative to the primary
	far := objectAt("far", geometry.NewVector3(8, 1, 0))
	near := objectAt("near", geometry.NewVector3(1, 1, 0))
	mid := objectAt("mid", geometry.NewVector3(5, 1, 0))

	require.NoError(t, o.DistributeLinear([]Object{far, near, mid}))

	// Evenly spaced from primary to secondary, ordered by previous
	// distance from the primary
	assert.Equal(t, geometry.NewVector3(0, 0, 0), near.Position())
	assert.Equal(t, geometry.NewVector3(5, 0, 0), mid.Position())
	assert.Equal(t, geometry.NewVector3(10, 0, 0), far.Position())

	assert.ErrorIs(t, o.DistributeLinear([]Object{near}), ErrNeedTwo)
}

func TestDistributeCircular(t *testing.T) {
	o := testOps()
	center := geometry.NewVector3(0, 0, 0)
	setMarker(&o.State.Primary, objectAt("p", geometry.Vector3{}), center, ElementVertex)

	objs := []Object{
		objectAt("a", geometry.NewVector3(2, 0, 0)),
		objectAt("b", geometry.NewVector3(0, 2, 0)),
		objectAt("c", geometry.NewVector3(-2, 0, 0)),
		objectAt("d", geometry.NewVector3(0, -2, 0)),
	}
	require.NoError(t, o.DistributeCircular(objs))

	// Mean radius preserved, even angular spacing in the XY plane
	for _, obj := range objs {
		assert.InDelta(t, 2.0, obj.Position().Distance(center), 1e-9)
		assert.Zero(t, obj.Position().Z)
	}
	assert.InDelta(t, 0, objs[0].Position().Distance(geometry.NewVector3(2, 0, 0)), 1e-9)
	assert.InDelta(t, 0, objs[1].Position().Distance(geometry.NewVector3(0, 2, 0)), 1e-9)
}

func TestDistributeGrid(t *testing.T) {
	o := testOps()
	origin := geometry.NewVector3(1, 1, 0)
	setMarker(&o.State.Primary, objectAt("p", geometry.Vector3{}), origin, ElementVertex)

	objs := []Object{
		objectAt("a", geometry.NewVector3(5, 5, 5)),
		objectAt("b", geometry.NewVector3(6, 5, 5)),
		objectAt("c", geometry.NewVector3(7, 5, 5)),
	}
	require.NoError(t, o.DistributeGrid(objs, 2, 3.0))

	assert.Equal(t, geometry.NewVector3(1, 1, 0), objs[0].(*scene.Object).Position())
	assert.Equal(t, geometry.NewVector3(4, 1, 0), objs[1].(*scene.Object).Position())
	assert.Equal(t, geometry.NewVector3(1, 4, 0), objs[2].(*scene.Object).Position())

	assert.ErrorIs(t, o.DistributeGrid(objs, 0, 1.0), ErrDegenerate)
}

func TestRotateToSecondaryQuarterTurn(t *testing.T) {
	o := testOps()
	a := objectAt("a", geometry.NewVector3(2, 0, 0))

	setMarker(&o.State.Primary, a, geometry.NewVector3(2, 0, 0), ElementVertex)
	setMarker(&o.State.Secondary, objectAt("b", geometry.Vector3{}), geometry.NewVector3(0, 3, 0), ElementVertex)

	// Pivot defaults to the origin: (2,0,0) rotates 90° CCW onto the
	// secondary's bearing along +Y
	require.NoError(t, o.RotateToSecondary())

	assert.InDelta(t, 0, o.State.Primary.Location.Distance(geometry.NewVector3(0, 2, 0)), 1e-9)
	assert.InDelta(t, 0, a.Position().Distance(geometry.NewVector3(0, 2, 0)), 1e-9)
	assert.True(t, o.Anim.Active(), "rotation shows its sweep")
}

func TestRotateToSecondaryOutOfPlane(t *testing.T) {
	o := testOps()
	a := objectAt("a", geometry.NewVector3(2, 0, 0))

	setMarker(&o.State.Primary, a, geometry.NewVector3(2, 0, 0), ElementVertex)
	setMarker(&o.State.Secondary, objectAt("b", geometry.Vector3{}), geometry.NewVector3(0, 0, 3), ElementVertex)

	// The pivot rays span the XZ plane, so the rotation axis is -Y,
	// not the planar Z default
	require.NoError(t, o.RotateToSecondary())

	assert.InDelta(t, 0, o.State.Primary.Location.Distance(geometry.NewVector3(0, 0, 2)), 1e-9)
	assert.InDelta(t, 0, a.Position().Distance(geometry.NewVector3(0, 0, 2)), 1e-9)
}

func TestRotateToSecondaryDegeneratePivot(t *testing.T) {
	o := testOps()
	setMarker(&o.State.Primary, objectAt("a", geometry.Vector3{}), geometry.NewVector3(0.001, 0, 0), ElementVertex)
	setMarker(&o.State.Secondary, objectAt("b", geometry.Vector3{}), geometry.NewVector3(0, 3, 0), ElementVertex)

	assert.ErrorIs(t, o.RotateToSecondary(), ErrDegenerate)
}

func TestRotateByAngle(t *testing.T) {
	o := testOps()
	a := objectAt("a", geometry.NewVector3(1, 0, 0))
	setMarker(&o.State.Primary, a, geometry.NewVector3(1, 0, 0), ElementVertex)

	require.NoError(t, o.RotateByAngle(math.Pi))
	assert.InDelta(t, 0, o.State.Primary.Location.Distance(geometry.NewVector3(-1, 0, 0)), 1e-9)
}

func TestRotateAroundPrimary(t *testing.T) {
	o := testOps()
	pivot := geometry.NewVector3(1, 1, 0)
	setMarker(&o.State.Primary, objectAt("p", geometry.Vector3{}), pivot, ElementVertex)

	a := objectAt("a", geometry.NewVector3(2, 1, 0))
	require.NoError(t, o.RotateAroundPrimary([]Object{a}, geometry.AxisZ, math.Pi/2))
	assert.InDelta(t, 0, a.Position().Distance(geometry.NewVector3(1, 2, 0)), 1e-9)
}

func TestRotateAroundSecondary(t *testing.T) {
	o := testOps()
	a := objectAt("a", geometry.NewVector3(2, 1, 0))

	assert.ErrorIs(t, o.RotateAroundSecondary([]Object{a}, geometry.AxisZ, math.Pi/2), ErrNoSecondary)

	setMarker(&o.State.Secondary, objectAt("s", geometry.Vector3{}), geometry.NewVector3(1, 1, 0), ElementVertex)
	require.NoError(t, o.RotateAroundSecondary([]Object{a}, geometry.AxisZ, math.Pi/2))
	assert.InDelta(t, 0, a.Position().Distance(geometry.NewVector3(1, 2, 0)), 1e-9)
}

func TestMakeEdgesParallelRequiresEdges(t *testing.T) {
	o := testOps()
	setMarker(&o.State.Primary, objectAt("a", geometry.Vector3{}), geometry.NewVector3(1, 1, 0), ElementVertex)
	setMarker(&o.State.Secondary, objectAt("b", geometry.Vector3{}), geometry.NewVector3(0, 1, 1), ElementEdge)

	assert.ErrorIs(t, o.MakeEdgesParallelPrimary(), ErrNotEdges)
}

func TestMakeEdgesParallelPrimary(t *testing.T) {
	o := testOps()
	a := objectAt("a", geometry.NewVector3(0, 0, 0))
	b := objectAt("b", geometry.NewVector3(10, 0, 0))

	// Rotate a 45° about Z so its edges are not axis aligned
	a.SetWorldMatrix(geometry.RotationAbout(geometry.NewVector3(0, 0, 1), math.Pi/4).Mul(a.WorldMatrix()))

	pLoc := a.EdgeMidpoints()[0]
	sLoc := b.EdgeMidpoints()[0]
	setMarker(&o.State.Primary, a, pLoc, ElementEdge)
	setMarker(&o.State.Secondary, b, sLoc, ElementEdge)

	pDir, _, ok := a.ClosestEdgeDirection(pLoc)
	require.True(t, ok)
	tDir, _, ok := b.ClosestEdgeDirection(sLoc)
	require.True(t, ok)
	require.Greater(t, 1-math.Abs(pDir.Dot(tDir)), 1e-6, "edges start out unaligned")

	require.NoError(t, o.MakeEdgesParallelPrimary())

	// The primary's edge is now parallel (or anti-parallel) to the
	// secondary's
	newDir, _, ok := a.ClosestEdgeDirection(o.State.Primary.Location)
	require.True(t, ok)
	assert.InDelta(t, 1.0, math.Abs(newDir.Dot(tDir)), 1e-9)
}

func TestOrientToPrimary(t *testing.T) {
	o := testOps()
	setMarker(&o.State.Primary, objectAt("ref", geometry.Vector3{}), geometry.NewVector3(3, 0, 0), ElementVertex)

	a := objectAt("a", geometry.NewVector3(0, 0, 0))
	require.NoError(t, o.OrientToPrimary([]Object{a}))

	// Position kept, local +Y now points at the marker with world +Z
	// still up
	assert.InDelta(t, 0, a.Position().Distance(geometry.Vector3{}), 1e-9)
	localY := a.WorldMatrix().MulPoint(geometry.NewVector3(0, 1, 0)).Sub(a.Position())
	assert.InDelta(t, 0, localY.Distance(geometry.NewVector3(1, 0, 0)), 1e-9)
	localZ := a.WorldMatrix().MulPoint(geometry.NewVector3(0, 0, 1)).Sub(a.Position())
	assert.InDelta(t, 0, localZ.Distance(geometry.NewVector3(0, 0, 1)), 1e-9)
}

func TestOrientToPrimaryVerticalBearing(t *testing.T) {
	o := testOps()
	setMarker(&o.State.Primary, objectAt("ref", geometry.Vector3{}), geometry.NewVector3(1, 2, 5), ElementVertex)

	a := objectAt("a", geometry.NewVector3(1, 2, 0))
	require.NoError(t, o.OrientToPrimary([]Object{a}))

	// Straight-up bearing falls back to the +Y up reference
	localY := a.WorldMatrix().MulPoint(geometry.NewVector3(0, 1, 0)).Sub(a.Position())
	assert.InDelta(t, 0, localY.Distance(geometry.NewVector3(0, 0, 1)), 1e-9)
	localZ := a.WorldMatrix().MulPoint(geometry.NewVector3(0, 0, 1)).Sub(a.Position())
	assert.InDelta(t, 0, localZ.Distance(geometry.NewVector3(0, 1, 0)), 1e-9)
}

func TestLiveSelectionFiltersRemoved(t *testing.T) {
	o := testOps()
	setMarker(&o.State.Primary, objectAt("p", geometry.Vector3{}), geometry.NewVector3(0, 0, 0), ElementVertex)

	a := objectAt("a", geometry.NewVector3(1, 0, 0))
	sc := scene.New()
	sc.Add(a)
	sc.Remove(a)

	assert.ErrorIs(t, o.SnapSelectionToPrimary([]Object{a}), ErrNoSelection)
}

func TestRegistry(t *testing.T) {
	seen := make(map[string]bool)
	for _, d := range Operations {
		assert.NotEmpty(t, d.ID)
		assert.NotEmpty(t, d.Label)
		assert.NotNil(t, d.Poll)
		assert.NotNil(t, d.Run)
		assert.False(t, seen[d.ID], "duplicate operation id %s", d.ID)
		seen[d.ID] = true
	}

	desc, ok := Lookup("swap")
	require.True(t, ok)
	assert.Equal(t, "Swap Marker Objects", desc.Label)

	_, ok = Lookup("nope")
	assert.False(t, ok)

	// With no markers nothing polls available
	o := testOps()
	for _, d := range Operations {
		assert.False(t, d.Poll(o, nil), d.ID)
	}
}
