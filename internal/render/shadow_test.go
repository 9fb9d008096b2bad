package render

import (
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smasonuk/sieroom/internal/room"
)

var floor = receiver{y: 0, minX: -3, maxX: 3, minZ: -3, maxZ: 3}

func TestProjectOntoFloor(t *testing.T) {
	light := mgl64.Vec3{0, 10, 0}
	tri := []mgl64.Vec3{{0, 1, 0}, {0.9, 1, 0}, {0, 1, 0.9}}

	poly, ok := floor.project(light, tri)
	require.True(t, ok)
	require.Len(t, poly, 3)
	assert.InDelta(t, 0, poly[0][0], 1e-9)
	assert.InDelta(t, 1.0, poly[1][0], 1e-9)
	assert.InDelta(t, 1.0, poly[2][2], 1e-9)
	for _, p := range poly {
		assert.InDelta(t, shadowLift, p[1], 1e-12)
	}
}

func TestProjectClipsToReceiver(t *testing.T) {
	light := mgl64.Vec3{0, 10, 0}
	tri := []mgl64.Vec3{{1, 5, 0}, {2, 5, 0}, {1, 5, 1}}

	poly, ok := floor.project(light, tri)
	require.True(t, ok)
	for _, p := range poly {
		assert.LessOrEqual(t, p[0], 3.0+1e-9)
	}
	assert.Len(t, poly, 4)
}

func TestProjectRejects(t *testing.T) {
	light := mgl64.Vec3{0, 10, 0}
	cases := []struct {
		name string
		tri  []mgl64.Vec3
	}{
		{"below floor", []mgl64.Vec3{{0, -1, 0}, {1, 1, 0}, {0, 1, 1}}},
		{"above light", []mgl64.Vec3{{0, 11, 0}, {1, 1, 0}, {0, 1, 1}}},
		{"off the floor", []mgl64.Vec3{{10, 5, 10}, {11, 5, 10}, {10, 5, 11}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, ok := floor.project(light, c.tri)
			assert.False(t, ok)
		})
	}
}

func TestClipAxis(t *testing.T) {
	square := []mgl64.Vec3{{0, 0, 0}, {2, 0, 0}, {2, 0, 2}, {0, 0, 2}}

	half := clipAxis(square, 0, 1, false)
	require.Len(t, half, 4)
	for _, p := range half {
		assert.LessOrEqual(t, p[0], 1.0)
	}
	assert.Empty(t, clipAxis(square, 0, 5, true))
	assert.Len(t, clipAxis(square, 2, -1, true), 4)
}

func TestReceiversOnlyFlatBoxes(t *testing.T) {
	elements := []room.Element{
		{Kind: room.KindFloor, Position: mgl64.Vec3{0, -0.1, 0}, Size: mgl64.Vec3{6.4, 0.3, 6}, ReceiveShadow: true},
		{Kind: room.KindWall, Position: mgl64.Vec3{0, 2.5, -3}, Size: mgl64.Vec3{6, 5, 0.2}, ReceiveShadow: true},
		{Kind: room.KindFloor, Position: mgl64.Vec3{0, 0, 0}, Size: mgl64.Vec3{1, 0.1, 1}},
	}
	got := receivers(elements)
	require.Len(t, got, 1)
	assert.InDelta(t, 0.05, got[0].y, 1e-9)
	assert.InDelta(t, -3.2, got[0].minX, 1e-9)
	assert.InDelta(t, 3.0, got[0].maxZ, 1e-9)
	assert.InDelta(t, -2.9, got[0].minZ, 1e-9, "cut at the back wall")
	assert.InDelta(t, 3.2, got[0].maxX, 1e-9, "low boxes do not cut")
}

func TestReceiverStopsAtWalls(t *testing.T) {
	got := receivers(testTree().Elements)
	require.Len(t, got, 1)
	r := got[0]
	assert.InDelta(t, -3.0, r.minX, 1e-9)
	assert.InDelta(t, 3.0, r.maxX, 1e-9)
	assert.InDelta(t, -2.9, r.minZ, 1e-9)
	assert.InDelta(t, 3.0, r.maxZ, 1e-9)

	// a triangle leaning over the right wall only shades the floor inside it
	light := mgl64.Vec3{0, 10, 0}
	poly, ok := r.project(light, []mgl64.Vec3{{2.5, 1, 0}, {3.5, 1, 0}, {2.5, 1, 1}})
	require.True(t, ok)
	for _, p := range poly {
		assert.LessOrEqual(t, p[0], 3.0+1e-9)
	}
}

func TestReceiverIgnoresDistantBoxes(t *testing.T) {
	r := receiver{y: 0, minX: -3, maxX: 3, minZ: -3, maxZ: 3}
	raised := room.Element{Kind: room.KindWall, Position: mgl64.Vec3{3.1, 6, 0}, Size: mgl64.Vec3{0.2, 5, 6}}
	outside := room.Element{Kind: room.KindWall, Position: mgl64.Vec3{10, 2.5, 0}, Size: mgl64.Vec3{0.2, 5, 6}}
	assert.Equal(t, r, r.under(raised))
	assert.Equal(t, r, r.under(outside))
}

func TestShadowFacesPointUp(t *testing.T) {
	s := newShadowCaster(mgl64.Vec3{0, 10, 0}, color.RGBA{A: 70}, []receiver{floor})
	positions := []mgl64.Vec3{{0, 1, 0}, {1, 1, 0}, {0, 1, 1}}
	s.cast(positions, []uint32{0, 2, 1})
	s.add([]mgl64.Vec3{{0, 0, 0}, {0, 0, 1}, {1, 0, 0}})
	s.add([]mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 0, 1}})
	require.Equal(t, 3, s.model.FaceCount())
	for i := 0; i < s.model.FaceCount(); i++ {
		assert.Positive(t, s.model.Face(i).GetNormal().Y, "face %d", i)
	}
}

func TestCastSkipsFacesAwayFromLight(t *testing.T) {
	s := newShadowCaster(mgl64.Vec3{0, 10, 0}, color.RGBA{A: 70}, []receiver{floor})
	positions := []mgl64.Vec3{{0, 1, 0}, {1, 1, 0}, {0, 1, 1}}

	s.cast(positions, []uint32{0, 2, 1})
	assert.Equal(t, 1, s.model.FaceCount())

	s.cast(positions, []uint32{0, 1, 2})
	assert.Equal(t, 1, s.model.FaceCount())
}
