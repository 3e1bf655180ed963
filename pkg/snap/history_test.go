package snap

import (
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canopy-cad/canopy/pkg/geometry"
	"github.com/canopy-cad/canopy/pkg/scene"
)

func testState() *State {
	return NewState(nil, zerolog.Nop())
}

func placeAt(s *State, x float64) {
	obj := scene.NewObject(fmt.Sprintf("obj-%g", x), scene.UnitCube())
	s.Primary = Marker{
		Location: geometry.NewVector3(x, 0, 0),
		Owner:    obj,
		Kind:     ElementVertex,
		set:      true,
	}
}

func TestSaveStateSkipsEmpty(t *testing.T) {
	s := testState()
	s.SaveState()
	assert.Zero(t, s.HistoryLen())
}

func TestSaveStateBounded(t *testing.T) {
	s := testState()

	for i := 0; i < 15; i++ {
		placeAt(s, float64(i))
		s.SaveState()
	}

	assert.Equal(t, maxHistorySize, s.HistoryLen())

	// The oldest entries were evicted: walking all the way back lands
	// on the save made at x=5
	for s.CanGoBack() {
		require.True(t, s.GoBack())
	}
	assert.Equal(t, 5.0, s.Primary.Location.X)
}

func TestGoBackRestoresPrevious(t *testing.T) {
	s := testState()

	placeAt(s, 1)
	s.SaveState()
	placeAt(s, 2)

	require.True(t, s.GoBack())
	assert.Equal(t, 1.0, s.Primary.Location.X)
	assert.False(t, s.CanGoBack())
}

func TestGoBackGoForwardRoundTrip(t *testing.T) {
	s := testState()

	placeAt(s, 1)
	s.SaveState()
	placeAt(s, 2)
	s.SaveState()
	placeAt(s, 3)

	// Back to the oldest
	require.True(t, s.GoBack())
	assert.Equal(t, 2.0, s.Primary.Location.X)
	require.True(t, s.GoBack())
	assert.Equal(t, 1.0, s.Primary.Location.X)
	assert.False(t, s.GoBack(), "already at the oldest state")

	// Forward all the way returns to the live state bit for bit
	require.True(t, s.GoForward())
	assert.Equal(t, 2.0, s.Primary.Location.X)
	require.True(t, s.GoForward())
	assert.Equal(t, 3.0, s.Primary.Location.X)
	assert.False(t, s.GoForward(), "already at the tip")
}

func TestSaveAfterGoBackTruncates(t *testing.T) {
	s := testState()

	placeAt(s, 1)
	s.SaveState()
	placeAt(s, 2)
	s.SaveState()
	placeAt(s, 3)

	require.True(t, s.GoBack())
	require.True(t, s.GoBack())
	assert.Equal(t, 1.0, s.Primary.Location.X)

	// A new save from here discards the undone states
	placeAt(s, 9)
	s.SaveState()
	assert.False(t, s.CanGoForward())

	require.True(t, s.GoBack())
	assert.Equal(t, 9.0, s.Primary.Location.X)
	assert.False(t, s.CanGoBack())
}

func TestResetClearsHistory(t *testing.T) {
	s := testState()

	placeAt(s, 1)
	s.SaveState()
	s.Reset()

	assert.False(t, s.Primary.IsSet())
	assert.False(t, s.Secondary.IsSet())
	assert.Zero(t, s.HistoryLen())
	assert.False(t, s.CanGoBack())
	assert.False(t, s.CanGoForward())
}
