package app

import (
	"errors"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/canopy-cad/canopy/pkg/geometry"
	"github.com/canopy-cad/canopy/pkg/snap"
)

const clickDragThreshold = 4.0 // pixels

// handleInput processes user input for one frame
func (app *App) handleInput() {
	// Camera view preset shortcuts
	if rl.IsKeyPressed(rl.KeyHome) {
		app.resetCameraView()
	}
	if rl.IsKeyPressed(rl.KeyT) {
		app.setCameraTopView()
	}
	if rl.IsKeyPressed(rl.KeyB) {
		app.setCameraBottomView()
	}
	if rl.IsKeyPressed(rl.KeyOne) {
		app.setCameraFrontView()
	}
	if rl.IsKeyPressed(rl.KeyTwo) {
		app.setCameraBackView()
	}
	if rl.IsKeyPressed(rl.KeyThree) {
		app.setCameraLeftView()
	}
	if rl.IsKeyPressed(rl.KeyFour) {
		app.setCameraRightView()
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		app.doZoom(wheel)
	}

	// Track mouse down for click vs drag detection
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		app.Interaction.mouseDownPos = rl.GetMousePosition()
		app.Interaction.mouseMoved = false
		app.Interaction.isPanning = shiftDown()
	}

	// Shift + drag or middle mouse pans, plain drag orbits
	if rl.IsMouseButtonDown(rl.MouseLeftButton) || rl.IsMouseButtonDown(rl.MouseMiddleButton) {
		delta := rl.GetMouseDelta()
		if delta.X != 0 || delta.Y != 0 {
			pos := rl.GetMousePosition()
			if rl.Vector2Distance(pos, app.Interaction.mouseDownPos) > clickDragThreshold {
				app.Interaction.mouseMoved = true
			}
			if app.Interaction.mouseMoved {
				if app.Interaction.isPanning || rl.IsMouseButtonDown(rl.MouseMiddleButton) {
					app.doPan(delta)
				} else {
					app.doOrbit(delta)
				}
			}
		}
	}

	// A release without movement is a pick
	if rl.IsMouseButtonReleased(rl.MouseLeftButton) && !app.Interaction.mouseMoved && !app.Interaction.isPanning {
		app.handleClick(rl.GetMousePosition())
	}

	app.handleKeys()
}

// handleClick resolves a click into a marker placement or, with Ctrl
// held, a selection toggle
func (app *App) handleClick(pos rl.Vector2) {
	cursor := geometry.NewVector2(float64(pos.X), float64(pos.Y))
	obj, point, kind, ok := app.pick(cursor)
	if !ok {
		return
	}

	ctrlPressed := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl)
	if ctrlPressed {
		obj.SetSelected(!obj.Selected())
		app.Status.set(fmt.Sprintf("selection: %d objects", len(app.Scene.Selected())))
		return
	}

	app.Marker.Place(app.Engine, obj, point, kind)
	app.Status.set(fmt.Sprintf("%s marker on %s", kind, obj.Name()))
}

// handleKeys dispatches the marker operations and view toggles
func (app *App) handleKeys() {
	switch {
	case rl.IsKeyPressed(rl.KeyLeft):
		if app.Marker.GoBack() {
			app.Status.set("marker history: back")
		}
	case rl.IsKeyPressed(rl.KeyRight):
		if app.Marker.GoForward() {
			app.Status.set("marker history: forward")
		}
	case rl.IsKeyPressed(rl.KeyBackspace), rl.IsKeyPressed(rl.KeyDelete):
		app.Marker.Reset()
		app.Engine.Clear()
		app.Status.set("markers cleared")

	case rl.IsKeyPressed(rl.KeyW):
		app.View.showWireframe = !app.View.showWireframe
	case rl.IsKeyPressed(rl.KeyF):
		app.View.showFilled = !app.View.showFilled
	case rl.IsKeyPressed(rl.KeyH):
		app.View.showHelp = !app.View.showHelp
	case rl.IsKeyPressed(rl.KeyEscape):
		app.Scene.ClearSelection()
		app.Engine.CancelPreview()
		app.Status.set("selection cleared")

	case rl.IsKeyPressed(rl.KeyM):
		app.runOp("move_to_secondary")
	case rl.IsKeyPressed(rl.KeyN):
		app.runOp("move_to_primary")
	case rl.IsKeyPressed(rl.KeyS):
		app.runOp("swap")
	case rl.IsKeyPressed(rl.KeyP):
		app.runOp("snap_selection")
	case rl.IsKeyPressed(rl.KeyX):
		app.runOp("align_x")
	case rl.IsKeyPressed(rl.KeyY):
		app.runOp("align_y")
	case rl.IsKeyPressed(rl.KeyZ):
		app.runOp("align_z")
	case rl.IsKeyPressed(rl.KeyD):
		app.runOp("distribute_linear")
	case rl.IsKeyPressed(rl.KeyC):
		app.runOp("distribute_circular")
	case rl.IsKeyPressed(rl.KeyG):
		app.runOp("distribute_grid")
	case rl.IsKeyPressed(rl.KeyR):
		if shiftDown() {
			app.previewOp("rotation preview", app.Ops.PreviewRotateToSecondary)
		} else {
			app.runOp("rotate_to_secondary")
		}
	case rl.IsKeyPressed(rl.KeyE):
		if shiftDown() {
			app.previewOp("edge preview", app.Ops.PreviewEdgesParallel)
		} else {
			app.runOp("edges_parallel_primary")
		}
	case rl.IsKeyPressed(rl.KeyV):
		app.previewOp("move preview", app.Ops.PreviewMoveToSecondary)
	case rl.IsKeyPressed(rl.KeyO):
		app.runOp("orient_to_primary")
	case rl.IsKeyPressed(rl.KeyLeftBracket):
		if shiftDown() {
			app.runOp("rotate_secondary_ccw")
		} else {
			app.runOp("rotate_selection_ccw")
		}
	case rl.IsKeyPressed(rl.KeyRightBracket):
		if shiftDown() {
			app.runOp("rotate_secondary_cw")
		} else {
			app.runOp("rotate_selection_cw")
		}
	case rl.IsKeyPressed(rl.KeyPeriod):
		app.focusCameraOnMarker(true)
	case rl.IsKeyPressed(rl.KeyComma):
		app.focusCameraOnMarker(false)
	}
}

func shiftDown() bool {
	return rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)
}

// runOp looks up a registry operation, checks its poll and runs it.
// Failures become status messages, not crashes.
func (app *App) runOp(id string) {
	desc, ok := snap.Lookup(id)
	if !ok {
		return
	}
	selection := app.selectionAsObjects()
	if !desc.Poll(app.Ops, selection) {
		app.Status.set(fmt.Sprintf("%s: not available", desc.Label))
		return
	}
	if err := desc.Run(app.Ops, selection); err != nil {
		app.Status.set(fmt.Sprintf("%s: %s", desc.Label, opError(err)))
		return
	}
	app.Status.set(desc.Label)
}

func (app *App) previewOp(label string, f func() error) {
	if err := f(); err != nil {
		app.Status.set(fmt.Sprintf("%s: %s", label, opError(err)))
		return
	}
	app.Status.set(label)
}

func opError(err error) string {
	switch {
	case errors.Is(err, snap.ErrNoPrimary):
		return "place the primary marker first"
	case errors.Is(err, snap.ErrNoSecondary):
		return "place both markers first"
	case errors.Is(err, snap.ErrNoSelection):
		return "select objects with Ctrl+click first"
	default:
		return err.Error()
	}
}

func (app *App) selectionAsObjects() []snap.Object {
	selected := app.Scene.Selected()
	out := make([]snap.Object, len(selected))
	for i, o := range selected {
		out[i] = o
	}
	return out
}
