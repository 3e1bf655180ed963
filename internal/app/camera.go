package app

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// resetCameraView resets the camera to the default view
func (app *App) resetCameraView() {
	app.Camera.distance = app.Camera.defaultDist
	app.Camera.angleX = app.Camera.defaultAngleX
	app.Camera.angleY = app.Camera.defaultAngleY
	app.Camera.target = app.sceneCenter()
}

// setCameraTopView sets the camera to look down from the top
func (app *App) setCameraTopView() {
	app.Camera.angleX = math.Pi / 2
	app.Camera.angleY = 0
	app.Camera.target = app.sceneCenter()
}

// setCameraBottomView sets the camera to look up from the bottom
func (app *App) setCameraBottomView() {
	app.Camera.angleX = -math.Pi / 2
	app.Camera.angleY = 0
	app.Camera.target = app.sceneCenter()
}

// setCameraFrontView sets the camera to look from the front
func (app *App) setCameraFrontView() {
	app.Camera.angleX = 0
	app.Camera.angleY = 0
	app.Camera.target = app.sceneCenter()
}

// setCameraBackView sets the camera to look from the back
func (app *App) setCameraBackView() {
	app.Camera.angleX = 0
	app.Camera.angleY = math.Pi
	app.Camera.target = app.sceneCenter()
}

// setCameraLeftView sets the camera to look from the left
func (app *App) setCameraLeftView() {
	app.Camera.angleX = 0
	app.Camera.angleY = -math.Pi / 2
	app.Camera.target = app.sceneCenter()
}

// setCameraRightView sets the camera to look from the right
func (app *App) setCameraRightView() {
	app.Camera.angleX = 0
	app.Camera.angleY = math.Pi / 2
	app.Camera.target = app.sceneCenter()
}

// focusCameraOnMarker recenters the orbit target on a marker. The
// target doubles as the 3D cursor, so this also moves the pivot the
// marker rotations turn around.
func (app *App) focusCameraOnMarker(primary bool) {
	m := &app.Marker.Secondary
	label := "secondary"
	if primary {
		m = &app.Marker.Primary
		label = "primary"
	}
	if !m.IsSet() {
		app.Status.set(label + " marker not set")
		return
	}
	app.Camera.target = toRaylib(m.Location)
	app.Status.set("focused on " + label + " marker")
}

// updateCamera updates camera position based on angles
func (app *App) updateCamera() {
	x := app.Camera.distance * float32(math.Cos(float64(app.Camera.angleX))) * float32(math.Sin(float64(app.Camera.angleY)))
	y := app.Camera.distance * float32(math.Sin(float64(app.Camera.angleX)))
	z := app.Camera.distance * float32(math.Cos(float64(app.Camera.angleX))) * float32(math.Cos(float64(app.Camera.angleY)))

	app.Camera.camera.Position = rl.Vector3{
		X: app.Camera.target.X + x,
		Y: app.Camera.target.Y + y,
		Z: app.Camera.target.Z + z,
	}
	app.Camera.camera.Target = app.Camera.target
}

// doOrbit rotates the camera around the target based on mouse delta
func (app *App) doOrbit(delta rl.Vector2) {
	app.Camera.angleY -= delta.X * 0.005
	app.Camera.angleX += delta.Y * 0.005

	// Clamp pitch just short of the poles
	limit := float32(math.Pi/2 - 0.01)
	if app.Camera.angleX > limit {
		app.Camera.angleX = limit
	}
	if app.Camera.angleX < -limit {
		app.Camera.angleX = -limit
	}
}

// doPan performs camera panning based on mouse delta
func (app *App) doPan(delta rl.Vector2) {
	forward := rl.Vector3Normalize(rl.Vector3Subtract(app.Camera.target, app.Camera.camera.Position))
	right := rl.Vector3Normalize(rl.Vector3CrossProduct(forward, app.Camera.camera.Up))
	up := rl.Vector3Normalize(rl.Vector3CrossProduct(right, forward))

	// Pan speed based on distance from target
	panSpeed := app.Camera.distance * 0.001

	rightMove := rl.Vector3Scale(right, -delta.X*panSpeed)
	upMove := rl.Vector3Scale(up, delta.Y*panSpeed)

	app.Camera.target = rl.Vector3Add(app.Camera.target, rightMove)
	app.Camera.target = rl.Vector3Add(app.Camera.target, upMove)
}

// doZoom adjusts the camera distance from the mouse wheel
func (app *App) doZoom(wheel float32) {
	app.Camera.distance -= wheel * app.Camera.distance * 0.1
	if app.Camera.distance < 0.1 {
		app.Camera.distance = 0.1
	}
}
