package app

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/canopy-cad/canopy/internal/config"
	"github.com/canopy-cad/canopy/pkg/scene"
)

var (
	backgroundColor = rl.NewColor(15, 18, 25, 255)
	faceColor       = rl.NewColor(70, 85, 105, 255)
	selectedColor   = rl.NewColor(120, 140, 90, 255)
	wireframeColor  = rl.NewColor(140, 150, 165, 255)
	statusColor     = rl.NewColor(200, 205, 215, 255)
)

func toColor(c config.Color, opacity float64) rl.Color {
	return rl.NewColor(
		uint8(c.R*255),
		uint8(c.G*255),
		uint8(c.B*255),
		uint8(c.A*opacity*255),
	)
}

// render draws one frame
func (app *App) render() {
	settings := app.Config.Current()

	rl.BeginDrawing()
	rl.ClearBackground(backgroundColor)

	rl.BeginMode3D(app.Camera.camera)
	for _, obj := range app.Scene.Objects() {
		app.drawObject(obj)
	}
	app.drawAnimationSegments(settings)
	rl.EndMode3D()

	app.drawMarkers(settings.Markers)
	app.drawStatus()
	if app.View.showHelp {
		app.drawHelp()
	}

	rl.EndDrawing()
}

// drawObject renders one scene object's faces and wireframe
func (app *App) drawObject(obj *scene.Object) {
	mesh := obj.Mesh()
	verts := obj.Vertices()

	if app.View.showFilled {
		color := faceColor
		if obj.Selected() {
			color = selectedColor
		}
		for _, f := range mesh.Faces {
			a, b, c := toRaylib(verts[f[0]]), toRaylib(verts[f[1]]), toRaylib(verts[f[2]])
			rl.DrawTriangle3D(a, b, c, color)
			// Back face, raylib culls by winding
			rl.DrawTriangle3D(a, c, b, color)
		}
	}

	if app.View.showWireframe {
		for _, e := range mesh.Edges {
			rl.DrawLine3D(toRaylib(verts[e[0]]), toRaylib(verts[e[1]]), wireframeColor)
		}
	}
}

// drawAnimationSegments renders the live preview lines and rotation
// sweeps in world space
func (app *App) drawAnimationSegments(settings config.Settings) {
	for _, seg := range app.Engine.VisibleSegments() {
		color := toColor(settings.Animation.Color, seg.Opacity)
		rl.DrawLine3D(toRaylib(seg.Start), toRaylib(seg.End), color)
		if seg.Pivot != nil {
			rl.DrawSphere(toRaylib(*seg.Pivot), app.markerWorldSize()*0.15, color)
		}
	}
}

// drawMarkers renders the two markers as screen-space circles at
// their animated display positions
func (app *App) drawMarkers(settings config.MarkerSettings) {
	app.drawMarker(true, settings.Primary)
	app.drawMarker(false, settings.Secondary)
}

func (app *App) drawMarker(isPrimary bool, style config.MarkerStyle) {
	if !style.Visible {
		return
	}
	pos, ok := app.Marker.DrawPosition(isPrimary)
	if !ok {
		return
	}
	screen, visible := app.Project(pos)
	if !visible {
		return
	}

	radius := float32(style.Size/2) * float32(app.Marker.BounceScale(isPrimary))
	center := rl.Vector2{X: float32(screen.X), Y: float32(screen.Y)}

	fill := toColor(style.Color, 0.25)
	ring := toColor(style.Color, 1.0)
	rl.DrawCircleV(center, radius, fill)
	rl.DrawRing(center, radius-1.5, radius, 0, 360, 48, ring)
	rl.DrawCircleV(center, 2, ring)
}

// markerWorldSize approximates a marker-sized length in world units
func (app *App) markerWorldSize() float32 {
	return app.Camera.distance * 0.02
}

func (app *App) drawStatus() {
	y := int32(rl.GetScreenHeight()) - 28

	if msg := app.Status.current(); msg != "" {
		rl.DrawText(msg, 12, y, 18, statusColor)
	}

	hist := fmt.Sprintf("history %d/%d", app.Marker.HistoryLen()+app.Marker.HistoryCursor(), app.Marker.HistoryLen())
	rl.DrawText(hist, int32(rl.GetScreenWidth())-130, y, 18, statusColor)
}

func (app *App) drawHelp() {
	lines := []string{
		"click          place marker",
		"ctrl+click     toggle selection",
		"left/right     marker history",
		"m/n            move to secondary / primary",
		"s              swap marker objects",
		"p              snap selection to primary",
		"x/y/z          align selection on axis",
		"d/c/g          distribute linear / circle / grid",
		"r  shift+r     rotate to secondary / preview",
		"e  shift+e     edges parallel / preview",
		"v              preview move",
		"o              orient selection to primary",
		"[  ]           rotate selection 90 ccw/cw",
		"shift+[ ]      same around secondary",
		". ,            focus camera on primary / secondary",
		"backspace      clear markers",
		"w/f            wireframe / faces",
	}
	x := int32(12)
	y := int32(12)
	for _, line := range lines {
		rl.DrawText(line, x, y, 16, statusColor)
		y += 20
	}
}
