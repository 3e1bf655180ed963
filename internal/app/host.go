package app

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/canopy-cad/canopy/pkg/anim"
	"github.com/canopy-cad/canopy/pkg/geometry"
	"github.com/canopy-cad/canopy/pkg/scene"
	"github.com/canopy-cad/canopy/pkg/snap"
)

func toRaylib(v geometry.Vector3) rl.Vector3 {
	return rl.Vector3{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}

// frameTimer is one scheduled callback, driven from the render loop
type frameTimer struct {
	interval time.Duration
	next     time.Time
	tick     func() bool
	stopped  bool
}

func (t *frameTimer) Cancel() { t.stopped = true }

// frameScheduler implements anim.Scheduler on top of the raylib frame
// loop: Pump is called once per frame and fires timers whose interval
// has elapsed. Everything stays on the main thread.
type frameScheduler struct {
	timers []*frameTimer
}

func (s *frameScheduler) Schedule(interval time.Duration, tick func() bool) anim.TimerHandle {
	t := &frameTimer{
		interval: interval,
		next:     time.Now().Add(interval),
		tick:     tick,
	}
	s.timers = append(s.timers, t)
	return t
}

// Pump fires due timers and drops finished ones
func (s *frameScheduler) Pump(now time.Time) {
	live := s.timers[:0]
	for _, t := range s.timers {
		if t.stopped {
			continue
		}
		if !now.Before(t.next) {
			if !t.tick() {
				continue
			}
			t.next = now.Add(t.interval)
		}
		live = append(live, t)
	}
	s.timers = live
}

// RequestRedraw satisfies anim.Redrawer. The raylib loop renders
// every frame, so redraw hints need no bookkeeping here.
func (app *App) RequestRedraw() {}

// Project maps a world point to screen pixels. ok is false for points
// behind the camera or outside the window.
func (app *App) Project(world geometry.Vector3) (geometry.Vector2, bool) {
	cam := app.Camera.camera
	p := toRaylib(world)

	forward := rl.Vector3Subtract(cam.Target, cam.Position)
	toPoint := rl.Vector3Subtract(p, cam.Position)
	if forward.X*toPoint.X+forward.Y*toPoint.Y+forward.Z*toPoint.Z <= 0 {
		return geometry.Vector2{}, false
	}

	sp := rl.GetWorldToScreen(p, cam)
	if sp.X < 0 || sp.Y < 0 ||
		sp.X > float32(rl.GetScreenWidth()) || sp.Y > float32(rl.GetScreenHeight()) {
		return geometry.Vector2{}, false
	}
	return geometry.NewVector2(float64(sp.X), float64(sp.Y)), true
}

// pick probes every scene object under the cursor and returns the
// overall nearest element within the configured threshold
func (app *App) pick(cursor geometry.Vector2) (obj *scene.Object, point geometry.Vector3, kind snap.ElementKind, ok bool) {
	settings := app.Config.Current().Detection
	mode := snap.ParseDetectionMode(settings.Mode)

	bestDist := settings.Threshold
	for _, candidate := range app.Scene.Objects() {
		point2, kind2, hit := snap.FindClosest(candidate, cursor, app, mode, bestDist)
		if !hit {
			continue
		}
		screen, visible := app.Project(point2)
		if !visible {
			continue
		}
		if d := cursor.Distance(screen); d < bestDist {
			bestDist = d
			obj, point, kind, ok = candidate, point2, kind2, true
		}
	}
	return obj, point, kind, ok
}

// sceneCenter returns the center of the scene bounds, the camera
// focus and rotation pivot
func (app *App) sceneCenter() rl.Vector3 {
	min, max := app.Scene.BoundingBox()
	return toRaylib(min.Add(max).Mul(0.5))
}

// cursor3D is the pivot for the marker rotations: the camera target
func (app *App) cursor3D() geometry.Vector3 {
	t := app.Camera.target
	return geometry.NewVector3(float64(t.X), float64(t.Y), float64(t.Z))
}
