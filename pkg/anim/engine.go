package anim

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/canopy-cad/canopy/pkg/geometry"
)

// Scheduler is the host's repeating-callback facility. The tick
// function is invoked at roughly the given interval until it returns
// false or the handle is cancelled.
type Scheduler interface {
	Schedule(interval time.Duration, tick func() bool) TimerHandle
}

// TimerHandle cancels a scheduled callback
type TimerHandle interface {
	Cancel()
}

// Redrawer requests a host redraw; the hint is coalescable
type Redrawer interface {
	RequestRedraw()
}

// DisplaySink receives the interpolated marker display values each
// tick. Draw positions are cleared first and only re-set by live
// move animations, so an empty tick falls back to committed
// positions.
type DisplaySink interface {
	ClearDrawPositions()
	SetDrawPosition(isPrimary bool, pos geometry.Vector3)
	SetBounceScale(isPrimary bool, scale float64)
}

// SegmentSample is one renderable line segment from a live
// animation. Pivot is set for rotation sweeps so the renderer can
// mark the rotation center.
type SegmentSample struct {
	Start   geometry.Vector3
	End     geometry.Vector3
	Opacity float64
	Pivot   *geometry.Vector3
}

// Engine advances all live animations plus at most one preview on a
// lazily armed timer. Everything runs on the host's main thread; the
// timer self-cancels when no animations remain.
type Engine struct {
	scheduler Scheduler
	sink      DisplaySink
	redraw    Redrawer
	log       zerolog.Logger

	now     func() time.Time
	enabled func() bool

	animations []Animation
	preview    Animation
	handle     TimerHandle
}

// NewEngine creates an idle engine. The timer is armed on the first
// Add or SetPreview call.
func NewEngine(scheduler Scheduler, sink DisplaySink, redraw Redrawer, log zerolog.Logger) *Engine {
	return &Engine{
		scheduler: scheduler,
		sink:      sink,
		redraw:    redraw,
		log:       log,
		now:       time.Now,
		enabled:   func() bool { return true },
	}
}

// SetClock replaces the engine's time source (tests)
func (e *Engine) SetClock(now func() time.Time) { e.now = now }

// Now returns the engine's current time
func (e *Engine) Now() time.Time { return e.now() }

// SetEnabledFunc installs the global animation toggle. When it
// returns false new animations are dropped and the next tick clears
// everything.
func (e *Engine) SetEnabledFunc(f func() bool) { e.enabled = f }

// Enabled reports the global animation toggle
func (e *Engine) Enabled() bool { return e.enabled() }

// Add enqueues a committed animation
func (e *Engine) Add(a Animation) {
	if !e.enabled() {
		return
	}
	e.animations = append(e.animations, a)
	e.ensureTimer()
}

// SetPreview replaces the current preview animation. Only one
// preview is visible at a time.
func (e *Engine) SetPreview(a Animation) {
	if !e.enabled() {
		return
	}
	if e.preview != nil {
		e.preview.Cancel()
	}
	e.preview = a
	if a != nil {
		e.ensureTimer()
	}
	if e.redraw != nil {
		e.redraw.RequestRedraw()
	}
}

// CancelPreview discards the preview, if any. Idempotent.
func (e *Engine) CancelPreview() {
	if e.preview == nil {
		return
	}
	e.preview.Cancel()
	e.preview = nil
	if e.redraw != nil {
		e.redraw.RequestRedraw()
	}
}

// Clear cancels every live animation and the preview and resets the
// transient display state. Idempotent.
func (e *Engine) Clear() {
	for _, a := range e.animations {
		a.Cancel()
	}
	e.animations = e.animations[:0]
	e.CancelPreview()

	if e.sink != nil {
		e.sink.ClearDrawPositions()
		e.sink.SetBounceScale(true, 1.0)
		e.sink.SetBounceScale(false, 1.0)
	}
}

// Active reports whether any animation or preview is live
func (e *Engine) Active() bool {
	return len(e.animations) > 0 || e.preview != nil
}

// ensureTimer arms the scheduler if it is not already running
func (e *Engine) ensureTimer() {
	if e.handle != nil || e.scheduler == nil {
		return
	}
	e.handle = e.scheduler.Schedule(TickInterval, e.Tick)
}

// Tick advances one frame: drops finished animations, publishes
// interpolated display values, and requests a redraw. It returns
// false (do not reschedule) once nothing is live. Hosts that pump
// frames themselves may call it directly instead of providing a
// Scheduler.
func (e *Engine) Tick() bool {
	if !e.enabled() {
		e.Clear()
		e.handle = nil
		return false
	}

	now := e.now()

	live := e.animations[:0]
	for _, a := range e.animations {
		if !a.Done() {
			live = append(live, a)
		}
	}
	e.animations = live

	if e.preview != nil && e.preview.Done() {
		e.preview = nil
	}

	if e.sink != nil {
		e.sink.ClearDrawPositions()
		for _, a := range e.animations {
			e.publish(a, now)
		}
	}

	if e.redraw != nil {
		e.redraw.RequestRedraw()
	}

	if len(e.animations) > 0 || e.preview != nil {
		return true
	}
	e.handle = nil
	return false
}

// publish pushes one animation's current value into the sink. A
// panic in one animation is logged and must not take down the
// scheduler or the other animations.
func (e *Engine) publish(a Animation, now time.Time) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error().Interface("panic", r).Msg("animation update failed")
			a.Cancel()
		}
	}()

	switch anim := a.(type) {
	case *Bounce:
		e.sink.SetBounceScale(anim.IsPrimary, anim.Scale(now))
	case *Move:
		pos, scale := anim.Position(now)
		e.sink.SetDrawPosition(anim.IsPrimary, pos)
		e.sink.SetBounceScale(anim.IsPrimary, scale)
	}
}

// VisibleSegments samples every live segment animation (committed
// and preview) for the renderer. Segments too short or too faint to
// draw are skipped.
func (e *Engine) VisibleSegments() []SegmentSample {
	now := e.now()
	var out []SegmentSample

	sample := func(a Animation) {
		defer func() {
			if r := recover(); r != nil {
				e.log.Error().Interface("panic", r).Msg("animation sample failed")
				a.Cancel()
			}
		}()

		seg, ok := a.(SegmentAnimation)
		if !ok || a.Done() {
			return
		}
		start, end, opacity := seg.Segment(now)
		if end.Sub(start).Length() < 0.001 || opacity < 0.01 {
			return
		}
		s := SegmentSample{Start: start, End: end, Opacity: opacity}
		switch sw := a.(type) {
		case *RotationSweep:
			pivot := sw.Pivot
			s.Pivot = &pivot
		case *EdgeRotationSweep:
			center := sw.Center
			s.Pivot = &center
		}
		out = append(out, s)
	}

	for _, a := range e.animations {
		sample(a)
	}
	if e.preview != nil {
		sample(e.preview)
	}
	return out
}

// Bounce triggers a placement bounce on a marker
func (e *Engine) Bounce(isPrimary bool) {
	e.Add(NewBounce(e.now(), isPrimary))
}

// MoveMarker triggers a straight marker move
func (e *Engine) MoveMarker(from, to geometry.Vector3, isPrimary bool, delay time.Duration) {
	e.Add(NewMove(e.now(), from, to, isPrimary, delay))
}

// SwapMarkers triggers the avoidance-aware move pair for a swap:
// the primary sweeps a→b, the secondary b→a slightly delayed, each
// bowing around the other's path.
func (e *Engine) SwapMarkers(a, b geometry.Vector3) {
	now := e.now()
	e.Add(NewAvoidingMove(now, a, b, b, a, true, 0))
	e.Add(NewAvoidingMove(now, b, a, a, b, false, SecondaryDelay))
}

// PreviewLine shows a line draw/hold/erase preview
func (e *Engine) PreviewLine(from, to geometry.Vector3, eraseFromStart bool) {
	e.SetPreview(NewLineDraw(e.now(), from, to, eraseFromStart))
}

// PreviewRotation shows a rotation sweep preview around a pivot
func (e *Engine) PreviewRotation(pivot, from, to geometry.Vector3) {
	e.SetPreview(NewRotationSweep(e.now(), pivot, from, to))
}

// PreviewEdgeRotation shows an edge rotation preview
func (e *Engine) PreviewEdgeRotation(center, startDir, targetDir geometry.Vector3, length float64) {
	e.SetPreview(NewEdgeRotationSweep(e.now(), center, startDir, targetDir, length))
}
