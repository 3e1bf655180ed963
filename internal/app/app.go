package app

import (
	"math"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog"

	"github.com/canopy-cad/canopy/internal/config"
	"github.com/canopy-cad/canopy/pkg/anim"
	"github.com/canopy-cad/canopy/pkg/scene"
	"github.com/canopy-cad/canopy/pkg/snap"
)

// Options configures a viewer session
type Options struct {
	Files      []string
	ConfigPath string
	Log        zerolog.Logger
}

// Run opens the viewer window and blocks until it is closed
func Run(opts Options) error {
	store, err := config.Load(opts.ConfigPath, opts.Log)
	if err != nil {
		return err
	}
	store.Watch()

	app := &App{
		Scene:  scene.New(),
		Config: store,
		Log:    opts.Log,
		View: ViewSettings{
			showWireframe: true,
			showFilled:    true,
		},
		scheduler: &frameScheduler{},
	}

	if err := app.loadScene(opts.Files); err != nil {
		return err
	}

	app.Marker = snap.NewState(app, opts.Log)
	app.Engine = anim.NewEngine(app.scheduler, app.Marker, app, opts.Log)
	app.Engine.SetEnabledFunc(func() bool {
		return app.Config.Current().Animation.Enabled
	})
	app.Ops = snap.NewOps(app.Marker, app.Engine, opts.Log)
	app.Ops.Cursor = app.cursor3D

	if err := app.setupFileWatcher(); err != nil {
		app.Log.Warn().Err(err).Msg("file watching unavailable, auto-reload disabled")
	} else if app.FileWatch.fileWatcher != nil {
		defer app.FileWatch.fileWatcher.Close()
	}

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagMsaa4xHint)
	rl.InitWindow(1400, 900, "canopy")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)
	rl.SetExitKey(0) // Escape clears the selection instead of quitting

	app.setupCamera()

	for !rl.WindowShouldClose() {
		ctrlPressed := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl)
		if ctrlPressed && rl.IsKeyPressed(rl.KeyQ) {
			break
		}

		app.applyPendingReload()
		app.scheduler.Pump(time.Now())
		app.handleInput()
		app.updateCamera()
		app.render()
	}

	return nil
}

// setupCamera frames the scene bounds
func (app *App) setupCamera() {
	min, max := app.Scene.BoundingBox()
	size := max.Sub(min)
	maxDim := math.Max(size.X, math.Max(size.Y, size.Z))
	if maxDim == 0 {
		maxDim = 2
	}
	distance := float32(maxDim * 2.0)

	app.Camera.target = app.sceneCenter()
	app.Camera.distance = distance
	app.Camera.angleX = 0.3
	app.Camera.angleY = 0.3

	app.Camera.defaultDist = distance
	app.Camera.defaultAngleX = 0.3
	app.Camera.defaultAngleY = 0.3

	app.Camera.camera = rl.Camera3D{
		Position:   rl.Vector3{X: 0, Y: 0, Z: distance},
		Target:     app.Camera.target,
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       45.0,
		Projection: rl.CameraPerspective,
	}
}
