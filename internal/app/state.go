package app

import (
	"sync/atomic"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog"

	"github.com/canopy-cad/canopy/internal/config"
	"github.com/canopy-cad/canopy/pkg/anim"
	"github.com/canopy-cad/canopy/pkg/scene"
	"github.com/canopy-cad/canopy/pkg/snap"
	"github.com/canopy-cad/canopy/pkg/watcher"
)

// App is the interactive viewer: the scene, the marker state and its
// operations, plus the raylib camera and window plumbing.
type App struct {
	Scene  *scene.Scene
	Marker *snap.State
	Engine *anim.Engine
	Ops    *snap.Ops

	Camera      CameraState
	View        ViewSettings
	Interaction InteractionState
	FileWatch   FileWatchState
	Status      StatusState

	Config *config.Store
	Log    zerolog.Logger

	scheduler *frameScheduler
}

// CameraState holds all camera-related state
type CameraState struct {
	camera        rl.Camera3D
	distance      float32
	angleX        float32
	angleY        float32
	target        rl.Vector3 // Current camera target (can be panned)
	defaultDist   float32    // Default camera distance (for reset)
	defaultAngleX float32    // Default camera angle X (for reset)
	defaultAngleY float32    // Default camera angle Y (for reset)
}

// ViewSettings holds display settings
type ViewSettings struct {
	showWireframe bool
	showFilled    bool
	showHelp      bool
}

// InteractionState holds mouse and interaction state
type InteractionState struct {
	mouseDownPos rl.Vector2
	mouseMoved   bool
	isPanning    bool
}

// FileWatchState holds file watching and reload state
type FileWatchState struct {
	fileWatcher *watcher.FileWatcher
	objects     map[string]*scene.Object // source path → scene object
	pending     atomic.Value             // string: path that needs reloading
}

// StatusState holds the transient status line
type StatusState struct {
	message string
	setAt   time.Time
}

func (s *StatusState) set(msg string) {
	s.message = msg
	s.setAt = time.Now()
}

func (s *StatusState) current() string {
	if time.Since(s.setAt) > 4*time.Second {
		return ""
	}
	return s.message
}
