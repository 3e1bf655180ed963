package app

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/canopy-cad/canopy/pkg/scene"
	"github.com/canopy-cad/canopy/pkg/watcher"
)

const reloadDebounce = 300 * time.Millisecond

// loadScene loads every STL file into the scene. With no files the
// scene gets a demo cube so the markers have something to snap to.
func (app *App) loadScene(files []string) error {
	app.FileWatch.objects = make(map[string]*scene.Object)

	if len(files) == 0 {
		app.Scene.Add(scene.NewObject("cube", scene.UnitCube()))
		return nil
	}

	for _, file := range files {
		obj, err := scene.LoadSTL(file)
		if err != nil {
			return fmt.Errorf("loading %s: %w", file, err)
		}
		app.Scene.Add(obj)
		app.FileWatch.objects[file] = obj

		app.Log.Info().
			Str("file", filepath.Base(file)).
			Int("vertices", len(obj.Mesh().Vertices)).
			Int("faces", len(obj.Mesh().Faces)).
			Msg("model loaded")
	}
	return nil
}

// setupFileWatcher arms auto-reload for the loaded model files
func (app *App) setupFileWatcher() error {
	if len(app.FileWatch.objects) == 0 {
		return nil
	}

	fw, err := watcher.NewFileWatcher(reloadDebounce, app.Log)
	if err != nil {
		return err
	}

	files := make([]string, 0, len(app.FileWatch.objects))
	for file := range app.FileWatch.objects {
		files = append(files, file)
	}

	// The callback runs on the watcher goroutine; the actual reload
	// happens on the main thread in applyPendingReload
	if err := fw.Watch(files, func(path string) {
		app.FileWatch.pending.Store(path)
	}); err != nil {
		fw.Close()
		return err
	}

	fw.Start()
	app.FileWatch.fileWatcher = fw
	return nil
}

// applyPendingReload swaps in the new mesh for a changed model file.
// Marker locations are left as they are; owners stay valid because
// the object identity is preserved.
func (app *App) applyPendingReload() {
	v := app.FileWatch.pending.Swap("")
	path, _ := v.(string)
	if path == "" {
		return
	}

	obj, ok := app.FileWatch.objects[path]
	if !ok {
		return
	}

	loaded, err := scene.LoadSTL(path)
	if err != nil {
		app.Log.Error().Err(err).Str("file", path).Msg("model reload failed")
		app.Status.set(fmt.Sprintf("reload failed: %s", filepath.Base(path)))
		return
	}

	obj.SetMesh(loaded.Mesh())
	app.Log.Info().Str("file", filepath.Base(path)).Msg("model reloaded")
	app.Status.set(fmt.Sprintf("reloaded %s", filepath.Base(path)))
}
