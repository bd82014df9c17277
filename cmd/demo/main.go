// Command demo is a first-person viewer for 3DS models.
package main

import (
	"fmt"
	"os"
	"runtime"

	"go.uber.org/zap"

	"github.com/Faultbox/demo3ds/internal/assets"
	"github.com/Faultbox/demo3ds/internal/config"
	"github.com/Faultbox/demo3ds/internal/engine/camera"
	"github.com/Faultbox/demo3ds/internal/engine/input"
	"github.com/Faultbox/demo3ds/internal/engine/renderer"
	"github.com/Faultbox/demo3ds/internal/engine/scene"
	"github.com/Faultbox/demo3ds/internal/engine/timing"
	"github.com/Faultbox/demo3ds/internal/engine/window"
	"github.com/Faultbox/demo3ds/internal/logger"
	"github.com/Faultbox/demo3ds/pkg/formats"
	"github.com/Faultbox/demo3ds/pkg/math"
)

const windowTitle = "3DS Demo"

func init() {
	runtime.LockOSThread()
}

// placed is a loaded mesh and where it is drawn.
type placed struct {
	mesh   *scene.Mesh
	offset [3]float32
}

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.InitWithOptions(logger.Options{
		Level:     cfg.Logging.Level,
		File:      fileConfig(cfg.Logging.LogFile),
		Console:   true,
		Developer: cfg.Developer,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Error("demo failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	if cfg.WriteConfig {
		if err := cfg.Save(); err != nil {
			logger.Warn("failed to save config", zap.Error(err))
		}
	}
	logger.Info("demo closed normally")
}

func fileConfig(path string) logger.FileConfig {
	if path == "" {
		return logger.FileConfig{}
	}
	return logger.DefaultFileConfig(path)
}

func run(cfg *config.Config) error {
	logger.Info("=== 3DS Demo ===", zap.String("data", cfg.Data.Dir))

	win, err := window.New(window.Config{
		Title:      windowTitle,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	}, logger.Named("window"))
	if err != nil {
		return err
	}
	defer win.Close()

	files := assets.NewManager(cfg.Data.Dir)
	defer files.Close()

	r, err := renderer.New(renderer.Config{
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		FOV:        cfg.Graphics.FOV,
		NearClip:   cfg.Graphics.NearClip,
		FarClip:    cfg.Graphics.FarClip,
		Anisotropy: cfg.Graphics.TextureAnisotropy,
	}, files, logger.Named("renderer"))
	if err != nil {
		return err
	}
	defer r.Close()

	enc, err := formats.LookupNameEncoding(cfg.Loader.NameEncoding)
	if err != nil {
		return err
	}
	s := scene.New(scene.Config{
		Logger:       logger.Named("scene"),
		Files:        files,
		Textures:     r,
		Buffers:      r,
		Mipmaps:      cfg.Loader.Mipmaps,
		KeepCPUCopy:  cfg.Loader.KeepCPUCopy,
		NameEncoding: enc,
	})
	defer s.Shutdown()

	var models []placed
	for _, mc := range cfg.Data.Models {
		m, err := s.LoadMesh(mc.Path, mc.Name)
		if err != nil {
			logger.Error("failed to load model", zap.String("path", mc.Path), zap.Error(err))
			continue
		}
		if cfg.Developer {
			scene.PrintMeshInfo(os.Stdout, m)
		}
		models = append(models, placed{mesh: m, offset: mc.Offset})
	}
	if len(models) == 0 {
		return fmt.Errorf("no models loaded from %s", cfg.Data.Dir)
	}

	cam := camera.New(vec3(cfg.Camera.Position), vec3(cfg.Camera.LookAt))
	cam.Speed = cfg.Camera.Speed
	look := &camera.MouseLook{
		Sensitivity: cfg.Input.Sensitivity,
		Yaw:         cfg.Input.Yaw,
		Pitch:       cfg.Input.Pitch,
		Filter:      cfg.Input.MouseFilter,
	}
	if cfg.Input.Mouse {
		win.GrabMouse(true)
	}

	in := input.New()
	clock := timing.NewClock(window.Ticks())
	lastFPS := -1

	for {
		if in.Update() {
			break
		}
		for _, e := range in.Events() {
			if e.Type == input.EventWindowResize {
				r.Resize(e.Width, e.Height)
			}
		}

		frameMS := clock.Tick(window.Ticks())
		if cfg.Input.Mouse {
			dx, dy := in.MouseMotion()
			look.Apply(cam, float32(dx), float32(dy))
		}
		cam.SetMovement(in.Controls().Axes())
		cam.Update(frameMS)

		r.Begin(cam.ViewMatrix())
		for _, p := range models {
			r.DrawMesh(p.mesh, p.offset)
		}
		r.End()

		if fps := clock.FPS(); fps != lastFPS {
			lastFPS = fps
			win.SetTitle(fmt.Sprintf("%s - %d fps", windowTitle, fps))
		}
		win.SwapBuffers()
	}

	if cfg.Input.Mouse {
		win.GrabMouse(false)
	}
	logger.Debug("final camera",
		zap.Float32s("position", arr3(cam.Position)),
		zap.Float32s("look_at", arr3(cam.LookAt)))
	return nil
}

func vec3(a [3]float32) math.Vec3 {
	return math.Vec3{X: a[0], Y: a[1], Z: a[2]}
}

func arr3(v math.Vec3) []float32 {
	return []float32{v.X, v.Y, v.Z}
}
