// Command bricksculpt sculpts brick models.
//
// It replays a recorded input script against a model and writes the result,
// or opens a window for interactive sculpting.
//
// Usage:
//
//	bricksculpt -grid model.yaml -script strokes.yaml [-out result.yaml] [-show] [-png layers.png]
//	bricksculpt -grid model.yaml -window [-watch]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gekko3d/bricksculpt"
	"github.com/gekko3d/bricksculpt/config"
	"github.com/gekko3d/bricksculpt/platform/glfwinput"
	"github.com/gekko3d/bricksculpt/voxelrt/rt/bricks"
	"github.com/gekko3d/bricksculpt/voxelrt/rt/core"
	"github.com/gekko3d/bricksculpt/voxelrt/rt/editor"
)

func init() {
	// GLFW event handling must run on the main thread.
	runtime.LockOSThread()
}

type options struct {
	configPath string
	gridPath   string
	scriptPath string
	outPath    string
	pngPath    string
	mode       string
	show       bool
	window     bool
	watch      bool
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "bricksculpt.toml", "configuration file (TOML or YAML)")
	flag.StringVar(&opts.gridPath, "grid", "", "model to sculpt (YAML)")
	flag.StringVar(&opts.scriptPath, "script", "", "recorded input to replay (YAML)")
	flag.StringVar(&opts.outPath, "out", "", "write the sculpted model here (YAML)")
	flag.StringVar(&opts.pngPath, "png", "", "export the layers of the result as PNG")
	flag.StringVar(&opts.mode, "mode", "", "start mode: draw, merge_split or paint (overrides the script)")
	flag.BoolVar(&opts.show, "show", false, "print the layers of the result")
	flag.BoolVar(&opts.window, "window", false, "sculpt interactively in a window")
	flag.BoolVar(&opts.watch, "watch", false, "reload the configuration file when it changes (with -window)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "bricksculpt - interactive brick model sculpting\n\n")
		fmt.Fprintf(os.Stderr, "Usage: %s -grid model.yaml (-script strokes.yaml | -window) [flags]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if opts.gridPath == "" || (opts.scriptPath == "" && !opts.window) {
		flag.Usage()
		os.Exit(2)
	}
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	loader := config.NewLoader(opts.configPath)
	defer loader.Close()
	cfg, err := loader.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := bricksculpt.NewDefaultLogger(cfg.Logging.Prefix, cfg.Logging.Debug)

	grid, err := loadGrid(opts.gridPath, cfg)
	if err != nil {
		return err
	}
	cfg.Model.Source = grid.Source

	var status bricksculpt.Status
	if opts.window {
		status, err = runWindow(opts, loader, cfg, grid, logger)
	} else {
		status, err = runScript(opts, cfg, grid, logger)
	}
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d bricks in %d cells\n", status, len(grid.Roots()), grid.Len())
	if opts.show {
		fmt.Print(renderLayers(grid))
	}
	if opts.pngPath != "" {
		if err := exportPNG(opts.pngPath, grid); err != nil {
			return fmt.Errorf("export png: %w", err)
		}
	}
	if opts.outPath != "" && status == bricksculpt.StatusFinished {
		if err := saveGrid(opts.outPath, grid); err != nil {
			return err
		}
	}
	return nil
}

func startMode(flagMode, scriptMode string) (bricksculpt.Mode, error) {
	if flagMode != "" {
		return parseMode(flagMode)
	}
	return parseMode(scriptMode)
}

func runScript(opts options, cfg *config.Config, grid *bricks.Grid, logger bricksculpt.Logger) (bricksculpt.Status, error) {
	sc, err := loadScript(opts.scriptPath)
	if err != nil {
		return 0, err
	}
	mode, err := startMode(opts.mode, sc.Mode)
	if err != nil {
		return 0, err
	}
	if sc.Material != "" {
		cfg.Model.Material = sc.Material
	}
	events, err := sc.events()
	if err != nil {
		return 0, err
	}

	scene := bricksculpt.NewBrickScene(grid)
	picker := editor.NewGridPicker(grid, sc.camera(grid), core.Region{Width: sc.Viewport.Width, Height: sc.Viewport.Height})
	picker.Hidden = scene.Hidden
	clock := &virtualClock{now: time.Now()}

	session, err := bricksculpt.NewSession(bricksculpt.Options{
		Grid:     grid,
		Picker:   picker,
		Redrawer: scene,
		Config:   cfg,
		Logger:   logger,
		Clock:    clock.Now,
		Mode:     mode,
	})
	if err != nil {
		return 0, err
	}
	return replay(session, events, clock), nil
}

func runWindow(opts options, loader *config.Loader, cfg *config.Config, grid *bricks.Grid, logger bricksculpt.Logger) (bricksculpt.Status, error) {
	mode, err := startMode(opts.mode, "")
	if err != nil {
		return 0, err
	}
	if err := glfw.Init(); err != nil {
		return 0, fmt.Errorf("init glfw: %w", err)
	}
	defer glfw.Terminate()

	const width, height = 1024, 768
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	win, err := glfw.CreateWindow(width, height, "bricksculpt", nil, nil)
	if err != nil {
		return 0, fmt.Errorf("create window: %w", err)
	}
	defer win.Destroy()

	poller := glfwinput.NewPoller(win, "bricksculpt")
	scene := bricksculpt.NewBrickScene(grid)
	w, h := poller.Size()
	picker := editor.NewGridPicker(grid, topDownCamera(grid), core.Region{Width: float64(w), Height: float64(h)})
	picker.Hidden = scene.Hidden

	session, err := bricksculpt.NewSession(bricksculpt.Options{
		Grid:     grid,
		Picker:   picker,
		Redrawer: scene,
		Window:   poller,
		Config:   cfg,
		Logger:   logger,
		Mode:     mode,
	})
	if err != nil {
		return 0, err
	}

	reloads := make(chan *config.Config, 1)
	if opts.watch {
		loader.OnChange(func(c *config.Config) {
			select {
			case reloads <- c:
			default:
			}
		})
		if err := loader.Watch(); err != nil {
			return 0, err
		}
		go func() {
			for err := range loader.Errors() {
				logger.Warnf("config watch: %v", err)
			}
		}()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	type outcome struct {
		status bricksculpt.Status
		err    error
	}
	done := make(chan outcome, 1)
	events := make(chan bricksculpt.Event, 64)
	go func() {
		st, err := session.Run(ctx, events, reloads)
		done <- outcome{st, err}
		cancel()
	}()

	pollErr := poller.Run(ctx, events, 16*time.Millisecond)
	cancel()
	res := <-done
	if pollErr != nil && !errors.Is(pollErr, context.Canceled) {
		return res.status, pollErr
	}
	if res.err != nil && !errors.Is(res.err, context.Canceled) {
		return res.status, res.err
	}
	return res.status, nil
}
