package main

import (
	"flag"
	"fmt"
	"os"

	"transform-demo/core"
	"transform-demo/internal/opengl"
	"transform-demo/scene"
)

// binding maps a held key pair to a control, in units per second.
type binding struct {
	dec, inc int
	control  scene.Control
	rate     float32
}

var bindings = []binding{
	{core.KeyDown, core.KeyUp, scene.ControlFOV, 40},
	{core.KeyLeft, core.KeyRight, scene.ControlPanSpeed, 1},
	{core.KeyPageDown, core.KeyPageUp, scene.ControlPanRadius, 5},
	{core.KeyLeftBracket, core.KeyRightBracket, scene.ControlOrthographicSize, 8},
}

// Controller turns keyboard state into scene adjustments.
type Controller struct {
	orthoKeyWasDown bool
	saveKeyWasDown  bool
}

func (c *Controller) Update(window *core.Window, s *scene.Scene, deltaTime float32) (save bool) {
	for _, b := range bindings {
		var dir float32
		if window.IsKeyPressed(b.dec) {
			dir--
		}
		if window.IsKeyPressed(b.inc) {
			dir++
		}
		if dir != 0 {
			s.Apply(b.control, dir*b.rate*deltaTime)
		}
	}

	orthoDown := window.IsKeyPressed(core.KeyO)
	if orthoDown && !c.orthoKeyWasDown {
		mode := "perspective"
		if s.ToggleOrthographic() {
			mode = "orthographic"
		}
		window.SetTitle(fmt.Sprintf("%s (%s)", core.DefaultWindowConfig().Title, mode))
	}
	c.orthoKeyWasDown = orthoDown

	saveDown := window.IsKeyPressed(core.KeyS)
	save = saveDown && !c.saveKeyWasDown
	c.saveKeyWasDown = saveDown
	return save
}

var keyNames = map[int]string{
	core.KeyDown:         "Down",
	core.KeyUp:           "Up",
	core.KeyLeft:         "Left",
	core.KeyRight:        "Right",
	core.KeyPageDown:     "PgDn",
	core.KeyPageUp:       "PgUp",
	core.KeyLeftBracket:  "[",
	core.KeyRightBracket: "]",
}

func printControls(s *scene.Scene) {
	fmt.Println("Controls:")
	for _, b := range bindings {
		r := b.control.Range()
		fmt.Printf("  %s/%s  %-20s %6.2f  [%g, %g]\n",
			keyNames[b.dec], keyNames[b.inc], b.control, s.Value(b.control), r.Min, r.Max)
	}
	fmt.Println("  O  toggle orthographic, S  save, Esc  quit")
}

func main() {
	scenePath := flag.String("scene", "", "YAML scene file (default: built-in six cubes)")
	watch := flag.Bool("watch", false, "reload the scene file when it changes")
	flag.Parse()

	if err := run(*scenePath, *watch); err != nil {
		fmt.Fprintf(os.Stderr, "transformations: %v\n", err)
		os.Exit(1)
	}
}

func run(scenePath string, watch bool) error {
	s := scene.DefaultScene()
	if scenePath != "" {
		loaded, err := scene.LoadScene(scenePath)
		if err != nil {
			return err
		}
		s = loaded
		fmt.Printf("Loaded scene %q (%d objects)\n", scenePath, len(s.Objects))
	}

	window, err := core.NewWindow(core.DefaultWindowConfig())
	if err != nil {
		return err
	}
	defer window.Destroy()

	renderer, err := opengl.NewRenderer()
	if err != nil {
		return err
	}
	defer renderer.Destroy()
	fmt.Printf("OpenGL %s\n", renderer.Version())

	renderer.SetViewport(window.Width, window.Height)
	s.Resize(window.Width, window.Height)
	window.SetResizeCallback(func(width, height int) {
		renderer.SetViewport(width, height)
		s.Resize(width, height)
	})

	var (
		watcher *scene.Watcher
		events  <-chan string
	)
	if watch && scenePath != "" {
		watcher, err = scene.NewWatcher(scenePath)
		if err != nil {
			return err
		}
		defer watcher.Close()
		events = watcher.Events
		fmt.Printf("Watching %s for changes\n", scenePath)
	}

	printControls(s)

	controller := &Controller{}
	lastFrameTime := window.Time()
	for !window.ShouldClose() {
		select {
		case name := <-events:
			reloaded, err := scene.LoadScene(name)
			if err != nil {
				fmt.Printf("Reload failed (keeping current scene): %v\n", err)
				break
			}
			reloaded.Resize(window.Width, window.Height)
			*s = *reloaded
			fmt.Printf("Reloaded scene (%d objects)\n", len(s.Objects))
		default:
		}

		time := window.Time()
		deltaTime := time - lastFrameTime
		lastFrameTime = time

		if controller.Update(window, s, deltaTime) && scenePath != "" {
			if err := scene.SaveScene(scenePath, s); err != nil {
				fmt.Printf("Save failed: %v\n", err)
			} else {
				// Events arrive only after writes settle.
				if watcher != nil {
					watcher.SkipNext(scenePath)
				}
				fmt.Printf("Saved scene to %s\n", scenePath)
			}
		}

		s.Update(time)
		renderer.Render(s)

		window.PollEvents()
		window.SwapBuffers()
	}

	return nil
}
