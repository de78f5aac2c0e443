package cmd

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/urfave/cli"

	"github.com/fresnel3d/fresnel/gpu"
	"github.com/fresnel3d/fresnel/scene"
	"github.com/fresnel3d/fresnel/trace"
)

func init() {
	// GLFW event handling must run on the main OS thread.
	runtime.LockOSThread()
}

// View opens an interactive window and path traces on the GPU while the
// camera rides the orbit. Escape closes the window.
func View(ctx *cli.Context) error {
	setupLogging(ctx)

	sc, err := scene.Preset(ctx.String("scene"))
	if err != nil {
		return err
	}

	if err := glfw.Init(); err != nil {
		return err
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	window, err := glfw.CreateWindow(ctx.Int("width"), ctx.Int("height"), "fresnel", nil, nil)
	if err != nil {
		return err
	}
	defer window.Destroy()

	app := gpu.NewApp(window)
	if err := app.Init(); err != nil {
		return err
	}

	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		app.Resize(width, height)
	})
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
		}
	})

	orbit := scene.DefaultOrbit()
	cam := scene.NewCamera()

	logger.Noticef("rendering %q on the GPU, escape closes", ctx.String("scene"))

	start := glfw.GetTime()
	lastTitle := 0
	for !window.ShouldClose() {
		glfw.PollEvents()

		t := float32(glfw.GetTime() - start)
		orbit.Aim(cam, t)

		app.Update(sc.Snapshot(), trace.Frame{
			CameraPos: cam.Position,
			InvView:   cam.InverseView(),
			Time:      t,
			Aspect:    float32(app.Config.Width) / float32(app.Config.Height),
			FOV:       cam.FOV,
		})
		app.Render()

		if sec := int(t); sec != lastTitle && app.FPS > 0 {
			lastTitle = sec
			window.SetTitle(fmt.Sprintf("fresnel  %dx%d  %.0f fps", app.Config.Width, app.Config.Height, app.FPS))
		}
	}
	return nil
}
