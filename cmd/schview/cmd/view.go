package cmd

import (
	"errors"
	"math"
	"net/http"
	"os"
	"time"

	"gioui.org/app"
	"gioui.org/f32"
	gioevent "gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/unit"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceSchema/internal/metrics"
	"github.com/OpenTraceLab/OpenTraceSchema/pkg/event"
	"github.com/OpenTraceLab/OpenTraceSchema/pkg/kicad/legacy"
	"github.com/OpenTraceLab/OpenTraceSchema/pkg/kicad/library"
	"github.com/OpenTraceLab/OpenTraceSchema/pkg/kicad/renderer"
	"github.com/OpenTraceLab/OpenTraceSchema/pkg/kicad/schematic"
	schrenderer "github.com/OpenTraceLab/OpenTraceSchema/pkg/kicad/schematic/renderer"
)

func runView(_ *cobra.Command, args []string) error {
	libs, file, err := load(args[0], args[1])
	if err != nil {
		return err
	}
	theme, err := schrenderer.ParseTheme(cfg.View.Theme)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	if cfg.Metrics.Address != "" {
		srv := serveMetrics(cfg.Metrics.Address, reg)
		defer srv.Close()
	}

	v := newViewer(libs, file, theme, reg)

	go func() {
		w := new(app.Window)
		w.Option(app.Title("Schematic Viewer - " + args[1]))
		w.Option(app.Size(unit.Dp(float32(cfg.View.Width)), unit.Dp(float32(cfg.View.Height))))

		if err := v.run(w); err != nil {
			logger.Error("viewer stopped", "error", err)
			os.Exit(1)
		}
		os.Exit(0)
	}()
	app.Main()
	return nil
}

func serveMetrics(addr string, reg *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "addr", addr, "error", err)
		}
	}()
	logger.Info("serving metrics", "addr", addr)
	return srv
}

type viewer struct {
	window *app.Window

	libs   *library.Libraries
	bus    *event.Bus
	schema *schematic.Schema
	camera *renderer.Camera
	target *renderer.GioTarget
	colors *schrenderer.SchematicColors

	// Mouse interaction
	lastPointerPos f32.Point
	cursor         f32.Point
	isDragging     bool

	size   [2]int
	fitted bool
}

func newViewer(libs *library.Libraries, file *legacy.Schematic, theme schrenderer.Theme, reg prometheus.Registerer) *viewer {
	v := &viewer{
		libs:   libs,
		camera: renderer.NewCamera(cfg.View.Width, cfg.View.Height),
		colors: schrenderer.GetSchematicColors(theme),
	}
	v.target = renderer.NewGioTarget(v.camera)
	v.bus = event.NewBus(event.WithLogger(logger), event.WithMetrics(metrics.NewBusMetrics(reg)))

	cache := schrenderer.NewSynchronizer(libs, v.target, v.camera,
		schrenderer.WithLogger(logger),
		schrenderer.WithMetrics(metrics.NewCacheMetrics(reg)),
		schrenderer.WithColors(v.colors),
	)
	v.bus.Register(cache)
	v.bus.Register(event.LogListener(logger))

	v.schema = schematic.New(v.bus, logger)
	v.schema.Load(file)
	return v
}

func (v *viewer) run(w *app.Window) error {
	v.window = w
	var ops op.Ops

	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err

		case app.FrameEvent:
			gtx := layout.Context{
				Ops:         &ops,
				Constraints: layout.Exact(e.Size),
				Metric:      e.Metric,
				Now:         e.Now,
				Source:      e.Source,
			}
			ops.Reset()

			if size := [2]int{e.Size.X, e.Size.Y}; size != v.size {
				v.size = size
				v.bus.Send(schematic.ResizeDrawArea{Width: size[0], Height: size[1]})
			}
			if !v.fitted {
				v.fitToView()
				v.fitted = true
			}

			v.handleInput(gtx)
			v.layout(gtx)
			e.Frame(gtx.Ops)
		}
	}
}

func (v *viewer) handleInput(gtx layout.Context) {
	// F for fit to view
	for {
		ev, ok := gtx.Event(key.Filter{Name: "F"})
		if !ok {
			break
		}
		if ke, ok := ev.(key.Event); ok && ke.State == key.Press {
			v.fitToView()
		}
	}

	// R rotates the component under the cursor
	for {
		ev, ok := gtx.Event(key.Filter{Name: "R"})
		if !ok {
			break
		}
		if ke, ok := ev.(key.Event); ok && ke.State == key.Press {
			v.rotateAtCursor()
		}
	}

	// V rotates the view a quarter turn
	for {
		ev, ok := gtx.Event(key.Filter{Name: "V"})
		if !ok {
			break
		}
		if ke, ok := ev.(key.Event); ok && ke.State == key.Press {
			v.camera.Rotate(90)
			v.viewChanged()
		}
	}

	// Q or Escape to quit
	for {
		ev, ok := gtx.Event(key.Filter{Name: "Q"}, key.Filter{Name: key.NameEscape})
		if !ok {
			break
		}
		if ke, ok := ev.(key.Event); ok && ke.State == key.Press {
			os.Exit(0)
		}
	}

	// Handle mouse events
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target:  v,
			Kinds:   pointer.Press | pointer.Drag | pointer.Release | pointer.Move | pointer.Scroll,
			ScrollY: pointer.ScrollRange{Min: -100, Max: 100},
		})
		if !ok {
			break
		}

		pe, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		switch pe.Kind {
		case pointer.Press:
			if pe.Buttons == pointer.ButtonPrimary {
				v.isDragging = true
				v.lastPointerPos = pe.Position
			}

		case pointer.Drag:
			if v.isDragging && pe.Buttons == pointer.ButtonPrimary {
				deltaX := float64(pe.Position.X - v.lastPointerPos.X)
				deltaY := float64(pe.Position.Y - v.lastPointerPos.Y)
				v.camera.Pan(deltaX, deltaY)
				v.lastPointerPos = pe.Position
				v.viewChanged()
			}

		case pointer.Release:
			v.isDragging = false

		case pointer.Move:
			v.cursor = pe.Position

		case pointer.Scroll:
			// Zoom at cursor position, scrolling up zooms in
			zoomFactor := math.Max(0.5, math.Min(1.5, 1.0-float64(pe.Scroll.Y)*0.01))
			v.camera.ZoomAt(float64(pe.Position.X), float64(pe.Position.Y), zoomFactor)
			v.viewChanged()
		}
	}
}

func (v *viewer) viewChanged() {
	v.bus.Send(schematic.ViewStateChanged{})
	if v.window != nil {
		v.window.Invalidate()
	}
}

func (v *viewer) fitToView() {
	bbox := v.schema.BoundingBox(v.libs)
	if bbox.Width() <= 0 || bbox.Height() <= 0 {
		logger.Info("schematic has no content to fit")
		return
	}

	v.camera.Fit(bbox)
	logger.Debug("fit to view", "min", bbox.Min, "max", bbox.Max, "zoom", v.camera.Zoom)
	v.viewChanged()
}

func (v *viewer) rotateAtCursor() {
	world := v.camera.ScreenToWorld(float64(v.cursor.X), float64(v.cursor.Y))
	inst, err := v.schema.ComponentAt(world, v.libs)
	if err != nil {
		return
	}
	if err := v.schema.RotateComponent(inst.ID()); err != nil {
		logger.Warn("rotate failed", "reference", inst.Reference, "error", err)
		return
	}
	v.window.Invalidate()
}

func (v *viewer) layout(gtx layout.Context) layout.Dimensions {
	// Catch pointer events over the whole canvas
	area := clip.Rect{Max: gtx.Constraints.Max}.Push(gtx.Ops)
	gioevent.Op(gtx.Ops, v)
	area.Pop()

	v.target.Begin(gtx)
	v.target.Fill(v.colors.Background)
	v.bus.Send(schematic.DrawSchema{})

	return layout.Dimensions{Size: gtx.Constraints.Max}
}
