package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceSchema/pkg/event"
	"github.com/OpenTraceLab/OpenTraceSchema/pkg/kicad/legacy"
	"github.com/OpenTraceLab/OpenTraceSchema/pkg/kicad/renderer"
	"github.com/OpenTraceLab/OpenTraceSchema/pkg/kicad/schematic"
	schrenderer "github.com/OpenTraceLab/OpenTraceSchema/pkg/kicad/schematic/renderer"
)

var infoCmd = &cobra.Command{
	Use:   "info <library.lib> <schematic.sch>",
	Short: "Show schematic information",
	Long: `Load a schematic and its library without opening a window and print
entity counts, the bounding box and any unresolved symbol references.`,
	Args: cobra.ExactArgs(2),
	RunE: runInfo,
}

var (
	listReferences bool
	showComponent  string
)

func init() {
	infoCmd.Flags().BoolVar(&listReferences, "references", false, "list every reference designator")
	infoCmd.Flags().StringVar(&showComponent, "component", "", "show details of the component with this reference")
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	libs, file, err := load(args[0], args[1])
	if err != nil {
		return err
	}

	// Render headless so the summary reflects what the viewer would draw
	target := &renderer.Recorder{}
	bus := event.NewBus(event.WithLogger(logger))
	cache := schrenderer.NewSynchronizer(libs, target, renderer.NewCamera(0, 0), schrenderer.WithLogger(logger))
	bus.Register(cache)
	schema := schematic.New(bus, logger)
	schema.Load(file)
	bus.Send(schematic.DrawSchema{})

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Library: %s (%d symbols)\n", args[0], libs.Len())
	fmt.Fprintf(out, "Schematic: %s\n", args[1])
	fmt.Fprintf(out, "Version: %d\n", file.Version)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "Statistics:")
	fmt.Fprintf(out, "  Components: %d\n", len(schema.Components()))
	printWires(out, schema.Wires())
	fmt.Fprintf(out, "  Labels: %d\n", len(schema.Labels()))
	fmt.Fprintf(out, "  Junctions: %d\n", len(schema.Junctions()))
	fmt.Fprintf(out, "  No-connects: %d\n", len(schema.NoConnections()))
	fmt.Fprintf(out, "  Notes: %d\n", len(schema.Notes()))
	fmt.Fprintf(out, "  Drawables: %d (%d primitives)\n", cache.Len(), len(target.Ops()))
	fmt.Fprintln(out)

	bb := schema.BoundingBox(libs)
	fmt.Fprintf(out, "Bounding box: (%g, %g) to (%g, %g)\n", bb.Min.X, bb.Min.Y, bb.Max.X, bb.Max.Y)

	if missing := schema.Unresolved(libs); len(missing) > 0 {
		fmt.Fprintf(out, "Unresolved symbols (%d):\n", len(missing))
		for _, name := range missing {
			fmt.Fprintf(out, "  %s\n", name)
		}
	}

	if listReferences {
		refs := schema.References()
		fmt.Fprintf(out, "\nReferences (%d):\n", len(refs))
		for _, ref := range refs {
			fmt.Fprintf(out, "  %s\n", ref)
		}
	}

	if showComponent != "" {
		c, err := schema.ComponentByReference(showComponent)
		if err != nil {
			return err
		}
		printComponent(out, c)
	}
	return nil
}

func printComponent(out io.Writer, c schematic.ComponentInstance) {
	fmt.Fprintf(out, "\nComponent %s:\n", c.Reference)
	fmt.Fprintf(out, "  ID: %s\n", c.ID())
	fmt.Fprintf(out, "  Symbol: %s\n", c.Name)
	fmt.Fprintf(out, "  Unit: %d\n", c.Unit)
	fmt.Fprintf(out, "  Position: (%g, %g)\n", c.Position.X, c.Position.Y)
	for _, f := range c.Fields {
		if f.Text == "" || f.Text == "~" {
			continue
		}
		fmt.Fprintf(out, "  F%d: %s\n", f.Index, f.Text)
	}
}

func printWires(out io.Writer, wires []schematic.WireSegment) {
	counts := make(map[legacy.WireKind]int)
	for _, w := range wires {
		counts[w.Kind]++
	}
	fmt.Fprintf(out, "  Wires: %d (wire %d, bus %d, dotted %d)\n",
		len(wires), counts[legacy.KindWire], counts[legacy.KindBus], counts[legacy.KindDotted])
}
