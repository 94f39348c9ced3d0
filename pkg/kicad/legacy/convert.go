package legacy

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/OpenTraceLab/OpenTraceSchema/pkg/kicad/geometry"
)

var versionPattern = regexp.MustCompile(`Version[ \t]+(\d+)`)

func convertSchematic(ast *schematicFile) (*Schematic, error) {
	sch := &Schematic{}
	if m := versionPattern.FindStringSubmatch(ast.Header); m != nil {
		sch.Version, _ = strconv.Atoi(m[1])
	}

	for _, e := range ast.Entries {
		switch {
		case e.Component != nil:
			c, err := convertComponent(e.Component)
			if err != nil {
				return nil, err
			}
			sch.Components = append(sch.Components, c)
		case e.Wire != nil:
			sch.Wires = append(sch.Wires, convertWire(e.Wire))
		case e.Label != nil:
			sch.Labels = append(sch.Labels, Label{
				Position:    flipped(e.Label.X, e.Label.Y),
				Orientation: int(e.Label.Orient),
				Size:        float64(e.Label.Size),
				Text:        unquote(e.Label.Text),
			})
		case e.Junction != nil:
			sch.Junctions = append(sch.Junctions, Junction{Position: flipped(e.Junction.X, e.Junction.Y)})
		case e.NoConn != nil:
			sch.NoConnections = append(sch.NoConnections, NoConnection{Position: flipped(e.NoConn.X, e.NoConn.Y)})
		case e.Note != nil:
			sch.Notes = append(sch.Notes, convertNote(e.Note))
		}
	}
	return sch, nil
}

// flipped converts a file coordinate into world space by negating Y.
func flipped(x, y number) geometry.Point2 {
	return geometry.Pt(float64(x), -float64(y))
}

func convertComponent(b *componentBlock) (ComponentInstance, error) {
	c := ComponentInstance{
		Name:      b.Name,
		Reference: b.Reference,
		Unit:      1,
		Convert:   1,
		Position:  flipped(b.X, b.Y),
		Rotation:  geometry.Orientation(float64(b.A), float64(b.B), float64(b.C), float64(b.D)),
	}

	// U <unit> <convert> <timestamp>; anything else is kept as defaults.
	if len(b.Unit) >= 2 {
		unit, uerr := strconv.Atoi(b.Unit[0])
		convert, cerr := strconv.Atoi(b.Unit[1])
		if uerr == nil && cerr == nil {
			c.Unit, c.Convert = unit, convert
		}
	}
	if len(b.Unit) >= 3 {
		c.Timestamp = b.Unit[2]
	}

	// Field positions are absolute in the file. They are kept in symbol
	// coordinates so they follow the instance when it moves or rotates.
	inverse := c.Rotation.Transpose()
	for _, f := range b.Fields {
		field, err := convertField(f)
		if err != nil {
			return ComponentInstance{}, fmt.Errorf("%w: component %s: %w", ErrParse, b.Reference, err)
		}
		field.Position = geometry.Point2{}.Add(inverse.TransformVector(field.Position.Sub(c.Position)))
		c.Fields = append(c.Fields, field)
	}
	return c, nil
}

func convertField(f *fieldLine) (Field, error) {
	field := Field{
		Index:    int(f.Index),
		Name:     unquote(f.Name),
		Text:     unquote(f.Text),
		Position: flipped(f.X, f.Y),
		Size:     float64(f.Size),
	}

	var err error
	if field.Orientation, err = parseTextOrientation(f.Orient); err != nil {
		return Field{}, err
	}

	// <flags...> <hjustify> <vjustify><italic><bold>
	n := len(f.Attrs)
	if n < 3 {
		return Field{}, fmt.Errorf("field %d: expected flags, justification and style", f.Index)
	}
	for _, flag := range f.Attrs[:n-2] {
		if !integerPattern.MatchString(flag) {
			return Field{}, fmt.Errorf("field %d: malformed flags %q", f.Index, flag)
		}
	}
	flags := f.Attrs[n-3]
	field.Visible = !strings.HasSuffix(flags, "1")

	if field.HJustify, err = geometry.ParseJustify(f.Attrs[n-2]); err != nil {
		return Field{}, err
	}
	if err := applyStyle(&field, f.Attrs[n-1]); err != nil {
		return Field{}, err
	}
	return field, nil
}

// applyStyle decodes the three letter vjustify/italic/bold token, e.g. "CNN".
func applyStyle(field *Field, style string) error {
	if len(style) != 3 {
		return fmt.Errorf("malformed text style %q", style)
	}
	v, err := geometry.ParseVJustify(style[0:1])
	if err != nil {
		return err
	}
	field.VJustify = v
	field.Italic = style[1] == 'I'
	field.Bold = style[2] == 'B'
	return nil
}

func parseTextOrientation(s string) (geometry.TextOrientation, error) {
	switch s {
	case "H":
		return geometry.Horizontal, nil
	case "V":
		return geometry.Vertical, nil
	}
	return 0, fmt.Errorf("invalid text orientation %q", s)
}

func convertWire(w *wireBlock) WireSegment {
	seg := WireSegment{
		Start: flipped(w.X1, w.Y1),
		End:   flipped(w.X2, w.Y2),
	}
	switch w.Kind {
	case "Bus":
		seg.Kind = KindBus
	case "Notes":
		seg.Kind = KindDotted
	default:
		seg.Kind = KindWire
	}
	return seg
}

// convertNote keeps the position when the header carries one. The header
// is free text: a note whose first two words are not numbers is still a
// note, placed at the origin. The text body is dropped.
func convertNote(n *noteBlock) Note {
	var note Note
	if len(n.Header) >= 2 {
		x, xerr := parseNumber(n.Header[0])
		y, yerr := parseNumber(n.Header[1])
		if xerr == nil && yerr == nil {
			note.Position = geometry.Pt(x, -y)
		}
	}
	return note
}

func convertLibrary(ast *libraryFile) (*Library, error) {
	lib := &Library{}
	if fields := strings.Fields(ast.Header); len(fields) >= 3 {
		lib.Version = fields[2]
	}
	for _, def := range ast.Components {
		c, err := convertSymbol(def)
		if err != nil {
			return nil, fmt.Errorf("%w: symbol %s: %w", ErrParse, def.Name, err)
		}
		lib.Components = append(lib.Components, c)
	}
	return lib, nil
}

func convertSymbol(def *symbolDef) (*Component, error) {
	c := &Component{
		Name:           unquote(def.Name),
		Reference:      def.Reference,
		DrawPinNumbers: true,
		DrawPinNames:   true,
		UnitCount:      1,
	}

	// DEF name ref unused text_offset draw_numbers draw_names unit_count ...
	if opts := def.Options; len(opts) >= 5 {
		if v, err := parseNumber(opts[1]); err == nil {
			c.TextOffset = v
		}
		c.DrawPinNumbers = opts[2] != "N"
		c.DrawPinNames = opts[3] != "N"
		if v, err := parseInteger(opts[4]); err == nil {
			c.UnitCount = v
		}
	}

	inFootprints := false
	for _, m := range def.Meta {
		head := m.Tokens[0]
		switch {
		case head == "$FPLIST":
			inFootprints = true
		case head == "$ENDFPLIST":
			inFootprints = false
		case inFootprints:
			c.Footprints = append(c.Footprints, m.Tokens...)
		case head == "ALIAS":
			c.Aliases = append(c.Aliases, m.Tokens[1:]...)
		case len(head) > 1 && head[0] == 'F' && integerPattern.MatchString(head[1:]):
			f, err := convertLibraryField(m.Tokens)
			if err != nil {
				return nil, err
			}
			c.Fields = append(c.Fields, f)
		}
	}

	for _, r := range def.Draw {
		e, err := convertRecord(r)
		if err != nil {
			return nil, err
		}
		c.Elements = append(c.Elements, e)
	}
	return c, nil
}

// convertLibraryField decodes F<n> "text" x y size H|V V|I hjustify style ["name"].
func convertLibraryField(tokens []string) (Field, error) {
	if len(tokens) < 9 {
		return Field{}, fmt.Errorf("field %s: too few values", tokens[0])
	}
	idx, err := parseInteger(tokens[0][1:])
	if err != nil {
		return Field{}, err
	}
	x, err := parseNumber(tokens[2])
	if err != nil {
		return Field{}, err
	}
	y, err := parseNumber(tokens[3])
	if err != nil {
		return Field{}, err
	}
	size, err := parseNumber(tokens[4])
	if err != nil {
		return Field{}, err
	}

	f := Field{
		Index:    idx,
		Text:     unquote(tokens[1]),
		Position: geometry.Pt(x, y),
		Size:     size,
		Visible:  tokens[6] != "I",
	}
	if f.Orientation, err = parseTextOrientation(tokens[5]); err != nil {
		return Field{}, err
	}
	if f.HJustify, err = geometry.ParseJustify(tokens[7]); err != nil {
		return Field{}, err
	}
	if err := applyStyle(&f, tokens[8]); err != nil {
		return Field{}, err
	}
	if len(tokens) > 9 {
		f.Name = unquote(tokens[9])
	}
	return f, nil
}

func convertRecord(r *symbolRecord) (GraphicElement, error) {
	switch {
	case r.Rect != nil:
		return Rectangle{
			Part:   part(r.Rect.Unit, r.Rect.Convert, r.Rect.Thickness),
			Start:  geometry.Pt(float64(r.Rect.X1), float64(r.Rect.Y1)),
			End:    geometry.Pt(float64(r.Rect.X2), float64(r.Rect.Y2)),
			Filled: isFilled(r.Rect.Fill),
		}, nil

	case r.Circle != nil:
		return Circle{
			Part:   part(r.Circle.Unit, r.Circle.Convert, r.Circle.Thickness),
			Center: geometry.Pt(float64(r.Circle.X), float64(r.Circle.Y)),
			Radius: float64(r.Circle.Radius),
			Filled: isFilled(r.Circle.Fill),
		}, nil

	case r.Arc != nil:
		a := r.Arc
		return CircleArc{
			Part:       part(a.Unit, a.Convert, a.Thickness),
			Center:     geometry.Pt(float64(a.X), float64(a.Y)),
			Radius:     float64(a.Radius),
			StartCoord: geometry.Pt(float64(a.StartX), float64(a.StartY)),
			EndCoord:   geometry.Pt(float64(a.EndX), float64(a.EndY)),
			StartAngle: float64(a.StartAngle),
			EndAngle:   float64(a.EndAngle),
			Filled:     isFilled(a.Fill),
		}, nil

	case r.Poly != nil:
		return convertPolygon(r.Poly)

	case r.Pin != nil:
		return convertPin(r.Pin)

	case r.Text != nil:
		return convertText(r.Text)
	}
	return nil, fmt.Errorf("empty drawing record")
}

func part(unit, convert integer, thickness number) Part {
	return Part{Unit: int(unit), Convert: int(convert), Thickness: float64(thickness)}
}

func isFilled(fill string) bool {
	return fill == "F" || fill == "f"
}

func convertPolygon(p *polyRecord) (GraphicElement, error) {
	count := int(p.Count)
	rest := p.Rest
	if count < 0 || len(rest) < 2*count || len(rest) > 2*count+1 {
		return nil, fmt.Errorf("polygon: expected %d points", count)
	}

	poly := Polygon{
		Part:   part(p.Unit, p.Convert, p.Thickness),
		Points: make([]geometry.Point2, 0, count),
	}
	for i := 0; i < count; i++ {
		x, err := parseNumber(rest[2*i])
		if err != nil {
			return nil, err
		}
		y, err := parseNumber(rest[2*i+1])
		if err != nil {
			return nil, err
		}
		poly.Points = append(poly.Points, geometry.Pt(x, y))
	}
	if len(rest) == 2*count+1 {
		poly.Filled = isFilled(rest[2*count])
	}
	return poly, nil
}

func convertPin(x *pinRecord) (GraphicElement, error) {
	orientation, err := geometry.ParsePinOrientation(x.Orient)
	if err != nil {
		return nil, err
	}
	pin := Pin{
		Part:           part(x.Unit, x.Convert, 0),
		Orientation:    orientation,
		Number:         unquote(x.Number),
		Position:       geometry.Pt(float64(x.X), float64(x.Y)),
		Length:         float64(x.Length),
		NumberSize:     float64(x.NumberSize),
		NameSize:       float64(x.NameSize),
		ElectricalType: x.Type,
		Shape:          x.Shape,
		Invisible:      strings.HasPrefix(x.Shape, "N"),
	}
	if name := unquote(x.Name); name != "~" {
		pin.Name = name
	}
	return pin, nil
}

func convertText(t *textRecord) (GraphicElement, error) {
	tf := TextField{
		Part:     part(t.Unit, t.Convert, 0),
		Content:  strings.ReplaceAll(unquote(t.Text), "~", " "),
		Position: geometry.Pt(float64(t.X), float64(t.Y)),
		Size:     float64(t.Size),
		Hidden:   t.Hidden != 0,
	}
	switch t.Angle {
	case 0:
		tf.Orientation = geometry.Horizontal
	case 900:
		tf.Orientation = geometry.Vertical
	default:
		return nil, fmt.Errorf("text: unsupported angle %d", t.Angle)
	}
	return tf, nil
}

// unquote strips surrounding double quotes and undoes \" and \\ escapes.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
		return strings.NewReplacer(`\"`, `"`, `\\`, `\`).Replace(s)
	}
	return s
}
