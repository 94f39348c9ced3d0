package geometry

import "fmt"

// PinOrientation is the direction a library pin points in.
type PinOrientation int

const (
	PinUp PinOrientation = iota
	PinDown
	PinRight
	PinLeft
)

// ParsePinOrientation maps the library letters U, D, R and L.
func ParsePinOrientation(s string) (PinOrientation, error) {
	switch s {
	case "U":
		return PinUp, nil
	case "D":
		return PinDown, nil
	case "R":
		return PinRight, nil
	case "L":
		return PinLeft, nil
	}
	return 0, fmt.Errorf("invalid pin orientation %q", s)
}

func (o PinOrientation) String() string {
	switch o {
	case PinUp:
		return "Up"
	case PinDown:
		return "Down"
	case PinRight:
		return "Right"
	case PinLeft:
		return "Left"
	}
	return fmt.Sprintf("PinOrientation(%d)", int(o))
}

// Unit returns the screen-space (Y-down) unit vector for o.
func (o PinOrientation) Unit() Vector2 {
	switch o {
	case PinUp:
		return Vector2{X: 0, Y: -1}
	case PinDown:
		return Vector2{X: 0, Y: 1}
	case PinRight:
		return Vector2{X: 1, Y: 0}
	default:
		return Vector2{X: -1, Y: 0}
	}
}

// TextOrientation is the layout axis of pin labels for o.
func (o PinOrientation) TextOrientation() TextOrientation {
	if o == PinUp || o == PinDown {
		return Vertical
	}
	return Horizontal
}

// NumberJustify is the horizontal anchor of the pin number, which sits
// at the outward end of the pin.
func (o PinOrientation) NumberJustify() Justify {
	switch o {
	case PinUp, PinRight:
		return JustifyRight
	default:
		return JustifyLeft
	}
}

// NameJustify is the horizontal anchor of the pin name, placed at the
// inward end. It is the complement of NumberJustify.
func (o PinOrientation) NameJustify() Justify {
	return o.NumberJustify().Opposite()
}

// TextOrientation is the layout axis of a piece of text.
type TextOrientation int

const (
	Horizontal TextOrientation = iota
	Vertical
)

func (o TextOrientation) String() string {
	if o == Vertical {
		return "Vertical"
	}
	return "Horizontal"
}

// Justify anchors text relative to its reference point.
type Justify int

const (
	JustifyLeft Justify = iota
	JustifyCenter
	JustifyRight
)

// ParseJustify maps the file letters L, C and R.
func ParseJustify(s string) (Justify, error) {
	switch s {
	case "L":
		return JustifyLeft, nil
	case "C":
		return JustifyCenter, nil
	case "R":
		return JustifyRight, nil
	}
	return 0, fmt.Errorf("invalid justification %q", s)
}

// Opposite swaps Left and Right. Center is unchanged.
func (j Justify) Opposite() Justify {
	switch j {
	case JustifyLeft:
		return JustifyRight
	case JustifyRight:
		return JustifyLeft
	}
	return j
}

func (j Justify) String() string {
	switch j {
	case JustifyLeft:
		return "Left"
	case JustifyCenter:
		return "Center"
	case JustifyRight:
		return "Right"
	}
	return fmt.Sprintf("Justify(%d)", int(j))
}

// VJustify anchors text vertically.
type VJustify int

const (
	JustifyBottom VJustify = iota
	JustifyMiddle
	JustifyTop
)

// ParseVJustify maps the file letters B, C and T.
func ParseVJustify(s string) (VJustify, error) {
	switch s {
	case "B":
		return JustifyBottom, nil
	case "C":
		return JustifyMiddle, nil
	case "T":
		return JustifyTop, nil
	}
	return 0, fmt.Errorf("invalid vertical justification %q", s)
}
