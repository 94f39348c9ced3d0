package legacy

import (
	"fmt"
	"regexp"
	"strconv"
)

// Grammar structs. The participle tags below are the whole grammar; the
// conversion in convert.go turns a matched tree into model values.

// schematicFile is a complete .sch file.
type schematicFile struct {
	Header  string            `@Header EOL`
	Entries []*schematicEntry `@@+`
	End     bool              `@"$EndSCHEMATC" EOL`
}

// schematicEntry alternatives are tried in order. Label comes before
// Note so that "Text Label" is claimed first.
type schematicEntry struct {
	Component *componentBlock `  @@`
	Wire      *wireBlock      `| @@`
	Label     *labelBlock     `| @@`
	Junction  *junctionLine   `| @@`
	Note      *noteBlock      `| @@`
	NoConn    *noConnLine     `| @@`
}

// componentBlock is a $Comp ... $EndComp instance block.
type componentBlock struct {
	Name      string       `"$Comp" EOL "L" @Word`
	Reference string       `@Word EOL`
	Unit      []string     `"U" ( @!EOL )* EOL`
	X         number       `"P" @Word`
	Y         number       `@Word EOL`
	Fields    []*fieldLine `@@*`
	// The "unit x y" line is skipped, then the orientation row.
	A   number `( !EOL )* EOL @Word`
	B   number `@Word`
	C   number `@Word`
	D   number `@Word EOL`
	End bool   `( !"$EndComp" )* @"$EndComp" EOL`
}

// fieldLine is F <index> "<text>" <H|V> <x> <y> <size> <flags...> <hjustify> <style> ["name"].
type fieldLine struct {
	Index  integer  `"F" @Word`
	Text   string   `@String`
	Orient string   `@Word`
	X      number   `@Word`
	Y      number   `@Word`
	Size   number   `@Word`
	Attrs  []string `( @Word )*`
	Name   string   `( @String )? EOL`
}

type wireBlock struct {
	Kind string `"Wire" @( "Wire" | "Bus" | "Notes" ) "Line" EOL`
	X1   number `@Word`
	Y1   number `@Word`
	X2   number `@Word`
	Y2   number `@Word EOL`
}

type labelBlock struct {
	X      number `"Text" "Label" @Word`
	Y      number `@Word`
	Orient digit  `@Word`
	Size   number `@Word "~"`
	Style  string `@Word EOL`
	Text   string `@( Word | String ) EOL`
}

type junctionLine struct {
	X number `"Connection" "~" @Word`
	Y number `@Word EOL`
}

type noConnLine struct {
	X number `"NoConn" "~" @Word`
	Y number `@Word EOL`
}

// noteBlock content is matched and dropped.
type noteBlock struct {
	Header []string `"Text" "Notes" ( @!EOL )* EOL`
	Body   []string `( @!EOL )* EOL`
}

// libraryFile is a complete .lib file.
type libraryFile struct {
	Header     string       `@Header ( !EOL )* EOL`
	Components []*symbolDef `@@*`
}

// symbolDef is a DEF ... ENDDEF block.
type symbolDef struct {
	Name      string          `"DEF" @( Word | String )`
	Reference string          `@Word`
	Options   []string        `( @!EOL )* EOL`
	Meta      []*metaLine     `@@*`
	Draw      []*symbolRecord `( "DRAW" EOL @@* "ENDDRAW" EOL )?`
	End       bool            `@"ENDDEF" EOL?`
}

// metaLine is any line between DEF and DRAW: fields, ALIAS and the
// footprint filter list.
type metaLine struct {
	Tokens []string `@!( "DRAW" | "ENDDEF" ) ( @!EOL )* EOL`
}

type symbolRecord struct {
	Rect   *rectRecord   `  @@`
	Circle *circleRecord `| @@`
	Arc    *arcRecord    `| @@`
	Poly   *polyRecord   `| @@`
	Pin    *pinRecord    `| @@`
	Text   *textRecord   `| @@`
}

// S x1 y1 x2 y2 unit convert thickness [fill]
type rectRecord struct {
	X1        number  `"S" @Word`
	Y1        number  `@Word`
	X2        number  `@Word`
	Y2        number  `@Word`
	Unit      integer `@Word`
	Convert   integer `@Word`
	Thickness number  `@Word`
	Fill      string  `( @Word )? EOL`
}

// C x y r unit convert thickness [fill]
type circleRecord struct {
	X         number  `"C" @Word`
	Y         number  `@Word`
	Radius    number  `@Word`
	Unit      integer `@Word`
	Convert   integer `@Word`
	Thickness number  `@Word`
	Fill      string  `( @Word )? EOL`
}

// A x y r start_angle end_angle unit convert thickness fill sx sy ex ey
type arcRecord struct {
	X          number  `"A" @Word`
	Y          number  `@Word`
	Radius     number  `@Word`
	StartAngle number  `@Word`
	EndAngle   number  `@Word`
	Unit       integer `@Word`
	Convert    integer `@Word`
	Thickness  number  `@Word`
	Fill       string  `@Word`
	StartX     number  `@Word`
	StartY     number  `@Word`
	EndX       number  `@Word`
	EndY       number  `@Word EOL`
}

// P count unit convert thickness x1 y1 ... xn yn [fill]
type polyRecord struct {
	Count     integer  `"P" @Word`
	Unit      integer  `@Word`
	Convert   integer  `@Word`
	Thickness number   `@Word`
	Rest      []string `( @Word )* EOL`
}

// X name number x y length orientation number_size name_size unit convert etype [shape]
type pinRecord struct {
	Name       string  `"X" @( Word | String )`
	Number     string  `@( Word | String )`
	X          number  `@Word`
	Y          number  `@Word`
	Length     number  `@Word`
	Orient     string  `@Word`
	NumberSize number  `@Word`
	NameSize   number  `@Word`
	Unit       integer `@Word`
	Convert    integer `@Word`
	Type       string  `@Word`
	Shape      string  `( @Word )? EOL`
}

// T angle x y size hidden unit convert text [italic bold hjustify vjustify]
type textRecord struct {
	Angle   integer  `"T" @Word`
	X       number   `@Word`
	Y       number   `@Word`
	Size    number   `@Word`
	Hidden  integer  `@Word`
	Unit    integer  `@Word`
	Convert integer  `@Word`
	Text    string   `@( Word | String )`
	Extra   []string `( @( Word | String ) )* EOL`
}

var (
	numberPattern  = regexp.MustCompile(`^-?\d+(\.\d+)?$`)
	integerPattern = regexp.MustCompile(`^-?\d+$`)
	digitPattern   = regexp.MustCompile(`^\d$`)
)

// number is a signed decimal coordinate or size.
type number float64

func (n *number) Capture(values []string) error {
	v, err := parseNumber(values[0])
	if err != nil {
		return err
	}
	*n = number(v)
	return nil
}

func parseNumber(s string) (float64, error) {
	if !numberPattern.MatchString(s) {
		return 0, fmt.Errorf("malformed number %q", s)
	}
	return strconv.ParseFloat(s, 64)
}

type integer int

func (i *integer) Capture(values []string) error {
	v, err := parseInteger(values[0])
	if err != nil {
		return err
	}
	*i = integer(v)
	return nil
}

func parseInteger(s string) (int, error) {
	if !integerPattern.MatchString(s) {
		return 0, fmt.Errorf("malformed integer %q", s)
	}
	return strconv.Atoi(s)
}

// digit is a single decimal digit, used for label orientation.
type digit int

func (d *digit) Capture(values []string) error {
	if !digitPattern.MatchString(values[0]) {
		return fmt.Errorf("malformed orientation %q", values[0])
	}
	*d = digit(values[0][0] - '0')
	return nil
}
