// Package legacy reads the line-oriented EESchema formats used by KiCad
// 4 and 5: schematic files (.sch) and symbol libraries (.lib).
//
// Decoding is all or nothing. Any unexpected line, missing sentinel or
// malformed number fails the whole file with an error wrapping ErrParse.
package legacy

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/alecthomas/participle/v2"
)

// ErrParse is wrapped by every decoding failure.
var ErrParse = errors.New("legacy: input does not match grammar")

// Parser decodes schematic and library files. It is safe for concurrent
// use.
type Parser struct {
	schematic *participle.Parser[schematicFile]
	library   *participle.Parser[libraryFile]
}

// NewParser builds both grammars.
func NewParser() (*Parser, error) {
	sch, err := participle.Build[schematicFile](
		participle.Lexer(SchematicLexer),
		participle.Elide("Whitespace"),
		participle.UseLookahead(3),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build schematic parser: %w", err)
	}

	lib, err := participle.Build[libraryFile](
		participle.Lexer(LibraryLexer),
		participle.Elide("Whitespace"),
		participle.UseLookahead(3),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build library parser: %w", err)
	}

	return &Parser{schematic: sch, library: lib}, nil
}

// ParseSchematic decodes a schematic. Bytes after the $EndSCHEMATC line
// are ignored.
func (p *Parser) ParseSchematic(r io.Reader) (*Schematic, error) {
	ast, err := p.schematic.Parse("", r, participle.AllowTrailing(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return convertSchematic(ast)
}

// ParseSchematicString decodes a schematic held in memory.
func (p *Parser) ParseSchematicString(input string) (*Schematic, error) {
	ast, err := p.schematic.ParseString("", input, participle.AllowTrailing(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return convertSchematic(ast)
}

// ParseSchematicFile opens and decodes a schematic file.
func (p *Parser) ParseSchematicFile(filename string) (*Schematic, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open schematic: %w", err)
	}
	defer file.Close()

	return p.ParseSchematic(file)
}

// ParseLibrary decodes a symbol library. The whole input must match.
func (p *Parser) ParseLibrary(r io.Reader) (*Library, error) {
	ast, err := p.library.Parse("", r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return convertLibrary(ast)
}

func (p *Parser) ParseLibraryString(input string) (*Library, error) {
	ast, err := p.library.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return convertLibrary(ast)
}

// ParseLibraryFile opens and decodes a library file.
func (p *Parser) ParseLibraryFile(filename string) (*Library, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open library: %w", err)
	}
	defer file.Close()

	return p.ParseLibrary(file)
}

var defaultParser = sync.OnceValues(NewParser)

// ParseSchematic decodes a schematic with a shared Parser.
func ParseSchematic(r io.Reader) (*Schematic, error) {
	p, err := defaultParser()
	if err != nil {
		return nil, err
	}
	return p.ParseSchematic(r)
}

// ParseSchematicFile decodes a schematic file with a shared Parser.
func ParseSchematicFile(filename string) (*Schematic, error) {
	p, err := defaultParser()
	if err != nil {
		return nil, err
	}
	return p.ParseSchematicFile(filename)
}

// ParseLibrary decodes a library with a shared Parser.
func ParseLibrary(r io.Reader) (*Library, error) {
	p, err := defaultParser()
	if err != nil {
		return nil, err
	}
	return p.ParseLibrary(r)
}

// ParseLibraryFile decodes a library file with a shared Parser.
func ParseLibraryFile(filename string) (*Library, error) {
	p, err := defaultParser()
	if err != nil {
		return nil, err
	}
	return p.ParseLibraryFile(filename)
}
