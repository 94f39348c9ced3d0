package legacy

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// SchematicLexer tokenizes EESchema schematic files.
// Line ends are significant; spaces and tabs are not. Numbers are lexed
// as words and validated when captured. A quote that is not closed on
// the same line is part of a word.
var SchematicLexer = lexer.MustSimple([]lexer.SimpleRule{
	// Version line plus the whole description block up to $EndDescr
	{Name: "Header", Pattern: `EESchema Schematic File Version[ \t]+\d+[ \t]*\r?\n(?s:.*?)\$EndDescr`},

	{Name: "EOL", Pattern: `\r?\n`},
	{Name: "Whitespace", Pattern: `[ \t\r]+`},

	{Name: "String", Pattern: `"(?:[^"\\\r\n]|\\[^\r\n])*"`},
	{Name: "Word", Pattern: `[^\s]+`},
})

// LibraryLexer tokenizes EESchema-LIBRARY files. A line end swallows any
// following blank or '#' comment lines, so comments only ever start at
// the beginning of a line and names like "#PWR" survive.
var LibraryLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Header", Pattern: `EESchema-LIBRARY Version[ \t]+[0-9.]+`},

	{Name: "EOL", Pattern: `\r?\n(?:[ \t]*(?:#[^\r\n]*)?(?:\r?\n|$))*`},
	{Name: "Whitespace", Pattern: `[ \t\r]+`},

	{Name: "String", Pattern: `"(?:[^"\\\r\n]|\\[^\r\n])*"`},
	{Name: "Word", Pattern: `[^\s]+`},
})
