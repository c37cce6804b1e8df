package schema

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	liteerrors "github.com/FocuswithJustin/litequery/core/errors"
)

// Column is one column definition of a CREATE TABLE statement.
type Column struct {
	Name       string
	Type       string // declared type as written, e.g. "VARCHAR(10)"; empty if none
	PrimaryKey bool
}

// TableColumns is the column list of a table in declaration order.
type TableColumns struct {
	Columns []Column
	// PrimaryKey is the index of the single-column primary key, or -1.
	PrimaryKey int
	// RowIDAlias is set when the primary key is declared INTEGER PRIMARY KEY.
	// Its value is not stored in the record; the cell's rowid is used instead.
	RowIDAlias bool
	// WithoutRowID is set for WITHOUT ROWID tables.
	WithoutRowID bool
}

// Names returns the column names in declaration order.
func (tc TableColumns) Names() []string {
	names := make([]string, len(tc.Columns))
	for i, c := range tc.Columns {
		names[i] = c.Name
	}
	return names
}

// Index returns the position of the named column, compared
// case-insensitively, or -1.
func (tc TableColumns) Index(name string) int {
	for i, c := range tc.Columns {
		if strings.EqualFold(c.Name, name) {
			return i
		}
	}
	return -1
}

// createTable is the participle grammar for CREATE TABLE. It captures the
// statement head, the comma separated definitions of the outer parenthesized
// list and whatever follows it. Nested parentheses are kept as groups so
// their commas never split a definition.
//
//nolint:govet // participle grammar tags are not standard struct tags
type createTable struct {
	Head []string     `@( Ident | QuotedIdent | String | Number | Op | "." )*`
	Defs []*columnDef `"(" @@ ( "," @@ )* ")"`
	Tail []string     `@( Ident | QuotedIdent | String | Number | Op | "," | "." )* ";"?`
}

//nolint:govet // participle grammar tags are not standard struct tags
type columnDef struct {
	Name *token      `@@`
	Body []*defToken `@@*`
}

//nolint:govet // participle grammar tags are not standard struct tags
type token struct {
	Ident  *string `  @Ident`
	Quoted *string `| @( QuotedIdent | String )`
}

//nolint:govet // participle grammar tags are not standard struct tags
type defToken struct {
	Word  *token   `  @@`
	Other *string  `| @( Number | Op | "." )`
	Group []*inner `| "(" @@* ")"`
}

//nolint:govet // participle grammar tags are not standard struct tags
type inner struct {
	Word  string   `  @( Ident | QuotedIdent | String | Number | Op | "." | "," | ";" )`
	Group []*inner `| "(" @@* ")"`
}

var ddlLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `--[^\n]*|/\*(?:[^*]|\*+[^*/])*\*+/`},
	{Name: "String", Pattern: `'(?:[^']|'')*'`},
	{Name: "QuotedIdent", Pattern: "\"(?:[^\"]|\"\")*\"|`(?:[^`]|``)*`|\\[[^\\]]*\\]"},
	{Name: "Number", Pattern: `\d+(?:\.\d*)?(?:[eE][-+]?\d+)?|\.\d+`},
	{Name: "Ident", Pattern: `[\p{L}_][\p{L}\p{N}_$]*`},
	{Name: "Punct", Pattern: `[(),;.]`},
	{Name: "Op", Pattern: `[-+*/%<>=!|&~^]+`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var ddlParser = participle.MustBuild[createTable](
	participle.Lexer(ddlLexer),
	participle.Elide("Whitespace", "Comment"),
)

// Keywords that start a table constraint instead of a column definition.
var tableConstraints = map[string]bool{
	"CONSTRAINT": true,
	"PRIMARY":    true,
	"UNIQUE":     true,
	"CHECK":      true,
	"FOREIGN":    true,
}

// Keywords that end the declared type of a column.
var columnConstraints = map[string]bool{
	"CONSTRAINT": true,
	"PRIMARY":    true,
	"NOT":        true,
	"NULL":       true,
	"UNIQUE":     true,
	"CHECK":      true,
	"DEFAULT":    true,
	"COLLATE":    true,
	"REFERENCES": true,
	"GENERATED":  true,
	"AS":         true,
}

// ParseTableColumns extracts the column list from CREATE TABLE text. The
// first token of each definition is the column name; a definition containing
// PRIMARY KEY marks the primary key. Text without a parenthesized column
// list is a malformed schema.
func ParseTableColumns(sql string) (TableColumns, error) {
	parsed, err := ddlParser.ParseString("", sql)
	if err != nil {
		return TableColumns{}, liteerrors.NewMalformedSchema(abbreviate(sql), err.Error())
	}

	tc := TableColumns{PrimaryKey: -1}
	var tableKey []string

	for _, def := range parsed.Defs {
		name, quoted := def.Name.text()
		if !quoted && tableConstraints[strings.ToUpper(name)] {
			if cols := def.primaryKeyColumns(); len(cols) > 0 {
				tableKey = cols
			}
			continue
		}

		col := Column{Name: name, Type: def.declaredType(), PrimaryKey: def.hasPrimaryKey()}
		if col.PrimaryKey && tc.PrimaryKey < 0 {
			tc.PrimaryKey = len(tc.Columns)
		}
		tc.Columns = append(tc.Columns, col)
	}

	if len(tc.Columns) == 0 {
		return TableColumns{}, liteerrors.NewMalformedSchema(abbreviate(sql), "no column definitions")
	}

	if tc.PrimaryKey < 0 && len(tableKey) == 1 {
		if i := tc.Index(tableKey[0]); i >= 0 {
			tc.PrimaryKey = i
			tc.Columns[i].PrimaryKey = true
		}
	}
	if tc.PrimaryKey >= 0 {
		tc.RowIDAlias = strings.EqualFold(tc.Columns[tc.PrimaryKey].Type, "INTEGER")
	}

	for i := 0; i+1 < len(parsed.Tail); i++ {
		if strings.EqualFold(parsed.Tail[i], "WITHOUT") && strings.EqualFold(parsed.Tail[i+1], "ROWID") {
			tc.WithoutRowID = true
			tc.RowIDAlias = false
		}
	}

	return tc, nil
}

// text returns the token with any identifier quoting removed.
func (t *token) text() (string, bool) {
	if t.Ident != nil {
		return *t.Ident, false
	}
	return unquote(*t.Quoted), true
}

// keyword returns the upper-cased word if the token is an unquoted identifier.
func (t *defToken) keyword() string {
	if t.Word == nil || t.Word.Ident == nil {
		return ""
	}
	return strings.ToUpper(*t.Word.Ident)
}

func (d *columnDef) hasPrimaryKey() bool {
	for i := 0; i+1 < len(d.Body); i++ {
		if d.Body[i].keyword() == "PRIMARY" && d.Body[i+1].keyword() == "KEY" {
			return true
		}
	}
	return false
}

// declaredType joins the tokens between the column name and the first
// column constraint.
func (d *columnDef) declaredType() string {
	var b strings.Builder
	for _, t := range d.Body {
		if columnConstraints[t.keyword()] {
			break
		}
		switch {
		case t.Word != nil:
			s, _ := t.Word.text()
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(s)
		case t.Other != nil:
			b.WriteString(*t.Other)
		default:
			b.WriteByte('(')
			for i, in := range t.Group {
				if i > 0 && in.Word != "," {
					b.WriteByte(' ')
				}
				b.WriteString(in.Word)
			}
			b.WriteByte(')')
		}
	}
	return b.String()
}

// primaryKeyColumns returns the columns of a PRIMARY KEY (...) table
// constraint, or nil if def is some other constraint.
func (d *columnDef) primaryKeyColumns() []string {
	words := append([]*defToken{{Word: d.Name}}, d.Body...)
	for i := 0; i+2 < len(words); i++ {
		if words[i].keyword() != "PRIMARY" || words[i+1].keyword() != "KEY" || words[i+2].Group == nil {
			continue
		}
		var cols []string
		expectName := true
		for _, in := range words[i+2].Group {
			switch {
			case in.Word == ",":
				expectName = true
			case expectName && in.Group == nil:
				cols = append(cols, unquote(in.Word))
				expectName = false
			}
		}
		return cols
	}
	return nil
}

// unquote strips one level of "", ``, [] or '' quoting.
func unquote(s string) string {
	if len(s) < 2 {
		return s
	}
	switch first, last := s[0], s[len(s)-1]; {
	case first == '"' && last == '"':
		return strings.ReplaceAll(s[1:len(s)-1], `""`, `"`)
	case first == '`' && last == '`':
		return strings.ReplaceAll(s[1:len(s)-1], "``", "`")
	case first == '\'' && last == '\'':
		return strings.ReplaceAll(s[1:len(s)-1], "''", "'")
	case first == '[' && last == ']':
		return s[1 : len(s)-1]
	}
	return s
}

func abbreviate(s string) string {
	const limit = 60
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
