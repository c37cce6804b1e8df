// Package parser recognizes the single SELECT shape the query engine runs:
//
//	SELECT <columns> FROM <table>
//	    [WHERE <expr>] [ORDER BY <expr>] [GROUP BY <expr>]
//	    [LIMIT <n>] [OFFSET <n>] [;]
//
// Keywords are case-insensitive. Clause text is kept verbatim for the later
// stages; nothing past the table name is interpreted here.
package parser

import (
	"errors"
	"regexp"
	"strings"

	liteerrors "github.com/FocuswithJustin/litequery/core/errors"
)

// CountStar is the aggregate marker recognized in a projection.
const CountStar = "COUNT(*)"

// SelectStmt is a parsed SELECT statement. Empty clause fields are absent.
type SelectStmt struct {
	Columns []string
	Table   string
	Where   string
	OrderBy string
	GroupBy string
	Limit   string
	Offset  string
}

// IsCount reports whether the projection asks for COUNT(*). Any COUNT(*)
// column turns the whole projection into the aggregate.
func (s *SelectStmt) IsCount() bool {
	for _, c := range s.Columns {
		if strings.EqualFold(strings.Join(strings.Fields(c), ""), CountStar) {
			return true
		}
	}
	return false
}

var (
	firstWord = regexp.MustCompile(`^\s*([A-Za-z_]+)`)

	selectPattern = regexp.MustCompile(`(?is)^\s*SELECT\s+(.+?)\s+FROM\s+("(?:[^"]|"")+"|[A-Za-z0-9_]+)` +
		`(?:\s+WHERE\s+(.+?))?` +
		`(?:\s+ORDER\s+BY\s+(.+?))?` +
		`(?:\s+GROUP\s+BY\s+(.+?))?` +
		`(?:\s+LIMIT\s+(\d+))?` +
		`(?:\s+OFFSET\s+(\d+))?` +
		`\s*;?\s*$`)
)

// ParseSelect parses query. A query whose first word is not SELECT is an
// unsupported command; a SELECT that does not fit the grammar is an invalid
// query.
func ParseSelect(query string) (*SelectStmt, error) {
	m := firstWord.FindStringSubmatch(query)
	if m == nil {
		return nil, liteerrors.NewInvalidQuery("statement", query, "expected SELECT")
	}
	if !strings.EqualFold(m[1], "SELECT") {
		return nil, liteerrors.NewUnsupportedCommand(strings.ToUpper(m[1]))
	}

	parts := selectPattern.FindStringSubmatch(query)
	if parts == nil {
		return nil, liteerrors.NewInvalidQuery("SELECT statement", query, "expected SELECT <columns> FROM <table>")
	}

	cols, err := splitColumns(parts[1])
	if err != nil {
		return nil, liteerrors.NewInvalidQuery("SELECT statement", query, err.Error())
	}

	table := parts[2]
	if len(table) >= 2 && table[0] == '"' {
		table = strings.ReplaceAll(table[1:len(table)-1], `""`, `"`)
	}

	return &SelectStmt{
		Columns: cols,
		Table:   table,
		Where:   strings.TrimSpace(parts[3]),
		OrderBy: strings.TrimSpace(parts[4]),
		GroupBy: strings.TrimSpace(parts[5]),
		Limit:   parts[6],
		Offset:  parts[7],
	}, nil
}

// splitColumns splits a projection on commas outside parentheses.
func splitColumns(list string) ([]string, error) {
	var cols []string
	depth, start := 0, 0
	for i := 0; i <= len(list); i++ {
		if i < len(list) {
			switch list[i] {
			case '(':
				depth++
				continue
			case ')':
				depth--
				continue
			case ',':
				if depth > 0 {
					continue
				}
			default:
				continue
			}
		}
		col := strings.TrimSpace(list[start:i])
		if col == "" {
			return nil, errEmptyColumn
		}
		cols = append(cols, col)
		start = i + 1
	}
	return cols, nil
}

var errEmptyColumn = errors.New("empty column in projection")
