// Package sqldb renders compiled catalog queries into parameterized SQL and
// executes them over a database/sql connection pool.
package sqldb

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/partsdex/internal/db"
)

// likeEscape is the LIKE escape character. Backslash is avoided because MySQL
// and SQLite disagree on how to spell it inside a string literal.
const likeEscape = '!'

// Dialect captures the syntax differences between supported SQL engines.
type Dialect struct {
	name       string
	quoteOpen  string
	quoteClose string
	lengthFunc string
}

// Supported dialects.
var (
	MySQL  = Dialect{name: "mysql", quoteOpen: "`", quoteClose: "`", lengthFunc: "CHAR_LENGTH"}
	SQLite = Dialect{name: "sqlite", quoteOpen: `"`, quoteClose: `"`, lengthFunc: "LENGTH"}
)

// DialectByName resolves a dialect from its driver name.
func DialectByName(name string) (Dialect, error) {
	switch name {
	case MySQL.name:
		return MySQL, nil
	case SQLite.name:
		return SQLite, nil
	default:
		return Dialect{}, fmt.Errorf("%w: %q", db.ErrUnknownDialect, name)
	}
}

// Name returns the driver name.
func (d Dialect) Name() string { return d.name }

// Quote quotes an identifier. Callers pass validated identifiers only.
func (d Dialect) Quote(ident string) string {
	return d.quoteOpen + ident + d.quoteClose
}

// Length renders the character-length function applied to expr.
func (d Dialect) Length(expr string) string {
	return d.lengthFunc + "(" + expr + ")"
}

var likeEscaper = strings.NewReplacer(
	string(likeEscape), string(likeEscape)+string(likeEscape),
	"%", string(likeEscape)+"%",
	"_", string(likeEscape)+"_",
)

// escapeLike makes LIKE wildcards in s match literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func containsPattern(s string) string { return "%" + escapeLike(s) + "%" }

func prefixPattern(s string) string { return escapeLike(s) + "%" }
