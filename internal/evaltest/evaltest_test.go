package evaltest

import (
	"strings"
	"testing"

	"github.com/scrivenlang/scriven/ast"
	"github.com/scrivenlang/scriven/span"
)

// stubParse stands in for the out-of-scope parser: it recognizes the
// handful of fixed source texts this package's testdata fixtures use and
// builds their AST directly, the same constructor calls a real parser's
// output would use.
func stubParse(code string) (ast.Node, error) {
	switch strings.TrimSpace(code) {
	case "hello":
		return ast.FromExprs([]ast.Expr{ast.NewText(span.NoSpan, "hello")}), nil
	default:
		return ast.FromExprs(nil), nil
	}
}

func TestGoldenFixtures(t *testing.T) {
	for _, c := range Load(t, "testdata") {
		c := c
		t.Run(c.Name, func(t *testing.T) {
			Run(t, c, stubParse)
		})
	}
}
