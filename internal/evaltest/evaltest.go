// Package evaltest is a golden-file test harness over txtar archives,
// trimmed from the teacher's internal/cuetxtar to this module's needs:
// one archive per scenario, an "in.src" file holding the document under
// test and "out/value"/"out/errors" sections holding the expected
// rendering or error text.
package evaltest

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/tools/txtar"

	"github.com/scrivenlang/scriven/ast"
	"github.com/scrivenlang/scriven/internal/debugfmt"
	"github.com/scrivenlang/scriven/runtime"
)

// Case is one parsed archive.
type Case struct {
	Name       string
	Src        string
	WantValue  string
	WantErrors string
}

// Load reads every *.txtar file directly inside dir.
func Load(t *testing.T, dir string) []Case {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("evaltest: %v", err)
	}
	var cases []Case
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".txtar") {
			continue
		}
		ar, err := txtar.ParseFile(filepath.Join(dir, e.Name()))
		if err != nil {
			t.Fatalf("evaltest: parsing %s: %v", e.Name(), err)
		}
		c := Case{Name: strings.TrimSuffix(e.Name(), ".txtar")}
		c.Src = mustFile(ar, "in.src")
		c.WantValue, _ = file(ar, "out/value")
		c.WantErrors, _ = file(ar, "out/errors")
		cases = append(cases, c)
	}
	return cases
}

func file(ar *txtar.Archive, name string) (string, error) {
	name = path.Clean(name)
	for _, f := range ar.Files {
		if path.Clean(f.Name) == name {
			return string(f.Data), nil
		}
	}
	return "", fmt.Errorf("file %q not found in txtar archive", name)
}

func mustFile(ar *txtar.Archive, name string) string {
	s, err := file(ar, name)
	if err != nil {
		panic(err)
	}
	return s
}

// Parser is the caller-supplied AST producer; parsing is outside this
// module's scope (spec.md §1), so every Run call threads one through.
// An alias, not a new type, so a Parser can be passed straight into
// runtime.New without a conversion.
type Parser = runtime.Parser

// Run parses and evaluates c.Src, then diffs the rendered content or
// the surfaced error against c's golden sections.
func Run(t *testing.T, c Case, parse Parser) {
	t.Helper()

	node, err := parse(c.Src)
	if err != nil {
		checkErrors(t, c, err)
		return
	}
	markup, ok := node.(*ast.Markup)
	if !ok {
		t.Fatalf("%s: parsed node is not a top-level document", c.Name)
	}

	fileID := "/" + c.Name + ".typ"
	w := runtime.NewMemWorld(nil)
	w.AddSource(fileID, markup)
	rt := runtime.New(w, parse)

	mod, err := rt.Eval(nil, nil, fileID)
	if err != nil {
		checkErrors(t, c, err)
		return
	}

	if c.WantErrors != "" {
		t.Fatalf("%s: expected error %q, evaluation succeeded", c.Name, c.WantErrors)
	}
	got := mod.Content.String()
	want := strings.TrimRight(c.WantValue, "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("%s: value mismatch (-want +got):\n%s\nrendered content:\n%s", c.Name, diff, debugfmt.Dump(mod.Content))
	}
}

func checkErrors(t *testing.T, c Case, err error) {
	t.Helper()
	want := strings.TrimRight(c.WantErrors, "\n")
	if want == "" {
		t.Fatalf("%s: unexpected error: %v", c.Name, err)
	}
	got := err.Error()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("%s: error mismatch (-want +got):\n%s", c.Name, diff)
	}
}
