// Package runtime provides a concrete, in-memory World plus the two
// exported entry points spec.md §6 names: Eval for a full source file,
// EvalString for a code-only fragment evaluated as if it originated at a
// caller-supplied span. The evaluator core (internal/core/eval) never
// depends on this package; runtime depends on eval, exactly the
// direction the teacher's own cmd -> internal/core/runtime -> internal/core/eval
// layering takes.
package runtime

import (
	"fmt"
	"path"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	"github.com/scrivenlang/scriven/ast"
	"github.com/scrivenlang/scriven/content"
)

// MemWorld is an in-memory vm.World: every source and file is registered
// up front rather than loaded lazily from a filesystem, the I/O world
// spec.md §1 places out of scope for this core.
type MemWorld struct {
	lib     *content.Library
	sources map[string]ast.Node
	files   map[string][]byte
}

// NewMemWorld builds an empty world backed by lib, or content.Default()
// if lib is nil.
func NewMemWorld(lib *content.Library) *MemWorld {
	if lib == nil {
		lib = content.Default()
	}
	return &MemWorld{lib: lib, sources: map[string]ast.Node{}, files: map[string][]byte{}}
}

// AddSource registers node (typically an *ast.Markup) under id.
func (w *MemWorld) AddSource(id string, node ast.Node) {
	w.sources[id] = node
}

// AddFile registers raw bytes under id (e.g. a package manifest),
// validating that data is well-formed UTF-8 before storing it, the same
// transform.Bytes(decoder, data) shape used for encoding detection in
// the pack (internal/interp/encoding.go's decodeUTF16, and the teacher's
// own internal/core/adt/context.go), pointed at encoding.UTF8Validator
// (which fails on the first ill-formed byte) instead of a UTF-16 decoder
// since every source here is read as text.
func (w *MemWorld) AddFile(id string, data []byte) error {
	valid, _, err := transform.Bytes(encoding.UTF8Validator, data)
	if err != nil {
		return fmt.Errorf("runtime: %s is not valid UTF-8: %w", id, err)
	}
	w.files[id] = valid
	return nil
}

func (w *MemWorld) Library() *content.Library { return w.lib }

func (w *MemWorld) File(id string) ([]byte, error) {
	if b, ok := w.files[id]; ok {
		return b, nil
	}
	return nil, fmt.Errorf("runtime: no such file: %s", id)
}

func (w *MemWorld) Source(id string) (ast.Node, error) {
	if n, ok := w.sources[id]; ok {
		return n, nil
	}
	return nil, fmt.Errorf("runtime: no such source: %s", id)
}

// Join resolves relative against base's directory, or returns relative
// unchanged if it is already absolute (spec.md §6 "id.join(path)").
func (w *MemWorld) Join(base, relative string) (string, error) {
	if strings.HasPrefix(relative, "/") {
		return relative, nil
	}
	return path.Join(path.Dir(base), relative), nil
}

// NewFileID attaches an optional package spec to a path (spec.md §6
// "FileId::new(Some(spec), path)").
func (w *MemWorld) NewFileID(pkgSpec, p string) string {
	if pkgSpec == "" {
		return p
	}
	return pkgSpec + "|" + p
}
