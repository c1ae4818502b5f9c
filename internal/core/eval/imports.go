package eval

import (
	"strings"

	"github.com/scrivenlang/scriven/ast"
	"github.com/scrivenlang/scriven/content"
	"github.com/scrivenlang/scriven/errors"
	"github.com/scrivenlang/scriven/internal/core/scope"
	"github.com/scrivenlang/scriven/internal/core/value"
	"github.com/scrivenlang/scriven/internal/core/vm"
	"github.com/scrivenlang/scriven/internal/modspec"
)

// importSource is the resolved shape of an import/include source,
// covering all three forms spec.md §4.5 names: a function with a scope,
// a package spec, or a plain file path.
type importSource struct {
	name    string
	scope   value.ScopeLike
	content content.Content
}

func evalModuleImport(n *ast.ModuleImport, m *vm.VM, scopes *scope.Scopes) (value.Value, error) {
	srcVal, err := Eval(n.Source, m, scopes)
	if err != nil {
		return value.None, err
	}
	src, err := resolveImportSource(n.Source, srcVal, m, scopes, false)
	if err != nil {
		return value.None, err
	}

	switch {
	case n.Wildcard:
		if src.scope == nil {
			return value.None, errors.Newf(n.Span().Start(), "%s has no bindings to import", src.name)
		}
		for _, name := range src.scope.Names() {
			v, _ := src.scope.Get(name)
			scopes.Define(name, v)
		}

	case n.Items != nil:
		if src.scope == nil {
			return value.None, errors.Newf(n.Span().Start(), "%s has no bindings to import", src.name)
		}
		var errs errors.List
		for _, it := range n.Items {
			v, ok := src.scope.Get(it.Name)
			if !ok {
				errs.Add(errors.Newf(it.Span.Start(), "unresolved import: %s", it.Name))
				continue
			}
			boundAs := it.BoundAs
			if boundAs == "" {
				boundAs = it.Name
			}
			scopes.Define(boundAs, v)
		}
		if err := errs.Err(); err != nil {
			return value.None, err
		}

	default:
		name := n.NewName
		if name == "" {
			name = src.name
		}
		if name == "" {
			return value.None, errors.Newf(n.Span().Start(), "import source has no name to bind; use \"as\"")
		}
		scopes.Define(name, srcVal)
	}

	return value.None, nil
}

func evalModuleInclude(n *ast.ModuleInclude, m *vm.VM, scopes *scope.Scopes) (value.Value, error) {
	srcVal, err := Eval(n.Source, m, scopes)
	if err != nil {
		return value.None, err
	}
	src, err := resolveImportSource(n.Source, srcVal, m, scopes, true)
	if err != nil {
		return value.None, err
	}
	return value.ContentVal(src.content), nil
}

// resolveImportSource implements spec.md §4.5's three source shapes. For
// a path source, it resolves the file id, checks the route for a cycle,
// and recursively evaluates the module (memoized).
func resolveImportSource(srcNode ast.Node, srcVal value.Value, m *vm.VM, scopes *scope.Scopes, forInclude bool) (importSource, error) {
	switch srcVal.Kind() {
	case value.KindFunc:
		if forInclude {
			return importSource{}, errors.Newf(srcNode.Span().Start(), "cannot include a function")
		}
		fn := srcVal.AsFunc()
		if fn.Scope == nil {
			return importSource{}, errors.Newf(srcNode.Span().Start(), "cannot import from a user-defined function")
		}
		return importSource{name: fn.Name, scope: fn.Scope}, nil

	case value.KindStr:
		fileID, err := resolveFileID(srcVal.AsStr(), m)
		if err != nil {
			return importSource{}, errors.Newf(srcNode.Span().Start(), "%s", err.Error())
		}
		if m.Route.Contains(fileID) {
			return importSource{}, errors.Newf(srcNode.Span().Start(), "cyclic import")
		}
		mod, err := evalModuleMemo(fileID, m, scopes.Base())
		if err != nil {
			return importSource{}, errors.WithTrace(err, errors.Tracepoint{Kind: "import", Name: fileID})
		}
		return importSource{name: mod.Name, scope: mod.Scope, content: mod.Content}, nil

	default:
		return importSource{}, errors.Newf(srcNode.Span().Start(), "cannot import from %s", srcVal.Kind())
	}
}

// resolveFileID turns an import path expression into a world file id,
// handling both the "@namespace/name:version" package form and ordinary
// relative file paths (spec.md §4.5).
func resolveFileID(raw string, m *vm.VM) (string, error) {
	if strings.HasPrefix(raw, "@") {
		spec, ok := modspec.Parse(raw)
		if !ok {
			return "", errors.New("invalid package spec: " + raw)
		}
		manifestID := m.World.NewFileID(spec.String(), "/typst.toml")
		data, err := m.World.File(manifestID)
		if err != nil {
			return "", err
		}
		man, err := modspec.ParseManifest(data)
		if err != nil {
			return "", err
		}
		if err := modspec.Validate(spec, man); err != nil {
			return "", err
		}
		return m.World.NewFileID(spec.String(), man.Entrypoint), nil
	}

	joined, err := m.World.Join(m.FileID, raw)
	if err != nil {
		return "", err
	}
	return m.World.NewFileID("", joined), nil
}

// evalModuleMemo evaluates fileID to a Module, reusing a prior result
// keyed by (file id, route) (spec.md §4.6).
func evalModuleMemo(fileID string, m *vm.VM, base *scope.Scope) (*value.Module, error) {
	key := fileID + "|" + m.Route.Key()
	if cached, ok := m.Memo[key]; ok {
		return cached.AsModule(), nil
	}
	mod, err := evalModuleFile(fileID, m, base)
	if err != nil {
		return nil, err
	}
	m.Memo[key] = value.ModuleVal(mod)
	return mod, nil
}

func evalModuleFile(fileID string, m *vm.VM, base *scope.Scope) (*value.Module, error) {
	src, err := m.World.Source(fileID)
	if err != nil {
		return nil, err
	}
	markup, ok := src.(*ast.Markup)
	if !ok {
		return nil, errors.New("import source must be a top-level document")
	}

	child := m.Child(fileID)
	childScopes := scope.NewScopes(base)

	c, err := evalMarkup(markup, child, childScopes)
	if err != nil {
		return nil, err
	}

	return &value.Module{
		Name:    moduleName(fileID),
		FileID:  fileID,
		Scope:   childScopes.Top(),
		Content: c,
	}, nil
}

// moduleName derives a bare import's default binding name from its file
// id: the last path segment, extension stripped.
func moduleName(fileID string) string {
	path := fileID
	if i := strings.LastIndexByte(path, '|'); i >= 0 {
		path = path[i+1:]
	}
	base := path
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	if i := strings.LastIndexByte(base, '.'); i > 0 {
		base = base[:i]
	}
	return base
}
