// Package modspec parses `@namespace/name:version` package specifiers and
// their manifest files, the shape spec.md §4.5 names for `import`/
// `include` sources that start with "@". Grounded on the teacher's
// mod/module/path.go: a pinned regexp validates the shape the way
// basePathPat/tagPat validate module paths there, rather than a
// hand-rolled character-by-character scanner.
package modspec

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
)

var specPat = sync.OnceValue(func() *regexp.Regexp {
	return regexp.MustCompile(`^@([a-z0-9][a-z0-9-]*)/([a-z0-9][a-z0-9-]*):([a-zA-Z0-9][a-zA-Z0-9.+-]*)$`)
})

// Spec is a parsed `@namespace/name:version` package specifier.
type Spec struct {
	Namespace string
	Name      string
	Version   string
}

// Parse reports whether raw is a well-formed package spec.
func Parse(raw string) (Spec, bool) {
	m := specPat().FindStringSubmatch(raw)
	if m == nil {
		return Spec{}, false
	}
	return Spec{Namespace: m[1], Name: m[2], Version: m[3]}, true
}

func (s Spec) String() string {
	return fmt.Sprintf("@%s/%s:%s", s.Namespace, s.Name, s.Version)
}

// Manifest is the subset of a package's /typst.toml this evaluator needs:
// enough to validate the package it loaded matches the spec that named it
// and to find its entrypoint source file.
type Manifest struct {
	Name       string
	Version    string
	Entrypoint string
}

// ParseManifest reads a minimal `[package]` section of key = "value"
// pairs. No TOML library appears anywhere in the retrieval pack, so this
// intentionally handles only the flat scalar-string shape a package
// manifest needs rather than general TOML (documented as a standard
// library exception in DESIGN.md).
func ParseManifest(data []byte) (Manifest, error) {
	var man Manifest
	inPackage := false
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") {
			inPackage = line == "[package]"
			continue
		}
		if !inPackage {
			continue
		}
		key, val, ok := splitAssignment(line)
		if !ok {
			continue
		}
		switch key {
		case "name":
			man.Name = val
		case "version":
			man.Version = val
		case "entrypoint":
			man.Entrypoint = val
		}
	}
	if man.Name == "" {
		return Manifest{}, fmt.Errorf("modspec: manifest missing [package] name")
	}
	if man.Entrypoint == "" {
		man.Entrypoint = "main.typ"
	}
	return man, nil
}

func splitAssignment(line string) (key, val string, ok bool) {
	i := strings.IndexByte(line, '=')
	if i < 0 {
		return "", "", false
	}
	key = strings.TrimSpace(line[:i])
	val = strings.TrimSpace(line[i+1:])
	val = strings.Trim(val, `"`)
	return key, val, true
}

// Validate reports whether man matches the package named by s.
func Validate(s Spec, man Manifest) error {
	if man.Name != s.Name {
		return fmt.Errorf("modspec: manifest name %q does not match requested package %q", man.Name, s.Name)
	}
	if man.Version != s.Version {
		return fmt.Errorf("modspec: manifest version %q does not match requested version %q", man.Version, s.Version)
	}
	return nil
}
