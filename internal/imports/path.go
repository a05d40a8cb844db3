package imports

import (
	"strings"
)

// DefaultNamespace is the dependency root served by the package mirror.
const DefaultNamespace = "@openzeppelin/contracts/"

// IsRelative reports whether the specifier is relative to the importing unit.
func IsRelative(specifier string) bool {
	return strings.HasPrefix(specifier, "./") || strings.HasPrefix(specifier, "../")
}

// Resolve computes the source-unit name and the canonical path of an import found in the unit
// named current. The name is what the compiler itself derives for the import; the canonical path
// is the name re-rooted under namespace when it is not rooted there already.
func Resolve(namespace, current, specifier string) (name, canonical string) {
	switch {
	case strings.HasPrefix(specifier, namespace):
		name = normalize(nil, specifier)
	case IsRelative(specifier):
		segments := strings.Split(current, "/")
		name = normalize(segments[:len(segments)-1], specifier)
	default:
		name = normalize(nil, specifier)
	}
	return name, Canonical(namespace, name)
}

// Canonical re-roots a source-unit name under namespace unless it is rooted there already.
func Canonical(namespace, name string) string {
	if namespace == "" || strings.HasPrefix(name, namespace) {
		return name
	}
	return namespace + strings.TrimPrefix(name, "/")
}

// InNamespace reports whether the path is rooted in namespace.
func InNamespace(namespace, path string) bool {
	return namespace != "" && strings.HasPrefix(path, namespace)
}

func normalize(base []string, specifier string) string {
	res := make([]string, 0, len(base)+4)
	for _, s := range base {
		if s != "" {
			res = append(res, s)
		}
	}
	for _, s := range strings.Split(specifier, "/") {
		switch s {
		case "", ".":
		case "..":
			if len(res) > 0 {
				res = res[:len(res)-1]
			}
		default:
			res = append(res, s)
		}
	}
	return strings.Join(res, "/")
}
