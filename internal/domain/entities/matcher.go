package entities

import "strings"

// rootMatcher matches paths of the form <root>/<name>/<rest>.
type rootMatcher struct {
	root   string
	prefix string
}

func newRootMatcher(root string) rootMatcher {
	root = normalizeRoot(root)
	return rootMatcher{root: root, prefix: root + "/"}
}

// match returns the entry name directly under the root and the remainder
// after it. ok is false unless the path has at least one "/" after the name.
func (m rootMatcher) match(path string) (string, string, bool) {
	if !strings.HasPrefix(path, m.prefix) {
		return "", "", false
	}
	name, rest, found := strings.Cut(path[len(m.prefix):], "/")
	if !found || name == "" {
		return "", "", false
	}
	return name, rest, true
}

// meaningful reports whether rest is <subdir>/<file>, i.e. the change lives
// below a subdirectory of the entry rather than directly inside it.
func meaningful(rest string) bool {
	i := strings.Index(rest, "/")
	return i > 0 && i < len(rest)-1
}

// matcherChain evaluates root matchers in configured order; first match wins.
type matcherChain []rootMatcher

func newMatcherChain(roots []string) matcherChain {
	chain := make(matcherChain, 0, len(roots))
	for _, root := range roots {
		chain = append(chain, newRootMatcher(root))
	}
	return chain
}

func (c matcherChain) match(path string) (rootMatcher, string, string, bool) {
	for _, m := range c {
		if name, rest, ok := m.match(path); ok {
			return m, name, rest, true
		}
	}
	return rootMatcher{}, "", "", false
}

func normalizeRoot(root string) string {
	root = strings.TrimPrefix(root, "./")
	return strings.TrimRight(root, "/")
}
