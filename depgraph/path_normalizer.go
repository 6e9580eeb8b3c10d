package depgraph

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultCachePatterns match machine-specific prefixes left behind by the repository cache,
// e.g. /tmp/chronograph/flutter-cache/lib/main.dart.
var DefaultCachePatterns = []string{
	`^(?:.*/)?chronograph/[^/]+-cache/`,
	`^(?:.*/)?(?:tmp|temp|Temp|T|\.cache|Caches|cache)/chronograph/[^/]+/`,
}

// PathNormalizer turns raw analyzer paths into canonical, project-relative identifiers.
// A nil or zero-value normalizer only cleans up separators.
type PathNormalizer struct {
	patterns []*regexp.Regexp
}

var defaultNormalizer = mustPathNormalizer()

// DefaultPathNormalizer returns the normalizer configured with DefaultCachePatterns.
func DefaultPathNormalizer() *PathNormalizer {
	return defaultNormalizer
}

// NewPathNormalizer compiles DefaultCachePatterns plus any extra patterns.
func NewPathNormalizer(extraPatterns ...string) (*PathNormalizer, error) {
	patterns := make([]string, 0, len(DefaultCachePatterns)+len(extraPatterns))
	patterns = append(patterns, DefaultCachePatterns...)
	patterns = append(patterns, extraPatterns...)

	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid cache pattern %q: %w", p, err)
		}
		compiled = append(compiled, re)
	}
	return &PathNormalizer{patterns: compiled}, nil
}

func mustPathNormalizer(extraPatterns ...string) *PathNormalizer {
	n, err := NewPathNormalizer(extraPatterns...)
	if err != nil {
		panic(err)
	}
	return n
}

// NormalizePath canonicalizes raw with the default normalizer.
func NormalizePath(raw string) string {
	return defaultNormalizer.Normalize(raw)
}

// Patterns returns the source of every cache pattern, in matching order.
func (n *PathNormalizer) Patterns() []string {
	if n == nil {
		return nil
	}
	patterns := make([]string, 0, len(n.patterns))
	for _, re := range n.patterns {
		patterns = append(patterns, re.String())
	}
	return patterns
}

// Normalize converts separators to '/', collapses duplicate separators, drops "." segments,
// trims leading/trailing separators and strips the first matching cache prefix.
// Unrecognized shapes pass through with only the separator cleanup applied.
func (n *PathNormalizer) Normalize(raw string) string {
	p := strings.Join(splitSegments(strings.ReplaceAll(raw, `\`, "/")), "/")
	if n == nil {
		return p
	}
	for _, re := range n.patterns {
		if loc := re.FindStringIndex(p); loc != nil {
			return p[loc[1]:]
		}
	}
	return p
}

// splitSegments splits a '/'-separated path into its non-empty, non-"." segments.
func splitSegments(p string) []string {
	raw := strings.Split(p, "/")
	segments := raw[:0]
	for _, s := range raw {
		if s == "" || s == "." {
			continue
		}
		segments = append(segments, s)
	}
	return segments
}

// parentPath returns the identifier of the folder containing id, or "" for a top-level entry.
func parentPath(id string) string {
	i := strings.LastIndexByte(id, '/')
	if i < 0 {
		return ""
	}
	return id[:i]
}

// baseName returns the last segment of id.
func baseName(id string) string {
	return id[strings.LastIndexByte(id, '/')+1:]
}

// isAncestorPath reports whether ancestor is a strict segment-wise prefix of id.
// "lib" is an ancestor of "lib/main.dart" but not of "library/main.dart".
func isAncestorPath(ancestor, id string) bool {
	return len(id) > len(ancestor) && strings.HasPrefix(id, ancestor) && id[len(ancestor)] == '/'
}

// pathDepth returns the number of segments in id.
func pathDepth(id string) int {
	if id == "" {
		return 0
	}
	return strings.Count(id, "/") + 1
}
