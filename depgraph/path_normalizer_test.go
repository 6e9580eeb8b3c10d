package depgraph_test

import (
	"testing"

	"github.com/LegacyCodeHQ/chronograph/depgraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"already canonical", "lib/main.dart", "lib/main.dart"},
		{"backslashes", `lib\data\api\client.dart`, "lib/data/api/client.dart"},
		{"duplicate separators", "lib//data///client.dart", "lib/data/client.dart"},
		{"mixed separators", `lib\/data\\client.dart`, "lib/data/client.dart"},
		{"leading and trailing separators", "/lib/main.dart/", "lib/main.dart"},
		{"dot segments", "./lib/./main.dart", "lib/main.dart"},
		{"unix cache clone", "/tmp/chronograph/flutter-app-cache/lib/main.dart", "lib/main.dart"},
		{"unix cache clone with duplicate slash", "/tmp//chronograph/app-cache//lib/ui/home.dart", "lib/ui/home.dart"},
		{"user cache dir", "/home/dev/.cache/chronograph/app-cache/lib/main.dart", "lib/main.dart"},
		{"macOS cache dir without suffix", "/Users/dev/Library/Caches/chronograph/app/lib/main.dart", "lib/main.dart"},
		{"windows temp clone", `C:\Users\dev\AppData\Local\Temp\chronograph\app-cache\lib\main.dart`, "lib/main.dart"},
		{"unrecognized absolute path passes through", "/home/dev/project/lib/main.dart", "home/dev/project/lib/main.dart"},
		{"empty", "", ""},
		{"only separators", `//\\`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, depgraph.NormalizePath(tt.raw))
		})
	}
}

func TestNormalizePath_IsIdempotent(t *testing.T) {
	raws := []string{
		`C:\Users\dev\AppData\Local\Temp\chronograph\app-cache\lib\main.dart`,
		"/tmp/chronograph/app-cache/lib//a.dart",
		"lib/main.dart/",
	}
	for _, raw := range raws {
		once := depgraph.NormalizePath(raw)
		assert.Equal(t, once, depgraph.NormalizePath(once), raw)
	}
}

func TestNewPathNormalizer_ExtraPatterns(t *testing.T) {
	n, err := depgraph.NewPathNormalizer(`^workspace/[^/]+/`)
	require.NoError(t, err)

	assert.Equal(t, "lib/main.dart", n.Normalize("/workspace/build-42/lib/main.dart"))
	assert.Equal(t, "lib/main.dart", n.Normalize("/tmp/chronograph/app-cache/lib/main.dart"))
}

func TestNewPathNormalizer_InvalidPattern(t *testing.T) {
	_, err := depgraph.NewPathNormalizer(`([`)
	assert.Error(t, err)
}

func TestPathNormalizer_NilOnlyCleansSeparators(t *testing.T) {
	var n *depgraph.PathNormalizer
	assert.Equal(t, "tmp/chronograph/app-cache/lib/a.dart", n.Normalize(`\tmp\chronograph\app-cache\lib\a.dart`))
}

func TestPathNormalizer_Patterns(t *testing.T) {
	n, err := depgraph.NewPathNormalizer(`^build/`)
	require.NoError(t, err)

	assert.Equal(t, append(append([]string{}, depgraph.DefaultCachePatterns...), `^build/`), n.Patterns())

	var none *depgraph.PathNormalizer
	assert.Empty(t, none.Patterns())
}
