package callgraph

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeGraph drops a .ci dump with the given lines into a temp dir.
func writeGraph(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "libcommon_la-strings.ci")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestBuild(t *testing.T) {
	t.Run("should add one directed edge per edge line", func(t *testing.T) {
		g, err := Build(writeGraph(t, `node: { title: "pub" label: "pub" }
edge: { sourcename: "pub" targetname: "helper" }
edge: { sourcename: "helper" targetname: "leaf" }
`))
		require.NoError(t, err)

		assert.True(t, g.HasNode("pub"))
		assert.True(t, g.HasNode("helper"))
		assert.True(t, g.HasNode("leaf"))
		assert.Equal(t, 3, g.NumNodes())

		reached, err := g.Reachable("pub", "leaf")
		require.NoError(t, err)
		assert.True(t, reached)
	})

	t.Run("should drop indirect call edges", func(t *testing.T) {
		g, err := Build(writeGraph(t, `edge: { sourcename: "pub" targetname: "__indirect_call" }
`))
		require.NoError(t, err)
		assert.False(t, g.HasNode("pub"))
		assert.False(t, g.HasNode("__indirect_call"))
	})

	t.Run("should strip translation-unit qualifiers", func(t *testing.T) {
		g, err := Build(writeGraph(t, `edge: { sourcename: "strings.c:pub" targetname: "strings.c:helper" }
`))
		require.NoError(t, err)
		assert.True(t, g.HasNode("pub"))
		assert.True(t, g.HasNode("helper"))
		assert.False(t, g.HasNode("strings.c:pub"))
	})

	t.Run("should collapse duplicate edges", func(t *testing.T) {
		g, err := Build(writeGraph(t, `edge: { sourcename: "pub" targetname: "helper" }
edge: { sourcename: "pub" targetname: "helper" }
`))
		require.NoError(t, err)
		assert.Equal(t, 2, g.NumNodes())
	})

	t.Run("should ignore lines that are not edges", func(t *testing.T) {
		g, err := Build(writeGraph(t, `graph: { title: "strings.c"
node: { title: "pub" }
classname 1: "Callgraph"
`))
		require.NoError(t, err)
		assert.Equal(t, 0, g.NumNodes())
	})

	t.Run("should fail on a missing file", func(t *testing.T) {
		_, err := Build(filepath.Join(t.TempDir(), "nope.ci"))
		assert.Error(t, err)
	})
}
