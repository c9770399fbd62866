package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/goiconindex/internal/index"
)

func TestInspectCommandStructure(t *testing.T) {
	assert.Equal(t, "inspect <name>", inspectCmd.Use)
	assert.NotEmpty(t, inspectCmd.Short)
	assert.Contains(t, inspectCmd.Long, "Example:")
	assert.NotNil(t, inspectCmd.Flags().Lookup("root"))
}

func TestInspectRequiresName(t *testing.T) {
	assert.Error(t, inspectCmd.Args(inspectCmd, nil))
	assert.NoError(t, inspectCmd.Args(inspectCmd, []string{"save"}))
}

func TestRunInspect(t *testing.T) {
	resetFlags(t)
	inspectRoot = writeTree(t, iconFiles())
	pathExclusions = []string{inspectRoot + "/cache/"}

	var buf bytes.Buffer
	inspectCmd.SetOut(&buf)
	defer inspectCmd.SetOut(nil)

	require.NoError(t, runInspect(inspectCmd, []string{"save"}))

	out := buf.String()
	assert.Contains(t, out, inspectRoot+"/icons/save")
	assert.Contains(t, out, "base, 16, 32")
	assert.Contains(t, out, "(base)")
	assert.Contains(t, out, "_16")
	assert.Contains(t, out, "16x16 svg")
}

func TestRunInspectAmbiguousName(t *testing.T) {
	resetFlags(t)
	inspectRoot = writeTree(t, iconFiles())

	err := runInspect(inspectCmd, []string{"save"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ambiguous")
}

func TestResolveName(t *testing.T) {
	idx := index.New()
	for _, p := range []string{"a/save.png", "b/save_16.png", "a/open.png"} {
		idx.Add(p)
	}

	name, err := resolveName(idx, "a/save")
	require.NoError(t, err)
	assert.Equal(t, "a/save", name)

	name, err = resolveName(idx, "open")
	require.NoError(t, err)
	assert.Equal(t, "a/open", name)

	_, err = resolveName(idx, "save")
	assert.ErrorContains(t, err, "a/save, b/save")

	_, err = resolveName(idx, "close")
	assert.ErrorContains(t, err, "no resource named")
}
