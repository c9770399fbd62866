package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanCommandStructure(t *testing.T) {
	assert.Equal(t, "scan [root]", scanCmd.Use)
	assert.NotEmpty(t, scanCmd.Short)
	assert.Contains(t, scanCmd.Long, "Example:")
	assert.NotNil(t, scanCmd.RunE)

	assert.NotNil(t, scanCmd.Flags().Lookup("filter"))
	assert.NotNil(t, scanCmd.Flags().Lookup("only-ext"))
}

func runScanOutput(t *testing.T, args ...string) string {
	t.Helper()
	var buf bytes.Buffer
	scanCmd.SetOut(&buf)
	t.Cleanup(func() { scanCmd.SetOut(nil) })

	require.NoError(t, runScan(scanCmd, args))
	return buf.String()
}

func TestRunScanGroupsVariants(t *testing.T) {
	resetFlags(t)
	root := writeTree(t, iconFiles())

	out := runScanOutput(t, root)

	assert.Contains(t, out, "Resources: "+root)
	assert.Contains(t, out, "base, 16, 32")
	assert.Contains(t, out, "open")
	assert.Contains(t, out, "Banner")
	assert.Contains(t, out, "zoom")
	assert.NotContains(t, out, "readme")
	// icons/save, cache/save, icons/open, icons/Banner, icons/nested/zoom
	assert.Contains(t, out, "Total: 5 record(s) from 7 path(s)")
}

func TestRunScanExclusions(t *testing.T) {
	resetFlags(t)
	root := writeTree(t, iconFiles())
	pathExclusions = []string{root + "/cache/", root + "/icons/nested"}

	out := runScanOutput(t, root)

	assert.NotContains(t, out, "cache/")
	assert.NotContains(t, out, "zoom")
	assert.Contains(t, out, "Total: 3 record(s) from 5 path(s)")
}

func TestRunScanFilter(t *testing.T) {
	resetFlags(t)
	root := writeTree(t, iconFiles())
	scanFilter = "OPE"

	out := runScanOutput(t, root)

	assert.Contains(t, out, "open")
	assert.NotContains(t, out, "Banner")
	assert.Contains(t, out, "Total: 1 record(s) from 1 path(s)")
}

func TestRunScanNoMatches(t *testing.T) {
	resetFlags(t)
	root := writeTree(t, iconFiles())
	scanFilter = "nothing-is-called-this"

	out := runScanOutput(t, root)

	assert.Contains(t, out, "No matching resources found")
	assert.NotContains(t, out, "Total:")
}

func TestRunScanMissingRoot(t *testing.T) {
	resetFlags(t)

	err := runScan(scanCmd, []string{t.TempDir() + "/does-not-exist"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open source")
}
