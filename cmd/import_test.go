package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFeedXML = `<schema>
  <segment code="10000000" text="Segment A">
    <family code="10100000" text="Family A"/>
  </segment>
</schema>`

// runCommand executes the CLI with fresh flag state and captures stdout.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	importXMLFile, importJSONFile, importDSN, importBackend, importSegment = "", "", "", "", ""
	exportDSN, exportBackend, exportOut = "", "", ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestImportCommand(t *testing.T) {
	dir := t.TempDir()
	feedPath := filepath.Join(dir, "feed.xml")
	require.NoError(t, os.WriteFile(feedPath, []byte(testFeedXML), 0o644))
	dbPath := filepath.Join(dir, "gpc.db")

	t.Run("imports and prints counters", func(t *testing.T) {
		out, err := runCommand(t, "import", "--xml-file", feedPath, "--db", dbPath, "-q")
		require.NoError(t, err)
		assert.Contains(t, out, "segment")
		assert.Contains(t, out, "family")

		// Second run over the same feed reports updates, not creates.
		out, err = runCommand(t, "import", "--xml-file", feedPath, "--db", dbPath, "-q")
		require.NoError(t, err)
		assert.Contains(t, out, "updated")
	})

	t.Run("requires exactly one input", func(t *testing.T) {
		_, err := runCommand(t, "import", "--db", dbPath, "-q")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exactly one")

		_, err = runCommand(t, "import",
			"--xml-file", feedPath, "--json-file", feedPath, "--db", dbPath, "-q")
		require.Error(t, err)
	})

	t.Run("missing feed file", func(t *testing.T) {
		_, err := runCommand(t, "import", "--xml-file", filepath.Join(dir, "nope.xml"), "--db", dbPath, "-q")
		require.Error(t, err)
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, err := runCommand(t, "import", "--xml-file", feedPath, "--db", dbPath, "--backend", "mysql", "-q")
		require.Error(t, err)
	})
}

func TestExportCommand(t *testing.T) {
	dir := t.TempDir()
	feedPath := filepath.Join(dir, "feed.xml")
	require.NoError(t, os.WriteFile(feedPath, []byte(testFeedXML), 0o644))
	dbPath := filepath.Join(dir, "gpc.db")

	_, err := runCommand(t, "import", "--xml-file", feedPath, "--db", dbPath, "-q")
	require.NoError(t, err)

	outPath := filepath.Join(dir, "dump.sql")
	_, err = runCommand(t, "export", "--db", dbPath, "--out", outPath, "-q")
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "CREATE TABLE IF NOT EXISTS segments")
	assert.Contains(t, string(data), "INSERT INTO families (family_code, description, segment_code) VALUES ('10100000', 'Family A', '10000000');")
}

func TestSegmentFilterFlag(t *testing.T) {
	dir := t.TempDir()
	feedPath := filepath.Join(dir, "feed.xml")
	require.NoError(t, os.WriteFile(feedPath, []byte(`<schema>
  <segment code="10000000" text="Segment A"/>
  <segment code="11000000" text="Segment B"/>
</schema>`), 0o644))
	dbPath := filepath.Join(dir, "gpc.db")

	out, err := runCommand(t, "import",
		"--xml-file", feedPath, "--db", dbPath, "--segment", "11000000", "-q")
	require.NoError(t, err)
	assert.Contains(t, out, "segment")

	outPath := filepath.Join(dir, "dump.sql")
	_, err = runCommand(t, "export", "--db", dbPath, "--out", outPath, "-q")
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "'11000000'")
	assert.NotContains(t, string(data), "'10000000'")
}
