package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamSplitsLinesFromStdin(t *testing.T) {
	stdout, _, err := execute(t, "alpha\nbeta\r\ngamma", "stream")
	require.NoError(t, err)
	assert.Equal(t, "alpha\nbeta\ngamma\n", stdout)
}

func TestStreamJSONLines(t *testing.T) {
	stdout, stderr, err := execute(t, "{\"a\":1}\nnot json\n[1,2]\n", "stream", "--json")
	require.NoError(t, err)
	assert.Equal(t, "{\"a\":1}\n[1,2]\n", stdout)
	assert.Contains(t, stderr, "unparseable line")
}

func TestStreamExplicitSeparator(t *testing.T) {
	stdout, _, err := execute(t, "a--b--c", "stream", "--separator", "--")
	require.NoError(t, err)
	assert.Equal(t, "a\nb\nc\n", stdout)
}

func TestStreamSmallChunksDoNotTearLines(t *testing.T) {
	stdout, _, err := execute(t, "first line\nsecond line\n", "stream", "--chunk-size", "3")
	require.NoError(t, err)
	assert.Equal(t, "first line\nsecond line\n", stdout)
}

func TestStreamBoundaryMode(t *testing.T) {
	stdout, _, err := execute(t, "aaSEPbb", "stream", "--boundary", "SEP", "--chunk-size", "2")
	require.NoError(t, err)
	// Reassembled output must be intact regardless of unit boundaries.
	joined := ""
	for _, line := range bytes.Split([]byte(stdout), []byte("\n")) {
		joined += string(line)
	}
	assert.Equal(t, "aaSEPbb", joined)
}

func TestStreamReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte("from file\n"), 0644))

	stdout, _, err := execute(t, "", "stream", path)
	require.NoError(t, err)
	assert.Equal(t, "from file\n", stdout)
}

func TestStreamGzipDecompress(t *testing.T) {
	var compressed bytes.Buffer
	gw := gzip.NewWriter(&compressed)
	_, err := gw.Write([]byte("packed line one\npacked line two\n"))
	require.NoError(t, err)
	require.NoError(t, gw.Close())

	path := filepath.Join(t.TempDir(), "input.gz")
	require.NoError(t, os.WriteFile(path, compressed.Bytes(), 0644))

	stdout, _, err := execute(t, "", "stream", "--decompress", "gzip", path)
	require.NoError(t, err)
	assert.Equal(t, "packed line one\npacked line two\n", stdout)
}

func TestStreamZstdDecompress(t *testing.T) {
	var compressed bytes.Buffer
	zw, err := zstd.NewWriter(&compressed)
	require.NoError(t, err)
	_, err = zw.Write([]byte("zstd payload\n"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	path := filepath.Join(t.TempDir(), "input.zst")
	require.NoError(t, os.WriteFile(path, compressed.Bytes(), 0644))

	stdout, _, err := execute(t, "", "stream", "--decompress", "zstd", path)
	require.NoError(t, err)
	assert.Equal(t, "zstd payload\n", stdout)
}

func TestStreamLatin1Encoding(t *testing.T) {
	path := filepath.Join(t.TempDir(), "latin1.txt")
	require.NoError(t, os.WriteFile(path, []byte{0xE9, '\n'}, 0644))

	stdout, _, err := execute(t, "", "stream", "--encoding", "iso-8859-1", path)
	require.NoError(t, err)
	assert.Equal(t, "é\n", stdout)
}

func TestStreamUnknownEncoding(t *testing.T) {
	_, _, err := execute(t, "x", "stream", "--encoding", "no-such-codec")
	require.Error(t, err)
}

func TestStreamRejectsJSONWithBoundary(t *testing.T) {
	_, _, err := execute(t, "x", "stream", "--json", "--boundary", "SEP")
	require.Error(t, err)
}

func TestStreamSummaryOnStderr(t *testing.T) {
	_, stderr, err := execute(t, "one\ntwo\n", "--log-level", "info", "stream")
	require.NoError(t, err)
	assert.Contains(t, stderr, "=== Run Summary ===")
	assert.Contains(t, stderr, "units: 2")
}

func TestStreamQuietSuppressesSummary(t *testing.T) {
	stdout, stderr, err := execute(t, "one\ntwo\n", "--quiet", "stream")
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\n", stdout, "data output must be unaffected")
	assert.Empty(t, stderr, "quiet mode must write nothing to stderr")
}

func TestStreamRunLogFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	logDir := filepath.Join(dir, "logs")
	content := "log_dir: " + logDir + "\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0644))

	_, _, err := execute(t, "hello\n", "--config", cfgPath, "stream", "--log-file")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(logDir, "latest.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "=== RUN SUMMARY ===")
}
