package filereader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/filesystem"
)

func TestReadLinesDecodesByteOrderMarks(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"plain utf-8", "first\nsecond\n"},
		{"utf-8 bom", "\xef\xbb\xbffirst\nsecond\n"},
		{"utf-16le bom", "\xff\xfef\x00i\x00r\x00s\x00t\x00\n\x00s\x00e\x00c\x00o\x00n\x00d\x00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := filesystem.NewMemFS(map[string]string{"File.java": tt.content})

			lines, err := ReadLines(fsys, "File.java")

			require.NoError(t, err)
			assert.Equal(t, []string{"first", "second"}, lines)
		})
	}
}

func TestReadLinesMissingFile(t *testing.T) {
	_, err := ReadLines(filesystem.NewMemFS(nil), "missing.go")

	assert.Error(t, err)
}

func TestHostFileHelpers(t *testing.T) {
	name := filepath.Join(t.TempDir(), "main.go")
	require.NoError(t, os.WriteFile(name, []byte("package main\n\nfunc main() {}\n"), 0o644))

	lines, err := ReadLinesInFile(name)
	require.NoError(t, err)
	assert.Len(t, lines, 3)

	count, err := CountLinesInFile(name)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}
