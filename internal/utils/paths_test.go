package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/filesystem"
)

func TestFindFileInSourceDirs(t *testing.T) {
	fsys := filesystem.NewMemFS(map[string]string{
		"/work/src/main/java/com/acme/Foo.java": "class Foo {}",
		"/work/pkg/calc/calc.go":                "package calc",
		"/abs/Bar.java":                         "class Bar {}",
	})
	dirs := []string{"/work/src/main/java", "/work"}

	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "relative below first dir", path: "com/acme/Foo.java", want: "/work/src/main/java/com/acme/Foo.java"},
		{name: "relative below second dir", path: "pkg/calc/calc.go", want: "/work/pkg/calc/calc.go"},
		{name: "foreign absolute path by suffix", path: "/ci/build/com/acme/Foo.java", want: "/work/src/main/java/com/acme/Foo.java"},
		{name: "existing absolute path", path: "/abs/Bar.java", want: "/abs/Bar.java"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindFileInSourceDirs(fsys, tt.path, dirs)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindFileInSourceDirsMissing(t *testing.T) {
	fsys := filesystem.NewMemFS(nil)

	_, err := FindFileInSourceDirs(fsys, "com/acme/Missing.java", []string{"/work"})

	assert.ErrorContains(t, err, "com/acme/Missing.java")
}
