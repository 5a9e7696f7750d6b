package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// UpdateEnv names the environment variable that rewrites golden files.
const UpdateEnv = "REALTODO_GOLDEN_UPDATE"

// Golden compares got against testdata/<name>.golden, reporting a diff of
// the first differing line. With REALTODO_GOLDEN_UPDATE set the file is
// rewritten instead.
func Golden(tb testing.TB, name string, got []byte) {
	tb.Helper()

	path := filepath.Join("testdata", name+".golden")
	if os.Getenv(UpdateEnv) != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			tb.Fatalf("create testdata dir: %v", err)
		}
		if err := os.WriteFile(path, got, 0644); err != nil {
			tb.Fatalf("update golden file: %v", err)
		}
		return
	}

	want, err := os.ReadFile(path)
	if err != nil {
		tb.Fatalf("read golden file %s: %v\ngot:\n%s", path, err, got)
	}
	if bytes.Equal(got, want) {
		return
	}
	line, w, g := firstDiff(want, got)
	tb.Errorf("%s differs at line %d\nwant: %q\n got: %q\n\nfull output:\n%s", name, line, w, g, got)
}

// GoldenString is like Golden but takes a string.
func GoldenString(tb testing.TB, name string, got string) {
	tb.Helper()
	Golden(tb, name, []byte(got))
}

func firstDiff(want, got []byte) (int, string, string) {
	wl := bytes.Split(want, []byte("\n"))
	gl := bytes.Split(got, []byte("\n"))
	for i := 0; i < len(wl) || i < len(gl); i++ {
		var w, g string
		if i < len(wl) {
			w = string(wl[i])
		}
		if i < len(gl) {
			g = string(gl[i])
		}
		if w != g || i >= len(wl) || i >= len(gl) {
			return i + 1, w, g
		}
	}
	return 0, "", ""
}
