package core

import (
	"crypto/md5"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestVersionedAsset_AppendsHash(t *testing.T) {
	publicDir := t.TempDir()
	content := "body { color: red; }"
	writeTempFile(t, publicDir, "styles.css", content)

	sum := md5.Sum([]byte(content))
	want := "/styles.css?v=" + hex.EncodeToString(sum[:])[:6]

	if got := VersionedAsset(publicDir, "/styles.css"); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestVersionedAsset_NestedPath(t *testing.T) {
	publicDir := t.TempDir()
	writeTempFile(t, publicDir, "img/logo.svg", "<svg></svg>")

	got := VersionedAsset(publicDir, "/img/logo.svg")
	if !strings.HasPrefix(got, "/img/logo.svg?v=") {
		t.Errorf("expected versioned nested path, got %q", got)
	}
}

func TestVersionedAsset_MissingFileReturnsPath(t *testing.T) {
	if got := VersionedAsset(t.TempDir(), "/missing.css"); got != "/missing.css" {
		t.Errorf("expected unchanged path, got %q", got)
	}
}

func TestVersionedAsset_IgnoresRelativeAndTraversal(t *testing.T) {
	publicDir := t.TempDir()
	writeTempFile(t, publicDir, "styles.css", "x")

	for _, p := range []string{"styles.css", "/../styles.css", "https://cdn.example.com/a.css"} {
		if got := VersionedAsset(publicDir, p); got != p {
			t.Errorf("VersionedAsset(%q) = %q, want unchanged", p, got)
		}
	}
}

func TestTemplateFuncs_IncludesSprigAndAsset(t *testing.T) {
	funcs := TemplateFuncs(t.TempDir())

	for _, name := range []string{"asset", "upper", "add1", "default"} {
		if _, ok := funcs[name]; !ok {
			t.Errorf("expected %q in func map", name)
		}
	}
}
