package core

import (
	"crypto/md5"
	"encoding/hex"
	"html/template"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/Masterminds/sprig/v3"
)

// TemplateFuncs returns sprig's HTML-safe functions plus "asset", which
// fingerprints files under publicDir.
func TemplateFuncs(publicDir string) template.FuncMap {
	funcs := sprig.HtmlFuncMap()
	funcs["asset"] = func(p string) string {
		return VersionedAsset(publicDir, p)
	}
	return funcs
}

// VersionedAsset appends ?v=<hash> to p when it names a file in publicDir.
// Anything else is returned as given.
func VersionedAsset(publicDir, p string) string {
	if !strings.HasPrefix(p, "/") || strings.Contains(p, "..") {
		return p
	}

	rel := strings.TrimPrefix(path.Clean(p), "/")
	content, err := os.ReadFile(filepath.Join(publicDir, filepath.FromSlash(rel)))
	if err != nil {
		return p
	}

	sum := md5.Sum(content)
	return "/" + rel + "?v=" + hex.EncodeToString(sum[:])[:6]
}
