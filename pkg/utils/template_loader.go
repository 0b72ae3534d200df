package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
)

// LoadTemplates parses every *.html file in fsys into a single template set.
// base.html is parsed first so it names the set.
func LoadTemplates(fsys fs.FS, assetVersion AssetVersionFunc) (*template.Template, error) {
	files, err := fs.Glob(fsys, "*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to glob templates: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no templates found")
	}

	sort.Strings(files)

	ordered := make([]string, 0, len(files))
	for _, file := range files {
		if path.Base(file) == "base.html" {
			ordered = append(ordered, file)
		}
	}
	for _, file := range files {
		if path.Base(file) != "base.html" {
			ordered = append(ordered, file)
		}
	}

	root := template.New(path.Base(ordered[0])).Funcs(GetTemplateFuncs(assetVersion))

	if _, err := root.ParseFS(fsys, ordered...); err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return root, nil
}

// FSAssetVersion derives asset versions from a content hash of the files in
// fsys, since embedded files carry no modification time. Paths are looked up
// relative to prefix and hashes are computed once per path.
func FSAssetVersion(fsys fs.FS, prefix string) AssetVersionFunc {
	var versions sync.Map

	return func(assetPath string) string {
		if cached, ok := versions.Load(assetPath); ok {
			return cached.(string)
		}

		name := strings.TrimPrefix(path.Clean("/"+assetPath), path.Clean("/"+prefix))
		name = strings.TrimPrefix(name, "/")
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return ""
		}

		sum := sha256.Sum256(data)
		version := hex.EncodeToString(sum[:])[:12]
		versions.Store(assetPath, version)
		return version
	}
}
