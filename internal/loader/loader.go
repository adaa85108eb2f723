// Package loader reads local JSON and YAML files into decoded values
// suitable for schema compilation and validation.
package loader

import (
	gourl "net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

// Load reads the file at path and decodes it into a JSON-compatible
// value. Files with a .yaml or .yml extension are decoded as YAML,
// everything else as JSON.
func Load(path string) (any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if ext := filepath.Ext(path); ext == ".yaml" || ext == ".yml" {
		var v any
		err := yaml.NewDecoder(f).Decode(&v)
		return v, err
	}
	return jsonschema.UnmarshalJSON(f)
}

// FileURL converts a local file path into an absolute file url, the
// form under which a schema compiler registers and resolves resources.
func FileURL(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	abs = filepath.ToSlash(abs)
	if !strings.HasPrefix(abs, "/") {
		// windows drive letter
		abs = "/" + abs
	}
	u := gourl.URL{Scheme: "file", Path: abs}
	return u.String(), nil
}

// NewURLLoader returns the loader used by schema compilation to resolve
// $ref targets. Only the file scheme is supported; references to remote
// schemas fail compilation.
func NewURLLoader() jsonschema.URLLoader {
	return jsonschema.SchemeURLLoader{
		"file": fileLoader{},
	}
}

type fileLoader struct{}

func (l fileLoader) Load(url string) (any, error) {
	path, err := jsonschema.FileLoader{}.ToFile(url)
	if err != nil {
		return nil, err
	}
	return Load(path)
}
