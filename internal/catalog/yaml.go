package catalog

import (
	"bytes"
	_ "embed"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/rpg-battle/internal/errors"
)

//go:embed standard.yaml
var standardYAML []byte

// Load decodes a YAML catalog. Unknown fields are rejected.
func Load(r io.Reader) (*Memory, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var data Data
	if err := dec.Decode(&data); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeDataIntegrity, "failed to decode catalog")
	}
	return New(&data)
}

// LoadFile reads a YAML catalog from disk
func LoadFile(path string) (*Memory, error) {
	f, err := os.Open(path) // #nosec G304 -- operator supplied path
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open catalog %s", path)
	}
	defer func() { _ = f.Close() }()
	return Load(f)
}

// Standard returns the catalog bundled with the binary
func Standard() (*Memory, error) {
	return Load(bytes.NewReader(standardYAML))
}
