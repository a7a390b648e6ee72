// Package static loads the catalog shipped with the binary.
package static

import (
	_ "embed"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"nostalgiajars/pkg/catalog"
)

//go:embed catalog.yaml
var catalogYAML []byte

type document struct {
	Products []catalog.Product `yaml:"products"`
}

// Load parses the embedded catalog.
func Load() (*catalog.Catalog, error) {
	return Parse(catalogYAML)
}

// Parse builds a catalog from a YAML document with a top-level products list.
func Parse(data []byte) (*catalog.Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "decode catalog")
	}
	c, err := catalog.New(doc.Products)
	if err != nil {
		return nil, errors.Wrap(err, "build catalog")
	}
	return c, nil
}
