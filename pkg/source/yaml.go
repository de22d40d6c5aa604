package source

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"protodoc/pkg/document"
)

// LoadFile reads a protocol definition from a YAML file. Elements arrive
// fully resolved (findings and signatures inline), so the result can go
// straight to the layout engine. A protocol or element without an id is
// assigned one.
func LoadFile(path string) (document.Protocol, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return document.Protocol{}, fmt.Errorf("read protocol file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML protocol definition.
func Parse(data []byte) (document.Protocol, error) {
	var spec protocolSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return document.Protocol{}, fmt.Errorf("parse protocol: %w", err)
	}

	p := document.Protocol{
		ID:    spec.ID,
		Title: spec.Title,
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	for _, el := range spec.Elements {
		p.Elements = append(p.Elements, el.toElement())
	}
	return p, nil
}
