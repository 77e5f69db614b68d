package supplier

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ServicesKey is the config key replaced by an override.
const ServicesKey = "services"

// ErrNoServicesKey is returned when a document has no services key.
var ErrNoServicesKey = errors.New("no services key")

// LoadServicesOverride reads the services node from an override file.
func LoadServicesOverride(path string) (*yaml.Node, error) {
	doc, err := readNode(path)
	if err != nil {
		return nil, err
	}
	services, err := mappingValue(doc, ServicesKey)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return services, nil
}

// ReplaceServices replaces the services value of the document in data and
// returns the re-encoded document. Every other key keeps its value and
// position. A document without services yields ErrNoServicesKey.
func ReplaceServices(data []byte, services *yaml.Node) ([]byte, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	root, err := rootMapping(&doc)
	if err != nil {
		return nil, err
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value == ServicesKey {
			root.Content[i+1] = services
			return Marshal(&doc)
		}
	}
	return nil, ErrNoServicesKey
}

// OverrideFile applies ReplaceServices to the file at path in place.
func OverrideFile(path string, services *yaml.Node) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	out, err := ReplaceServices(data, services)
	if err != nil {
		if errors.Is(err, ErrNoServicesKey) {
			return err
		}
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return writeFile(path, out)
}

func readNode(path string) (*yaml.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &doc, nil
}

func rootMapping(doc *yaml.Node) (*yaml.Node, error) {
	n := doc
	if n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return nil, errNotMapping
		}
		n = n.Content[0]
	}
	if n.Kind != yaml.MappingNode {
		return nil, errNotMapping
	}
	return n, nil
}

func mappingValue(doc *yaml.Node, key string) (*yaml.Node, error) {
	root, err := rootMapping(doc)
	if err != nil {
		return nil, err
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value == key {
			return root.Content[i+1], nil
		}
	}
	return nil, ErrNoServicesKey
}
