// Package supplier builds, reads and rewrites supplier stake config files.
package supplier

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/altuslabsxyz/supplier-ops/internal/output"
)

// OutputDir is where generated configs are written by default.
const OutputDir = "output"

// Config is one supplier stake config, in the key order pocketd documents.
type Config struct {
	OwnerAddress           string    `yaml:"owner_address"`
	OperatorAddress        string    `yaml:"operator_address"`
	StakeAmount            string    `yaml:"stake_amount"`
	DefaultRevSharePercent RevShare  `yaml:"default_rev_share_percent"`
	Services               []Service `yaml:"services"`
}

// Service is one service the supplier will serve.
type Service struct {
	ServiceID       string     `yaml:"service_id"`
	Endpoints       []Endpoint `yaml:"endpoints"`
	RevSharePercent RevShare   `yaml:"rev_share_percent,omitempty"`
}

// Endpoint is where relays for a service are accepted.
type Endpoint struct {
	PubliclyExposedURL string            `yaml:"publicly_exposed_url"`
	RPCType            string            `yaml:"rpc_type"`
	Configs            map[string]string `yaml:"configs,omitempty"`
}

// HasService reports whether a service with id is already listed.
func (c *Config) HasService(id string) bool {
	for _, s := range c.Services {
		if s.ServiceID == id {
			return true
		}
	}
	return false
}

// ServiceIDs returns the service ids in order.
func (c *Config) ServiceIDs() []string {
	ids := make([]string, len(c.Services))
	for i, s := range c.Services {
		ids[i] = s.ServiceID
	}
	return ids
}

// Marshal renders cfg as YAML with two-space indentation.
func Marshal(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// LoadConfig reads a config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

// WriteConfig writes cfg to path, replacing any existing file.
func WriteConfig(path string, cfg *Config) error {
	data, err := Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return writeFile(path, data)
}

// Document is a generated config and the customer it belongs to.
type Document struct {
	CustomerID string
	Column     string
	Config     *Config

	// Unmapped lists chain codes allocated to this customer that had no
	// service id.
	Unmapped []string
}

// FileName returns the output file name for the document.
func (d Document) FileName() string {
	return d.CustomerID + ".yml"
}

// WriteAll writes every document into dir, creating it when absent, and
// returns the written paths in order. A document whose customer id is not a
// usable file name is skipped with a warning.
func WriteAll(dir string, docs []Document, logger output.LoggerInterface) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	paths := make([]string, 0, len(docs))
	for _, d := range docs {
		if err := checkFileName(d.CustomerID); err != nil {
			logger.Warn("column %s: %v, skipping", d.Column, err)
			continue
		}
		p := filepath.Join(dir, d.FileName())
		if err := WriteConfig(p, d.Config); err != nil {
			return paths, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// ListConfigFiles returns the *.yml and *.yaml files directly under dir,
// sorted by name.
func ListConfigFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".yml", ".yaml":
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

func checkFileName(id string) error {
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
		return fmt.Errorf("customer id %q cannot be used as a file name", id)
	}
	return nil
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

var errNotMapping = errors.New("document is not a mapping")
