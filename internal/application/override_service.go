package application

import (
	"errors"
	"path/filepath"

	"github.com/altuslabsxyz/supplier-ops/internal/application/dto"
	"github.com/altuslabsxyz/supplier-ops/internal/output"
	"github.com/altuslabsxyz/supplier-ops/internal/supplier"
)

// OverrideService replaces the services of every config in a folder.
type OverrideService struct {
	logger output.LoggerInterface
}

// NewOverrideService creates an OverrideService.
func NewOverrideService(logger output.LoggerInterface) *OverrideService {
	return &OverrideService{logger: logger}
}

// ConfirmFunc is asked once before any file is modified.
type ConfirmFunc func(files []string) (bool, error)

// Execute loads the override services and writes them into each config.
// A nil confirm proceeds without asking. Declining returns a nil output.
func (s *OverrideService) Execute(in dto.OverrideInput, confirm ConfirmFunc) (*dto.BatchOutput, error) {
	services, err := supplier.LoadServicesOverride(in.OverridePath)
	if err != nil {
		return nil, err
	}
	files, err := supplier.ListConfigFiles(in.Dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		s.logger.Warn("no YAML files found in %s", in.Dir)
		return &dto.BatchOutput{}, nil
	}

	if confirm != nil {
		ok, err := confirm(files)
		if err != nil {
			return nil, err
		}
		if !ok {
			s.logger.Info("Operation cancelled")
			return nil, nil
		}
	}

	b := newBatch("override services", len(files), nil, s.logger)
	for _, path := range files {
		name := filepath.Base(path)
		b.stage("Updating %s", name)
		err := supplier.OverrideFile(path, services)
		if errors.Is(err, supplier.ErrNoServicesKey) {
			b.skip(name, "no services key")
			continue
		}
		if err != nil {
			b.fail(name, err)
			continue
		}
		b.succeed("updated %s", name)
	}
	return b.done(), nil
}
