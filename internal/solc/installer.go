package solc

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/NilFoundation/solforge/common/logging"
	"github.com/fabelx/go-solc-select/pkg/config"
	"github.com/fabelx/go-solc-select/pkg/installer"
	"github.com/fabelx/go-solc-select/pkg/versions"
)

//go:generate go run github.com/matryer/moq -out installer_generated_mock.go -rm -stub -with-resets . Installer

// Installer fetches the build artifact of a release and instantiates it.
type Installer interface {
	Install(ctx context.Context, release *Release) (Compiler, error)
}

// SolcSelectInstaller keeps native solc builds in the go-solc-select artifacts directory.
type SolcSelectInstaller struct {
	logger logging.Logger
}

var _ Installer = (*SolcSelectInstaller)(nil)

func NewSolcSelectInstaller(logger logging.Logger) *SolcSelectInstaller {
	return &SolcSelectInstaller{logger: logger}
}

func (i *SolcSelectInstaller) Install(ctx context.Context, release *Release) (Compiler, error) {
	path, err := i.findCompiler(release.Version)
	if err != nil {
		return nil, err
	}

	bin := NewBinary(path, release)
	if err := bin.Probe(ctx); err != nil {
		return nil, err
	}

	i.logger.Info().
		Str(logging.FieldCompilerVersion, release.FullVersion()).
		Str(logging.FieldCompilerPath, path).
		Msg("Compiler is ready")
	return bin, nil
}

func (i *SolcSelectInstaller) findCompiler(version string) (string, error) {
	if _, ok := versions.GetInstalled()[version]; !ok {
		i.logger.Info().Str(logging.FieldCompilerVersion, version).Msg("Installing compiler...")
		if err := installer.InstallSolc(version); err != nil {
			return "", fmt.Errorf("failed to install compiler %s: %w", version, err)
		}
	}
	solc, ok := versions.GetInstalled()[version]
	if !ok {
		return "", fmt.Errorf("failed to find compiler %s", version)
	}
	solc = "solc-" + solc

	fileName := filepath.Join(config.SolcArtifacts, solc, solc)
	if _, err := os.Stat(fileName); err != nil {
		return "", fmt.Errorf("failed to find compiler %s: %w", version, err)
	}
	return fileName, nil
}
