package compilation

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/NilFoundation/solforge/common/logging"
	"github.com/NilFoundation/solforge/internal/contractabi"
	"github.com/NilFoundation/solforge/internal/flatten"
	"github.com/NilFoundation/solforge/internal/imports"
	"github.com/NilFoundation/solforge/internal/solc"
	"github.com/NilFoundation/solforge/internal/sourcecache"
	"github.com/NilFoundation/solforge/internal/telemetry"
)

var outputSelection = map[string]any{
	"*": map[string]any{
		"*": []string{"abi", "evm.bytecode.object"},
	},
}

// Service compiles and flattens single-entry sources.
type Service struct {
	catalog  *solc.Catalog
	loader   *solc.Loader
	resolver *imports.Resolver
	measurer *telemetry.Measurer
	logger   logging.Logger

	closers []func() error
}

func NewService(
	catalog *solc.Catalog, loader *solc.Loader, resolver *imports.Resolver, logger logging.Logger,
) (*Service, error) {
	measurer, err := telemetry.NewMeasurer(telemetry.NewMeter("solforge"), "solforge.compilation")
	if err != nil {
		return nil, fmt.Errorf("failed to create measurer: %w", err)
	}
	return &Service{
		catalog:  catalog,
		loader:   loader,
		resolver: resolver,
		measurer: measurer,
		logger:   logger,
	}, nil
}

// NewServiceFromConfig wires the compiler catalog, the compiler loader and the import resolver
// with their network and cache backends.
func NewServiceFromConfig(cfg *Config) (*Service, error) {
	client := &http.Client{Timeout: cfg.FetchTimeout}

	catalog := solc.NewCatalog(
		solc.NewHttpManifestSource(cfg.ManifestUrl, client, logging.NewLogger("manifest")),
		logging.NewLogger("catalog"))
	loader := solc.NewLoader(solc.NewSolcSelectInstaller(logging.NewLogger("installer")), logging.NewLogger("loader"))

	var closers []func() error
	var store imports.Store
	if cfg.SourceCachePath != "" {
		s, err := sourcecache.Open(cfg.SourceCachePath, cfg.DependencyVersion)
		if err != nil {
			return nil, err
		}
		store = s
		closers = append(closers, s.Close)
	}

	mirror := imports.NewHttpMirrorFetcher(
		cfg.MirrorUrl, cfg.DependencyNamespace, cfg.DependencyVersion, client, logging.NewLogger("mirror"))
	cached, err := imports.NewCachedFetcher(mirror, cfg.SourceCacheSize, store, logging.NewLogger("source-cache"))
	if err != nil {
		return nil, errors.Join(err, closeAll(closers))
	}

	var fetcher imports.Fetcher = cached
	if cfg.SourcesDir != "" {
		fetcher = imports.ChainFetcher{imports.NewDirFetcher(cfg.SourcesDir), cached}
	}
	resolver := imports.NewResolver(cfg.DependencyNamespace, fetcher, logging.NewLogger("imports"))

	s, err := NewService(catalog, loader, resolver, logging.NewLogger("compilation"))
	if err != nil {
		return nil, errors.Join(err, closeAll(closers))
	}
	s.closers = closers
	return s, nil
}

// Close releases the caches opened by NewServiceFromConfig.
func (s *Service) Close() error {
	return closeAll(s.closers)
}

func closeAll(closers []func() error) error {
	var errs []error
	for _, c := range closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

// Versions lists the known compiler releases, newest first.
func (s *Service) Versions(ctx context.Context) ([]*solc.Release, error) {
	return s.catalog.Versions(ctx)
}

// Compile runs the whole pipeline for the request. It never fails: errors are reported in the result.
func (s *Service) Compile(ctx context.Context, req *Request) *Result {
	m := s.measurer.Start()

	res, err := s.compile(ctx, req)
	if err != nil {
		s.logger.Warn().Err(err).
			Str(logging.FieldFileName, req.FileName).
			Str(logging.FieldCompilerVersion, req.CompilerVersion).
			Msg("Compilation failed")
		res = failure(err)
	}

	m.Finish(ctx,
		telemetry.Operation("compile"),
		telemetry.Success(res.Success),
		telemetry.CompilerVersion(req.CompilerVersion))
	return res
}

func (s *Service) compile(ctx context.Context, req *Request) (*Result, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	release, err := s.catalog.ResolveVersion(ctx, req.CompilerVersion)
	if err != nil {
		return nil, err
	}
	compiler, err := s.loader.Load(ctx, release)
	if err != nil {
		return nil, err
	}

	set, err := s.resolve(ctx, req)
	if err != nil {
		return nil, err
	}

	output, err := compiler.Compile(ctx, s.compilerInput(req, set))
	if err != nil {
		return nil, err
	}

	if errs := output.ErrorsBySeverity(solc.SeverityError); len(errs) > 0 {
		diagnostics := make([]string, len(errs))
		for i, e := range errs {
			diagnostics[i] = strings.TrimSpace(e.String())
		}
		return nil, &CompilationError{Diagnostics: diagnostics}
	}
	if warnings := output.ErrorsBySeverity(solc.SeverityWarning); len(warnings) > 0 {
		s.logger.Debug().
			Str(logging.FieldFileName, req.FileName).
			Int(logging.FieldDiagnostics, len(warnings)).
			Msg("Compiler reported warnings")
	}

	contracts, err := output.FileContracts(req.FileName)
	if err != nil {
		return nil, err
	}
	contract, err := selectContract(contracts, req)
	if err != nil {
		return nil, err
	}

	entries, err := contractabi.ParseJSON(contract.Abi)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str(logging.FieldFileName, req.FileName).
		Str(logging.FieldContractName, contract.Name).
		Str(logging.FieldCompilerVersion, compiler.FullVersion()).
		Msg("Contract compiled")

	optimizer := req.Optimizer
	return &Result{
		Success:           true,
		ContractName:      contract.Name,
		Abi:               contract.Abi,
		Bytecode:          "0x" + strings.TrimPrefix(contract.Evm.Bytecode.Object, "0x"),
		ConstructorInputs: contractabi.ConstructorInputs(entries),
		Flattened:         flatten.Flatten(req.FileName, req.Source, set, flatten.WithNamespace(s.resolver.Namespace())),
		CompilerVersion:   compiler.FullVersion(),
		Optimizer:         &optimizer,
		EvmVersion:        req.EvmVersion,
	}, nil
}

// Flatten resolves the imports of the request and returns the single-file source.
func (s *Service) Flatten(ctx context.Context, req *Request) (string, error) {
	if err := validate(req); err != nil {
		return "", err
	}
	set, err := s.resolve(ctx, req)
	if err != nil {
		return "", err
	}
	return flatten.Flatten(req.FileName, req.Source, set, flatten.WithNamespace(s.resolver.Namespace())), nil
}

func (s *Service) resolve(ctx context.Context, req *Request) (*imports.SourceSet, error) {
	return s.resolver.ResolveAll(ctx, req.FileName, req.Source, imports.WithOverlay(req.Sources))
}

func (s *Service) compilerInput(req *Request, set *imports.SourceSet) *solc.CompilerJsonInput {
	input := &solc.CompilerJsonInput{
		Language: "Solidity",
		Sources:  make(map[string]*solc.Source, set.Len()),
		Settings: solc.CompilerSettings{
			Optimizer:       req.Optimizer,
			EvmVersion:      req.EvmVersion,
			OutputSelection: outputSelection,
		},
	}
	for _, unit := range set.Units() {
		input.Sources[unit.Name] = &solc.Source{Content: unit.Content}
	}
	return input
}

func selectContract(contracts []solc.NamedContract, req *Request) (*solc.NamedContract, error) {
	if len(contracts) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoContractProduced, req.FileName)
	}
	if req.ContractName == "" {
		return &contracts[0], nil
	}
	for i := range contracts {
		if contracts[i].Name == req.ContractName {
			return &contracts[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s has no contract %s", ErrNoContractProduced, req.FileName, req.ContractName)
}

func validate(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: empty request", ErrInvalidRequest)
	}
	if strings.TrimSpace(req.FileName) == "" {
		return fmt.Errorf("%w: file name is required", ErrInvalidRequest)
	}
	if strings.TrimSpace(req.Source) == "" {
		return fmt.Errorf("%w: source is empty", ErrInvalidRequest)
	}
	return nil
}
