package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/NilFoundation/solforge/common/check"
	"github.com/NilFoundation/solforge/common/logging"
	"github.com/NilFoundation/solforge/internal/cobrax"
	"github.com/NilFoundation/solforge/internal/telemetry"
	"github.com/NilFoundation/solforge/services/compilation"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type Command uint

const (
	CommandRun Command = iota + 1
	CommandCompile
	CommandFlatten
	CommandVersions
	CommandCreateConfig
)

type config struct {
	command  Command
	cfgFile  string
	logLevel string

	serviceCfg compilation.Config

	requestFile string
	request     compilation.Request
	sourceFile  string
}

func main() {
	cfg := parseArgs()
	if cfg.command == 0 {
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var err error
	switch cfg.command {
	case CommandRun:
		err = processRun(ctx, cfg)
	case CommandCompile:
		err = processCompile(ctx, cfg)
	case CommandFlatten:
		err = processFlatten(ctx, cfg)
	case CommandVersions:
		err = processVersions(ctx, cfg)
	case CommandCreateConfig:
		err = processCreateConfig(cfg)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "solforge failed: %s\n", err.Error())
		cancel()
		os.Exit(1)
	}
}

func processRun(ctx context.Context, cfg *config) error {
	logger := logging.NewLogger("solforge")

	if err := telemetry.Init(ctx, &cfg.serviceCfg.Telemetry, logger); err != nil {
		return err
	}
	defer telemetry.Shutdown(ctx)

	service, err := compilation.NewServiceFromConfig(&cfg.serviceCfg)
	if err != nil {
		return err
	}
	defer service.Close()

	return compilation.Run(ctx, &cfg.serviceCfg, service, logger)
}

func loadRequest(cfg *config) (*compilation.Request, error) {
	req := cfg.request
	if err := cobrax.LoadConfigFromFile(cfg.requestFile, &req); err != nil {
		return nil, err
	}
	if cfg.sourceFile != "" {
		data, err := os.ReadFile(cfg.sourceFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read source: %w", err)
		}
		req.Source = string(data)
		if req.FileName == "" {
			req.FileName = filepath.Base(cfg.sourceFile)
		}
		if cfg.serviceCfg.SourcesDir == "" {
			cfg.serviceCfg.SourcesDir = filepath.Dir(cfg.sourceFile)
		}
	}
	return &req, nil
}

func processCompile(ctx context.Context, cfg *config) error {
	req, err := loadRequest(cfg)
	if err != nil {
		return err
	}
	service, err := compilation.NewServiceFromConfig(&cfg.serviceCfg)
	if err != nil {
		return err
	}
	defer service.Close()

	res := service.Compile(ctx, req)
	if err := printJson(res); err != nil {
		return err
	}
	if !res.Success {
		return fmt.Errorf("%w: %s", compilation.ErrCompilation, req.FileName)
	}
	return nil
}

func processFlatten(ctx context.Context, cfg *config) error {
	req, err := loadRequest(cfg)
	if err != nil {
		return err
	}
	service, err := compilation.NewServiceFromConfig(&cfg.serviceCfg)
	if err != nil {
		return err
	}
	defer service.Close()

	flattened, err := service.Flatten(ctx, req)
	if err != nil {
		return err
	}
	fmt.Print(flattened)
	return nil
}

func processVersions(ctx context.Context, cfg *config) error {
	service, err := compilation.NewServiceFromConfig(&cfg.serviceCfg)
	if err != nil {
		return err
	}
	defer service.Close()

	releases, err := service.Versions(ctx)
	if err != nil {
		return err
	}
	for _, r := range releases {
		fmt.Println(r.FullVersion())
	}
	return nil
}

func processCreateConfig(cfg *config) error {
	if cfg.cfgFile == "" {
		cfg.cfgFile = "./solforge.yaml"
	}
	if err := cobrax.WriteConfigFile(cfg.cfgFile, &cfg.serviceCfg); err != nil {
		return err
	}
	fmt.Printf("Config file %s has been created\n", cfg.cfgFile)
	return nil
}

func printJson(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parseArgs() *config {
	cfg := &config{}

	// The config file provides flag defaults, so it is loaded before the flags are parsed.
	cfg.serviceCfg.ResetToDefault()
	cfg.serviceCfg.InitFromFile(cobrax.GetConfigNameFromArgs(os.Args))

	rootCmd := &cobra.Command{
		Use:           "solforge [global flags] [command]",
		Short:         "solforge resolves, compiles and flattens Solidity contracts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupGlobalLogger(cfg.logLevel)
		},
	}

	fset := rootCmd.PersistentFlags()
	fset.StringVarP(&cfg.cfgFile, "config", "c", "", "config file")
	cobrax.AddLogLevelFlag(fset, &cfg.logLevel)
	fset.StringVar(&cfg.serviceCfg.ManifestUrl, "manifest-url", cfg.serviceCfg.ManifestUrl, "compiler release manifest url")
	fset.StringVar(&cfg.serviceCfg.DependencyNamespace, "dependency-namespace", cfg.serviceCfg.DependencyNamespace,
		"import prefix served by the dependency mirror")
	fset.StringVar(&cfg.serviceCfg.DependencyVersion, "dependency-version", cfg.serviceCfg.DependencyVersion,
		"version of the dependency package")
	fset.StringVar(&cfg.serviceCfg.MirrorUrl, "mirror-url", cfg.serviceCfg.MirrorUrl, "dependency mirror url template")
	fset.DurationVar(&cfg.serviceCfg.FetchTimeout, "fetch-timeout", cfg.serviceCfg.FetchTimeout, "network fetch timeout")
	fset.IntVar(&cfg.serviceCfg.SourceCacheSize, "source-cache-size", cfg.serviceCfg.SourceCacheSize,
		"number of dependency sources kept in memory")
	fset.StringVar(&cfg.serviceCfg.SourceCachePath, "source-cache-path", cfg.serviceCfg.SourceCachePath,
		"directory of the persistent dependency cache")
	fset.StringVar(&cfg.serviceCfg.SourcesDir, "sources-dir", cfg.serviceCfg.SourcesDir,
		"local directory searched for imports before the mirror")

	check.PanicIfErr(viper.BindPFlags(fset))

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run compilation server",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cfg.command = CommandRun
		},
	}
	runCmd.Flags().StringVar(&cfg.serviceCfg.Endpoint, "endpoint", cfg.serviceCfg.Endpoint, "server endpoint")
	runCmd.Flags().StringSliceVar(&cfg.serviceCfg.CorsAllowedOrigins, "cors-origins",
		cfg.serviceCfg.CorsAllowedOrigins, "allowed CORS origins")
	runCmd.Flags().StringSliceVar(&cfg.serviceCfg.VirtualHosts, "vhosts", cfg.serviceCfg.VirtualHosts,
		"accepted virtual hosts, * accepts any")
	runCmd.Flags().BoolVar(&cfg.serviceCfg.Telemetry.ExportMetrics, "metrics", cfg.serviceCfg.Telemetry.ExportMetrics,
		"export metrics via OTLP")
	runCmd.Flags().IntVar(&cfg.serviceCfg.Telemetry.PrometheusPort, "prometheus-port",
		cfg.serviceCfg.Telemetry.PrometheusPort, "port of the prometheus endpoint, 0 disables it")
	rootCmd.AddCommand(runCmd)

	addRequestFlags := func(cmd *cobra.Command) {
		cmd.Flags().StringVarP(&cfg.requestFile, "request", "r", "", "YAML or JSON file with the request")
		cmd.Flags().StringVar(&cfg.request.FileName, "file-name", "", "source-unit name of the entry, defaults to the file base name")
		cmd.Flags().StringVar(&cfg.request.CompilerVersion, "compiler-version", "", "compiler version, e.g. 0.8.20")
		cmd.Flags().BoolVar(&cfg.request.Optimizer.Enabled, "optimize", false, "enable the optimizer")
		cmd.Flags().IntVar(&cfg.request.Optimizer.Runs, "runs", 200, "optimizer runs")
		cmd.Flags().StringVar(&cfg.request.EvmVersion, "evm-version", "", "target EVM version")
		cmd.Flags().StringVar(&cfg.request.ContractName, "contract", "", "contract to pick from the entry file, defaults to the first one")
	}

	compileCmd := &cobra.Command{
		Use:   "compile [source file]",
		Short: "Compile a contract and print the result as JSON",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			cfg.command = CommandCompile
			if len(args) > 0 {
				cfg.sourceFile = args[0]
			}
		},
	}
	addRequestFlags(compileCmd)
	rootCmd.AddCommand(compileCmd)

	flattenCmd := &cobra.Command{
		Use:   "flatten [source file]",
		Short: "Print the source with all its imports inlined",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			cfg.command = CommandFlatten
			if len(args) > 0 {
				cfg.sourceFile = args[0]
			}
		},
	}
	addRequestFlags(flattenCmd)
	rootCmd.AddCommand(flattenCmd)

	versionsCmd := &cobra.Command{
		Use:   "versions",
		Short: "List available compiler versions",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cfg.command = CommandVersions
		},
	}
	rootCmd.AddCommand(versionsCmd)

	createConfigCmd := &cobra.Command{
		Use:   "create-config",
		Short: "Create config file",
		Long:  "Create config file which can be specified by `--config` flag. By default it creates `./solforge.yaml`",
		Run: func(cmd *cobra.Command, args []string) {
			cfg.command = CommandCreateConfig
			cfg.serviceCfg.ResetToDefault()
		},
	}
	rootCmd.AddCommand(createConfigCmd)

	rootCmd.AddCommand(cobrax.VersionCmd("solforge"))

	check.PanicIfErr(rootCmd.Execute())

	return cfg
}
