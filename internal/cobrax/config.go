package cobrax

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// AddConfigFlag adds the config file flag. It is not bound to a variable: the file is located
// with GetConfigNameFromArgs before flags are parsed, since it provides their defaults.
func AddConfigFlag(fset *pflag.FlagSet) {
	fset.StringP("config", "c", "", "config file")
}

// GetConfigNameFromArgs searches the command line for the config file name.
func GetConfigNameFromArgs(args []string) string {
	for i := 0; i+1 < len(args); i++ {
		if args[i] == "--config" || args[i] == "-c" {
			return args[i+1]
		}
	}
	return ""
}

// LoadConfigFromFile reads a YAML file into dest, which holds the defaults.
// An empty name leaves dest untouched.
func LoadConfigFromFile[T any](name string, dest *T) error {
	if name == "" {
		return nil
	}

	data, err := os.ReadFile(name)
	if err != nil {
		return fmt.Errorf("can't read config %s: %w", name, err)
	}

	if err := yaml.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("can't parse config %s: %w", name, err)
	}
	return nil
}

// WriteConfigFile stores cfg as YAML.
func WriteConfigFile(name string, cfg any) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(name, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
