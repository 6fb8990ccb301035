package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cffkit/cffkit/internal/config"
)

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Get or set global configuration",
	Long: `Get or set cffkit's global configuration.

Keys:
  resolver-url  DOI handle API endpoint
  mailto        Contact address sent with resolver requests
  index-root    Default tree for cff index build
  index-dir     Directory the catalog and cache live in
  strict        Treat lint warnings as validation errors

The file lives at ~/.config/cffkit/config.yml; $CFF_CONFIG overrides
the location.`,
}

// UpdateResponse is the JSON response for config set.
type UpdateResponse struct {
	Status string `json:"status"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Show one value, or the whole configuration",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigGet,
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	if len(args) == 0 {
		if humanOutput {
			for _, key := range config.Keys() {
				v, _ := cfg.Get(key)
				fmt.Printf("%-13s %s\n", key+":", v)
			}
		} else {
			values := make(map[string]string, len(config.Keys()))
			for _, key := range config.Keys() {
				v, _ := cfg.Get(key)
				values[key] = v
			}
			outputJSON(values)
		}
		return nil
	}

	key := args[0]
	v, err := cfg.Get(key)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if humanOutput {
		fmt.Println(v)
	} else {
		outputJSON(map[string]string{key: v})
	}
	return nil
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value.

Examples:
  cff config set mailto you@example.org
  cff config set index-root ~/src`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	key, value := args[0], args[1]
	if err := cfg.Set(key, value); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	path := config.Path()
	if path == "" {
		exitWithError(ExitConfigError, "cannot determine config path")
	}
	if err := cfg.Save(path); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if humanOutput {
		fmt.Printf("Updated %s to %s\n", key, value)
	} else {
		outputJSON(UpdateResponse{Status: "updated", Key: key, Value: value})
	}
	return nil
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	path := config.Path()
	if path == "" {
		exitWithError(ExitConfigError, "cannot determine config path")
	}
	if humanOutput {
		fmt.Println(path)
	} else {
		outputJSON(map[string]string{"path": path})
	}
	return nil
}

// configTemplate is the starter file config init writes: every key
// present, every key commented out.
const configTemplate = `# cffkit configuration
#
# resolver_url: https://doi.org/api/handles
# mailto: you@example.org
# index_root: ~/src
# index_dir: ~/.local/share/cffkit
# strict: false
`

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.Path()
	if path == "" {
		exitWithError(ExitConfigError, "cannot determine config path")
	}
	if _, err := os.Stat(path); err == nil {
		exitWithError(ExitError, "%s already exists", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		exitWithError(ExitError, "creating config directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		exitWithError(ExitError, "writing config: %v", err)
	}

	if humanOutput {
		fmt.Printf("Created %s\n", path)
	} else {
		outputJSON(StatusResponse{Status: "created", Path: path})
	}
	return nil
}
