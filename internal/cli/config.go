package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/agentx-labs/skelgen/internal/config"
	"github.com/agentx-labs/skelgen/internal/scaffold"
	"github.com/spf13/cobra"
)

// configKeys validates values before they are persisted.
var configKeys = map[string]func(string) error{
	config.KeyOutputDir:  func(string) error { return nil },
	config.KeyLayoutFile: func(string) error { return nil },
	config.KeyOnCollision: func(v string) error {
		_, err := scaffold.ParseCollisionPolicy(v)
		return err
	},
	config.KeyQuiet: func(v string) error {
		if _, err := strconv.ParseBool(v); err != nil {
			return fmt.Errorf("%q is not a boolean", v)
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage user settings",
	Long: `Read and write settings stored at ~/.skelgen/config.yaml.

Keys: ` + knownKeys() + `.
Environment variables (SKELGEN_OUTPUT_DIR, ...) and flags take precedence over the file.`,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		check, ok := configKeys[key]
		if !ok {
			return fmt.Errorf("unknown config key %q (known keys: %s)", key, knownKeys())
		}
		if err := check(value); err != nil {
			return fmt.Errorf("invalid value for %s: %w", key, err)
		}
		if err := config.Set(key, value); err != nil {
			return fmt.Errorf("setting config key %q: %w", key, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), config.Get(args[0]))
		return nil
	},
}

func knownKeys() string {
	keys := make([]string, 0, len(configKeys))
	for k := range configKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ", ")
}
