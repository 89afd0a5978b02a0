package config

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/madlibs/internal/cli/shared"
	cfgpkg "github.com/ariel-frischer/madlibs/internal/config"
	clierrors "github.com/ariel-frischer/madlibs/internal/errors"
)

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and change madlibs configuration",
		Long: `Configuration is read from ~/.madlibs/config.json, then the file given with
--config, then MADLIBS_* environment variables (highest priority).`,
		GroupID: shared.GroupConfiguration,
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as JSON",
		Args:  shared.NoArgs,
		RunE:  runConfigShow,
	}

	keysCmd := &cobra.Command{
		Use:   "keys",
		Short: "List all available configuration keys",
		Long:  `Display all valid configuration keys with their types and descriptions.`,
		Args:  shared.NoArgs,
		RunE:  runConfigKeys,
	}

	setCmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: `Set a configuration value in the user config (~/.madlibs/config.json).
The value is validated against the key's type before it is written.`,
		Example: `  # Always ask for eight blanks
  madlibs config set blanks 8

  # Use a different model
  madlibs config set model gemini-2.5-pro

  # Write to a project config instead
  madlibs config set theme pirates --file ./madlibs.json`,
		Args: shared.ExactArgs(2),
		RunE: runConfigSet,
	}
	setCmd.Flags().String("file", "", "Config file to write (default: ~/.madlibs/config.json)")

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the user config file path",
		Args:  shared.NoArgs,
		RunE:  runConfigPath,
	}

	configCmd.AddCommand(showCmd, keysCmd, setCmd, pathCmd)
	return configCmd
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg, err := shared.LoadConfig(cmd)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg.Redacted(), "", "  ")
	if err != nil {
		return clierrors.Wrap(err, clierrors.Runtime)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func runConfigKeys(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	defaults := cfgpkg.GetDefaults()

	fmt.Fprintln(out, "Available configuration keys:")
	fmt.Fprintln(out)

	for _, key := range cfgpkg.SortedKeys() {
		schema := cfgpkg.KnownKeys[key]
		typeInfo := schema.Type.String()
		if schema.Type == cfgpkg.TypeEnum {
			typeInfo = fmt.Sprintf("enum (%s)", strings.Join(schema.AllowedValues, ", "))
		}
		fmt.Fprintf(out, "  %-16s %-24s default: %v\n", key, typeInfo, defaultValue(schema, defaults[key]))
		fmt.Fprintf(out, "    %s\n", schema.Description)
		fmt.Fprintln(out)
	}

	return nil
}

func defaultValue(schema cfgpkg.ConfigKeySchema, v interface{}) interface{} {
	if s, ok := v.(string); ok && s == "" {
		return `""`
	}
	if schema.Secret {
		return "********"
	}
	return v
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	filePath, _ := cmd.Flags().GetString("file")
	if filePath == "" {
		var err error
		filePath, err = cfgpkg.GlobalConfigPath()
		if err != nil {
			return clierrors.Wrap(err, clierrors.Configuration)
		}
	}

	if err := cfgpkg.SetConfigValue(filePath, key, value); err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Configuration, "setting config value",
			"Run 'madlibs config keys' to list valid keys and types")
	}

	shown := value
	if schema, _ := cfgpkg.GetKeySchema(key); schema.Secret {
		shown = "********"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s in %s\n", key, shown, filePath)
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	path, err := cfgpkg.GlobalConfigPath()
	if err != nil {
		return clierrors.Wrap(err, clierrors.Configuration)
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
