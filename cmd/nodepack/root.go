package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kegworks/nodepack/pkg/nodepack/logging"
)

var rootCmd = &cobra.Command{
	Use:   "nodepack",
	Short: "Node.js packaging helpers for build recipes",
	Long: `Nodepack packages package.json-described projects into script-free
archives and repoints the shebangs of installed scripts at a
package-manager-owned node interpreter.

Examples:
  nodepack pack .                          # Pack the current project
  nodepack pack --tool pnpm ~/src/app      # Pack with a different tool
  nodepack rewrite-shebangs --node /opt/node/bin/node libexec/bin
  nodepack version                         # Show version information`,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug output on stderr")

	// Bind flags to viper
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig wires environment variables and initializes logging.
func initConfig() {
	viper.SetEnvPrefix("NODEPACK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("tool", "npm")
	viper.SetDefault("cellar", "")
	viper.SetDefault("log_path", "")

	cfg := logging.Config{
		Level: viper.GetString("log_level"),
		Path:  viper.GetString("log_path"),
	}
	if viper.GetBool("verbose") {
		cfg.ConsoleLevel = "debug"
	}
	if err := logging.Init(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: initializing logging: %v\n", err)
	}
}

// Execute runs the root command.
func Execute() error {
	defer func() { _ = logging.Close() }()
	return rootCmd.Execute()
}
