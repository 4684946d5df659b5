package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kegworks/nodepack/pkg/nodepack/packager"
)

var packCmd = &cobra.Command{
	Use:   "pack [dir]",
	Short: "Produce a script-free archive from a package.json project",
	Long: `Pack strips the prepare, prepack and postpack hooks from the project's
package.json and runs the packing tool with script execution disabled.
The archive filename is printed on stdout.

A project without a package.json is skipped silently.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPack,
}

func init() {
	packCmd.Flags().StringP("tool", "t", "", "packing tool binary (default: npm)")
	_ = viper.BindPFlag("tool", packCmd.Flags().Lookup("tool"))

	rootCmd.AddCommand(packCmd)
}

// runPack packages the given directory and prints the artifact filename.
func runPack(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	p := packager.New(viper.GetString("tool"))
	artifact, err := p.Pack(cmd.Context(), dir)
	if err != nil {
		return fmt.Errorf("packing %s: %w", dir, err)
	}
	if artifact == "" {
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), artifact)
	return nil
}
