package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kegworks/nodepack/pkg/nodepack/formula"
	"github.com/kegworks/nodepack/pkg/nodepack/shebang"
)

var shebangCmd = &cobra.Command{
	Use:   "rewrite-shebangs [paths...]",
	Short: "Repoint node shebangs of installed scripts",
	Long: `Rewrite-shebangs patches the first line of every executable script under
the given paths so that /usr/bin/node and /usr/bin/env node shebangs invoke
a specific node binary instead.

The interpreter is given explicitly with --node, or detected from a
formula's dependencies with --formula --deps against a cellar layout.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRewriteShebangs,
}

func init() {
	shebangCmd.Flags().String("node", "", "node interpreter path to rewrite to")
	shebangCmd.Flags().String("formula", "", "formula name to detect the interpreter for")
	shebangCmd.Flags().StringSlice("deps", nil, "formula dependency names used for detection")
	shebangCmd.Flags().String("cellar", "", "installation root containing opt/<name> links")
	_ = viper.BindPFlag("cellar", shebangCmd.Flags().Lookup("cellar"))

	rootCmd.AddCommand(shebangCmd)
}

// runRewriteShebangs builds a rewrite rule and applies it to each path.
func runRewriteShebangs(cmd *cobra.Command, args []string) error {
	rule, err := resolveRule(cmd)
	if err != nil {
		return err
	}

	total := 0
	for _, root := range args {
		n, err := shebang.RewriteTree(root, rule)
		total += n
		if err != nil {
			return fmt.Errorf("rewriting %s: %w", root, err)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "rewrote %d file(s)\n", total)
	return nil
}

// resolveRule turns the command's flags into a rewrite rule, either from an
// explicit interpreter path or by formula dependency detection.
func resolveRule(cmd *cobra.Command) (shebang.RewriteRule, error) {
	nodePath, _ := cmd.Flags().GetString("node")
	if nodePath != "" {
		return shebang.BuildRule(nodePath), nil
	}

	name, _ := cmd.Flags().GetString("formula")
	deps, _ := cmd.Flags().GetStringSlice("deps")
	cellar := viper.GetString("cellar")
	if name == "" || cellar == "" {
		return shebang.RewriteRule{}, errors.New("either --node or --formula with --cellar is required")
	}

	f := &formula.Formula{
		Name:         name,
		Dependencies: deps,
	}
	return shebang.DetectRule(f, formula.DirRegistry{Root: strings.TrimSuffix(cellar, "/")})
}
