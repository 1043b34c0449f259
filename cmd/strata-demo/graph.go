package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/xraph/strata"
	"github.com/xraph/strata/demo"
)

func newGraphCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "graph",
		Short: "Print the bindings of every scope and validate them",
		Long: `Print each scope tag with its parent and the bindings installed in it,
including the module that provided each binding and its dependencies.
Exits with an error when validation fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bundle, err := a.bundle()
			if err != nil {
				return err
			}

			appCtx := demo.NewApplicationContext(bundle, a.cfg.Locale)

			c, err := demo.NewContainer(appCtx, nopSink())
			if err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", red("validation failed"))
				for _, e := range multierr.Errors(err) {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", e)
				}
				return err
			}
			defer func() { _ = c.End() }()

			printGraph(cmd.OutOrStdout(), c)
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", green("validation ok"))

			return nil
		},
	}
}

func printGraph(out io.Writer, c strata.Container) {
	for _, tag := range c.Scopes() {
		header := string(tag)
		if parent, ok := c.ScopeParent(tag); ok {
			header += " (parent " + string(parent) + ")"
		}
		fmt.Fprintln(out, cyan(header))

		for _, info := range strata.FindByScope(c, tag) {
			var deps []string
			for _, d := range info.Dependencies {
				dep := d.Key.String()
				if d.Lazy {
					dep += " (lazy)"
				}
				deps = append(deps, dep)
			}

			line := "  " + info.Key.String()
			if module := info.Metadata["module"]; module != "" {
				line += " " + yellow("["+module+"]")
			}
			if info.Seeded {
				line += " seeded"
			}
			if len(deps) > 0 {
				line += " <- " + strings.Join(deps, ", ")
			}
			fmt.Fprintln(out, line)
		}
	}
}
