package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"classpatch/internal/diagnostic"
	"classpatch/internal/patch"
	"classpatch/internal/patches"
	"classpatch/internal/transform"
)

func newScanCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "List the transformer units of the built-in patches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			units, diags, err := a.scan()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, u := range units {
				fmt.Fprintf(w, "%s\t%s.%s\n", u, u.Patch(), u.Name())
			}

			if err := w.Flush(); err != nil {
				return err
			}

			for _, d := range diags.Infos {
				if d.Code == diagnostic.CodeInjectionSkipped {
					fmt.Fprintf(cmd.OutOrStdout(), "skipped %s.%s: %s\n", d.Subject, d.Member, d.Message)
				}
			}

			return nil
		},
	}
}

// scan builds the units of every built-in patch.
func (a *app) scan() ([]*transform.Unit, diagnostic.Diagnostics, error) {
	resolver, err := a.cfg.Resolver()
	if err != nil {
		return nil, diagnostic.Diagnostics{}, err
	}

	s := patch.NewScanner(resolver, a.cfg.ServiceSet(), a.logger)

	units, err := s.ScanAll(patches.All()...)
	if err != nil {
		return nil, s.Diagnostics(), fmt.Errorf("scan failed: %w", err)
	}

	return units, s.Diagnostics(), nil
}
