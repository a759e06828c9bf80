package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"classpatch/internal/mapping"
)

var errNoMappings = errors.New("no mapping file configured")

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check [mappings-file]",
		Short: "Validate a mapping file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.cfg.Mappings
			if len(args) == 1 {
				path = args[0]
			}

			return check(cmd.OutOrStdout(), path)
		},
	}
}

func check(out io.Writer, path string) error {
	if path == "" {
		return errNoMappings
	}

	f, err := mapping.LoadFile(path)
	if err != nil {
		return err
	}

	diags := mapping.Validate(f)
	for _, d := range diags.All() {
		fmt.Fprintf(out, "%s: %s\n", d.Severity, d)
	}

	if err := diags.Error(); err != nil {
		return fmt.Errorf("%s is invalid: %d error(s)", path, len(diags.Errors))
	}

	fmt.Fprintf(out, "%s: %d classes ok\n", path, len(f.Classes))

	return nil
}
