package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"classpatch/internal/classfile"
	"classpatch/internal/pipeline"
	"classpatch/internal/transform"
)

func newApplyCmd(a *app) *cobra.Command {
	var dump bool

	cmd := &cobra.Command{
		Use:   "apply <file.class>...",
		Short: "Run the built-in patches over class files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.apply(cmd.Context(), cmd.OutOrStdout(), args, dump)
		},
	}

	cmd.Flags().BoolVar(&dump, "dump", false, "print the transformed class model")

	return cmd
}

func (a *app) apply(ctx context.Context, out io.Writer, paths []string, dump bool) error {
	classes := make([]*classfile.ClassNode, len(paths))

	for i, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read class file %s: %w", path, err)
		}

		class, err := classfile.Parse(data)
		if err != nil {
			return fmt.Errorf("failed to parse class file %s: %w", path, err)
		}

		classes[i] = class
	}

	units, _, err := a.scan()
	if err != nil {
		return err
	}

	registry := pipeline.NewRegistry()
	for _, u := range units {
		registry.Register(u)
	}

	p := pipeline.New(registry, pipeline.Options{
		Workers:  a.cfg.Workers,
		Rollback: a.cfg.Rollback,
		Logger:   a.logger,
	})

	results, outcomes, err := p.TransformAll(ctx, classes)
	if err != nil {
		return err
	}

	for i, o := range outcomes {
		report(out, paths[i], o)

		if dump && results[i] != nil {
			spew.Fdump(out, results[i])
		}
	}

	return nil
}

func report(out io.Writer, path string, o pipeline.Outcome) {
	status := "unchanged"

	switch {
	case o.Err != nil:
		status = "rejected"
	case len(o.Failed) > 0:
		status = "failed"
	case o.Changed():
		status = "patched"
	}

	fmt.Fprintf(out, "%s (%s): %s ran=%d failed=%d rolled_back=%d\n",
		path, o.Class, status, len(o.Ran), len(o.Failed), o.RolledBack)

	for _, f := range o.Failed {
		fmt.Fprintf(out, "  %s: %s: %v\n", f.Transformer, f.Kind, transform.Cause(f.Err))
	}
}
