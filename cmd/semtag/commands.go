package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/c360studio/semtag/source"
)

type outputFlags struct {
	dir     string
	inPlace bool
	format  string
}

func (o *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.dir, "output", "o", "", "Directory for annotated documents")
	cmd.Flags().BoolVarP(&o.inPlace, "in-place", "i", false, "Rewrite input documents in place")
	cmd.Flags().StringVar(&o.format, "format", "", "Output format (yaml, json); default follows config or file extension")
}

func (o *outputFlags) validate() error {
	if o.inPlace == (o.dir != "") {
		return fmt.Errorf("exactly one of --output or --in-place is required")
	}
	switch o.format {
	case "", "yaml", "json":
		return nil
	default:
		return fmt.Errorf("unknown format %q", o.format)
	}
}

func annotateCmd(g *globalFlags) *cobra.Command {
	out := &outputFlags{}
	cmd := &cobra.Command{
		Use:   "annotate [files or globs...]",
		Short: "Annotate documents once",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.validate(); err != nil {
				return err
			}
			app, err := g.setup()
			if err != nil {
				return err
			}
			inputs, err := source.ResolveInputs(args)
			if err != nil {
				return err
			}
			app.SetFormat(out.format)
			return app.AnnotateAll(inputs, out.dir, out.inPlace)
		},
	}
	out.register(cmd)
	return cmd
}

func watchCmd(g *globalFlags) *cobra.Command {
	out := &outputFlags{}
	cmd := &cobra.Command{
		Use:   "watch [files or globs...]",
		Short: "Annotate documents and re-annotate them whenever they change",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.validate(); err != nil {
				return err
			}
			app, err := g.setup()
			if err != nil {
				return err
			}
			inputs, err := source.ResolveInputs(args)
			if err != nil {
				return err
			}
			app.SetFormat(out.format)

			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()
			return app.Watch(ctx, inputs, out.dir, out.inPlace)
		},
	}
	out.register(cmd)
	return cmd
}

func definitionsCmd(g *globalFlags) *cobra.Command {
	var novel bool
	cmd := &cobra.Command{
		Use:   "definitions <file>",
		Short: "List the Definitions a document is matched against",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := g.setup()
			if err != nil {
				return err
			}
			return app.ListDefinitions(cmd.OutOrStdout(), args[0], novel)
		},
	}
	cmd.Flags().BoolVar(&novel, "novel", false, "Also list words unknown to the language model")
	return cmd
}
