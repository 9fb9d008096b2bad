package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/smasonuk/sieroom/internal/room"
)

func newTreeCmd(opts *options) *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Load every asset and print the room as it would be drawn",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			r := room.New(cfg.Scene, newCache(cfg))
			defer r.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			if err := r.Wait(ctx); err != nil {
				return fmt.Errorf("waiting for assets: %w", err)
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(r.Tree().Describe()); err != nil {
				return fmt.Errorf("encode tree: %w", err)
			}
			return enc.Close()
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "how long to wait for assets")
	return cmd
}
