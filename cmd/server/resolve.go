package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hperssn/spinwheel/internal/domain"
)

func resolveCmd() *cobra.Command {
	var rotation float64
	var random bool

	cmd := &cobra.Command{
		Use:   "resolve [flags] LABEL...",
		Short: "Print which label wins for a rotation, without a server",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if random {
				rotation += domain.GenerateSpinRotation(stdRNG{})
			}

			segments := make([]domain.Segment, len(args))
			for i, label := range args {
				segments[i] = domain.Segment{ID: int64(i + 1), Label: label, Order: i}
			}

			winner, err := domain.CalculateWinningSegment(rotation, segments)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if random {
				fmt.Fprintf(out, "rotation: %.2f\n", rotation)
			}
			fmt.Fprintln(out, winner.Label)
			return nil
		},
	}

	cmd.Flags().Float64Var(&rotation, "rotation", 0, "final rotation in degrees")
	cmd.Flags().BoolVar(&random, "random", false, "add a random spin to --rotation")

	return cmd
}
