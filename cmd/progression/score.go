package main

import (
	"fmt"
	"os"

	"github.com/fitnease/tracking/internal/profile"
	"github.com/fitnease/tracking/internal/progression"

	"github.com/spf13/cobra"
)

func newScoreCmd() *cobra.Command {
	var (
		file string
		now  string
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a profile snapshot read from a JSON file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read snapshot file: %w", err)
			}

			snapshot, err := profile.DecodeSnapshot(data)
			if err != nil {
				return err
			}

			nowFunc, err := parseNow(now)
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), evaluate(progression.NewScorer(nowFunc), *snapshot))
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "path to the snapshot JSON file")
	cmd.Flags().StringVar(&now, "now", "", "evaluate as of this date (YYYY-MM-DD or RFC3339), defaults to now")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
