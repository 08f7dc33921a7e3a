package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fitnease/tracking/internal/progression"

	"github.com/spf13/cobra"
)

func newCompletenessCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "completeness",
		Short: "Compute the profile completeness percentage of a profile JSON file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read profile file: %w", err)
			}

			var fields map[string]any
			if err := json.Unmarshal(data, &fields); err != nil {
				return fmt.Errorf("unmarshal profile: %w", err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d\n", progression.ProfileCompleteness(fields))
			return err
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "path to the profile JSON file")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
