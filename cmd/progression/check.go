package main

import (
	"context"
	"fmt"
	"time"

	"github.com/fitnease/tracking/internal/profile"
	"github.com/fitnease/tracking/internal/progression"

	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	var (
		profileURL string
		userID     int
		timeout    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Fetch a user's snapshot from the profile store and score it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID <= 0 {
				return fmt.Errorf("--user must be a positive user id")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			client := profile.NewClient(profileURL, nil, timeout)
			snapshot, err := client.Snapshot(ctx, userID)
			if err != nil {
				return fmt.Errorf("fetch snapshot for user %d: %w", userID, err)
			}

			return printJSON(cmd.OutOrStdout(), evaluate(progression.NewScorer(nil), *snapshot))
		},
	}

	cmd.Flags().StringVar(&profileURL, "profile-url", "http://localhost:8083", "base URL of the profile store")
	cmd.Flags().IntVarP(&userID, "user", "u", 0, "user id")
	cmd.Flags().DurationVar(&timeout, "timeout", profile.DefaultTimeout, "request timeout")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
