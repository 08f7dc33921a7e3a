// Command progression scores fitness profiles outside the service: from a snapshot
// file, or live against the profile store.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fitnease/tracking/internal/logging"
	"github.com/fitnease/tracking/internal/profile"
	"github.com/fitnease/tracking/internal/progression"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:           "progression",
		Short:         "Score fitness level progression",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(logging.LoggerSetupParams{LogLevel: logLevel})
		},
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "error", "log level [trace | debug | info | warn | error]")

	rootCmd.AddCommand(
		newScoreCmd(),
		newCheckCmd(),
		newCompletenessCmd(),
	)
	return rootCmd
}

// evaluation is what score and check print.
type evaluation struct {
	Eligibility progression.EligibilityResult `json:"eligibility"`
	Progress    progression.ProgressReport    `json:"progress"`
}

func evaluate(scorer *progression.Scorer, snapshot profile.Snapshot) evaluation {
	result := scorer.Evaluate(snapshot)
	return evaluation{
		Eligibility: result,
		Progress:    progression.NewProgressReport(result),
	}
}

func parseNow(value string) (func() time.Time, error) {
	if value == "" {
		return nil, nil
	}
	ts, err := time.Parse(time.DateOnly, value)
	if err != nil {
		if ts, err = time.Parse(time.RFC3339, value); err != nil {
			return nil, fmt.Errorf("invalid --now [%s], use YYYY-MM-DD or RFC3339", value)
		}
	}
	return func() time.Time { return ts }, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
