package commands

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"github.com/panyam/skyscan/applog"
	"github.com/panyam/skyscan/console"
	"github.com/panyam/skyscan/render"
	"github.com/panyam/skyscan/runner"
	"github.com/spf13/cobra"
)

var (
	runReq      runner.RunRequest
	runEndpoint string
	runOut      string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one correlation scan from the terminal",
	Long: `Posts one run to the compute service, shows the status rotation while
waiting, and writes the rendered results page to --out.

Parameters are sent verbatim; the compute service validates them.

Example:
  skyscan run --noise-events 500 --true-pairs 3 --time-window 1.0 --angle-sep 1.0 --out scan.html`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := runEndpoint
		if endpoint == "" {
			endpoint = cfg.RunEndpoint()
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		outcome, err := runScan(ctx, cmd.ErrOrStderr(), endpoint, runReq, runOut)
		if err != nil {
			return err
		}
		return outcome.Err()
	},
}

// runScan drives one controller cycle with terminal bindings and saves the
// region's final fragment as a standalone page.
func runScan(ctx context.Context, statusOut io.Writer, endpoint string, req runner.RunRequest, outPath string) (runner.Outcome, error) {
	region := console.NewRegion(statusOut)
	controller := runner.NewController(&console.Form{Req: req}, console.NewButton("INITIATE SCAN"),
		region, runner.NewClient(endpoint), render.New())

	applog.Start("Scanning via %s", endpoint)
	outcome, err := controller.Submit(ctx)
	if err != nil {
		return outcome, err
	}

	if outPath != "" {
		page, err := render.Page("skyscan results", baseURL(endpoint), region.HTML())
		if err != nil {
			return outcome, err
		}
		if err := os.WriteFile(outPath, []byte(page), 0o644); err != nil {
			return outcome, fmt.Errorf("writing %s: %w", outPath, err)
		}
	}

	if outcome.OK() {
		applog.Success("%d correlation(s) found", len(outcome.Result.Correlations))
		if outPath != "" {
			applog.Success("Results written to %s", outPath)
		}
	} else {
		applog.Failure("%s", outcome.Message)
	}
	return outcome, nil
}

// baseURL is the directory of endpoint, against which the service's
// relative plot URLs resolve.
func baseURL(endpoint string) string {
	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.ResolveReference(&url.URL{Path: "./"}).String()
}

func init() {
	runCmd.Flags().StringVar(&runReq.NoiseEvents, "noise-events", "500", "Number of noise events to simulate")
	runCmd.Flags().StringVar(&runReq.TruePairs, "true-pairs", "3", "Number of true correlated pairs to inject")
	runCmd.Flags().StringVar(&runReq.TimeWindow, "time-window", "1.0", "Coincidence time window in days")
	runCmd.Flags().StringVar(&runReq.AngleSep, "angle-sep", "1.0", "Maximum angular separation in degrees")
	runCmd.Flags().StringVar(&runEndpoint, "endpoint", "", "Full run endpoint URL (default: SKYSCAN_COMPUTE_URL + /run)")
	runCmd.Flags().StringVarP(&runOut, "out", "o", "", "Write the rendered results page to this file")
	rootCmd.AddCommand(runCmd)
}
