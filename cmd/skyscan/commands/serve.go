package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/panyam/skyscan/web/server"
	"github.com/spf13/cobra"
)

var (
	serveAddr    string
	serveCompute string
	serveStatic  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the run page and proxy runs to the compute service",
	Long: `Start the web server hosting the correlation run page.

The server provides:
- the run form page at /
- static assets and the skyscan.wasm module under /static/
- POST /run and /static/plots/* forwarded to the compute service

Example:
  skyscan serve --addr :8080 --compute http://localhost:5000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if serveAddr != "" {
			cfg.WebAddr = serveAddr
		}
		if serveCompute != "" {
			cfg.ComputeURL = serveCompute
		}
		if serveStatic != "" {
			cfg.StaticDir = serveStatic
		}

		srv, err := server.NewServer(cfg)
		if err != nil {
			return err
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		srvErr := make(chan error, 1)
		stopChan := make(chan bool)
		if err := srv.Start(ctx, srvErr, stopChan); err != nil {
			return err
		}

		bold := color.New(color.Bold)
		fmt.Println(bold.Sprint("🔭 skyscan"))
		fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		fmt.Printf("📡 Run page:     http://%s/\n", srv.Address)
		fmt.Printf("🛰️  Compute:      %s\n", cfg.ComputeURL)
		fmt.Printf("📁 Static:       %s\n", cfg.StaticDir)
		fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

		select {
		case <-ctx.Done():
			close(stopChan)
			srv.Wait()
			return nil
		case err := <-srvErr:
			return err
		}
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default: SKYSCAN_WEB_ADDR or :8080)")
	serveCmd.Flags().StringVar(&serveCompute, "compute", "", "Compute service base URL (default: SKYSCAN_COMPUTE_URL or http://localhost:5000)")
	serveCmd.Flags().StringVar(&serveStatic, "static", "", "Static assets directory (default: SKYSCAN_STATIC_DIR or web/static)")
	rootCmd.AddCommand(serveCmd)
}
