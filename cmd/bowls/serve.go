package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/davemarvit/SGFPlayer-sub000/internal/core"
	"github.com/davemarvit/SGFPlayer-sub000/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagServeSeed   uint64
)

var serveCmd = &cobra.Command{
	Use:   "serve [tracks...]",
	Short: "Serve the viewer over SSH",
	Long: `Start an SSH server that opens the bowl viewer for every connection.

Each connection gets its own layouts and cache, so one user switching
algorithms never affects another.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.bowls/host_key

Examples:
  bowls serve                           # Demo track on :23235
  bowls serve game1.yaml game2.yaml     # Track menu for every connection
  bowls serve --ssh :2222

Users can connect with:
  ssh localhost -p 23235`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23235", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().Uint64Var(&flagServeSeed, "demo-seed", 1, "Seed of the demo track when no track is given")
}

func runServe(_ *cobra.Command, args []string) error {
	tracks, err := loadTracks(args, flagServeSeed)
	if err != nil {
		return err
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Session: tui.SessionConfig{
			Tracks:    tracks,
			Selection: appSelection,
			Viewer: tui.ViewerOptions{
				Runtime: core.RuntimeConfig{TickRate: appConfig.Viewer.TickRate},
			},
		},
	}

	server, err := tui.NewSSHServer(cfg, logger.WithPrefix("bowls-ssh"))
	if err != nil {
		return err
	}

	fmt.Printf("Serving %d track(s) with %s on %s\n", len(tracks), appSelection.Variant.Title(), cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
