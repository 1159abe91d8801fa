package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pathfinder/internal/config"
	"github.com/vovakirdan/tui-pathfinder/internal/maze"
	"github.com/vovakirdan/tui-pathfinder/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the pathfinder SSH server",
	Long: `Start an SSH server that lets users connect and run searches.

Each SSH connection gets its own session with a maze picker and its
own search. Runs are stored per-server (all users share one history).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.pathfinder/host_key

Examples:
  pathfinder serve                           # Listen on :23235 with auto-generated key
  pathfinder serve --ssh :2222               # Listen on port 2222
  pathfinder serve --host-key ./my_host_key  # Use specific host key
  pathfinder serve --db ./runs.db            # Use specific database

Users can connect with:
  ssh localhost -p 23235`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23235", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	logger := newLogger(cfg, os.Stderr).WithPrefix("pathfinder-ssh")

	mazes, err := maze.All(config.ExpandHome(flagMazeDir))
	if err != nil {
		fail("loading mazes: %v", err)
	}

	srvCfg := tui.DefaultSSHServerConfig()
	srvCfg.Address = flagSSHAddr
	srvCfg.HostKeyPath = config.ExpandHome(flagHostKey)
	srvCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	srvCfg.Mazes = mazes
	srvCfg.Search = cfg.Search
	srvCfg.Playback = cfg.Playback
	srvCfg.Logger = logger
	srvCfg.DBPath = cfg.Storage.DBPath
	if cfg.Storage.Disabled {
		srvCfg.DBPath = ""
	}

	server, err := tui.NewSSHServer(srvCfg)
	if err != nil {
		fail("creating server: %v", err)
	}

	fmt.Printf("Starting pathfinder SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fail("server: %v", err)
	}
}
