package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/trap-streets/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Host Trap Streets over SSH",
	Long: `Host Trap Streets for remote players over SSH.

Every connection gets a private menu and driver. Finished sessions from all
connections go to the same database, so the scoreboard is shared. The SSH
user name is recorded as the player.

Without --host-key a key is generated once at ~/.arcade/host_key.
The --difficulty and --config flags apply to every connection.

Examples:
  arcade serve
  arcade serve --ssh :2222 --difficulty hard
  arcade serve --host-key ./host_key --db ./shared.db

Players join with:
  ssh -p 23234 <host>`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	def := tui.DefaultSSHServerConfig()
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", def.Address, "listen address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "host key file, generated when missing")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", def.IdleTimeout, "disconnect idle players after this long")
}

func runServe(_ *cobra.Command, _ []string) {
	if err := serve(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func serve() error {
	game, preset, err := loadGameConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: flagIdleTimeout,
		Game:        game,
		Difficulty:  string(preset),
		FPS:         flagFPS,
		Logger:      logger.WithPrefix("trapstreets-ssh"),
	})
	if err != nil {
		return err
	}

	fmt.Printf("Trap Streets is up on %s (ssh -p %s localhost), Ctrl+C stops it\n", server.Addr(), port(server.Addr()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return server.Serve(ctx)
}

// port returns the port part of a host:port address.
func port(addr string) string {
	if _, p, err := net.SplitHostPort(addr); err == nil {
		return p
	}
	return addr
}
