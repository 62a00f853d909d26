package commands

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/gorilla/securecookie"
	"github.com/leapstack-labs/dreamql/internal/ui"
	"github.com/spf13/cobra"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	Port      int
	NoBrowser bool
	Watch     string
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"ui"},
		Short:   "Start the DreamQL web playground",
		Long: `Start a local web server hosting the DreamQL playground.

The page shows an editor for DreamQL source next to a live output pane.
Every edit is translated immediately; the output mode (SQL, tokens, AST,
grammar) can be switched from the mode bar.

With --watch, the given file seeds the editor and every save on disk
replaces the editor content.`,
		Example: `  # Start the playground on the default port
  dreamql serve

  # Start on a custom port without opening a browser
  dreamql serve --port 3000 --no-browser

  # Follow a file edited in another editor
  dreamql serve --watch query.dql`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Port, "port", 0, "Port to serve on (default: 8765)")
	cmd.Flags().BoolVar(&opts.NoBrowser, "no-browser", false, "Don't auto-open browser")
	cmd.Flags().StringVar(&opts.Watch, "watch", "", "Mirror this file into the editor")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	// Get UI config with defaults
	uiCfg := cc.Cfg.GetUIConfig()

	// CLI flags override config file
	port := uiCfg.Port
	if opts.Port != 0 {
		port = opts.Port
	}

	autoOpen := uiCfg.AutoOpen
	if opts.NoBrowser {
		autoOpen = false
	}

	watch := uiCfg.Watch
	if cmd.Flags().Changed("watch") {
		watch = opts.Watch
	}

	secret := uiCfg.SessionSecret
	if secret == "" {
		secret = generateSessionSecret()
		cc.Logger.Debug("generated ephemeral session secret")
	}

	server := ui.NewServer(ui.Config{
		Backend:       cc.Backend,
		SessionOpts:   cc.SessionOpts,
		Port:          port,
		WatchFile:     watch,
		SessionSecret: secret,
		Logger:        cc.Logger,
	})

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve(ctx)
	}()

	select {
	case <-server.Ready():
	case err := <-errCh:
		return err
	}

	url := server.URL()
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "DreamQL playground running on %s\n", url)
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Press Ctrl+C to stop")
	if autoOpen {
		go openBrowser(ctx, url)
	}

	return <-errCh
}

// generateSessionSecret returns a random secret. Cookies signed with it
// do not survive a restart; set ui.session_secret to keep them.
func generateSessionSecret() string {
	return hex.EncodeToString(securecookie.GenerateRandomKey(32))
}

// openBrowser opens the default browser to the specified URL.
func openBrowser(ctx context.Context, url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(ctx, "open", url)
	case "linux":
		cmd = exec.CommandContext(ctx, "xdg-open", url)
	case "windows":
		cmd = exec.CommandContext(ctx, "rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return
	}

	_ = cmd.Start()
}
