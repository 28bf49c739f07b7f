// ABOUTME: Console command launching the interactive terminal UI
// ABOUTME: Logs go to a file so they do not corrupt the screen

package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/markalston/moto-admin/internal/logger"
	"github.com/markalston/moto-admin/internal/tui"
	"github.com/markalston/moto-admin/internal/tui/pages"
	"github.com/spf13/cobra"
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Open the interactive console",
	Long: `Open the full-screen console.

Navigation:
  Tab / Shift+Tab  Next / previous screen
  1-9, 0           Jump to a screen
  Enter            Open the selected row
  Esc              Back
  L                Sign out
  q                Quit

Logs are written to MOTO_ADMIN_LOG_FILE while the console runs.`,
	Args: cobra.NoArgs,
	Run: run(func(ctx context.Context, w io.Writer, e *env, _ []string) int {
		return runConsole(w, e)
	}),
}

func init() {
	rootCmd.AddCommand(consoleCmd)
}

func runConsole(w io.Writer, e *env) int {
	closer, err := logger.InitFile(e.cfg.LogFile)
	if err != nil {
		fmt.Fprintf(w, "%s logging disabled: %v\n", warnLabel("Warning:"), err)
		logger.Init(io.Discard)
	} else {
		defer closer.Close()
	}
	slog.Info("Console starting", "api_url", e.cfg.APIURL)

	err = tui.Run(e.client, pages.Options{
		PageSize:     e.cfg.PageSize,
		CompactWidth: e.cfg.CompactWidth,
		WideWidth:    e.cfg.WideWidth,
	})
	if err != nil {
		return fail(w, err)
	}
	return exitOK
}
