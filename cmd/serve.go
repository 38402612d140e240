package cmd

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xkilldash9x/uiprobe/internal/observability"
	"github.com/xkilldash9x/uiprobe/internal/protocol"
	"github.com/xkilldash9x/uiprobe/internal/toolkit/tktest"
)

var listenAddr string

// serveCmd runs the player over a built-in sandbox application. Deployments
// embedding the player in a real host wire their own toolkit.App into
// protocol.NewServer instead; the sandbox gives driver authors something to
// talk to without a host.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the command socket over a sandbox application.",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := observability.GetLogger()
		if listenAddr != "" {
			cfg.Server.ListenAddr = listenAddr
		}

		app := sandboxApp()
		go pumpDeferred(cmd.Context(), app)

		srv := protocol.NewServer(app, cfg.Server, cfg.Player, log)
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		err := srv.ListenAndServe(ctx)
		if err != nil {
			log.Error("Server stopped with error.", zap.Error(err))
		}
		return err
	},
}

func init() {
	serveCmd.Flags().StringVarP(&listenAddr, "listen", "l", "",
		"listen address (overrides server.listen_addr)")
	rootCmd.AddCommand(serveCmd)
}

// sandboxApp builds the fake application the sandbox server exposes: a main
// window with a few named widgets and a small table.
func sandboxApp() *tktest.App {
	app := tktest.NewApp()

	win := tktest.NewWidget("MainWindow", "MainWindow", "Widget", "Object")
	win.SetSize(800, 600)

	button := tktest.NewWidget("okButton", "Button", "Widget", "Object")
	button.DeclareProperty("text", "OK")
	button.SetPos(10, 550)
	win.AddChild(button)

	edit := tktest.NewWidget("nameEdit", "LineEdit", "Widget", "Object")
	edit.DeclareProperty("text", "")
	edit.SetPos(10, 10)
	win.AddChild(edit)

	model := tktest.NewModel("resultsModel", 2)
	model.SetHeaders([]string{"Name", "Value"}, nil)
	model.AddRow(nil, "alpha", "1")
	model.AddRow(nil, "beta", "2")
	table := tktest.NewTableView("resultsTable", model)
	table.SetPos(10, 50)
	win.AddChild(table)

	app.AddTopLevel(win)
	app.SetActiveWindow(win)
	return app
}

// pumpDeferred stands in for the host loop: it periodically runs callbacks
// scheduled through Defer so deferred actions and delayed responses make
// progress.
func pumpDeferred(ctx context.Context, app *tktest.App) {
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			app.RunDeferred()
		}
	}
}
