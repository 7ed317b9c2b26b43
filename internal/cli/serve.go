package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/example/commandcenter/internal/httpapi"
)

// shutdownTimeout bounds how long in-flight requests may take after a signal.
const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the command center API",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := services()
		if err != nil {
			return err
		}

		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = s.Config.Server.Addr
		}
		if s.Config.Log.Level != "debug" {
			gin.SetMode(gin.ReleaseMode)
		}

		router := httpapi.NewRouter(httpapi.Deps{
			Log:             s.Logger.Named("http"),
			Kanban:          s.Kanban,
			Activity:        s.Activity,
			Directives:      s.Directives,
			FeatureRequests: s.FeatureRequests,
			RecoveredTasks:  s.RecoveredTasks,
			Ops:             s.Ops,
			LessonCraft:     s.LessonCraft,
			Voice:           s.Voice,
			Workspace:       s.Workspace,
		})
		srv := &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}
		srv.RegisterOnShutdown(s.DisconnectSubscribers)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			s.Logger.Info("command center listening", zap.String("addr", addr))
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server failed: %w", err)
		case <-ctx.Done():
		}

		s.Logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
}

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	return serveCmd
}
