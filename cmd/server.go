package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ziadkadry99/accessblock/internal/db"
	"github.com/ziadkadry99/accessblock/internal/history"
	"github.com/ziadkadry99/accessblock/internal/overlay"
	"github.com/ziadkadry99/accessblock/internal/prefs"
	"github.com/ziadkadry99/accessblock/internal/server"
)

const shutdownTimeout = 15 * time.Second

var serverPort int

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the accessibility overlay server",
	Long: `Starts the HTTP server that host pages call for the user stylesheet,
preference changes, change history and the bionic reading websocket.`,
	RunE: runServer,
}

func init() {
	serverCmd.Flags().IntVar(&serverPort, "port", 0, "port to listen on (overrides config)")
	rootCmd.AddCommand(serverCmd)
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serverPort > 0 {
		cfg.Server.Port = serverPort
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	repo, err := openRepository(ctx, cfg, database, logger)
	if err != nil {
		return err
	}
	catalogue, err := newCatalogue(cfg)
	if err != nil {
		return err
	}

	historyStore := history.NewStore(database)
	pruneHistory(ctx, historyStore, cfg.Database.HistoryRetention, logger)

	srv := server.New(server.Config{
		Port:       cfg.Server.Port,
		AllowAll:   cfg.Server.AllowAllOrigins,
		UserHeader: cfg.Server.UserHeader,
	}, logger)

	controller := prefs.NewController(repo, catalogue, logger.WithField("feature", "prefs"),
		prefs.WithInstances(prefs.NewInstanceStore(database)),
		prefs.WithRecorder(historyStore),
	)
	ov := overlay.New(newTransformer(cfg, logger), newLabels(cfg), cfg.Bionic.Timeout, logger.WithField("feature", "overlay"))

	registerAllRoutes(srv, controller, historyStore, ov, prefs.RouteOptions{
		MaxAge:     cfg.Server.StyleMaxAge,
		UserHeader: cfg.Server.UserHeader,
		Editors:    cfg.Server.EditorUsers,
	})

	logger.WithFields(logrus.Fields{
		"version":  Version,
		"driver":   cfg.Database.Driver,
		"database": database.Path(),
	}).Info("starting accessblock server")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// registerAllRoutes wires the feature packages onto the server router.
func registerAllRoutes(srv *server.Server, controller *prefs.Controller, historyStore *history.Store, ov *overlay.Overlay, opts prefs.RouteOptions) {
	r := srv.Router()

	// Preferences and stylesheet
	prefs.RegisterRoutes(r, controller, opts)

	// Change history
	history.RegisterRoutes(r, historyStore)

	// Bionic reading overlay
	ov.RegisterRoutes(r)
}

// pruneHistory drops change history older than retention. Failures are
// logged; they never stop the server.
func pruneHistory(ctx context.Context, store *history.Store, retention time.Duration, logger *logrus.Entry) {
	if retention <= 0 {
		return
	}
	n, err := store.DeleteBefore(ctx, time.Now().Add(-retention))
	if err != nil {
		logger.WithError(err).Warn("pruning change history")
		return
	}
	if n > 0 {
		logger.WithFields(logrus.Fields{"removed": n, "retention": retention.String()}).Info("pruned change history")
	}
}
