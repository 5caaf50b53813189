package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	gomongo "go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"

	"github.com/ryzetech/lifestyle-api/internal/api"
	"github.com/ryzetech/lifestyle-api/internal/core/domain"
	"github.com/ryzetech/lifestyle-api/internal/core/ports"
	"github.com/ryzetech/lifestyle-api/internal/core/service"
	"github.com/ryzetech/lifestyle-api/internal/core/session"
	"github.com/ryzetech/lifestyle-api/internal/infrastructure/config"
	"github.com/ryzetech/lifestyle-api/internal/infrastructure/db/mongo"
	"github.com/ryzetech/lifestyle-api/internal/infrastructure/db/redis"
	"github.com/ryzetech/lifestyle-api/internal/infrastructure/memory"
	"github.com/ryzetech/lifestyle-api/internal/infrastructure/queue"
	"github.com/ryzetech/lifestyle-api/internal/infrastructure/textgen"
	"github.com/ryzetech/lifestyle-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Development(),
		Service: "ryze-api",
	})

	// --- Optional infrastructure ---
	var (
		cache   ports.OverviewCache
		auditor ports.PurchaseAuditor
		rdb     *goredis.Client
		db      *gomongo.Database
	)
	if cfg.Redis.Addr != "" {
		rdb, err = redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer rdb.Close()
		cache = redis.NewOverviewCache(rdb, cfg.Redis.OverviewTTL)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("overview cache enabled")
	}
	if cfg.Mongo.URI != "" {
		var client *gomongo.Client
		client, db, err = mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		defer func() {
			dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = client.Disconnect(dctx)
		}()
		auditor = mongo.NewAuditRepository(db)
		log.Info().Str("database", cfg.Mongo.Database).Msg("purchase audit enabled")
	}

	generator, err := textgen.New(ctx, textgen.Config{
		APIKey:        cfg.GenAI.APIKey,
		Model:         cfg.GenAI.Model,
		Timeout:       cfg.GenAI.Timeout,
		RatePerSecond: cfg.GenAI.RatePerSecond,
		Burst:         cfg.GenAI.Burst,
	}, log)
	if err != nil {
		return err
	}

	auth, err := service.NewAuthService(cfg.Demo.Phone, cfg.Demo.Password, cfg.Session.Secret, cfg.Session.TokenTTL)
	if err != nil {
		return err
	}

	// --- Core wiring ---
	store := memory.NewSessionStore()
	generation := service.NewGenerationService(store, generator, cache, log)
	dispatcher := queue.NewDispatcher(cfg.GenerationWorkers, generation, log)
	sessions := service.NewSessionService(store, auth, dispatcher, cache, auditor, sessionOptions(cfg), log)

	sweeper, err := memory.NewSweeper(store, cfg.Session.SweepSchedule, cfg.Session.IdleTTL, log)
	if err != nil {
		return err
	}

	e := api.NewRouter(api.Deps{
		Sessions: sessions,
		Tokens:   auth,
		Mongo:    db,
		Redis:    rdb,
		Log:      log,
	})

	g, gctx := errgroup.WithContext(ctx)
	dispatcher.Start(gctx)
	sweeper.Start()

	g.Go(func() error {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Bool("genai", generator.Enabled()).Msg("http server listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(sctx)
	})

	err = g.Wait()
	sweeper.Stop()
	dispatcher.Wait()
	log.Info().Int("sessions", store.Len()).Msg("stopped")
	return err
}

func sessionOptions(cfg *config.Config) service.SessionServiceOptions {
	return service.SessionServiceOptions{
		Session: session.Config{
			Name:        cfg.Account.Name,
			PhoneNumber: cfg.Account.PhoneNumber,
			Balances: domain.Balances{
				Coins:  cfg.Account.Coins,
				Cash:   cfg.Account.Cash,
				DataGB: cfg.Account.DataGB,
			},
			NotificationTTL:     cfg.Notification.TTL,
			KeepOpenOnFailure:   cfg.Gate.KeepOpenOnFailure,
			InstantUploadReward: cfg.Account.UploadReward,
		},
		Mixer: mixerRates(cfg.Mixer),
	}
}
