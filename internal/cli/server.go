package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"globetrotter-service/internal/app"
	"globetrotter-service/internal/challenge"
	"globetrotter-service/internal/config"
	"globetrotter-service/internal/infra/memory"
	infrapg "globetrotter-service/internal/infra/postgres"
	infraredis "globetrotter-service/internal/infra/redis"
	"globetrotter-service/internal/score"
	transport "globetrotter-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the game server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *goredis.Client
	if cfg.Redis.Addr != "" {
		redisClient = goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
	}

	cityCount := cfg.CityCount(app.DefaultCityCount)

	var loader memory.CityLoader = memory.NewStaticCityLoader(app.SampleCities(cityCount))
	if pool != nil {
		loader = infrapg.NewCityLoader(pool)
	}

	cacheTTL := config.Duration(cfg.Cities.CacheTTL, 10*time.Minute)
	var cities app.CityRepository
	if redisClient != nil {
		cities = infraredis.NewCityRepository(redisClient, loader, cacheTTL)
	} else {
		cities = memory.NewCityRepository(loader, cacheTTL)
	}
	cities = app.NewFallbackCityRepository(cities)

	var invites app.InvitationDirectory = memory.NewInvitationDirectory()
	if pool != nil {
		invites = infrapg.NewInvitationDirectory(pool)
	}

	scoreKey := cfg.Score.Key
	if scoreKey == "" {
		scoreKey = infraredis.DefaultScoreKey
	}
	var store score.Store = memory.NewScoreStore()
	var flags challenge.FlagStore = memory.NewFlagStore()
	if redisClient != nil {
		store = infraredis.NewScoreStore(redisClient, scoreKey)
		flags = infraredis.NewFlagStore(redisClient)
	}

	service := app.NewGameService(cities, invites, cfg.Invite.BaseURL, app.WithCityCount(cityCount))
	wsHandler := transport.NewWSHandler(service, store, flags,
		config.Duration(cfg.Score.PollInterval, score.DefaultPollInterval),
		config.Duration(cfg.Challenge.CelebrationTTL, challenge.DefaultCelebrationTTL))

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", wsHandler.ServeWS)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting globetrotter service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
