package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"biogram-server/internal/blobstore"
	"biogram-server/internal/config"
	"biogram-server/internal/ingest"
	"biogram-server/internal/logger"
	"biogram-server/internal/middleware"
	"biogram-server/internal/models"
	"biogram-server/internal/routes"
	"biogram-server/internal/sharing"
	"biogram-server/internal/store"
	"biogram-server/internal/store/demostore"
	"biogram-server/internal/store/gormstore"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// A missing .env is fine; the environment may already be set.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Error loading .env file: %v", err)
	}

	rootCmd := &cobra.Command{
		Use:          "biogram",
		Short:        "Personal health record server",
		SilenceUsage: true,
	}
	rootCmd.AddCommand(serveCmd(), migrateCmd(), promoteAdminCmd(), consumeInsightsCmd(), bridgeWearablesCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// app is the configuration and logger every command starts from.
type app struct {
	cfg *config.Config
	log *zap.Logger
}

func newApp(service string) (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	zlog, err := logger.New(cfg.Log.Level, cfg.Log.Format, service)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return &app{cfg: cfg, log: zlog}, nil
}

func (a *app) openDB() (*gorm.DB, error) {
	db, err := models.InitDB(models.DatabaseConfig{
		Driver: a.cfg.Database.Driver,
		DSN:    a.cfg.Database.DSN,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return db, nil
}

// repositories selects the data source named by DATA_SOURCE.
func (a *app) repositories() (*store.Repositories, error) {
	if a.cfg.IsDemo() {
		a.log.Info("serving seeded demo data", zap.String("patient_id", a.cfg.Share.DemoPatientID))
		return demostore.New(a.cfg.Share.DemoPatientID, time.Now), nil
	}
	db, err := a.openDB()
	if err != nil {
		return nil, err
	}
	return gormstore.New(db), nil
}

// grantStore keeps share codes in Redis when REDIS_ADDR is set.
func (a *app) grantStore(ctx context.Context) (sharing.Store, error) {
	if a.cfg.Redis.Addr == "" {
		a.log.Warn("REDIS_ADDR not set, share codes are kept in memory")
		return sharing.NewMemoryStore(), nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     a.cfg.Redis.Addr,
		Password: a.cfg.Redis.Password,
		DB:       a.cfg.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return sharing.NewRedisStore(client), nil
}

// blobStore keeps documents in S3 when S3_BUCKET is set.
func (a *app) blobStore(ctx context.Context) (blobstore.Store, error) {
	if a.cfg.S3.Bucket == "" {
		a.log.Warn("S3_BUCKET not set, documents are kept in memory")
		return blobstore.NewMemory(), nil
	}
	return blobstore.NewS3(ctx, a.cfg.S3.Bucket, a.cfg.S3.Prefix)
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp("biogram-server")
			if err != nil {
				return err
			}
			defer a.log.Sync()
			return a.serve()
		},
	}
}

func (a *app) serve() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, err := a.repositories()
	if err != nil {
		return err
	}
	grants, err := a.grantStore(ctx)
	if err != nil {
		return err
	}
	blobs, err := a.blobStore(ctx)
	if err != nil {
		return err
	}

	if !a.cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := routes.NewRouter(routes.Dependencies{
		Repos: repos,
		Cfg:   a.cfg,
		Log:   a.log,
		Gate: sharing.NewGate(grants, sharing.Options{
			CodeTTL:       a.cfg.Share.CodeTTL,
			SingleUse:     a.cfg.Share.SingleUse,
			DemoCode:      a.cfg.Share.DemoCode,
			DemoPatientID: a.cfg.Share.DemoPatientID,
		}),
		Blobs:   blobs,
		Limiter: middleware.NewIPRateLimiter(ctx, rate.Limit(a.cfg.RateLimit.RPS), a.cfg.RateLimit.Burst),
	})

	srv := &http.Server{
		Addr:              ":" + a.cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("server running",
			zap.String("port", a.cfg.Port),
			zap.String("env", a.cfg.Environment),
			zap.String("data_source", string(repos.Capabilities.Source)),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	a.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	a.log.Info("server stopped")
	return nil
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp("biogram-migrate")
			if err != nil {
				return err
			}
			defer a.log.Sync()

			db, err := a.openDB()
			if err != nil {
				return err
			}
			if err := models.AutoMigrate(db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			a.log.Info("database migrated", zap.String("driver", a.cfg.Database.Driver))
			return nil
		},
	}
}

// promoteAdminCmd grants the admin role to an existing account. There are
// no built-in superuser credentials.
func promoteAdminCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "promote-admin <username>",
		Short: "Grant the admin role to an existing user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp("biogram-migrate")
			if err != nil {
				return err
			}
			defer a.log.Sync()

			db, err := a.openDB()
			if err != nil {
				return err
			}
			res := db.WithContext(cmd.Context()).Model(&models.User{}).
				Where("username = ?", args[0]).
				Update("role", models.RoleAdmin)
			if res.Error != nil {
				return fmt.Errorf("promote %s: %w", args[0], res.Error)
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("no user named %q", args[0])
			}
			a.log.Info("user promoted to admin", zap.String("username", args[0]))
			return nil
		},
	}
}

func consumeInsightsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "consume-insights",
		Short: "Store AI insights published on Kafka",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp("biogram-insights")
			if err != nil {
				return err
			}
			defer a.log.Sync()
			if len(a.cfg.Kafka.Brokers) == 0 {
				return errors.New("KAFKA_BROKERS is required")
			}

			db, err := a.openDB()
			if err != nil {
				return err
			}
			repos := gormstore.New(db)

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			reader := ingest.NewKafkaReader(a.cfg.Kafka)
			defer reader.Close()
			a.log.Info("consuming insights",
				zap.Strings("brokers", a.cfg.Kafka.Brokers),
				zap.String("topic", a.cfg.Kafka.InsightsTopic),
			)
			return ingest.NewInsightConsumer(reader, repos.Insights, repos.Records, a.log).Run(ctx)
		},
	}
}

func bridgeWearablesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bridge-wearables",
		Short: "Store wearable syncs published over MQTT",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp("biogram-wearables")
			if err != nil {
				return err
			}
			defer a.log.Sync()
			if a.cfg.MQTT.Broker == "" {
				return errors.New("MQTT_BROKER is required")
			}

			db, err := a.openDB()
			if err != nil {
				return err
			}
			repos := gormstore.New(db)

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			client, err := ingest.NewMQTTClient(a.cfg.MQTT, a.log)
			if err != nil {
				return err
			}
			return ingest.NewWearableBridge(repos.Wearables, a.log).Run(ctx, client, a.cfg.MQTT.Topic)
		},
	}
}
