//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/AI-Authority/AI-Authority-sub000/cmd/bootstrap"
	"github.com/AI-Authority/AI-Authority-sub000/cmd/bootstrap/components"
	"github.com/AI-Authority/AI-Authority-sub000/db"
	infradb "github.com/AI-Authority/AI-Authority-sub000/internal/infra/db"
	"github.com/AI-Authority/AI-Authority-sub000/internal/pkg/config"
	"github.com/AI-Authority/AI-Authority-sub000/internal/usecase/commands"

	"github.com/docker/go-connections/nat"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
)

var (
	postgresContainerOnce sync.Once
	postgresTestContainer testcontainers.Container

	testUser     = "test"
	testPassword = "testpass"
)

// fakeGateway stands in for the payment provider. It records the params of
// the last created session so tests can replay them as webhook events.
type fakeGateway struct {
	mu         sync.Mutex
	LastParams *commands.CheckoutSessionParams
}

func (g *fakeGateway) CreateCheckoutSession(_ context.Context, params commands.CheckoutSessionParams) (*commands.CheckoutSession, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.LastParams = &params
	sessionID := "cs_e2e_" + uuid.NewString()
	return &commands.CheckoutSession{SessionID: sessionID, URL: "https://checkout.example.com/" + sessionID}, nil
}

// fakeVerifier accepts any payload and hands back the event the test queued.
type fakeVerifier struct {
	mu    sync.Mutex
	event *commands.CheckoutCompletedEvent
}

func (v *fakeVerifier) SetEvent(event *commands.CheckoutCompletedEvent) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.event = event
}

func (v *fakeVerifier) VerifyCheckoutCompleted(_ []byte, _ string) (*commands.CheckoutCompletedEvent, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.event, nil
}

// testEnv bundles everything a flow test touches.
type testEnv struct {
	Pool     *pgxpool.Pool
	Router   *gin.Engine
	Config   config.Config
	Gateway  *fakeGateway
	Verifier *fakeVerifier
}

func setupE2EEnvironment(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	postgresInfo := startPostgres(t)
	pool, dbConfig := prepareDatabase(t, postgresInfo)

	gateway := &fakeGateway{}
	verifier := &fakeVerifier{}
	router, cfg, app := buildApp(pool, dbConfig, gateway, verifier)
	require.NotNil(t, router, "router setup failed")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			slog.Warn("failed to stop fx application", "error", err.Error())
		}
	})

	return &testEnv{Pool: pool, Router: router, Config: cfg, Gateway: gateway, Verifier: verifier}
}

type containerInfo struct {
	Host string
	Port nat.Port
}

func startPostgres(t *testing.T) containerInfo {
	t.Helper()
	postgresContainerOnce.Do(func() {
		req := testcontainers.ContainerRequest{
			Image:        "postgres:17",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     testUser,
				"POSTGRES_PASSWORD": testPassword,
				"POSTGRES_DB":       "postgres",
			},
			Tmpfs: map[string]string{
				"/var/lib/postgresql/data": "rw,size=512m",
			},
			Cmd: []string{
				"postgres",
				"-c", "fsync=off",
				"-c", "synchronous_commit=off",
				"-c", "full_page_writes=off",
			},
			WaitingFor: wait.ForSQL("5432/tcp", "pgx", func(host string, port nat.Port) string {
				return fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
					testUser, testPassword, host, port.Port())
			}).WithStartupTimeout(60 * time.Second),
			Labels: map[string]string{"purpose": "e2e-tests"},
		}

		ctx, cancel := context.WithTimeout(context.Background(), 180*time.Second)
		defer cancel()

		container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: req,
			Started:          true,
		})
		require.NoError(t, err, "failed to start postgres container")
		postgresTestContainer = container

		t.Cleanup(func() {
			termCtx, termCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer termCancel()
			if err := postgresTestContainer.Terminate(termCtx); err != nil {
				slog.Warn("failed to terminate postgres container", "error", err.Error())
			}
		})
	})

	ctx := context.Background()
	mappedPort, err := postgresTestContainer.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err, "failed to resolve container port")
	host, err := postgresTestContainer.Host(ctx)
	require.NoError(t, err, "failed to resolve container host")

	return containerInfo{Host: host, Port: mappedPort}
}

// prepareDatabase creates a throwaway database per test process and applies
// the embedded schema.
func prepareDatabase(t *testing.T, info containerInfo) (*pgxpool.Pool, config.DBConfig) {
	t.Helper()

	dbName := "testdb_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	adminDSN := fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
		testUser, testPassword, info.Host, info.Port.Port())

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	adminPool, err := pgxpool.New(ctx, adminDSN)
	require.NoError(t, err, "admin connection failed")
	defer adminPool.Close()

	_, err = adminPool.Exec(ctx, "CREATE DATABASE "+dbName)
	require.NoError(t, err, "failed to create test database")

	t.Cleanup(func() {
		cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cleanupCancel()
		cleanupPool, err := pgxpool.New(cleanupCtx, adminDSN)
		if err != nil {
			return
		}
		defer cleanupPool.Close()
		_, _ = cleanupPool.Exec(cleanupCtx, "DROP DATABASE IF EXISTS "+dbName)
	})

	dbConfig := config.DBConfig{
		Host:     info.Host,
		Port:     info.Port.Port(),
		User:     testUser,
		Password: testPassword,
		DBName:   dbName,
		SSLMode:  "disable",
	}

	pool, _, err := infradb.Connect(dbConfig)
	require.NoError(t, err, "database connection failed")

	_, err = pool.Exec(ctx, db.Schema)
	require.NoError(t, err, "failed to apply schema")

	return pool, dbConfig
}

// buildApp wires the full application with the real repositories against the
// container database, swapping only the payment provider for fakes.
func buildApp(pool *pgxpool.Pool, dbConfig config.DBConfig, gateway *fakeGateway, verifier *fakeVerifier) (*gin.Engine, config.Config, *fx.App) {
	var router *gin.Engine
	var cfg config.Config

	testConfig := config.NewTestConfig()
	testConfig.DB = dbConfig

	fakePaymentModule := fx.Module("fakepayment",
		fx.Provide(
			func() commands.PaymentGateway { return gateway },
			func() commands.WebhookVerifier { return verifier },
		),
	)

	app := fx.New(
		fx.Provide(func() config.Config { return testConfig }),
		fx.Provide(func(c config.Config) config.CheckoutConfig { return c.Checkout }),
		fx.Provide(func(c config.Config) config.CookieConfig { return c.Cookie }),
		fx.Provide(func() *pgxpool.Pool { return pool }),
		fx.Provide(func() *gin.Engine { return gin.New() }),
		bootstrap.JWTModule,
		components.RepositoryModule,
		fakePaymentModule,
		components.UseCaseModule,
		components.HandlerModule,
		fx.Populate(&router, &cfg),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		panic(fmt.Sprintf("failed to start fx app: %v", err))
	}

	return router, cfg, app
}
