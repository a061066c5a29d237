package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"google.golang.org/grpc/reflection"

	grpcctx "github.com/dtroode/expense-auth/internal/api/grpc/context"
	grpcrouter "github.com/dtroode/expense-auth/internal/api/grpc/router"
	grpcserver "github.com/dtroode/expense-auth/internal/api/grpc/server"
	httpctx "github.com/dtroode/expense-auth/internal/api/http/context"
	"github.com/dtroode/expense-auth/internal/api/http/handler"
	httprouter "github.com/dtroode/expense-auth/internal/api/http/router"
	httpserver "github.com/dtroode/expense-auth/internal/api/http/server"
	"github.com/dtroode/expense-auth/internal/config"
	"github.com/dtroode/expense-auth/internal/hasher"
	"github.com/dtroode/expense-auth/internal/logger"
	"github.com/dtroode/expense-auth/internal/model"
	"github.com/dtroode/expense-auth/internal/notify"
	"github.com/dtroode/expense-auth/internal/repository/memory"
	"github.com/dtroode/expense-auth/internal/repository/postgres"
	"github.com/dtroode/expense-auth/internal/server"
	"github.com/dtroode/expense-auth/internal/service"
	"github.com/dtroode/expense-auth/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

type storage struct {
	stores model.Stores
	tx     model.Transactor
	pinger handler.Pinger
	close  func() error
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	st, err := openStorage(ctx, cfg.Database, logger)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer st.close()

	passwordHasher := hasher.New(hasher.Params{
		Time:          cfg.Argon2.Time,
		MemoryKiB:     cfg.Argon2.MemKiB,
		Threads:       cfg.Argon2.Par,
		SaltLength:    cfg.Argon2.SaltLen,
		KeyLength:     cfg.Argon2.KeyLen,
		MaxConcurrent: cfg.Argon2.MaxConcurrent,
	})
	tokenService := service.NewTokenService(token.NewJWT(cfg.JWT.Secret), cfg.JWT.TTL, logger)

	credentialService := service.NewCredential(st.stores.Users, passwordHasher, tokenService, model.SystemClock, logger)
	recoveryService := service.NewRecovery(
		st.stores,
		st.tx,
		passwordHasher,
		newNotifier(cfg, logger),
		model.SystemClock,
		cfg.Recovery.CodeTTL,
		logger,
		service.WithMinRequestTime(cfg.Recovery.MinRequestTime),
	)

	grpcRouter := grpcrouter.New(credentialService, recoveryService, tokenService, grpcctx.NewManager(), logger)
	grpcSrv := grpcRouter.Register()
	reflection.Register(grpcSrv)

	servers := []model.Server{grpcserver.NewGRPCServer(grpcSrv, fmt.Sprintf(":%s", cfg.GRPC.Port))}
	if cfg.HTTP.Enable {
		httpRouter := httprouter.New(credentialService, recoveryService, tokenService, httpctx.NewManager(), st.pinger, logger)
		servers = append(servers, httpserver.NewHTTPServer(httpRouter.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port)))
	}

	sl := server.NewSecurityLayer(cfg.GRPC.EnableHTTPS, cfg.GRPC.CertFileName, cfg.GRPC.PrivateKeyFileName)

	var wg sync.WaitGroup
	for _, s := range servers {
		wg.Add(1)
		go func(s model.Server) {
			defer wg.Done()
			logger.Info("Starting server on", "address", s.Address())
			if err := s.Start(sl); err != nil {
				logger.Error("failed to start server", "error", err, "address", s.Address())
				stop()
			}
		}(s)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		recoveryService.RunSweeper(ctx, cfg.Recovery.SweepInterval)
	}()

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	for _, s := range servers {
		if err := s.Stop(shutdownCtx); err != nil {
			logger.Error("error during server shutdown", "error", err, "address", s.Address())
		}
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func openStorage(ctx context.Context, cfg config.Database, logger *logger.Logger) (storage, error) {
	if cfg.InMemory {
		logger.Warn("using in-memory storage, data is lost on restart")
		store := memory.NewStore()
		return storage{
			stores: store.Stores(),
			tx:     store,
			close:  func() error { return nil },
		}, nil
	}

	db, err := postgres.NewConnection(ctx, cfg.DSN)
	if err != nil {
		return storage{}, err
	}
	tx := postgres.NewTransactor(db)
	return storage{
		stores: tx.Stores(),
		tx:     tx,
		pinger: db,
		close:  db.Close,
	}, nil
}

func newNotifier(cfg *config.Config, logger *logger.Logger) model.Notifier {
	if cfg.SMTP.Host == "" {
		logger.Warn("SMTP host is not set, recovery codes will not be delivered")
		if cfg.Mail.DevLogCodes {
			logger.Warn("recovery codes will be written to the debug log")
		}
		return notify.NewLog(logger, cfg.Mail.DevLogCodes)
	}
	dialer := notify.NewSMTPDialer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password)
	branding := notify.Branding{AppName: cfg.Mail.AppName, Year: cfg.Mail.Year}
	return notify.NewSMTP(dialer, cfg.SMTP.From, branding, model.SystemClock)
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
