package apiserver

import (
	"context"
	"net"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"

	"github.com/commstack/org-access/internal/config"
	handlers "github.com/commstack/org-access/internal/handlers/v1"
	"github.com/commstack/org-access/internal/service"
	"github.com/commstack/org-access/internal/store"
	"github.com/commstack/org-access/pkg/metrics"
	"github.com/commstack/org-access/pkg/middleware"
)

const gracefulShutdownTimeout = 5 * time.Second

type Server struct {
	cfg      *config.Config
	store    store.Store
	listener net.Listener
}

// New returns a new instance of the org access server.
func New(
	cfg *config.Config,
	store store.Store,
	listener net.Listener,
) *Server {
	return &Server{
		cfg:      cfg,
		store:    store,
		listener: listener,
	}
}

func (s *Server) Run(ctx context.Context) error {
	zap.S().Named("api_server").Info("Initializing API server")

	metricMiddleware := metrics.NewMiddleware("api_server")
	metricMiddleware.MustRegisterDefault()

	grpcServer := grpc.NewServer(
		grpc.ForceServerCodec(jsonCodec{}),
		grpc.ChainUnaryInterceptor(
			middleware.RequestID(),
			middleware.Logger(),
			metricMiddleware.Unary(),
		),
		grpc.ChainStreamInterceptor(
			middleware.StreamRequestID(),
			middleware.StreamLogger(),
			metricMiddleware.Stream(),
		),
	)

	handler := handlers.NewOrgHandler(service.NewOrgService(s.store))
	grpcServer.RegisterService(&orgServiceDesc, handler)

	go func() {
		<-ctx.Done()

		stopped := make(chan struct{})
		go func() {
			grpcServer.GracefulStop()
			close(stopped)
		}()

		select {
		case <-stopped:
		case <-time.After(gracefulShutdownTimeout):
			grpcServer.Stop()
		}
		zap.S().Named("api_server").Info("api server terminated")
	}()

	zap.S().Named("api_server").Infof("serving: %s", s.listener.Addr())
	return grpcServer.Serve(s.listener)
}
