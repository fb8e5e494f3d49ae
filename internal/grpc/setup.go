package grpc

import (
	"strings"
	"sync"

	"github.com/Belphemur/AkwamProvider/internal/config"
	"github.com/Belphemur/AkwamProvider/internal/provider"
	grpcprom "github.com/grpc-ecosystem/go-grpc-middleware/providers/prometheus"
	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

var (
	grpcServerMetrics         *grpcprom.ServerMetrics
	registerServerMetricsOnce sync.Once
)

// Endpoint is a gRPC server exposing a single provider together with the
// health state reported for it.
type Endpoint struct {
	*grpc.Server
	health       *health.Server
	providerName string
}

// HealthName returns the health-check service name of a provider, e.g.
// "akwam.v1.ProviderService/akwam".
func HealthName(info provider.Metadata) string {
	return ServiceName + "/" + strings.ToLower(info.Name)
}

// NewGRPCServer creates a gRPC endpoint for p with Prometheus metrics, health
// checking and reflection. Health reports SERVING for the server, the
// provider service and the provider's own name.
func NewGRPCServer(p provider.Provider) *Endpoint {
	registerServerMetricsOnce.Do(func() {
		grpcServerMetrics = grpcprom.NewServerMetrics(
			grpcprom.WithServerHandlingTimeHistogram(),
		)
		prometheus.MustRegister(grpcServerMetrics)
	})

	srvMetrics := grpcServerMetrics

	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(srvMetrics.UnaryServerInterceptor()),
		grpc.ChainStreamInterceptor(srvMetrics.StreamServerInterceptor()),
	)

	RegisterProviderServiceServer(grpcServer, NewServer(p))

	info := p.Info()
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	for _, name := range []string{"", ServiceName, HealthName(info)} {
		healthServer.SetServingStatus(name, grpc_health_v1.HealthCheckResponse_SERVING)
	}

	// grpcurl and friends list the provider service through reflection
	reflection.Register(grpcServer)

	srvMetrics.InitializeMetrics(grpcServer)

	return &Endpoint{Server: grpcServer, health: healthServer, providerName: info.Name}
}

// Drain flips every health status to NOT_SERVING so balancers stop routing
// new calls, then waits for in-flight calls such as LoadLinks streams.
func (e *Endpoint) Drain() {
	logger := config.GetLogger()
	logger.Info().Str("provider", e.providerName).Msg("Draining gRPC endpoint")
	e.health.Shutdown()
	e.GracefulStop()
}
