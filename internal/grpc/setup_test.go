package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection/grpc_reflection_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

// serveBufconn starts e on an in-memory listener and returns a client
// connection to it.
func serveBufconn(t *testing.T, e *Endpoint) *grpc.ClientConn {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	go func() { _ = e.Serve(lis) }()
	t.Cleanup(e.Stop)

	conn, err := grpc.NewClient("passthrough:///akwam",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("Failed to dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestHealthName(t *testing.T) {
	if got := HealthName((&mockProvider{}).Info()); got != "akwam.v1.ProviderService/akwam" {
		t.Errorf("HealthName = %q", got)
	}
}

func TestNewGRPCServer_ServiceInfo(t *testing.T) {
	e := NewGRPCServer(&mockProvider{})

	info, ok := e.GetServiceInfo()[ServiceName]
	if !ok {
		t.Fatalf("Expected %s to be registered, got %v", ServiceName, e.GetServiceInfo())
	}
	if info.Metadata != "akwam/v1/provider.proto" {
		t.Errorf("Unexpected service metadata %v", info.Metadata)
	}

	want := map[string]bool{
		"GetInfo":     false,
		"GetMainPage": false,
		"Search":      false,
		"Load":        false,
		"LoadLinks":   true,
	}
	if len(info.Methods) != len(want) {
		t.Errorf("Expected %d methods, got %d: %v", len(want), len(info.Methods), info.Methods)
	}
	for _, m := range info.Methods {
		streaming, known := want[m.Name]
		if !known {
			t.Errorf("Unexpected method %s", m.Name)
			continue
		}
		if m.IsServerStream != streaming {
			t.Errorf("%s: IsServerStream = %v, want %v", m.Name, m.IsServerStream, streaming)
		}
		if m.IsClientStream {
			t.Errorf("%s: unexpected client streaming", m.Name)
		}
	}
}

func TestNewGRPCServer_HealthCheck(t *testing.T) {
	conn := serveBufconn(t, NewGRPCServer(&mockProvider{}))
	healthClient := grpc_health_v1.NewHealthClient(conn)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for _, service := range []string{"", ServiceName, "akwam.v1.ProviderService/akwam"} {
		resp, err := healthClient.Check(ctx, &grpc_health_v1.HealthCheckRequest{Service: service})
		if err != nil {
			t.Fatalf("Health check %q failed: %v", service, err)
		}
		if resp.Status != grpc_health_v1.HealthCheckResponse_SERVING {
			t.Errorf("Expected SERVING for %q, got %v", service, resp.Status)
		}
	}

	_, err := healthClient.Check(ctx, &grpc_health_v1.HealthCheckRequest{Service: ServiceName + "/egybest"})
	if status.Code(err) != codes.NotFound {
		t.Errorf("Expected NotFound for an unknown provider, got %v", err)
	}
}

func TestNewGRPCServer_ReflectionListsProviderService(t *testing.T) {
	conn := serveBufconn(t, NewGRPCServer(&mockProvider{}))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stream, err := grpc_reflection_v1.NewServerReflectionClient(conn).ServerReflectionInfo(ctx)
	if err != nil {
		t.Fatalf("Failed to create reflection stream: %v", err)
	}
	err = stream.Send(&grpc_reflection_v1.ServerReflectionRequest{
		MessageRequest: &grpc_reflection_v1.ServerReflectionRequest_ListServices{},
	})
	if err != nil {
		t.Fatalf("Failed to send reflection request: %v", err)
	}
	resp, err := stream.Recv()
	if err != nil {
		t.Fatalf("Failed to receive reflection response: %v", err)
	}

	listResp := resp.GetListServicesResponse()
	if listResp == nil {
		t.Fatal("Expected list services response")
	}
	services := map[string]bool{}
	for _, svc := range listResp.Service {
		services[svc.Name] = true
	}
	for _, name := range []string{ServiceName, "grpc.health.v1.Health"} {
		if !services[name] {
			t.Errorf("Expected reflection to list %s, got %v", name, listResp.Service)
		}
	}
}

func TestEndpoint_Drain(t *testing.T) {
	e := NewGRPCServer(&mockProvider{})
	conn := serveBufconn(t, e)

	watchCtx, stopWatch := context.WithTimeout(context.Background(), 5*time.Second)
	defer stopWatch()

	watch, err := grpc_health_v1.NewHealthClient(conn).Watch(watchCtx, &grpc_health_v1.HealthCheckRequest{
		Service: "akwam.v1.ProviderService/akwam",
	})
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	first, err := watch.Recv()
	if err != nil || first.Status != grpc_health_v1.HealthCheckResponse_SERVING {
		t.Fatalf("Expected SERVING before drain, got %v (%v)", first, err)
	}

	drained := make(chan struct{})
	go func() {
		e.Drain()
		close(drained)
	}()

	next, err := watch.Recv()
	if err != nil {
		t.Fatalf("Recv after drain: %v", err)
	}
	if next.Status != grpc_health_v1.HealthCheckResponse_NOT_SERVING {
		t.Errorf("Expected NOT_SERVING while draining, got %v", next.Status)
	}

	// the open watch is the last in-flight call
	stopWatch()
	select {
	case <-drained:
	case <-time.After(5 * time.Second):
		t.Fatal("Drain did not return after in-flight calls finished")
	}
}

func TestNewGRPCServer_CalledMultipleTimes(t *testing.T) {
	// sync.Once guards the metrics registration
	e1 := NewGRPCServer(&mockProvider{})
	e2 := NewGRPCServer(&mockProvider{})

	if e1 == nil || e2 == nil {
		t.Fatal("Expected non-nil endpoints from multiple calls")
	}
}
