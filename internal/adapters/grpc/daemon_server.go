package grpc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"google.golang.org/grpc"

	"github.com/andrescamacho/gridstock/internal/application/common"
)

// DaemonServer exposes a running engine's command surface on a unix socket,
// so `gridstock exec` acts on the engine's live grid instead of the file.
type DaemonServer struct {
	socketPath string
	listener   net.Listener
	server     *grpc.Server
	serveErr   chan error
}

// NewDaemonServer listens on socketPath, replacing a stale socket file.
// Commands are handed to executor; logger may be nil.
func NewDaemonServer(executor CommandExecutor, socketPath string, logger common.CycleLogger) (*DaemonServer, error) {
	if logger == nil {
		logger = common.LoggerFromContext(context.Background())
	}

	// Remove existing socket file if present
	if err := os.RemoveAll(socketPath); err != nil {
		return nil, fmt.Errorf("failed to remove existing socket: %w", err)
	}

	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create unix socket listener: %w", err)
	}

	// Owner only
	if err := os.Chmod(socketPath, 0o600); err != nil {
		listener.Close()
		return nil, fmt.Errorf("failed to set socket permissions: %w", err)
	}

	server := grpc.NewServer(grpc.ChainUnaryInterceptor(loggingInterceptor(logger)))
	server.RegisterService(&engineServiceDesc, &engineService{executor: executor})

	return &DaemonServer{
		socketPath: socketPath,
		listener:   listener,
		server:     server,
		serveErr:   make(chan error, 1),
	}, nil
}

// Start serves requests in the background.
func (s *DaemonServer) Start() {
	go func() {
		s.serveErr <- s.server.Serve(s.listener)
	}()
}

// Addr returns the socket path.
func (s *DaemonServer) Addr() string { return s.socketPath }

// Stop waits for in-flight requests, closes the socket and reports a serve
// failure if one happened.
func (s *DaemonServer) Stop() error {
	s.server.GracefulStop()
	_ = os.Remove(s.socketPath)

	select {
	case err := <-s.serveErr:
		if err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return fmt.Errorf("gRPC server error: %w", err)
		}
	default:
	}
	return nil
}

func loggingInterceptor(logger common.CycleLogger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		metadata := map[string]interface{}{
			"method":   info.FullMethod,
			"duration": time.Since(start).String(),
		}
		if err != nil {
			metadata["error"] = err.Error()
			logger.Log(common.LevelWarn, "Remote command failed", metadata)
		} else {
			logger.Log(common.LevelDebug, "Remote command completed", metadata)
		}
		return resp, err
	}
}
