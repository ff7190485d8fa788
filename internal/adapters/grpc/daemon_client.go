package grpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/andrescamacho/gridstock/internal/application/commands"
)

// RemoteError is a command failure reported by the running engine.
type RemoteError struct {
	Code    codes.Code
	Message string
}

func (e *RemoteError) Error() string {
	return e.Message
}

// DaemonClient sends operator commands to a running engine.
type DaemonClient struct {
	socketPath string
	conn       *grpc.ClientConn
}

// NewDaemonClient creates a client for the engine socket. No connection is
// made until the first call.
func NewDaemonClient(socketPath string) (*DaemonClient, error) {
	conn, err := grpc.NewClient(
		"unix:"+socketPath,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to engine socket: %w", err)
	}
	return &DaemonClient{socketPath: socketPath, conn: conn}, nil
}

// Execute runs one command line on the engine's live grid.
func (c *DaemonClient) Execute(ctx context.Context, line string) (*commands.MoveResult, error) {
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, executeMethod, wrapperspb.String(line), out); err != nil {
		st, _ := status.FromError(err)
		if st.Code() == codes.Unavailable {
			return nil, fmt.Errorf("engine not reachable at %s: %s", c.socketPath, st.Message())
		}
		return nil, &RemoteError{Code: st.Code(), Message: st.Message()}
	}
	return resultFromProto(out)
}

// Close closes the connection.
func (c *DaemonClient) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
