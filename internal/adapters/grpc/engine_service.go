package grpc

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/andrescamacho/gridstock/internal/application/commands"
	"github.com/andrescamacho/gridstock/internal/domain/inventory"
)

const (
	engineServiceName = "gridstock.v1.EngineService"
	executeMethod     = "/" + engineServiceName + "/Execute"
)

// CommandExecutor runs one operator command line against the live grid.
type CommandExecutor interface {
	Execute(ctx context.Context, line string) (*commands.MoveResult, error)
}

// engineServer is the handler type of the engine service.
// Execute takes the command line as a StringValue and answers with a Struct
// carrying the move result.
type engineServer interface {
	execute(ctx context.Context, line *wrapperspb.StringValue) (*structpb.Struct, error)
}

var engineServiceDesc = grpc.ServiceDesc{
	ServiceName: engineServiceName,
	HandlerType: (*engineServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Execute", Handler: executeHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "gridstock/engine_service",
}

func executeHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(engineServer).execute(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: executeMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(engineServer).execute(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

// engineService adapts a CommandExecutor to the wire.
type engineService struct {
	executor CommandExecutor
}

func (s *engineService) execute(ctx context.Context, line *wrapperspb.StringValue) (*structpb.Struct, error) {
	result, err := s.executor.Execute(ctx, line.GetValue())
	if err != nil {
		return nil, toStatus(err)
	}
	out, err := resultToProto(result)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

// toStatus maps command errors onto gRPC codes, keeping the message.
func toStatus(err error) error {
	var (
		empty        *commands.ErrEmptyCommand
		unknown      *commands.ErrUnknownCommand
		syntax       *commands.ErrCommandSyntax
		unitNotFound *commands.ErrUnitNotFound
		listNotFound *commands.ErrListNotFound
		notConnected *commands.ErrConnectorNotConnected
	)
	switch {
	case errors.As(err, &empty), errors.As(err, &unknown), errors.As(err, &syntax):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.As(err, &unitNotFound), errors.As(err, &listNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.As(err, &notConnected):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, commands.ErrQueueClosed):
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return status.FromContextError(err).Err()
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

func resultToProto(r *commands.MoveResult) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]interface{}{
		"verb":       r.Verb,
		"sources":    r.Sources,
		"placements": r.Placements,
		"moved_raw":  strconv.FormatInt(r.Moved.Raw(), 10),
		"stranded":   r.Stranded,
	})
}

func resultFromProto(s *structpb.Struct) (*commands.MoveResult, error) {
	fields := s.GetFields()
	moved, err := strconv.ParseInt(fields["moved_raw"].GetStringValue(), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid moved amount in engine reply: %w", err)
	}
	return &commands.MoveResult{
		Verb:       fields["verb"].GetStringValue(),
		Sources:    int(fields["sources"].GetNumberValue()),
		Placements: int(fields["placements"].GetNumberValue()),
		Moved:      inventory.Amount(moved),
		Stranded:   int(fields["stranded"].GetNumberValue()),
	}, nil
}
