package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/simaogato/harvestflow-backend/internal/domain"
	"github.com/simaogato/harvestflow-backend/internal/usecase/planner"
)

// Server implements the PlannerService gRPC server
type Server struct {
	Planner *planner.PlannerService
}

var _ PlannerServiceServer = (*Server)(nil)

// NewServer creates a new gRPC server instance
func NewServer(plannerService *planner.PlannerService) *Server {
	return &Server{Planner: plannerService}
}

// AllocateOnce handles the AllocateOnce RPC
func (s *Server) AllocateOnce(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	input, err := decodeAllocateRequest(req)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "%v", err)
	}

	report, err := s.Planner.AllocateOnce(ctx, input)
	if err != nil {
		return nil, mapError(err)
	}

	resp, err := encodeAllocation(report)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode allocation: %v", err)
	}
	return resp, nil
}

// Simulate handles the Simulate RPC
func (s *Server) Simulate(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	input, err := decodeSimulateRequest(req)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "%v", err)
	}

	report, err := s.Planner.Simulate(ctx, input)
	if err != nil {
		return nil, mapError(err)
	}

	resp, err := encodeSimulation(report)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode simulation: %v", err)
	}
	return resp, nil
}

// ListCatalogs handles the ListCatalogs RPC
func (s *Server) ListCatalogs(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	names, err := s.Planner.ListCatalogs(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	resp, err := encodeCatalogNames(names)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode catalogs: %v", err)
	}
	return resp, nil
}

// mapError converts domain errors to gRPC status errors
func mapError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case domain.IsConfigurationError(err):
		return status.Errorf(codes.InvalidArgument, "%s", err.Error())
	case errors.Is(err, domain.ErrAmountOverflow):
		return status.Errorf(codes.OutOfRange, "%s", err.Error())
	case errors.Is(err, domain.ErrCatalogNotFound):
		return status.Errorf(codes.NotFound, "%s", err.Error())
	case errors.Is(err, context.Canceled):
		return status.Errorf(codes.Canceled, "%s", err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Errorf(codes.DeadlineExceeded, "%s", err.Error())
	}

	// Default to Internal error for unknown errors
	return status.Errorf(codes.Internal, "%s", err.Error())
}
