package grpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/simaogato/harvestflow-backend/internal/usecase/planner"
)

// Client calls a remote PlannerService
type Client struct {
	conn  grpc.ClientConnInterface
	token string
}

// NewClient wraps an existing connection. token is sent as the authorization header.
func NewClient(conn grpc.ClientConnInterface, token string) *Client {
	return &Client{conn: conn, token: token}
}

// Dial opens a plaintext connection to addr and returns a Client with its connection.
// The caller closes the connection.
func Dial(addr, token string, opts ...grpc.DialOption) (*Client, *grpc.ClientConn, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)

	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create client for %s: %w", addr, err)
	}
	return NewClient(conn, token), conn, nil
}

// AllocateOnce runs a single-day allocation on the server
func (c *Client) AllocateOnce(ctx context.Context, input planner.AllocateInput) (*AllocationResponse, error) {
	req, err := encodeAllocateRequest(input)
	if err != nil {
		return nil, err
	}

	resp, err := c.invoke(ctx, PlannerService_AllocateOnce_FullMethodName, req)
	if err != nil {
		return nil, err
	}
	return decodeAllocation(resp)
}

// Simulate runs a multi-day simulation on the server. The day trace is
// returned only when input.Trace is set.
func (c *Client) Simulate(ctx context.Context, input planner.SimulateInput) (*SimulationResponse, error) {
	req, err := encodeSimulateRequest(input)
	if err != nil {
		return nil, err
	}

	resp, err := c.invoke(ctx, PlannerService_Simulate_FullMethodName, req)
	if err != nil {
		return nil, err
	}
	return decodeSimulation(resp)
}

// ListCatalogs returns the catalog names known to the server
func (c *Client) ListCatalogs(ctx context.Context) ([]string, error) {
	resp, err := c.invoke(ctx, PlannerService_ListCatalogs_FullMethodName, &structpb.Struct{})
	if err != nil {
		return nil, err
	}
	return decodeCatalogNames(resp), nil
}

func (c *Client) invoke(ctx context.Context, method string, req *structpb.Struct) (*structpb.Struct, error) {
	if c.token != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, "authorization", c.token)
	}

	resp := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, method, req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}
