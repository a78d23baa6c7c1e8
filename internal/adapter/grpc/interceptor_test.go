package grpc

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func TestAuthInterceptor(t *testing.T) {
	validToken := "test-token-123"
	interceptor := AuthInterceptor(validToken)

	tests := []struct {
		name           string
		ctx            context.Context
		handlerCalled  bool
		expectedCode   codes.Code
		expectedErrMsg string
	}{
		{
			name: "Valid Token",
			ctx: metadata.NewIncomingContext(
				context.Background(),
				metadata.Pairs("authorization", validToken),
			),
			handlerCalled:  true,
			expectedCode:   codes.OK,
			expectedErrMsg: "",
		},
		{
			name: "Invalid Token",
			ctx: metadata.NewIncomingContext(
				context.Background(),
				metadata.Pairs("authorization", "wrong-token"),
			),
			handlerCalled:  false,
			expectedCode:   codes.Unauthenticated,
			expectedErrMsg: "invalid token",
		},
		{
			name:           "Missing Token",
			ctx:            context.Background(),
			handlerCalled:  false,
			expectedCode:   codes.Unauthenticated,
			expectedErrMsg: "missing metadata",
		},
		{
			name: "Missing Authorization Header",
			ctx: metadata.NewIncomingContext(
				context.Background(),
				metadata.Pairs("other-header", "value"),
			),
			handlerCalled:  false,
			expectedCode:   codes.Unauthenticated,
			expectedErrMsg: "missing authorization header",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerCalled := false
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				handlerCalled = true
				return "success", nil
			}

			info := &grpc.UnaryServerInfo{
				FullMethod: "/test.Service/Method",
			}

			resp, err := interceptor(tt.ctx, "test-request", info, handler)

			assert.Equal(t, tt.handlerCalled, handlerCalled, "handler called status mismatch")

			if tt.expectedCode == codes.OK {
				assert.NoError(t, err)
				assert.Equal(t, "success", resp)
			} else {
				assert.Error(t, err)
				st, ok := status.FromError(err)
				assert.True(t, ok, "error should be a gRPC status")
				assert.Equal(t, tt.expectedCode, st.Code())
				assert.Contains(t, st.Message(), tt.expectedErrMsg)
			}
		})
	}
}

func TestLoggingInterceptor(t *testing.T) {
	tests := []struct {
		name          string
		handlerErr    error
		expectedLevel string
		expectedCode  string
	}{
		{
			name:          "Success",
			handlerErr:    nil,
			expectedLevel: `"level":"info"`,
			expectedCode:  `"code":"OK"`,
		},
		{
			name:          "Client Error",
			handlerErr:    status.Error(codes.InvalidArgument, "horizon must be positive"),
			expectedLevel: `"level":"warn"`,
			expectedCode:  `"code":"InvalidArgument"`,
		},
		{
			name:          "Server Error",
			handlerErr:    errors.New("database unavailable"),
			expectedLevel: `"level":"error"`,
			expectedCode:  `"code":"Unknown"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			interceptor := LoggingInterceptor(zerolog.New(&buf))

			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				if tt.handlerErr != nil {
					return nil, tt.handlerErr
				}
				return "success", nil
			}

			info := &grpc.UnaryServerInfo{
				FullMethod: PlannerService_Simulate_FullMethodName,
			}

			resp, err := interceptor(context.Background(), "test-request", info, handler)

			assert.Equal(t, tt.handlerErr, err)
			if tt.handlerErr == nil {
				assert.Equal(t, "success", resp)
			}

			out := buf.String()
			assert.Contains(t, out, tt.expectedLevel)
			assert.Contains(t, out, tt.expectedCode)
			assert.Contains(t, out, `"method":"/harvestflow.v1.PlannerService/Simulate"`)
			assert.Contains(t, out, `"component":"grpc"`)
		})
	}
}
