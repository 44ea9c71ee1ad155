package grpcmw

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/hyp3rd/spoollog"
	"github.com/hyp3rd/spoollog/internal/constants"
	"github.com/hyp3rd/spoollog/pkg/engine"
)

type lineDevice struct {
	lines []string
}

func (*lineDevice) Open() error  { return nil }
func (*lineDevice) Close() error { return nil }

func (d *lineDevice) Write(p []byte) error {
	d.lines = append(d.lines, string(p))

	return nil
}

func newEngine(t *testing.T) (*engine.Engine, *lineDevice) {
	t.Helper()

	device := &lineDevice{}

	cfg := spoollog.DefaultConfig()
	cfg.Device = device

	for level := range cfg.Formats {
		cfg.Formats[level] = spoollog.FmtLevel | spoollog.FmtTag
	}

	eng, err := engine.New(cfg)
	require.NoError(t, err)

	t.Cleanup(func() { _ = eng.Close() })

	return eng, device
}

func TestUnaryServerInterceptor(t *testing.T) {
	eng, device := newEngine(t)

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(
		constants.RequestMetadataKey, "request-456",
	))

	interceptor := UnaryServerInterceptor(eng)
	info := &grpc.UnaryServerInfo{FullMethod: "/spool.v1.Spool/Flush"}

	resp, err := interceptor(ctx, "req", info, func(context.Context, any) (any, error) {
		return "resp", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "resp", resp)

	_, err = interceptor(ctx, "req", info, func(context.Context, any) (any, error) {
		return nil, status.Error(codes.NotFound, "no such engine")
	})
	require.Error(t, err)

	_, err = interceptor(context.Background(), "req", info, func(context.Context, any) (any, error) {
		return nil, status.Error(codes.Internal, "device gone")
	})
	require.Error(t, err)

	require.NoError(t, eng.Flush())
	require.Len(t, device.lines, 3)

	assert.True(t, strings.HasPrefix(device.lines[0], "I/GRPC"))
	assert.Contains(t, device.lines[0], "/spool.v1.Spool/Flush OK")
	assert.Contains(t, device.lines[0], "rid=request-456")
	assert.True(t, strings.HasPrefix(device.lines[1], "W/GRPC"))
	assert.Contains(t, device.lines[1], "NotFound")
	assert.True(t, strings.HasPrefix(device.lines[2], "E/GRPC"))
	assert.Contains(t, device.lines[2], "rid=\r\n")
}

func TestUnaryServerInterceptorOptions(t *testing.T) {
	eng, device := newEngine(t)

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("x-correlation-id", "c-1"))

	interceptor := UnaryServerInterceptor(eng, WithTag("RPC"), WithRequestKey("x-correlation-id"))

	_, err := interceptor(ctx, nil, &grpc.UnaryServerInfo{FullMethod: "/a.B/C"},
		func(context.Context, any) (any, error) { return nil, nil })
	require.NoError(t, err)

	require.NoError(t, eng.Flush())
	require.Len(t, device.lines, 1)
	assert.True(t, strings.HasPrefix(device.lines[0], "I/RPC"))
	assert.Contains(t, device.lines[0], "rid=c-1")
}

func TestLevelFor(t *testing.T) {
	assert.Equal(t, spoollog.InfoLevel, levelFor(codes.OK))
	assert.Equal(t, spoollog.WarnLevel, levelFor(codes.PermissionDenied))
	assert.Equal(t, spoollog.ErrorLevel, levelFor(codes.Unavailable))
}
