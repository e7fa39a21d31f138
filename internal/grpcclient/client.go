package grpcclient

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/connectivity"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/keepalive"

	apperrors "github.com/robodu/edgeml/internal/errors"
	"github.com/robodu/edgeml/internal/resilience"
	"github.com/robodu/edgeml/internal/trace"
	"github.com/robodu/edgeml/pkg/pb"
)

// Config holds runtime client settings.
type Config struct {
	Addr             string
	KeepaliveTime    time.Duration
	KeepaliveTimeout time.Duration
	// MaxMessageBytes caps send and receive message size.
	MaxMessageBytes int
	// Inference guards Predict, Open, Load, Infer and Close.
	Inference resilience.Config
	// Training guards Train.
	Training  resilience.Config
	OpenRetry resilience.RetryConfig
	// DialOptions are appended to the defaults.
	DialOptions []grpc.DialOption
}

// DefaultConfig returns settings for a runtime listening on addr.
func DefaultConfig(addr string) Config {
	return Config{
		Addr:             addr,
		KeepaliveTime:    DefaultKeepaliveTime,
		KeepaliveTimeout: DefaultKeepaliveTimeout,
		MaxMessageBytes:  DefaultMaxMessageBytes,
		Inference:        resilience.InferenceConfig(),
		Training:         resilience.TrainingConfig(),
		OpenRetry:        resilience.OpenRetryConfig(),
	}
}

// Client is a connection to the model runtime.
type Client struct {
	conn      *grpc.ClientConn
	cfg       Config
	keyword   pb.KeywordRuntimeClient
	transfer  pb.TransferRuntimeClient
	inference *resilience.Breaker
	training  *resilience.Breaker
}

// New creates a runtime client. The connection is established lazily.
func New(cfg Config) (*Client, error) {
	if cfg.MaxMessageBytes <= 0 {
		cfg.MaxMessageBytes = DefaultMaxMessageBytes
	}
	opts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithKeepaliveParams(keepalive.ClientParameters{
			Time:                cfg.KeepaliveTime,
			Timeout:             cfg.KeepaliveTimeout,
			PermitWithoutStream: true,
		}),
		grpc.WithDefaultCallOptions(
			grpc.MaxCallSendMsgSize(cfg.MaxMessageBytes),
			grpc.MaxCallRecvMsgSize(cfg.MaxMessageBytes),
		),
		grpc.WithChainUnaryInterceptor(trace.UnaryClientInterceptor()),
	}
	opts = append(opts, cfg.DialOptions...)

	conn, err := grpc.NewClient(cfg.Addr, opts...)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.Unavailable, "create runtime client").
			WithMetadata("addr", cfg.Addr)
	}

	slog.Debug("runtime client created", "addr", cfg.Addr)
	return &Client{
		conn:      conn,
		cfg:       cfg,
		keyword:   pb.NewKeywordRuntimeClient(conn),
		transfer:  pb.NewTransferRuntimeClient(conn),
		inference: resilience.New(cfg.Inference),
		training:  resilience.New(cfg.Training),
	}, nil
}

// Close closes the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Addr returns the runtime address.
func (c *Client) Addr() string { return c.cfg.Addr }

// WaitReady connects and blocks until the connection is ready or ctx ends.
func (c *Client) WaitReady(ctx context.Context) error {
	c.conn.Connect()
	for {
		s := c.conn.GetState()
		switch s {
		case connectivity.Ready:
			return nil
		case connectivity.Shutdown:
			return apperrors.New(apperrors.Unavailable, "runtime client is closed")
		case connectivity.Idle:
			c.conn.Connect()
		}
		if !c.conn.WaitForStateChange(ctx, s) {
			return apperrors.Wrap(ctx.Err(), apperrors.Unavailable, "model runtime not reachable").
				WithMetadata("addr", c.cfg.Addr).
				WithMetadata("state", s.String())
		}
	}
}

// call performs one runtime call through breaker b inside a span named
// after method. Transport and runtime errors come back as
// *apperrors.AppError.
func call[T any](ctx context.Context, b *resilience.Breaker, method string, fn func(context.Context) (T, error)) (T, error) {
	ctx, span := trace.StartSpan(ctx, spanName(method))
	span.SetAttr("breaker", b.Name())
	defer span.End()

	resp, err := resilience.ExecuteWithResult(b, func() (T, error) {
		resp, err := fn(ctx)
		if err != nil {
			return resp, apperrors.FromGRPCError(err).WithMetadata("method", method)
		}
		return resp, nil
	})
	if errors.Is(err, resilience.ErrOpen) {
		err = apperrors.Wrap(err, apperrors.Unavailable, "model runtime unavailable").
			WithMetadata("breaker", b.Name()).
			WithMetadata("method", method)
	}
	span.Fail(err)
	return resp, err
}

// spanName turns "/edgeml.runtime.v1.TransferRuntime/Train" into
// "runtime.TransferRuntime.Train".
func spanName(method string) string {
	svc, m, ok := strings.Cut(strings.TrimPrefix(method, "/"), "/")
	if !ok {
		return "runtime." + svc
	}
	if i := strings.LastIndex(svc, "."); i >= 0 {
		svc = svc[i+1:]
	}
	return "runtime." + svc + "." + m
}
