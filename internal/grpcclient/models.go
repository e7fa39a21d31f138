package grpcclient

import (
	"context"
	"strconv"
	"sync"

	apperrors "github.com/robodu/edgeml/internal/errors"
	"github.com/robodu/edgeml/internal/model"
	"github.com/robodu/edgeml/internal/resilience"
	"github.com/robodu/edgeml/internal/trace"
	"github.com/robodu/edgeml/pkg/pb"
)

var (
	_ model.KeywordModel  = (*KeywordModel)(nil)
	_ model.TransferModel = (*TransferModel)(nil)
)

// KeywordModel runs the keyword spotting network on the runtime.
type KeywordModel struct {
	c *Client
}

// OpenKeyword waits for the runtime and returns its keyword model.
func (c *Client) OpenKeyword(ctx context.Context) (*KeywordModel, error) {
	ctx, cancel := context.WithTimeout(ctx, ReadyTimeout)
	defer cancel()
	if err := c.WaitReady(ctx); err != nil {
		return nil, err
	}
	return &KeywordModel{c: c}, nil
}

// Predict returns keyword probabilities for a flattened feature matrix.
func (m *KeywordModel) Predict(ctx context.Context, features []float32) ([]float32, error) {
	req := &pb.PredictRequest{Features: Float32ToBytes(features)}
	resp, err := call(ctx, m.c.inference, pb.KeywordRuntime_Predict_FullMethodName, func(ctx context.Context) (*pb.PredictResponse, error) {
		return m.c.keyword.Predict(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	return decode(resp.GetProbabilities(), "probabilities")
}

// Close is a no-op; the keyword model lives as long as the runtime.
func (m *KeywordModel) Close() error { return nil }

// TransferModel is one transfer-learning handle on the runtime: a frozen
// base model plus a head sized for its class count.
type TransferModel struct {
	c          *Client
	handle     string
	classCount int
	closeOnce  sync.Once
	closeErr   error
}

// OpenTransfer opens a handle with freshly initialized head weights.
// Transient failures are retried with backoff.
func (c *Client) OpenTransfer(ctx context.Context, classCount int) (*TransferModel, error) {
	ctx, span := trace.StartSpan(ctx, "runtime_open")
	defer span.End()

	req := &pb.OpenRequest{ClassCount: int32(classCount)}
	resp, err := resilience.RetryWithResult(ctx, c.cfg.OpenRetry, func() (*pb.OpenResponse, error) {
		return call(ctx, c.inference, pb.TransferRuntime_Open_FullMethodName, func(ctx context.Context) (*pb.OpenResponse, error) {
			return c.transfer.Open(ctx, req)
		})
	})
	if err != nil {
		span.Fail(err)
		return nil, err
	}
	handle := resp.GetHandle()
	if handle == "" {
		err := apperrors.New(apperrors.ModelLoadFailed, "runtime returned an empty handle")
		span.Fail(err)
		return nil, err
	}

	span.SetAttr("handle", handle)
	trace.Logger(ctx).Info("transfer model opened", "handle", handle, "classes", classCount)
	return &TransferModel{c: c, handle: handle, classCount: classCount}, nil
}

// Handle returns the runtime handle ID.
func (m *TransferModel) Handle() string { return m.handle }

// Load runs the base model and returns the bottleneck for img.
func (m *TransferModel) Load(ctx context.Context, img model.Image) ([]float32, error) {
	req := &pb.LoadRequest{
		Handle:   m.handle,
		Pixels:   Float32ToBytes(img.Pixels),
		Height:   int32(img.Height),
		Width:    int32(img.Width),
		Channels: int32(img.Channels),
	}
	resp, err := call(ctx, m.c.inference, pb.TransferRuntime_Load_FullMethodName, func(ctx context.Context) (*pb.LoadResponse, error) {
		return m.c.transfer.Load(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	return decode(resp.GetBottleneck(), "bottleneck")
}

// Train runs one optimizer step over a batch and returns its loss.
func (m *TransferModel) Train(ctx context.Context, bottlenecks, labels [][]float32) (float32, error) {
	if len(bottlenecks) == 0 || len(bottlenecks) != len(labels) {
		return 0, apperrors.Newf(apperrors.InvalidArgument, "batch has %d bottlenecks and %d labels", len(bottlenecks), len(labels))
	}
	b, bdim, err := flatten(bottlenecks)
	if err != nil {
		return 0, err
	}
	l, ldim, err := flatten(labels)
	if err != nil {
		return 0, err
	}
	if ldim != m.classCount {
		return 0, apperrors.Newf(apperrors.InvalidArgument, "label width %d does not match %d classes", ldim, m.classCount)
	}

	req := &pb.TrainRequest{
		Handle:        m.handle,
		Rows:          int32(len(bottlenecks)),
		BottleneckDim: int32(bdim),
		LabelDim:      int32(ldim),
		Bottlenecks:   Float32ToBytes(b),
		Labels:        Float32ToBytes(l),
	}
	resp, err := call(ctx, m.c.training, pb.TransferRuntime_Train_FullMethodName, func(ctx context.Context) (*pb.TrainResponse, error) {
		return m.c.transfer.Train(ctx, req)
	})
	if err != nil {
		return 0, err
	}
	return resp.GetLoss(), nil
}

// Infer runs the head on one bottleneck.
func (m *TransferModel) Infer(ctx context.Context, bottleneck []float32) ([]float32, error) {
	req := &pb.InferRequest{Handle: m.handle, Bottleneck: Float32ToBytes(bottleneck)}
	resp, err := call(ctx, m.c.inference, pb.TransferRuntime_Infer_FullMethodName, func(ctx context.Context) (*pb.InferResponse, error) {
		return m.c.transfer.Infer(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	return decode(resp.GetProbabilities(), "probabilities")
}

// Close releases the handle. Later calls return the first result.
func (m *TransferModel) Close() error {
	m.closeOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), CloseTimeout)
		defer cancel()
		_, m.closeErr = call(ctx, m.c.inference, pb.TransferRuntime_Close_FullMethodName, func(ctx context.Context) (*pb.CloseResponse, error) {
			return m.c.transfer.Close(ctx, &pb.CloseRequest{Handle: m.handle})
		})
	})
	return m.closeErr
}

func decode(b []byte, field string) ([]float32, error) {
	v, err := BytesToFloat32(b)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.InferenceFailed, "malformed runtime response").
			WithMetadata("field", field)
	}
	return v, nil
}

// flatten packs equal-length rows into one row-major slice.
func flatten(rows [][]float32) ([]float32, int, error) {
	dim := len(rows[0])
	out := make([]float32, 0, dim*len(rows))
	for i, r := range rows {
		if len(r) != dim {
			return nil, 0, apperrors.Newf(apperrors.InvalidArgument, "row %d has length %d, want %d", i, len(r), dim).
				WithMetadata("row", strconv.Itoa(i))
		}
		out = append(out, r...)
	}
	return out, dim, nil
}
