package server

import (
	"context"
	"encoding/json"

	apperrors "github.com/robodu/edgeml/internal/errors"
	"github.com/robodu/edgeml/internal/trace"
	"github.com/robodu/edgeml/internal/training"
)

// CallArgs is the union of call arguments. Fields a method does not use
// are ignored.
type CallArgs struct {
	ClassCount int       `json:"classCount"`
	ImageData  []float32 `json:"imageData"`
	ClassName  string    `json:"className"`
	Epochs     int       `json:"epochs"`
}

// TrainResult is the reply to a train call.
type TrainResult struct {
	Loss            float32        `json:"loss"`
	Epochs          int            `json:"epochs"`
	Batches         int            `json:"batches"`
	FailedBatches   int            `json:"failedBatches"`
	Message         string         `json:"message"`
	SamplesPerClass map[string]int `json:"samplesPerClass"`
	Imbalanced      bool           `json:"imbalanced"`
	DurationMS      int64          `json:"durationMs"`
}

func trainResult(r training.Result) TrainResult {
	return TrainResult{
		Loss:            r.AvgLoss,
		Epochs:          r.Epochs,
		Batches:         r.Batches,
		FailedBatches:   r.FailedBatches,
		Message:         r.Message,
		SamplesPerClass: r.SamplesPerClass,
		Imbalanced:      r.Imbalanced,
		DurationMS:      r.Duration.Milliseconds(),
	}
}

// call runs one named operation.
func (s *Server) call(ctx context.Context, method string, raw json.RawMessage) (any, error) {
	ctx, span := trace.StartSpan(ctx, "call")
	defer span.End()
	span.SetAttr("method", method)

	var args CallArgs
	if len(raw) > 0 && string(raw) != "null" {
		if err := json.Unmarshal(raw, &args); err != nil {
			return nil, apperrors.Wrap(err, apperrors.InvalidArgument, "malformed call arguments").
				WithMetadata("method", method)
		}
	}

	switch method {
	case MethodInitKeywordModel:
		return done(s.orch.InitKeywordModel(ctx))
	case MethodStartListening:
		return done(s.orch.StartListening(ctx))
	case MethodStopListening:
		s.orch.StopListening()
		return true, nil
	case MethodInitModel:
		return done(s.orch.InitClassifierModel(ctx, args.ClassCount))
	case MethodResetModel:
		return done(s.orch.ResetModel(ctx, args.ClassCount))
	case MethodAddSample:
		if args.ImageData == nil {
			return nil, apperrors.New(apperrors.InvalidArgument, "missing imageData")
		}
		return s.orch.AddSample(ctx, args.ImageData, args.ClassName)
	case MethodTrain:
		res, err := s.orch.Train(ctx, args.Epochs)
		if err != nil {
			return nil, err
		}
		return trainResult(res), nil
	case MethodClassify:
		if args.ImageData == nil {
			return nil, apperrors.New(apperrors.InvalidArgument, "missing imageData")
		}
		return s.orch.Classify(ctx, args.ImageData)
	case MethodGetSamplesInfo:
		return s.orch.SamplesInfo(), nil
	default:
		return nil, apperrors.Newf(apperrors.NotFound, "unknown method %q", method)
	}
}

func done(err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return true, nil
}

// ErrorBody is the error reply on both transports.
type ErrorBody struct {
	Code     string            `json:"code"`
	Message  string            `json:"message"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

func errorBody(err error) (ErrorBody, int) {
	appErr, ok := apperrors.As(err)
	if !ok {
		appErr = apperrors.Wrap(err, apperrors.Internal, err.Error())
	}
	return ErrorBody{
		Code:     string(appErr.Code),
		Message:  appErr.Message,
		Metadata: appErr.Metadata,
	}, appErr.HTTPStatus()
}
