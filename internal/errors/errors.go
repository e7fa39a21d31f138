// Package errors provides the structured error type shared by the keyword,
// training and transport layers. Each ErrorCode maps to a gRPC status code for
// the model runtime transport and to an HTTP status for the host call surface.
package errors

import (
	"fmt"
	"net/http"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// ErrorCode identifies a failure class. The string values double as the
// error codes returned to the host application.
type ErrorCode string

const (
	ErrorCodeUnspecified ErrorCode = ""
	Unknown              ErrorCode = "UNKNOWN"
	Internal             ErrorCode = "INTERNAL"
	InvalidArgument      ErrorCode = "INVALID_ARGUMENT"
	NotFound             ErrorCode = "NOT_FOUND"
	Unavailable          ErrorCode = "UNAVAILABLE"
	Cancelled            ErrorCode = "CANCELLED"
	ConfigInvalid        ErrorCode = "CONFIG_INVALID"

	// Initialization
	ModelLoadFailed   ErrorCode = "MODEL_LOAD_FAILED"
	DeviceUnavailable ErrorCode = "DEVICE_UNAVAILABLE"
	NotInitialized    ErrorCode = "NOT_INITIALIZED"

	// Input validation
	UnknownClass ErrorCode = "UNKNOWN_CLASS"

	// Transient inference
	InferenceFailed ErrorCode = "INFERENCE_FAILED"
	TrainingFailed  ErrorCode = "TRAINING_FAILED"

	// Training preconditions
	EmptySampleSet      ErrorCode = "EMPTY_SAMPLE_SET"
	InsufficientClasses ErrorCode = "INSUFFICIENT_CLASSES"
	TrainingInProgress  ErrorCode = "TRAINING_IN_PROGRESS"
)

func (c ErrorCode) String() string {
	if c == ErrorCodeUnspecified {
		return "ERROR_CODE_UNSPECIFIED"
	}
	return string(c)
}

// grpcCodeMap maps ErrorCode to gRPC status codes.
var grpcCodeMap = map[ErrorCode]codes.Code{
	ErrorCodeUnspecified: codes.Unknown,
	Unknown:              codes.Unknown,
	Internal:             codes.Internal,
	InvalidArgument:      codes.InvalidArgument,
	NotFound:             codes.NotFound,
	Unavailable:          codes.Unavailable,
	Cancelled:            codes.Canceled,
	ConfigInvalid:        codes.InvalidArgument,
	ModelLoadFailed:      codes.Unavailable,
	DeviceUnavailable:    codes.Unavailable,
	NotInitialized:       codes.FailedPrecondition,
	UnknownClass:         codes.InvalidArgument,
	InferenceFailed:      codes.Internal,
	TrainingFailed:       codes.Internal,
	EmptySampleSet:       codes.FailedPrecondition,
	InsufficientClasses:  codes.FailedPrecondition,
	TrainingInProgress:   codes.Aborted,
}

var httpStatusMap = map[codes.Code]int{
	codes.InvalidArgument:    http.StatusBadRequest,
	codes.NotFound:           http.StatusNotFound,
	codes.FailedPrecondition: http.StatusPreconditionFailed,
	codes.Aborted:            http.StatusConflict,
	codes.Unavailable:        http.StatusServiceUnavailable,
	codes.Canceled:           499,
	codes.DeadlineExceeded:   http.StatusGatewayTimeout,
	codes.ResourceExhausted:  http.StatusTooManyRequests,
}

// AppError is the base error type with structured error code and metadata.
type AppError struct {
	Code     ErrorCode
	Message  string
	Metadata map[string]string
	Cause    error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	s := fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
	if len(e.Metadata) > 0 {
		s += fmt.Sprintf(" %v", e.Metadata)
	}
	if e.Cause != nil {
		s += fmt.Sprintf(" caused by: %v", e.Cause)
	}
	return s
}

// Unwrap returns the underlying cause for errors.Is/As.
func (e *AppError) Unwrap() error { return e.Cause }

// GRPCCode returns the corresponding gRPC status code.
func (e *AppError) GRPCCode() codes.Code {
	if c, ok := grpcCodeMap[e.Code]; ok {
		return c
	}
	return codes.Unknown
}

// HTTPStatus returns the status used by the host call surface.
func (e *AppError) HTTPStatus() int {
	if s, ok := httpStatusMap[e.GRPCCode()]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// detail encodes code, message and metadata as a protobuf Struct.
func (e *AppError) detail() (*structpb.Struct, error) {
	fields := map[string]any{
		"code":    string(e.Code),
		"message": e.Message,
	}
	if len(e.Metadata) > 0 {
		md := make(map[string]any, len(e.Metadata))
		for k, v := range e.Metadata {
			md[k] = v
		}
		fields["metadata"] = md
	}
	return structpb.NewStruct(fields)
}

// GRPCStatus returns a gRPC status with the error detail attached.
func (e *AppError) GRPCStatus() *status.Status {
	st := status.New(e.GRPCCode(), e.Error())
	detail, err := e.detail()
	if err != nil {
		return st
	}
	if withDetail, err := st.WithDetails(detail); err == nil {
		st = withDetail
	}
	return st
}

// New creates a new AppError with the given code and message.
func New(code ErrorCode, msg string) *AppError {
	return &AppError{Code: code, Message: msg}
}

// Newf creates a new AppError with formatted message.
func Newf(code ErrorCode, format string, args ...any) *AppError {
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an existing error with an AppError.
func Wrap(err error, code ErrorCode, msg string) *AppError {
	return &AppError{Code: code, Message: msg, Cause: err}
}

// Wrapf wraps an existing error with formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...any) *AppError {
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...), Cause: err}
}

// WithMetadata adds metadata to an AppError.
func (e *AppError) WithMetadata(key, value string) *AppError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]string)
	}
	e.Metadata[key] = value
	return e
}

// FromGRPCError extracts AppError from a gRPC error if present.
func FromGRPCError(err error) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := As(err); ok {
		return appErr
	}
	st, ok := status.FromError(err)
	if !ok {
		return &AppError{Code: Unknown, Message: err.Error(), Cause: err}
	}

	for _, d := range st.Details() {
		s, ok := d.(*structpb.Struct)
		if !ok {
			continue
		}
		fields := s.GetFields()
		code := ErrorCode(fields["code"].GetStringValue())
		if code == ErrorCodeUnspecified {
			continue
		}
		appErr := &AppError{Code: code, Message: fields["message"].GetStringValue()}
		for k, v := range fields["metadata"].GetStructValue().GetFields() {
			appErr.WithMetadata(k, v.GetStringValue())
		}
		return appErr
	}

	return &AppError{Code: grpcToErrorCode(st.Code()), Message: st.Message(), Cause: err}
}

// grpcToErrorCode maps gRPC codes back to our error codes (best effort).
func grpcToErrorCode(c codes.Code) ErrorCode {
	switch c {
	case codes.InvalidArgument:
		return InvalidArgument
	case codes.NotFound:
		return NotFound
	case codes.Unavailable, codes.DeadlineExceeded:
		return Unavailable
	case codes.Canceled:
		return Cancelled
	case codes.Internal:
		return Internal
	case codes.FailedPrecondition:
		return NotInitialized
	case codes.Aborted:
		return TrainingInProgress
	default:
		return Unknown
	}
}

// As returns the first AppError in err's chain.
func As(err error) (*AppError, bool) {
	for err != nil {
		if appErr, ok := err.(*AppError); ok {
			return appErr, true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return nil, false
		}
		err = u.Unwrap()
	}
	return nil, false
}

// IsCode checks if an error has a specific error code.
func IsCode(err error, code ErrorCode) bool {
	if appErr, ok := As(err); ok {
		return appErr.Code == code
	}
	return false
}

// CodeOf returns the code of the first AppError in err's chain, or Unknown.
func CodeOf(err error) ErrorCode {
	if appErr, ok := As(err); ok {
		return appErr.Code
	}
	return Unknown
}

// IsRetryable returns true if the error is potentially retryable.
func IsRetryable(err error) bool {
	appErr, ok := As(err)
	if !ok {
		return false
	}
	switch appErr.Code {
	case Unavailable, ModelLoadFailed:
		return true
	default:
		return false
	}
}
