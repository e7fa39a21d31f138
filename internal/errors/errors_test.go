package errors

import (
	"fmt"
	"net/http"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestAppErrorMessage(t *testing.T) {
	err := Wrap(fmt.Errorf("boom"), ModelLoadFailed, "open model").WithMetadata("addr", "localhost:50051")
	want := "[MODEL_LOAD_FAILED] open model map[addr:localhost:50051] caused by: boom"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestCodeMapping(t *testing.T) {
	tests := []struct {
		code ErrorCode
		grpc codes.Code
		http int
	}{
		{InvalidArgument, codes.InvalidArgument, http.StatusBadRequest},
		{UnknownClass, codes.InvalidArgument, http.StatusBadRequest},
		{EmptySampleSet, codes.FailedPrecondition, http.StatusPreconditionFailed},
		{InsufficientClasses, codes.FailedPrecondition, http.StatusPreconditionFailed},
		{TrainingInProgress, codes.Aborted, http.StatusConflict},
		{DeviceUnavailable, codes.Unavailable, http.StatusServiceUnavailable},
		{InferenceFailed, codes.Internal, http.StatusInternalServerError},
		{ErrorCode("SOMETHING_NEW"), codes.Unknown, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			e := New(tt.code, "x")
			if got := e.GRPCCode(); got != tt.grpc {
				t.Errorf("GRPCCode() = %v, want %v", got, tt.grpc)
			}
			if got := e.HTTPStatus(); got != tt.http {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.http)
			}
		})
	}
}

func TestGRPCStatusRoundTrip(t *testing.T) {
	orig := New(InsufficientClasses, "need at least 2 different classes").WithMetadata("classes", "1")

	st := orig.GRPCStatus()
	if st.Code() != codes.FailedPrecondition {
		t.Fatalf("status code = %v, want FailedPrecondition", st.Code())
	}

	got := FromGRPCError(st.Err())
	if got.Code != InsufficientClasses {
		t.Errorf("Code = %v, want %v", got.Code, InsufficientClasses)
	}
	if got.Message != orig.Message {
		t.Errorf("Message = %q, want %q", got.Message, orig.Message)
	}
	if got.Metadata["classes"] != "1" {
		t.Errorf("Metadata[classes] = %q, want %q", got.Metadata["classes"], "1")
	}
}

func TestFromGRPCErrorFallback(t *testing.T) {
	err := status.Error(codes.Unavailable, "connection refused")
	got := FromGRPCError(err)
	if got.Code != Unavailable {
		t.Errorf("Code = %v, want %v", got.Code, Unavailable)
	}
	if !IsRetryable(got) {
		t.Error("unavailable should be retryable")
	}

	plain := FromGRPCError(fmt.Errorf("plain"))
	if plain.Code != Unknown {
		t.Errorf("Code = %v, want %v", plain.Code, Unknown)
	}
}

func TestIsCodeUnwraps(t *testing.T) {
	err := fmt.Errorf("train: %w", New(EmptySampleSet, "no samples"))
	if !IsCode(err, EmptySampleSet) {
		t.Error("IsCode should find wrapped AppError")
	}
	if IsCode(err, InsufficientClasses) {
		t.Error("IsCode matched wrong code")
	}
	if CodeOf(err) != EmptySampleSet {
		t.Errorf("CodeOf = %v, want %v", CodeOf(err), EmptySampleSet)
	}
	if CodeOf(fmt.Errorf("plain")) != Unknown {
		t.Error("CodeOf plain error should be Unknown")
	}
}
