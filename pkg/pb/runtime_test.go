package pb

import (
	"testing"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
)

func TestTrainRequest(t *testing.T) {
	req := &TrainRequest{
		Handle:        "h-5",
		Rows:          2,
		BottleneckDim: 3,
		LabelDim:      5,
		Bottlenecks:   make([]byte, 2*3*4),
		Labels:        make([]byte, 2*5*4),
	}
	req.Bottlenecks[23] = 0x3f

	data, err := proto.Marshal(req)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var got TrainRequest
	if err := proto.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !proto.Equal(req, &got) {
		t.Errorf("decoded %v, want %v", &got, req)
	}
	if got.GetBottlenecks()[23] != 0x3f {
		t.Error("bottleneck bytes changed on the wire")
	}
}

func TestNilGetters(t *testing.T) {
	var req *TrainRequest
	if req.GetHandle() != "" || req.GetRows() != 0 || req.GetBottlenecks() != nil {
		t.Error("getters on nil message should return zero values")
	}
	var resp *InferResponse
	if resp.GetProbabilities() != nil {
		t.Error("GetProbabilities() on nil should be nil")
	}
}

func TestRuntimeDescriptor(t *testing.T) {
	fd := File_edgeml_runtime_v1_runtime_proto
	if fd.Package() != "edgeml.runtime.v1" {
		t.Errorf("Package() = %q", fd.Package())
	}

	tests := []struct {
		service string
		methods []string
	}{
		{"KeywordRuntime", []string{"Predict"}},
		{"TransferRuntime", []string{"Open", "Load", "Train", "Infer", "Close"}},
	}
	for _, tt := range tests {
		sd := fd.Services().ByName(protoreflect.Name(tt.service))
		if sd == nil {
			t.Fatalf("service %s missing", tt.service)
		}
		if sd.Methods().Len() != len(tt.methods) {
			t.Errorf("%s has %d methods, want %d", tt.service, sd.Methods().Len(), len(tt.methods))
		}
		for i, m := range tt.methods {
			if got := sd.Methods().Get(i).Name(); string(got) != m {
				t.Errorf("%s method %d = %s, want %s", tt.service, i, got, m)
			}
		}
	}

	if got := string(TransferRuntime_ServiceDesc.ServiceName); got != "edgeml.runtime.v1.TransferRuntime" {
		t.Errorf("ServiceName = %q", got)
	}
	train := (&TrainRequest{}).ProtoReflect().Descriptor().Fields().ByName("bottlenecks")
	if train == nil || train.Number() != 5 {
		t.Errorf("bottlenecks field = %v, want number 5", train)
	}
}
