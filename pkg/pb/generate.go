// Package pb holds the generated model runtime protocol.
package pb

//go:generate protoc --proto_path=../../proto --go_out=../.. --go_opt=module=github.com/robodu/edgeml --go-grpc_out=../.. --go-grpc_opt=module=github.com/robodu/edgeml edgeml/runtime/v1/runtime.proto
