package api

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// jsonCodec implements encoding.Codec for messages that carry no protobuf
// descriptor. None of the .pb.go generated types this service's messages are
// modeled after exist in this tree, and the broker payloads they share a
// shape with are JSON on the wire in the teacher monorepo this service was
// adapted from (its orders/consumer.go json.Unmarshals into *pb.Order). Registering this
// codec under grpc's "proto" name makes grpc-go's default path JSON instead
// of requiring every message to implement proto.Message.
type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return "proto"
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
