package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// CredentialServiceClient calls the credential service over cc.
type CredentialServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewCredentialServiceClient(cc grpc.ClientConnInterface) *CredentialServiceClient {
	return &CredentialServiceClient{cc: cc}
}

func (c *CredentialServiceClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*AuthReply, error) {
	return invoke(ctx, c.cc, RegisterFullMethodName, in, authReplyFromStruct, opts...)
}

func (c *CredentialServiceClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*AuthReply, error) {
	return invoke(ctx, c.cc, LoginFullMethodName, in, authReplyFromStruct, opts...)
}

func (c *CredentialServiceClient) VerifyToken(ctx context.Context, in *VerifyTokenRequest, opts ...grpc.CallOption) (*AuthReply, error) {
	return invoke(ctx, c.cc, VerifyTokenFullMethodName, in, authReplyFromStruct, opts...)
}

func (c *CredentialServiceClient) Ping(ctx context.Context, opts ...grpc.CallOption) (*PingReply, error) {
	return invoke(ctx, c.cc, PingFullMethodName, emptyMessage{}, pingReplyFromStruct, opts...)
}

type emptyMessage struct{}

func (emptyMessage) toStruct() (*structpb.Struct, error) { return &structpb.Struct{}, nil }

func invoke[Rep any](ctx context.Context, cc grpc.ClientConnInterface, method string, in structReply,
	decode func(*structpb.Struct) (Rep, error), opts ...grpc.CallOption) (Rep, error) {

	var zero Rep

	req, err := in.toStruct()
	if err != nil {
		return zero, err
	}

	out := new(structpb.Struct)
	if err := cc.Invoke(ctx, method, req, out, opts...); err != nil {
		return zero, err
	}

	return decode(out)
}
