// Package rpc describes the gophauth.v1.CredentialService gRPC service.
//
// Messages travel as google.protobuf.Struct values, so no generated code is
// needed: this package holds the service descriptor, the typed request and
// reply structs, and a client. The layout follows what protoc-gen-go-grpc
// would emit.
package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "gophauth.v1.CredentialService"

const (
	RegisterFullMethodName    = "/" + ServiceName + "/Register"
	LoginFullMethodName       = "/" + ServiceName + "/Login"
	VerifyTokenFullMethodName = "/" + ServiceName + "/VerifyToken"
	PingFullMethodName        = "/" + ServiceName + "/Ping"
)

// CredentialServiceServer is the server API for the credential service.
type CredentialServiceServer interface {
	Register(context.Context, *RegisterRequest) (*AuthReply, error)
	Login(context.Context, *LoginRequest) (*AuthReply, error)
	VerifyToken(context.Context, *VerifyTokenRequest) (*AuthReply, error)
	Ping(context.Context) (*PingReply, error)
}

// UnimplementedCredentialServiceServer may be embedded to have forward
// compatible implementations.
type UnimplementedCredentialServiceServer struct{}

func (UnimplementedCredentialServiceServer) Register(context.Context, *RegisterRequest) (*AuthReply, error) {
	return nil, status.Error(codes.Unimplemented, "method Register not implemented")
}
func (UnimplementedCredentialServiceServer) Login(context.Context, *LoginRequest) (*AuthReply, error) {
	return nil, status.Error(codes.Unimplemented, "method Login not implemented")
}
func (UnimplementedCredentialServiceServer) VerifyToken(context.Context, *VerifyTokenRequest) (*AuthReply, error) {
	return nil, status.Error(codes.Unimplemented, "method VerifyToken not implemented")
}
func (UnimplementedCredentialServiceServer) Ping(context.Context) (*PingReply, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}

func RegisterCredentialServiceServer(s grpc.ServiceRegistrar, srv CredentialServiceServer) {
	s.RegisterService(&CredentialService_ServiceDesc, srv)
}

// structReply is anything that can be sent back as a Struct.
type structReply interface {
	toStruct() (*structpb.Struct, error)
}

// unaryHandler adapts a typed method to grpc.MethodHandler: it decodes the
// Struct request, runs the (optional) interceptor chain around call and
// encodes the reply.
func unaryHandler[Req any, Rep structReply](fullMethod string,
	decode func(*structpb.Struct) (Req, error),
	call func(CredentialServiceServer, context.Context, Req) (Rep, error)) grpc.MethodHandler {

	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		req, err := decode(in)
		if err != nil {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}

		handler := func(ctx context.Context, req any) (any, error) {
			rep, err := call(srv.(CredentialServiceServer), ctx, req.(Req))
			if err != nil {
				return nil, err
			}
			out, err := rep.toStruct()
			if err != nil {
				return nil, status.Error(codes.Internal, "encode reply")
			}
			return out, nil
		}

		if interceptor == nil {
			return handler(ctx, req)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		return interceptor(ctx, req, info, handler)
	}
}

func emptyRequest(*structpb.Struct) (struct{}, error) { return struct{}{}, nil }

// CredentialService_ServiceDesc is the grpc.ServiceDesc for the credential
// service.
var CredentialService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CredentialServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Register",
			Handler: unaryHandler(RegisterFullMethodName, registerRequestFromStruct,
				func(s CredentialServiceServer, ctx context.Context, r *RegisterRequest) (*AuthReply, error) {
					return s.Register(ctx, r)
				}),
		},
		{
			MethodName: "Login",
			Handler: unaryHandler(LoginFullMethodName, loginRequestFromStruct,
				func(s CredentialServiceServer, ctx context.Context, r *LoginRequest) (*AuthReply, error) {
					return s.Login(ctx, r)
				}),
		},
		{
			MethodName: "VerifyToken",
			Handler: unaryHandler(VerifyTokenFullMethodName, verifyTokenRequestFromStruct,
				func(s CredentialServiceServer, ctx context.Context, r *VerifyTokenRequest) (*AuthReply, error) {
					return s.VerifyToken(ctx, r)
				}),
		},
		{
			MethodName: "Ping",
			Handler: unaryHandler(PingFullMethodName, emptyRequest,
				func(s CredentialServiceServer, ctx context.Context, _ struct{}) (*PingReply, error) {
					return s.Ping(ctx)
				}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "gophauth/v1/credential.proto",
}
