package grpc

import (
	"context"

	"github.com/dmitrijs2005/gophauth/internal/rpc"
	"github.com/dmitrijs2005/gophauth/internal/server/dto"
	"github.com/dmitrijs2005/gophauth/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) Register(ctx context.Context, req *rpc.RegisterRequest) (*rpc.AuthReply, error) {

	in := dto.RegisterUserRequest{Name: req.Name, Email: req.Email, Password: req.Password}
	if err := s.validator.Validate(in); err != nil {
		return nil, toStatus(err)
	}

	result, err := s.svc.Register(ctx, in.Name, in.Email, in.Password)
	if err != nil {
		return nil, toStatus(err)
	}

	return toReply(result), nil
}

func (s *GRPCServer) Login(ctx context.Context, req *rpc.LoginRequest) (*rpc.AuthReply, error) {

	in := dto.LoginUserRequest{Email: req.Email, Password: req.Password}
	if err := s.validator.Validate(in); err != nil {
		return nil, toStatus(err)
	}

	result, err := s.svc.Login(ctx, in.Email, in.Password)
	if err != nil {
		return nil, toStatus(err)
	}

	return toReply(result), nil
}

func (s *GRPCServer) VerifyToken(ctx context.Context, req *rpc.VerifyTokenRequest) (*rpc.AuthReply, error) {

	if err := s.validator.Validate(dto.VerifyTokenRequest{Token: req.Token}); err != nil {
		return nil, toStatus(err)
	}

	result, err := s.svc.VerifyToken(ctx, req.Token)
	if err != nil {
		return nil, toStatus(err)
	}

	return toReply(result), nil
}

func (s *GRPCServer) Ping(ctx context.Context) (*rpc.PingReply, error) {
	return &rpc.PingReply{Status: "OK"}, nil
}

func toReply(r *services.AuthResult) *rpc.AuthReply {
	return &rpc.AuthReply{
		User:  rpc.User{ID: r.User.ID, Name: r.User.Name, Email: r.User.Email},
		Token: r.Token,
	}
}

// toStatus maps service error kinds to gRPC codes. Only the outward
// message crosses the wire.
func toStatus(err error) error {
	e := services.AsError(err)

	var code codes.Code
	switch e.Kind {
	case services.KindValidation:
		code = codes.InvalidArgument
	case services.KindDuplicateUser:
		code = codes.AlreadyExists
	case services.KindUserNotFound, services.KindInvalidCredentials, services.KindInvalidToken:
		code = codes.Unauthenticated
	default:
		code = codes.Internal
	}

	return status.Error(code, e.Message())
}
