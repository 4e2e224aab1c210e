package grpc

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/rpc"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/dmitrijs2005/gophauth/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ---- fakes ----

type fakeService struct {
	result *services.AuthResult
	err    error

	calls    int
	gotEmail string
	gotToken string
}

func (f *fakeService) Register(_ context.Context, _, email, _ string) (*services.AuthResult, error) {
	f.calls++
	f.gotEmail = email
	return f.result, f.err
}

func (f *fakeService) Login(_ context.Context, email, _ string) (*services.AuthResult, error) {
	f.calls++
	f.gotEmail = email
	return f.result, f.err
}

func (f *fakeService) VerifyToken(_ context.Context, token string) (*services.AuthResult, error) {
	f.calls++
	f.gotToken = token
	return f.result, f.err
}

func newTestServer(t *testing.T, svc CredentialService) *GRPCServer {
	t.Helper()
	s, err := NewGRPCServer("127.0.0.1:0", logging.Nop{}, svc)
	require.NoError(t, err)
	return s
}

var okResult = &services.AuthResult{
	User:  models.Profile{ID: "u1", Name: "Ana", Email: "a@x.com"},
	Token: "tok",
}

func TestRegister_OK(t *testing.T) {
	f := &fakeService{result: okResult}
	s := newTestServer(t, f)

	rep, err := s.Register(context.Background(), &rpc.RegisterRequest{Name: "Ana", Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, &rpc.AuthReply{User: rpc.User{ID: "u1", Name: "Ana", Email: "a@x.com"}, Token: "tok"}, rep)
	assert.Equal(t, "a@x.com", f.gotEmail)
}

func TestRegister_ValidationStopsBeforeService(t *testing.T) {
	f := &fakeService{result: okResult}
	s := newTestServer(t, f)

	_, err := s.Register(context.Background(), &rpc.RegisterRequest{Name: "Ana", Email: "nope", Password: "secret1"})
	st, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, codes.InvalidArgument, st.Code())
	assert.Equal(t, "invalid request: email must be a valid email address", st.Message())
	assert.Zero(t, f.calls)
}

func TestLogin_Errors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    codes.Code
		message string
	}{
		{"unknown user", services.ErrUserNotFound, codes.Unauthenticated, "invalid email or password"},
		{"bad password", services.ErrInvalidCredentials, codes.Unauthenticated, "invalid email or password"},
		{"store", errors.New("pq: connection refused"), codes.Internal, "internal error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, &fakeService{err: tt.err})

			_, err := s.Login(context.Background(), &rpc.LoginRequest{Email: "a@x.com", Password: "x"})
			st, ok := status.FromError(err)
			require.True(t, ok)
			assert.Equal(t, tt.code, st.Code())
			assert.Equal(t, tt.message, st.Message())
		})
	}
}

func TestVerifyToken(t *testing.T) {
	f := &fakeService{result: okResult}
	s := newTestServer(t, f)

	rep, err := s.VerifyToken(context.Background(), &rpc.VerifyTokenRequest{Token: "old"})
	require.NoError(t, err)
	assert.Equal(t, "tok", rep.Token)
	assert.Equal(t, "old", f.gotToken)

	_, err = s.VerifyToken(context.Background(), &rpc.VerifyTokenRequest{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	s = newTestServer(t, &fakeService{err: services.ErrInvalidToken})
	_, err = s.VerifyToken(context.Background(), &rpc.VerifyTokenRequest{Token: "bad"})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestPing(t *testing.T) {
	s := newTestServer(t, &fakeService{})
	rep, err := s.Ping(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "OK", rep.Status)
}

func TestToStatus_DuplicateUser(t *testing.T) {
	err := toStatus(services.ErrDuplicateUser)
	assert.Equal(t, codes.AlreadyExists, status.Code(err))
	assert.Equal(t, "user already exists", status.Convert(err).Message())
}
