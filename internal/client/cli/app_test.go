package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/client/config"
	"github.com/dmitrijs2005/gophauth/internal/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type fakeClient struct {
	reply *rpc.AuthReply
	err   error

	register *rpc.RegisterRequest
	login    *rpc.LoginRequest
	verify   *rpc.VerifyTokenRequest
	deadline bool
}

func (f *fakeClient) Register(ctx context.Context, in *rpc.RegisterRequest, _ ...grpc.CallOption) (*rpc.AuthReply, error) {
	_, f.deadline = ctx.Deadline()
	f.register = in
	return f.reply, f.err
}

func (f *fakeClient) Login(_ context.Context, in *rpc.LoginRequest, _ ...grpc.CallOption) (*rpc.AuthReply, error) {
	f.login = in
	return f.reply, f.err
}

func (f *fakeClient) VerifyToken(_ context.Context, in *rpc.VerifyTokenRequest, _ ...grpc.CallOption) (*rpc.AuthReply, error) {
	f.verify = in
	return f.reply, f.err
}

func (f *fakeClient) Ping(context.Context, ...grpc.CallOption) (*rpc.PingReply, error) {
	return &rpc.PingReply{Status: "OK"}, f.err
}

func newTestApp(client CredentialClient, input string) (*App, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &App{
		config: &config.Config{ServerEndpointAddr: "test", RequestTimeout: time.Second},
		client: client,
		reader: bufio.NewReader(strings.NewReader(input)),
		out:    out,
	}, out
}

var okReply = &rpc.AuthReply{User: rpc.User{ID: "u1", Name: "Ana", Email: "a@x.com"}, Token: "tok"}

func TestRun_Register(t *testing.T) {
	stubPassword(t, "secret1", nil)
	f := &fakeClient{reply: okReply}
	app, out := newTestApp(f, "Ana\na@x.com\n")

	require.NoError(t, app.Run(context.Background(), []string{"-a", "host:1", "register"}))

	assert.Equal(t, &rpc.RegisterRequest{Name: "Ana", Email: "a@x.com", Password: "secret1"}, f.register)
	assert.True(t, f.deadline)
	assert.Contains(t, out.String(), "Token: tok\n")
	assert.Contains(t, out.String(), "email=a@x.com")
}

func TestRun_Login(t *testing.T) {
	stubPassword(t, "secret1", nil)
	f := &fakeClient{reply: okReply}
	app, out := newTestApp(f, "a@x.com\n")

	require.NoError(t, app.Run(context.Background(), []string{"login"}))
	assert.Equal(t, &rpc.LoginRequest{Email: "a@x.com", Password: "secret1"}, f.login)
	assert.Contains(t, out.String(), "Token: tok")
}

func TestRun_LoginRejected(t *testing.T) {
	stubPassword(t, "bad", nil)
	f := &fakeClient{err: status.Error(codes.Unauthenticated, "invalid email or password")}
	app, _ := newTestApp(f, "a@x.com\n")

	err := app.Run(context.Background(), []string{"login"})
	require.Error(t, err)
	assert.Equal(t, "Unauthenticated: invalid email or password", err.Error())
}

func TestRun_VerifyFromArgAndPrompt(t *testing.T) {
	f := &fakeClient{reply: okReply}
	app, _ := newTestApp(f, "")

	require.NoError(t, app.Run(context.Background(), []string{"-t", "3", "verify", "abc"}))
	assert.Equal(t, "abc", f.verify.Token)

	app, _ = newTestApp(f, "from-stdin\n")
	require.NoError(t, app.Run(context.Background(), []string{"verify"}))
	assert.Equal(t, "from-stdin", f.verify.Token)
}

func TestRun_Ping(t *testing.T) {
	app, out := newTestApp(&fakeClient{}, "")
	require.NoError(t, app.Run(context.Background(), []string{"ping"}))
	assert.Equal(t, "Server status: OK\n", out.String())
}

func TestRun_Usage(t *testing.T) {
	app, _ := newTestApp(&fakeClient{}, "")

	assert.ErrorIs(t, app.Run(context.Background(), nil), ErrUsage)
	assert.ErrorIs(t, app.Run(context.Background(), []string{"-a", "host:1"}), ErrUsage)
	assert.ErrorIs(t, app.Run(context.Background(), []string{"delete"}), ErrUsage)
}

func TestNewApp(t *testing.T) {
	app, err := NewApp(&config.Config{ServerEndpointAddr: "127.0.0.1:1", RequestTimeout: time.Second})
	require.NoError(t, err)
	assert.NoError(t, app.Close())
}
