package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/gophauth/internal/client/config"
	"github.com/dmitrijs2005/gophauth/internal/flagx"
	"github.com/dmitrijs2005/gophauth/internal/rpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
)

// ErrUsage is returned for a missing or unknown sub-command.
var ErrUsage = errors.New("usage: gophauth-cli [-a addr] [-t seconds] register|login|verify [token]|ping")

// CredentialClient is the subset of rpc.CredentialServiceClient the CLI uses.
type CredentialClient interface {
	Register(ctx context.Context, in *rpc.RegisterRequest, opts ...grpc.CallOption) (*rpc.AuthReply, error)
	Login(ctx context.Context, in *rpc.LoginRequest, opts ...grpc.CallOption) (*rpc.AuthReply, error)
	VerifyToken(ctx context.Context, in *rpc.VerifyTokenRequest, opts ...grpc.CallOption) (*rpc.AuthReply, error)
	Ping(ctx context.Context, opts ...grpc.CallOption) (*rpc.PingReply, error)
}

type App struct {
	config *config.Config
	client CredentialClient
	conn   io.Closer
	reader *bufio.Reader
	out    io.Writer
}

// NewApp prepares a client for cfg.ServerEndpointAddr. The connection is
// established lazily on the first call.
func NewApp(cfg *config.Config) (*App, error) {
	conn, err := grpc.NewClient(cfg.ServerEndpointAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("grpc client: %w", err)
	}

	return &App{
		config: cfg,
		client: rpc.NewCredentialServiceClient(conn),
		conn:   conn,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}, nil
}

// Close releases the connection.
func (a *App) Close() error {
	if a.conn == nil {
		return nil
	}
	return a.conn.Close()
}

// Run executes the sub-command found in args.
func (a *App) Run(ctx context.Context, args []string) error {
	positional := flagx.Positional(args, config.ValueFlags)
	if len(positional) == 0 {
		return ErrUsage
	}

	ctx, cancel := context.WithTimeout(ctx, a.config.RequestTimeout)
	defer cancel()

	var err error
	switch positional[0] {
	case "register":
		err = a.Register(ctx)
	case "login":
		err = a.Login(ctx)
	case "verify":
		err = a.Verify(ctx, positional[1:])
	case "ping":
		err = a.Ping(ctx)
	default:
		return ErrUsage
	}

	if st, ok := status.FromError(err); ok && err != nil {
		return fmt.Errorf("%s: %s", st.Code(), st.Message())
	}
	return err
}

func (a *App) printReply(r *rpc.AuthReply) {
	fmt.Fprintf(a.out, "User:  id=%s name=%q email=%s\n", r.User.ID, r.User.Name, r.User.Email)
	fmt.Fprintf(a.out, "Token: %s\n", r.Token)
}
