package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/rpc"
)

func (a *App) Register(ctx context.Context) error {

	name, err := GetSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}

	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	reply, err := a.client.Register(ctx, &rpc.RegisterRequest{Name: name, Email: email, Password: string(password)})
	if err != nil {
		return err
	}

	a.printReply(reply)
	return nil
}

func (a *App) Login(ctx context.Context) error {

	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	reply, err := a.client.Login(ctx, &rpc.LoginRequest{Email: email, Password: string(password)})
	if err != nil {
		return err
	}

	a.printReply(reply)
	return nil
}

// Verify checks the token given as the first argument, or read from stdin
// when none is given, and prints the reissued token.
func (a *App) Verify(ctx context.Context, args []string) error {

	var token string
	if len(args) > 0 {
		token = args[0]
	} else {
		var err error
		if token, err = GetSimpleText(a.reader, "Enter token", a.out); err != nil {
			return err
		}
	}

	reply, err := a.client.VerifyToken(ctx, &rpc.VerifyTokenRequest{Token: token})
	if err != nil {
		return err
	}

	a.printReply(reply)
	return nil
}

func (a *App) Ping(ctx context.Context) error {
	reply, err := a.client.Ping(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(a.out, "Server status: %s\n", reply.Status)
	return err
}
