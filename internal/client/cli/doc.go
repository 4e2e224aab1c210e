// Package cli implements gophauth-cli, a command-line client for the
// credential service.
//
// Usage:
//
//	gophauth-cli [-a addr] [-t seconds] [-c config.json] register|login|verify [token]|ping
//
// register and login prompt for their fields on stdin and read the password
// without echo; every successful command prints the user and a fresh token.
package cli
