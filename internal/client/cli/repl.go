package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL dispatches to. The real App
// satisfies it; tests provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Show(ctx context.Context) error
	Edit(ctx context.Context, section string) error
	Suggest(ctx context.Context) error
	Price(ctx context.Context) error
	Status(ctx context.Context) error
	Push(ctx context.Context) error
	Pull(ctx context.Context) error
	Draft(ctx context.Context, args []string) error
	Download(ctx context.Context, productName string) error
}

const helpAnonymous = `Available commands:
  show | edit <section> | suggest | price
  draft save|load|list|delete [name]
  download cv|cover|bundle
  register | login | exit`

const helpLoggedIn = `Available commands:
  show | edit <section> | suggest | price | status
  draft save|load|list|delete [name]
  push | pull  (snapshot to/from server)
  download cv|cover|bundle
  logout | exit`

// runREPL reads commands line by line and dispatches to a. Command errors
// are printed and the loop continues; only EOF and exit/quit end it.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner, out io.Writer) {
	fmt.Fprintln(out, "CVPro CLI (type 'help' for commands)")

	for {
		fmt.Fprintf(out, "cvpro %s> ", statusFn())
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(out, helpLoggedIn)
			} else {
				fmt.Fprintln(out, helpAnonymous)
			}
		case "register":
			err = a.Register(ctx)
		case "login":
			err = a.Login(ctx)
		case "logout":
			err = a.Logout(ctx)
		case "show":
			err = a.Show(ctx)
		case "edit":
			section := ""
			if len(args) > 0 {
				section = args[0]
			}
			err = a.Edit(ctx, section)
		case "suggest":
			err = a.Suggest(ctx)
		case "price":
			err = a.Price(ctx)
		case "status":
			err = a.Status(ctx)
		case "push":
			err = a.Push(ctx)
		case "pull":
			err = a.Pull(ctx)
		case "draft":
			err = a.Draft(ctx, args)
		case "download":
			p := ""
			if len(args) > 0 {
				p = args[0]
			}
			err = a.Download(ctx, p)
		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return
		default:
			fmt.Fprintln(out, "Unknown command:", cmd)
		}

		if err != nil {
			fmt.Fprintln(out, "error:", err)
		}
	}
}
