package cli

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/client/models"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	LoginWithToken(ctx context.Context, token string) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	AdminCheck(ctx context.Context) error
	CartList(ctx context.Context) error
	CartAdd(ctx context.Context, productID models.ID, quantity int, name string, price float64) error
	CartUpdate(ctx context.Context, ref string, quantity int) error
	CartRemove(ctx context.Context, ref string) error
	CartClear(ctx context.Context) error
	Sync(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the storefront CLI.
//
// It reads a line from the provided reader, parses the first token as the
// command, and dispatches to methods on 'a'. The loop exits on EOF or when
// the user types "exit" or "quit". Commands that prompt for more input
// (login) read from the same reader.
//
// Commands
//
//	help                                 show available commands
//	login [token]                        authenticate (prompt, or a known token)
//	logout                               log out
//	whoami                               show the current user
//	admin                                check admin access
//	list | l                             show the cart
//	add <product> [qty] [price] [name]   add a product (qty defaults to 1)
//	update <line|product> <qty>          change a quantity
//	remove <line|product>                remove a line
//	clear                                empty the local cart
//	sync                                 merge the guest cart into the account
//	exit | quit                          leave the program
//
// Errors returned by handlers are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("shop %s > ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		err = nil
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (l)ist, add, update, remove, clear, sync, whoami, admin, logout, exit")
			} else {
				printlnFn("Available commands: (l)ist, add, update, remove, clear, login, exit")
			}

		case "login":
			if len(args) > 0 {
				err = a.LoginWithToken(ctx, args[0])
			} else {
				err = a.Login(ctx)
			}

		case "logout":
			err = a.Logout(ctx)

		case "whoami":
			err = a.Whoami(ctx)

		case "admin":
			err = a.AdminCheck(ctx)

		case "l", "list":
			err = a.CartList(ctx)

		case "add":
			err = replAdd(ctx, a, args)

		case "update":
			if len(args) != 2 {
				printlnFn("Usage: update <line|product> <qty>")
				continue
			}
			qty, convErr := strconv.Atoi(args[1])
			if convErr != nil {
				printlnFn("Quantity must be a number:", args[1])
				continue
			}
			err = a.CartUpdate(ctx, args[0], qty)

		case "remove":
			if len(args) != 1 {
				printlnFn("Usage: remove <line|product>")
				continue
			}
			err = a.CartRemove(ctx, args[0])

		case "clear":
			err = a.CartClear(ctx)

		case "sync":
			err = a.Sync(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err)
		}
	}
}

func replAdd(ctx context.Context, a execIface, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: add <product> [qty] [price] [name]")
		return nil
	}

	qty := 1
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			printlnFn("Quantity must be a number:", args[1])
			return nil
		}
		qty = n
	}

	var price float64
	if len(args) > 2 {
		p, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			printlnFn("Price must be a number:", args[2])
			return nil
		}
		price = p
	}

	var name string
	if len(args) > 3 {
		name = strings.Join(args[3:], " ")
	}

	return a.CartAdd(ctx, models.ID(args[0]), qty, name, price)
}
