package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/shlex"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL dispatches to.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	visible() bool
	fail(msg string)

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Forget(ctx context.Context) error
	Me(ctx context.Context) error

	Upload(ctx context.Context, args []string) error
	Folder(args []string) error
	Tag(args []string) error
	Untag(args []string) error
	Tags() error

	Search(ctx context.Context, args []string) error
	TagFilter(ctx context.Context, args []string) error
	State(ctx context.Context, args []string) error
	Page(ctx context.Context, args []string) error
	List(ctx context.Context) error
	Show() error

	FileAction(ctx context.Context, cmd string, args []string) error
	Rename(ctx context.Context, args []string) error
	Retag(ctx context.Context, args []string) error
	Stats() error
}

const (
	helpSignedOut = "Available commands: register, login, forget, me, exit"
	helpSignedIn  = "Available commands: upload, folder, tag, untag, tags, search, tagfilter, state, page, " +
		"(l)ist, show, preview, download, delete, restore, rename, retag, me, stats, logout, exit"
)

// runREPL starts a read–eval–print loop over reader.
//
// Lines are split like a shell would: quotes keep spaces inside one argument
// and a backslash escapes the next character. The first token is the
// command; the rest are its arguments. File
// commands are only accepted while the file regions are visible, that is,
// while a session is active. A panicking command is reported through the
// status line and the loop continues. The loop exits on EOF or when the user
// types "exit" or "quit".
//
//	Signed out:
//	  - register | login     — create an account / authenticate
//	  - forget               — drop the saved session and blocked email
//	  - me                   — show the current identity
//	  - exit | quit          — leave the program
//
//	Signed in, additionally:
//	  - upload <path>...     — upload files with the current tags and folder
//	  - folder [name]        — set or clear the upload folder
//	  - tag <t1,t2>          — add tags to the upload set
//	  - untag <tag>          — remove a tag from the upload set
//	  - tags                 — show the upload set
//	  - search [q]           — filter by name
//	  - tagfilter [tag]      — filter by tag
//	  - state <s>            — active | deleted
//	  - page <n> [size]      — pagination
//	  - list | l             — reload the table
//	  - show                 — print the table again
//	  - preview|download|delete|restore <id>
//	  - rename <id> <name>
//	  - retag <id> <t1,t2>
//	  - stats                — API request counters
//	  - logout
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("fb> %s > ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts, perr := shlex.Split(line)
		if perr != nil {
			printlnFn("Parse error:", perr)
		} else if len(parts) > 0 {
			if quit := dispatch(ctx, a, parts[0], parts[1:]); quit {
				return
			}
		}
		if err != nil {
			return
		}
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) (quit bool) {
	defer func() {
		if r := recover(); r != nil {
			a.fail(fmt.Sprint(r))
		}
	}()

	switch cmd {
	case "help":
		if a.visible() {
			printlnFn(helpSignedIn)
		} else {
			printlnFn(helpSignedOut)
		}
		return false
	case "register":
		_ = a.Register(ctx)
		return false
	case "login":
		_ = a.Login(ctx)
		return false
	case "forget":
		_ = a.Forget(ctx)
		return false
	case "me":
		_ = a.Me(ctx)
		return false
	case "exit", "quit":
		printlnFn("Bye!")
		return true
	}

	if !a.visible() {
		printlnFn("Unknown command:", cmd)
		return false
	}

	switch cmd {
	case "logout":
		_ = a.Logout(ctx)
	case "upload":
		_ = a.Upload(ctx, args)
	case "folder":
		_ = a.Folder(args)
	case "tag":
		_ = a.Tag(args)
	case "untag":
		_ = a.Untag(args)
	case "tags":
		_ = a.Tags()
	case "search":
		_ = a.Search(ctx, args)
	case "tagfilter":
		_ = a.TagFilter(ctx, args)
	case "state":
		_ = a.State(ctx, args)
	case "page":
		_ = a.Page(ctx, args)
	case "l", "list", "reload":
		_ = a.List(ctx)
	case "show":
		_ = a.Show()
	case "preview", "download", "delete", "restore":
		_ = a.FileAction(ctx, cmd, args)
	case "rename":
		_ = a.Rename(ctx, args)
	case "retag":
		_ = a.Retag(ctx, args)
	case "stats":
		_ = a.Stats()
	default:
		printlnFn("Unknown command:", cmd)
	}
	return false
}
