package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	List(ctx context.Context) error
	New(ctx context.Context) error
	Open(ctx context.Context, id string) error
	Edit(ctx context.Context, id string) error
	Remove(ctx context.Context, id string) error
	Favorite(ctx context.Context, id string) error
	Share(ctx context.Context, id string) error
	Unshare(ctx context.Context, id string) error
	Download(ctx context.Context, id, format string) error
	Folders(ctx context.Context) error
	MakeFolder(ctx context.Context) error
	RemoveFolder(ctx context.Context, id string) error
	Versions(ctx context.Context, id string) error
	Snapshot(ctx context.Context, id string) error
	Restore(ctx context.Context, versionID string) error
	Templates(ctx context.Context) error
	SaveTemplate(ctx context.Context, id string) error
	UseTemplate(ctx context.Context, id string) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
}

const helpText = `Available commands:
  (l)ist                 list documents
  new                    create a document
  open <id>              show a document and track its sync status
  edit <id>              replace a document's content
  rm <id>                delete a document and its versions
  fav <id>               toggle favorite
  share <id>             create a sharing link
  unshare <id>           revoke the sharing link
  dl <id> <html|md|txt>  export a document
  folders                list folders
  mkdir                  create a folder
  rmdir <id>             delete a folder tree
  versions <id>          list a document's snapshots
  snap <id>              snapshot a document
  restore <version-id>   restore a snapshot
  templates              list templates
  tpl <id>               save a document as a template
  use <template-id>      create a document from a template
  login | logout         manage the session
  exit | quit            leave`

// runREPL reads one line at a time, dispatches the first token as a
// command, and loops until EOF or an exit command. Handler errors are
// printed and swallowed so a failed command never kills the shell.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("draftpad %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		arg := func(i int) string {
			if i < len(args) {
				return args[i]
			}
			return ""
		}

		var err error
		switch cmd {
		case "help":
			printlnFn(helpText)
		case "l", "list":
			err = a.List(ctx)
		case "new":
			err = a.New(ctx)
		case "open":
			err = a.Open(ctx, arg(0))
		case "edit":
			err = a.Edit(ctx, arg(0))
		case "rm":
			err = a.Remove(ctx, arg(0))
		case "fav":
			err = a.Favorite(ctx, arg(0))
		case "share":
			err = a.Share(ctx, arg(0))
		case "unshare":
			err = a.Unshare(ctx, arg(0))
		case "dl":
			err = a.Download(ctx, arg(0), arg(1))
		case "folders":
			err = a.Folders(ctx)
		case "mkdir":
			err = a.MakeFolder(ctx)
		case "rmdir":
			err = a.RemoveFolder(ctx, arg(0))
		case "versions":
			err = a.Versions(ctx, arg(0))
		case "snap":
			err = a.Snapshot(ctx, arg(0))
		case "restore":
			err = a.Restore(ctx, arg(0))
		case "templates":
			err = a.Templates(ctx)
		case "tpl":
			err = a.SaveTemplate(ctx, arg(0))
		case "use":
			err = a.UseTemplate(ctx, arg(0))
		case "login":
			err = a.Login(ctx)
		case "logout":
			err = a.Logout(ctx)
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
