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
	View(ctx context.Context, ref string) error
	Edit(ctx context.Context, ref string) error
	Set(ctx context.Context, field, value string) error
	Save(ctx context.Context) error
	Delete(ctx context.Context) error
	Back(ctx context.Context) error
	Upload(ctx context.Context, paths []string) error
	Caption(ctx context.Context, ref, text string) error
	RemovePhoto(ctx context.Context, ref string) error
	Refresh(ctx context.Context) error
	Photos(ctx context.Context) error
	More(ctx context.Context) error
	Open(ctx context.Context, ref string) error
	Next(ctx context.Context) error
	Prev(ctx context.Context) error
	Close(ctx context.Context) error
}

const helpText = `Trips:
  trips | ls               list trips
  new                      start a new trip
  view <#|id>              show a trip
  edit <#|id>              edit a trip
  set <field> <value>      change a form field
  save                     submit the form
  delete                   delete the trip being edited
  cancel | back            leave the current screen
  upload <path>...         add photos to the shown trip
  caption <#|id> [text]    describe a photo of the shown trip
  rmphoto <#|id>           delete a photo of the shown trip
  refresh                  reload trips from the server
Photos:
  photos                   open the photo feed
  more                     scroll the feed
  open <#|id>              show a photo fullscreen
  next | prev | close      navigate fullscreen
Other:
  help                     show this text
  exit | quit              leave the program`

// runREPL starts a simple read–eval–print loop for the TripKeeper CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. The loop exits on scanner EOF
// or when the user types "exit" or "quit".
//
// Errors returned by command handlers are printed and the loop continues.
// The loop also exits once ctx is done, even while waiting for input.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("tk (%s)> ", statusFn()))
		line, ok := readLine(ctx, scanner)
		if !ok {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			printlnFn(helpText)

		case "trips", "ls":
			err = a.List(ctx)

		case "new":
			err = a.New(ctx)

		case "view":
			if len(args) != 1 {
				printlnFn("Usage: view <#|id>")
				continue
			}
			err = a.View(ctx, args[0])

		case "edit":
			if len(args) != 1 {
				printlnFn("Usage: edit <#|id>")
				continue
			}
			err = a.Edit(ctx, args[0])

		case "set":
			if len(args) < 1 {
				printlnFn("Usage: set <field> <value>")
				continue
			}
			err = a.Set(ctx, args[0], strings.Join(args[1:], " "))

		case "save":
			err = a.Save(ctx)

		case "delete":
			err = a.Delete(ctx)

		case "cancel", "back":
			err = a.Back(ctx)

		case "upload":
			if len(args) == 0 {
				printlnFn("Usage: upload <path>...")
				continue
			}
			err = a.Upload(ctx, args)

		case "caption":
			if len(args) < 1 {
				printlnFn("Usage: caption <#|id> [text]")
				continue
			}
			err = a.Caption(ctx, args[0], strings.Join(args[1:], " "))

		case "rmphoto":
			if len(args) != 1 {
				printlnFn("Usage: rmphoto <#|id>")
				continue
			}
			err = a.RemovePhoto(ctx, args[0])

		case "refresh":
			err = a.Refresh(ctx)

		case "photos":
			err = a.Photos(ctx)

		case "more":
			err = a.More(ctx)

		case "open":
			if len(args) != 1 {
				printlnFn("Usage: open <#|id>")
				continue
			}
			err = a.Open(ctx, args[0])

		case "next":
			err = a.Next(ctx)

		case "prev":
			err = a.Prev(ctx)

		case "close":
			err = a.Close(ctx)

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

// readLine scans one line, giving up when ctx is done. Only one scan runs at a
// time, so prompts issued by commands can share the scanner.
func readLine(ctx context.Context, scanner *bufio.Scanner) (string, bool) {
	type result struct {
		line string
		ok   bool
	}
	ch := make(chan result, 1)
	go func() {
		ok := scanner.Scan()
		ch <- result{scanner.Text(), ok}
	}()

	select {
	case <-ctx.Done():
		return "", false
	case r := <-ch:
		return r.line, r.ok
	}
}
