package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"
	"pokertable-server/internal/config"
	"pokertable-server/pkg/model"
)

var command = flag.String("c", "view", "specifies the command (view, dump, rooms)")
var roomID = flag.String("room", "", "the room ID (view, dump)")
var playerID = flag.String("player", "", "the viewer for view, or the seated player for rooms")

func main() {
	flag.Parse()

	ctx := context.Background()
	store, closeStore, err := model.OpenStore(ctx, config.Instance())
	if err != nil {
		logrus.WithError(err).Fatal("could not open the room store")
	}
	defer func() { _ = closeStore() }()

	if err := run(ctx, store, os.Stdout, *command); err != nil {
		logrus.WithError(err).Fatal("command failed")
	}
}

func run(ctx context.Context, store model.Store, out io.Writer, cmd string) error {
	switch cmd {
	case "view":
		r, err := store.GetRoom(ctx, *roomID)
		if err != nil {
			return err
		}

		return printJSON(out, r.View(*playerID))
	case "dump":
		r, err := store.GetRoom(ctx, *roomID)
		if err != nil {
			return err
		}

		serialized, err := r.Table.Serialize()
		if err != nil {
			return err
		}

		return printJSON(out, serialized)
	case "rooms":
		if *playerID == "" {
			return fmt.Errorf("-player is required")
		}

		rooms, err := store.GetRoomsByPlayerID(ctx, *playerID)
		if err != nil {
			return err
		}

		return printJSON(out, rooms)
	default:
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

// printJSON indents the output when writing to a terminal
func printJSON(out io.Writer, v interface{}) error {
	enc := json.NewEncoder(out)
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		enc.SetIndent("", "  ")
	}

	return enc.Encode(v)
}
