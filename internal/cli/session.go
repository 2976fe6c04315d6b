package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	cliadapter "github.com/example/microdecide/internal/adapters/cli"
	"github.com/example/microdecide/internal/adapters/notify"
	"github.com/example/microdecide/internal/models"
	"github.com/example/microdecide/internal/wire"
)

// SessionCmd returns the session command
func SessionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "session",
		Short: "Start an interactive session",
		Long: `Start an interactive session. Reminders scheduled after generating a
decision are delivered while the session is running. Type 'help' for commands.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunSession(cmd.Context(), wire.Default(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

// syncWriter serializes writes from the prompt loop and the scheduler.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

var promptColor = color.New(color.FgHiMagenta)

const sessionHelp = `Commands:
  next [seed]        generate a decision
  show               show the head of the queue
  accept [id]        accept the head (or id)
  skip [id]          skip the head (or id)
  undo               undo the last accept or skip
  queue              list pending decisions
  history [filter]   list history (all, accepted, skipped)
  status             show tier and usage
  providers          list providers
  enable <id>        enable a provider
  disable <id>       disable a provider
  quit               leave the session`

// RunSession runs the interactive loop until in is exhausted, the user
// quits or ctx is cancelled.
func RunSession(ctx context.Context, c *wire.Container, in io.Reader, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	w := &syncWriter{w: out}

	scheduler := notify.NewScheduler(func(n models.Notification) {
		fmt.Fprintf(w, "\n🔔 %s: %s\n", n.Title, n.Body)
	}, c.Config.Notifications.Enabled, c.Log)
	scheduler.Start()
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		scheduler.Stop(stopCtx)
	}()

	adapter := cliadapter.NewDecisionAdapter(cliadapter.Services{
		Decisions:     c.Decisions,
		Queue:         c.Queue,
		Counter:       c.Counter,
		Settings:      c.Settings,
		Notifications: c.WithNotifier(scheduler),
	}, w)

	who := c.Config.UserID
	if who == "" {
		who = "anonymous"
	}
	fmt.Fprintf(w, "MicroDecide session for %s. Type 'help' for commands.\n", who)

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		fmt.Fprint(w, promptColor.Sprint("> "))
		var line string
		select {
		case <-ctx.Done():
			return nil
		case l, ok := <-lines:
			if !ok {
				fmt.Fprintln(w)
				return nil
			}
			line = l
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "quit" || fields[0] == "exit" {
			fmt.Fprintln(w, "Bye")
			return nil
		}
		if err := dispatch(ctx, adapter, c.Config.UserID, fields); err != nil {
			fmt.Fprintf(w, "%s %v\n", color.New(color.FgRed).Sprint("✗"), err)
		}
	}
}

func dispatch(ctx context.Context, a *cliadapter.DecisionAdapter, userID string, fields []string) error {
	arg := ""
	if len(fields) > 1 {
		arg = fields[1]
	}

	switch fields[0] {
	case "help", "?":
		_, err := fmt.Fprintln(a.Writer(), sessionHelp)
		return err
	case "next", "n":
		var seed *int64
		if arg != "" {
			v, err := strconv.ParseInt(arg, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid seed %q", arg)
			}
			seed = &v
		}
		return a.Next(ctx, userID, seed)
	case "show":
		_, err := a.Show(ctx)
		return err
	case "accept", "a":
		return a.Accept(ctx, arg)
	case "skip", "s":
		return a.Skip(ctx, arg)
	case "undo", "u":
		return a.Undo(ctx)
	case "queue", "q":
		return a.Queue(ctx)
	case "history", "h":
		return a.History(ctx, arg)
	case "status":
		return a.Status(ctx, userID)
	case "providers", "p":
		return a.Providers(ctx)
	case "enable", "disable":
		if arg == "" {
			return fmt.Errorf("usage: %s <provider-id>", fields[0])
		}
		return a.SetProvider(ctx, arg, fields[0] == "enable")
	default:
		return fmt.Errorf("unknown command %q (type 'help')", fields[0])
	}
}
