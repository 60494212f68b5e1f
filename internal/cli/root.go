// Package cli is the todo command line client.
package cli

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"time"

	"todoapp/internal/client"
	"todoapp/internal/config"

	"github.com/spf13/cobra"
)

// Options wires the CLI. API and Sessions are built from Config when nil.
type Options struct {
	Config   *config.ClientConfig
	API      client.API
	Sessions client.SessionStore
	In       io.Reader
	Out      io.Writer
}

type app struct {
	opts   Options
	cfg    config.ClientConfig
	store  *client.Store
	reader *bufio.Reader
}

// NewRootCommand builds the command tree. The store is created once flags are parsed.
func NewRootCommand(opts Options) *cobra.Command {
	if opts.Config == nil {
		opts.Config = config.LoadClient()
	}
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	a := &app{opts: opts, cfg: *opts.Config, reader: bufio.NewReader(opts.In)}

	root := &cobra.Command{
		Use:   "todo",
		Short: "Manage projects and todos",
		Long: `todo talks to the TodoApp API.

Log in once with "todo login"; the session is kept until "todo logout"
or until the server rejects the token.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.SetIn(opts.In)
	root.SetOut(opts.Out)

	root.PersistentFlags().BoolVar(&a.cfg.UseMock, "mock", a.cfg.UseMock, "Use the in-process mock backend")
	root.PersistentFlags().StringVar(&a.cfg.APIURL, "api-url", a.cfg.APIURL, "API base URL")
	root.PersistentFlags().DurationVar(&a.cfg.MockLatency, "mock-latency", a.cfg.MockLatency, "Artificial latency of the mock backend")
	root.PersistentFlags().StringVar(&a.cfg.SessionFile, "session", a.cfg.SessionFile, "Session file")

	root.AddCommand(
		a.registerCommand(),
		a.loginCommand(),
		a.logoutCommand(),
		a.whoamiCommand(),
		a.projectsCommand(),
		a.todosCommand(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	api := a.opts.API
	if api == nil {
		var err error
		if api, err = client.New(a.cfg); err != nil {
			return err
		}
	}

	sessions := a.opts.Sessions
	if sessions == nil {
		sessions = client.NewFileSession(a.cfg.SessionFile)
	}

	a.store = client.NewStore(api, sessions)
	return a.store.Restore()
}

func (a *app) out() io.Writer { return a.opts.Out }

func (a *app) timeout() time.Duration {
	t := a.cfg.Timeout
	if t <= 0 {
		t = 10 * time.Second
	}
	if a.cfg.UseMock {
		t += a.cfg.MockLatency * 2
	}
	return t
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 1 {
		return 0, errInvalidID
	}
	return id, nil
}

// optional returns a pointer to the flag value when the flag was set.
func optional(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}
