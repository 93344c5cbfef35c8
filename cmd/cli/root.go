package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/amirasaad/fintrack/infra/initializer"
	"github.com/amirasaad/fintrack/pkg/app"
	"github.com/amirasaad/fintrack/pkg/config"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// env carries what every command shares. The application is opened lazily
// so that commands like migrate only touch the database.
type env struct {
	out          io.Writer
	loadConfig   func() (*config.App, error)
	readPassword func(prompt string) (string, error)

	cfg *config.App
	app *app.App
	res *initializer.Resources
}

func newEnv() *env {
	return &env{
		out: os.Stdout,
		loadConfig: func() (*config.App, error) {
			return config.Load(config.EnvFile())
		},
		readPassword: promptPassword,
	}
}

func newRootCmd(e *env) *cobra.Command {
	root := &cobra.Command{
		Use:           "cli",
		Short:         "Personal finance tracker administration",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SetOut(e.out)
			if e.cfg != nil {
				return nil
			}
			cfg, err := e.loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load application configuration: %w", err)
			}
			e.cfg = cfg
			return nil
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return e.close()
		},
	}
	root.AddCommand(migrateCmd(e))
	root.AddCommand(userCmd(e))
	return root
}

// application initializes dependencies once per process.
func (e *env) application() (*app.App, error) {
	if e.app != nil {
		return e.app, nil
	}
	deps, res, err := initializer.InitializeDependencies(e.cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	a, err := app.New(deps, e.cfg)
	if err != nil {
		_ = res.Close()
		return nil, fmt.Errorf("failed to build application: %w", err)
	}
	e.app, e.res = a, res
	return a, nil
}

func (e *env) close() error {
	if e.res == nil {
		return nil
	}
	err := e.res.Close()
	e.res, e.app = nil, nil
	return err
}

var stdin = bufio.NewReader(os.Stdin)

// promptPassword reads without echo from a terminal, or one line from a pipe.
func promptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt) //nolint:errcheck
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr) //nolint:errcheck
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	line, err := stdin.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
