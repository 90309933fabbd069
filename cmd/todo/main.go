// todo is a terminal client for the task API. Each command loads the
// list, applies one change and prints the refreshed list.
//
//	todo list
//	todo add --title "Buy milk" [--description "2 litres"]
//	todo edit <id> [--title T] [--description D]
//	todo toggle <id>
//	todo rm <id> [--yes]
//	todo token --user <id> [--email E] [--name N]
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/TWRT/task-board/internal/auth"
	"github.com/TWRT/task-board/internal/client/tasks"
	"github.com/TWRT/task-board/internal/config"
	"github.com/TWRT/task-board/internal/models"
	"github.com/TWRT/task-board/internal/view"
)

var errAlerted = errors.New("request failed")

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errAlerted) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

type stderrAlerter struct {
	w     io.Writer
	count int
}

func (a *stderrAlerter) Alert(message string) {
	a.count++
	fmt.Fprintf(a.w, "alert: %s\n", message)
}

type promptConfirmer struct {
	in        *bufio.Reader
	out       io.Writer
	assumeYes bool
}

func (c *promptConfirmer) Confirm(message string) bool {
	if c.assumeYes {
		return true
	}
	fmt.Fprintf(c.out, "%s [y/N] ", message)
	line, _ := c.in.ReadString('\n')
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var (
		serverURL   string
		token       string
		title       string
		description string
		assumeYes   bool
		userID      string
		email       string
		name        string
	)

	flagSet := pflag.NewFlagSet("todo", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&serverURL, "server", cfg.ServerURL, "task API base URL")
	flagSet.StringVar(&token, "token", cfg.Token, "bearer token")
	flagSet.StringVarP(&title, "title", "t", "", "task title")
	flagSet.StringVarP(&description, "description", "d", "", "task description")
	flagSet.BoolVarP(&assumeYes, "yes", "y", false, "do not ask before deleting")
	flagSet.StringVar(&userID, "user", "", "user id to mint a token for")
	flagSet.StringVar(&email, "email", "", "email claim for the minted token")
	flagSet.StringVar(&name, "name", "", "given name claim for the minted token")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	rest := flagSet.Args()
	if len(rest) == 0 {
		return errors.New("usage: todo <list|add|edit|toggle|rm|token> [flags]")
	}
	command, rest := rest[0], rest[1:]

	if command == "token" {
		if cfg.AuthSecret == "" {
			return errors.New("TODO_AUTH_SECRET is not set")
		}
		signed, err := auth.IssueToken([]byte(cfg.AuthSecret), models.User{
			ID:        userID,
			Email:     email,
			GivenName: name,
		}, cfg.TokenTTL)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, signed)
		return nil
	}

	alerts := &stderrAlerter{w: stderr}
	confirm := &promptConfirmer{in: bufio.NewReader(stdin), out: stdout, assumeYes: assumeYes}
	page := view.NewPage(tasks.NewClient(strings.TrimRight(serverURL, "/"), token), alerts, confirm)

	page.Load(ctx)
	if alerts.count > 0 {
		return errAlerted
	}

	switch command {
	case "list":
	case "add":
		if title == "" && len(rest) > 0 {
			title = strings.Join(rest, " ")
		}
		page.Title = title
		page.Description = description
		page.Submit(ctx)
	case "edit", "toggle", "rm":
		if len(rest) != 1 {
			return fmt.Errorf("usage: todo %s <id>", command)
		}
		task, ok := page.Find(rest[0])
		if !ok {
			return fmt.Errorf("no task with id %s", rest[0])
		}
		switch command {
		case "edit":
			page.StartEdit(task)
			if flagSet.Changed("title") {
				page.Title = title
			}
			if flagSet.Changed("description") {
				page.Description = description
			}
			page.Submit(ctx)
		case "toggle":
			page.ToggleComplete(ctx, task)
		case "rm":
			page.Delete(ctx, task.ID)
		}
	default:
		return fmt.Errorf("unknown command %q", command)
	}

	if err := page.Render(stdout); err != nil {
		return err
	}
	if alerts.count > 0 {
		return errAlerted
	}
	return nil
}
