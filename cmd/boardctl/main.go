package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/crewlane/go-board"
	"github.com/crewlane/go-board/client"
)

const usage = `usage: boardctl [--server URL] <command> [flags]

commands:
  login     authenticate and store the session token
  logout    clear the stored session token
  whoami    show the current session
  list      list tickets, optionally filtered and sorted
  create    create a ticket
  edit      edit a ticket by id
  delete    delete a ticket by id
  users     list users for the assignee picker
`

func main() {
	flags := pflag.NewFlagSet("boardctl", pflag.ExitOnError)
	server := flags.String("server", envOr("BOARD_SERVER", "http://localhost:3001"), "board server URL")
	flags.SetInterspersed(false)
	flags.Usage = func() { fmt.Fprint(os.Stderr, usage) }

	args := os.Args[1:]
	if err := flags.Parse(args); err != nil {
		os.Exit(2)
	}

	rest := flags.Args()
	if len(rest) == 0 {
		flags.Usage()
		os.Exit(2)
	}

	store, err := defaultTokenStore()
	if err != nil {
		fatal(err)
	}

	guard := client.NewSessionGuard(store)
	api := client.NewAPIClient(*server, guard)
	b := client.NewBoard(api, guard)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch rest[0] {
	case "login":
		err = cmdLogin(ctx, api, guard, rest[1:])
	case "logout":
		guard.Logout()
		fmt.Println("logged out")
	case "whoami":
		err = cmdWhoami(guard)
	case "list":
		err = cmdList(ctx, b, rest[1:])
	case "create":
		err = cmdCreate(ctx, b, rest[1:])
	case "edit":
		err = cmdEdit(ctx, b, rest[1:])
	case "delete":
		err = cmdDelete(ctx, b, rest[1:])
	case "users":
		err = cmdUsers(ctx, api)
	default:
		flags.Usage()
		os.Exit(2)
	}

	if err != nil {
		fatal(err)
	}
}

func cmdLogin(ctx context.Context, api *client.APIClient, guard *client.SessionGuard, args []string) error {
	flags := pflag.NewFlagSet("login", pflag.ExitOnError)
	username := flags.StringP("username", "u", "", "username")
	password := flags.StringP("password", "p", "", "password (prompted when omitted)")
	if err := flags.Parse(args); err != nil {
		return err
	}

	if *username == "" {
		return fmt.Errorf("login: --username is required")
	}

	if *password == "" {
		fmt.Fprint(os.Stderr, "password: ")
		raw, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		*password = string(raw)
	}

	token, err := api.Login(ctx, *username, *password)
	if err != nil {
		return err
	}

	guard.Login(token)
	fmt.Printf("logged in as %s\n", *username)
	return nil
}

func cmdWhoami(guard *client.SessionGuard) error {
	if !guard.LoggedIn() {
		fmt.Println("not logged in")
		return nil
	}

	profile := guard.Profile()
	fmt.Printf("%s (expires %s)\n", profile.Username(), profile.Expires().Format(time.RFC1123))
	return nil
}

func cmdList(ctx context.Context, b *client.Board, args []string) error {
	flags := pflag.NewFlagSet("list", pflag.ExitOnError)
	assignee := flags.String("assignee", "", "filter by assignee username")
	status := flags.String("status", "", "filter by status (Todo, In Progress, Done)")
	sortDir := flags.String("sort", "asc", "sort by assignee: asc or desc")
	if err := flags.Parse(args); err != nil {
		return err
	}

	var bucket board.TicketStatus
	if *status != "" {
		parsed, err := board.ParseTicketStatus(*status)
		if err != nil {
			return err
		}
		bucket = parsed
	}

	dir := client.SortAscending
	if strings.EqualFold(*sortDir, "desc") {
		dir = client.SortDescending
	}

	b.SetUserFilter(*assignee)
	b.SetSortDirection(dir)

	if _, err := b.FetchAll(ctx); err != nil {
		return err
	}

	tickets := b.Tickets()
	if bucket != "" {
		tickets = b.Lane(bucket)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSTATUS\tASSIGNEE")
	for _, t := range tickets {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", t.ID, t.Name, t.Status, t.AssigneeUsername())
	}
	return w.Flush()
}

func cmdCreate(ctx context.Context, b *client.Board, args []string) error {
	flags := pflag.NewFlagSet("create", pflag.ExitOnError)
	name := flags.String("name", "", "ticket name")
	desc := flags.String("description", "", "ticket description")
	status := flags.String("status", "", "ticket status (defaults to Todo)")
	assigneeID := flags.Int64("assignee-id", 0, "assigned user id")
	if err := flags.Parse(args); err != nil {
		return err
	}

	payload := board.NewTicketRequest{
		Name:        *name,
		Description: *desc,
		Status:      *status,
	}
	if *assigneeID > 0 {
		payload.AssignedUserID = assigneeID
	}

	created, err := b.Create(ctx, payload)
	if err != nil {
		return err
	}

	fmt.Printf("created ticket %d\n", created.ID)
	return nil
}

func cmdEdit(ctx context.Context, b *client.Board, args []string) error {
	flags := pflag.NewFlagSet("edit", pflag.ExitOnError)
	name := flags.String("name", "", "ticket name")
	desc := flags.String("description", "", "ticket description")
	status := flags.String("status", "", "ticket status")
	assigneeID := flags.Int64("assignee-id", 0, "assigned user id")
	if err := flags.Parse(args); err != nil {
		return err
	}

	rest := flags.Args()
	if len(rest) != 1 {
		return fmt.Errorf("edit: expected exactly one ticket id")
	}

	id, err := strconv.ParseInt(rest[0], 10, 64)
	if err != nil {
		return fmt.Errorf("edit: invalid ticket id %q", rest[0])
	}

	payload := board.NewTicketRequest{
		Name:        *name,
		Description: *desc,
		Status:      *status,
	}
	if *assigneeID > 0 {
		payload.AssignedUserID = assigneeID
	}

	updated, err := b.Update(ctx, id, payload)
	if err != nil {
		return err
	}

	fmt.Printf("updated ticket %d\n", updated.ID)
	return nil
}

func cmdUsers(ctx context.Context, api *client.APIClient) error {
	users, err := api.Users(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tUSERNAME")
	for _, u := range users {
		fmt.Fprintf(w, "%d\t%s\n", u.ID, u.Username)
	}
	return w.Flush()
}

func cmdDelete(ctx context.Context, b *client.Board, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("delete: expected exactly one ticket id")
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("delete: invalid ticket id %q", args[0])
	}

	if err := b.Delete(ctx, id); err != nil {
		return err
	}

	fmt.Printf("deleted ticket %d\n", id)
	return nil
}

func defaultTokenStore() (client.TokenStore, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("resolve config dir: %w", err)
	}
	return client.NewFileTokenStore(filepath.Join(dir, "boardctl"))
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "boardctl: %v\n", err)
	os.Exit(1)
}
