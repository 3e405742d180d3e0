package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/pflag"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/crewlane/go-board"
)

func main() {
	var (
		addr = pflag.String("addr", envOr("BOARD_ADDR", ":3001"), "listen address")
		dsn  = pflag.String("db", envOr("BOARD_DB", "file:board.db?cache=shared&_pragma=foreign_keys(1)"), "sqlite DSN")
		seed = pflag.Bool("seed", false, "seed demo users and tickets")
	)
	pflag.Parse()

	// The signing secret is a startup-time requirement. Running without one
	// would mean issuing tokens that anyone can forge.
	secret := os.Getenv("BOARD_JWT_SECRET")
	if secret == "" {
		log.Fatal("boardd: BOARD_JWT_SECRET must be set")
	}

	if err := run(*addr, *dsn, secret, *seed); err != nil {
		log.Fatalf("boardd: %v", err)
	}
}

func run(addr, dsn, secret string, seed bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	db := bun.NewDB(sqldb, sqlitedialect.New())
	defer db.Close()

	if err := createSchema(ctx, db); err != nil {
		return err
	}

	users := board.NewUsersRepository(db)
	tickets := board.NewTicketsRepository(db)

	if seed {
		if err := seedDemoData(ctx, users, tickets); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}

	cfg := board.SimpleConfig{SigningKey: secret}

	auther, err := board.NewAuthenticator(board.NewUserProvider(users), cfg)
	if err != nil {
		return err
	}

	app := fiber.New(fiber.Config{AppName: "boardd"})

	board.RegisterRoutes(app,
		board.NewAuthController(auther),
		board.NewTicketController(tickets, users),
		board.ProtectedRoute(cfg, auther.TokenService()),
	)

	errc := make(chan error, 1)
	go func() {
		errc <- app.Listen(addr)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		log.Println("boardd: shutting down")
		return app.ShutdownWithTimeout(5 * time.Second)
	}
}

func createSchema(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*board.User)(nil),
		(*board.Ticket)(nil),
	}

	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}

	return nil
}

func seedDemoData(ctx context.Context, users board.Users, tickets board.Tickets) error {
	if _, err := users.GetByUsername(ctx, "alice"); err == nil {
		return nil // already seeded
	}

	demoUsers := map[string]string{
		"alice": "secret1",
		"bob":   "secret2",
		"carol": "secret3",
	}

	ids := map[string]int64{}
	for username, password := range demoUsers {
		hash, err := board.HashPassword(password)
		if err != nil {
			return err
		}
		u, err := users.Create(ctx, &board.User{Username: username, PasswordHash: hash})
		if err != nil {
			return err
		}
		ids[username] = u.ID
	}

	// placeholder assignee nobody can log in as
	sweeper, err := users.Create(ctx, &board.User{
		Username:     "sweeper",
		PasswordHash: board.RandomPasswordHash(),
	})
	if err != nil {
		return err
	}

	aliceID, bobID := ids["alice"], ids["bob"]
	demoTickets := []*board.Ticket{
		{Name: "Design landing page", Description: "Hero plus pricing table", Status: board.StatusTodo, AssignedUserID: &aliceID},
		{Name: "Fix login redirect", Description: "Send users home after auth", Status: board.StatusInProgress, AssignedUserID: &bobID},
		{Name: "Write release notes", Description: "Cover the sync changes", Status: board.StatusDone},
		{Name: "Prune closed tickets", Description: "Monthly board cleanup", Status: board.StatusTodo, AssignedUserID: &sweeper.ID},
	}

	for _, t := range demoTickets {
		if _, err := tickets.Create(ctx, t); err != nil {
			return err
		}
	}

	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
