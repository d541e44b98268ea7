// Command cli runs maintenance tasks against the game database: creating
// and promoting administrators and seeding the starter catalog.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/leotinoco7/supertrunfo/infra"
	"github.com/leotinoco7/supertrunfo/infra/initializer"
	"github.com/leotinoco7/supertrunfo/internal/fixtures/catalog"
	"github.com/leotinoco7/supertrunfo/pkg/app"
	"github.com/leotinoco7/supertrunfo/pkg/authz"
	"github.com/leotinoco7/supertrunfo/pkg/config"
	"github.com/leotinoco7/supertrunfo/pkg/dto"
	"github.com/leotinoco7/supertrunfo/webapi/common"
	userweb "github.com/leotinoco7/supertrunfo/webapi/user"
	"golang.org/x/term"
)

var (
	success = color.New(color.FgGreen, color.Bold)
	failure = color.New(color.FgRed, color.Bold)
	faint   = color.New(color.Faint)
)

const usage = `Usage: cli <command> [arguments]

Commands:
  migrate                                apply pending database migrations
  create-admin <name> <email> <cpf>      create an administrator (password is prompted)
  promote <email>                        grant the admin flag
  demote <email>                         revoke the admin flag
  seed-catalog [cards.csv] [packs.csv]   create the starter collections, cards and packs`

// errUsage is returned for unknown commands and wrong argument counts.
var errUsage = errors.New(usage)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, usage)
			os.Exit(2)
		}
		failure.Fprintln(os.Stderr, "Error:", err) //nolint: errcheck
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin *os.File, stdout io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, rest := args[0], args[1:]
	if err := checkArgs(cmd, rest); err != nil {
		return err
	}

	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger := initializer.SetupLogger(cfg.Log)

	if cmd == "migrate" {
		cfg.DB.Migrate = true
		if _, err := initializer.OpenDatabase(cfg, logger); err != nil {
			return err
		}
		success.Fprintln(stdout, "Migrations applied") //nolint: errcheck
		return nil
	}

	db, err := initializer.OpenDatabase(cfg, logger)
	if err != nil {
		return err
	}
	a := app.New(&app.Deps{Uow: infra.NewUoW(db), Logger: logger}, cfg)

	switch cmd {
	case "create-admin":
		password, err := readPassword(stdin, stdout)
		if err != nil {
			return err
		}
		in, err := adminInput(rest, password)
		if err != nil {
			return err
		}
		u, err := a.UserService.Create(ctx, &dto.UserCreate{
			Name:     in.Name,
			Email:    in.Email,
			CPF:      in.CPF,
			Password: in.Password,
			IsAdmin:  true,
		})
		if err != nil {
			return err
		}
		success.Fprintf(stdout, "Administrator created: %s <%s>\n", u.ID, u.Email) //nolint: errcheck
	case "promote", "demote":
		u, err := a.UserService.SetAdmin(ctx, rest[0], cmd == "promote")
		if err != nil {
			return err
		}
		success.Fprintf(stdout, "%s is admin: %t\n", u.Email, u.IsAdmin) //nolint: errcheck
	case "seed-catalog":
		cardsPath, packsPath := optionalArg(rest, 0), optionalArg(rest, 1)
		seeds, err := catalog.Load(cardsPath, packsPath)
		if err != nil {
			return err
		}
		seeder := &catalog.Seeder{
			Collections: a.CollectionService,
			Cards:       a.CardService,
			Packs:       a.PackService,
			Logger:      logger,
		}
		report, err := seeder.Seed(ctx, seeds, authz.System())
		if err != nil {
			return err
		}
		success.Fprintf(stdout, "Seeded %d collections, %d cards, %d packs\n", //nolint: errcheck
			report.Collections, report.Cards, report.Packs)
		if len(report.Skipped) > 0 {
			faint.Fprintf(stdout, "Skipped existing: %s\n", strings.Join(report.Skipped, ", ")) //nolint: errcheck
		}
	}
	return nil
}

// adminInput applies the same rules as HTTP sign-up to create-admin's
// arguments.
func adminInput(rest []string, password string) (*userweb.NewUser, error) {
	in := &userweb.NewUser{
		Name:     rest[0],
		Email:    rest[1],
		CPF:      rest[2],
		Password: password,
	}
	if err := common.Validator().Struct(in); err != nil {
		return nil, fmt.Errorf("invalid administrator: %w", err)
	}
	return in, nil
}

var argCounts = map[string][2]int{
	"migrate":      {0, 0},
	"create-admin": {3, 3},
	"promote":      {1, 1},
	"demote":       {1, 1},
	"seed-catalog": {0, 2},
}

func checkArgs(cmd string, rest []string) error {
	bounds, ok := argCounts[cmd]
	if !ok || len(rest) < bounds[0] || len(rest) > bounds[1] {
		return errUsage
	}
	return nil
}

func optionalArg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

// readPassword prompts without echo on a terminal and reads one line
// otherwise, so the password can be piped in.
func readPassword(stdin *os.File, stdout io.Writer) (string, error) {
	fmt.Fprint(stdout, "Password: ") //nolint: errcheck
	if term.IsTerminal(int(stdin.Fd())) {
		raw, err := term.ReadPassword(int(stdin.Fd()))
		fmt.Fprintln(stdout) //nolint: errcheck
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}
	return readLine(stdin)
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", errors.New("empty password")
	}
	return line, nil
}
