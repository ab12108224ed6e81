// Command mdctl is the operator CLI: migrations, seeding and account provisioning.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/and161185/medidesk/internal/authz"
	"github.com/and161185/medidesk/internal/errs"
	"github.com/and161185/medidesk/internal/migrate"
	"github.com/and161185/medidesk/internal/model"
	"github.com/and161185/medidesk/internal/repository/postgres"
	"github.com/and161185/medidesk/internal/service"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// errUsage signals bad command-line input; main exits with status 2.
var errUsage = errors.New("usage")

// app carries the side-effecting dependencies so commands can be tested.
type app struct {
	out     io.Writer
	dsn     string
	openDB  func(ctx context.Context, dsn string) (*postgres.DB, error)
	migrate func(ctx context.Context, dsn string) error
	version func(ctx context.Context, dsn string) (int64, error)
}

func newApp(out io.Writer, dsn string) *app {
	return &app{
		out: out,
		dsn: dsn,
		openDB: func(ctx context.Context, dsn string) (*postgres.DB, error) {
			return postgres.New(ctx, dsn, 2)
		},
		migrate: migrate.Up,
		version: migrate.Version,
	}
}

func usage(w io.Writer) {
	fmt.Fprintf(w, `mdctl
Usage:
  mdctl [-dsn URL] <cmd> [args]

Commands:
  version
  migrate        [-status]
  seed           -email <admin e-mail> -password <pwd>
  create-user    -email <e-mail> -password <pwd> [-name <name>] [-role ADMIN|CLIENT]
  assign-product -user <id> -product <id>
`)
}

// main dispatches subcommands against the database named by -dsn or MEDIDESK_DATABASE_URL.
func main() {
	_ = godotenv.Load()

	dsn := flag.String("dsn", os.Getenv("MEDIDESK_DATABASE_URL"), "PostgreSQL DSN")
	flag.Usage = func() { usage(os.Stderr) }
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	err := newApp(os.Stdout, *dsn).run(ctx, flag.Args())
	switch {
	case errors.Is(err, errUsage):
		fmt.Fprintln(os.Stderr, err)
		usage(os.Stderr)
		cancel()
		os.Exit(2)
	case err != nil:
		fmt.Fprintln(os.Stderr, "error:", err)
		cancel()
		os.Exit(1)
	}
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: missing command", errUsage)
	}
	cmd, rest := args[0], args[1:]
	if cmd == "version" {
		fmt.Fprintf(a.out, "mdctl %s (%s)\n", version, buildDate)
		return nil
	}
	if a.dsn == "" {
		return fmt.Errorf("%w: -dsn or MEDIDESK_DATABASE_URL is required", errUsage)
	}

	switch cmd {
	case "migrate":
		return a.cmdMigrate(ctx, rest)
	case "seed":
		return a.cmdSeed(ctx, rest)
	case "create-user":
		return a.cmdCreateUser(ctx, rest)
	case "assign-product":
		return a.cmdAssignProduct(ctx, rest)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

func (a *app) cmdMigrate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	status := fs.Bool("status", false, "print the applied version only")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if !*status {
		if err := a.migrate(ctx, a.dsn); err != nil {
			return err
		}
	}
	v, err := a.version(ctx, a.dsn)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "schema version %d\n", v)
	return nil
}

// cmdSeed migrates and provisions the first ADMIN account. An existing
// account with the same e-mail is left untouched.
func (a *app) cmdSeed(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	email := fs.String("email", "", "admin e-mail")
	password := fs.String("password", "", "admin password")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if *email == "" || *password == "" {
		return fmt.Errorf("%w: need -email and -password", errUsage)
	}
	if err := a.migrate(ctx, a.dsn); err != nil {
		return err
	}
	return a.withDB(ctx, func(db *postgres.DB) error {
		u, err := authService(db).CreateUser(ctx, *email, "Administrateur", *password, model.RoleAdmin)
		if errors.Is(err, errs.ErrAlreadyExists) {
			fmt.Fprintf(a.out, "admin %s already present\n", strings.ToLower(*email))
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "admin %s created with id %d\n", u.Email, u.ID)
		return nil
	})
}

func (a *app) cmdCreateUser(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("create-user", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	email := fs.String("email", "", "e-mail")
	password := fs.String("password", "", "password")
	name := fs.String("name", "", "display name")
	role := fs.String("role", string(model.RoleClient), "ADMIN or CLIENT")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if *email == "" || *password == "" {
		return fmt.Errorf("%w: need -email and -password", errUsage)
	}
	r, ok := model.ParseRole(*role)
	if !ok {
		return fmt.Errorf("%w: unknown role %q", errUsage, *role)
	}
	return a.withDB(ctx, func(db *postgres.DB) error {
		u, err := authService(db).CreateUser(ctx, *email, *name, *password, r)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "%d\n", u.ID)
		return nil
	})
}

func (a *app) cmdAssignProduct(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("assign-product", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	userID := fs.Int64("user", 0, "user id")
	productID := fs.Int64("product", model.ProductVoiceAssistant, "product id")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if *userID <= 0 || *productID <= 0 {
		return fmt.Errorf("%w: need -user and -product", errUsage)
	}
	return a.withDB(ctx, func(db *postgres.DB) error {
		products := postgres.NewUserProductRepo(db)
		svc := service.NewProductService(products, authz.NewGuard(products, postgres.NewNumberRepo(db)))
		p, err := svc.Link(ctx, *userID, *productID)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "%d\n", p.ID)
		return nil
	})
}

func (a *app) withDB(ctx context.Context, fn func(db *postgres.DB) error) error {
	db, err := a.openDB(ctx, a.dsn)
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(db)
}

// authService builds an AuthService for provisioning only; it never logs anyone in.
func authService(db *postgres.DB) *service.AuthServiceImpl {
	return service.NewAuthService(postgres.NewUserRepo(db), nil, nil)
}
