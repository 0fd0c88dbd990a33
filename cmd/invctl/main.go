// Command invctl maneja proveedores, materias primas y movimientos de stock
// desde la terminal, con la sesión guardada en SESSION_FILE.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	flag "github.com/spf13/pflag"

	"github.com/jhoicas/inventario-console/internal/application/console"
	"github.com/jhoicas/inventario-console/internal/application/ports"
	"github.com/jhoicas/inventario-console/internal/application/session"
	"github.com/jhoicas/inventario-console/internal/domain"
	"github.com/jhoicas/inventario-console/internal/infrastructure/apiclient"
	"github.com/jhoicas/inventario-console/internal/infrastructure/sessionstore"
	"github.com/jhoicas/inventario-console/pkg/config"
	"github.com/jhoicas/inventario-console/pkg/logger"
)

const usage = `Usage: invctl [--api URL] [--session FILE] [--verbose] <command> [args]

Commands:
  login     --email E --password P
  register  --username U --email E --password P
  logout
  whoami
  suppliers list | create --name N [--phone P]
  materials list | create --name N --quantity Q --unit U --price P
            update <id> [--name N] [--quantity Q] [--unit U] [--price P]
  stock     list [--limit N] | in|out --material ID --supplier ID --quantity Q
`

// Códigos de salida.
const (
	exitOK           = 0
	exitFailure      = 1
	exitUnauthorized = 2
)

// cli estado compartido por los subcomandos.
type cli struct {
	out    io.Writer
	errOut io.Writer
	log    *logger.Logger
	cfg    *config.Config
	store  *session.Store
	client *apiclient.Client
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, out, errOut io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(errOut, "invctl:", err)
		return exitFailure
	}

	fs := flag.NewFlagSet("invctl", flag.ContinueOnError)
	fs.SetInterspersed(false)
	fs.SetOutput(errOut)
	fs.Usage = func() { fmt.Fprint(errOut, usage) }
	apiURL := fs.String("api", cfg.API.BaseURL, "base URL of the inventory API")
	sessionFile := fs.String("session", cfg.CLI.SessionFile, "session file")
	verbose := fs.BoolP("verbose", "v", false, "log API calls to stderr")
	if err := fs.Parse(args); err != nil {
		return exitFailure
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return exitFailure
	}

	level := "warn"
	if *verbose {
		level = "debug"
	}
	log := logger.New(logger.Config{Env: "development", Level: level, Out: errOut})

	c := &cli{
		out:    out,
		errOut: errOut,
		log:    log,
		cfg:    cfg,
		store:  session.NewStore(sessionstore.NewFileStorage(*sessionFile)),
		client: apiclient.New(*apiURL, apiclient.WithLogger(log)),
	}
	c.store.Subscribe(func(s session.Session) {
		log.Debug().Bool("authenticated", s.Authenticated()).Str("file", *sessionFile).Msg("sesión actualizada")
	})

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "login":
		err = c.login(ctx, rest)
	case "register":
		err = c.register(ctx, rest)
	case "logout":
		err = c.logout()
	case "whoami":
		err = c.whoami()
	case "suppliers":
		err = c.withWorkspace(ctx, rest, c.suppliers)
	case "materials":
		err = c.withWorkspace(ctx, rest, c.materials)
	case "stock":
		err = c.withWorkspace(ctx, rest, c.stock)
	case "help", "-h", "--help":
		fs.Usage()
		return exitOK
	default:
		fmt.Fprintf(errOut, "invctl: unknown command %q\n\n", cmd)
		fs.Usage()
		return exitFailure
	}
	return c.exitCode(err)
}

// exitCode imprime el error y elige el código de salida. Un 401 ya limpió la sesión.
func (c *cli) exitCode(err error) int {
	var ce *cliError
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errUsage):
		return exitFailure
	case errors.As(err, &ce):
		fmt.Fprintln(c.errOut, "Error:", ce.msg)
		return exitFailure
	case domain.IsUnauthorized(err), errors.Is(err, domain.ErrWorkspaceClosed):
		fmt.Fprintln(c.errOut, "Session expired. Run `invctl login` again.")
		return exitUnauthorized
	case errors.Is(err, domain.ErrNoSession):
		fmt.Fprintln(c.errOut, "Not logged in. Run `invctl login` first.")
		return exitUnauthorized
	default:
		fmt.Fprintln(c.errOut, "Error:", domain.MessageOf(err))
		c.log.Debug().Err(err).Msg("comando fallido")
		return exitFailure
	}
}

// withWorkspace arma el espacio de trabajo de la sesión guardada; un 401
// borra el archivo de sesión.
func (c *cli) withWorkspace(ctx context.Context, args []string, fn func(context.Context, *console.Workspace, []string) error) error {
	sess := c.store.Read()
	if !sess.Authenticated() {
		return domain.ErrNoSession
	}
	authorize := func(token string, onUnauthorized func()) ports.Transport {
		return apiclient.Authorize(c.client, token, onUnauthorized)
	}
	ws := console.NewWorkspace(authorize, sess.Token, console.Config{TTL: c.cfg.Cache.TTL, Log: c.log})
	ws.OnUnauthorized(func() {
		if err := c.store.Clear(); err != nil {
			c.log.Error().Err(err).Msg("no se pudo borrar la sesión")
		}
	})

	err := fn(ctx, ws, args)
	if ws.IsSessionEnded(err) {
		return domain.ErrUnauthorized
	}
	return err
}
