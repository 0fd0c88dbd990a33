package main

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	flag "github.com/spf13/pflag"

	"github.com/jhoicas/inventario-console/internal/application/console"
	"github.com/jhoicas/inventario-console/internal/application/dto"
	"github.com/jhoicas/inventario-console/internal/domain/entity"
	"github.com/jhoicas/inventario-console/pkg/numfmt"
)

var errUsage = errors.New("uso incorrecto")

func newFlags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {}
	return fs
}

// usageError informa el uso correcto del subcomando.
func (c *cli) usageError(line string) error {
	fmt.Fprintln(c.errOut, "Usage: invctl "+line)
	return errUsage
}

// report imprime el mensaje pendiente del panel (éxito) en stdout.
func (c *cli) report(p interface{ TakeStatus() console.Status }) {
	if st := p.TakeStatus(); !st.IsZero() && !st.IsError() {
		fmt.Fprintln(c.out, st.Message)
	}
}

// ─── Sesión ──────────────────────────────────────────────────────────────────

func (c *cli) login(ctx context.Context, args []string) error {
	fs := newFlags("login")
	var form dto.LoginForm
	fs.StringVar(&form.Email, "email", "", "account email")
	fs.StringVar(&form.Password, "password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return c.usageError("login --email E --password P")
	}

	auth := console.NewAuthForm(c.client, c.store, c.log)
	result, err := auth.Login(ctx, form)
	if err != nil {
		return authError(auth, err)
	}
	c.report(auth)
	fmt.Fprintf(c.out, "Signed in as %s\n", result.User.DisplayName())
	return nil
}

func (c *cli) register(ctx context.Context, args []string) error {
	fs := newFlags("register")
	var form dto.RegisterForm
	fs.StringVar(&form.Username, "username", "", "username")
	fs.StringVar(&form.Email, "email", "", "account email")
	fs.StringVar(&form.Password, "password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return c.usageError("register --username U --email E --password P")
	}

	auth := console.NewAuthForm(c.client, c.store, c.log)
	result, err := auth.Register(ctx, form)
	if err != nil {
		return authError(auth, err)
	}
	c.report(auth)
	fmt.Fprintf(c.out, "Signed in as %s\n", result.User.DisplayName())
	return nil
}

// authError un 401 del login son credenciales inválidas, no una sesión vencida.
func authError(auth *console.AuthForm, err error) error {
	st := auth.TakeStatus()
	if st.IsError() {
		return &cliError{msg: st.Message, err: err}
	}
	return err
}

func (c *cli) logout() error {
	if err := c.store.Clear(); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "Logged out.")
	return nil
}

func (c *cli) whoami() error {
	sess := c.store.Read()
	if !sess.Authenticated() {
		fmt.Fprintln(c.out, "Not logged in.")
		return nil
	}
	fmt.Fprintf(c.out, "Signed in as %s\n", sess.User.DisplayName())
	return nil
}

// ─── Proveedores ─────────────────────────────────────────────────────────────

func (c *cli) suppliers(ctx context.Context, ws *console.Workspace, args []string) error {
	if len(args) == 0 || args[0] == "list" {
		if err := ws.Suppliers.Load(ctx); err != nil {
			return err
		}
		tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tPHONE")
		for _, s := range ws.Suppliers.Items() {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", s.ID, s.Name, s.PhoneNumber)
		}
		return tw.Flush()
	}
	if args[0] != "create" {
		return c.usageError("suppliers list | create --name N [--phone P]")
	}

	fs := newFlags("suppliers create")
	var form dto.SupplierForm
	fs.StringVar(&form.SupplierName, "name", "", "supplier name")
	fs.StringVar(&form.PhoneNumber, "phone", "", "phone number")
	if err := fs.Parse(args[1:]); err != nil {
		return c.usageError("suppliers create --name N [--phone P]")
	}
	created, err := ws.Suppliers.Create(ctx, form)
	if err != nil {
		return err
	}
	c.report(ws.Suppliers)
	fmt.Fprintln(c.out, created.ID)
	return nil
}

// ─── Materias primas ─────────────────────────────────────────────────────────

func materialFlags(fs *flag.FlagSet, form *dto.MaterialForm) {
	fs.StringVar(&form.MaterialName, "name", form.MaterialName, "material name")
	fs.StringVar(&form.Quantity, "quantity", form.Quantity, "quantity (>= 0)")
	fs.StringVar(&form.Unit, "unit", form.Unit, "unit (kg, pcs...)")
	fs.StringVar(&form.UnitPrice, "price", form.UnitPrice, "unit price (>= 0)")
}

func (c *cli) materials(ctx context.Context, ws *console.Workspace, args []string) error {
	sub := "list"
	if len(args) > 0 {
		sub, args = args[0], args[1:]
	}
	switch sub {
	case "list":
		if err := ws.Materials.Load(ctx); err != nil {
			return err
		}
		tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tQUANTITY\tUNIT\tUNIT PRICE")
		for _, m := range ws.Materials.Items() {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", m.ID, m.Name, numfmt.Quantity(m.Quantity), m.Unit, numfmt.Money(m.UnitPrice))
		}
		return tw.Flush()

	case "create":
		fs := newFlags("materials create")
		var form dto.MaterialForm
		materialFlags(fs, &form)
		if err := fs.Parse(args); err != nil {
			return c.usageError("materials create --name N --quantity Q --unit U --price P")
		}
		created, err := ws.Materials.Create(ctx, form)
		if err != nil {
			return err
		}
		c.report(ws.Materials)
		fmt.Fprintln(c.out, created.ID)
		return nil

	case "update":
		if len(args) == 0 {
			return c.usageError("materials update <id> [--name N] [--quantity Q] [--unit U] [--price P]")
		}
		id := args[0]
		if err := ws.Materials.Load(ctx); err != nil {
			return err
		}
		// los campos no indicados conservan el valor actual
		form, ok := ws.Materials.Edit(id)
		if !ok {
			return &cliError{msg: fmt.Sprintf("Raw material %q not found.", id)}
		}
		fs := newFlags("materials update")
		materialFlags(fs, &form)
		if err := fs.Parse(args[1:]); err != nil {
			return c.usageError("materials update <id> [--name N] [--quantity Q] [--unit U] [--price P]")
		}
		if _, err := ws.Materials.Update(ctx, id, form); err != nil {
			return err
		}
		c.report(ws.Materials)
		return nil
	}
	return c.usageError("materials list | create | update <id>")
}

// ─── Movimientos ─────────────────────────────────────────────────────────────

func (c *cli) stock(ctx context.Context, ws *console.Workspace, args []string) error {
	sub := "list"
	if len(args) > 0 {
		sub, args = args[0], args[1:]
	}
	switch sub {
	case "list":
		fs := newFlags("stock list")
		limit := fs.IntP("limit", "n", console.RecentLimit, "rows per direction")
		if err := fs.Parse(args); err != nil {
			return c.usageError("stock list [--limit N]")
		}
		if err := ws.Movements.Load(ctx); err != nil {
			return err
		}
		if err := ws.Refresh(ctx); err != nil {
			return err
		}
		refs := ws.References()
		tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "DIRECTION\tID\tMATERIAL\tSUPPLIER\tQUANTITY")
		for _, dir := range []string{entity.DirectionIn, entity.DirectionOut} {
			sign := "+"
			if dir == entity.DirectionOut {
				sign = "-"
			}
			for _, m := range ws.Movements.Recent(dir, *limit) {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s%s\n", dir, m.ID,
					label(m.Material, refs.MaterialName), label(m.Supplier, refs.SupplierName),
					sign, numfmt.Quantity(m.Quantity))
			}
		}
		return tw.Flush()

	case "in", "out":
		fs := newFlags("stock " + sub)
		var form dto.MovementForm
		fs.StringVar(&form.MaterialID, "material", "", "raw material id")
		fs.StringVar(&form.SupplierID, "supplier", "", "supplier id")
		fs.StringVar(&form.Quantity, "quantity", "", "quantity (> 0)")
		if err := fs.Parse(args); err != nil {
			return c.usageError("stock " + sub + " --material ID --supplier ID --quantity Q")
		}
		record := ws.Movements.RecordStockIn
		if sub == "out" {
			record = ws.Movements.RecordStockOut
		}
		created, err := record(ctx, form)
		if err != nil {
			return err
		}
		c.report(ws.Movements)
		fmt.Fprintln(c.out, created.ID)
		return nil
	}
	return c.usageError("stock list | in | out")
}

// label nombre poblado del movimiento o, si no vino, el de las referencias.
func label(ref entity.Ref, lookup func(string) string) string {
	if ref.Name != "" {
		return ref.Name
	}
	return lookup(ref.ID)
}

// cliError falla con un mensaje listo para mostrar.
type cliError struct {
	msg string
	err error
}

func (e *cliError) Error() string { return e.msg }

func (e *cliError) Unwrap() error { return e.err }
