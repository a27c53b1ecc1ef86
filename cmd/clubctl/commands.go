package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/subcommands"

	"github.com/ndewijer/Investment-Club-Backend/internal/app"
	"github.com/ndewijer/Investment-Club-Backend/internal/auth"
	"github.com/ndewijer/Investment-Club-Backend/internal/config"
	"github.com/ndewijer/Investment-Club-Backend/internal/database"
	"github.com/ndewijer/Investment-Club-Backend/internal/logging"
	"github.com/ndewijer/Investment-Club-Backend/internal/model"
	"github.com/ndewijer/Investment-Club-Backend/internal/service"
)

var commands = []subcommands.Command{
	&migrateCmd{},
	&summaryCmd{},
	&syncPricesCmd{},
	&exportCmd{},
	&tokenCmd{},
	&genKeyCmd{},
}

// openApp loads configuration and builds the application, printing any error.
func openApp(ctx context.Context) (*app.App, bool) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return nil, false
	}
	logging.Setup(cfg.Log)

	a, err := app.New(ctx, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return nil, false
	}
	return a, true
}

type migrateCmd struct{}

func (*migrateCmd) Name() string     { return "migrate" }
func (*migrateCmd) Synopsis() string { return "apply pending database migrations" }
func (*migrateCmd) Usage() string {
	return `clubctl migrate

  Applies every pending schema migration to the configured database.
`
}
func (*migrateCmd) SetFlags(*flag.FlagSet) {}

func (*migrateCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	logging.Setup(cfg.Log)

	db, err := database.Open(cfg.Database)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer db.Close()

	if err := database.Migrate(ctx, db.DB, cfg.Database.Driver); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Println("database is up to date")
	return subcommands.ExitSuccess
}

type summaryCmd struct {
	members bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "print the group valuation" }
func (*summaryCmd) Usage() string {
	return `clubctl summary [-members]

  Values every position at the cached prices and prints the group totals.
  With -members, each contributing member's share is printed as well.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.members, "members", false, "Also print every member's share.")
}

func (c *summaryCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	a, ok := openApp(ctx)
	if !ok {
		return subcommands.ExitFailure
	}
	defer a.Close()

	group, _, err := a.Services.Dashboard.ComputeGroup(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, row := range []struct {
		label string
		value float64
	}{
		{"Total capital", group.TotalCapital},
		{"Cash balance", group.CashBalance},
		{"Invested", group.InvestedAmount},
		{"Holdings value", group.CurrentHoldingsValue},
		{"Total value", group.TotalCurrentValue},
		{"Total profit", group.TotalProfit},
	} {
		fmt.Fprintf(w, "%s\t%s\t\n", row.label, service.FormatAmount(row.value))
	}
	w.Flush()

	if !c.members {
		return subcommands.ExitSuccess
	}

	shares, err := a.Services.Dashboard.GetMemberShares(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	members, err := a.Services.Member.ListMembers(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	names := make(map[string]string, len(members))
	for _, m := range members {
		names[m.ID] = m.FullName
	}

	fmt.Println()
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Member\tShare\tValue\tProfit")
	for _, s := range shares {
		name := names[s.MemberID]
		if name == "" {
			name = s.MemberID
		}
		fmt.Fprintf(w, "%s\t%.2f%%\t%s\t%s\n", name, s.ShareFraction*100, service.FormatAmount(s.CurrentValue), service.FormatAmount(s.Profit))
	}
	w.Flush()

	return subcommands.ExitSuccess
}

type syncPricesCmd struct{}

func (*syncPricesCmd) Name() string     { return "sync-prices" }
func (*syncPricesCmd) Synopsis() string { return "run one price sync cycle" }
func (*syncPricesCmd) Usage() string {
	return `clubctl sync-prices

  Fetches quotes for held symbols whose cached price is stale and stores them.
`
}
func (*syncPricesCmd) SetFlags(*flag.FlagSet) {}

func (*syncPricesCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	a, ok := openApp(ctx)
	if !ok {
		return subcommands.ExitFailure
	}
	defer a.Close()

	updated := a.Services.PriceSync.Sync(ctx)
	status := a.Services.PriceSync.Status()
	if last := status.LastSync; last != nil {
		fmt.Printf("checked %d, stale %d, updated %d, missing %v\n", last.Checked, len(last.Stale), len(last.Updated), last.Missing)
	}
	if !updated {
		fmt.Println("no prices were updated")
	}
	return subcommands.ExitSuccess
}

type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "write the valuation workbook to a file" }
func (*exportCmd) Usage() string {
	return `clubctl export -o <file.xlsx>

  Writes the Summary, Positions, Members and Contributions sheets to an xlsx file.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "investment-club.xlsx", "Output file.")
}

func (c *exportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	a, ok := openApp(ctx)
	if !ok {
		return subcommands.ExitFailure
	}
	defer a.Close()

	f, err := a.Services.Report.BuildWorkbook(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	if err := f.SaveAs(c.output); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write %s: %v\n", c.output, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("wrote %s\n", c.output)
	return subcommands.ExitSuccess
}

type tokenCmd struct {
	user  string
	email string
	role  string
}

func (*tokenCmd) Name() string     { return "token" }
func (*tokenCmd) Synopsis() string { return "mint an identity token" }
func (*tokenCmd) Usage() string {
	return `clubctl token -user <id> [-email <email>] [-role admin|member]

  Mints a token with the first AUTH_FERNET_KEYS key. Useful for local
  development and for scripting against the API.
`
}

func (c *tokenCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.user, "user", "", "User ID (required).")
	f.StringVar(&c.email, "email", "", "Email address carried in the token.")
	f.StringVar(&c.role, "role", string(model.RoleMember), "Role claimed in the token.")
}

func (c *tokenCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if c.user == "" {
		fmt.Fprintln(os.Stderr, "-user is required")
		return subcommands.ExitUsageError
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	codec, err := auth.NewCodec(cfg.Auth)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	tok, err := codec.Issue(auth.Session{UserID: c.user, Email: c.email, Role: model.Role(c.role)})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Println(tok)
	return subcommands.ExitSuccess
}

type genKeyCmd struct{}

func (*genKeyCmd) Name() string     { return "genkey" }
func (*genKeyCmd) Synopsis() string { return "generate a new token signing key" }
func (*genKeyCmd) Usage() string {
	return `clubctl genkey

  Prints a random key suitable for AUTH_FERNET_KEYS.
`
}
func (*genKeyCmd) SetFlags(*flag.FlagSet) {}

func (*genKeyCmd) Execute(context.Context, *flag.FlagSet, ...any) subcommands.ExitStatus {
	key, err := auth.GenerateKey()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Println(key)
	return subcommands.ExitSuccess
}
