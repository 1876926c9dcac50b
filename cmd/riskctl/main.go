// Command riskctl scores a single location from the command line and loads
// the district rank CSV into the reference database.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/tn-risk-atlas/risk-atlas/internal/catalog"
	"github.com/tn-risk-atlas/risk-atlas/internal/db"
	"github.com/tn-risk-atlas/risk-atlas/internal/provider"
	"github.com/tn-risk-atlas/risk-atlas/internal/refdata"
	"github.com/tn-risk-atlas/risk-atlas/internal/risk"
	"github.com/tn-risk-atlas/risk-atlas/internal/scheme"
)

const usage = `usage: riskctl <command> [flags]

commands:
  score          assess one district/block/panchayat
  import-ranks   upsert a district rank CSV into the reference database
`

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}
	var err error
	switch args[0] {
	case "score":
		err = runScore(ctx, args[1:], stdout, stderr)
	case "import-ranks":
		err = runImport(ctx, args[1:], stdout, stderr)
	case "-h", "--help", "help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n%s", args[0], usage)
		return 2
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return 1
	}
	return 0
}

func runScore(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("score", flag.ContinueOnError)
	fs.SetOutput(stderr)
	ranksPath := fs.String("ranks", "data/district_ranks.csv", "Path to district rank CSV (empty for defaults)")
	district := fs.String("district", "", "District name")
	block := fs.String("block", "", "Block name")
	panchayat := fs.String("panchayat", "", "Panchayat name")
	inputsFlag := fs.String("inputs", "", "Beneficiary counts: magalir_urimai,old_age_pension,mgnrega,pongal_gift")
	providerName := fs.String("provider", "defaults", "Input provider when -inputs is empty: defaults|random")
	seed := fs.Int64("seed", 1, "Seed for the random provider")
	asJSON := fs.Bool("json", false, "Write the assessment as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*district) == "" {
		return fmt.Errorf("district is required")
	}
	in, err := parseInputs(*inputsFlag)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	table := refdata.Empty()
	if *ranksPath != "" {
		table, err = readTable(*ranksPath, stderr)
		if err != nil {
			logger.Warn("reference data unavailable; using default ranks", "error", err)
			table = refdata.Empty()
		}
	}
	var p provider.InputProvider = provider.RankDefaults{}
	if *providerName == "random" {
		p = provider.NewRandom(*seed)
	}
	svc, err := risk.NewService(risk.Deps{Table: table, Provider: p, Logger: logger})
	if err != nil {
		return err
	}
	a, err := svc.Assess(ctx, risk.Request{
		Location: catalog.Location{District: *district, Block: *block, Panchayat: *panchayat},
		Inputs:   in,
	})
	if err != nil {
		return err
	}
	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(a)
	}
	printAssessment(stdout, a)
	return nil
}

func runImport(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("import-ranks", flag.ContinueOnError)
	fs.SetOutput(stderr)
	csvPath := fs.String("csv", "data/district_ranks.csv", "Path to district rank CSV")
	driver := fs.String("db-driver", envOr("DB_DRIVER", "sqlite"), "Database driver: sqlite|postgres")
	dsn := fs.String("db-dsn", os.Getenv("DB_DSN"), "Database DSN")
	if err := fs.Parse(args); err != nil {
		return err
	}
	table, err := readTable(*csvPath, stderr)
	if err != nil {
		return err
	}
	dbh, err := db.Open(ctx, db.Driver(*driver), *dsn)
	if err != nil {
		return fmt.Errorf("db open: %w", err)
	}
	defer dbh.Close()
	n, err := refdata.ImportSQL(ctx, dbh, table)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "imported %d ranks for %d districts\n", n, table.Len())
	return nil
}

func readTable(path string, stderr io.Writer) (*refdata.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	table, warnings, err := refdata.ParseCSV(f)
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		fmt.Fprintf(stderr, "Warning: %s\n", w)
	}
	return table, nil
}

// parseInputs reads four comma-separated counts in canonical scheme order.
// An empty value means the provider supplies them.
func parseInputs(s string) (scheme.Inputs, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != len(scheme.All) {
		return nil, fmt.Errorf("inputs: want %d counts, got %d", len(scheme.All), len(parts))
	}
	in := make(scheme.Inputs, len(scheme.All))
	for i, id := range scheme.All {
		n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil {
			return nil, fmt.Errorf("inputs: %s: %w", id, err)
		}
		in[id] = n
	}
	return in, nil
}

func printAssessment(w io.Writer, a risk.Assessment) {
	fmt.Fprintf(w, "Location: %s (%s)\n", a.Location.Name(), a.Location.District)
	fmt.Fprintf(w, "Resilience score: %d (%+d) %s\n", a.FinalRiskScore, a.Delta, a.TierLabel)
	fmt.Fprintf(w, "Welfare score: %d  District rank score: %d  Avg rank: %d\n",
		a.WelfareScore, a.DistrictRankScore, a.AvgDistrictRank)
	fmt.Fprintln(w, "Schemes:")
	for _, id := range scheme.All {
		fmt.Fprintf(w, "- %-16s beneficiaries %6d  rank %2d\n", id.Display(), a.Inputs[id], a.Ranks[id])
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, a.Explanation)
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
