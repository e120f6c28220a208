package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cryvora/cryvora/internal/client"
	"github.com/cryvora/cryvora/internal/config"
	"github.com/cryvora/cryvora/internal/dashboard"
	"github.com/cryvora/cryvora/internal/kvstore"
	"github.com/cryvora/cryvora/internal/quickscan"
)

type options struct {
	url      string
	quick    bool
	image    string
	input    string
	platform string
	report   string
	history  bool
	reports  bool
	theme    string
	clear    bool
}

func main() {
	opts := parseFlags()
	dashboard.PrintBanner()
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "[-] Error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() options {
	var opts options
	flag.StringVar(&opts.url, "url", "", "URL to analyze")
	flag.BoolVar(&opts.quick, "quick", false, "run the local quick scan instead of the full pipeline")
	flag.StringVar(&opts.image, "image", "", "path of an image to analyze")
	flag.StringVar(&opts.input, "input", "", "free text for AI analysis")
	flag.StringVar(&opts.platform, "platform", "Twitter", "platform name for AI analysis")
	flag.StringVar(&opts.report, "report", "", "submit a scam report")
	flag.BoolVar(&opts.history, "history", false, "show scan history")
	flag.BoolVar(&opts.reports, "reports", false, "show submitted reports")
	flag.StringVar(&opts.theme, "theme", "", "set theme preference (light/dark)")
	flag.BoolVar(&opts.clear, "clear", false, "clear history and reports")
	flag.Parse()
	return opts
}

func run(opts options) error {
	cfg := loadConfig()

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	state := client.NewLocalState(store)
	api := client.NewAPI(cfg.Client.BaseURL, cfg.Client.RetryCount, cfg.RetryDelay())
	ctx := context.Background()

	switch {
	case opts.clear:
		if err := state.Clear(); err != nil {
			return err
		}
		fmt.Println("Data cleared!")

	case opts.theme != "":
		if err := state.SetTheme(opts.theme); err != nil {
			return err
		}
		fmt.Printf("Theme set to %s\n", opts.theme)

	case opts.report != "":
		entry := client.ReportEntry{Report: opts.report, Timestamp: time.Now()}
		if err := state.AddReport(entry); err != nil {
			return err
		}
		fmt.Println("Report submitted!")

	case opts.history:
		entries, err := state.History()
		if err != nil {
			return err
		}
		dashboard.PrintHistory(entries)

	case opts.reports:
		entries, err := state.Reports()
		if err != nil {
			return err
		}
		dashboard.PrintReports(entries)

	case opts.quick && opts.url != "":
		// purely local, no request leaves the machine
		dashboard.PrintVerdict(quickscan.Scan(opts.url))

	case opts.url != "":
		v, err := api.AnalyzeURL(ctx, opts.url)
		if err != nil {
			return err
		}
		dashboard.PrintVerdict(v)
		return state.AddHistory(client.HistoryEntry{
			Kind:       client.KindURL,
			InputLabel: opts.url,
			Risk:       v.Risk,
			Timestamp:  time.Now(),
		})

	case opts.image != "":
		data, err := os.ReadFile(opts.image)
		if err != nil {
			return err
		}
		v, err := api.AnalyzeImage(ctx, filepath.Base(opts.image), data)
		if err != nil {
			return err
		}
		dashboard.PrintVerdict(v)
		return state.AddHistory(client.HistoryEntry{
			Kind:       client.KindImage,
			InputLabel: filepath.Base(opts.image),
			Risk:       v.Risk,
			Timestamp:  time.Now(),
		})

	case opts.input != "":
		tv, err := api.AnalyzeText(ctx, opts.input, opts.platform)
		if err != nil {
			return err
		}
		dashboard.PrintTextVerdict(tv, opts.platform)

	default:
		stats, err := state.Stats()
		if err != nil {
			return err
		}
		dashboard.PrintStats(stats)
		flag.Usage()
	}

	return nil
}

func loadConfig() *config.Config {
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}
	cfg, err := config.Load(path)
	if err != nil {
		// dashboard runs fine on defaults
		return config.Default()
	}
	return cfg
}

func openStore(cfg *config.Config) (*kvstore.SQLite, error) {
	path := cfg.Client.StorePath
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir := filepath.Join(home, ".cryvora")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "state.db")
	}
	return kvstore.OpenSQLite(path)
}
