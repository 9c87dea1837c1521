// Command netaudit audits network device configurations against a golden
// template and reports compliance violations per device.
//
// Usage:
//
//	netaudit --template baseline.yaml --configs ./configs --devices R1,R2
//	netaudit --template baseline.yaml --simulate          # built-in sample fleet
//	netaudit --config netaudit.yaml --tui                 # full run config + viewer
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/netaudit/netaudit/internal/compliance"
	"github.com/netaudit/netaudit/internal/config"
	tuireport "github.com/netaudit/netaudit/internal/tui/report"
	"github.com/netaudit/netaudit/pkg/buildinfo"
	"github.com/netaudit/netaudit/pkg/device"
	"github.com/netaudit/netaudit/pkg/fleet"
)

func main() {
	configPath := flag.String("config", "", "path to netaudit run configuration (YAML)")
	templatePath := flag.String("template", "", "path to golden-configuration template (overrides config)")
	configDir := flag.String("configs", "", "directory of saved device configs (overrides config)")
	devicesFlag := flag.String("devices", "", "comma-separated device identifiers (overrides config)")
	simulate := flag.Bool("simulate", false, "audit the built-in sample fleet")
	limit := flag.Int("limit", 0, "max concurrent device audits")
	exportDir := flag.String("export", "", "write a timestamped YAML report into this directory")
	historyDB := flag.String("history", "", "SQLite run-history database path")
	tui := flag.Bool("tui", false, "open the interactive report viewer")
	jsonOutput := flag.Bool("json", false, "print the fleet report as JSON")
	version := flag.Bool("version", false, "print version and exit")

	flag.Parse()

	if *version {
		fmt.Println(buildinfo.String())
		os.Exit(0)
	}

	logger := log.New(os.Stderr, "[netaudit] ", log.LstdFlags)

	cfg := &config.Config{}
	if *configPath != "" {
		loaded, err := config.ReadConfig(*configPath)
		if err != nil {
			logger.Fatalf("load config: %v", err)
		}
		cfg = loaded
	}
	if *templatePath != "" {
		cfg.TemplatePath = *templatePath
	}
	if *configDir != "" {
		cfg.ConfigDir = *configDir
	}
	if *devicesFlag != "" {
		cfg.Devices = splitDevices(*devicesFlag)
	}
	if *simulate {
		cfg.Simulation = true
	}
	if *limit > 0 {
		cfg.Concurrency = *limit
	}
	if *exportDir != "" {
		cfg.ExportDir = *exportDir
	}
	if *historyDB != "" {
		cfg.HistoryDB = *historyDB
	}

	if cfg.TemplatePath == "" {
		fmt.Fprintln(os.Stderr, "Usage: netaudit --template FILE --configs DIR --devices A,B")
		fmt.Fprintln(os.Stderr, "       netaudit --template FILE --simulate")
		fmt.Fprintln(os.Stderr, "       netaudit --config FILE")
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("invalid configuration: %v", err)
	}

	data, err := os.ReadFile(cfg.TemplatePath)
	if err != nil {
		logger.Fatalf("read template: %v", err)
	}
	tmpl, err := compliance.ParseTemplate(data)
	if err != nil {
		logger.Fatalf("load template: %v", err)
	}
	logger.Printf("Loaded template %s v%s (%d rules)", tmpl.Name, tmpl.Version, tmpl.RuleCount())

	var source device.ConfigSource
	devices := cfg.Devices
	if cfg.Simulation {
		sim := device.NewSimulator()
		source = sim
		if len(devices) == 0 {
			devices = sim.Devices()
		}
	} else {
		source = device.NewDirSource(cfg.ConfigDir)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := fleet.NewRunner(fleet.RunnerConfig{
		Template: tmpl,
		Source:   source,
		Limit:    cfg.Concurrency,
		Logger:   logger,
	})

	logger.Printf("Auditing %d devices", len(devices))
	run, err := runner.Run(ctx, devices)
	if err != nil {
		logger.Fatalf("audit: %v", err)
	}

	if cfg.HistoryDB != "" {
		if err := saveHistory(ctx, cfg.HistoryDB, run); err != nil {
			logger.Printf("history: %v", err)
		} else {
			logger.Printf("Run %s saved to %s", run.ID, cfg.HistoryDB)
		}
	}

	if cfg.ExportDir != "" {
		path, err := exportRun(cfg.ExportDir, run)
		if err != nil {
			logger.Printf("export: %v", err)
		} else {
			logger.Printf("Report exported to %s", path)
		}
	}

	switch {
	case *tui:
		if _, err := tea.NewProgram(tuireport.NewModel(run), tea.WithAltScreen()).Run(); err != nil {
			logger.Fatalf("viewer: %v", err)
		}
	case *jsonOutput:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(run)
	default:
		printRun(run)
	}

	if run.Report.Failed > 0 {
		os.Exit(2)
	}
}

func splitDevices(s string) []string {
	var devices []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			devices = append(devices, part)
		}
	}
	return devices
}

func saveHistory(ctx context.Context, path string, run *fleet.AuditRun) error {
	store, err := fleet.NewSQLiteStore(path)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.SaveRun(ctx, run)
}

func exportRun(dir string, run *fleet.AuditRun) (string, error) {
	out, err := fleet.MarshalRun(run)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, fleet.ReportFilename(run.FinishedAt))
	if err := os.WriteFile(path, out, 0644); err != nil {
		return "", err
	}
	return path, nil
}

func printRun(run *fleet.AuditRun) {
	report := run.Report
	fmt.Printf("=== Compliance Audit: %s v%s ===\n", run.TemplateName, run.TemplateVersion)
	fmt.Printf("Devices: %d  Pass: %d  Fail: %d  Violations: %d (H:%d M:%d L:%d)\n",
		len(report.Results), report.Passed, report.Failed,
		report.TotalViolations(), report.Totals.High, report.Totals.Medium, report.Totals.Low)

	for _, res := range report.Results {
		icon := "✓"
		if res.Status == compliance.StatusFail {
			icon = "✗"
		}
		fmt.Printf("\n[%s] %s: %s", icon, res.Device, res.Status)
		if res.Unreachable {
			fmt.Printf(" (unreachable: %s)", res.RetrievalError)
		}
		fmt.Println()
		for _, v := range res.Violations {
			fmt.Printf("    %-6s %-18s %s: %s\n", v.Severity, v.Type, v.RuleName, v.Description)
		}
	}
}
