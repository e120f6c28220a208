// Package dashboard renders verdicts, history and reports in the terminal.
package dashboard

import (
	"fmt"
	"strings"

	"github.com/common-nighthawk/go-figure"
	"github.com/fatih/color"

	"github.com/cryvora/cryvora/internal/client"
	domain "github.com/cryvora/cryvora/internal/domain/analysis"
)

func PrintBanner() {
	myFigure := figure.NewColorFigure("CRYVORA", "doom", "cyan", true)
	myFigure.Print()

	cyan := color.New(color.FgCyan)
	green := color.New(color.FgGreen)

	_, _ = cyan.Println("════════════════════════════════════════════════")
	_, _ = green.Println("    Scam Checker Dashboard")
	_, _ = cyan.Println("════════════════════════════════════════════════")
}

func riskColor(risk domain.RiskLevel) *color.Color {
	switch risk {
	case domain.RiskMalicious:
		return color.New(color.FgRed, color.Bold)
	case domain.RiskSuspicious:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgGreen)
	}
}

// PrintVerdict shows risk, details and a confidence gauge.
func PrintVerdict(v domain.Verdict) {
	fmt.Printf("Risk:       %s\n", riskColor(v.Risk).Sprint(v.Risk))
	fmt.Printf("Details:    %s\n", strings.TrimSpace(v.Details))
	fmt.Printf("Confidence: %d%% %s\n", v.Confidence, gauge(v.Confidence))

	if v.Risk == domain.RiskMalicious {
		_, _ = color.New(color.FgRed, color.Bold).Println("[!] High-risk threat!")
	}
}

// PrintTextVerdict shows the AI analysis outcome.
func PrintTextVerdict(tv domain.TextVerdict, platform string) {
	fmt.Printf("AI Analysis: %s\n", tv.Analysis)
	fmt.Printf("Action:      %s\n", tv.Action)
	if strings.Contains(tv.Action, "blocked") {
		_, _ = color.New(color.FgYellow).Printf("[!] %s blocked\n", platform)
	}
}

// gauge renders the confidence bar: green under 30, yellow under 70, red above.
func gauge(confidence int) string {
	width := confidence / 5
	if width > 20 {
		width = 20
	}
	if width < 0 {
		width = 0
	}
	bar := strings.Repeat("█", width) + strings.Repeat("░", 20-width)
	switch {
	case confidence < 30:
		return color.GreenString(bar)
	case confidence < 70:
		return color.YellowString(bar)
	default:
		return color.RedString(bar)
	}
}

func PrintStats(s client.Stats) {
	fmt.Printf("Total scans:   %d\n", s.TotalScans)
	alert := "None"
	if s.RecentAlert {
		alert = color.RedString("Yes")
	}
	fmt.Printf("Recent alerts: %s\n", alert)
	if !s.LastScan.IsZero() {
		fmt.Printf("Last scan:     %s\n", s.LastScan.Local().Format("2006-01-02 15:04:05"))
	} else {
		fmt.Println("Last scan:     None")
	}
}

func PrintHistory(entries []client.HistoryEntry) {
	if len(entries) == 0 {
		fmt.Println("No scans yet.")
		return
	}
	for _, e := range entries {
		fmt.Printf("%s: %s - %s (%s)\n",
			e.Kind, e.InputLabel,
			riskColor(e.Risk).Sprint(e.Risk),
			e.Timestamp.Local().Format("2006-01-02 15:04:05"))
	}
}

func PrintReports(entries []client.ReportEntry) {
	if len(entries) == 0 {
		fmt.Println("No reports submitted.")
		return
	}
	for _, e := range entries {
		fmt.Printf("%s (%s)\n", e.Report, e.Timestamp.Local().Format("2006-01-02 15:04:05"))
	}
}
