// Command finsight-cli analyzes a financial report PDF from the command line
// and then answers questions about it interactively.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/bobmcallan/finsight/internal/app"
	"github.com/bobmcallan/finsight/internal/models"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default: FINSIGHT_CONFIG or finsight.toml)")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: finsight-cli [-config path] <report.pdf>")
		os.Exit(1)
	}
	pdfPath := flag.Arg(0)

	data, err := os.ReadFile(pdfPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read %s: %v\n", pdfPath, err)
		os.Exit(1)
	}

	a, err := app.NewApp(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize app: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	ctx := context.Background()

	fmt.Printf("Analyzing %s...\n\n", pdfPath)
	report, err := a.ReportService.BuildReport(ctx, data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Report generation failed: %v\n", err)
		os.Exit(1)
	}

	printReport(report)
	askLoop(ctx, a, report.ID)
}

func printReport(report *models.Report) {
	fmt.Printf("Report ID: %s\n", report.ID)
	fmt.Printf("Ticker:    %s\n\n", report.Ticker)

	fmt.Println("--- Executive Summary ---")
	fmt.Println(report.Summary)
	fmt.Println()

	if len(report.CompetitorRows) > 0 {
		fmt.Println("--- Competitors ---")
		for _, row := range report.CompetitorRows {
			m := row.Metrics
			if m == nil {
				m = models.NewCompetitorMetrics()
			}
			fmt.Printf("%-12s %-30s P/E: %-10s MktCap: %-15s EPS: %-10s Yield: %s\n",
				row.Ticker, m.Name, m.PERatio, m.MarketCap, m.EPS, m.DividendYield)
		}
		fmt.Println()
	}

	if report.ChartFilename != "" {
		fmt.Printf("Revenue chart: %s\n\n", report.ChartFilename)
	}
}

// askLoop runs the interactive Q&A session until the user exits.
func askLoop(ctx context.Context, a *app.App, reportID string) {
	fmt.Println("Ask questions about the report (exit, quit or stop to finish):")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		question := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(question) {
		case "exit", "quit", "stop":
			return
		case "":
			continue
		}

		answer, err := a.ReportService.AnswerQuestion(ctx, reportID, question)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		fmt.Println(answer)
		fmt.Println()
	}
}
