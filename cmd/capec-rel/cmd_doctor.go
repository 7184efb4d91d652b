package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Bama-S/capec-rel/client"
)

func newDoctorCmd() *cobra.Command {
	var serverURL string
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose configuration and the relation table",
		Long:  "Run diagnostic checks against config, the relation table, and optionally a running server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(cmd.Context(), serverURL)
		},
	}
	cmd.Flags().StringVar(&serverURL, "server", "", "Also check a running server, e.g. http://127.0.0.1:8501")
	return cmd
}

type checkResult struct {
	Name   string
	Passed bool
	Detail string
	Hint   string
}

func runDoctor(ctx context.Context, serverURL string) error {
	fmt.Println("\ncapec-rel doctor")
	fmt.Println("================")

	results := doctorChecks(ctx, serverURL)

	fmt.Println()
	allPassed := true
	for _, r := range results {
		if r.Passed {
			if r.Detail != "" {
				fmt.Printf("✅ %s: %s\n", r.Name, r.Detail)
			} else {
				fmt.Printf("✅ %s\n", r.Name)
			}
		} else {
			allPassed = false
			if r.Detail != "" {
				fmt.Printf("❌ %s: %s\n", r.Name, r.Detail)
			} else {
				fmt.Printf("❌ %s\n", r.Name)
			}
			if r.Hint != "" {
				fmt.Printf("   Hint: %s\n", r.Hint)
			}
		}
	}

	fmt.Println()
	if allPassed {
		fmt.Println("✅ All checks passed!")
	} else {
		fmt.Println("❌ Some checks failed.")
		return fmt.Errorf("doctor found issues")
	}

	return nil
}

func doctorChecks(ctx context.Context, serverURL string) []checkResult {
	var results []checkResult

	// 1. Config file (optional).
	cfgPath := configPath()
	if _, err := readConfigFile(cfgPath); err != nil {
		detail := "not found, using flags and environment"
		if !os.IsNotExist(err) {
			results = append(results, checkResult{
				Name: "Config file", Passed: false, Detail: cfgPath,
				Hint: fmt.Sprintf("Fix or remove the file. Error: %v", err),
			})
		} else {
			results = append(results, checkResult{Name: "Config file", Passed: true, Detail: detail})
		}
	} else {
		results = append(results, checkResult{
			Name: "Config file", Passed: true,
			Detail: fmt.Sprintf("found (%s)", cfgPath),
		})
	}

	// 2. Relation table readable.
	info, err := os.Stat(flagData)
	if err != nil {
		results = append(results, checkResult{
			Name: "Relation table", Passed: false, Detail: flagData,
			Hint: "Set --data, CAPEC_DATA, or data: in the config file",
		})
		return doctorServerCheck(results, serverURL)
	}
	results = append(results, checkResult{
		Name: "Relation table", Passed: true,
		Detail: fmt.Sprintf("%s (%d bytes)", flagData, info.Size()),
	})

	// 3. Table parses into a graph.
	log, err := newLogger("error", false)
	if err != nil {
		results = append(results, checkResult{Name: "Graph", Passed: false, Hint: err.Error()})
		return doctorServerCheck(results, serverURL)
	}

	svc, report, err := loadService(ctx, log)
	if err != nil {
		results = append(results, checkResult{
			Name: "Graph", Passed: false,
			Hint: fmt.Sprintf("Check the table format or try --mode lenient. Error: %v", err),
		})
		return doctorServerCheck(results, serverURL)
	}

	stats := svc.Stats()
	results = append(results, checkResult{
		Name: "Graph", Passed: true,
		Detail: fmt.Sprintf("%d nodes, %d edges, %d roots, %d leaves (%s mode)",
			stats.Nodes, stats.Edges, stats.Roots, stats.Leaves, report.Mode),
	})

	if report.SkippedCells > 0 || report.SkippedRows > 0 {
		results = append(results, checkResult{
			Name: "Skipped input", Passed: true,
			Detail: fmt.Sprintf("%d cells, %d rows dropped as malformed", report.SkippedCells, report.SkippedRows),
		})
	}

	return doctorServerCheck(results, serverURL)
}

func doctorServerCheck(results []checkResult, serverURL string) []checkResult {
	if serverURL == "" {
		return results
	}

	ver, err := doctorCheckHealth(serverURL)
	if err != nil {
		return append(results, checkResult{
			Name: "Server reachable", Passed: false, Detail: serverURL,
			Hint: fmt.Sprintf("Is capec-rel serve running? Error: %v", err),
		})
	}

	return append(results, checkResult{Name: "Server reachable", Passed: true, Detail: fmt.Sprintf("version %s", ver)})
}

func doctorCheckHealth(url string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	health, err := client.New(url, client.WithTimeout(5*time.Second)).Health(ctx)
	if err != nil {
		return "", err
	}
	if health.Graph != "loaded" {
		return "", fmt.Errorf("graph %s", health.Graph)
	}
	return health.Version, nil
}
