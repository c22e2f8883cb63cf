package commands

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/notemap/pkg/analyzer"
	"github.com/ccollicutt/notemap/pkg/config"
	"github.com/ccollicutt/notemap/pkg/detector"
)

// Diagnostic statuses.
const (
	statusOK      = "ok"
	statusWarning = "warning"
	statusError   = "error"
)

// uncategorizedWarnRatio is the share of default-category lines above which
// a notes file is reported as poorly covered.
const uncategorizedWarnRatio = 0.5

// DiagnoseOptions holds options for the diagnose command
type DiagnoseOptions struct {
	Verbose bool
}

// DiagnosticResult represents the result of a single diagnostic check
type DiagnosticResult struct {
	Check    string
	Status   string // "ok", "warning", "error"
	Message  string
	Details  []string
	Suggests []string
}

// NewDiagnoseCommand creates the diagnose command
func NewDiagnoseCommand() *cobra.Command {
	opts := &DiagnoseOptions{}

	cmd := &cobra.Command{
		Use:   "diagnose <config-file> [notes-file...]",
		Short: "Diagnose common configuration issues",
		Long: `Diagnose common configuration issues.

This command checks your configuration file for common problems:
- Config file syntax and structure
- Keywords that can never fire because an earlier rule always wins
- Category coverage of sample notes files, with keyword suggestions
- Webhook settings (and reachability with -v)

Example:
  notemap diagnose notemap.yaml
  notemap diagnose notemap.yaml notes/*.txt
  notemap diagnose -v notemap.yaml  # verbose output`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiagnose(commandContext(cmd), cmd.OutOrStdout(), args[0], args[1:], opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show detailed diagnostic output")

	return cmd
}

func runDiagnose(ctx context.Context, w io.Writer, configPath string, notesFiles []string, opts *DiagnoseOptions) error {
	results := []DiagnosticResult{}

	result := checkConfigExists(configPath)
	results = append(results, result)
	if result.Status == statusError {
		printDiagnostics(w, results, opts)
		return nil
	}

	cfg, result := checkConfigParseable(ctx, configPath)
	results = append(results, result)
	if result.Status == statusError {
		printDiagnostics(w, results, opts)
		return nil
	}

	rules := analyzer.RulesFromConfig(cfg)
	results = append(results, checkRules(rules)...)
	results = append(results, checkNotes(ctx, rules, notesFiles)...)
	results = append(results, checkWebhooks(cfg, opts)...)

	printDiagnostics(w, results, opts)
	return nil
}

func checkConfigExists(path string) DiagnosticResult {
	result := DiagnosticResult{
		Check: "Config File",
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		result.Status = statusError
		result.Message = fmt.Sprintf("Config file not found: %s", path)
		result.Suggests = []string{
			"Check the file path is correct",
			"Use 'notemap detect <notes-file> --write-config notemap.yaml' to generate a starter config",
		}
		return result
	}
	if err != nil {
		result.Status = statusError
		result.Message = fmt.Sprintf("Cannot access config file: %v", err)
		result.Suggests = []string{"Check file permissions"}
		return result
	}
	if info.IsDir() {
		result.Status = statusError
		result.Message = "Path is a directory, not a file"
		return result
	}
	if info.Size() == 0 {
		result.Status = statusError
		result.Message = "Config file is empty"
		result.Suggests = []string{
			"Use 'notemap detect <notes-file> --write-config notemap.yaml' to generate a starter config",
		}
		return result
	}

	result.Status = statusOK
	result.Message = fmt.Sprintf("Found: %s (%d bytes)", path, info.Size())
	return result
}

func checkConfigParseable(ctx context.Context, path string) (*config.Config, DiagnosticResult) {
	result := DiagnosticResult{
		Check: "Config Syntax",
	}

	cfg, err := config.Load(ctx, path)
	if err != nil {
		result.Status = statusError
		result.Message = fmt.Sprintf("Failed to load config: %v", err)
		if strings.Contains(err.Error(), "yaml") {
			result.Suggests = []string{
				"Check YAML syntax - ensure proper indentation (use spaces, not tabs)",
			}
		}
		return nil, result
	}

	result.Status = statusOK
	result.Message = "Config file parsed successfully"
	result.Details = []string{
		fmt.Sprintf("Categories: %d", len(cfg.Categories)),
		fmt.Sprintf("Default category: %s", cfg.DefaultCategory),
		fmt.Sprintf("Locale: %s", cfg.Language()),
	}
	return cfg, result
}

// checkRules reports keywords that contain an earlier rule's keyword. Any line
// holding such a keyword also holds the earlier one, so the earlier rule wins.
func checkRules(rules *analyzer.RuleSet) []DiagnosticResult {
	table := rules.Rules()

	if len(table) == 0 {
		return []DiagnosticResult{{
			Check:   "Rules",
			Status:  statusWarning,
			Message: fmt.Sprintf("No categories defined; every line will be %q", rules.Fallback()),
			Suggests: []string{
				"Add categories with keywords to your config",
			},
		}}
	}

	results := make([]DiagnosticResult, 0, len(table))
	for i, rule := range table {
		result := DiagnosticResult{
			Check: fmt.Sprintf("Rule: %s", rule.Category),
		}

		var shadowed []string
		for _, kw := range rule.Keywords {
			for _, earlier := range table[:i] {
				if k, ok := containsAny(kw, earlier.Keywords); ok {
					shadowed = append(shadowed,
						fmt.Sprintf("%q always matches %q first (via %q)", kw, earlier.Category, k))
					break
				}
			}
		}

		switch {
		case len(shadowed) == len(rule.Keywords):
			result.Status = statusError
			result.Message = "Rule can never match"
			result.Details = shadowed
			result.Suggests = []string{"Move this category above the rules that shadow it"}
		case len(shadowed) > 0:
			result.Status = statusWarning
			result.Message = fmt.Sprintf("%d shadowed keyword(s)", len(shadowed))
			result.Details = shadowed
		default:
			result.Status = statusOK
			result.Message = fmt.Sprintf("Priority %d, keywords: %s", i+1, strings.Join(rule.Keywords, ", "))
		}

		results = append(results, result)
	}

	return results
}

func containsAny(s string, substrs []string) (string, bool) {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return sub, true
		}
	}
	return "", false
}

func checkNotes(ctx context.Context, rules *analyzer.RuleSet, files []string) []DiagnosticResult {
	results := make([]DiagnosticResult, 0, len(files))
	d := detector.New(detector.WithRules(rules))

	for _, file := range files {
		result := DiagnosticResult{
			Check: fmt.Sprintf("Notes: %s", file),
		}

		profile, err := d.ProfileFile(ctx, file)
		if err != nil {
			result.Status = statusError
			result.Message = fmt.Sprintf("Cannot read notes: %v", err)
			results = append(results, result)
			continue
		}
		if profile.SampledLines == 0 {
			result.Status = statusWarning
			result.Message = "File has no non-blank lines"
			results = append(results, result)
			continue
		}

		uncategorized := profile.Uncategorized()
		ratio := float64(uncategorized) / float64(profile.SampledLines)
		result.Message = fmt.Sprintf("%d/%d sampled lines uncategorized, indentation: %s",
			uncategorized, profile.SampledLines, profile.Style)
		for _, h := range profile.Categories {
			result.Details = append(result.Details, fmt.Sprintf("%s: %d", h.Category, h.Count))
		}

		switch {
		case ratio > uncategorizedWarnRatio:
			result.Status = statusWarning
			for _, s := range profile.Suggestions {
				result.Suggests = append(result.Suggests,
					fmt.Sprintf("Consider a keyword for %q (%d lines)", s.Token, s.Count))
			}
		case profile.Style == detector.IndentMixed:
			result.Status = statusWarning
			result.Suggests = []string{"Tabs and spaces are mixed; each character counts as one level"}
		default:
			result.Status = statusOK
		}

		results = append(results, result)
	}

	return results
}

func printDiagnostics(w io.Writer, results []DiagnosticResult, opts *DiagnoseOptions) {
	fmt.Fprintln(w, "=== NoteMap Configuration Diagnostics ===")
	fmt.Fprintln(w)

	okCount := 0
	warnCount := 0
	errCount := 0

	for _, r := range results {
		var icon string
		switch r.Status {
		case statusOK:
			icon = "PASS"
			okCount++
		case statusWarning:
			icon = "WARN"
			warnCount++
		case statusError:
			icon = "FAIL"
			errCount++
		}

		fmt.Fprintf(w, "[%s] %s\n", icon, r.Check)
		fmt.Fprintf(w, "    %s\n", r.Message)

		if opts.Verbose || r.Status != statusOK {
			for _, d := range r.Details {
				fmt.Fprintf(w, "      - %s\n", d)
			}
		}

		for _, s := range r.Suggests {
			fmt.Fprintf(w, "      Hint: %s\n", s)
		}

		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "Summary: %d passed, %d warnings, %d errors\n", okCount, warnCount, errCount)

	if errCount > 0 {
		fmt.Fprintln(w, "\nFix the errors above before running analysis.")
	} else if warnCount > 0 {
		fmt.Fprintln(w, "\nConfiguration is usable but has warnings.")
	} else {
		fmt.Fprintln(w, "\nConfiguration looks good!")
	}
}

func checkWebhooks(cfg *config.Config, opts *DiagnoseOptions) []DiagnosticResult {
	results := []DiagnosticResult{}

	if len(cfg.Webhooks) == 0 {
		if opts.Verbose {
			results = append(results, DiagnosticResult{
				Check:   "Webhooks",
				Status:  statusOK,
				Message: "No webhooks configured (optional)",
			})
		}
		return results
	}

	for _, wh := range cfg.Webhooks {
		name := wh.Name
		if name == "" {
			name = wh.URL
		}

		result := DiagnosticResult{
			Check:   fmt.Sprintf("Webhook: %s", name),
			Status:  statusOK,
			Message: fmt.Sprintf("Trigger: %s", wh.Trigger),
		}

		if wh.Trigger == config.WebhookTriggerNever {
			result.Status = statusWarning
			result.Details = []string{"Trigger is 'never'; this webhook is disabled"}
		}
		if opts.Verbose {
			result.Details = append(result.Details,
				fmt.Sprintf("URL: %s", wh.URL),
				fmt.Sprintf("Timeout: %s", wh.Timeout))
			if wh.Token != "" {
				result.Details = append(result.Details, "Token: configured")
			}
		}

		results = append(results, result)

		if opts.Verbose {
			conn := checkWebhookConnectivity(wh)
			conn.Check = fmt.Sprintf("Webhook Connectivity: %s", name)
			results = append(results, conn)
		}
	}

	return results
}

func checkWebhookConnectivity(wh config.WebhookConfig) DiagnosticResult {
	result := DiagnosticResult{}

	client := &http.Client{
		Timeout: 5 * time.Second,
	}

	req, err := http.NewRequest(http.MethodHead, wh.URL, nil)
	if err != nil {
		result.Status = statusWarning
		result.Message = fmt.Sprintf("Cannot create request: %v", err)
		return result
	}

	if wh.Token != "" {
		req.Header.Set("Authorization", "Bearer "+wh.Token)
	}

	resp, err := client.Do(req)
	if err != nil {
		result.Status = statusWarning
		result.Message = fmt.Sprintf("Cannot connect: %v", err)
		result.Suggests = []string{
			"Check if the webhook URL is correct",
			"Verify network connectivity",
		}
		return result
	}
	defer resp.Body.Close()

	// Any response means the server is reachable.
	if resp.StatusCode >= 200 && resp.StatusCode < 400 {
		result.Status = statusOK
		result.Message = fmt.Sprintf("Reachable (status %d)", resp.StatusCode)
	} else {
		result.Status = statusWarning
		result.Message = fmt.Sprintf("Reachable but returned status %d", resp.StatusCode)
		result.Suggests = []string{
			"The endpoint may require POST method (will work during actual webhook send)",
			"Check authentication if using a token",
		}
	}

	return result
}
