package commands

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/ccollicutt/notemap/pkg/analyzer"
)

// NewRulesCommand creates the rules command.
func NewRulesCommand(g *GlobalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the category rules in priority order",
		Long: `List the category rules in priority order.

Rules come from the configuration file (--config) or the built-in table.
The first rule with a keyword contained in a line wins; lines that match
no rule get the default category.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig(commandContext(cmd))
			if err != nil {
				return err
			}
			rules := analyzer.RulesFromConfig(cfg)

			switch format {
			case "json":
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(rules.Rules())
			case "table":
				printRules(cmd, rules)
				return nil
			default:
				return fmt.Errorf("unknown output format %q (use table or json)", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", "table", "Output format (table|json)")

	return cmd
}

func printRules(cmd *cobra.Command, rules *analyzer.RuleSet) {
	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"Priority", "Category", "Keywords", "Description"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)

	for i, r := range rules.Rules() {
		table.Append([]string{
			strconv.Itoa(i + 1),
			string(r.Category),
			strings.Join(r.Keywords, ", "),
			r.Description,
		})
	}
	table.Append([]string{"-", string(rules.Fallback()), "(no match)", "Default category"})
	table.Render()
}
