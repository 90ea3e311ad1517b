package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mgiraldo/contrack/internal/repository"
)

const aiBriefing = `You are working with a contrack contributions database.

contrack records, per source-code repository, a structured log of
contributions (features and changes), cross-referenced to git commits.
The database contains these tables:

  repositories   tracked repositories, keyed by URL
  contributions  documented units of work, keyed by (repository_url, name)
  commits        extracted git commits, keyed by hash, with optional
                 contribution_id back-references
  agent_rules    instructions for working with this data (below)
  prompts        reusable prompt templates (below)

Follow the agent rules in priority order. Use the prompts as starting
points for analysis and documentation tasks.`

var aiCmd = &cobra.Command{
	Use:   "ai",
	Short: "Print the AI agent briefing with current rules and prompts",
	Run: func(cmd *cobra.Command, args []string) {
		database := openDB()
		defer database.Close()

		rules, err := repository.NewRuleStore(database).List()
		if err != nil {
			fatal(err)
		}
		prompts, err := repository.NewPromptStore(database).List()
		if err != nil {
			fatal(err)
		}

		fmt.Println(aiBriefing)

		fmt.Println("\nAgent Rules")
		fmt.Println(strings.Repeat("=", 80))
		for _, rule := range rules {
			fmt.Printf("\n[%d] %s (%s)\n%s\n", rule.Priority, bold.Render(rule.Name), rule.Category, rule.Instruction)
		}

		fmt.Println("\nPrompts")
		fmt.Println(strings.Repeat("=", 80))
		for _, prompt := range prompts {
			fmt.Printf("\n%s (%s)\n", bold.Render(prompt.Name), prompt.Category)
			if prompt.Description != "" {
				fmt.Printf("%s\n", prompt.Description)
			}
			fmt.Printf("\n%s\n", prompt.PromptText)
		}
	},
}
