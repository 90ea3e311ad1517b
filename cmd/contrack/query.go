package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mgiraldo/contrack/internal/repository"
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query the database",
}

var queryContributionsCmd = &cobra.Command{
	Use:   "contributions <repo-url>",
	Short: "List all contributions for a repository",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		repoURL := args[0]

		database := openDB()
		defer database.Close()

		contributions, err := repository.NewContributionStore(database).List(repoURL)
		if err != nil {
			fatal(err)
		}
		if len(contributions) == 0 {
			fmt.Printf("No contributions found for repository: %s\n", repoURL)
			return
		}

		fmt.Printf("\nContributions for %s\n", repoURL)
		fmt.Println(strings.Repeat("=", 80))

		for _, contrib := range contributions {
			fmt.Printf("\n• %s\n", bold.Render(contrib.Name))
			fmt.Printf("  Category: %s | Priority: %d\n", contrib.Category, contrib.Priority)
			fmt.Printf("  Overview: %s\n", contrib.Overview)
			fmt.Printf("  Key Commits: %d\n", len(contrib.KeyCommits))
		}
	},
}

var queryContributionCmd = &cobra.Command{
	Use:   "contribution <repo-url> <name>",
	Short: "Show details for a specific contribution",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		repoURL, name := args[0], args[1]

		database := openDB()
		defer database.Close()

		contrib, err := repository.NewContributionStore(database).Get(repoURL, name)
		if err != nil {
			fatal(err)
		}
		if contrib == nil {
			fatal(fmt.Errorf("contribution '%s' not found", name))
		}

		fmt.Printf("\nContribution: %s\n", bold.Render(contrib.Name))
		fmt.Println(strings.Repeat("=", 80))
		fmt.Printf("Repository: %s\n", contrib.RepositoryURL)
		fmt.Printf("Category: %s | Priority: %d\n", contrib.Category, contrib.Priority)
		fmt.Printf("\nOverview:\n%s\n", contrib.Overview)
		fmt.Printf("\nDescription:\n%s\n", contrib.Description)

		if len(contrib.KeyCommits) > 0 {
			fmt.Printf("\nKey Commits (%d):\n", len(contrib.KeyCommits))
			for _, hash := range contrib.KeyCommits {
				fmt.Printf("  - %s\n", hash)
			}
		}

		if len(contrib.RelatedCommits) > 0 {
			fmt.Printf("\nRelated Commits (%d):\n", len(contrib.RelatedCommits))
			shown := contrib.RelatedCommits
			if len(shown) > 5 {
				shown = shown[:5]
			}
			for _, hash := range shown {
				fmt.Printf("  - %s\n", hash)
			}
			if rest := len(contrib.RelatedCommits) - 5; rest > 0 {
				fmt.Printf("  ... and %d more\n", rest)
			}
		}

		if len(contrib.TechnicalDetails) > 0 {
			fmt.Println("\nTechnical Details:")
			for key, value := range contrib.TechnicalDetails {
				fmt.Printf("  %s: %v\n", key, value)
			}
		}

		if len(contrib.ResumeBullets) > 0 {
			fmt.Printf("\nResume Bullets (%d):\n", len(contrib.ResumeBullets))
			for i, bullet := range contrib.ResumeBullets {
				fmt.Printf("  %d. %s\n", i+1, bullet)
			}
		}
	},
}

var queryCommitsCmd = &cobra.Command{
	Use:   "commits <repo-url> <name>",
	Short: "Show commits for a contribution",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		repoURL, name := args[0], args[1]

		database := openDB()
		defer database.Close()

		commits, err := repository.NewCommitStore(database).ListForContribution(repoURL, name)
		if err != nil {
			fatal(err)
		}
		if len(commits) == 0 {
			fmt.Printf("No commits found for contribution '%s'\n", name)
			return
		}

		fmt.Printf("\nCommits for '%s'\n", bold.Render(name))
		fmt.Println(strings.Repeat("=", 80))

		for _, commit := range commits {
			hash := commit.Hash
			if len(hash) > 8 {
				hash = hash[:8]
			}
			fmt.Printf("\n• %s\n", hash)
			fmt.Printf("  Author: %s <%s>\n", commit.Author, commit.AuthorEmail)
			fmt.Printf("  Date: %s\n", commit.Date)
			fmt.Printf("  Message: %s\n", commit.Message)
			if commit.LinesAdded != nil && commit.LinesDeleted != nil {
				fmt.Printf("  Changes: +%d -%d\n", *commit.LinesAdded, *commit.LinesDeleted)
			}
		}
	},
}

var queryStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show database statistics",
	Run: func(cmd *cobra.Command, args []string) {
		database := openDB()
		defer database.Close()

		stats, err := repository.Statistics(database)
		if err != nil {
			fatal(err)
		}

		fmt.Println("\nDatabase Statistics")
		fmt.Println(strings.Repeat("=", 80))
		fmt.Printf("Repositories: %d\n", stats["repositories"])
		fmt.Printf("Contributions: %d\n", stats["contributions"])
		fmt.Printf("Commits: %d\n", stats["commits"])
		fmt.Printf("Agent Rules: %d\n", stats["agent_rules"])
		fmt.Printf("Prompts: %d\n", stats["prompts"])
		fmt.Printf("Loadouts: %d\n", stats["loadouts"])
	},
}

func init() {
	queryCmd.AddCommand(queryContributionsCmd)
	queryCmd.AddCommand(queryContributionCmd)
	queryCmd.AddCommand(queryCommitsCmd)
	queryCmd.AddCommand(queryStatsCmd)
}
