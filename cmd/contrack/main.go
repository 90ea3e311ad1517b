package main

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/mgiraldo/contrack/internal/config"
	"github.com/mgiraldo/contrack/internal/db"
	"github.com/mgiraldo/contrack/internal/git"
	"github.com/mgiraldo/contrack/internal/markdown"
	"github.com/mgiraldo/contrack/internal/models"
	"github.com/mgiraldo/contrack/internal/reconcile"
	"github.com/mgiraldo/contrack/internal/repository"
)

var (
	okMark   = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Render("✓")
	warnMark = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Render("⚠")
	bold     = lipgloss.NewStyle().Bold(true)
)

var rootCmd = &cobra.Command{
	Use:   "contrack",
	Short: "Track and document code contributions",
	Long:  `Contrack keeps a per-repository record of contributions, cross-references them to git commits, and renders the record as markdown.`,
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Register a repository",
	Run: func(cmd *cobra.Command, args []string) {
		repoURL, _ := cmd.Flags().GetString("repo-url")
		org, _ := cmd.Flags().GetString("org")
		name, _ := cmd.Flags().GetString("name")
		description, _ := cmd.Flags().GetString("description")

		database := openDB()
		defer database.Close()

		repo := models.Repository{
			URL:          repoURL,
			Organization: org,
			Name:         name,
			Description:  description,
		}

		if err := repository.NewRepositoryStore(database).Upsert(repo); err != nil {
			fatal(err)
		}

		// Mirror into the config file so `config sync` stays two-way.
		if err := mirrorRepoToConfig(repo); err != nil {
			fatal(err)
		}

		fmt.Printf("%s Repository initialized successfully!\n", okMark)
		fmt.Printf("  URL: %s\n", repo.URL)
	},
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a contribution",
	Run: func(cmd *cobra.Command, args []string) {
		repoURL, _ := cmd.Flags().GetString("repo-url")
		name, _ := cmd.Flags().GetString("name")
		overview, _ := cmd.Flags().GetString("overview")
		description, _ := cmd.Flags().GetString("description")
		keyCommits, _ := cmd.Flags().GetString("key-commits")
		relatedCommits, _ := cmd.Flags().GetString("related-commits")
		category, _ := cmd.Flags().GetString("category")
		priority, _ := cmd.Flags().GetInt("priority")

		database := openDB()
		defer database.Close()

		contrib := models.Contribution{
			RepositoryURL:    repoURL,
			Name:             name,
			Overview:         overview,
			Description:      description,
			KeyCommits:       splitCommitList(keyCommits),
			RelatedCommits:   splitCommitList(relatedCommits),
			TechnicalDetails: map[string]any{},
			ResumeBullets:    []string{},
			Category:         category,
			Priority:         priority,
		}

		if _, err := repository.NewContributionStore(database).Upsert(contrib); err != nil {
			fatal(err)
		}

		fmt.Printf("%s Contribution '%s' added successfully!\n", okMark, name)
	},
}

var updateCmd = &cobra.Command{
	Use:   "update [path]",
	Short: "Extract commits from a git repository and reconcile them",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		repoPath := "."
		if len(args) > 0 {
			repoPath = args[0]
		}

		database := openDB()
		defer database.Close()

		fmt.Println("Extracting commit details from git repository...")
		commits, err := git.Extract(repoPath)
		if err != nil {
			fatal(err)
		}
		fmt.Printf("Found %d commits to process\n", len(commits))

		repoStore := repository.NewRepositoryStore(database)
		contribStore := repository.NewContributionStore(database)
		commitStore := repository.NewCommitStore(database)

		repos, err := repoStore.List()
		if err != nil {
			fatal(err)
		}

		processed := 0
		for _, commit := range commits {
			contribID, err := reconcile.Assign(commit, repos, contribStore.List)
			if err != nil {
				fatal(err)
			}
			commit.ContributionID = contribID

			if err := commitStore.Upsert(commit); err != nil {
				fatal(err)
			}
			processed++

			if processed%10 == 0 {
				fmt.Printf("Processed %d commits...\n", processed)
			}
		}

		fmt.Printf("%s Update complete: %d processed\n", okMark, processed)
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a contributions markdown file",
	Run: func(cmd *cobra.Command, args []string) {
		repoURL, _ := cmd.Flags().GetString("repo-url")
		output, _ := cmd.Flags().GetString("output")
		author, _ := cmd.Flags().GetString("author")

		database := openDB()
		defer database.Close()

		contribStore := repository.NewContributionStore(database)
		commitStore := repository.NewCommitStore(database)

		contributions, err := contribStore.List(repoURL)
		if err != nil {
			fatal(err)
		}
		if len(contributions) == 0 {
			fmt.Printf("%s No contributions found for repository: %s\n", warnMark, repoURL)
			return
		}

		entries := make([]markdown.Entry, 0, len(contributions))
		for _, contrib := range contributions {
			commits, err := commitStore.ListForContribution(repoURL, contrib.Name)
			if err != nil {
				fatal(err)
			}
			entries = append(entries, markdown.Entry{Contribution: contrib, Commits: commits})
		}

		doc := markdown.Generate(repoURL, entries, author)

		if err := os.WriteFile(output, []byte(doc), 0644); err != nil {
			fatal(fmt.Errorf("failed to write %s: %w", output, err))
		}

		fmt.Printf("%s Generated contributions markdown: %s\n", okMark, output)
		fmt.Printf("  %d contributions documented\n", len(contributions))
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List repositories",
	Run: func(cmd *cobra.Command, args []string) {
		detailed, _ := cmd.Flags().GetBool("detailed")

		database := openDB()
		defer database.Close()

		repos, err := repository.NewRepositoryStore(database).List()
		if err != nil {
			fatal(err)
		}
		if len(repos) == 0 {
			fmt.Println("No repositories found in database")
			return
		}

		fmt.Println("\nRepositories")
		fmt.Println(strings.Repeat("=", 80))

		contribStore := repository.NewContributionStore(database)
		for _, repo := range repos {
			fmt.Printf("\n• %s\n", bold.Render(repo.Name))
			fmt.Printf("  URL: %s\n", repo.URL)
			fmt.Printf("  Organization: %s\n", repo.Organization)
			if repo.Description != "" {
				fmt.Printf("  Description: %s\n", repo.Description)
			}

			if detailed {
				contributions, err := contribStore.List(repo.URL)
				if err != nil {
					fatal(err)
				}
				fmt.Printf("  Contributions: %d\n", len(contributions))
			}
		}
	},
}

var locationsCmd = &cobra.Command{
	Use:   "locations",
	Short: "Print resolved database and config file locations",
	Run: func(cmd *cobra.Command, args []string) {
		locs, err := config.Resolve()
		if err != nil {
			fatal(err)
		}

		mode := "global (user config directory)"
		if locs.ProjectLocal {
			mode = "project-local (" + config.MarkerDir + " directory)"
		}

		fmt.Printf("Mode:     %s\n", mode)
		fmt.Printf("Database: %s\n", locs.DatabasePath)
		fmt.Printf("Config:   %s\n", locs.ConfigPath)
	},
}

func init() {
	initCmd.Flags().StringP("repo-url", "r", "", "Repository URL (e.g., https://github.com/org/repo)")
	initCmd.Flags().StringP("org", "o", "", "Organization name")
	initCmd.Flags().StringP("name", "n", "", "Repository name")
	initCmd.Flags().StringP("description", "d", "", "Repository description")
	initCmd.MarkFlagRequired("repo-url")
	initCmd.MarkFlagRequired("org")
	initCmd.MarkFlagRequired("name")

	addCmd.Flags().StringP("repo-url", "r", "", "Repository URL")
	addCmd.Flags().StringP("name", "n", "", "Contribution name")
	addCmd.Flags().StringP("overview", "o", "", "Brief overview")
	addCmd.Flags().StringP("description", "d", "", "Detailed description")
	addCmd.Flags().StringP("key-commits", "k", "", "Key commit hashes (comma-separated)")
	addCmd.Flags().String("related-commits", "", "Related commit hashes (comma-separated)")
	addCmd.Flags().StringP("category", "c", "Feature", "Category (Core Feature, Integration, Infrastructure, ...)")
	addCmd.Flags().IntP("priority", "p", 5, "Priority (1-10, higher is more important)")
	addCmd.MarkFlagRequired("repo-url")
	addCmd.MarkFlagRequired("name")
	addCmd.MarkFlagRequired("overview")
	addCmd.MarkFlagRequired("description")
	addCmd.MarkFlagRequired("key-commits")

	generateCmd.Flags().StringP("repo-url", "r", "", "Repository URL")
	generateCmd.Flags().StringP("output", "o", "CONTRIBUTIONS.md", "Output file path")
	generateCmd.Flags().StringP("author", "a", "", "Author name to filter commit listings by")
	generateCmd.MarkFlagRequired("repo-url")

	listCmd.Flags().BoolP("detailed", "d", false, "Show detailed information")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(locationsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(loadoutCmd)
	rootCmd.AddCommand(aiCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func openDB() *sql.DB {
	database, err := db.Open()
	if err != nil {
		fatal(err)
	}
	return database
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// splitCommitList splits a comma-separated list of commit ids, trimming
// whitespace and dropping empty entries.
func splitCommitList(s string) []string {
	result := []string{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			result = append(result, part)
		}
	}
	return result
}

func mirrorRepoToConfig(repo models.Repository) error {
	locs, err := config.Resolve()
	if err != nil {
		return err
	}

	cfg, err := config.Load(locs.ConfigPath)
	if err != nil {
		return err
	}

	orgID := config.Slug(repo.Organization)
	if _, ok := cfg.Organizations[orgID]; !ok {
		cfg.Organizations[orgID] = config.Organization{Name: repo.Organization}
	}
	cfg.Repositories[repo.URL] = config.RepositoryConfig{
		Organization: orgID,
		Name:         repo.Name,
		Description:  repo.Description,
	}

	return config.Save(locs.ConfigPath, cfg)
}
