package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mgiraldo/contrack/internal/config"
	"github.com/mgiraldo/contrack/internal/models"
	"github.com/mgiraldo/contrack/internal/repository"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Write the database's repositories to the config file",
	Run: func(cmd *cobra.Command, args []string) {
		database := openDB()
		defer database.Close()

		repos, err := repository.NewRepositoryStore(database).List()
		if err != nil {
			fatal(err)
		}

		locs, err := config.Resolve()
		if err != nil {
			fatal(err)
		}

		cfg := config.FromRepositories(repos)
		if err := config.Save(locs.ConfigPath, cfg); err != nil {
			fatal(err)
		}

		fmt.Printf("%s Synced %d repositories to %s\n", okMark, len(repos), locs.ConfigPath)
	},
}

var configLoadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load the config file into the database",
	Run: func(cmd *cobra.Command, args []string) {
		locs, err := config.Resolve()
		if err != nil {
			fatal(err)
		}

		cfg, err := config.Load(locs.ConfigPath)
		if err != nil {
			fatal(err)
		}
		if len(cfg.Repositories) == 0 {
			fmt.Printf("%s No repositories in config file: %s\n", warnMark, locs.ConfigPath)
			return
		}

		database := openDB()
		defer database.Close()

		store := repository.NewRepositoryStore(database)
		repos := cfg.ToRepositories()
		for _, repo := range repos {
			if err := store.Upsert(repo); err != nil {
				fatal(err)
			}
		}

		fmt.Printf("%s Loaded %d repositories from %s\n", okMark, len(repos), locs.ConfigPath)
	},
}

var configAddOrgCmd = &cobra.Command{
	Use:   "add-org",
	Short: "Add an organization to the config file",
	Run: func(cmd *cobra.Command, args []string) {
		id, _ := cmd.Flags().GetString("id")
		name, _ := cmd.Flags().GetString("name")
		description, _ := cmd.Flags().GetString("description")

		locs, err := config.Resolve()
		if err != nil {
			fatal(err)
		}

		cfg, err := config.Load(locs.ConfigPath)
		if err != nil {
			fatal(err)
		}

		cfg.Organizations[id] = config.Organization{Name: name, Description: description}

		if err := config.Save(locs.ConfigPath, cfg); err != nil {
			fatal(err)
		}

		fmt.Printf("%s Organization '%s' added to config\n", okMark, id)
	},
}

var configAddRepoCmd = &cobra.Command{
	Use:   "add-repo",
	Short: "Add a repository to the config file and database",
	Run: func(cmd *cobra.Command, args []string) {
		url, _ := cmd.Flags().GetString("url")
		org, _ := cmd.Flags().GetString("org")
		name, _ := cmd.Flags().GetString("name")
		description, _ := cmd.Flags().GetString("description")

		locs, err := config.Resolve()
		if err != nil {
			fatal(err)
		}

		cfg, err := config.Load(locs.ConfigPath)
		if err != nil {
			fatal(err)
		}

		cfg.Repositories[url] = config.RepositoryConfig{
			Organization: org,
			Name:         name,
			Description:  description,
		}

		if err := config.Save(locs.ConfigPath, cfg); err != nil {
			fatal(err)
		}

		orgName := org
		if o, ok := cfg.Organizations[org]; ok {
			orgName = o.Name
		}

		database := openDB()
		defer database.Close()

		err = repository.NewRepositoryStore(database).Upsert(models.Repository{
			URL:          url,
			Organization: orgName,
			Name:         name,
			Description:  description,
		})
		if err != nil {
			fatal(err)
		}

		fmt.Printf("%s Repository '%s' added to config and database\n", okMark, name)
	},
}

func init() {
	configAddOrgCmd.Flags().StringP("id", "i", "", "Organization identifier (key in config)")
	configAddOrgCmd.Flags().StringP("name", "n", "", "Organization name")
	configAddOrgCmd.Flags().StringP("description", "d", "", "Organization description")
	configAddOrgCmd.MarkFlagRequired("id")
	configAddOrgCmd.MarkFlagRequired("name")

	configAddRepoCmd.Flags().StringP("url", "u", "", "Repository URL")
	configAddRepoCmd.Flags().StringP("org", "o", "", "Organization identifier")
	configAddRepoCmd.Flags().StringP("name", "n", "", "Repository name")
	configAddRepoCmd.Flags().StringP("description", "d", "", "Repository description")
	configAddRepoCmd.MarkFlagRequired("url")
	configAddRepoCmd.MarkFlagRequired("org")
	configAddRepoCmd.MarkFlagRequired("name")

	configCmd.AddCommand(configSyncCmd)
	configCmd.AddCommand(configLoadCmd)
	configCmd.AddCommand(configAddOrgCmd)
	configCmd.AddCommand(configAddRepoCmd)
}
