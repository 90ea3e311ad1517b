package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mgiraldo/contrack/internal/repository"
)

var loadoutCmd = &cobra.Command{
	Use:   "loadout",
	Short: "Manage prompt and rule loadouts",
}

var loadoutListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all loadouts",
	Run: func(cmd *cobra.Command, args []string) {
		database := openDB()
		defer database.Close()

		loadouts, err := repository.NewLoadoutStore(database).List()
		if err != nil {
			fatal(err)
		}

		fmt.Println("\nLoadouts")
		fmt.Println(strings.Repeat("=", 80))

		for _, l := range loadouts {
			marker := " "
			if l.IsDefault {
				marker = "*"
			}
			fmt.Printf("%s %s (%d rules, %d prompts)\n", marker, bold.Render(l.Name), l.RuleCount, l.PromptCount)
		}
	},
}

var loadoutCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new empty loadout",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		database := openDB()
		defer database.Close()

		if err := repository.NewLoadoutStore(database).Create(args[0]); err != nil {
			fatal(err)
		}
		fmt.Printf("%s Loadout '%s' created\n", okMark, args[0])
	},
}

var loadoutLoadCmd = &cobra.Command{
	Use:   "load <name>",
	Short: "Load a loadout, deleting rules and prompts outside it",
	Run: func(cmd *cobra.Command, args []string) {
		database := openDB()
		defer database.Close()

		if err := repository.NewLoadoutStore(database).Load(args[0]); err != nil {
			fatal(err)
		}
		fmt.Printf("%s Loadout '%s' loaded\n", okMark, args[0])
	},
	Args: cobra.ExactArgs(1),
}

var loadoutSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save the current prompts and rules into a loadout",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		database := openDB()
		defer database.Close()

		if err := repository.NewLoadoutStore(database).Save(args[0]); err != nil {
			fatal(err)
		}
		fmt.Printf("%s Current prompts and rules saved to loadout '%s'\n", okMark, args[0])
	},
}

var loadoutDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a loadout",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		database := openDB()
		defer database.Close()

		if err := repository.NewLoadoutStore(database).Delete(args[0]); err != nil {
			fatal(err)
		}
		fmt.Printf("%s Loadout '%s' deleted\n", okMark, args[0])
	},
}

var loadoutReloadDefaultCmd = &cobra.Command{
	Use:   "reload-default",
	Short: "Reload the default loadout",
	Run: func(cmd *cobra.Command, args []string) {
		database := openDB()
		defer database.Close()

		if err := repository.NewLoadoutStore(database).ReloadDefault(); err != nil {
			fatal(err)
		}
		fmt.Printf("%s Default loadout reloaded\n", okMark)
	},
}

func init() {
	loadoutCmd.AddCommand(loadoutListCmd)
	loadoutCmd.AddCommand(loadoutCreateCmd)
	loadoutCmd.AddCommand(loadoutLoadCmd)
	loadoutCmd.AddCommand(loadoutSaveCmd)
	loadoutCmd.AddCommand(loadoutDeleteCmd)
	loadoutCmd.AddCommand(loadoutReloadDefaultCmd)
}
