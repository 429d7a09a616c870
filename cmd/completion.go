package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chris/grafik/internal/schedule"
	"github.com/chris/grafik/pkg/models"
)

func init() {
	// Register custom completions after all commands are initialized
	cobra.OnInitialize(registerCompletions)
}

func registerCompletions() {
	// --db flag: complete with .db files
	rootCmd.RegisterFlagCompletionFunc("db", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"db"}, cobra.ShellCompDirectiveFilterFileExt
	})
	rootCmd.RegisterFlagCompletionFunc("config", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"yaml", "yml"}, cobra.ShellCompDirectiveFilterFileExt
	})

	for _, cmd := range []*cobra.Command{addCmd, editCmd} {
		cmd.RegisterFlagCompletionFunc("type", completeTypes(false))
		cmd.RegisterFlagCompletionFunc("reminder", completeReminders)
	}
	editCmd.RegisterFlagCompletionFunc("status", completeStatuses(false))

	listCmd.RegisterFlagCompletionFunc("type", completeTypes(true))
	listCmd.RegisterFlagCompletionFunc("status", completeStatuses(true))

	exportCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{
			"text\tAligned text table",
			"ics\tiCalendar file",
		}, cobra.ShellCompDirectiveNoFileComp
	})
	exportCmd.RegisterFlagCompletionFunc("out", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return nil, cobra.ShellCompDirectiveFilterDirs
	})
}

// completeTypes offers every event type with its label
func completeTypes(withAll bool) cobra.CompletionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		var completions []string
		if withAll {
			completions = append(completions, schedule.FilterAll+"\tAll types")
		}
		for _, t := range models.AllEventTypes {
			completions = append(completions, string(t)+"\t"+t.Label())
		}
		return completions, cobra.ShellCompDirectiveNoFileComp
	}
}

// completeStatuses offers every status with its label
func completeStatuses(withAll bool) cobra.CompletionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		var completions []string
		if withAll {
			completions = append(completions, schedule.FilterAll+"\tAll statuses")
		}
		for _, s := range models.AllStatuses {
			completions = append(completions, string(s)+"\t"+s.Label())
		}
		return completions, cobra.ShellCompDirectiveNoFileComp
	}
}

func completeReminders(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	completions := []string{"0\tNo reminder"}
	for _, m := range models.ReminderChoices {
		completions = append(completions, fmt.Sprintf("%d\t%d minutes before", m, m))
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}
