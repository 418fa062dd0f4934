package cmd

import (
	"fmt"

	"github.com/Earthpatel/Business-Operations-Bot/internal/history"
	"github.com/Earthpatel/Business-Operations-Bot/internal/utils"
	"github.com/spf13/cobra"
)

var historyJSON bool

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show or clear the chat transcript",
}

var historyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the chat transcript",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory()
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		msgs, err := store.Load()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if historyJSON {
			b, err := utils.PrettyJSON(msgs)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(b))
			return nil
		}
		for _, m := range msgs {
			who := "You"
			if m.Role == history.RoleAssistant {
				who = "Bot"
			}
			fmt.Fprintf(out, "[%s] %s: %s\n", m.CreatedAt.Local().Format("2006-01-02 15:04"), who, m.Content)
		}
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the chat transcript",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory()
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		if err := store.Clear(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Cleared chat history")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyShowCmd.Flags().BoolVar(&historyJSON, "json", false, "print the transcript as JSON")
}
