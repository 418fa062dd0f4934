package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/Earthpatel/Business-Operations-Bot/internal/bot"
	"github.com/Earthpatel/Business-Operations-Bot/internal/history"
	"github.com/Earthpatel/Business-Operations-Bot/internal/outwriter"
	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a single question and print the answer",
	Long: `Ask the bot one question, for example:

  opsbot ask "top 5 shops by revenue"
  opsbot ask "which shop has the lowest bay time"

The question and the answer are appended to the chat transcript.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory()
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		answer, err := newBot(store).Respond(strings.Join(args, " "))
		fmt.Fprintln(cmd.OutOrStdout(), answer)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "⚠ Warning: %v\n", err)
		}
		return nil
	},
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long:  `Read questions line by line from standard input and answer each one. Type "exit" or "quit" to leave.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory()
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		interactive := cmd.InOrStdin() == os.Stdin && outwriter.IsTerminal(os.Stdin)
		return runChat(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), newBot(store), interactive)
	},
}

// runChat answers one question per input line until EOF, an exit word, or ctx is done.
func runChat(ctx context.Context, in io.Reader, out, errOut io.Writer, b *bot.Bot, interactive bool) error {
	if interactive {
		fmt.Fprintln(out, history.Greeting)
	}

	scanner := bufio.NewScanner(in)
	for {
		if interactive {
			fmt.Fprint(out, "> ")
		}
		if !scanner.Scan() {
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return nil
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		switch strings.ToLower(line) {
		case "exit", "quit":
			return nil
		}
		answer, err := b.Respond(line)
		fmt.Fprintln(out, answer)
		if err != nil {
			fmt.Fprintf(errOut, "⚠ Warning: %v\n", err)
		}
	}
}

func init() {
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(chatCmd)
}
