package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/neurox-app/mindcare/backend/internal/analysis/support"
	"github.com/neurox-app/mindcare/backend/internal/model/content"
	"github.com/neurox-app/mindcare/backend/internal/service/chat"
)

var (
	typingDelay time.Duration
	seed        int64
	altScreen   bool
)

var rootCmd = &cobra.Command{
	Use:   "chatcli",
	Short: "Talk to the MindCare companion in your terminal",
	Long: `chatcli runs the conversational engine in-process and renders the
conversation with a typing indicator, the same way the web chat view does.

Type a message and press Enter. Enter /1 to /6 to send a suggested message.`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

var classifyCmd = &cobra.Command{
	Use:   "classify [text]",
	Short: "Print the support category for a message",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		category := support.Classify(args[0])
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", category, support.Describe(category))
		return nil
	},
}

var repliesCmd = &cobra.Command{
	Use:   "replies [category]",
	Short: "List the replies the companion can give for a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		category, ok := support.ParseCategory(args[0])
		if !ok {
			return fmt.Errorf("unknown category %q, expected one of %v", args[0], support.Categories())
		}
		replies := support.DefaultReplies().Candidates(category)
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", category, support.Describe(category))
		for i, reply := range replies {
			fmt.Fprintf(cmd.OutOrStdout(), "  %d. %s\n", i+1, reply)
		}
		return nil
	},
}

func init() {
	rootCmd.Flags().DurationVar(&typingDelay, "delay", chat.DefaultTypingDelay, "simulated typing delay before each reply")
	rootCmd.Flags().Int64Var(&seed, "seed", 0, "seed for reply selection (0 picks one from the clock)")
	rootCmd.Flags().BoolVar(&altScreen, "alt-screen", true, "render in the terminal's alternate screen")
	rootCmd.AddCommand(classifyCmd, repliesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runChat(cmd *cobra.Command, _ []string) error {
	if typingDelay < 0 {
		return fmt.Errorf("--delay must not be negative, got %s", typingDelay)
	}

	store := content.NewMemoryStore(content.Seed())
	engine := support.NewDefaultEngine(support.NewRandSource(seed))
	svc := chat.NewService(chat.Config{
		TypingDelay:  typingDelay,
		Greeting:     content.Greeting,
		QuickReplies: store.QuickReplies(),
	}, engine, nil)
	defer svc.Shutdown()

	session, err := svc.Open(cmd.Context())
	if err != nil {
		return fmt.Errorf("open session: %w", err)
	}

	opts := []tea.ProgramOption{}
	if altScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	_, err = tea.NewProgram(newChatModel(session, store.CrisisNotice()), opts...).Run()
	return err
}
