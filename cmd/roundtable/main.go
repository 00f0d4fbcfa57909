// Command roundtable wires the capability registry, agent factory and
// round-robin orchestrator into a small CLI. It is demo plumbing around the
// core packages: descriptor file in, conversation history JSON out.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"roundtable/agent"
	"roundtable/config"
	"roundtable/logging"
	"roundtable/model"
	modelanthropic "roundtable/model/anthropic"
	modelopenai "roundtable/model/openai"
	"roundtable/registry"
	"roundtable/session"
	"roundtable/team"
	"roundtable/tool/githubrepo"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type runOptions struct {
	configPath  string
	workspace   string
	teamName    string
	task        string
	maxMessages int
	provider    string
	outPath     string
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "roundtable",
		Short:         "Round-robin multi-agent conversations with a capability registry",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Missing .env is fine; explicit environment wins anyway.
			_ = godotenv.Load()
		},
	}
	root.AddCommand(newRunCmd(), newToolsCmd())
	return root
}

func newRunCmd() *cobra.Command {
	opts := runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a team conversation and save its history",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConversation(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.configPath, "config", "mcp_servers.json", "tool-server descriptor file")
	cmd.Flags().StringVar(&opts.workspace, "workspace", envOr("ROUNDTABLE_WORKSPACE", "workspace"), "sandbox root for file tools")
	cmd.Flags().StringVar(&opts.teamName, "team", "research", "team preset: research or development")
	cmd.Flags().StringVar(&opts.task, "task", "", "conversation task (required)")
	cmd.Flags().IntVar(&opts.maxMessages, "max-messages", 20, "terminate after this many messages")
	cmd.Flags().StringVar(&opts.provider, "provider", "groq", "model provider: groq, openai, anthropic or mock")
	cmd.Flags().StringVar(&opts.outPath, "out", "conversation_history.json", "history output file")
	_ = cmd.MarkFlagRequired("task")
	return cmd
}

func newToolsCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List configured servers and the tools they provide",
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := config.Load(configPath)
			if err != nil {
				return err
			}
			reg, err := registry.New(file)
			if err != nil {
				return err
			}
			fmt.Println("Servers:")
			for _, s := range reg.Servers() {
				fmt.Printf("  %s: %s\n", s.Name, s.Description)
			}
			fmt.Println("Tools:")
			for _, t := range reg.Tools() {
				fmt.Printf("  %s\n", t.Description)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "mcp_servers.json", "tool-server descriptor file")
	return cmd
}

func runConversation(ctx context.Context, opts runOptions) error {
	logger, closeLog, err := buildLogger()
	if err != nil {
		return err
	}
	if closeLog != nil {
		defer closeLog()
	}

	file, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	reg, err := registry.New(file, func(o *registry.Options) {
		o.WorkspaceRoot = opts.workspace
		o.Logger = logger
		if token := os.Getenv("GITHUB_TOKEN"); token != "" {
			o.GitHubProvider = githubrepo.NewRESTProvider(token)
		}
	})
	if err != nil {
		return err
	}

	llm, err := buildModel(opts.provider)
	if err != nil {
		return err
	}

	presets, err := teamPresets(opts.teamName)
	if err != nil {
		return err
	}

	toolNames := make([]string, 0)
	for _, t := range reg.Tools() {
		toolNames = append(toolNames, t.Name)
	}

	factory := agent.NewFactory(reg, func(o *agent.FactoryOptions) { o.Logger = logger })
	agents, err := factory.CreateTeam(presets, toolNames, llm)
	if err != nil {
		return err
	}

	orch, err := team.New(agents, team.MaxMessages(opts.maxMessages), func(o *team.Options) {
		o.Logger = logger
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		orch.Cancel()
	}()

	log, runErr := orch.Run(ctx, opts.task)

	for _, m := range log.Messages() {
		fmt.Printf("[%d] %s: %s\n", m.SequenceNumber, m.Speaker, m.Content)
	}
	fmt.Printf("Session %s after %d messages\n", orch.State(), log.Len())

	if err := session.NewFileStore().Save(log, opts.outPath); err != nil {
		return err
	}
	fmt.Printf("History saved to %s\n", opts.outPath)

	return runErr
}

func buildLogger() (logging.Logger, func() error, error) {
	level := logging.ParseLogLevel(os.Getenv("LOG_LEVEL"))
	if path := os.Getenv("LOG_FILE"); path != "" {
		return logging.NewFileTeeLogger(path, level)
	}
	return logging.NewSlogLogger(level, "text", false), nil, nil
}

func buildModel(provider string) (model.Model, error) {
	switch provider {
	case "groq":
		key := os.Getenv("GROQ_API_KEY")
		if key == "" {
			return nil, fmt.Errorf("GROQ_API_KEY environment variable is required")
		}
		return modelopenai.NewGroqModel(key), nil
	case "openai":
		return modelopenai.NewModel(), nil
	case "anthropic":
		return modelanthropic.NewModel(), nil
	case "mock":
		return model.NewMockModel("mock"), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", provider)
	}
}

func teamPresets(name string) ([]agent.Preset, error) {
	switch name {
	case "research":
		return agent.ResearchTeam(), nil
	case "development":
		return agent.DevelopmentTeam(), nil
	default:
		return nil, fmt.Errorf("unknown team %q, expected research or development", name)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
