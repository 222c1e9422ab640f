package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"GridironDigest/internal/app"
	"GridironDigest/internal/config"
	"GridironDigest/internal/domain"
	"GridironDigest/internal/logging"
	"GridironDigest/internal/pipeline"
)

// Exit codes shared with the orchestrating scripts: 0 success, 1 no
// qualifying work (zero games, expected), 2 operational or data error.
const (
	exitOK      = 0
	exitNoGames = 1
	exitError   = 2
)

var (
	configPath string
	dateFlag   string
	typeFlag   string
	weekFlag   int
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:           "gridiron",
		Short:         "Weekly NFL newsletter pipeline: fetch, enrich, publish",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (or GRIDIRON_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&dateFlag, "date", "", "target date in YYYYMMDD form")
	rootCmd.PersistentFlags().StringVar(&typeFlag, "type", "day", "newsletter type: day or week")
	rootCmd.PersistentFlags().IntVar(&weekFlag, "week", 0, "pin the season week instead of computing it from the date")

	rootCmd.AddCommand(fetchCmd())
	rootCmd.AddCommand(enrichCmd())
	rootCmd.AddCommand(publishCmd())
	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(weekCmd())
	rootCmd.AddCommand(rebuildIndexCmd())

	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, pipeline.ErrNoGames) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(exitNoGames)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(exitError)
	}
	os.Exit(exitOK)
}

// buildApp constructs the application from flags and environment.
func buildApp() (*app.Application, error) {
	cfg := config.Load(configPath)
	logger := logging.New(cfg.Logging.Level)
	return app.New(cfg, logger)
}

func targetGranularity() (domain.Granularity, error) {
	return domain.ParseGranularity(typeFlag)
}

func requireDate() error {
	if dateFlag == "" {
		return fmt.Errorf("--date is required (YYYYMMDD)")
	}
	return nil
}

func fetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Fetch the week's games and recap articles into the games artifact",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireDate(); err != nil {
				return err
			}
			granularity, err := targetGranularity()
			if err != nil {
				return err
			}
			application, err := buildApp()
			if err != nil {
				return err
			}
			path, err := application.Fetch(context.Background(), dateFlag, granularity, weekFlag)
			if err != nil {
				return err
			}
			fmt.Println("games artifact:", path)
			return nil
		},
	}
}

func enrichCmd() *cobra.Command {
	var providerName string
	cmd := &cobra.Command{
		Use:   "enrich",
		Short: "Generate summaries and badges, producing the newsletter artifact",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireDate(); err != nil {
				return err
			}
			granularity, err := targetGranularity()
			if err != nil {
				return err
			}
			application, err := buildApp()
			if err != nil {
				return err
			}
			path, err := application.Enrich(context.Background(), dateFlag, granularity, weekFlag, providerName)
			if err != nil {
				return err
			}
			fmt.Println("newsletter artifact:", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&providerName, "provider", "", "ai provider: anthropic, openai, or gemini")
	return cmd
}

func publishCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "publish",
		Short: "Render the newsletter HTML and update the archive and index",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireDate(); err != nil {
				return err
			}
			granularity, err := targetGranularity()
			if err != nil {
				return err
			}
			application, err := buildApp()
			if err != nil {
				return err
			}
			path, err := application.Publish(context.Background(), dateFlag, granularity, weekFlag)
			if err != nil {
				return err
			}
			fmt.Println("published:", path)
			return nil
		},
	}
}

func runCmd() *cobra.Command {
	var providerName string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run fetch, enrich, and publish in sequence",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireDate(); err != nil {
				return err
			}
			granularity, err := targetGranularity()
			if err != nil {
				return err
			}
			application, err := buildApp()
			if err != nil {
				return err
			}
			path, err := application.Run(context.Background(), dateFlag, granularity, weekFlag, providerName)
			if err != nil {
				return err
			}
			fmt.Println("published:", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&providerName, "provider", "", "ai provider: anthropic, openai, or gemini")
	return cmd
}

func weekCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "week",
		Short: "Print the season week the pipeline would operate on for a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireDate(); err != nil {
				return err
			}
			application, err := buildApp()
			if err != nil {
				return err
			}
			week, err := application.Week(dateFlag, weekFlag)
			if err != nil {
				return err
			}
			fmt.Println(week)
			return nil
		},
	}
}

func rebuildIndexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rebuild-index",
		Short: "Regenerate the archive index from archive.json",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := buildApp()
			if err != nil {
				return err
			}
			return application.RebuildIndex()
		},
	}
}
