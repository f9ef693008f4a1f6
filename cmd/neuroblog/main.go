// NeuroBlog agent server — serves the moderation REST API and runs the
// AI suggestion pipeline against trending news.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/neuroblog/neuroblog/internal/agent"
	"github.com/neuroblog/neuroblog/internal/agent/gen"
	"github.com/neuroblog/neuroblog/internal/agent/images"
	"github.com/neuroblog/neuroblog/internal/agent/topics"
	"github.com/neuroblog/neuroblog/internal/api"
	"github.com/neuroblog/neuroblog/internal/blog"
	"github.com/neuroblog/neuroblog/internal/config"
	"github.com/neuroblog/neuroblog/internal/user"
	"github.com/neuroblog/neuroblog/pkg/storage"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "neuroblog",
		Short: "NeuroBlog AI suggestion agent",
		Long:  "NeuroBlog generates moderation-ready draft blog posts from trending news using a generative AI service.",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	var cfgPath string
	var autoStart bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the REST API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}

			ag, uStore, db, err := buildAgent(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			if autoStart {
				ag.StartAutoGeneration()
			}

			server := api.NewServer(uStore, ag, cfg.JWTSecret)
			srv := &http.Server{
				Addr:    ":" + cfg.Port,
				Handler: server.Routes(),
			}

			go func() {
				slog.Info("starting NeuroBlog API server", "port", cfg.Port)
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					slog.Error("server failed", "error", err)
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			<-quit

			slog.Info("shutting down")
			ag.StopAutoGeneration()
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(ctx)
		},
	}

	cmd.Flags().StringVar(&cfgPath, "config", "neuroblog.yaml", "config file path")
	cmd.Flags().BoolVar(&autoStart, "auto", false, "start the autonomous generation schedule immediately")
	return cmd
}

func generateCmd() *cobra.Command {
	var cfgPath string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Run one on-demand generation cycle and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}

			ag, _, db, err := buildAgent(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			suggestions, err := ag.Generate(cmd.Context(), ag.OnDemandOptions())
			for _, sug := range suggestions {
				fmt.Printf("#%d %s [%s]\n", sug.ID, sug.Title, sug.Category)
			}
			if err != nil {
				return err
			}
			fmt.Printf("generated %d suggestions\n", len(suggestions))
			return nil
		},
	}

	cmd.Flags().StringVar(&cfgPath, "config", "neuroblog.yaml", "config file path")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("neuroblog", version)
		},
	}
}

// buildAgent wires the stores and pipeline components from config.
func buildAgent(cfg config.Config) (*agent.Agent, *user.Store, *storage.DB, error) {
	db, err := storage.Open(cfg.Database)
	if err != nil {
		return nil, nil, nil, err
	}

	ctx := context.Background()
	for _, schema := range []string{user.Schema, blog.Schema} {
		if err := db.Migrate(ctx, schema); err != nil {
			db.Close()
			return nil, nil, nil, err
		}
	}

	registry := topics.NewRegistry()
	registry.Register(topics.NewNewsAPIProvider(cfg.NewsAPIKey))
	registry.Register(topics.NewRSSProvider(cfg.RSSFeeds))

	genCfg := cfg.Generation
	var completer gen.Completer
	if genCfg.APIKey == "" {
		slog.Warn("generation API key not set; generation cycles will fail until configured")
		completer = unconfiguredCompleter{}
	} else {
		completer, err = gen.NewClient(genCfg)
		if err != nil {
			db.Close()
			return nil, nil, nil, err
		}
	}

	resolver := images.NewResolver(images.NewPexelsProvider(cfg.PexelsAPIKey))
	ag := agent.New(blog.NewStore(db), registry, completer, resolver, cfg.Agent)
	return ag, user.NewStore(db), db, nil
}

// unconfiguredCompleter fails every call so an unset key degrades to a
// reported error instead of a crash at startup.
type unconfiguredCompleter struct{}

func (unconfiguredCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	return "", fmt.Errorf("%w: generation API key not configured", gen.ErrUpstreamUnavailable)
}
