package main

import (
	"context"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	gormjournal "wayfarer/internal/adapter/journal/gorm"
	"wayfarer/internal/adapter/llm/ollama"
	metricsinmem "wayfarer/internal/adapter/metrics/inmemory"
	"wayfarer/internal/adapter/world/httpclient"
	"wayfarer/internal/app/decide"
	"wayfarer/internal/app/run"
	"wayfarer/internal/config"
	"wayfarer/internal/domain/dialogue"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/spf13/cobra"
)

type options struct {
	serverURL  string
	token      string
	model      string
	ollamaURL  string
	dbPath     string
	tuningPath string
	seed       int64
}

func main() {
	opts := options{
		serverURL: envOr("WAYFARER_SERVER", "http://localhost:8000"),
		token:     os.Getenv("WAYFARER_TOKEN"),
		model:     envOr("WAYFARER_MODEL", "llama3.2"),
		ollamaURL: envOr("WAYFARER_OLLAMA", "http://localhost:11434"),
		dbPath:    envOr("WAYFARER_DB", "wayfarer.db"),
	}

	root := &cobra.Command{
		Use:          "wayfarer",
		Short:        "An autonomous character that lives in a shared tick-based world",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAgent(cmd.Context(), opts)
		},
	}
	root.Flags().StringVar(&opts.serverURL, "server", opts.serverURL, "game server base URL")
	root.Flags().StringVar(&opts.token, "token", opts.token, "bearer token for the game server")
	root.Flags().StringVar(&opts.model, "model", opts.model, "ollama model name")
	root.Flags().StringVar(&opts.ollamaURL, "ollama", opts.ollamaURL, "ollama base URL")
	root.Flags().StringVar(&opts.dbPath, "db", opts.dbPath, "local journal sqlite path")
	root.Flags().StringVar(&opts.tuningPath, "tuning", opts.tuningPath, "optional YAML tuning file")
	root.Flags().Int64Var(&opts.seed, "seed", 0, "random seed (0 picks one from the clock)")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		log.Fatalf("wayfarer: %v", err)
	}
}

func runAgent(ctx context.Context, opts options) error {
	tuning, err := config.Load(opts.tuningPath)
	if err != nil {
		return err
	}
	if opts.token == "" {
		log.Fatal("a server token is required (--token or WAYFARER_TOKEN)")
	}

	gen := ollama.New(opts.model, opts.ollamaURL, tuning.GenerateTimeout())
	pingCtx, cancel := context.WithTimeout(ctx, tuning.RequestTimeout())
	err = gen.Ping(pingCtx)
	cancel()
	if err != nil {
		// No text backend means no conversations at all; refuse to start.
		log.Fatalf("text backend check failed: %v", err)
	}

	worldClient, err := httpclient.New(opts.serverURL, opts.token, tuning.RequestTimeout())
	if err != nil {
		return err
	}
	meCtx, cancel := context.WithTimeout(ctx, tuning.RequestTimeout())
	profile, err := worldClient.Me(meCtx)
	cancel()
	if err != nil {
		log.Fatalf("could not identify against %s: %v", opts.serverURL, err)
	}
	hlog.Infof("awake as %s %s (%s)", profile.Emoji, profile.Name, profile.ID)

	journal, err := gormjournal.Open(opts.dbPath)
	if err != nil {
		return err
	}

	session, err := decide.NewSession(profile, tuning)
	if err != nil {
		return err
	}

	seed := opts.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	loop := &run.Loop{
		World:   worldClient,
		Journal: journal,
		Tuning:  tuning,
		Engine: &decide.Engine{
			Session:   session,
			Gen:       gen,
			Farewells: dialogue.NewLexiconDetector(),
			Metrics:   metricsinmem.NewRecorder(),
			Tuning:    tuning,
			Rand:      rand.New(rand.NewSource(seed)),
			Now:       time.Now,
		},
	}
	return loop.Run(ctx)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
