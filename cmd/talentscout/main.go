package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/abs6187/talentscout/internal/bank"
	"github.com/abs6187/talentscout/internal/engine"
	"github.com/abs6187/talentscout/internal/handler"
	appI18n "github.com/abs6187/talentscout/internal/i18n"
	"github.com/abs6187/talentscout/internal/llm"
	"github.com/abs6187/talentscout/internal/model"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "talentscout",
		Short: "Adaptive technical screening interviews powered by LLMs",
	}

	serve := serveCmd()
	root.AddCommand(serve)

	// Make "serve" the default when no subcommand is given.
	root.RunE = serve.RunE
	root.Flags().AddFlagSet(serve.Flags())

	return root
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP assessment server",
		RunE:  runServe,
	}
	f := cmd.Flags()
	f.StringP("addr", "a", ":8080", "HTTP listen address")
	f.String("llm-url", "http://localhost:11434/v1", "OpenAI-compatible API base URL")
	f.String("llm-key", "ollama", "API key for LLM")
	f.String("llm-model", "llama3.2", "LLM model name")
	f.StringP("lang", "l", "en", "Default response language (en, ru)")
	f.IntP("max-questions", "n", 15, "Maximum questions per assessment")
	f.Int("skip-threshold", 3, "Skips tolerated before the session is aborted")
	f.Float64("similarity-cutoff", 0.7, "Reject generated questions at or above this similarity")
	f.Int("questions-per-tech", 2, "Questions per declared technology before general topics")
	f.Int("max-retries", 2, "Generation retries before the static bank is used")
	f.Duration("generate-timeout", 10*time.Second, "Per-attempt LLM call timeout")
	f.String("log-level", "info", "Log level (debug, info, warn, error)")
	f.String("log-format", "text", "Log format (text, json)")
	return cmd
}

func setupLogging(cmd *cobra.Command) {
	v := viperForCmd(cmd)

	var logLevel slog.Level
	switch strings.ToLower(v.GetString("log-level")) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	handlerOpts := &slog.HandlerOptions{Level: logLevel}
	var logHandler slog.Handler
	switch strings.ToLower(v.GetString("log-format")) {
	case "json":
		logHandler = slog.NewJSONHandler(os.Stderr, handlerOpts)
	default:
		logHandler = slog.NewTextHandler(os.Stderr, handlerOpts)
	}
	slog.SetDefault(slog.New(logHandler))
}

// viperForCmd binds a command's flags and environment to a fresh viper instance.
func viperForCmd(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	_ = v.BindPFlags(cmd.Flags())

	v.SetEnvPrefix("TALENTSCOUT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("talentscout")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/talentscout")
	v.AddConfigPath("/etc/talentscout")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Warn("error reading config file", "error", err)
		}
	} else {
		slog.Info("loaded config file", "path", v.ConfigFileUsed())
	}

	return v
}

func runServe(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	cfg := model.DefaultConfig()
	cfg.MaxQuestions = v.GetInt("max-questions")
	cfg.SkipThreshold = v.GetInt("skip-threshold")
	cfg.SimilarityCutoff = v.GetFloat64("similarity-cutoff")
	cfg.QuestionsPerTech = v.GetInt("questions-per-tech")
	cfg.MaxRetries = v.GetInt("max-retries")
	cfg.GenerateTimeout = v.GetDuration("generate-timeout")

	lang := v.GetString("lang")
	if err := appI18n.Init(lang); err != nil {
		return fmt.Errorf("init i18n: %w", err)
	}

	questionBank, err := bank.Load()
	if err != nil {
		return fmt.Errorf("load question bank: %w", err)
	}
	slog.Info("question bank loaded", "entries", questionBank.Len())

	llmClient := llm.New(
		v.GetString("llm-url"),
		v.GetString("llm-key"),
		v.GetString("llm-model"),
	)
	if err := llmClient.Ping(context.Background()); err != nil {
		// Generation degrades to the static bank, so a dead endpoint is
		// not fatal at startup.
		slog.Warn("LLM health check failed, continuing with bank fallback", "error", err)
	} else {
		slog.Info("LLM endpoint OK", "url", v.GetString("llm-url"), "model", v.GetString("llm-model"))
	}

	retry := engine.Policy{
		MaxAttempts: cfg.MaxRetries + 1,
		Backoff:     500 * time.Millisecond,
		Timeout:     cfg.GenerateTimeout,
	}
	generator := engine.NewGenerator(llmClient, retry, questionBank, cfg)
	evaluator := engine.NewEvaluator(llmClient, retry)

	h := handler.New(handler.NewRegistry(), generator, evaluator, cfg)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(appI18n.Middleware(lang))
	h.Routes(r)

	addr := v.GetString("addr")
	slog.Info("starting server",
		"addr", addr,
		"model", v.GetString("llm-model"),
		"llm_url", v.GetString("llm-url"),
		"lang", lang,
		"max_questions", cfg.MaxQuestions,
		"skip_threshold", cfg.SkipThreshold,
		"similarity_cutoff", cfg.SimilarityCutoff,
	)
	return http.ListenAndServe(addr, r)
}
