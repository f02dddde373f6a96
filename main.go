package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/n0madic/gpt5-mcp/internal/codec"
	"github.com/n0madic/gpt5-mcp/internal/config"
	"github.com/n0madic/gpt5-mcp/internal/limits"
	"github.com/n0madic/gpt5-mcp/internal/server"
	"github.com/n0madic/gpt5-mcp/internal/upstream"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const usage = "Usage: gpt5-mcp [serve|config|info|version] [flags]"

func main() {
	cmd := "serve"
	args := os.Args[1:]
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		cmd, args = args[0], args[1:]
	}

	switch cmd {
	case "serve":
		os.Exit(cmdServe(args))
	case "config":
		os.Exit(cmdConfig(args))
	case "info":
		os.Exit(cmdInfo(args))
	case "version":
		fmt.Println(config.ServerName, version)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(1)
	}
}

// loadConfig parses the shared flags and resolves the configuration once.
func loadConfig(fs *flag.FlagSet, args []string) config.Config {
	envFile := fs.String("env-file", "", "Path to a .env file (default: $ENV_FILE, ./.env, then next to the executable)")
	verbose := fs.Bool("verbose", false, "Enable verbose logging")
	fs.Parse(args)

	env := config.Environ(*envFile)
	if *verbose {
		env[config.EnvVerbose] = "1"
	}
	cfg := config.Resolve(env)
	setupLogging(cfg.Verbose)
	return cfg
}

// setupLogging sends all logs to stderr; stdout carries MCP frames.
func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func cmdServe(args []string) int {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfg := loadConfig(fs, args)

	if !cfg.HasAPIKey() {
		slog.Error(config.EnvAPIKey + " is not set. Please set it in your environment or .env file.")
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.New(&cfg, upstream.NewClient(&cfg, version), version)

	slog.Info("gpt5-mcp starting", "version", version, "model", cfg.Model, "image_model", string(cfg.ImageModel))
	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("server error", "error", err)
		return 1
	}
	return 0
}

func cmdConfig(args []string) int {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	jsonOut := fs.Bool("json", false, "Output the resolved configuration as JSON")
	cfg := loadConfig(fs, args).Redacted()

	if *jsonOut {
		data, _ := json.MarshalIndent(cfg, "", "  ")
		fmt.Println(string(data))
		return 0
	}

	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = "<not set>"
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "<default>"
	}

	fmt.Println("\u2699  Configuration")
	fmt.Printf("  • API key: %s\n", apiKey)
	fmt.Printf("  • Base URL: %s\n", baseURL)
	fmt.Printf("  • Model: %s\n", cfg.Model)
	fmt.Printf("  • Retries: %d, timeout: %s\n", cfg.MaxRetries, cfg.Timeout())
	fmt.Printf("  • Reasoning effort: %s, verbosity: %s\n", cfg.ReasoningEffort, cfg.DefaultVerbosity)
	fmt.Printf("  • Web search: %t (context %s)\n", cfg.WebSearchDefaultEnabled, cfg.WebSearchContextSize)
	fmt.Println()
	fmt.Println("\U0001F5BC  Images")
	fmt.Printf("  • Model: %s, size: %s\n", cfg.ImageModel, cfg.ImageSize)
	fmt.Printf("  • Quality: %s, response format: %s\n", cfg.ImageQuality, cfg.ImageResponseFormat)
	return 0
}

func cmdInfo(args []string) int {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	cfg := loadConfig(fs, args)

	if !cfg.HasAPIKey() {
		fmt.Println("\U0001F464 Account")
		fmt.Printf("  • No API key configured\n")
		fmt.Printf("  • Set %s in your environment or .env file\n", config.EnvAPIKey)
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout())
	defer cancel()

	info, err := upstream.NewClient(&cfg, version).CheckModel(ctx, cfg.Model)
	if err != nil {
		fmt.Println("\U0001F464 Account")
		fmt.Printf("  • %s\n", codec.FormatUpstreamError(err))
		return 1
	}

	fmt.Println("\U0001F464 Account")
	fmt.Printf("  • API key: %s\n", cfg.Redacted().APIKey)
	fmt.Printf("  • Model: %s (owned by %s)\n", info.ID, info.OwnedBy)
	if info.RequestID != "" {
		fmt.Printf("  • Request ID: %s\n", info.RequestID)
	}
	fmt.Println()
	printRateLimits(info)
	return 0
}

func printRateLimits(info *upstream.ModelInfo) {
	fmt.Println("\U0001F4CA Rate Limits")

	if info.RateLimits == nil {
		fmt.Println("  The API did not report rate limits for this key.")
		fmt.Println()
		return
	}

	fmt.Printf("Last updated: %s\n", formatLocalDateTime(info.CapturedAt))
	fmt.Println()

	type windowInfo struct {
		icon   string
		desc   string
		window *limits.RateLimitWindow
	}
	var windows []windowInfo
	if info.RateLimits.Requests != nil {
		windows = append(windows, windowInfo{"⚡", "Requests", info.RateLimits.Requests})
	}
	if info.RateLimits.Tokens != nil {
		windows = append(windows, windowInfo{"\U0001F524", "Tokens", info.RateLimits.Tokens})
	}

	for i, wi := range windows {
		if i > 0 {
			fmt.Println()
		}
		pct := clampPercent(wi.window.UsedPercent())
		color := usageColor(pct)
		reset := "\033[0m"
		bar := renderProgressBar(pct)

		fmt.Printf("%s %s\n", wi.icon, wi.desc)
		fmt.Printf("%s%s%s %s%5.1f%% used%s | %d of %d left\n", color, bar, reset, color, pct, reset, wi.window.Remaining, wi.window.Limit)

		resetIn := formatResetDuration(wi.window.ResetsIn)
		resetAt := limits.ComputeResetAt(info.CapturedAt, wi.window)
		if resetIn != "" && resetAt != nil {
			fmt.Printf("    ⏳ Resets in: %s at %s\n", resetIn, formatLocalDateTime(*resetAt))
		}
	}
	fmt.Println()
}

const barSegments = 30

func renderProgressBar(pct float64) string {
	ratio := pct / 100.0
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	filledExact := ratio * float64(barSegments)
	filled := int(filledExact)
	partial := filledExact - float64(filled)
	hasPartial := partial > 0.5
	if hasPartial {
		filled++
	}
	if filled > barSegments {
		filled = barSegments
	}
	empty := barSegments - filled
	var bar string
	if hasPartial && filled > 0 {
		bar = strings.Repeat("█", filled-1) + "▓" + strings.Repeat("░", empty)
	} else {
		bar = strings.Repeat("█", filled) + strings.Repeat("░", empty)
	}
	return "[" + bar + "]"
}

func usageColor(pct float64) string {
	if pct >= 90 {
		return "\033[91m"
	} else if pct >= 75 {
		return "\033[93m"
	} else if pct >= 50 {
		return "\033[94m"
	}
	return "\033[92m"
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func formatLocalDateTime(t time.Time) string {
	local := t.Local()
	tz := local.Format("MST")
	return fmt.Sprintf("%s %s", local.Format("Jan 02, 2006 15:04:05"), tz)
}

// formatResetDuration renders a reset window coarsely; sub-second windows
// read as "under 1s".
func formatResetDuration(d *time.Duration) string {
	if d == nil {
		return ""
	}
	v := int(d.Seconds())
	if v < 0 {
		v = 0
	}
	hours := v / 3600
	v %= 3600
	minutes := v / 60
	v %= 60

	var parts []string
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	if v > 0 {
		parts = append(parts, fmt.Sprintf("%ds", v))
	}
	if len(parts) == 0 {
		parts = append(parts, "under 1s")
	}
	return strings.Join(parts, " ")
}
