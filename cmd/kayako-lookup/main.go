// Command kayako-lookup runs the ticket-mention watcher once against the
// configured helpdesk and prints the reply the bot would post.
//
//	kayako-lookup [--env-file path] [--log-level level] <message text>
//
// API_KEY, SECRET_KEY and BASE_URL come from the environment (or the env
// file). The command exits 1 when the watcher stays silent.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/spec-kit/kayako-bot/internal/config"
	"github.com/spec-kit/kayako-bot/internal/dispatch"
	"github.com/spec-kit/kayako-bot/internal/observability"
	"github.com/spec-kit/kayako-bot/internal/plugin"
)

func main() {
	replied, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "kayako-lookup: %v\n", err)
		os.Exit(2)
	}
	if !replied {
		os.Exit(1)
	}
}

func run() (bool, error) {
	var (
		envFile  string
		logLevel string
		html     bool
	)
	flags := pflag.NewFlagSet("kayako-lookup", pflag.ContinueOnError)
	flags.StringVar(&envFile, "env-file", "", "load environment from this file instead of .env")
	flags.StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	flags.BoolVar(&html, "html", false, "print the HTML rendering instead of Markdown")
	if err := flags.Parse(os.Args[1:]); err != nil {
		return false, err
	}
	text := strings.Join(flags.Args(), " ")
	if text == "" {
		return false, fmt.Errorf("usage: kayako-lookup [flags] <message text>")
	}

	cfg, err := config.LoadFile(envFile)
	if err != nil {
		return false, err
	}
	cfg.Logger.Level = logLevel
	cfg.Logger.Format = "console"
	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		return false, err
	}
	defer logger.Sync() //nolint:errcheck

	dispatcher := dispatch.NewDispatcher(dispatch.NewTemplates(), logger)
	kayako := plugin.NewKayako(logger, plugin.Options{HTTPTimeout: cfg.Kayako.HTTPTimeout()})
	pluginCfg := map[string]string{
		plugin.KeyAPIKey:    os.Getenv(plugin.KeyAPIKey),
		plugin.KeySecretKey: os.Getenv(plugin.KeySecretKey),
		plugin.KeyBaseURL:   os.Getenv(plugin.KeyBaseURL),
	}
	if err := dispatcher.Load(kayako, pluginCfg); err != nil {
		return false, err
	}

	replies := dispatcher.Dispatch(context.Background(), dispatch.Message{Channel: "cli", Sender: os.Getenv("USER"), Text: text})
	if len(replies) == 0 {
		logger.Debug("no reply", zap.String("text", text))
		return false, nil
	}
	for _, r := range replies {
		if html {
			fmt.Print(r.HTML)
		} else {
			fmt.Println(r.Markdown)
		}
	}
	return true, nil
}
