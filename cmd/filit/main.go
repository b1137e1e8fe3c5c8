// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/filit"
	"github.com/poiesic/filit/ai"
	"github.com/poiesic/filit/ai/openai"
	"github.com/poiesic/filit/core"
	"github.com/poiesic/filit/retrieval/weaviate"
)

func main() {
	serviceFlags := []cli.Flag{
		&cli.StringFlag{
			Name:  "weaviate-host",
			Usage: "Weaviate host (host:port)",
			Value: "localhost:8080",
		},
		&cli.StringFlag{
			Name:  "weaviate-scheme",
			Usage: "Weaviate scheme (http or https)",
			Value: "http",
		},
		&cli.StringFlag{
			Name:  "model-host",
			Usage: "Chat completion service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "model",
			Usage: "Chat model name",
			Value: "qwen2.5:3b",
		},
		&cli.StringFlag{
			Name:    "api-key",
			Usage:   "API key for the model provider",
			EnvVars: []string{"OPENAI_API_KEY"},
			Value:   "none",
		},
		&cli.StringFlag{
			Name:  "provider",
			Usage: "Model provider identifier (openai, anthropic)",
			Value: "openai",
		},
		&cli.StringFlag{
			Name:  "search-mode",
			Usage: "Search mode (vector or hybrid)",
			Value: "vector",
		},
		&cli.BoolFlag{
			Name:  "rerank",
			Usage: "Enable passage reranking",
		},
		&cli.BoolFlag{
			Name:  "rewrite",
			Usage: "Enable query expansion",
		},
	}

	app := &cli.App{
		Name:  "filit",
		Usage: "Ask questions about SEC filings",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "ask",
				Usage:     "Answer one question about one company",
				ArgsUsage: "TICKER QUESTION",
				Action:    askCommand,
				Flags:     serviceFlags,
			},
			{
				Name:      "compare",
				Usage:     "Answer the same question across several companies",
				ArgsUsage: "QUESTION",
				Action:    compareCommand,
				Flags: append([]cli.Flag{
					&cli.StringSliceFlag{
						Name:     "ticker",
						Aliases:  []string{"t"},
						Usage:    "Ticker to include (repeat for each company)",
						Required: true,
					},
				}, serviceFlags...),
			},
			{
				Name:      "classify",
				Usage:     "Show how a question would be categorized",
				ArgsUsage: "QUESTION",
				Action:    classifyCommand,
				Flags:     serviceFlags,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func buildService(c *cli.Context) (*filit.Service, error) {
	client, err := weaviate.Connect(c.String("weaviate-host"), c.String("weaviate-scheme"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to weaviate: %w", err)
	}

	generator, err := openai.NewGenerator(ai.NewConfig(
		ai.WithHost(c.String("model-host")),
		ai.WithModel(c.String("model")),
		ai.WithToken(c.String("api-key")),
		ai.WithProvider(c.String("provider")),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create generator: %w", err)
	}

	return filit.NewService(client, generator)
}

func requestFlags(c *cli.Context) *core.RetrievalFlags {
	flags := core.DefaultRetrievalFlags()
	flags.Rerank = c.Bool("rerank")
	flags.QueryRewrite = c.Bool("rewrite")
	flags.SectionBoost = c.Bool("rerank")
	return &flags
}

func askCommand(c *cli.Context) error {
	if c.NArg() < 2 {
		return fmt.Errorf("usage: filit ask TICKER QUESTION")
	}
	ticker := c.Args().Get(0)
	question := strings.Join(c.Args().Slice()[1:], " ")

	svc, err := buildService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	result, err := svc.Chat(context.Background(), &core.ChatRequest{
		Ticker:     ticker,
		Question:   question,
		Provider:   c.String("provider"),
		SearchMode: c.String("search-mode"),
		Flags:      requestFlags(c),
	})
	if err != nil {
		return err
	}

	fmt.Println(result.Answer)
	if len(result.Citations) > 0 {
		fmt.Println("\nSources:")
		for _, cit := range result.Citations {
			fmt.Printf("  [%d] %s %s (%d) via %s\n", cit.ChunkIndex+1, cit.Ticker, cit.FormType, cit.Year, cit.Source)
		}
	}
	fmt.Fprintf(os.Stderr, "task=%s %s cache_hit=%t\n", result.TaskType, result.FlagsSummary, result.CacheHit)
	return nil
}

func compareCommand(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: filit compare --ticker A --ticker B QUESTION")
	}
	question := strings.Join(c.Args().Slice(), " ")

	svc, err := buildService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	comparison, err := svc.Compare(context.Background(), &core.CompareRequest{
		Tickers:    c.StringSlice("ticker"),
		Question:   question,
		Provider:   c.String("provider"),
		SearchMode: c.String("search-mode"),
		Flags:      requestFlags(c),
	})
	if err != nil {
		return err
	}

	fmt.Println(comparison.CombinedAnswer)
	return nil
}

func classifyCommand(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: filit classify QUESTION")
	}
	question := strings.Join(c.Args().Slice(), " ")

	svc, err := buildService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	fmt.Println(svc.Classify(question))
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
