package main

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/poiesic/filit/core"
)

func TestSetupLogger(t *testing.T) {
	newApp := func() *cli.App {
		return &cli.App{
			Name: "test",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "log-level",
					Value: "info",
				},
			},
			Before: setupLogger,
			Action: func(c *cli.Context) error {
				return nil
			},
		}
	}

	t.Run("valid log levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error"} {
			t.Run(level, func(t *testing.T) {
				err := newApp().Run([]string{"test", "--log-level", level})
				require.NoError(t, err)
			})
		}
	})

	t.Run("case insensitive log levels", func(t *testing.T) {
		for _, level := range []string{"DEBUG", "Info", "WaRn", "ERROR"} {
			t.Run(level, func(t *testing.T) {
				err := newApp().Run([]string{"test", "--log-level", level})
				require.NoError(t, err)
			})
		}
	})

	t.Run("invalid log level returns error", func(t *testing.T) {
		err := newApp().Run([]string{"test", "--log-level", "verbose"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})
}

func TestRequestFlags(t *testing.T) {
	newContext := func(args ...string) *cli.Context {
		set := flag.NewFlagSet("test", flag.ContinueOnError)
		set.Bool("rerank", false, "")
		set.Bool("rewrite", false, "")
		require.NoError(t, set.Parse(args))
		return cli.NewContext(nil, set, nil)
	}

	t.Run("defaults keep retrieval cache on", func(t *testing.T) {
		flags := requestFlags(newContext())
		assert.Equal(t, &core.RetrievalFlags{RetrievalCache: true}, flags)
	})

	t.Run("rerank enables section boost", func(t *testing.T) {
		flags := requestFlags(newContext("-rerank"))
		assert.True(t, flags.Rerank)
		assert.True(t, flags.SectionBoost)
		assert.False(t, flags.QueryRewrite)
	})
}
