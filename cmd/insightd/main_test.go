package main

import (
	"flag"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func newLogLevelContext(t *testing.T, level string) *cli.Context {
	t.Helper()

	app := &cli.App{
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "log-level", Value: "info"},
		},
	}
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	set.String("log-level", level, "")
	return cli.NewContext(app, set, nil)
}

func TestSetupLogger(t *testing.T) {
	original := slog.Default()
	defer slog.SetDefault(original)

	t.Run("valid levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error", "WARN"} {
			err := setupLogger(newLogLevelContext(t, level))
			assert.NoError(t, err, "level %q should be accepted", level)
		}
	})

	t.Run("invalid level", func(t *testing.T) {
		err := setupLogger(newLogLevelContext(t, "verbose"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})
}

func TestAIConfigFromFlags(t *testing.T) {
	app := &cli.App{Flags: aiFlags()}

	set := flag.NewFlagSet("test", flag.ContinueOnError)
	set.String("embedding-host", "http://localhost:11434", "")
	set.String("embedding-model", "embeddinggemma", "")
	set.String("extractor-host", "http://localhost:11434/v1", "")
	set.String("extractor-model", "qwen2.5:3b", "")
	set.Float64("min-confidence", 0.5, "")
	ctx := cli.NewContext(app, set, nil)

	config, err := aiConfigFromFlags(ctx)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:11434/v1", config.EmbeddingHost, "hosts should be normalized")
	assert.Equal(t, "embeddinggemma", config.EmbeddingModel)
}

func TestDBFlagIsRequired(t *testing.T) {
	app := &cli.App{
		Commands: []*cli.Command{
			{
				Name:   "stats",
				Action: func(*cli.Context) error { return nil },
				Flags:  []cli.Flag{dbFlag()},
			},
		},
		Writer:    os.Stderr,
		ErrWriter: os.Stderr,
	}

	err := app.Run([]string{"insightd", "stats"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db")
}
