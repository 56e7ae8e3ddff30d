package main

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestParseVector(t *testing.T) {
	t.Run("parses comma-separated floats", func(t *testing.T) {
		vector, err := parseVector("0.1,0.2,0.3")
		require.NoError(t, err)
		assert.Equal(t, []float32{0.1, 0.2, 0.3}, vector)
	})

	t.Run("tolerates whitespace", func(t *testing.T) {
		vector, err := parseVector(" 1.0 , -2.5 ")
		require.NoError(t, err)
		assert.Equal(t, []float32{1.0, -2.5}, vector)
	})

	t.Run("single component", func(t *testing.T) {
		vector, err := parseVector("0.5")
		require.NoError(t, err)
		assert.Equal(t, []float32{0.5}, vector)
	})

	t.Run("non-numeric component fails", func(t *testing.T) {
		_, err := parseVector("0.1,banana,0.3")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "banana")
	})

	t.Run("empty string fails", func(t *testing.T) {
		_, err := parseVector("")
		require.Error(t, err)
	})
}

func TestSearchCommandFlags(t *testing.T) {
	app := &cli.App{
		Name: "substrate",
		Commands: []*cli.Command{
			{
				Name:   "search",
				Action: searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "query",
						Aliases:  []string{"q"},
						Required: true,
					},
					&cli.IntFlag{
						Name:  "limit",
						Value: 10,
					},
				},
			},
		},
	}

	t.Run("query is required", func(t *testing.T) {
		err := app.Run([]string{"substrate", "search"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "query")
	})

	t.Run("limit has default value of 10", func(t *testing.T) {
		cmd := app.Commands[0]
		var limitFlag *cli.IntFlag
		for _, flag := range cmd.Flags {
			if f, ok := flag.(*cli.IntFlag); ok && f.Name == "limit" {
				limitFlag = f
				break
			}
		}
		require.NotNil(t, limitFlag)
		assert.Equal(t, 10, limitFlag.Value)
	})
}

func TestSetupLogger(t *testing.T) {
	t.Run("valid log levels", func(t *testing.T) {
		testCases := []struct {
			input    string
			expected slog.Level
		}{
			{"debug", slog.LevelDebug},
			{"info", slog.LevelInfo},
			{"warn", slog.LevelWarn},
			{"error", slog.LevelError},
		}

		for _, tc := range testCases {
			t.Run(tc.input, func(t *testing.T) {
				app := &cli.App{
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

				err := app.Run([]string{"test", "--log-level", tc.input})
				require.NoError(t, err)
			})
		}
	})

	t.Run("case insensitive log levels", func(t *testing.T) {
		testCases := []string{"DEBUG", "Info", "WaRn", "ERROR"}

		for _, tc := range testCases {
			t.Run(tc, func(t *testing.T) {
				app := &cli.App{
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

				err := app.Run([]string{"test", "--log-level", tc})
				require.NoError(t, err)
			})
		}
	})

	t.Run("invalid log level returns error", func(t *testing.T) {
		app := &cli.App{
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

		err := app.Run([]string{"test", "--log-level", "invalid"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})
}
