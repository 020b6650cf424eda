package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"proxy-logs/internal/app"
	"proxy-logs/internal/shared/configs"
	"proxy-logs/internal/shared/loggers"
)

func newQueryCmd(configPath *string) *cobra.Command {
	var rawParams []string

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Run one query and print the result document",
		Long: `Run one query with the given parameters, exactly as GET /get_data would, and
print the JSON result on stdout. Logs and the execution time go to stderr.`,
		Example: `  proxylogs query --param location=eu --param interval=300
  proxylogs query -p location=eu -p url=example.com -p start_time=1700000000 -p end_time=1700000600
  proxylogs query -p action=get_servers -p location=eu`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := parseParamFlags(rawParams)
			if err != nil {
				return err
			}
			return runQuery(cmd.Context(), *configPath, params, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringArrayVarP(&rawParams, "param", "p", nil, "Query parameter as key=value, repeatable")
	return cmd
}

// parseParamFlags turns key=value pairs into query parameters. Later pairs win.
func parseParamFlags(raw []string) (map[string]string, error) {
	params := make(map[string]string, len(raw))
	for _, kv := range raw {
		key, value, ok := strings.Cut(kv, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --param %q, want key=value", kv)
		}
		params[key] = value
	}
	return params, nil
}

func runQuery(ctx context.Context, configPath string, params map[string]string, stdout, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := configs.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := loggers.NewWithWriter(cfg.Log.Level, stderr)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	ctx = logger.With().Str(loggers.FieldComponent, "cli").Logger().WithContext(ctx)

	services, err := app.NewServices(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := services.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close side cache")
		}
	}()

	start := time.Now()
	result, err := services.QueryService.FetchLogData(ctx, params)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	out, err := json.MarshalIndent(result.Document(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	if _, err := fmt.Fprintln(stdout, string(out)); err != nil {
		return err
	}

	fmt.Fprintf(stderr, "%d entries, %s of JSON, executed in %.3f seconds\n",
		len(result.Entries), humanize.Bytes(uint64(len(out))), elapsed.Seconds())
	return nil
}

