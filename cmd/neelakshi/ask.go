package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"neelakshi-ai/internal/app"
	"neelakshi-ai/internal/assistant"
	"neelakshi-ai/internal/common/logger"

	"github.com/spf13/cobra"
)

func newAskCmd(opts *rootOptions) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "ask [message]",
		Short: "Answer a single message and print the reply",
		Example: `  neelakshi ask "Jaipur ka mausam"
  neelakshi ask --verbose "who is the collector of Kota"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts.configPath)
			if err != nil {
				return fmt.Errorf("config load failed: %w", err)
			}

			// Logs go to stderr so stdout carries only the reply.
			level := "warn"
			if verbose {
				level = "info"
			}
			log := logger.NewStructured(level, "console", "stderr")

			a, err := app.New(cmd.Context(), cfg, log, app.Options{ConnectFor: 3 * time.Second})
			if err != nil {
				return err
			}
			defer func() {
				closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				a.Close(closeCtx)
			}()

			answer := a.Assistant.Answer(cmd.Context(), strings.Join(args, " "))
			printAnswer(cmd.OutOrStdout(), answer, verbose)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "also print intent, language, reply path and retrieval steps")
	return cmd
}

func printAnswer(w io.Writer, a assistant.Answer, verbose bool) {
	fmt.Fprintln(w, a.Reply)
	if !verbose {
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  intent:   %s\n", a.Intent)
	if len(a.Candidates) > 1 {
		names := make([]string, len(a.Candidates))
		for i, c := range a.Candidates {
			names[i] = c.String()
		}
		fmt.Fprintf(w, "  matched:  %s\n", strings.Join(names, ", "))
	}
	fmt.Fprintf(w, "  language: %s\n", a.Language)
	fmt.Fprintf(w, "  path:     %s\n", a.Path)
	if a.Model != "" {
		fmt.Fprintf(w, "  model:    %s\n", a.Model)
	}
	for _, s := range a.Attempts {
		fmt.Fprintf(w, "  step:     %s (%s) %s in %s\n", s.Step, s.Provider, s.Outcome, s.Duration.Round(time.Millisecond))
	}
	fmt.Fprintf(w, "  request:  %s\n", a.RequestID)
}
