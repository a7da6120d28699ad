package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"clock-client/pkg/console"
	"clock-client/pkg/handlers"
	"clock-client/pkg/models"
	"clock-client/pkg/services"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRootCommand() *cobra.Command {
	var transcriptPath string

	root := &cobra.Command{
		Use:          "clock-client",
		Short:        "Ask the Clock language project for the time, the day, or the date",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.log.Sync() //nolint:errcheck

			var transcript *services.TranscriptService
			if transcriptPath != "" {
				transcript = services.NewTranscriptService()
			}

			runErr := console.New(cmd.InOrStdin(), cmd.OutOrStdout(), a.clockService, transcript).Run(cmd.Context())

			if transcript != nil {
				if err := transcript.Save(transcriptPath); err != nil {
					a.log.Error("failed to save transcript", zap.String("path", transcriptPath), zap.Error(err))
					return errors.Join(runErr, err)
				}
				a.log.Info("transcript saved", zap.String("path", transcriptPath), zap.Int("entries", transcript.Len()))
			}
			return runErr
		},
	}
	root.Flags().StringVar(&transcriptPath, "transcript", "", "write the session to this .xlsx file on exit")

	root.AddCommand(newAskCommand(), newResolveCommand(), newServeCommand(), newProbeCommand())
	return root
}

func newAskCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ask <text...>",
		Short: "Analyze one query and print the prediction and answer",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.log.Sync() //nolint:errcheck

			prediction, answer, err := a.clockService.Ask(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			console.WritePrediction(out, prediction)
			fmt.Fprintln(out, answer)
			return nil
		},
	}
}

// newResolveCommand answers an intent locally without calling the service.
func newResolveCommand() *cobra.Command {
	var entityFlags []string

	cmd := &cobra.Command{
		Use:   "resolve <intent>",
		Short: "Resolve an intent locally, e.g. resolve GetDate --entity Weekday=Sunday",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entities := make([]models.Entity, 0, len(entityFlags))
			for _, raw := range entityFlags {
				category, text, ok := strings.Cut(raw, "=")
				if !ok || category == "" {
					return fmt.Errorf("invalid entity %q, expected Category=text", raw)
				}
				entities = append(entities, models.Entity{Category: category, Text: text, ConfidenceScore: 1})
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.log.Sync() //nolint:errcheck

			fmt.Fprintln(cmd.OutOrStdout(), a.clockService.Resolve(args[0], entities))
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&entityFlags, "entity", nil, "entity as Category=text, repeatable")
	return cmd
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the analyze and resolve operations over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.log.Sync() //nolint:errcheck

			if a.cfg.IsProduction() {
				gin.SetMode(gin.ReleaseMode)
			}

			router := handlers.NewRouter(a.cfg, a.clockService, services.NewMonitoringService(a.log))
			server := &http.Server{
				Addr:              ":" + a.cfg.Port,
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				a.log.Info("starting clock-client server", zap.String("addr", server.Addr))
				errCh <- server.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("server failed: %w", err)
				}
				return nil
			case <-cmd.Context().Done():
			}

			a.log.Info("shutting down clock-client server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	}
}

// newProbeCommand checks connectivity and credentials with a single request.
func newProbeCommand() *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Send one request to the language service and report the result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.log.Sync() //nolint:errcheck

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "endpoint: %s\n", a.cfg.ConversationsEndpoint)
			fmt.Fprintf(out, "project: %s/%s (api-version %s)\n",
				a.cfg.ConversationsProjectName, a.cfg.ConversationsDeploymentName, a.cfg.ConversationsAPIVersion)

			start := time.Now()
			prediction, err := a.clockService.Analyze(cmd.Context(), query)
			elapsed := time.Since(start).Round(time.Millisecond)
			if err != nil {
				fmt.Fprintf(out, "FAILED after %s\n", elapsed)
				return err
			}

			fmt.Fprintf(out, "OK in %s: top intent %q (%d intents, %d entities)\n",
				elapsed, prediction.TopIntent, len(prediction.Intents), len(prediction.Entities))
			return nil
		},
	}
	cmd.Flags().StringVar(&query, "query", "What time is it?", "text to analyze")
	return cmd
}
