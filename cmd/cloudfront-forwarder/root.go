package main

import (
	"context"
	"log/slog"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/turbot/cloudfront-analytics-forwarder/config"
	"github.com/turbot/cloudfront-analytics-forwarder/factory"
	"github.com/turbot/cloudfront-analytics-forwarder/logging"
	"github.com/turbot/cloudfront-analytics-forwarder/trigger"
	"github.com/turbot/go-kit/helpers"
)

const appName = "cloudfront-forwarder"

var configPath string

// Build the cobra command that handles our command line tool.
func rootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   appName,
		Short: "Forward CloudFront access logs to Google Analytics",
		Long: `Forward CloudFront access logs to Google Analytics.

With no command the forwarder runs as an AWS Lambda function, triggered by S3 event notifications.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// load environment variables from .env file if it exists
			if err := godotenv.Load(); err != nil {
				slog.Debug("No .env file found or error loading it", "error", err)
			}
			logging.Initialize(appName)
		},
		RunE: runLambda,
		// errors are logged, not printed with usage
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the HCL config file (default $FORWARDER_CONFIG)")

	rootCmd.AddCommand(processCmd())

	return rootCmd
}

func Execute() (exitCode int) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Forwarder failed", "error", helpers.ToError(r))
			exitCode = 1
		}
	}()

	if err := rootCommand().Execute(); err != nil {
		slog.Error("Forwarder failed", "error", err)
		return 1
	}
	return 0
}

func runLambda(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	f, err := factory.NewForwarder(ctx, cfg)
	if err != nil {
		return err
	}
	defer f.Close()

	h := trigger.NewHandler(f.Pipeline, cfg.Bucket, cfg.Extensions)
	slog.Info("Starting Lambda handler", "source", cfg.Source)
	// blocks for the life of the process
	lambda.StartWithOptions(h.Handle, lambda.WithContext(ctx))
	return nil
}
