package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/turbot/cloudfront-analytics-forwarder/config"
	"github.com/turbot/cloudfront-analytics-forwarder/context_values"
	"github.com/turbot/cloudfront-analytics-forwarder/factory"
	"github.com/turbot/cloudfront-analytics-forwarder/types"
)

func processCmd() *cobra.Command {
	var bucket, key string

	cmd := &cobra.Command{
		Use:   "process --key KEY [--bucket BUCKET]",
		Short: "Process a single log object",
		Long:  `Process a single log object, as if an S3 event had been received for it. The object is deleted once processed.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runProcess(cmd, bucket, key)
		},
	}

	cmd.Flags().StringVar(&bucket, "bucket", "", "Bucket holding the object (default the configured bucket)")
	cmd.Flags().StringVar(&key, "key", "", "Key of the object")
	_ = cmd.MarkFlagRequired("key")

	return cmd
}

func runProcess(cmd *cobra.Command, bucket, key string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context_values.WithNewExecutionId(ctx)

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if bucket == "" {
		bucket = cfg.Bucket
	}
	if bucket == "" {
		return fmt.Errorf("--bucket must be set when no bucket is configured")
	}

	f, err := factory.NewForwarder(ctx, cfg)
	if err != nil {
		return err
	}
	defer f.Close()

	res, err := f.Pipeline.Run(ctx, types.NewArtifactInfo(bucket, key))
	if res != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d records, %s\n", res.Artifact, res.Records, res.Summary)
		fmt.Fprint(cmd.OutOrStdout(), res.Timing.String())
	}
	return err
}
