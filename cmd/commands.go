package main

import (
	"context"
	"customer-directory/internal/api"
	"customer-directory/internal/batch"
	"customer-directory/internal/domain/customer"
	"fmt"

	"github.com/spf13/cobra"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long:  "Start the HTTP server, the store audit schedule and, when enabled, the event publisher.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}
}

func newSeedCommand(opts *rootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create an empty customer store",
		Long:  "Write an empty customer list to the configured store when it does not exist yet.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := initializeApp(opts.configDir)
			if err != nil {
				return err
			}

			ctx := commandContext(cmd)
			store, closeStore, err := buildStore(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer closeStore()

			written, err := seedStore(ctx, store, force)
			if err != nil {
				return err
			}
			if written {
				fmt.Fprintln(cmd.OutOrStdout(), "customer store initialized")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "customer store already present, nothing to do")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing store with an empty list")
	return cmd
}

func newCheckCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Audit the customer store once",
		Long:  "Load the customer store and report duplicate emails and records that fail validation.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := initializeApp(opts.configDir)
			if err != nil {
				return err
			}

			ctx := commandContext(cmd)
			store, closeStore, err := buildStore(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer closeStore()

			report, err := batch.NewStoreAuditJob(store, logger).Run(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "customers: %d\n", report.Total)
			for _, email := range report.DuplicateEmails {
				fmt.Fprintf(out, "duplicate email: %s\n", email)
			}
			for _, index := range report.InvalidRecords {
				fmt.Fprintf(out, "invalid record at index %d\n", index)
			}
			return nil
		},
	}
}

func runServe(cmd *cobra.Command, opts *rootOptions) error {
	cfg, logger, err := initializeApp(opts.configDir)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	store, closeStore, err := buildStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize customer store", "error", err)
		return err
	}
	defer closeStore()

	publisher, closePublisher := buildPublisher(cfg, logger)
	defer closePublisher()

	customerService := customer.NewCustomerService(store, publisher, logger,
		customer.WithSimulatedLatency(cfg.Server.SimulatedLatency))

	auditJob := batch.NewStoreAuditJob(store, logger)
	cronScheduler := startBatchJobs(cfg, logger, auditJob)
	router := api.SetupRouter(customerService, cfg, logger)

	srv, serverErrors, shutdownChan := startServer(cfg, router, logger)
	return handleShutdown(srv, cronScheduler, shutdownChan, serverErrors, logger)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
