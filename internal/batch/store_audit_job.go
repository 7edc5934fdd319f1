package batch

import (
	"context"
	"customer-directory/internal/domain/customer"
	"customer-directory/internal/infrastructure/monitoring"
	"fmt"
	"log/slog"
	"time"
)

const (
	IssueDuplicateEmail = "duplicate_email"
	IssueInvalidRecord  = "invalid_record"
)

// AuditReport summarizes one pass over the stored collection.
type AuditReport struct {
	Total           int
	DuplicateEmails []string
	InvalidRecords  []int
}

func (r AuditReport) Healthy() bool {
	return len(r.DuplicateEmails) == 0 && len(r.InvalidRecords) == 0
}

// StoreAuditJob checks the persisted collection for records the API would
// never have accepted, which can only appear through edits outside the service.
type StoreAuditJob struct {
	store  customer.Store
	logger *slog.Logger
}

func NewStoreAuditJob(store customer.Store, logger *slog.Logger) *StoreAuditJob {
	if store == nil || logger == nil {
		panic("StoreAuditJob dependencies cannot be nil")
	}
	return &StoreAuditJob{
		store:  store,
		logger: logger.With("job", "StoreAudit"),
	}
}

func (j *StoreAuditJob) Run(ctx context.Context) (AuditReport, error) {
	startTime := time.Now()
	j.logger.InfoContext(ctx, "Starting customer store audit.")

	customers, err := j.store.Load(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to load customers, aborting audit.", slog.Any("error", err))
		return AuditReport{}, fmt.Errorf("cannot run audit, failed to load customers: %w", err)
	}

	report := AuditReport{Total: len(customers)}
	seen := make(map[string]int, len(customers))

	for i := range customers {
		cust := customers[i]
		if err := cust.Validate(); err != nil {
			j.logger.WarnContext(ctx, "Stored customer fails validation", slog.Int("index", i), slog.Any("error", err))
			report.InvalidRecords = append(report.InvalidRecords, i)
		}

		seen[cust.Email]++
		if seen[cust.Email] == 2 {
			j.logger.WarnContext(ctx, "Email stored more than once", slog.String("email", cust.Email))
			report.DuplicateEmails = append(report.DuplicateEmails, cust.Email)
		}
	}

	monitoring.SetCustomersStored(report.Total)
	monitoring.SetStoreAuditIssues(IssueDuplicateEmail, len(report.DuplicateEmails))
	monitoring.SetStoreAuditIssues(IssueInvalidRecord, len(report.InvalidRecords))

	summaryLog := j.logger.With(
		slog.Duration("duration", time.Since(startTime)),
		slog.Int("customers", report.Total),
		slog.Int("duplicate_emails", len(report.DuplicateEmails)),
		slog.Int("invalid_records", len(report.InvalidRecords)),
	)
	if report.Healthy() {
		summaryLog.InfoContext(ctx, "Customer store audit finished successfully.")
	} else {
		summaryLog.WarnContext(ctx, "Customer store audit found inconsistent records.")
	}
	return report, nil
}
