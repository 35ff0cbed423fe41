package storage

import (
	"context"
	"fmt"
	"time"

	"campcrew-funnel/internal/config"
	"campcrew-funnel/internal/funnel"

	"github.com/cenkalti/backoff/v4"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

// Relay outcomes stored in lead_submissions.status.
const (
	StatusCreated = "created"
	StatusFailed  = "failed"
)

// Journal records every lead relayed by the submit endpoint.
type Journal struct {
	db     *sqlx.DB
	logger *zap.Logger
}

type Entry struct {
	ID                 int64          `db:"id"`
	AccommodationName  string         `db:"accommodation_name"`
	RepresentativeName string         `db:"representative_name"`
	Phone              string         `db:"phone"`
	Email              string         `db:"email"`
	Region             string         `db:"region"`
	Budget             string         `db:"budget"`
	PlanTier           string         `db:"plan_tier"`
	IconCount          int            `db:"icon_count"`
	PartnerCount       int            `db:"partner_count"`
	RisingCount        int            `db:"rising_count"`
	SiteTypes          pq.StringArray `db:"site_types"`
	AdditionalRequests string         `db:"additional_requests"`
	RecordID           string         `db:"record_id"`
	Status             string         `db:"status"`
	ErrorMessage       string         `db:"error_message"`
	CreatedAt          time.Time      `db:"created_at"`
}

// NewEntry builds a journal row from a relayed lead.
func NewEntry(lead funnel.Snapshot, recordID, status, errMsg string, at time.Time) Entry {
	// site_types is NOT NULL; a nil slice would be sent as NULL
	siteTypes := lead.FormData.SiteTypes
	if siteTypes == nil {
		siteTypes = []string{}
	}

	return Entry{
		AccommodationName:  lead.FormData.AccommodationName,
		RepresentativeName: lead.FormData.RepresentativeName,
		Phone:              lead.FormData.Phone,
		Email:              lead.FormData.Email,
		Region:             lead.FormData.Region,
		Budget:             lead.Budget.String(),
		PlanTier:           lead.PlanTier,
		IconCount:          lead.Crew.Icon,
		PartnerCount:       lead.Crew.Partner,
		RisingCount:        lead.Crew.Rising,
		SiteTypes:          pq.StringArray(siteTypes),
		AdditionalRequests: lead.FormData.AdditionalRequests,
		RecordID:           recordID,
		Status:             status,
		ErrorMessage:       errMsg,
		CreatedAt:          at,
	}
}

func NewPostgresJournal(ctx context.Context, cfg config.Database, logger *zap.Logger) (*Journal, error) {
	const operation = "storage.NewPostgresJournal"

	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.Name,
	)

	var db *sqlx.DB
	var err error

	retryPolicy := backoff.NewExponentialBackOff()
	retryPolicy.MaxElapsedTime = 2 * time.Minute
	retryPolicy.MaxInterval = 15 * time.Second

	logger.Info("Connecting to PostgreSQL...")

	err = backoff.RetryNotify(
		func() error {
			db, err = sqlx.ConnectContext(ctx, "postgres", connStr)
			if err != nil {
				return fmt.Errorf("connect: %w", err)
			}

			if err = db.PingContext(ctx); err != nil {
				return fmt.Errorf("ping: %w", err)
			}
			return nil
		},
		backoff.WithContext(retryPolicy, ctx),
		func(err error, duration time.Duration) {
			logger.Warn("PostgreSQL connection failed, retrying...",
				zap.Error(err),
				zap.Duration("next_attempt_in", duration))
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to connect after retries: %w", operation, err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	logger.Info("Successfully connected to PostgreSQL")

	if err := RunMigrations(ctx, db.DB, logger); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w", operation, err)
	}

	return NewJournal(db, logger), nil
}

func NewJournal(db *sqlx.DB, logger *zap.Logger) *Journal {
	return &Journal{db: db, logger: logger}
}

func (j *Journal) Close() error {
	return j.db.Close()
}

func (j *Journal) Record(ctx context.Context, e Entry) (int64, error) {
	const query = `
        INSERT INTO lead_submissions (
            accommodation_name, representative_name, phone, email, region,
            budget, plan_tier, icon_count, partner_count, rising_count,
            site_types, additional_requests, record_id, status, error_message, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
        RETURNING id
    `

	var id int64
	err := j.db.QueryRowContext(ctx, query,
		e.AccommodationName,
		e.RepresentativeName,
		e.Phone,
		e.Email,
		e.Region,
		e.Budget,
		e.PlanTier,
		e.IconCount,
		e.PartnerCount,
		e.RisingCount,
		e.SiteTypes,
		e.AdditionalRequests,
		e.RecordID,
		e.Status,
		e.ErrorMessage,
		e.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to record lead: %w", err)
	}
	return id, nil
}

func (j *Journal) List(ctx context.Context) ([]Entry, error) {
	const query = `
        SELECT id, accommodation_name, representative_name, phone, email, region,
               budget, plan_tier, icon_count, partner_count, rising_count,
               site_types, additional_requests, record_id, status, error_message, created_at
        FROM lead_submissions
        ORDER BY created_at DESC
    `

	var entries []Entry
	if err := j.db.SelectContext(ctx, &entries, query); err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	return entries, nil
}

// Stats counts journal entries by relay outcome.
type Stats struct {
	Total   int `db:"total"`
	Created int `db:"created"`
	Failed  int `db:"failed"`
	Today   int `db:"today"`
}

func (j *Journal) Stats(ctx context.Context) (Stats, error) {
	const query = `
        SELECT COUNT(*) AS total,
               COUNT(*) FILTER (WHERE status = 'created') AS created,
               COUNT(*) FILTER (WHERE status = 'failed') AS failed,
               COUNT(*) FILTER (WHERE created_at >= date_trunc('day', NOW())) AS today
        FROM lead_submissions
    `

	var s Stats
	if err := j.db.GetContext(ctx, &s, query); err != nil {
		return Stats{}, fmt.Errorf("failed to get lead statistics: %w", err)
	}
	return s, nil
}
