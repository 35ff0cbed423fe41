package handlers

import (
	"context"
	"encoding/json"

	"campcrew-funnel/internal/airtable"
	"campcrew-funnel/internal/funnel"
	"campcrew-funnel/internal/notify"
	"campcrew-funnel/internal/session"
	"campcrew-funnel/internal/storage"
)

type RecordCreator interface {
	Configured() bool
	CreateRecord(ctx context.Context, fields airtable.Fields) (json.RawMessage, error)
}

type LeadJournal interface {
	Record(ctx context.Context, e storage.Entry) (int64, error)
}

type LeadNotifier interface {
	NotifyNewLead(ctx context.Context, lead funnel.Snapshot, recordID string)
}

type Sessions interface {
	Create(ctx context.Context) (session.View, error)
	Get(ctx context.Context, id string) (session.View, error)
	Dispatch(ctx context.Context, id string, action funnel.Action) (session.View, error)
	Summary(ctx context.Context, id string) (funnel.Summary, error)
	Abandon(ctx context.Context, id string) error
}

var (
	_ RecordCreator = (*airtable.Client)(nil)
	_ LeadJournal   = (*storage.Journal)(nil)
	_ LeadNotifier  = (*notify.Notifier)(nil)
	_ Sessions      = (*session.Service)(nil)
)
