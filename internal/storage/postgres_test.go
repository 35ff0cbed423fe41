package storage

import (
	"bytes"
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"campcrew-funnel/internal/funnel"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

var journalColumns = []string{
	"id", "accommodation_name", "representative_name", "phone", "email", "region",
	"budget", "plan_tier", "icon_count", "partner_count", "rising_count",
	"site_types", "additional_requests", "record_id", "status", "error_message", "created_at",
}

func newTestJournal(t *testing.T) (*Journal, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewJournal(sqlx.NewDb(db, "postgres"), zap.NewNop()), mock
}

func testLead() funnel.Snapshot {
	return funnel.Snapshot{
		Budget: funnel.Budget15,
		FormData: funnel.ContactInfo{
			AccommodationName:  "솔숲 캠핑장",
			RepresentativeName: "김캠핑",
			Phone:              "010-1234-5678",
			Email:              "host@camp.kr",
			Region:             "강원도",
			SiteTypes:          []string{"오토캠핑", "글램핑"},
		},
		Crew:     funnel.Crew{Rising: 3},
		PlanTier: "입문 스타터 플랜",
	}
}

func TestNewEntry(t *testing.T) {
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	e := NewEntry(testLead(), "rec1", StatusCreated, "", at)

	assert.Equal(t, "15", e.Budget)
	assert.Equal(t, 3, e.RisingCount)
	assert.Equal(t, []string{"오토캠핑", "글램핑"}, []string(e.SiteTypes))
	assert.Equal(t, "rec1", e.RecordID)
	assert.Equal(t, at, e.CreatedAt)
}

func TestJournal_RecordWithoutSiteTypes(t *testing.T) {
	j, mock := newTestJournal(t)
	lead := testLead()
	lead.FormData.SiteTypes = nil
	e := NewEntry(lead, "rec2", StatusCreated, "", time.Now())
	assert.NotNil(t, e.SiteTypes)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO lead_submissions")).
		WithArgs(
			"솔숲 캠핑장", "김캠핑", "010-1234-5678", "host@camp.kr", "강원도",
			"15", "입문 스타터 플랜", 0, 0, 3,
			"{}", "", "rec2", StatusCreated, "", sqlmock.AnyArg(),
		).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(8)))

	id, err := j.Record(context.Background(), e)
	require.NoError(t, err)
	assert.Equal(t, int64(8), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJournal_Record(t *testing.T) {
	j, mock := newTestJournal(t)
	e := NewEntry(testLead(), "rec1", StatusCreated, "", time.Now())

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO lead_submissions")).
		WithArgs(
			"솔숲 캠핑장", "김캠핑", "010-1234-5678", "host@camp.kr", "강원도",
			"15", "입문 스타터 플랜", 0, 0, 3,
			sqlmock.AnyArg(), "", "rec1", StatusCreated, "", sqlmock.AnyArg(),
		).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	id, err := j.Record(context.Background(), e)
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJournal_RecordError(t *testing.T) {
	j, mock := newTestJournal(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO lead_submissions")).
		WillReturnError(errors.New("connection refused"))

	_, err := j.Record(context.Background(), Entry{})
	assert.ErrorContains(t, err, "failed to record lead")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJournal_ListAndExport(t *testing.T) {
	j, mock := newTestJournal(t)
	at := time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC)

	rows := sqlmock.NewRows(journalColumns).
		AddRow(int64(2), "솔숲 캠핑장", "김캠핑", "010-1234-5678", "host@camp.kr", "강원도",
			"15", "입문 스타터 플랜", 0, 0, 3,
			"{오토캠핑,글램핑}", "", "rec2", StatusCreated, "", at).
		AddRow(int64(1), "바다 글램핑", "이바다", "01098765432", "sea@camp.kr", "제주도",
			"custom", "직접 선택할게요", 1, 0, 0,
			"{글램핑}", "주말", "", StatusFailed, "Airtable 오류 (422)", at.Add(-time.Hour))
	mock.ExpectQuery(regexp.QuoteMeta("FROM lead_submissions")).WillReturnRows(rows)

	data, err := j.Export(context.Background())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{leadsSheet}, f.GetSheetList())
	sheetRows, err := f.GetRows(leadsSheet)
	require.NoError(t, err)
	require.Len(t, sheetRows, 3)
	assert.Equal(t, exportHeaders, sheetRows[0])
	assert.Equal(t, "솔숲 캠핑장", sheetRows[1][1])
	assert.Equal(t, "오토캠핑, 글램핑", sheetRows[1][11])
	assert.Equal(t, "2025-03-01 10:30", sheetRows[1][16])
	assert.Equal(t, StatusFailed, sheetRows[2][14])
	assert.Equal(t, "Airtable 오류 (422)", sheetRows[2][15])
}

func TestEntriesToExcel_Empty(t *testing.T) {
	data, err := EntriesToExcel(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	sheetRows, err := f.GetRows(leadsSheet)
	require.NoError(t, err)
	assert.Len(t, sheetRows, 1)
}

func TestJournal_Stats(t *testing.T) {
	j, mock := newTestJournal(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM lead_submissions")).
		WillReturnRows(sqlmock.NewRows([]string{"total", "created", "failed", "today"}).AddRow(10, 8, 2, 3))

	stats, err := j.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Stats{Total: 10, Created: 8, Failed: 2, Today: 3}, stats)
	assert.NoError(t, mock.ExpectationsWereMet())
}
