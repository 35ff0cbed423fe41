package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"campcrew-funnel/internal/funnel"
	"campcrew-funnel/internal/submission"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestClient_CreateLead(t *testing.T) {
	var got funnel.Snapshot
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"success":true,"data":{"records":[{"id":"recABC","fields":{}}]}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, zap.NewNop())
	lead := funnel.Snapshot{Budget: funnel.Budget30, Crew: funnel.Crew{Icon: 1}, PlanTier: "원픽 플랜"}

	ack, err := c.CreateLead(context.Background(), lead)
	require.NoError(t, err)
	assert.Equal(t, "recABC", ack.RecordID)
	assert.Equal(t, lead.Budget, got.Budget)
	assert.Equal(t, lead.Crew, got.Crew)
}

func TestClient_CreateLead_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":"Airtable 오류 (422)","detail":"INVALID_VALUE"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, zap.NewNop())
	_, err := c.CreateLead(context.Background(), funnel.Snapshot{})

	var se *submission.Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusUnprocessableEntity, se.Status)
	assert.Equal(t, "Airtable 오류 (422)", se.DisplayMessage())
	assert.Equal(t, "INVALID_VALUE", se.Detail)
}

func TestClient_CreateLead_NonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, zap.NewNop())
	_, err := c.CreateLead(context.Background(), funnel.Snapshot{})

	var se *submission.Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadGateway, se.Status)
	assert.Equal(t, "API Error (502)", se.Message)
	assert.Contains(t, se.Detail, "bad gateway")
}

func TestClient_CreateLead_Transport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewClient(url, time.Second, zap.NewNop())
	_, err := c.CreateLead(context.Background(), funnel.Snapshot{})

	var se *submission.Error
	require.ErrorAs(t, err, &se)
	assert.Zero(t, se.Status)
	assert.NotEmpty(t, se.DisplayMessage())
}
