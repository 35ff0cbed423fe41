package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"campcrew-funnel/internal/airtable"
	"campcrew-funnel/internal/funnel"
	"campcrew-funnel/internal/metrics"
	"campcrew-funnel/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"
)

const notifyTimeout = 30 * time.Second

// leadSchema is the shape accepted by the submit endpoint. Values are
// forwarded as given; contact rules are enforced by the funnel itself.
var leadSchema = gojsonschema.NewStringLoader(`{
	"type": "object",
	"required": ["formData", "crew"],
	"properties": {
		"budget": {"type": ["integer", "string", "null"]},
		"planTier": {"type": "string"},
		"formData": {
			"type": "object",
			"properties": {
				"accommodationName": {"type": "string"},
				"representativeName": {"type": "string"},
				"phone": {"type": "string"},
				"email": {"type": "string"},
				"region": {"type": "string"},
				"siteTypes": {"type": ["array", "null"], "items": {"type": "string"}},
				"additionalRequests": {"type": "string"}
			}
		},
		"crew": {
			"type": "object",
			"properties": {
				"icon": {"type": "integer", "minimum": 0},
				"partner": {"type": "integer", "minimum": 0},
				"rising": {"type": "integer", "minimum": 0}
			}
		}
	}
}`)

// SubmitHandler relays leads to the record store with the server-held
// credential, then journals and announces them.
type SubmitHandler struct {
	records       RecordCreator
	journal       LeadJournal
	notifier      LeadNotifier
	allowedOrigin string
	logger        *zap.Logger
}

// NewSubmitHandler accepts nil journal and notifier when those are disabled.
func NewSubmitHandler(records RecordCreator, journal LeadJournal, notifier LeadNotifier, allowedOrigin string, logger *zap.Logger) *SubmitHandler {
	if allowedOrigin == "" {
		allowedOrigin = "*"
	}
	return &SubmitHandler{
		records:       records,
		journal:       journal,
		notifier:      notifier,
		allowedOrigin: allowedOrigin,
		logger:        logger,
	}
}

func (h *SubmitHandler) Handle(c *gin.Context) {
	switch c.Request.Method {
	case http.MethodOptions:
		c.Header("Access-Control-Allow-Origin", h.allowedOrigin)
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		c.Status(http.StatusOK)
		return
	case http.MethodPost:
	default:
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
		return
	}

	c.Header("Access-Control-Allow-Origin", h.allowedOrigin)

	if !h.records.Configured() {
		h.logger.Error("Record store credentials are not configured")
		metrics.LeadSubmissions.WithLabelValues(metrics.OutcomeNotConfigured).Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Airtable 환경변수가 설정되지 않았습니다."})
		return
	}

	lead, err := h.bindLead(c)
	if err != nil {
		h.logger.Warn("Rejected lead body", zap.Error(err))
		metrics.LeadSubmissions.WithLabelValues(metrics.OutcomeInvalid).Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.records.CreateRecord(c.Request.Context(), airtable.LeadFields(lead))
	if err != nil {
		h.journalLead(c.Request.Context(), lead, "", storage.StatusFailed, err.Error())
		h.respondError(c, err)
		return
	}

	recordID := firstRecordID(result)
	metrics.LeadSubmissions.WithLabelValues(metrics.OutcomeCreated).Inc()
	h.logger.Info("Lead created",
		zap.String("record_id", recordID),
		zap.String("accommodation", lead.FormData.AccommodationName),
		zap.String("plan_tier", lead.PlanTier))

	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})

	h.journalLead(c.Request.Context(), lead, recordID, storage.StatusCreated, "")
	if h.notifier != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
			defer cancel()
			h.notifier.NotifyNewLead(ctx, lead, recordID)
		}()
	}
}

func (h *SubmitHandler) bindLead(c *gin.Context) (funnel.Snapshot, error) {
	body, err := c.GetRawData()
	if err != nil {
		return funnel.Snapshot{}, fmt.Errorf("failed to read body: %w", err)
	}

	result, err := gojsonschema.Validate(leadSchema, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return funnel.Snapshot{}, fmt.Errorf("invalid JSON body: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return funnel.Snapshot{}, fmt.Errorf("invalid lead: %s", strings.Join(msgs, "; "))
	}

	var lead funnel.Snapshot
	if err := json.Unmarshal(body, &lead); err != nil {
		return funnel.Snapshot{}, fmt.Errorf("invalid lead: %w", err)
	}
	return lead, nil
}

func (h *SubmitHandler) respondError(c *gin.Context, err error) {
	var apiErr *airtable.APIError
	switch {
	case errors.As(err, &apiErr):
		h.logger.Error("Record store rejected lead",
			zap.Int("status", apiErr.Status),
			zap.String("body", apiErr.Body))
		metrics.LeadSubmissions.WithLabelValues(metrics.OutcomeUpstreamError).Inc()
		c.JSON(apiErr.Status, gin.H{
			"error":  fmt.Sprintf("Airtable 오류 (%d)", apiErr.Status),
			"detail": apiErr.Body,
		})
	case errors.Is(err, airtable.ErrNotConfigured):
		metrics.LeadSubmissions.WithLabelValues(metrics.OutcomeNotConfigured).Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Airtable 환경변수가 설정되지 않았습니다."})
	default:
		h.logger.Error("Failed to reach record store", zap.Error(err))
		metrics.LeadSubmissions.WithLabelValues(metrics.OutcomeTransportError).Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (h *SubmitHandler) journalLead(ctx context.Context, lead funnel.Snapshot, recordID, status, errMsg string) {
	if h.journal == nil {
		return
	}
	entry := storage.NewEntry(lead, recordID, status, errMsg, time.Now())
	if _, err := h.journal.Record(context.WithoutCancel(ctx), entry); err != nil {
		h.logger.Error("Failed to journal lead",
			zap.String("record_id", recordID),
			zap.Error(err))
	}
}

func firstRecordID(raw json.RawMessage) string {
	var created struct {
		Records []struct {
			ID string `json:"id"`
		} `json:"records"`
	}
	if err := json.Unmarshal(raw, &created); err != nil || len(created.Records) == 0 {
		return ""
	}
	return created.Records[0].ID
}
