package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"campcrew-funnel/internal/funnel"
	"campcrew-funnel/internal/session"
	"campcrew-funnel/internal/storage/redis"
	"campcrew-funnel/internal/submission"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newSessionRouter(t *testing.T) (*gin.Engine, *submission.StubRecorder) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	stub := submission.NewStubRecorder(0, zap.NewNop())
	svc := session.NewService(redis.NewWithClient(client, time.Hour, time.Minute), stub, zap.NewNop())
	h := NewSessionHandler(svc, zap.NewNop())
	c := NewCatalogHandler()

	r := gin.New()
	r.POST("/api/sessions", h.Create)
	r.GET("/api/sessions/:id", h.Get)
	r.DELETE("/api/sessions/:id", h.Delete)
	r.POST("/api/sessions/:id/actions", h.Dispatch)
	r.GET("/api/sessions/:id/summary", h.Summary)
	r.GET("/api/budgets", c.Budgets)
	r.GET("/api/catalog/:budget", c.Plans)
	r.GET("/api/agreements", c.Agreements)
	return r, stub
}

type errorBody struct {
	Error   string        `json:"error"`
	Session *session.View `json:"session"`
}

func createSession(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w := doRequest(r, http.MethodPost, "/api/sessions", "")
	require.Equal(t, http.StatusCreated, w.Code)

	var view session.View
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	require.NotEmpty(t, view.ID)
	assert.Equal(t, funnel.StepIntro, view.State.Step)
	return view.ID
}

func act(t *testing.T, r *gin.Engine, id string, bodies ...string) session.View {
	t.Helper()
	var view session.View
	for _, body := range bodies {
		w := doRequest(r, http.MethodPost, "/api/sessions/"+id+"/actions", body)
		require.Equal(t, http.StatusOK, w.Code, "%s: %s", body, w.Body.String())
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	}
	return view
}

func TestSessionHandler_Funnel(t *testing.T) {
	r, stub := newSessionRouter(t)
	id := createSession(t, r)

	act(t, r, id,
		`{"type":"start"}`,
		`{"type":"select_budget","budget":15}`,
		`{"type":"select_plan","planId":"starter-15"}`,
		`{"type":"next"}`,
	)

	w := doRequest(r, http.MethodPost, "/api/sessions/"+id+"/actions", `{"type":"next"}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var rejected errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rejected))
	require.NotNil(t, rejected.Session)
	assert.Contains(t, rejected.Session.State.Errors, funnel.FieldEmail)

	w = doRequest(r, http.MethodGet, "/api/sessions/"+id+"/summary", "")
	assert.Equal(t, http.StatusConflict, w.Code)

	act(t, r, id,
		`{"type":"change_field","field":"accommodationName","value":"솔숲 캠핑장"}`,
		`{"type":"change_field","field":"representativeName","value":"김캠핑"}`,
		`{"type":"change_field","field":"phone","value":"010-1234-5678"}`,
		`{"type":"change_field","field":"email","value":"host@camp.kr"}`,
		`{"type":"change_field","field":"region","value":"경기도"}`,
		`{"type":"set_site_types","types":["오토캠핑"]}`,
		`{"type":"next"}`,
	)

	w = doRequest(r, http.MethodPost, "/api/sessions/"+id+"/actions", `{"type":"submit"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	view := act(t, r, id, `{"type":"toggle_all"}`, `{"type":"submit"}`)
	assert.Equal(t, funnel.StepComplete, view.State.Step)
	assert.Len(t, stub.Leads(), 1)

	w = doRequest(r, http.MethodGet, "/api/sessions/"+id+"/summary", "")
	require.Equal(t, http.StatusOK, w.Code)
	var sum funnel.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sum))
	assert.Equal(t, "입문 스타터 플랜", sum.PlanName)
	assert.Equal(t, int64(165000), sum.TotalWithVAT)

	w = doRequest(r, http.MethodPost, "/api/sessions/"+id+"/actions", `{"type":"back"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSessionHandler_BadRequests(t *testing.T) {
	r, _ := newSessionRouter(t)
	id := createSession(t, r)

	w := doRequest(r, http.MethodPost, "/api/sessions/"+id+"/actions", `{"type":"fly"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	act(t, r, id, `{"type":"start"}`)
	w = doRequest(r, http.MethodPost, "/api/sessions/"+id+"/actions", `{"type":"select_budget","budget":20}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, http.MethodPost, "/api/sessions/"+id+"/actions", `{"type":"select_plan","planId":"best-30"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSessionHandler_SubmitFailure(t *testing.T) {
	r, stub := newSessionRouter(t)
	id := createSession(t, r)
	act(t, r, id,
		`{"type":"start"}`,
		`{"type":"select_budget","budget":"custom"}`,
		`{"type":"set_crew","tier":"partner","count":1}`,
		`{"type":"next"}`,
		`{"type":"change_field","field":"accommodationName","value":"솔숲 캠핑장"}`,
		`{"type":"change_field","field":"representativeName","value":"김캠핑"}`,
		`{"type":"change_field","field":"phone","value":"01012345678"}`,
		`{"type":"change_field","field":"email","value":"host@camp.kr"}`,
		`{"type":"change_field","field":"region","value":"경기도"}`,
		`{"type":"set_site_types","types":["글램핑"]}`,
		`{"type":"next"}`,
		`{"type":"toggle_all"}`,
	)

	stub.FailWith(&submission.Error{Status: 500, Message: "Airtable 오류 (500)"})
	w := doRequest(r, http.MethodPost, "/api/sessions/"+id+"/actions", `{"type":"submit"}`)
	require.Equal(t, http.StatusBadGateway, w.Code)

	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotNil(t, body.Session)
	assert.Equal(t, "Airtable 오류 (500)", body.Session.State.SubmitError)
	assert.Equal(t, funnel.StepAgreement, body.Session.State.Step)
}

func TestSessionHandler_NotFound(t *testing.T) {
	r, _ := newSessionRouter(t)

	assert.Equal(t, http.StatusNotFound, doRequest(r, http.MethodGet, "/api/sessions/missing", "").Code)
	assert.Equal(t, http.StatusNotFound, doRequest(r, http.MethodPost, "/api/sessions/missing/actions", `{"type":"start"}`).Code)

	id := createSession(t, r)
	assert.Equal(t, http.StatusNoContent, doRequest(r, http.MethodDelete, "/api/sessions/"+id, "").Code)
	assert.Equal(t, http.StatusNotFound, doRequest(r, http.MethodGet, "/api/sessions/"+id, "").Code)
}

func TestCatalogHandler(t *testing.T) {
	r, _ := newSessionRouter(t)

	w := doRequest(r, http.MethodGet, "/api/catalog/30", "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp budgetResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, funnel.Budget30, resp.Budget)
	assert.Equal(t, "프리미엄", resp.TierLabel)
	assert.Len(t, resp.Plans, 3)

	w = doRequest(r, http.MethodGet, "/api/catalog/custom", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"plans":[]`)

	assert.Equal(t, http.StatusBadRequest, doRequest(r, http.MethodGet, "/api/catalog/20", "").Code)
	assert.Equal(t, http.StatusBadRequest, doRequest(r, http.MethodGet, "/api/catalog/lots", "").Code)

	w = doRequest(r, http.MethodGet, "/api/budgets", "")
	require.Equal(t, http.StatusOK, w.Code)
	var budgets []budgetResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &budgets))
	assert.Len(t, budgets, 4)

	w = doRequest(r, http.MethodGet, "/api/agreements", "")
	require.Equal(t, http.StatusOK, w.Code)
	var ag struct {
		Agreements      []funnel.Agreement `json:"agreements"`
		CriticalClauses []int              `json:"criticalClauses"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ag))
	assert.Len(t, ag.Agreements, 2)
	assert.Equal(t, []int{1, 4, 6, 7, 8, 12}, ag.CriticalClauses)
}
