package funnel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeAction(t *testing.T) {
	tests := []struct {
		body string
		want Action
	}{
		{`{"type":"start"}`, Start{}},
		{`{"type":"select_budget","budget":30}`, SelectBudget{Budget: Budget30}},
		{`{"type":"select_budget","budget":"custom"}`, SelectBudget{Budget: BudgetCustom}},
		{`{"type":"select_plan","planId":"best-30"}`, SelectPlan{PlanID: "best-30"}},
		{`{"type":"set_crew","tier":"icon","count":0}`, SetCrew{Tier: TierIcon, Count: 0}},
		{`{"type":"change_field","field":"email","value":"a@b.kr"}`, ChangeField{Field: FieldEmail, Value: "a@b.kr"}},
		{`{"type":"set_site_types","types":["글램핑"]}`, SetSiteTypes{Types: []string{"글램핑"}}},
		{`{"type":"next"}`, Next{}},
		{`{"type":"back"}`, Back{}},
		{`{"type":"host_back"}`, HostBack{}},
		{`{"type":"toggle_agreement","id":"privacy"}`, ToggleAgreement{ID: AgreementPrivacy}},
		{`{"type":"ack_critical","index":0}`, AckCritical{Index: 0}},
		{`{"type":"toggle_all"}`, ToggleAll{}},
		{`{"type":"submit"}`, Submit{}},
	}
	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			got, err := DecodeAction([]byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeAction_Errors(t *testing.T) {
	_, err := DecodeAction([]byte(`{"type":"submit_succeeded","recordId":"x"}`))
	assert.ErrorIs(t, err, ErrUnknownAction)

	_, err = DecodeAction([]byte(`not json`))
	assert.ErrorIs(t, err, ErrMalformedAction)

	_, err = DecodeAction([]byte(`{"type":"select_budget"}`))
	assert.ErrorIs(t, err, ErrMalformedAction)

	_, err = DecodeAction([]byte(`{"type":"set_crew","tier":"icon"}`))
	assert.ErrorIs(t, err, ErrMalformedAction)

	_, err = DecodeAction([]byte(`{"type":"ack_critical"}`))
	assert.ErrorIs(t, err, ErrMalformedAction)
}
