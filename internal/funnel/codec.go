package funnel

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrUnknownAction   = errors.New("unknown action type")
	ErrMalformedAction = errors.New("malformed action")
)

type actionEnvelope struct {
	Type   string   `json:"type"`
	Budget *Budget  `json:"budget"`
	PlanID string   `json:"planId"`
	Tier   Tier     `json:"tier"`
	Count  *int     `json:"count"`
	Field  string   `json:"field"`
	Value  string   `json:"value"`
	Types  []string `json:"types"`
	ID     string   `json:"id"`
	Index  *int     `json:"index"`
}

// DecodeAction parses a {"type": ...} envelope into a user action. Submit
// outcomes are produced by the machine only and cannot be decoded.
func DecodeAction(data []byte) (Action, error) {
	var env actionEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedAction, err)
	}

	switch env.Type {
	case "start":
		return Start{}, nil
	case "select_budget":
		if env.Budget == nil {
			return nil, fmt.Errorf("%w: budget is required", ErrMalformedAction)
		}
		return SelectBudget{Budget: *env.Budget}, nil
	case "select_plan":
		if env.PlanID == "" {
			return nil, fmt.Errorf("%w: planId is required", ErrMalformedAction)
		}
		return SelectPlan{PlanID: env.PlanID}, nil
	case "set_crew":
		if env.Count == nil {
			return nil, fmt.Errorf("%w: count is required", ErrMalformedAction)
		}
		return SetCrew{Tier: env.Tier, Count: *env.Count}, nil
	case "change_field":
		return ChangeField{Field: env.Field, Value: env.Value}, nil
	case "set_site_types":
		return SetSiteTypes{Types: env.Types}, nil
	case "next":
		return Next{}, nil
	case "back":
		return Back{}, nil
	case "host_back":
		return HostBack{}, nil
	case "toggle_agreement":
		return ToggleAgreement{ID: env.ID}, nil
	case "ack_critical":
		if env.Index == nil {
			return nil, fmt.Errorf("%w: index is required", ErrMalformedAction)
		}
		return AckCritical{Index: *env.Index}, nil
	case "toggle_all":
		return ToggleAll{}, nil
	case "submit":
		return Submit{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAction, env.Type)
}
