package funnel

// Snapshot is the lead handed to the submission client. Its JSON form is the
// body of the submit endpoint.
type Snapshot struct {
	Budget       Budget      `json:"budget"`
	SelectedPlan *Plan       `json:"selectedPlan"`
	FormData     ContactInfo `json:"formData"`
	Crew         Crew        `json:"crew"`
	PlanTier     string      `json:"planTier"`
}

// Snapshot freezes the parts of s that are sent to the record store. Custom
// plans contribute the live custom crew, catalog plans their fixed crew.
func (s State) Snapshot() Snapshot {
	snap := Snapshot{
		Budget:   s.Budget,
		FormData: s.clone().FormData,
		Crew:     s.Crew(),
		PlanTier: s.PlanTier(),
	}
	if p, ok := s.SelectedPlan(); ok {
		snap.SelectedPlan = &p
	}
	return snap
}

// Ack is the record store's confirmation of a created lead.
type Ack struct {
	RecordID string `json:"recordId"`
	Demo     bool   `json:"demo,omitempty"`
}
