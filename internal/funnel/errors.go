package funnel

import "errors"

var (
	ErrActionNotAllowed     = errors.New("action not allowed in current step")
	ErrSessionComplete      = errors.New("funnel already completed")
	ErrInvalidBudget        = errors.New("invalid budget")
	ErrUnknownPlan          = errors.New("unknown plan for budget")
	ErrNoPlanSelected       = errors.New("no plan selected")
	ErrEmptyCrew            = errors.New("custom crew needs at least one creator")
	ErrInvalidCrew          = errors.New("invalid crew count")
	ErrUnknownField         = errors.New("unknown form field")
	ErrValidationFailed     = errors.New("contact info is invalid")
	ErrUnknownAgreement     = errors.New("unknown agreement")
	ErrNotCriticalClause    = errors.New("clause does not need acknowledgement")
	ErrAgreementsIncomplete = errors.New("required agreements are not accepted")
	ErrInvalidSiteType      = errors.New("unknown site type")
	ErrSubmitPending        = errors.New("submission already in progress")
)
