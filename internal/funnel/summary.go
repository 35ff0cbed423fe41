package funnel

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Payment is the deposit account shown on the confirmation screen.
type Payment struct {
	Bank    string `json:"bank"`
	Account string `json:"account"`
	Holder  string `json:"holder"`
}

var DepositAccount = Payment{
	Bank:    "하나은행",
	Account: "225-910068-71204",
	Holder:  "(주) 넥스트에디션",
}

type Summary struct {
	AccommodationName  string  `json:"accommodationName"`
	BudgetLabel        string  `json:"budgetLabel"`
	PlanName           string  `json:"planName,omitempty"`
	RepresentativeName string  `json:"representativeName"`
	Phone              string  `json:"phone"`
	Email              string  `json:"email"`
	Region             string  `json:"region,omitempty"`
	Crew               Crew    `json:"crew"`
	TotalWithVAT       int64   `json:"totalWithVat"`
	TotalLabel         string  `json:"totalLabel"`
	Payment            Payment `json:"payment"`
}

// Summarize builds the confirmation screen. It is only available once the
// lead has been submitted.
func Summarize(s State) (Summary, error) {
	if s.Step != StepComplete {
		return Summary{}, ErrActionNotAllowed
	}

	sum := Summary{
		AccommodationName:  s.FormData.AccommodationName,
		RepresentativeName: s.FormData.RepresentativeName,
		Phone:              s.FormData.Phone,
		Email:              s.FormData.Email,
		Region:             s.FormData.Region,
		Crew:               s.Crew(),
		Payment:            DepositAccount,
	}

	if s.Budget.IsCustom() {
		sum.BudgetLabel = "맞춤 상담"
	} else {
		sum.BudgetLabel = fmt.Sprintf("%d만원", int(s.Budget))
	}

	if p, ok := s.SelectedPlan(); ok {
		sum.PlanName = p.Name
		sum.TotalWithVAT = p.PriceWithVAT
	}
	if sum.TotalWithVAT == 0 {
		sum.TotalWithVAT = CrewTotalWithVAT(sum.Crew)
	}
	sum.TotalLabel = FormatWon(sum.TotalWithVAT)

	return sum, nil
}

var wonPrinter = message.NewPrinter(language.Korean)

// FormatWon renders an amount with thousands separators, e.g. "165,000원".
func FormatWon(n int64) string {
	return wonPrinter.Sprintf("%d원", n)
}
