package handlers

import (
	"net/http"
	"strconv"

	"campcrew-funnel/internal/funnel"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct{}

func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

type budgetResponse struct {
	Budget    funnel.Budget `json:"budget"`
	Label     string        `json:"label"`
	Subtitle  string        `json:"subtitle"`
	TierLabel string        `json:"tierLabel"`
	Plans     []funnel.Plan `json:"plans"`
}

func (h *CatalogHandler) Budgets(c *gin.Context) {
	out := make([]budgetResponse, 0, len(funnel.Budgets))
	for _, b := range funnel.Budgets {
		out = append(out, describeBudget(b))
	}
	c.JSON(http.StatusOK, out)
}

func (h *CatalogHandler) Plans(c *gin.Context) {
	b, ok := parseBudget(c.Param("budget"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": funnel.ErrInvalidBudget.Error()})
		return
	}
	c.JSON(http.StatusOK, describeBudget(b))
}

func (h *CatalogHandler) Agreements(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"agreements":      funnel.Agreements(),
		"criticalClauses": funnel.CriticalClauseIndices(),
	})
}

func describeBudget(b funnel.Budget) budgetResponse {
	plans := funnel.PlansForBudget(b)
	if plans == nil {
		plans = []funnel.Plan{}
	}
	return budgetResponse{
		Budget:    b,
		Label:     funnel.BudgetLabel(b),
		Subtitle:  funnel.BudgetSubtitle(b),
		TierLabel: funnel.BudgetTierLabel(b),
		Plans:     plans,
	}
}

func parseBudget(raw string) (funnel.Budget, bool) {
	if raw == funnel.CustomPlanID {
		return funnel.BudgetCustom, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return funnel.BudgetUnset, false
	}
	b := funnel.Budget(n)
	return b, b.Valid()
}
