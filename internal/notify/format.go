package notify

import (
	"fmt"
	"strings"

	"campcrew-funnel/internal/airtable"
	"campcrew-funnel/internal/funnel"
)

func FormatLeadNotification(lead funnel.Snapshot, recordID string) string {
	total := funnel.CrewTotalWithVAT(lead.Crew)
	if lead.SelectedPlan != nil && !lead.SelectedPlan.IsCustom() {
		total = lead.SelectedPlan.PriceWithVAT
	}

	return fmt.Sprintf(
		"🏕 새 협찬 신청\n\n"+
			"캠핑장: %s\n"+
			"대표자: %s\n"+
			"연락처: %s\n"+
			"이메일: %s\n"+
			"권역: %s\n"+
			"──────────────────\n"+
			"예산: %s\n"+
			"플랜: %s\n"+
			"구성: %s %d / %s %d / %s %d\n"+
			"금액(VAT 포함): %s\n"+
			"사이트: %s\n"+
			"──────────────────\n"+
			"요청사항: %s\n"+
			"Airtable: %s",
		lead.FormData.AccommodationName,
		lead.FormData.RepresentativeName,
		lead.FormData.Phone,
		lead.FormData.Email,
		lead.FormData.Region,
		airtable.BudgetOption(lead.Budget),
		lead.PlanTier,
		funnel.TierIcon.Label(), lead.Crew.Icon,
		funnel.TierPartner.Label(), lead.Crew.Partner,
		funnel.TierRising.Label(), lead.Crew.Rising,
		funnel.FormatWon(total),
		strings.Join(lead.FormData.SiteTypes, ", "),
		orDash(lead.FormData.AdditionalRequests),
		orDash(recordID),
	)
}

func formatChannelMessage(lead funnel.Snapshot) string {
	return fmt.Sprintf(
		"📥 새 신청: %s (%s)\n플랜: %s · %d명",
		lead.FormData.AccommodationName,
		lead.FormData.Region,
		lead.PlanTier,
		lead.Crew.Headcount(),
	)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
