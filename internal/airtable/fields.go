package airtable

import (
	"fmt"

	"campcrew-funnel/internal/funnel"
)

// Column names of the lead table. They must match the Airtable base exactly.
const (
	colAccommodation   = "숙소 이름을 적어주세요."
	colRepresentative  = "대표자명"
	colPhone           = "연락처"
	colEmail           = "캠지기님 이메일"
	colRegion          = "숙소 위치"
	colBudget          = "선택 예산"
	colPlanTier        = "선택플랜"
	colIconAmount      = "아이콘 크리에이터 협찬 제안 금액"
	colIconCount       = "⭐️ 모집 희망 인원"
	colPartnerAmount   = "파트너 크리에이터 협찬 제안 금액"
	colPartnerCount    = "✔️ 모집 인원"
	colRisingAmount    = "라이징 협찬 제안 금액"
	colRisingCount     = "🔥 모집 인원"
	colSiteTypes       = "제공 가능한 사이트 종류"
	colConsent         = "동의합니다."
	colPremiumConsent  = "프리미엄 협찬 관련 동의 사항"
	colRemarks         = "비고"
	consentValue       = "동의"
	customBudgetOption = "직접 결정할게요"
)

type Fields map[string]any

// LeadFields maps a submitted lead onto the table columns. Tier amounts carry
// the unit price when at least one creator of that tier is requested.
func LeadFields(lead funnel.Snapshot) Fields {
	siteTypes := lead.FormData.SiteTypes
	if siteTypes == nil {
		siteTypes = []string{}
	}

	return Fields{
		colAccommodation:  lead.FormData.AccommodationName,
		colRepresentative: lead.FormData.RepresentativeName,
		colPhone:          lead.FormData.Phone,
		colEmail:          lead.FormData.Email,
		colRegion:         lead.FormData.Region,
		colBudget:         BudgetOption(lead.Budget),
		colPlanTier:       lead.PlanTier,
		colIconAmount:     tierAmount(funnel.TierIcon, lead.Crew),
		colIconCount:      lead.Crew.Icon,
		colPartnerAmount:  tierAmount(funnel.TierPartner, lead.Crew),
		colPartnerCount:   lead.Crew.Partner,
		colRisingAmount:   tierAmount(funnel.TierRising, lead.Crew),
		colRisingCount:    lead.Crew.Rising,
		colSiteTypes:      siteTypes,
		colConsent:        consentValue,
		colPremiumConsent: consentValue,
		colRemarks:        lead.FormData.AdditionalRequests,
	}
}

// BudgetOption is the single-select option of the budget column.
func BudgetOption(b funnel.Budget) string {
	if b.IsCustom() {
		return customBudgetOption
	}
	return fmt.Sprintf("%d만원 (vat 별도)", int(b))
}

func tierAmount(t funnel.Tier, crew funnel.Crew) int64 {
	if crew.Count(t) > 0 {
		return funnel.UnitPrice(t)
	}
	return 0
}
