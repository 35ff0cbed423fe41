package notify

import (
	"bytes"
	"fmt"
	"strings"

	"campcrew-funnel/internal/airtable"
	"campcrew-funnel/internal/funnel"

	"github.com/xuri/excelize/v2"
)

const leadSheet = "Lead"

// LeadSheet renders one lead as a two-column xlsx workbook.
func LeadSheet(lead funnel.Snapshot, recordID string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", leadSheet); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	rows := [][2]interface{}{
		{"Airtable ID", recordID},
		{"캠핑장", lead.FormData.AccommodationName},
		{"대표자", lead.FormData.RepresentativeName},
		{"연락처", lead.FormData.Phone},
		{"이메일", lead.FormData.Email},
		{"권역", lead.FormData.Region},
		{"예산", airtable.BudgetOption(lead.Budget)},
		{"플랜", lead.PlanTier},
		{funnel.TierIcon.Label(), lead.Crew.Icon},
		{funnel.TierPartner.Label(), lead.Crew.Partner},
		{funnel.TierRising.Label(), lead.Crew.Rising},
		{"공급가", funnel.CrewSubtotal(lead.Crew)},
		{"VAT 포함", funnel.CrewTotalWithVAT(lead.Crew)},
		{"사이트 종류", strings.Join(lead.FormData.SiteTypes, ", ")},
		{"추가요청", lead.FormData.AdditionalRequests},
	}
	if lead.SelectedPlan != nil && !lead.SelectedPlan.IsCustom() {
		rows[11][1] = lead.SelectedPlan.Price
		rows[12][1] = lead.SelectedPlan.PriceWithVAT
	}

	for i, r := range rows {
		f.SetCellValue(leadSheet, fmt.Sprintf("A%d", i+1), r[0])
		f.SetCellValue(leadSheet, fmt.Sprintf("B%d", i+1), r[1])
	}

	style, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	f.SetCellStyle(leadSheet, "A1", fmt.Sprintf("A%d", len(rows)), style)
	f.SetColWidth(leadSheet, "A", "A", 14)
	f.SetColWidth(leadSheet, "B", "B", 40)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
