package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

const leadsSheet = "Leads"

var exportHeaders = []string{
	"ID", "캠핑장", "대표자", "연락처", "이메일", "권역",
	"예산", "선택플랜", "아이콘", "파트너", "라이징",
	"사이트 종류", "추가요청", "Airtable ID", "상태", "오류", "신청일시",
}

// Export renders every journal entry to an xlsx workbook.
func (j *Journal) Export(ctx context.Context) ([]byte, error) {
	entries, err := j.List(ctx)
	if err != nil {
		return nil, err
	}
	return EntriesToExcel(entries)
}

func EntriesToExcel(entries []Entry) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", leadsSheet); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	for col, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(leadsSheet, cell, header)
	}

	for row, e := range entries {
		data := []interface{}{
			e.ID,
			e.AccommodationName,
			e.RepresentativeName,
			e.Phone,
			e.Email,
			e.Region,
			e.Budget,
			e.PlanTier,
			e.IconCount,
			e.PartnerCount,
			e.RisingCount,
			strings.Join(e.SiteTypes, ", "),
			e.AdditionalRequests,
			e.RecordID,
			e.Status,
			e.ErrorMessage,
			e.CreatedAt.Format("2006-01-02 15:04"),
		}
		for col, value := range data {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(leadsSheet, cell, value)
		}
	}

	style, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	last, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
	f.SetCellStyle(leadsSheet, "A1", last, style)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
