package funnel

const (
	AgreementContract = "contract"
	AgreementPrivacy  = "privacy"
)

type Exception struct {
	Title string   `json:"title"`
	Items []string `json:"items"`
}

type Clause struct {
	Text      string     `json:"text"`
	Critical  bool       `json:"critical"`
	Exception *Exception `json:"exception,omitempty"`
}

type Agreement struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Summary string   `json:"summary"`
	Clauses []Clause `json:"clauses"`
}

var agreementCatalog = []Agreement{
	{
		ID:      AgreementContract,
		Title:   "[필수] 크리에이터 협찬 계약 조건 동의",
		Summary: "협찬 진행 방식, 결제, 취소 및 콘텐츠 활용에 관한 조건입니다.",
		Clauses: []Clause{
			{Text: "제1조 (목적) 본 계약은 캠핑장(이하 '캠지기')과 운영사 간 크리에이터 숙박 협찬 진행에 관한 사항을 정합니다."},
			{Text: "제2조 (협찬 금액) 협찬 금액은 선택한 플랜 또는 등급별 단가 기준이며 VAT 별도입니다. 입금 확인 후 모집이 시작됩니다.", Critical: true},
			{Text: "제3조 (모집 진행) 운영사는 입금 확인 후 영업일 기준 3일 이내에 크리에이터 모집을 시작합니다."},
			{Text: "제4조 (일정 조율) 방문 일정은 캠지기와 크리에이터가 운영사를 통해 협의하여 확정합니다."},
			{
				Text:     "제5조 (숙박 제공) 캠지기는 확정된 일정에 크리에이터에게 1객실(1사이트) 1박을 무상 제공합니다.",
				Critical: true,
				Exception: &Exception{
					Title: "추가 비용이 발생하는 경우",
					Items: []string{"추가 인원 요금", "장작, 전기 등 현장 유료 옵션"},
				},
			},
			{Text: "제6조 (콘텐츠 제작) 크리에이터는 방문 후 14일 이내에 약정된 채널에 후기 콘텐츠를 게시합니다."},
			{Text: "제7조 (콘텐츠 수정) 게시된 콘텐츠의 사실관계 오류를 제외한 내용 수정 요청은 받지 않습니다.", Critical: true},
			{
				Text:     "제8조 (환불) 모집이 시작된 이후에는 협찬 금액이 환불되지 않습니다.",
				Critical: true,
				Exception: &Exception{
					Title: "환불 예외",
					Items: []string{"운영사 사유로 모집이 불가한 경우 전액 환불", "모집 시작 전 취소 요청 시 전액 환불"},
				},
			},
			{Text: "제9조 (노쇼 및 일정 변경) 캠지기 사유로 확정 일정이 취소되는 경우 해당 크리에이터 단가는 차감됩니다.", Critical: true},
			{Text: "제10조 (콘텐츠 활용) 캠지기는 게시된 콘텐츠를 출처 표기 후 자사 홍보 채널에 활용할 수 있습니다."},
			{Text: "제11조 (비밀유지) 양 당사자는 계약 과정에서 알게 된 상대방의 정보를 제3자에게 누설하지 않습니다."},
			{Text: "제12조 (분쟁 해결) 본 계약에 관한 분쟁은 상호 협의로 해결하며, 협의가 되지 않을 경우 관할 법원에 따릅니다."},
			{Text: "제13조 (성과 보장 없음) 운영사는 조회수, 예약 전환 등 특정 성과를 보장하지 않습니다.", Critical: true},
		},
	},
	{
		ID:      AgreementPrivacy,
		Title:   "[필수] 개인정보 수집 및 이용 동의",
		Summary: "신청 처리와 연락을 위해 최소한의 개인정보를 수집합니다.",
		Clauses: []Clause{
			{Text: "수집 항목: 캠핑장 이름, 대표자명, 연락처, 이메일, 소재 권역"},
			{Text: "이용 목적: 협찬 신청 접수, 진행 안내 및 정산 연락"},
			{Text: "보유 기간: 협찬 종료 후 1년간 보관 후 파기"},
			{Text: "동의를 거부할 수 있으나, 거부 시 신청이 제한됩니다."},
		},
	},
}

// Agreements returns the ordered agreement catalog.
func Agreements() []Agreement {
	out := make([]Agreement, len(agreementCatalog))
	copy(out, agreementCatalog)
	return out
}

func findAgreement(id string) (Agreement, bool) {
	for _, a := range agreementCatalog {
		if a.ID == id {
			return a, true
		}
	}
	return Agreement{}, false
}

// CriticalClauseIndices returns the indices of the contract clauses that need
// their own acknowledgement, ascending.
func CriticalClauseIndices() []int {
	contract, _ := findAgreement(AgreementContract)
	var out []int
	for i, c := range contract.Clauses {
		if c.Critical {
			out = append(out, i)
		}
	}
	return out
}

func isCriticalClause(idx int) bool {
	contract, _ := findAgreement(AgreementContract)
	return idx >= 0 && idx < len(contract.Clauses) && contract.Clauses[idx].Critical
}
