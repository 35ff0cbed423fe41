package funnel

import (
	"regexp"
	"strings"
	"unicode"
)

// Contact info field keys, shared by the validator, the error map and ChangeField.
const (
	FieldAccommodationName  = "accommodationName"
	FieldRepresentativeName = "representativeName"
	FieldPhone              = "phone"
	FieldEmail              = "email"
	FieldRegion             = "region"
	FieldSiteTypes          = "siteTypes"
	FieldAdditionalRequests = "additionalRequests"
)

var Regions = []string{"경기도", "강원도", "충청도", "경상도", "전라도", "제주도"}

var SiteTypes = []string{"오토캠핑", "글램핑", "카라반", "캠핑카", "노지캠핑", "펜션"}

var (
	mobilePattern = regexp.MustCompile(`^01[016789][-.]?\d{3,4}[-.]?\d{4}$`)
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

type ContactInfo struct {
	AccommodationName  string   `json:"accommodationName"`
	RepresentativeName string   `json:"representativeName"`
	Phone              string   `json:"phone"`
	Email              string   `json:"email"`
	Region             string   `json:"region"`
	SiteTypes          []string `json:"siteTypes"`
	AdditionalRequests string   `json:"additionalRequests"`
}

// IsMobilePhone reports whether phone is a Korean mobile number, e.g.
// 010-1234-5678 or 01012345678. Whitespace is ignored.
func IsMobilePhone(phone string) bool {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, phone)
	return mobilePattern.MatchString(cleaned)
}

func IsEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// Validate checks every field independently and returns field -> message.
// An empty map means the contact info is valid.
func Validate(info ContactInfo) map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(info.AccommodationName) == "" {
		errs[FieldAccommodationName] = "캠핑장 이름을 입력해주세요"
	}
	if strings.TrimSpace(info.RepresentativeName) == "" {
		errs[FieldRepresentativeName] = "대표자명을 입력해주세요"
	}

	if strings.TrimSpace(info.Phone) == "" {
		errs[FieldPhone] = "연락처를 입력해주세요"
	} else if !IsMobilePhone(info.Phone) {
		errs[FieldPhone] = "올바른 휴대폰 번호를 입력해주세요"
	}

	if email := strings.TrimSpace(info.Email); email == "" {
		errs[FieldEmail] = "이메일을 입력해주세요"
	} else if !IsEmail(email) {
		errs[FieldEmail] = "올바른 이메일 형식을 입력해주세요"
	}

	if !contains(Regions, info.Region) {
		errs[FieldRegion] = "소재 권역을 선택해주세요"
	}

	valid := 0
	for _, st := range info.SiteTypes {
		if contains(SiteTypes, st) {
			valid++
		}
	}
	if valid == 0 {
		errs[FieldSiteTypes] = "사이트 종류를 1개 이상 선택해주세요"
	}

	return errs
}
