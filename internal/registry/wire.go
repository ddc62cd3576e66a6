package registry

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// The upstream JSON encodes a single nested record as an object but two or more
// as an array, and counts as either strings or numbers. flexList and flexInt
// flatten both shapes at decode time so nothing past this file has to care.

type flexList[T any] []T

func (l *flexList[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) || bytes.Equal(data, []byte(`""`)) {
		*l = nil
		return nil
	}
	if data[0] == '[' {
		var items []T
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*l = items
		return nil
	}
	var one T
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	*l = flexList[T]{one}
	return nil
}

type flexInt int

func (n *flexInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(bytes.TrimSpace(data)), `"`)
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*n = flexInt(v)
	return nil
}

type lawSearchEnvelope struct {
	LawSearch struct {
		TotalCnt flexInt          `json:"totalCnt"`
		Laws     flexList[lawRow] `json:"law"`
	} `json:"LawSearch"`
}

type lawRow struct {
	MasterNo    string `json:"법령일련번호"`
	Name        string `json:"법령명한글"`
	StatuteType string `json:"법종구분명"`
	PromDate    string `json:"공포일자"`
	EnfDate     string `json:"시행일자"`
}

type lawDetailEnvelope struct {
	Law struct {
		Basic struct {
			MasterNo     string `json:"법령일련번호"`
			Name         string `json:"법령명한글"`
			StatuteType  string `json:"법종구분명"`
			PromDate     string `json:"공포일자"`
			EnfDate      string `json:"시행일자"`
			RevisionKind string `json:"제개정구분명"`
		} `json:"기본정보"`
		Articles struct {
			Units flexList[articleUnit] `json:"조문단위"`
		} `json:"조문"`
		Addenda struct {
			Units flexList[addendumUnit] `json:"부칙단위"`
		} `json:"부칙"`
	} `json:"법령"`
}

type articleUnit struct {
	No      string             `json:"조문번호"`
	Title   string             `json:"조문제목"`
	Content string             `json:"조문내용"`
	Paras   flexList[paraUnit] `json:"항"`
}

type paraUnit struct {
	Content string             `json:"항내용"`
	Items   flexList[itemUnit] `json:"호"`
}

type itemUnit struct {
	Content string            `json:"호내용"`
	Subs    flexList[subUnit] `json:"목"`
}

type subUnit struct {
	Content string `json:"목내용"`
}

type addendumUnit struct {
	Content flexList[string] `json:"부칙내용"`
}

type precSearchEnvelope struct {
	PrecSearch struct {
		TotalCnt flexInt `json:"totalCnt"`
	} `json:"PrecSearch"`
}

func (r lawRow) toSummary() StatuteSummary {
	return StatuteSummary{
		MasterID:         r.MasterNo,
		Name:             r.Name,
		StatuteType:      r.StatuteType,
		PromulgationDate: parseWireDate(r.PromDate),
		EnforcementDate:  parseWireDate(r.EnfDate),
	}
}

func (e lawDetailEnvelope) toDetail() *StatuteDetail {
	b := e.Law.Basic
	d := &StatuteDetail{
		StatuteSummary: StatuteSummary{
			MasterID:         b.MasterNo,
			Name:             b.Name,
			StatuteType:      b.StatuteType,
			PromulgationDate: parseWireDate(b.PromDate),
			EnforcementDate:  parseWireDate(b.EnfDate),
		},
		Abolished: strings.Contains(b.RevisionKind, "폐지"),
	}
	for _, u := range e.Law.Articles.Units {
		a := RawArticle{No: u.No, Title: u.Title, Content: u.Content}
		for _, p := range u.Paras {
			para := RawParagraph{Content: p.Content}
			for _, it := range p.Items {
				item := RawItem{Content: it.Content}
				for _, sub := range it.Subs {
					item.SubItems = append(item.SubItems, sub.Content)
				}
				para.Items = append(para.Items, item)
			}
			a.Paragraphs = append(a.Paragraphs, para)
		}
		d.Articles = append(d.Articles, a)
	}
	var addenda []string
	for _, u := range e.Law.Addenda.Units {
		addenda = append(addenda, strings.Join(u.Content, "\n"))
	}
	d.AddendaText = strings.Join(addenda, "\n")
	return d
}

// parseWireDate decodes the registry's yyyymmdd date strings. Blank or
// malformed values come back as the zero time.
func parseWireDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse("20060102", s)
	if err != nil {
		return time.Time{}
	}
	return t
}
