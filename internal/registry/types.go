// Package registry is the narrow contract against the national law information
// service. Everything past this package works on the normalized types below;
// the upstream's wire quirks (array-or-object shapes, yyyymmdd dates) stop here.
package registry

import "time"

// StatuteSummary is one row of a registry search result.
type StatuteSummary struct {
	MasterID         string
	Name             string
	StatuteType      string
	PromulgationDate time.Time
	EnforcementDate  time.Time
}

// RawArticle is one article as the registry returns it: a shallow tree of
// paragraphs (항), items (호) and sub-items (목). Content carries the article
// line itself, which for non-article rows holds a chapter or part heading.
type RawArticle struct {
	No         string
	Title      string
	Content    string
	Paragraphs []RawParagraph
}

type RawParagraph struct {
	Content string
	Items   []RawItem
}

type RawItem struct {
	Content  string
	SubItems []string
}

// StatuteDetail is the full fetch for one statute: metadata, the article tree
// and the trailing addenda (부칙) text.
type StatuteDetail struct {
	StatuteSummary
	Abolished   bool
	Articles    []RawArticle
	AddendaText string
}

// CatalogPage is one page of the full-catalog scan. Total is the registry's
// reported overall count, repeated on every page.
type CatalogPage struct {
	Total    int
	Statutes []StatuteSummary
}
