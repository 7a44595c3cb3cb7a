// Package model defines the core pipeline data types.
package model

import (
	"regexp"
	"strings"
)

// CandidateDelimiter separates the fields of one candidate line.
const CandidateDelimiter = "||"

// Candidate is a best-effort split of a raw candidate line.
type Candidate struct {
	Raw     string `json:"raw"`
	Name    string `json:"name"`
	Details string `json:"details,omitempty"`
}

var listMarker = regexp.MustCompile(`^\s*(?:\d+[.)]|[-*])\s+`)

// ParseCandidate splits a raw line on the first delimiter. Leading list markers
// such as "1." or "-" are stripped from the name.
func ParseCandidate(raw string) Candidate {
	c := Candidate{Raw: raw}
	name, details, _ := strings.Cut(raw, CandidateDelimiter)
	c.Name = strings.TrimSpace(listMarker.ReplaceAllString(name, ""))
	c.Details = strings.TrimSpace(details)
	return c
}

// CampaignRequest holds everything the campaign prompt is built from.
type CampaignRequest struct {
	Company  string `json:"company"`
	Findings string `json:"investigationResults"`
	Market   string `json:"market"`
	Language string `json:"language"`
}

// MemoryStats summarizes the stored company log.
type MemoryStats struct {
	Total   int            `json:"total"`
	Unique  int            `json:"unique"`
	Repeats map[string]int `json:"repeats,omitempty"`
}
