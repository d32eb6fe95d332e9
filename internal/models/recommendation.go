package models

import "strings"

// Verdict buckets a loan recommendation for the renderer. It is derived
// from the free-text verdict the backend produces, never stored.
type Verdict string

const (
	VerdictAccept  Verdict = "accept"
	VerdictReject  Verdict = "reject"
	VerdictDefer   Verdict = "defer"
	VerdictUnknown Verdict = "unknown"
)

// Recommendation is the loan recommendation payload for one account
// holder. All fields are opaque backend text, rendered verbatim.
type Recommendation struct {
	Recommendation string `json:"recommendation"`
	Reasoning      string `json:"reasoning"`
	Strengths      string `json:"strengths"`
	Weaknesses     string `json:"weaknesses"`
	Evidence       string `json:"evidence"`
}

// Verdict classifies the free-text recommendation by substring, the
// same way the dashboard picks its status icon.
func (r Recommendation) Verdict() Verdict {
	verdict := strings.ToLower(r.Recommendation)
	switch {
	case strings.Contains(verdict, "accept"):
		return VerdictAccept
	case strings.Contains(verdict, "reject"):
		return VerdictReject
	case strings.Contains(verdict, "defer"):
		return VerdictDefer
	default:
		return VerdictUnknown
	}
}
