package models

import "strings"

type SubmissionStatus string

const (
	StatusPending  SubmissionStatus = "pending"
	StatusAccepted SubmissionStatus = "Accepted"
	StatusRejected SubmissionStatus = "Rejected"
	StatusAnalyzed SubmissionStatus = "Analyzed"
)

// ParseSubmissionStatus maps a status query parameter onto the stored,
// exact-cased status. The input is matched case-insensitively.
func ParseSubmissionStatus(raw string) (SubmissionStatus, bool) {
	switch normalizeParam(raw) {
	case "pending":
		return StatusPending, true
	case "accepted":
		return StatusAccepted, true
	case "rejected":
		return StatusRejected, true
	case "analyzed":
		return StatusAnalyzed, true
	}
	return "", false
}

func normalizeParam(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
