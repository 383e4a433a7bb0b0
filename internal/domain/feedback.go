package domain

import "time"

// FeedbackKind is the closed set of commands the dossier rating buttons
// can send back. Anything else from the wire is rejected at parse time.
type FeedbackKind string

const (
	FeedbackPositive FeedbackKind = "positive"
	FeedbackNegative FeedbackKind = "negative"
	FeedbackComment  FeedbackKind = "feedback"
)

func ParseFeedbackKind(s string) (FeedbackKind, bool) {
	switch FeedbackKind(s) {
	case FeedbackPositive, FeedbackNegative, FeedbackComment:
		return FeedbackKind(s), true
	}
	return "", false
}

// FeedbackEntry is one rating of a delivered dossier.
type FeedbackEntry struct {
	At        time.Time    `json:"at"`
	CompanyID string       `json:"company"`
	Kind      FeedbackKind `json:"kind"`
	DialogID  string       `json:"dialog_id"`
}
