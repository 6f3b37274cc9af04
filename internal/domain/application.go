package domain

import "time"

// Application statuses as the backend spells them.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// Style classes the UI shell maps to its color scheme.
const (
	ClassWarning = "warning"
	ClassSuccess = "success"
	ClassDanger  = "danger"
	ClassDefault = "default"
)

type Application struct {
	ID        string      `json:"_id"`
	Job       *JobPosting `json:"job,omitempty"` // nil when the posting was deleted
	Applicant *User       `json:"applicant,omitempty"`
	Message   string      `json:"message"`
	ResumeURL string      `json:"resumeUrl,omitempty"`
	Status    string      `json:"status"`
	CreatedAt *time.Time  `json:"createdAt,omitempty"`
}

// KnownStatus reports whether s is one of the three statuses the reviewer
// may set. Unknown values still render (see StatusClass); they just can't be
// written.
func KnownStatus(s string) bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// StatusClass is total: any status the backend ever grows returns the
// default class rather than failing.
func StatusClass(s string) string {
	switch s {
	case StatusPending:
		return ClassWarning
	case StatusAccepted:
		return ClassSuccess
	case StatusRejected:
		return ClassDanger
	}
	return ClassDefault
}
