package domain

import "time"

type JobPosting struct {
	ID          string     `json:"_id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location"`
	Type        string     `json:"type"`
	Description string     `json:"description"`
	Salary      string     `json:"salary,omitempty"`
	Skills      []string   `json:"skills,omitempty"`
	Experience  int        `json:"experience,omitempty"`
	Remote      bool       `json:"remote"`
	NewThisWeek bool       `json:"newThisWeek"`
	Applicants  int        `json:"applicants"`
	PostedAt    *time.Time `json:"postedDate,omitempty"`
	PostedBy    *User      `json:"postedBy,omitempty"`
}

// DisplayCompany falls back to the poster's name when the company field is
// blank (older postings only carried postedBy).
func (p JobPosting) DisplayCompany() string {
	if p.Company != "" {
		return p.Company
	}
	if p.PostedBy != nil {
		return p.PostedBy.Name
	}
	return ""
}
