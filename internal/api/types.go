package api

import "fmt"

// JobItem is the summary record returned by a search query.
// Immutable once fetched; lives for the duration of one search response.
type JobItem struct {
	ID             int     `json:"id"`
	BadgeLetters   string  `json:"badgeLetters"`
	Title          string  `json:"title"`
	Company        string  `json:"company"`
	RelevanceScore float64 `json:"relevanceScore"`
	DaysAgo        int     `json:"daysAgo"`
}

// JobDetails is the full record for a single job, fetched by id.
type JobDetails struct {
	JobItem
	Description    string   `json:"description"`
	Qualifications []string `json:"qualifications"`
	Reviews        []string `json:"reviews"`
	Duration       string   `json:"duration"`
	Salary         string   `json:"salary"`
	Location       string   `json:"location"`
	CoverImgURL    string   `json:"coverImgURL"`
	CompanyURL     string   `json:"companyURL"`
}

// valid reports whether a summary record is well-formed enough to display.
// The demo backend occasionally emits partial rows; those are dropped at the
// parse boundary rather than trusted downstream.
func (j JobItem) valid() bool {
	return j.ID > 0 && j.Title != "" && j.DaysAgo >= 0
}

// APIError is a typed failure for non-2xx responses. Description is
// extracted from the JSON response body when present.
type APIError struct {
	StatusCode  int
	Description string
}

func (e *APIError) Error() string {
	if e.Description != "" {
		return e.Description
	}
	return fmt.Sprintf("unexpected status %d", e.StatusCode)
}
