package entity

import (
	"errors"
	"time"
)

// JobStatus is the lifecycle state of an AnalysisJob.
type JobStatus string

const (
	StatusPending   JobStatus = "pending"
	StatusCompleted JobStatus = "completed"
	StatusFailed    JobStatus = "failed"
)

// IsTerminal reports whether no further transition is possible.
func (s JobStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// ErrInvalidTransition is returned when a terminal job is asked to transition again.
var ErrInvalidTransition = errors.New("analysis job is already in a terminal state")

// AnalysisJob mirrors the `analysis_results` record exposed over the API.
type AnalysisJob struct {
	ID           string        `json:"id"`
	URL          string        `json:"url"`
	Status       JobStatus     `json:"status"`
	WebsiteData  *WebsiteData  `json:"website_data"`
	LinkedinData *LinkedinData `json:"linkedin_data"`
	ErrorMessage *string       `json:"error_message"`
	CreatedAt    time.Time     `json:"created_at"`
}

// NewAnalysisJob returns a pending job for url.
func NewAnalysisJob(id, url string, createdAt time.Time) *AnalysisJob {
	return &AnalysisJob{
		ID:        id,
		URL:       url,
		Status:    StatusPending,
		CreatedAt: createdAt,
	}
}

// Clone returns a copy that can be handed out without sharing the status
// fields. Facet data is immutable once attached and stays shared.
func (j *AnalysisJob) Clone() *AnalysisJob {
	c := *j
	return &c
}

// Complete moves a pending job to completed and attaches the results.
func (j *AnalysisJob) Complete(website *WebsiteData, linkedin *LinkedinData) error {
	if j.Status != StatusPending {
		return ErrInvalidTransition
	}
	j.Status = StatusCompleted
	j.WebsiteData = website
	j.LinkedinData = linkedin
	return nil
}

// Fail moves a pending job to failed with a human readable reason.
func (j *AnalysisJob) Fail(reason string) error {
	if j.Status != StatusPending {
		return ErrInvalidTransition
	}
	if reason == "" {
		reason = "Analysis failed"
	}
	j.Status = StatusFailed
	j.ErrorMessage = &reason
	return nil
}
