package domain

import "time"

// LoadLog is an audit entry written by spreadsheet imports.
type LoadLog struct {
	ID       string
	PlanID   string
	Actor    string
	LoadedAt time.Time
	Message  string
	FileName string
	Sheet    string
}

// LoadLogEntry is a LoadLog joined with its plan and project for listings.
type LoadLogEntry struct {
	LoadLog
	PlanCode     string
	ProjectTitle string
}
