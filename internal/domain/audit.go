package domain

import "time"

// AuditInfo is the bookkeeping every persisted entity carries.
// Rows are never physically removed; IsActive=false hides them from reads.
type AuditInfo struct {
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewAuditInfo returns metadata for a freshly created, active entity.
func NewAuditInfo(now time.Time) AuditInfo {
	return AuditInfo{
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch records a modification.
func (a *AuditInfo) Touch(now time.Time) {
	a.UpdatedAt = now
}
