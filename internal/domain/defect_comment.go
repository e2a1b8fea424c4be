package domain

import "time"

// DefectComment is an append-only remark on a defect. Comments are never
// edited after creation.
type DefectComment struct {
	ID           int64
	DefectID     int64
	UserID       int64
	UserNickname string
	Content      string
	CreatedAt    time.Time
}
