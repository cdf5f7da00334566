package models

import "time"

// RenderRecord represents the render_records table: one row per completed
// screenshot call.
type RenderRecord struct {
	ID          uint   `gorm:"primaryKey"`
	URL         string `gorm:"column:url"`
	Width       int    `gorm:"column:width"`
	Height      int    `gorm:"column:height"`
	Format      string `gorm:"column:format"`
	SizeBytes   int    `gorm:"column:size_bytes"`
	CacheHit    bool   `gorm:"column:cache_hit"`
	Placeholder bool   `gorm:"column:placeholder"`
	CreatedAt   time.Time
}
