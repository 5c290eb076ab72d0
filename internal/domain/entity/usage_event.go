// Package entity 定义领域实体
package entity

import "time"

type GenerationUsageEvent struct {
	ID            string    `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClientID      string    `json:"client_id" gorm:"type:varchar(64);index;not null"`
	Authenticated bool      `json:"authenticated" gorm:"not null;default:false"`
	Provider      string    `json:"provider" gorm:"type:varchar(32);not null"`
	Model         string    `json:"model" gorm:"type:varchar(64);not null"`
	DocumentBytes int       `json:"document_bytes" gorm:"not null;default:0"`
	Completed     bool      `json:"completed" gorm:"not null;default:false"`
	DurationMs    int       `json:"duration_ms" gorm:"not null;default:0"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (GenerationUsageEvent) TableName() string {
	return "generation_usage_events"
}
