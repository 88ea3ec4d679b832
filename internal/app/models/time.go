package models

import "time"

type TimeModel struct {
	CreatedAt time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt" bson:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt,omitempty" bson:"deletedAt,omitempty"`
}

func (m *TimeModel) SetCreatedAtUpdatedAt(now time.Time) {
	m.CreatedAt = now
	m.UpdatedAt = now
}

func (m *TimeModel) SetUpdatedAt(now time.Time) {
	m.UpdatedAt = now
}
