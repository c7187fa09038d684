package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile is a social identity. UserID links it to the owning account; a
// profile without a user cannot perform scoped mutations.
type Profile struct {
	ID              uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID          *uuid.UUID `gorm:"column:user_id;type:uuid" json:"user_id,omitempty"`
	Username        string     `gorm:"column:username;not null;uniqueIndex" json:"username"`
	DisplayName     string     `gorm:"column:display_name" json:"display_name"`
	ProfileImageURL string     `gorm:"column:profile_image_url" json:"profile_image_url"`
	BioText         string     `gorm:"column:bio_text" json:"bio_text"`
	JoinDate        time.Time  `gorm:"column:join_date;autoCreateTime" json:"join_date"`
}
