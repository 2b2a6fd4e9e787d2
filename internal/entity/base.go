package entity

import (
	"time"

	"gorm.io/gorm"
)

type Base struct {
	ID        string    `gorm:"primarykey;size:36"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

type SnowFlakeBase struct {
	ID        int64     `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}
