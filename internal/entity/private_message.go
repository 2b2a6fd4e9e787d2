package entity

import "database/sql"

type PrivateMessage struct {
	SnowFlakeBase
	SenderID   string `gorm:"index;size:36"`
	Sender     User   `gorm:"foreignKey:SenderID"`
	ReceiverID string `gorm:"index;size:36"`
	Content    string `gorm:"type:text"`
	ReplyToID  sql.NullInt64
	IsRead     bool
}
