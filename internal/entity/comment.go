package entity

import "database/sql"

type Comment struct {
	Base
	Content   string         `gorm:"type:text"`
	AuthorID  string         `gorm:"index;size:36"`
	Author    User           `gorm:"foreignKey:AuthorID"`
	PostID    string         `gorm:"index;size:36"`
	ParentID  sql.NullString `gorm:"index;size:36"`
	IsDeleted bool
}
