package entity

type Subreddit struct {
	Base
	Name          string `gorm:"unique;size:64"`
	Description   string
	Rules         string
	Theme         string
	CreatedBy     string `gorm:"size:36"`
	CreatedByUser User   `gorm:"foreignKey:CreatedBy"`
}
