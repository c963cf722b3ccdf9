package model

import "time"

// Lawyer maps the directory table. The quoted column names are inherited
// from the directory export and must not be renamed.
type Lawyer struct {
	Id          int64     `gorm:"primaryKey;autoIncrement"`
	LawFirm     string    `gorm:"column:Law Firm;type:text"`
	PhoneNumber string    `gorm:"column:Phone Number;type:text"`
	Email       string    `gorm:"type:text"`
	Website     string    `gorm:"type:text"`
	City        string    `gorm:"type:text;index"`
	County      string    `gorm:"type:text;index"`
	State       string    `gorm:"type:text;index"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (Lawyer) TableName() string {
	return "lawyers_real"
}
