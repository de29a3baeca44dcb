package models

import "gorm.io/gorm"

type Group struct {
	gorm.Model
	GroupName string `json:"group_name" gorm:"unique"`
	CreatedBy int
	UpdatedBy int
	DeletedBy int
}
