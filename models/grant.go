package models

import (
	"blog/db"

	"gorm.io/gorm/clause"
)

type Permission uint8

const (
	PermissionNone  Permission = 0
	PermissionAdmin Permission = 1 // groups, post removal, page cache
)

type Grant struct {
	ID         uint64     `gorm:"primaryKey" json:"id"`
	CreatedAt  int64      `json:"created_at"`
	GrantorID  *uint64    `json:"grantor_id"`
	Grantor    *User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
	UserID     uint64     `gorm:"index:user_permission,unique" json:"user_id"`
	User       User       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Permission Permission `gorm:"index:user_permission,unique" json:"permission"`
}

// GrantPermission is a no-op if the user already has it. grantorID 0 means "system"
func GrantPermission(userID uint64, permission Permission, grantorID uint64) error {
	grant := Grant{
		UserID:     userID,
		Permission: permission,
	}
	if grantorID > 0 {
		grant.GrantorID = &grantorID
	}
	return db.Instance.Clauses(clause.OnConflict{DoNothing: true}).Create(&grant).Error
}
