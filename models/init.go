package models

import (
	"blog/db"
	"errors"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

func Init() error {
	return db.Instance.AutoMigrate(
		&User{},
		&Grant{},
		&Group{},
		&Post{},
		&Comment{},
	)
}

// EnsureAdmin creates the initial admin account if it is configured and missing
func EnsureAdmin(username, password string) error {
	if username == "" || password == "" {
		return nil
	}
	_, err := UserByUsername(username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	u, err := UserCreate(UserCreateParams{Username: username, Password: password})
	if err != nil {
		return err
	}
	if err = GrantPermission(u.ID, PermissionAdmin, 0); err != nil {
		return err
	}
	log.Info().Str("username", username).Msg("Admin user created")
	return nil
}
