package models

import (
	"blog/db"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Username  string    `gorm:"type:varchar(150);index:uniq_username,unique;not null" json:"username"`
	FirstName string    `gorm:"type:varchar(150)" json:"first_name"`
	LastName  string    `gorm:"type:varchar(150)" json:"last_name"`
	Email     string    `gorm:"type:varchar(254)" json:"-"`
	Password  string    `gorm:"type:varchar(128)" json:"-"`
	Grants    []Grant   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

type UserCreateParams struct {
	Username  string
	FirstName string
	LastName  string
	Email     string
	Password  string
}

var ErrBadCredentials = errors.New("please enter a correct username and password")

func UserCreate(p UserCreateParams) (u User, err error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
	if err != nil {
		return u, err
	}
	u = User{
		Username:  p.Username,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
		Password:  string(hash),
	}
	return u, db.Instance.Create(&u).Error
}

func UserLogin(username, plainTextPassword string) (u User, err error) {
	if err = db.Instance.Preload("Grants").First(&u, "username = ?", username).Error; err != nil {
		return User{}, ErrBadCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plainTextPassword)) != nil {
		return User{}, ErrBadCredentials
	}
	return u, nil
}

func UserByUsername(username string) (u User, err error) {
	err = db.Instance.First(&u, "username = ?", username).Error
	return
}

func UserByID(id uint64) (u User, err error) {
	err = db.Instance.Preload("Grants").First(&u, id).Error
	return
}

func UsernameTaken(username string) bool {
	var count int64
	db.Instance.Model(&User{}).Where("username = ?", username).Count(&count)
	return count > 0
}

func UserCount() (count int64, err error) {
	err = db.Instance.Model(&User{}).Count(&count).Error
	return
}

// FullName falls back to the username when no name is set
func (u *User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

func (u *User) String() string {
	return u.Username
}

func (u *User) HasPermission(required Permission) bool {
	for _, permission := range u.Grants {
		if permission.Permission == required {
			return true
		}
	}
	return false
}

func (u *User) HasPermissions(required []Permission) bool {
	for _, permission := range required {
		if !u.HasPermission(permission) {
			return false
		}
	}
	return true
}
