package models

import (
	"blog/db"
	"time"

	"gorm.io/gorm"
)

const postDisplayLength = 15

type Post struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"<-:create;index" json:"created_at"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	AuthorID  uint64    `gorm:"not null;index" json:"author_id"`
	Author    User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	GroupID   *uint64   `gorm:"index" json:"group_id"` // can be null
	Group     *Group    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"group"`
	Image     string    `gorm:"type:varchar(300)" json:"image"` // relative to the storage root, e.g. posts/cat.jpg
	Thumb     string    `gorm:"type:varchar(300)" json:"thumb"`
}

// String returns the first 15 characters of the text
func (p *Post) String() string {
	runes := []rune(p.Text)
	if len(runes) > postDisplayLength {
		return string(runes[:postDisplayLength])
	}
	return p.Text
}

// PostsQuery returns all posts, newest first
func PostsQuery() *gorm.DB {
	return db.Instance.Model(&Post{}).Order("posts.created_at DESC, posts.id DESC")
}

func PostsInGroup(groupID uint64) *gorm.DB {
	return PostsQuery().Where("posts.group_id = ?", groupID)
}

func PostsByAuthor(authorID uint64) *gorm.DB {
	return PostsQuery().Where("posts.author_id = ?", authorID)
}

func PostCreate(p *Post) error {
	return db.Instance.Omit("Author", "Group").Create(p).Error
}

func PostByID(id uint64) (p Post, err error) {
	err = db.Instance.Preload("Author").Preload("Group").First(&p, id).Error
	return
}

// Update persists the editable fields only, the author and creation time never change
func (p *Post) Update() error {
	return db.Instance.Model(p).Select("Text", "GroupID", "Image", "Thumb").Updates(p).Error
}

// PostDelete removes the Post along with its comments
func PostDelete(id uint64) error {
	return db.Instance.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&Comment{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&Post{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func PostCount() (count int64, err error) {
	err = db.Instance.Model(&Post{}).Count(&count).Error
	return
}

func PostCountByAuthor(authorID uint64) (count int64, err error) {
	err = db.Instance.Model(&Post{}).Where("author_id = ?", authorID).Count(&count).Error
	return
}
