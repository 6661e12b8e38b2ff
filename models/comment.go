package models

import (
	"blog/db"
	"time"
)

const CommentMaxLength = 200

type Comment struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"<-:create;index" json:"created_at"`
	PostID    uint64    `gorm:"not null;index" json:"post_id"`
	Post      Post      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	AuthorID  uint64    `gorm:"not null" json:"author_id"`
	Author    User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	Text      string    `gorm:"type:varchar(200);not null" json:"text"`
}

func (c *Comment) String() string {
	return c.Text
}

func CommentCreate(postID, authorID uint64, text string) (c Comment, err error) {
	c = Comment{
		PostID:   postID,
		AuthorID: authorID,
		Text:     text,
	}
	err = db.Instance.Omit("Post", "Author").Create(&c).Error
	return
}

// CommentsFor returns the comments of a post, oldest first
func CommentsFor(postID uint64) (comments []Comment, err error) {
	err = db.Instance.
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	return
}

func CommentCount() (count int64, err error) {
	err = db.Instance.Model(&Comment{}).Count(&count).Error
	return
}
