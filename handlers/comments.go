package handlers

import (
	"net/http"
	"strings"

	"blog/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/rs/zerolog/log"
)

// AddComment always goes back to the post, an invalid comment is just dropped
func AddComment(c *gin.Context, user *models.User) {
	post, ok := postFromParam(c)
	if !ok {
		return
	}
	form := CommentForm{}
	if err := c.ShouldBindWith(&form, binding.Form); err != nil {
		log.Debug().Err(err).Uint64("post", post.ID).Msg("Comment dropped")
		c.Redirect(http.StatusFound, postURL(post.ID))
		return
	}
	form.Text = strings.TrimSpace(form.Text)
	if errs := validateForm(&form); !errs.Valid() {
		log.Debug().Interface("errors", errs).Uint64("post", post.ID).Msg("Comment dropped")
		c.Redirect(http.StatusFound, postURL(post.ID))
		return
	}
	if _, err := models.CommentCreate(post.ID, user.ID, form.Text); err != nil {
		serverError(c, err, DBErrorResponse)
		return
	}
	c.Redirect(http.StatusFound, postURL(post.ID))
}
