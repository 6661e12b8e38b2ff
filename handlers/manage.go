package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"blog/models"
	"blog/storage"
	"blog/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Admin-only JSON end-points, enough to run the site without an admin interface

func ManageGroupCreate(c *gin.Context, user *models.User) {
	form := GroupForm{}
	if err := c.ShouldBindWith(&form, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	form.Title = strings.TrimSpace(form.Title)
	form.Slug = strings.TrimSpace(form.Slug)
	errs := validateForm(&form)
	if _, invalid := errs["slug"]; !invalid {
		_, err := models.GroupBySlug(form.Slug)
		if err == nil {
			errs.Add("slug", msgSlugTaken)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			jsonDBError(c, err)
			return
		}
	}
	if !errs.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": BadRequestResponse.Error, "errors": errs})
		return
	}
	group, err := models.GroupCreate(form.Title, form.Slug, form.Description)
	if err != nil {
		jsonDBError(c, err)
		return
	}
	log.Info().Str("slug", group.Slug).Str("by", user.Username).Msg("Group created")
	c.JSON(http.StatusOK, gin.H{"error": "", "group": group})
}

func ManageGroupDelete(c *gin.Context, user *models.User) {
	group, err := models.GroupBySlug(c.Param("slug"))
	if err != nil {
		jsonDBError(c, err)
		return
	}
	if err = models.GroupDelete(group.ID); err != nil {
		jsonDBError(c, err)
		return
	}
	log.Info().Str("slug", group.Slug).Str("by", user.Username).Msg("Group deleted")
	c.JSON(http.StatusOK, OKResponse)
}

func ManagePostDelete(c *gin.Context, user *models.User) {
	id, err := strconv.ParseUint(c.Param("post_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, NotFoundResponse)
		return
	}
	post, err := models.PostByID(id)
	if err != nil {
		jsonDBError(c, err)
		return
	}
	if err = models.PostDelete(post.ID); err != nil {
		jsonDBError(c, err)
		return
	}
	deleteFiles(post.Image, post.Thumb)
	log.Info().Uint64("post", post.ID).Str("by", user.Username).Msg("Post deleted")
	c.JSON(http.StatusOK, OKResponse)
}

func ManageCacheClear(cache *utils.PageCache) func(*gin.Context, *models.User) {
	return func(c *gin.Context, user *models.User) {
		cache.Clear()
		log.Info().Str("by", user.Username).Msg("Page cache cleared")
		c.JSON(http.StatusOK, OKResponse)
	}
}

type StatusResponse struct {
	Error       string `json:"error"`
	Users       int64  `json:"users"`
	Groups      int64  `json:"groups"`
	Posts       int64  `json:"posts"`
	Comments    int64  `json:"comments"`
	CachedPages int    `json:"cached_pages"`
	Storage     string `json:"storage"`
	FreeSpace   uint64 `json:"free_space"`
}

func ManageStatus(cache *utils.PageCache) func(*gin.Context, *models.User) {
	return func(c *gin.Context, _ *models.User) {
		var (
			result StatusResponse
			err    error
		)
		counters := []struct {
			count func() (int64, error)
			dst   *int64
		}{
			{models.UserCount, &result.Users},
			{models.GroupCount, &result.Groups},
			{models.PostCount, &result.Posts},
			{models.CommentCount, &result.Comments},
		}
		for _, counter := range counters {
			if *counter.dst, err = counter.count(); err != nil {
				jsonDBError(c, err)
				return
			}
		}
		s := storage.GetDefaultStorage()
		result.CachedPages = cache.Len()
		result.Storage = s.Name()
		result.FreeSpace = s.GetFreeSpace()
		c.JSON(http.StatusOK, result)
	}
}
