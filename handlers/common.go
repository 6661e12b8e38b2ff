package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"blog/auth"
	"blog/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type Response struct {
	Error string `json:"error"`
}

var (
	// Predefined errors
	OKResponse           = Response{}
	NotFoundResponse     = Response{"Not Found"}
	BadRequestResponse   = Response{"Bad Request"}
	DBErrorResponse      = Response{"DB Error"}
	StorageErrorResponse = Response{"Storage Error"}
)

// wantsJSON is true for ?format=json, every view can answer with JSON instead of HTML
func wantsJSON(c *gin.Context) bool {
	return c.Query("format") == "json"
}

// render adds the data every page needs and writes either the HTML template or the JSON
func render(c *gin.Context, status int, template string, data gin.H) {
	data["year"] = time.Now().Year()
	data["user"] = nil
	if user := auth.CurrentUser(c); user.ID != 0 {
		data["user"] = user
	}
	if wantsJSON(c) {
		c.JSON(status, data)
		return
	}
	c.HTML(status, template, data)
}

// NotFound is also used for unknown routes
func NotFound(c *gin.Context) {
	if wantsJSON(c) {
		c.JSON(http.StatusNotFound, NotFoundResponse)
		return
	}
	render(c, http.StatusNotFound, "404.tmpl", gin.H{"path": c.Request.URL.Path})
}

func logError(c *gin.Context, err error, msg string) {
	log.Error().Err(err).Str("path", c.Request.URL.Path).Msg(msg)
}

func serverError(c *gin.Context, err error, response Response) {
	logError(c, err, response.Error)
	if wantsJSON(c) {
		c.JSON(http.StatusInternalServerError, response)
		return
	}
	render(c, http.StatusInternalServerError, "error.tmpl", gin.H{"error": response.Error})
}

// dbError answers 404 for missing records and 500 for everything else
func dbError(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		NotFound(c)
		return
	}
	serverError(c, err, DBErrorResponse)
}

// jsonDBError is dbError for the JSON-only end-points
func jsonDBError(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, NotFoundResponse)
		return
	}
	logError(c, err, DBErrorResponse.Error)
	c.JSON(http.StatusInternalServerError, DBErrorResponse)
}

// postFromParam loads the post in the :post_id parameter, answering 404 itself when it can't
func postFromParam(c *gin.Context) (post models.Post, ok bool) {
	id, err := strconv.ParseUint(c.Param("post_id"), 10, 64)
	if err != nil {
		NotFound(c)
		return post, false
	}
	post, err = models.PostByID(id)
	if err != nil {
		dbError(c, err)
		return post, false
	}
	return post, true
}

func postURL(id uint64) string {
	return "/posts/" + strconv.FormatUint(id, 10) + "/"
}

func profileURL(username string) string {
	return "/profile/" + username + "/"
}
