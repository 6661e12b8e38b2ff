package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"blog/config"
	"blog/models"
	"blog/storage"
	"blog/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	postsDir  = "posts"
	thumbsDir = "cache/posts"
)

var ErrImageTooLarge = errors.New("the uploaded image is too large")

// formImage returns the validated "image" upload, nil if none was sent
func formImage(c *gin.Context) (*multipart.FileHeader, error) {
	if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		return nil, nil
	}
	file, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if file.Size > int64(config.MAX_UPLOAD_MB)<<20 {
		return nil, ErrImageTooLarge
	}
	reader, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer reader.Close()
	if _, err = utils.CheckImage(reader); err != nil {
		return nil, err
	}
	return file, nil
}

// saveImage stores the upload under posts/ and returns its path, e.g. posts/cat.jpg
func saveImage(file *multipart.FileHeader) (string, error) {
	s := storage.GetDefaultStorage()
	reader, err := file.Open()
	if err != nil {
		return "", err
	}
	defer reader.Close()
	path := storage.AvailablePath(s, postsDir, file.Filename)
	if _, err = s.Save(path, reader); err != nil {
		return "", err
	}
	return path, nil
}

// saveThumb is best effort, the post keeps working with the full image only
func saveThumb(post *models.Post) {
	s := storage.GetDefaultStorage()
	var original, thumb bytes.Buffer
	if _, err := s.Load(post.Image, &original); err != nil {
		log.Warn().Err(err).Str("image", post.Image).Msg("Thumb: load")
		return
	}
	converted, err := utils.CreateThumb(uint(config.THUMB_SIZE), &original, &thumb)
	if err != nil {
		log.Warn().Err(err).Str("image", post.Image).Msg("Thumb: convert")
		return
	}
	path := fmt.Sprintf("%s/%d_thumb.jpg", thumbsDir, post.ID)
	if _, err = s.Save(path, &thumb); err != nil {
		log.Warn().Err(err).Str("thumb", path).Msg("Thumb: save")
		return
	}
	post.Thumb = path
	log.Debug().
		Str("thumb", path).
		Uint16("width", converted.NewX).
		Uint16("height", converted.NewY).
		Msg("Thumb created")
}

// deleteFiles removes stored images, errors are only logged
func deleteFiles(paths ...string) {
	s := storage.GetDefaultStorage()
	for _, path := range paths {
		if path == "" {
			continue
		}
		if err := s.Delete(path); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Delete image")
		}
	}
}
