package storage

import (
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type StorageAPI interface {
	Save(path string, reader io.Reader) (int64, error)
	Load(path string, writer io.Writer) (int64, error)
	Delete(path string) error
	Exists(path string) bool
	// GetFreeSpace returns 0 when unknown (e.g. S3)
	GetFreeSpace() uint64
	Name() string
}

type Config struct {
	MediaDir    string
	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Prefix    string
}

var defaultStorage StorageAPI

// Init picks S3 when a bucket is configured and the local disk otherwise
func Init(cfg Config) error {
	if cfg.S3Bucket != "" {
		s, err := NewS3Storage(cfg)
		if err != nil {
			return err
		}
		defaultStorage = s
	} else {
		defaultStorage = NewDiskStorage(cfg.MediaDir)
	}
	log.Info().Str("storage", defaultStorage.Name()).Msg("Storage initialised")
	return nil
}

func SetDefaultStorage(s StorageAPI) {
	defaultStorage = s
}

func GetDefaultStorage() StorageAPI {
	if defaultStorage == nil {
		panic("no storage available")
	}
	return defaultStorage
}

// CleanName restricts the characters of an uploaded file name
func CleanName(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	var result strings.Builder
	for i, c := range name {
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') ||
			(c == '.' && i > 0) || (c == '-') || (c == '_') {

			result.WriteRune(c)
		} else {
			// Replace all other characters with '_' (underscore)
			result.WriteString("_")
		}
	}
	if result.Len() == 0 || name == "." || name == "/" {
		return "file"
	}
	return result.String()
}

// AvailablePath returns dir/name, or dir/<name>_<random><ext> if that is taken already
func AvailablePath(s StorageAPI, dir, name string) string {
	name = CleanName(name)
	result := path.Join(dir, name)
	ext := path.Ext(name)
	base := strings.TrimSuffix(name, ext)
	for s.Exists(result) {
		result = path.Join(dir, base+"_"+uuid.NewString()[:7]+ext)
	}
	return result
}
