package main

import (
	"strings"
	"time"

	"blog/config"
	"blog/db"
	"blog/models"
	"blog/router"
	"blog/storage"
	"blog/utils"

	"github.com/gin-gonic/autotls"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func main() {
	utils.SetupLogger(config.DEBUG_MODE)
	if !config.DEBUG_MODE {
		gin.SetMode(gin.ReleaseMode)
	}
	db.Init(config.MYSQL_DSN, config.SQLITE_FILE, config.DEBUG_MODE)
	if err := models.Init(); err != nil {
		log.Fatal().Err(err).Msg("DB migration failed")
	}
	if err := models.EnsureAdmin(config.ADMIN_USERNAME, config.ADMIN_PASSWORD); err != nil {
		log.Fatal().Err(err).Msg("Cannot create the admin user")
	}
	err := storage.Init(storage.Config{
		MediaDir:    config.MEDIA_DIR,
		S3Bucket:    config.S3_BUCKET,
		S3Region:    config.S3_REGION,
		S3Endpoint:  config.S3_ENDPOINT,
		S3AccessKey: config.S3_ACCESS_KEY,
		S3SecretKey: config.S3_SECRET_KEY,
		S3Prefix:    config.S3_PREFIX,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Storage init failed")
	}

	cache := utils.NewPageCache(time.Duration(config.PAGE_CACHE_SECONDS)*time.Second, config.PAGE_CACHE_SIZE)
	r := router.New(cache)

	if config.TLS_DOMAINS != "" {
		err = autotls.Run(r, strings.Split(config.TLS_DOMAINS, ",")...)
	} else {
		err = r.Run(config.BIND_ADDRESS)
	}
	log.Fatal().Err(err).Msg("Server stopped")
}
