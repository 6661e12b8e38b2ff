package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var (
	TLS_DOMAINS     = ""        // e.g. "example.com,example2.com"
	MYSQL_DSN       = ""        // MySQL will be used if this is set
	SQLITE_FILE     = "blog.db" // SQLite will be used if MYSQL_DSN is not configured
	BIND_ADDRESS    = "0.0.0.0:8080"
	DEBUG_MODE      = true
	CORS_ORIGINS    = "*" // comma separated
	SESSION_KEY     = "this is a long key"
	SESSION_COOKIE  = "sessionid"
	SESSION_MAX_AGE = 14 * 86400 // 2 weeks
	LOGIN_URL       = "/auth/login/"
	// Rate limit for login/signup form submissions, per client IP
	LOGIN_RATE_PER_MINUTE = 20 // 0 disables it

	// Listing
	POSTS_PER_PAGE     = 10
	PAGE_CACHE_SECONDS = 20   // 0 disables the list page cache
	PAGE_CACHE_SIZE    = 1000 // max number of cached pages

	// Uploaded images go to MEDIA_DIR, unless S3_BUCKET is set
	MEDIA_DIR     = "media"
	S3_BUCKET     = ""
	S3_REGION     = "us-east-1"
	S3_ENDPOINT   = "" // for S3 compatible services
	S3_ACCESS_KEY = ""
	S3_SECRET_KEY = ""
	S3_PREFIX     = ""
	MAX_UPLOAD_MB = 10
	THUMB_SIZE    = 960

	// Initial admin user, created on start-up if it doesn't exist yet
	ADMIN_USERNAME = ""
	ADMIN_PASSWORD = ""
)

func init() {
	// Values already present in the environment win over .env
	_ = godotenv.Load()

	readEnvString("TLS_DOMAINS", &TLS_DOMAINS)
	readEnvString("MYSQL_DSN", &MYSQL_DSN)
	readEnvString("SQLITE_FILE", &SQLITE_FILE)
	readEnvString("BIND_ADDRESS", &BIND_ADDRESS)
	readEnvBool("DEBUG_MODE", &DEBUG_MODE)
	readEnvString("CORS_ORIGINS", &CORS_ORIGINS)
	readEnvString("SESSION_KEY", &SESSION_KEY)
	readEnvString("SESSION_COOKIE", &SESSION_COOKIE)
	readEnvInt("SESSION_MAX_AGE", &SESSION_MAX_AGE)
	readEnvString("LOGIN_URL", &LOGIN_URL)
	readEnvInt("LOGIN_RATE_PER_MINUTE", &LOGIN_RATE_PER_MINUTE)
	readEnvInt("POSTS_PER_PAGE", &POSTS_PER_PAGE)
	readEnvInt("PAGE_CACHE_SECONDS", &PAGE_CACHE_SECONDS)
	readEnvInt("PAGE_CACHE_SIZE", &PAGE_CACHE_SIZE)
	readEnvString("MEDIA_DIR", &MEDIA_DIR)
	readEnvString("S3_BUCKET", &S3_BUCKET)
	readEnvString("S3_REGION", &S3_REGION)
	readEnvString("S3_ENDPOINT", &S3_ENDPOINT)
	readEnvString("S3_ACCESS_KEY", &S3_ACCESS_KEY)
	readEnvString("S3_SECRET_KEY", &S3_SECRET_KEY)
	readEnvString("S3_PREFIX", &S3_PREFIX)
	readEnvInt("MAX_UPLOAD_MB", &MAX_UPLOAD_MB)
	readEnvInt("THUMB_SIZE", &THUMB_SIZE)
	readEnvString("ADMIN_USERNAME", &ADMIN_USERNAME)
	readEnvString("ADMIN_PASSWORD", &ADMIN_PASSWORD)
}

func readEnvString(name string, value *string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	*value = v
}

func readEnvBool(name string, value *bool) {
	v := strings.ToLower(os.Getenv(name))
	if v == "true" || v == "1" || v == "yes" || v == "on" {
		*value = true
	} else if v == "false" || v == "0" || v == "no" || v == "off" {
		*value = false
	}
}

func readEnvInt(name string, value *int) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	f, err := strconv.Atoi(v)
	if err != nil {
		return
	}
	*value = f
}
