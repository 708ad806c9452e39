package api

import (
	"errors"
	"regexp"
	"time"

	"github.com/avelinne/dosetrack/internal/services"
	"github.com/avelinne/dosetrack/internal/storage"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var passwordLengthRegex = regexp.MustCompile(`^.{8,}$`)
var passwordUpperRegex = regexp.MustCompile(`\p{Lu}`)
var passwordLowerRegex = regexp.MustCompile(`\p{Ll}`)
var passwordDigitRegex = regexp.MustCompile(`\d`)

func NewHandler(database *gorm.DB, secretKey string, location *time.Location, blobs storage.BlobStore, cookieSecure bool, clock services.Clock) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if secretKey == "" {
		return nil, errors.New("secret key is required")
	}
	if location == nil {
		location = time.UTC
	}
	if clock == nil {
		clock = services.SystemClock{Location: location}
	}

	handler := &Handler{
		db:           database,
		secretKey:    []byte(secretKey),
		location:     location,
		cookieSecure: cookieSecure,
		clock:        clock,
		blobs:        blobs,
		loginLimiter: newAttemptLimiter(),
	}
	return handler.withDependencies(database), nil
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
