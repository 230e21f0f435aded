package utils

import (
	"time"

	"github.com/mojocn/base64Captcha"
)

// captchaStore is Redis-backed so captcha survives load balancing; it falls
// back to the library's memory store when Redis is unreachable.
var captchaStore = NewRedisCaptchaStore(10 * time.Minute)

// GenerateCaptcha creates a digit captcha and returns (id, dataURI) for the
// frontend to display.
func GenerateCaptcha() (string, string, error) {
	driver := base64Captcha.NewDriverDigit(40, 120, 5, 0.7, 80)
	c := base64Captcha.NewCaptcha(driver, captchaStore)
	id, b64, _, err := c.Generate()
	return id, b64, err
}

// VerifyCaptcha verifies the provided answer, consuming the captcha on success.
func VerifyCaptcha(id, answer string) bool {
	if id == "" || answer == "" {
		return false
	}
	return captchaStore.Verify(id, answer, true)
}
