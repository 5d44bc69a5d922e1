package logging

import (
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
)

// MaskValue replaces sensitive field values.
const MaskValue = "***REDACTED***"

// sensitiveKeys are field names whose values are never logged.
var sensitiveKeys = map[string]bool{
	"authorization":   true,
	"cookie":          true,
	"set-cookie":      true,
	"x-api-key":       true,
	"x-rapidapi-key":  true,
	"api_key":         true,
	"apikey":          true,
	"api-key":         true,
	"password":        true,
	"secret":          true,
	"token":           true,
	"access_token":    true,
	"session_cookie":  true,
	"aws_secret":      true,
	"aws_session_key": true,
}

// sensitivePatterns flag values that look like credentials regardless of key.
var sensitivePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^bearer\s+.+`),
	regexp.MustCompile(`(?i)^basic\s+[A-Za-z0-9+/=]+$`),
	regexp.MustCompile(`^[a-zA-Z0-9]{40,}$`),
	regexp.MustCompile(`^AKIA[0-9A-Z]{16}$`),
}

// RedactHook masks credentials in log fields before they are formatted.
type RedactHook struct{}

// NewRedactHook returns a hook for every log level.
func NewRedactHook() *RedactHook {
	return &RedactHook{}
}

// Levels implements logrus.Hook.
func (h *RedactHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire implements logrus.Hook. logrus hands hooks a copy of the entry's
// data, so the fields can be rewritten in place.
func (h *RedactHook) Fire(entry *logrus.Entry) error {
	for key, value := range entry.Data {
		if isSensitiveKey(key) {
			entry.Data[key] = MaskValue
			continue
		}
		if s, ok := value.(string); ok && isSensitiveValue(s) {
			entry.Data[key] = MaskValue
		}
	}
	return nil
}

func isSensitiveKey(key string) bool {
	k := strings.ToLower(key)
	if sensitiveKeys[k] {
		return true
	}
	return strings.Contains(k, "password") || strings.Contains(k, "secret")
}

func isSensitiveValue(value string) bool {
	for _, p := range sensitivePatterns {
		if p.MatchString(value) {
			return true
		}
	}
	return false
}
