package validation

import (
	"net/mail"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FormatFunc reports whether value satisfies a named format.
type FormatFunc func(value string) bool

var (
	alphaPattern        = regexp.MustCompile(`^[\p{L}]+$`)
	alphanumericPattern = regexp.MustCompile(`^[\p{L}\p{N}]+$`)
	slugPattern         = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	colorPattern        = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	telPattern          = regexp.MustCompile(`^\+?[0-9]{5,15}$`)
	telSeparators       = strings.NewReplacer(" ", "", "-", "", ".", "", "(", "", ")", "")
)

func defaultFormats() map[string]FormatFunc {
	return map[string]FormatFunc{
		"email":        isEmail,
		"url":          isURL,
		"number":       isNumber,
		"integer":      isInteger,
		"date":         layoutChecker("2006-01-02"),
		"time":         layoutChecker("15:04", "15:04:05"),
		"datetime":     layoutChecker("2006-01-02T15:04", "2006-01-02T15:04:05", time.RFC3339),
		"color":        colorPattern.MatchString,
		"alpha":        alphaPattern.MatchString,
		"alphanumeric": alphanumericPattern.MatchString,
		"slug":         slugPattern.MatchString,
		"tel":          isTel,
		"uuid":         isUUID,
	}
}

func isEmail(value string) bool {
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value || addr.Name != "" {
		return false
	}
	at := strings.LastIndexByte(value, '@')
	if at <= 0 {
		return false
	}
	domain := value[at+1:]
	if !strings.Contains(domain, ".") {
		return false
	}
	for _, part := range strings.Split(domain, ".") {
		if part == "" {
			return false
		}
	}
	return true
}

func isURL(value string) bool {
	u, err := url.ParseRequestURI(value)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

func isNumber(value string) bool {
	_, err := strconv.ParseFloat(value, 64)
	return err == nil
}

func isInteger(value string) bool {
	_, err := strconv.ParseInt(value, 10, 64)
	return err == nil
}

func isTel(value string) bool {
	return telPattern.MatchString(telSeparators.Replace(value))
}

func isUUID(value string) bool {
	// uuid.Parse also accepts urn: and braced forms; forms submit the plain
	// 36 character layout.
	if len(value) != 36 {
		return false
	}
	_, err := uuid.Parse(value)
	return err == nil
}

func layoutChecker(layouts ...string) FormatFunc {
	return func(value string) bool {
		for _, layout := range layouts {
			if _, err := time.Parse(layout, value); err == nil {
				return true
			}
		}
		return false
	}
}
