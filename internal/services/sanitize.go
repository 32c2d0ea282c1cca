package services

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicy   = bluemonday.StrictPolicy()
	angleRemover = strings.NewReplacer("<", "", ">", "")
)

// sanitizeText убирает разметку из свободного текста.
// bluemonday экранирует апострофы и амперсанды, поэтому результат раскодируется обратно.
func sanitizeText(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	return strings.TrimSpace(angleRemover.Replace(html.UnescapeString(textPolicy.Sanitize(s))))
}

func sanitizePtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := sanitizeText(*s)
	return &v
}
