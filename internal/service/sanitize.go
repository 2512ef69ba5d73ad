package service

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// contentPolicy strips all markup from user-supplied free text before it
// reaches the store.
var contentPolicy = bluemonday.StrictPolicy()

func sanitizeContent(raw string) string {
	return strings.TrimSpace(contentPolicy.Sanitize(raw))
}
