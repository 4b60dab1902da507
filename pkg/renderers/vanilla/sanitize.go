package vanilla

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// sanitizeText strips every tag from catalog and caller supplied display
// text (labels, titles, notices) so it can be emitted with |safe. Values the
// user typed never go through it: templates autoescape them so they post
// back unchanged.
func sanitizeText(raw string) string {
	if raw == "" {
		return ""
	}
	return textSanitizer().Sanitize(raw)
}

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}
