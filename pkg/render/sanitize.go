package render

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	descriptionPolicyOnce sync.Once
	descriptionPolicy     *bluemonday.Policy
)

// sanitizeDescription strips unsafe markup from author-supplied free text
// before it lands in HTML output. Markdown output leaves text untouched.
func sanitizeDescription(raw string) string {
	descriptionPolicyOnce.Do(func() {
		descriptionPolicy = bluemonday.UGCPolicy()
	})
	return descriptionPolicy.Sanitize(raw)
}
