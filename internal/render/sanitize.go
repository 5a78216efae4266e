package render

import (
	"html/template"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	lessonPolicyOnce sync.Once
	lessonPolicy     *bluemonday.Policy
)

// LessonHTMLPolicy allows the formatting the lesson backend emits (paragraphs,
// emphasis, lists, code, tables, links) and drops scripts, event handlers and
// javascript: URLs.
func LessonHTMLPolicy() *bluemonday.Policy {
	lessonPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AllowElements("figure", "figcaption")
		policy.AllowAttrs("class").OnElements("code", "pre", "span", "figure")
		policy.AllowURLSchemes("http", "https", "mailto")
		policy.AllowRelativeURLs(true)
		policy.RequireParseableURLs(true)
		policy.AddTargetBlankToFullyQualifiedLinks(true)
		lessonPolicy = policy
	})
	return lessonPolicy
}

// TrustedHTML marks backend markup safe for insertion. With sanitize off the
// markup is inserted verbatim.
func TrustedHTML(s string, sanitize bool) template.HTML {
	if !sanitize {
		return template.HTML(s)
	}
	return template.HTML(LessonHTMLPolicy().Sanitize(s))
}
