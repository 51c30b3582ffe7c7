package util

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	richPolicy  = bluemonday.UGCPolicy()
	plainPolicy = bluemonday.StrictPolicy()
)

// SanitizeHTML 文章正文，保留常见排版标签
func SanitizeHTML(s string) string {
	return strings.TrimSpace(richPolicy.Sanitize(s))
}

// SanitizeText 评论、标题等纯文本，去除全部标签
func SanitizeText(s string) string {
	return strings.TrimSpace(plainPolicy.Sanitize(s))
}
