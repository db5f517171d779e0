package util

import (
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

const defaultExcerptLen = 120

var (
	policyOnce sync.Once
	ugcPolicy  *bluemonday.Policy
)

func policy() *bluemonday.Policy {
	policyOnce.Do(func() {
		ugcPolicy = bluemonday.UGCPolicy()
		ugcPolicy.RequireNoFollowOnLinks(true)
		ugcPolicy.AddTargetBlankToFullyQualifiedLinks(true)
	})
	return ugcPolicy
}

// SanitizeHTML 过滤富文本中的脚本与危险属性
func SanitizeHTML(raw string) string {
	return strings.TrimSpace(policy().Sanitize(raw))
}

// HTMLToText 提取纯文本，多余空白折叠为一个空格
func HTMLToText(raw string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return ""
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// Excerpt 纯文本摘要，超长截断并追加省略号
func Excerpt(raw string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = defaultExcerptLen
	}
	text := HTMLToText(raw)
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen]) + "..."
}
