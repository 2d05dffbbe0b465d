package deletion

import (
	"slices"
	"strings"
)

// Messages holds the user-facing strings shown by the handler.
type Messages struct {
	Confirm      string
	Failed       string
	NetworkError string
}

var catalogs = map[string]Messages{
	"en": {
		Confirm:      "Are you sure you want to delete this comment?",
		Failed:       "Delete failed",
		NetworkError: "Delete failed: could not reach the server",
	},
	"zh": {
		Confirm:      "确定要删除这条评论吗？",
		Failed:       "删除失败",
		NetworkError: "删除失败：无法连接服务器",
	},
}

// DefaultLocale is used when no locale or an unknown one is requested.
const DefaultLocale = "en"

// MessagesFor returns the catalog for locale. Region suffixes are ignored,
// so "zh-CN" and "zh_TW" both map to "zh".
func MessagesFor(locale string) Messages {
	if m, ok := catalogs[language(locale)]; ok {
		return m
	}
	return catalogs[DefaultLocale]
}

// Locales lists the supported locales.
func Locales() []string {
	return []string{"en", "zh"}
}

// Supported reports whether locale, ignoring any region suffix, is one of
// Locales.
func Supported(locale string) bool {
	return slices.Contains(Locales(), language(locale))
}

func language(locale string) string {
	lang := strings.ToLower(strings.TrimSpace(locale))
	if i := strings.IndexAny(lang, "-_"); i >= 0 {
		lang = lang[:i]
	}
	return lang
}
