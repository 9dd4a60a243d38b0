// Copyright (c) 2025 Resv Team
// Resv - equipment reservation console
// This source code is licensed under the MIT license found in the LICENSE file.

// package i18n provides internationalization support for the console.
// It uses the go-i18n library to load embedded YAML translation files,
// mirroring the backend's two-language surface (English and Simplified
// Chinese).
package i18n // import "github.com/resvlab/resv/internal/i18n"

import (
	"embed"
	"io/fs"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// Supported lists the language codes the console ships translations
// for, in preference order. The first entry is the fallback.
var Supported = []string{"zh-CN", "en"}

var (
	bundle    *i18n.Bundle
	localizer *i18n.Localizer
	active    string
)

// Init loads the embedded locale files and sets the active language.
func Init(lang string) {
	bundle = i18n.NewBundle(language.SimplifiedChinese)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	files, _ := fs.ReadDir(localeFS, "locales")
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		data, _ := localeFS.ReadFile("locales/" + f.Name())
		bundle.ParseMessageFileBytes(data, f.Name())
	}

	active = Match(lang)
	localizer = i18n.NewLocalizer(bundle, active)
}

// T translates a message by its ID. If the i18n system has not been
// initialized it defaults to Chinese, the deployment's primary
// language. Unknown IDs are returned unchanged so a missing
// translation degrades to the key instead of failing.
func T(messageID string) string {
	if localizer == nil {
		Init("zh-CN")
	}
	msg, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: messageID})
	if err != nil {
		return messageID
	}
	return msg
}

// SetLang switches the active language.
func SetLang(lang string) {
	Init(lang)
}

// Active returns the language code currently in effect.
func Active() string {
	if active == "" {
		return Supported[0]
	}
	return active
}

// Match maps an arbitrary language preference ("zh", "en-GB", "zh-TW")
// onto one of the supported codes. Exact matches win, then a shared
// primary subtag, then the default.
func Match(lang string) string {
	if lang == "" {
		return Supported[0]
	}
	tags := make([]language.Tag, 0, len(Supported))
	for _, s := range Supported {
		tags = append(tags, language.Make(s))
	}
	matcher := language.NewMatcher(tags)
	want, err := language.Parse(lang)
	if err != nil {
		return Supported[0]
	}
	_, idx, conf := matcher.Match(want)
	if conf == language.No {
		return Supported[0]
	}
	return Supported[idx]
}
