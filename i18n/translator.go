package i18n

import (
	"strings"
	"sync/atomic"
)

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "expected", "actual" or "keys").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator. Templates use
// {name} placeholders resolved from data.
type dictTranslator struct{ lang string }

var dictionaries = map[string]map[string]string{
	"en": {
		"invalid_type":    "Expected value to be of type '{expected}' but found '{actual}'.",
		"required":        "Some properties are missing in the object: {keys}.",
		"unknown_key":     "Some unknown properties were found in the object: {keys}.",
		"union_ambiguous": "Expected value to match exactly one schema of '{expected}' but it matched more than one type: {types}.",
		"union_no_match":  "Expected value of '{expected}' but it did not match any schema.",
		"given_value":     "Given value",
		"type":            "Type",
		"expected_type":   "Expected type",
		"path":            "Path",
	},
	"ja": {
		"invalid_type":    "値の型は '{expected}' であるべきですが '{actual}' でした。",
		"required":        "オブジェクトに必須プロパティが不足しています: {keys}。",
		"unknown_key":     "オブジェクトに未知のプロパティがあります: {keys}。",
		"union_ambiguous": "値は '{expected}' のうち一つだけに一致すべきですが複数の型に一致しました: {types}。",
		"union_no_match":  "値は '{expected}' のいずれのスキーマにも一致しませんでした。",
		"given_value":     "入力値",
		"type":            "型",
		"expected_type":   "期待される型",
		"path":            "パス",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	tmpl, ok := dictionaries[t.lang][code]
	if !ok {
		return code
	}
	if len(data) == 0 {
		return tmpl
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

type holder struct{ tr Translator }

var currentTranslator atomic.Pointer[holder]

func init() { currentTranslator.Store(&holder{tr: dictTranslator{lang: "en"}}) }

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator.Store(&holder{tr: dictTranslator{lang: lang}})
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	currentTranslator.Store(&holder{tr: tr})
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	return currentTranslator.Load().tr.Message(code, data)
}
