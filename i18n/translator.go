// Package i18n supplies the human message fragments appended to field
// identifiers in validation findings. The built-in dictionaries cover en and
// de; SetTranslator swaps in anything else.
package i18n

import "strings"

// Translator retrieves the localized message fragment for a rule kind.
// params carries rule parameters to substitute ({limit}, {pattern}, ...).
type Translator interface {
	Message(rule string, params map[string]string) string
}

// dictTranslator is the built-in template-dictionary Translator.
type dictTranslator struct{ lang string }

var templates = map[string]map[string]string{
	"en": {
		"required":          "is required",
		"type":              "must be of type {expected}",
		"minimum":           "must be at least {limit}",
		"minimum.exclusive": "must be greater than {limit}",
		"maximum":           "must be at most {limit}",
		"maximum.exclusive": "must be less than {limit}",
		"multipleOf":        "must be a multiple of {factor}",
		"minLength":         "must be at least {limit} characters",
		"maxLength":         "must be at most {limit} characters",
		"pattern":           "must match pattern {pattern}",
		"format":            "must be a valid {format}",
		"enum":              "must be one of: {values}",
		"const":             "must equal {value}",
		"minItems":          "must have at least {limit} items",
		"maxItems":          "must have at most {limit} items",
		"uniqueItems":       "must not contain duplicate items",
		"custom":            "failed check {name}: {reason}",
	},
	"de": {
		"required":          "ist erforderlich",
		"type":              "muss vom Typ {expected} sein",
		"minimum":           "muss mindestens {limit} sein",
		"minimum.exclusive": "muss größer als {limit} sein",
		"maximum":           "darf höchstens {limit} sein",
		"maximum.exclusive": "muss kleiner als {limit} sein",
		"multipleOf":        "muss ein Vielfaches von {factor} sein",
		"minLength":         "muss mindestens {limit} Zeichen lang sein",
		"maxLength":         "darf höchstens {limit} Zeichen lang sein",
		"pattern":           "muss dem Muster {pattern} entsprechen",
		"format":            "muss ein gültiges {format}-Format haben",
		"enum":              "muss einer der folgenden Werte sein: {values}",
		"const":             "muss {value} sein",
		"minItems":          "muss mindestens {limit} Einträge haben",
		"maxItems":          "darf höchstens {limit} Einträge haben",
		"uniqueItems":       "darf keine doppelten Einträge enthalten",
		"custom":            "Prüfung {name} fehlgeschlagen: {reason}",
	},
}

func (t dictTranslator) Message(rule string, params map[string]string) string {
	dict, ok := templates[t.lang]
	if !ok {
		dict = templates["en"]
	}
	tpl, ok := dict[rule]
	if !ok {
		if tpl, ok = templates["en"][rule]; !ok {
			return rule
		}
	}
	return substitute(tpl, params)
}

// substitute replaces every {key} occurrence with its parameter value.
// Unknown placeholders stay verbatim so a missing parameter is visible.
func substitute(tpl string, params map[string]string) string {
	if len(params) == 0 || !strings.ContainsRune(tpl, '{') {
		return tpl
	}
	pairs := make([]string, 0, len(params)*2)
	for k, v := range params {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tpl)
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"de").
func SetLanguage(lang string) {
	if _, ok := templates[lang]; !ok {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version). nil restores the English default.
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given rule using the current Translator.
func T(rule string, params map[string]string) string {
	return currentTranslator.Message(rule, params)
}
