package analytics

import "strings"

const DefaultLocale = "pt-BR"

var monthLabels = map[string][12]string{
	"pt-br": {"jan", "fev", "mar", "abr", "mai", "jun", "jul", "ago", "set", "out", "nov", "dez"},
	"en":    {"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
	"es":    {"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sep", "oct", "nov", "dic"},
}

// MonthLabels returns the abbreviations for locale. Region subtags other than
// pt-BR fall back to their language, so en-US resolves to en.
func MonthLabels(locale string) ([12]string, bool) {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(locale), "_", "-"))
	if labels, ok := monthLabels[key]; ok {
		return labels, true
	}
	if lang, _, found := strings.Cut(key, "-"); found {
		if lang == "pt" {
			return monthLabels["pt-br"], true
		}
		if labels, ok := monthLabels[lang]; ok {
			return labels, true
		}
	}
	if key == "pt" {
		return monthLabels["pt-br"], true
	}
	return [12]string{}, false
}
