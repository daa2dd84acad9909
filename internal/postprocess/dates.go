package postprocess

import (
	"regexp"

	"github.com/sergioaramos/mistral-doc-extractor/internal/record"
)

// Source date patterns, tried in order; the first whose match starts at the
// beginning of the value wins and the value is rewritten to YYYY-MM-DD.
//
// NOTE: the DD/MM/YYYY and MM/DD/YYYY entries share an identical pattern, so
// the month-first rewrite can never fire; slash dates are always read
// day-first. Kept as documented behavior pending clarification of the
// intended convention.
var datePatterns = []struct {
	re      *regexp.Regexp
	rewrite func(m []string) string
}{
	// DD/MM/YYYY
	{regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{4})`), func(m []string) string {
		return m[3] + "-" + pad2(m[2]) + "-" + pad2(m[1])
	}},
	// MM/DD/YYYY (unreachable, see note above)
	{regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{4})`), func(m []string) string {
		return m[3] + "-" + pad2(m[1]) + "-" + pad2(m[2])
	}},
	// DD-MM-YYYY
	{regexp.MustCompile(`(\d{1,2})-(\d{1,2})-(\d{4})`), func(m []string) string {
		return m[3] + "-" + pad2(m[2]) + "-" + pad2(m[1])
	}},
	// YYYY/MM/DD
	{regexp.MustCompile(`(\d{4})/(\d{1,2})/(\d{1,2})`), func(m []string) string {
		return m[1] + "-" + pad2(m[2]) + "-" + pad2(m[3])
	}},
	// MM-YYYY, day defaulted to 01
	{regexp.MustCompile(`(\d{1,2})-(\d{4})`), func(m []string) string {
		return m[2] + "-" + pad2(m[1]) + "-01"
	}},
}

// Every date-bearing field path in the record.
var dateFieldPaths = [][]string{
	{"registration", "registration_date"},
	{"registration", "last_update"},
	{"company_information", "economic_activity", "primary", "start_date"},
	{"company_information", "economic_activity", "secondary", "start_date"},
	{"legal_representative", "representation_start_date"},
}

// normalizeDates rewrites every recognized date field to YYYY-MM-DD in place.
// Values that match no source pattern are left untouched.
func normalizeDates(rec record.Record) {
	for _, path := range dateFieldPaths {
		normalizeDateField(rec, path)
	}
}

func normalizeDateField(rec record.Record, path []string) {
	cur := rec
	for i, key := range path {
		if i < len(path)-1 {
			next, ok := cur[key].(map[string]any)
			if !ok {
				return
			}
			cur = record.Record(next)
			continue
		}

		value := cur.String(key)
		if value == "" {
			return
		}
		for _, p := range datePatterns {
			loc := p.re.FindStringIndex(value)
			if loc == nil || loc[0] != 0 {
				continue
			}
			cur.SetString(key, p.re.ReplaceAllStringFunc(value, func(s string) string {
				return p.rewrite(p.re.FindStringSubmatch(s))
			}))
			return
		}
	}
}

func pad2(s string) string {
	if len(s) < 2 {
		return "0" + s
	}
	return s
}
