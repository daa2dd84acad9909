// Package record carries the document record as the schemaless JSON object the
// extraction service produced. Correction rules mutate it in place; unknown
// keys always survive untouched.
package record

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Record is a decoded document record.
type Record map[string]any

// Decode parses data into a Record. Anything that is not a JSON object is an
// error; callers treat that as "return the input unchanged".
func Decode(data []byte) (Record, error) {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if m == nil {
		m = map[string]any{}
	}
	return m, nil
}

// Encode serializes the record back to JSON.
func (r Record) Encode() ([]byte, error) {
	return json.Marshal(map[string]any(r))
}

// Section returns the nested object under key, or an empty detached map when
// the key is missing or not an object. Use Ensure when writes must stick.
func (r Record) Section(key string) Record {
	if r == nil {
		return Record{}
	}
	if m, ok := r[key].(map[string]any); ok {
		return Record(m)
	}
	return Record{}
}

// Ensure returns the nested object under key, creating an empty one when it is
// missing or has the wrong type. Missing sub-objects are created rather than
// failing the pipeline.
func (r Record) Ensure(key string) Record {
	if m, ok := r[key].(map[string]any); ok {
		return Record(m)
	}
	m := map[string]any{}
	r[key] = m
	return Record(m)
}

// String returns the string value under key, or "" for missing/non-string.
func (r Record) String(key string) string {
	if r == nil {
		return ""
	}
	s, _ := r[key].(string)
	return s
}

// SetString stores a string value under key.
func (r Record) SetString(key, value string) {
	r[key] = value
}

var (
	nonDigits   = regexp.MustCompile(`[^0-9]`)
	nonAlphaNum = regexp.MustCompile(`[^A-Z0-9]`)
)

// Digits strips every non-digit character.
func Digits(s string) string {
	return nonDigits.ReplaceAllString(s, "")
}

// AlphaNum upper-cases s and strips everything outside A-Z0-9. Used for
// passport-type document numbers, which keep letters.
func AlphaNum(s string) string {
	return nonAlphaNum.ReplaceAllString(strings.ToUpper(s), "")
}
