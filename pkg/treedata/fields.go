package treedata

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
)

// Field extractors operate on an isolated node body. Each is a small
// independent function so one malformed field cannot corrupt its siblings.

var (
	fieldREs   = map[string]*regexp.Regexp{}
	fieldREsMu sync.Mutex
)

// fieldRE returns a cached regexp for the given pattern template and key.
func fieldRE(template, key string) *regexp.Regexp {
	fieldREsMu.Lock()
	defer fieldREsMu.Unlock()

	pattern := fmt.Sprintf(template, regexp.QuoteMeta(key))
	re, ok := fieldREs[pattern]
	if !ok {
		re = regexp.MustCompile(pattern)
		fieldREs[pattern] = re
	}
	return re
}

// stringField extracts a quoted string field: ["key"]= "value".
// Returns the empty string when the field is absent.
func stringField(body, key string) string {
	re := fieldRE(`\["%s"\]\s*=\s*"((?:[^"\\]|\\.)*)"`, key)
	m := re.FindStringSubmatch(body)
	if m == nil {
		return ""
	}
	return unescape(m[1])
}

// boolField reports whether the body contains ["key"]= true.
func boolField(body, key string) bool {
	re := fieldRE(`\["%s"\]\s*=\s*true`, key)
	return re.MatchString(body)
}

// quotedValueRE matches any quoted string, used inside isolated sub-tables.
var quotedValueRE = regexp.MustCompile(`"((?:[^"\\]|\\.)*)"`)

// statsField extracts the ordered stat-description list from the nested
// stats sub-table. Returns nil when the node has no stats table.
func statsField(body string) []string {
	sub, ok := subTable(body, "stats")
	if !ok {
		return nil
	}
	var stats []string
	for _, m := range quotedValueRE.FindAllStringSubmatch(sub, -1) {
		stats = append(stats, unescape(m[1]))
	}
	return stats
}

// intListField extracts a connection list such as ["out"]= { "123", "456" }.
// Entries are serialized as quoted integer strings. A non-integer entry makes
// the whole list malformed, which aborts the node.
func intListField(body, key string) ([]int, error) {
	sub, ok := subTable(body, key)
	if !ok {
		return nil, nil // absent list is valid (isolated nodes)
	}
	var ids []int
	for _, m := range quotedValueRE.FindAllStringSubmatch(sub, -1) {
		id, err := strconv.Atoi(strings.TrimSpace(m[1]))
		if err != nil {
			return nil, fmt.Errorf("non-integer entry %q", m[1])
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// subTable isolates the nested sub-table ["key"]= { ... } inside the body,
// using the same brace-depth scan as the node isolation pass.
func subTable(body, key string) (string, bool) {
	re := fieldRE(`\["%s"\]\s*=\s*\{`, key)
	loc := re.FindStringIndex(body)
	if loc == nil {
		return "", false
	}
	return matchBraces(body, loc[1]-1)
}

// unescape resolves the two escape forms that occur in upstream data.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	s = strings.ReplaceAll(s, `\"`, `"`)
	s = strings.ReplaceAll(s, `\\`, `\`)
	return s
}
