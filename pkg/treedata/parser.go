package treedata

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/exilemind/arbor/pkg/errors"
	"github.com/exilemind/arbor/pkg/observability"
	"github.com/exilemind/arbor/pkg/tree"
)

// nodeStartRE matches the opening of a node entry: [12345]= {
// Only the marker is matched; the body is isolated by brace counting.
var nodeStartRE = regexp.MustCompile(`\[(\d+)\]\s*=\s*\{`)

// Parse converts raw tree-data text into a Tree tagged with version.
//
// Malformed node bodies are skipped individually; Parse fails only when
// non-empty input yields zero nodes (ErrCodeParseEmpty) or the input is
// empty (ErrCodeParseFailed).
func Parse(raw string, version string) (*tree.Tree, error) {
	if len(raw) == 0 {
		return nil, errors.New(errors.ErrCodeParseFailed, "tree data for version %s is empty", version)
	}

	t := tree.New(version)
	skipped := 0

	for _, loc := range nodeStartRE.FindAllStringSubmatchIndex(raw, -1) {
		id, err := strconv.Atoi(raw[loc[2]:loc[3]])
		if err != nil {
			skipped++
			continue
		}

		// loc[1] is just past the opening brace.
		body, ok := matchBraces(raw, loc[1]-1)
		if !ok {
			skipped++
			continue
		}

		n, err := parseNode(id, body)
		if err != nil {
			observability.Parse().OnNodeSkipped(id, err)
			skipped++
			continue
		}
		if err := t.AddNode(n); err != nil {
			// Duplicate ids in upstream data; first occurrence wins.
			skipped++
		}
	}

	if t.NodeCount() == 0 {
		return nil, errors.New(errors.ErrCodeParseEmpty,
			"no nodes extracted from tree data for version %s (%d entries skipped)", version, skipped)
	}

	observability.Parse().OnParsed(version, t.NodeCount(), skipped)
	return t, nil
}

// matchBraces returns the text between the brace at raw[open] and its
// matching close brace, exclusive of both. It counts nesting depth so that
// sub-tables inside the body are spanned correctly. Braces inside quoted
// strings are ignored.
func matchBraces(raw string, open int) (string, bool) {
	if open >= len(raw) || raw[open] != '{' {
		return "", false
	}

	depth := 0
	inString := false
	for i := open; i < len(raw); i++ {
		c := raw[i]
		switch {
		case inString:
			if c == '\\' {
				i++ // skip escaped character
			} else if c == '"' {
				inString = false
			}
		case c == '"':
			inString = true
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return raw[open+1 : i], true
			}
		}
	}
	return "", false // unbalanced
}

// parseNode extracts one node from an isolated body. Each field is extracted
// independently so a malformed field cannot corrupt its siblings; an error is
// returned only when the body is structurally unusable.
func parseNode(id int, body string) (*tree.Node, error) {
	out, err := intListField(body, "out")
	if err != nil {
		return nil, fmt.Errorf("node %d: out list: %w", id, err)
	}
	in, err := intListField(body, "in")
	if err != nil {
		return nil, fmt.Errorf("node %d: in list: %w", id, err)
	}

	n := &tree.Node{
		ID:    id,
		Name:  stringField(body, "name"),
		Stats: statsField(body),
		Out:   out,
		In:    in,

		Keystone:        boolField(body, "ks") || boolField(body, "isKeystone"),
		Notable:         boolField(body, "not") || boolField(body, "isNotable"),
		Mastery:         boolField(body, "m") || boolField(body, "isMastery"),
		JewelSocket:     boolField(body, "isJewelSocket"),
		AscendancyStart: boolField(body, "isAscendancyStart"),
		AscendancyName:  stringField(body, "ascendancyName"),
	}

	// The icon path is parsed for completeness but unused by the engine.
	_ = stringField(body, "icon")

	return n, nil
}
