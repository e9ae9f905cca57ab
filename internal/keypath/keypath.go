// Package keypath flattens nested map/slice structures into dotted-path
// entries and reconstructs them, with wildcard-based remapping and
// filtering of the flattened form.
package keypath

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Entry is a leaf value of a nested structure together with the dotted
// path that leads to it. List indices appear as "[i]" segments; map keys
// containing spaces are wrapped in double quotes.
type Entry struct {
	Path  string
	Value any
}

// keyError indicates a map key that cannot be expressed as a path segment
type keyError struct{ key any }

func (e *keyError) Error() string {
	return fmt.Sprintf("keypath: unsupported map key %v (only string keys are supported)", e.key)
}

// Flatten breaks a structure of nested maps and slices down into a flat
// list of entries, one per leaf value. Map keys are emitted in sorted
// order so the result is deterministic.
func Flatten(data any) ([]Entry, error) {
	var out []Entry
	if err := flatten(data, "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func flatten(data any, prefix string, out *[]Entry) error {
	switch v := data.(type) {
	case []any:
		for i, item := range v {
			if err := flatten(item, join(prefix, fmt.Sprintf("[%d]", i)), out); err != nil {
				return err
			}
		}
		return nil
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if err := flatten(v[k], join(prefix, segment(k)), out); err != nil {
				return err
			}
		}
		return nil
	case map[any]any:
		// yaml.v2-style maps; keys must still be strings
		keys := make([]string, 0, len(v))
		for k := range v {
			s, ok := k.(string)
			if !ok {
				return &keyError{key: k}
			}
			keys = append(keys, s)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if err := flatten(v[k], join(prefix, segment(k)), out); err != nil {
				return err
			}
		}
		return nil
	default:
		*out = append(*out, Entry{Path: prefix, Value: data})
		return nil
	}
}

func join(prefix, seg string) string {
	if prefix == "" {
		return seg
	}
	return prefix + "." + seg
}

func segment(key string) string {
	if strings.Contains(key, " ") {
		return `"` + key + `"`
	}
	return key
}

// Restructure reconstructs the nested structure described by a list of
// entries. It is the inverse of Flatten.
func Restructure(entries []Entry) any {
	// group entries by the first path segment
	type group struct {
		key     string
		entries []Entry
	}
	var order []string
	groups := map[string]*group{}
	for _, e := range entries {
		head, rest := splitFirst(e.Path)
		g, ok := groups[head]
		if !ok {
			g = &group{key: head}
			groups[head] = g
			order = append(order, head)
		}
		g.entries = append(g.entries, Entry{Path: rest, Value: e.Value})
	}

	// a single empty key means we reached a leaf
	if len(order) == 1 && order[0] == "" {
		return groups[""].entries[0].Value
	}

	allIndexes := true
	for _, k := range order {
		if !isIndexSegment(k) {
			allIndexes = false
			break
		}
	}

	if allIndexes {
		sort.Slice(order, func(i, j int) bool {
			return indexOf(order[i]) < indexOf(order[j])
		})
		result := make([]any, 0, len(order))
		for _, k := range order {
			result = append(result, Restructure(groups[k].entries))
		}
		return result
	}

	result := make(map[string]any, len(order))
	for _, k := range order {
		result[unquote(k)] = Restructure(groups[k].entries)
	}
	return result
}

// splitFirst splits a path into its first segment and the remainder,
// honoring quoted segments.
func splitFirst(path string) (head, rest string) {
	if strings.HasPrefix(path, `"`) {
		if end := strings.Index(path[1:], `"`); end >= 0 {
			head = path[:end+2]
			rest = strings.TrimPrefix(path[end+2:], ".")
			return head, rest
		}
	}
	if i := strings.Index(path, "."); i >= 0 {
		return path[:i], path[i+1:]
	}
	return path, ""
}

func isIndexSegment(s string) bool {
	if len(s) < 3 || s[0] != '[' || s[len(s)-1] != ']' {
		return false
	}
	_, err := strconv.Atoi(s[1 : len(s)-1])
	return err == nil
}

func indexOf(s string) int {
	n, _ := strconv.Atoi(s[1 : len(s)-1])
	return n
}

func unquote(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s[1 : len(s)-1]
	}
	return s
}

// compileKey turns a from/to key pair into a matcher and replacement.
// Keys containing "*" become regex matchers with capture groups; the
// wildcards in the replacement turn into backreferences.
func compileKey(fromKey, toKey string) (*regexp.Regexp, string) {
	if !strings.Contains(fromKey, "*") {
		return nil, toKey
	}
	pattern := strings.ReplaceAll(regexp.QuoteMeta(fromKey), `\*`, `(.*)`)
	re := regexp.MustCompile(pattern)
	for i := 1; strings.Contains(toKey, "*"); i++ {
		toKey = strings.Replace(toKey, "*", fmt.Sprintf("${%d}", i), 1)
	}
	return re, toKey
}

// Mapping is a from-path/to-path rewrite pair. Paths may contain "*"
// wildcards; each wildcard in From is carried into To positionally.
type Mapping struct {
	From string
	To   string
}

// Remap rewrites entry paths according to the given mappings, applied in
// order. Non-wildcard mappings are plain substring substitutions.
func Remap(entries []Entry, mappings []Mapping) []Entry {
	result := make([]Entry, len(entries))
	copy(result, entries)
	for _, m := range mappings {
		re, to := compileKey(m.From, m.To)
		for i, e := range result {
			if re != nil {
				result[i].Path = re.ReplaceAllString(e.Path, to)
			} else {
				result[i].Path = strings.ReplaceAll(e.Path, m.From, to)
			}
		}
	}
	return result
}

// Filter keeps entries whose path matches any of the given patterns.
// Patterns with "*" wildcards must match from the start of the path;
// plain patterns match as substrings.
func Filter(entries []Entry, patterns []string) []Entry {
	type matcher struct {
		re   *regexp.Regexp
		text string
	}
	matchers := make([]matcher, 0, len(patterns))
	for _, p := range patterns {
		re, _ := compileKey(p, "")
		matchers = append(matchers, matcher{re: re, text: p})
	}

	var out []Entry
	for _, e := range entries {
		for _, m := range matchers {
			if m.re != nil {
				if loc := m.re.FindStringIndex(e.Path); loc != nil && loc[0] == 0 {
					out = append(out, e)
					break
				}
			} else if strings.Contains(e.Path, m.text) {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

// Get walks a dotted path of plain map keys and "[i]" indices through
// nested maps and slices. The second return is false when any segment
// is missing or the structure does not match.
func Get(data any, path string) (any, bool) {
	cur := data
	for path != "" {
		var head string
		head, path = splitFirst(path)
		head = unquote(head)

		if isIndexSegment(head) {
			list, ok := cur.([]any)
			if !ok {
				return nil, false
			}
			i := indexOf(head)
			if i < 0 || i >= len(list) {
				return nil, false
			}
			cur = list[i]
			continue
		}

		switch m := cur.(type) {
		case map[string]any:
			v, ok := m[head]
			if !ok {
				return nil, false
			}
			cur = v
		case map[any]any:
			v, ok := m[head]
			if !ok {
				return nil, false
			}
			cur = v
		default:
			return nil, false
		}
	}
	return cur, true
}

// Set assigns value at a dotted path of plain map keys. Every segment up
// to the last must already exist and be a map.
func Set(data any, path string, value any) error {
	if path == "" {
		return fmt.Errorf("keypath: empty path")
	}
	cur := data
	for {
		head, rest := splitFirst(path)
		head = unquote(head)
		if rest == "" {
			switch m := cur.(type) {
			case map[string]any:
				m[head] = value
				return nil
			case map[any]any:
				m[head] = value
				return nil
			default:
				return fmt.Errorf("keypath: %q is not a map", head)
			}
		}

		next, ok := Get(cur, head)
		if !ok {
			return fmt.Errorf("keypath: path segment %q not found", head)
		}
		cur = next
		path = rest
	}
}
