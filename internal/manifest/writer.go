package manifest

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/devkit-cli/devkit/internal/keypath"
	"github.com/devkit-cli/devkit/internal/semver"
	"github.com/devkit-cli/devkit/internal/utils"
)

// SetVersion rewrites the version field in the manifest's in-memory
// content, changing nothing else. The rewrite replaces one occurrence of
// the old version string and is verified by re-parsing: the candidate is
// accepted only when the version keypath then yields the new value.
func (m *Manifest) SetVersion(next semver.Version) error {
	oldStr := m.version.String()
	newStr := next.String()
	if oldStr == newStr {
		return nil
	}

	old := []byte(oldStr)
	ext := filepath.Ext(m.path)

	for start := 0; ; {
		i := bytes.Index(m.raw[start:], old)
		if i < 0 {
			break
		}
		pos := start + i
		start = pos + 1

		if !tokenBoundary(m.raw, pos, len(old)) {
			continue
		}

		candidate := make([]byte, 0, len(m.raw)-len(oldStr)+len(newStr))
		candidate = append(candidate, m.raw[:pos]...)
		candidate = append(candidate, newStr...)
		candidate = append(candidate, m.raw[pos+len(old):]...)

		data, err := parseBytes(candidate, ext)
		if err != nil {
			continue
		}
		if got, ok := keypath.Get(data, m.versionKey); ok && got == newStr {
			m.raw = candidate
			m.data = data
			m.version = next
			return nil
		}
	}

	return fmt.Errorf("%w: %q at %q in %s", ErrWriteConflict, oldStr, m.versionKey, m.path)
}

// tokenBoundary reports whether raw[pos:pos+n] is not embedded in a
// longer version-like token.
func tokenBoundary(raw []byte, pos, n int) bool {
	if pos > 0 && isVersionChar(raw[pos-1]) {
		return false
	}
	if end := pos + n; end < len(raw) && isVersionChar(raw[end]) {
		return false
	}
	return true
}

func isVersionChar(c byte) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		return true
	case c == '.' || c == '-' || c == '+':
		return true
	}
	return false
}

// Save writes the manifest's current content back to disk atomically.
// On failure the on-disk file is left in its prior state.
func (m *Manifest) Save() error {
	if err := utils.AtomicWriteFile(m.path, m.raw, 0644); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	return nil
}
