// Package manifest reads and rewrites project manifest files (TOML,
// YAML, or JSON), locating their semantic-version field by a dotted
// keypath. Rewrites replace only the version value, leaving every other
// byte of the file unchanged, and are written atomically.
package manifest
