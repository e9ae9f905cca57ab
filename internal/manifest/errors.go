package manifest

import "errors"

// Sentinel errors for the manifest package
var (
	// ErrFileNotFound indicates the manifest file does not exist
	ErrFileNotFound = errors.New("manifest file not found")

	// ErrUnsupportedExt indicates an unsupported file extension
	ErrUnsupportedExt = errors.New("unsupported file extension (use .toml, .yaml, .yml, or .json)")

	// ErrInvalidFormat indicates the manifest file could not be parsed
	ErrInvalidFormat = errors.New("manifest is not valid TOML, YAML, or JSON")

	// ErrVersionMissing indicates no version field was found at any known keypath
	ErrVersionMissing = errors.New("version field not found in manifest")

	// ErrVersionMalformed indicates the version field is not valid semver
	ErrVersionMalformed = errors.New("version field is not a valid semantic version")

	// ErrWriteConflict indicates the version value could not be rewritten
	// without touching other manifest content
	ErrWriteConflict = errors.New("could not rewrite version field in place")

	// ErrWriteFailed indicates an I/O failure while saving the manifest
	ErrWriteFailed = errors.New("failed to write manifest")
)
