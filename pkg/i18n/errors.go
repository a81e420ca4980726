package i18n

import "errors"

// Package errors use descriptive messages for debugging while avoiding implementation details.
// Context cancellation errors are separated to allow proper error handling in timeouts.
var (
	ErrNilAdapter = errors.New("translation adapter is nil")

	// JSON operations
	ErrJSONParsingCancelled = errors.New("json parsing cancelled")
	ErrFailedToParseJSON    = errors.New("failed to parse JSON content")

	// YAML operations
	ErrYAMLParsingCancelled = errors.New("yaml parsing cancelled")
	ErrFailedToParseYAML    = errors.New("failed to parse YAML content")

	// File operations
	ErrLoadingFileCancelled = errors.New("loading translation file cancelled")
	ErrFailedToReadFile     = errors.New("failed to read translation file")
	ErrFailedToParseFile    = errors.New("failed to parse translation file")
	ErrUnsupportedFile      = errors.New("no parser for translation file")

	// Filesystem operations
	ErrLoadingTranslationsCancelled = errors.New("loading translations canceled before starting")
	ErrFailedToReadDirectory        = errors.New("failed to read translation directory")
	ErrNoTranslationFiles           = errors.New("no translation files found")

	// Catalog structure
	ErrEmptyLanguageCode = errors.New("empty language code found")
	ErrNilLanguageMap    = errors.New("nil translations map")
)
