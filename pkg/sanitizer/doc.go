// Package sanitizer provides the normalization helpers applied to raw input
// before it is validated.
//
// The functions are grouped into a few areas:
//
//   - Strings: trimming, NFC normalization and full-width folding, so that
//     text typed with CJK input methods compares equal to its ASCII form.
//   - Format: e-mail and phone normalization.
//   - Collections: filtering and deduplication of slices, including decoded
//     JSON arrays.
//   - Numeric: conversion of every numeric representation to float64.
//
// Every helper is pure and idempotent: applying it to its own output changes
// nothing. The higher-order Apply and Compose helpers build pipelines:
//
//	clean := sanitizer.Compose(
//	    sanitizer.NormalizeUnicode,
//	    sanitizer.FoldWidth,
//	    sanitizer.Trim,
//	)
//	code := clean("　ＫＧ－００１ ")
package sanitizer
