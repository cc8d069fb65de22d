package errors

import (
	"strings"
	"unicode"
)

// ValidateTracePath validates a trace file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidateTracePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "trace path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "trace path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "trace path contains invalid characters")
		}
	}

	return nil
}

// ValidateComponentID validates a context component identifier.
//
// The validation rules are intentionally conservative:
//   - No empty IDs
//   - No control characters
//   - Maximum length of 256 characters
func ValidateComponentID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidTrace, "component id cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidTrace, "component id too long (max 256 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidTrace, "component id contains invalid control characters")
		}
	}

	return nil
}

// SupportedFormats lists the output formats the render sinks understand.
var SupportedFormats = []string{"svg", "png", "pdf", "json"}

// ValidateFormat validates a single output format name.
func ValidateFormat(format string) error {
	for _, f := range SupportedFormats {
		if format == f {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "unsupported format %q (supported: %s)",
		format, strings.Join(SupportedFormats, ", "))
}

// ValidateFormats validates a list of output format names.
func ValidateFormats(formats []string) error {
	if len(formats) == 0 {
		return New(ErrCodeInvalidFormat, "no output formats specified")
	}
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// SupportedLayouts lists the layout algorithms the pipeline understands.
var SupportedLayouts = []string{"treemap", "flex", "banded"}

// ValidateLayoutKind validates a layout algorithm name.
func ValidateLayoutKind(kind string) error {
	for _, k := range SupportedLayouts {
		if kind == k {
			return nil
		}
	}
	return New(ErrCodeInvalidLayout, "unsupported layout %q (supported: %s)",
		kind, strings.Join(SupportedLayouts, ", "))
}

// SupportedStyles lists the visual styles the render sinks understand.
var SupportedStyles = []string{"brutalist", "plain"}

// ValidateStyle validates a visual style name.
func ValidateStyle(style string) error {
	for _, s := range SupportedStyles {
		if style == s {
			return nil
		}
	}
	return New(ErrCodeInvalidStyle, "unsupported style %q (supported: %s)",
		style, strings.Join(SupportedStyles, ", "))
}
