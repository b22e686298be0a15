package ui

import (
	"fmt"
	"strings"
)

// NotifyKind buckets the editor's notification actions into the small
// set of visual treatments the CLI renders (mirrors editor.NotifyAction
// without importing pkg/editor, so this package stays a plain styling
// library usable from any command).
type NotifyKind int

const (
	NotifyAdd NotifyKind = iota
	NotifyUpdate
	NotifyDelete
	NotifySkip
	NotifyConflict
)

// FormatNotification renders one notification line: an icon and
// color keyed by kind, followed by the label and the node's path.
func FormatNotification(kind NotifyKind, label, path string) string {
	return fmt.Sprintf("%s  %s  %s", RenderAction(kind, ""), label, path)
}

// RenderAction renders just the icon and label in kind's color, for
// callers building their own layout (e.g. a table cell) around it.
func RenderAction(kind NotifyKind, label string) string {
	icon, style := iconAndStyle(kind)
	if label == "" {
		return style.Render(icon)
	}
	return style.Render(fmt.Sprintf("%s %s", icon, label))
}

func iconAndStyle(kind NotifyKind) (string, interface{ Render(...string) string }) {
	switch kind {
	case NotifyAdd:
		return IconAdd, AddStyle
	case NotifyUpdate:
		return IconUpdate, UpdateStyle
	case NotifyDelete:
		return IconDelete, DeleteStyle
	case NotifyConflict:
		return IconConflict, ConflictStyle
	default:
		return IconSkip, SkipStyle
	}
}

// SuccessMessage creates a success message with a checkmark icon
func SuccessMessage(message string, details ...string) string {
	parts := []string{Green(IconCheck), Green(message)}
	for _, detail := range details {
		parts = append(parts, Blue(detail))
	}
	return strings.Join(parts, " ")
}

// ErrorMessage formats an error message in red
func ErrorMessage(message string) string {
	return Red(message)
}

// WarningMessage formats a warning message in yellow
func WarningMessage(message string) string {
	return Yellow(message)
}

// InfoMessage formats an info message in blue
func InfoMessage(message string) string {
	return Blue(message)
}

// ConflictInfo carries the fields worth showing a user about one tree
// conflict: the node's path, why it was raised, and the two sides the
// classifier compared.
type ConflictInfo struct {
	Path        string
	Reason      string
	SourceLeft  string
	SourceRight string
}

// FormatConflictDetailed renders a tree conflict's path, reason, and
// both conflict-version labels in a bordered box.
func FormatConflictDetailed(c ConflictInfo) string {
	var content strings.Builder

	content.WriteString(fmt.Sprintf("%s %s\n", Red(IconConflict), Red(c.Path)))
	content.WriteString(fmt.Sprintf("reason: %s\n", Yellow(c.Reason)))
	content.WriteString(fmt.Sprintf("left:   %s\n", Cyan(c.SourceLeft)))
	content.WriteString(fmt.Sprintf("right:  %s", Magenta(c.SourceRight)))

	return ConflictBox(content.String())
}

// FormatSeparator creates a separator line between report entries
func FormatSeparator() string {
	return Gray(IconSeparator)
}
