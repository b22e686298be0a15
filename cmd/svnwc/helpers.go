package main

import (
	"fmt"

	"github.com/Dhanabal/svnwc/cmd/ui"
)

func renderHeader(text string) string  { return ui.Header(text) }
func renderSection(text string) string { return ui.Section(text) }

func colorGreen(s string) string  { return ui.Green(s) }
func colorRed(s string) string    { return ui.Red(s) }
func colorYellow(s string) string { return ui.Yellow(s) }
func colorBlue(s string) string   { return ui.Blue(s) }
func colorCyan(s string) string   { return ui.Cyan(s) }
func colorGray(s string) string   { return ui.Gray(s) }

func formatCount(label string, n int) string {
	return fmt.Sprintf("%s: %d", label, n)
}
