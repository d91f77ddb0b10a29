// Package report renders the console summary of collected headlines.
package report

import (
	"fmt"
	"strings"

	"newshound/internal/models"

	"github.com/mattn/go-runewidth"
)

// TopCount is how many leading records the summary shows.
const TopCount = 2

// RenderTop formats the first min(n, len) records of the combined
// sequence as a human-readable block. The sequence is read as-is; the
// caller owns the ordering.
func RenderTop(records []models.Headline, n int) string {
	if len(records) < n {
		n = len(records)
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("=== Top %d Headlines ===\n", n))

	for i := 0; i < n; i++ {
		r := records[i]

		date := r.Published
		if date == "" {
			date = r.PublishedISO
		}

		sb.WriteString(fmt.Sprintf("\n[%d] %s\n", i+1, r.Title))
		writeField(&sb, "Source", r.Source)
		writeField(&sb, "Link", r.Link)
		writeField(&sb, "Date", date)
	}

	return sb.String()
}

// labelWidth is the display width the field labels are padded to, so
// the values line up in one column ("Source : ", "Link   : ").
const labelWidth = 7

func writeField(sb *strings.Builder, label, value string) {
	padding := labelWidth - runewidth.StringWidth(label)
	if padding < 0 {
		padding = 0
	}

	sb.WriteString(label)
	sb.WriteString(strings.Repeat(" ", padding))
	sb.WriteString(": ")
	sb.WriteString(value)
	sb.WriteString("\n")
}
