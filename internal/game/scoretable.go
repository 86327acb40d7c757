package game

import "strings"

// ScoreTable is the board snapshot shipped to the presentation layer: every
// cost column of the tour and, per topic, which costs were already played.
type ScoreTable struct {
	Costs []int      `json:"costs"`
	Rows  []ScoreRow `json:"rows"`
}

type ScoreRow struct {
	Topic string `json:"topic"`
	Taken []int  `json:"taken"`
}

// Render produces the pipe-delimited grid: one row per topic, one column per
// cost, "x" marking a taken cost. Topic names are padded to a common width by
// character count, so multi-byte names line up. External tooling parses this
// format; keep it stable.
func (t ScoreTable) Render() string {
	width := 0
	for _, row := range t.Rows {
		if n := len([]rune(row.Topic)); n > width {
			width = n
		}
	}

	rows := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		var sb strings.Builder
		sb.WriteString("|")
		sb.WriteString(row.Topic)
		for pad := width - len([]rune(row.Topic)); pad > 0; pad-- {
			sb.WriteString(" ")
		}
		sb.WriteString("|")
		for _, cost := range t.Costs {
			mark := " "
			for _, taken := range row.Taken {
				if taken == cost {
					mark = "x"
					break
				}
			}
			sb.WriteString(mark)
			sb.WriteString("|")
		}
		rows = append(rows, sb.String())
	}
	return strings.Join(rows, "\n")
}
