package mailctl

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// FormatCommand renders a step as a PowerShell command line, for dry runs
// and audit logs.
func FormatCommand(s Step) string {
	var b strings.Builder
	b.WriteString(s.Command)
	for _, p := range s.Params.Pairs() {
		b.WriteString(" -")
		b.WriteString(p.Key)
		switch v := p.Value.(type) {
		case bool:
			if v {
				b.WriteString(":$true")
			} else {
				b.WriteString(":$false")
			}
		case int:
			if v < 0 {
				b.WriteString(":")
			} else {
				b.WriteString(" ")
			}
			b.WriteString(strconv.Itoa(v))
		case []string:
			b.WriteString(" ")
			for i, item := range v {
				if i > 0 {
					b.WriteString(",")
				}
				b.WriteString(quote(item))
			}
		case string:
			b.WriteString(" ")
			b.WriteString(quote(v))
		default:
			b.WriteString(" ")
			b.WriteString(quote(fmt.Sprint(v)))
		}
	}
	return b.String()
}

// quote wraps s in single quotes, doubling any embedded single quote.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// WriteText writes the plan as one command per line followed by the
// skipped objects as comments.
func (pl *Plan) WriteText(w io.Writer) error {
	create, update := pl.Counts()
	if _, err := fmt.Fprintf(w, "# plan %s: %d to create, %d to update, %d skipped\n", pl.ID, create, update, len(pl.Skipped)); err != nil {
		return err
	}
	for _, s := range pl.Steps {
		if _, err := fmt.Fprintln(w, FormatCommand(s)); err != nil {
			return err
		}
	}
	for _, s := range pl.Skipped {
		if _, err := fmt.Fprintf(w, "# skipped %s %q: %s\n", s.Kind, s.Name, s.Reason); err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON writes the plan as indented JSON. Parameters keep their order.
func (pl *Plan) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(pl); err != nil {
		return fmt.Errorf("encode plan: %w", err)
	}
	return nil
}
