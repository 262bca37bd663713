package graphite

import (
	"strconv"
	"strings"

	"github.com/ghalamif/GraphiteFlow/internal/domain"
)

// Identifier composes the hierarchical metric path for a batch:
// [prefix.]host.plugin[-instance].type[-instance]. The prefix is taken
// verbatim; every batch segment is sanitized.
func Identifier(prefix string, batch *domain.SampleBatch) string {
	var b strings.Builder
	if prefix != "" {
		b.WriteString(prefix)
		b.WriteByte('.')
	}
	b.WriteString(Sanitize(batch.Host))
	b.WriteByte('.')
	b.WriteString(Sanitize(batch.Plugin))
	if batch.PluginInstance != "" {
		b.WriteByte('-')
		b.WriteString(Sanitize(batch.PluginInstance))
	}
	b.WriteByte('.')
	b.WriteString(Sanitize(batch.Type))
	if batch.TypeInstance != "" {
		b.WriteByte('-')
		b.WriteString(Sanitize(batch.TypeInstance))
	}
	return b.String()
}

// BuildLines renders one wire line per value: "<id> <value> <secs>\n".
// texts holds the already-formatted value texts, index-aligned with
// batch.Values; rate conversion happens before this point. When the
// batch has a single value its name is not appended, even if set.
func BuildLines(prefix string, batch *domain.SampleBatch, texts []string) []string {
	id := Identifier(prefix, batch)
	secs := strconv.FormatInt(batch.Time.Unix(), 10)

	if len(batch.Values) == 1 {
		return []string{valueLine(id, texts[0], secs)}
	}

	lines := make([]string, 0, len(batch.Values))
	for i, v := range batch.Values {
		var b strings.Builder
		b.WriteString(id)
		b.WriteByte('.')
		b.WriteString(Sanitize(v.Name))
		lines = append(lines, valueLine(b.String(), texts[i], secs))
	}
	return lines
}

func valueLine(id, text, secs string) string {
	var b strings.Builder
	b.Grow(len(id) + len(text) + len(secs) + 3)
	b.WriteString(id)
	b.WriteByte(' ')
	b.WriteString(text)
	b.WriteByte(' ')
	b.WriteString(secs)
	b.WriteByte('\n')
	return b.String()
}
