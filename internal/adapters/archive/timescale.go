package archive

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/ghalamif/GraphiteFlow/internal/domain"
	"github.com/ghalamif/GraphiteFlow/internal/ports"
)

// Timescale is an optional archive destination that lands one row per
// value in a Postgres/TimescaleDB hypertable. Unlike a graphite node it
// may return errors; the dispatch router logs them and moves on.
type Timescale struct {
	db        *sql.DB
	tableName string
	obs       ports.Observability
}

func NewTimescale(db *sql.DB, table string, obs ports.Observability) *Timescale {
	return &Timescale{db: db, tableName: table, obs: obs}
}

func (t *Timescale) Name() string { return "archive" }

// Write inserts the batch with a multi-row INSERT, idempotent via the
// unique key on (host, plugin, plugin_instance, type, type_instance,
// value_name, ts).
func (t *Timescale) Write(batch *domain.SampleBatch) error {
	if len(batch.Values) == 0 {
		return nil
	}

	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(t.tableName)
	b.WriteString(" (host, plugin, plugin_instance, type, type_instance, value_name, value, ts) VALUES ")

	ts := batch.Time.Time()
	args := make([]any, 0, len(batch.Values)*8)
	for i, v := range batch.Values {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(fmt.Sprintf("($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			len(args)+1, len(args)+2, len(args)+3, len(args)+4,
			len(args)+5, len(args)+6, len(args)+7, len(args)+8))

		args = append(args,
			batch.Host,
			batch.Plugin,
			batch.PluginInstance,
			batch.Type,
			batch.TypeInstance,
			v.Name,
			v.Value.String(),
			ts,
		)
	}

	b.WriteString(" ON CONFLICT (host, plugin, plugin_instance, type, type_instance, value_name, ts) DO NOTHING")

	if _, err := t.db.Exec(b.String(), args...); err != nil {
		t.obs.IncCounter("archive_write_errors_total", 1)
		return fmt.Errorf("archive insert: %w", err)
	}
	t.obs.IncCounter("archive_rows_written_total", float64(len(batch.Values)))
	return nil
}

var _ ports.Writer = (*Timescale)(nil)
