package migrate

import (
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// Operation is a single schema change rendered as one PostgreSQL statement.
// Destructive reports whether executing the operation can discard row data
// that no inverse operation could restore.
type Operation interface {
	SQL() string
	Destructive() bool
}

// Column describes a table column. Default, when non-empty, is a server-side
// default expression and is required when adding a NOT NULL column to a table
// that may already contain rows.
type Column struct {
	Name     string
	Type     string
	Nullable bool
	Default  string
}

func (c Column) def() string {
	var b strings.Builder
	b.WriteString(pq.QuoteIdentifier(c.Name))
	b.WriteString(" ")
	b.WriteString(c.Type)
	if !c.Nullable {
		b.WriteString(" NOT NULL")
	}
	if c.Default != "" {
		b.WriteString(" DEFAULT ")
		b.WriteString(c.Default)
	}
	return b.String()
}

// ForeignKey declares a foreign key constraint on a table.
type ForeignKey struct {
	Columns    []string
	RefTable   string
	RefColumns []string
	OnDelete   string // e.g. "CASCADE"; empty for default behavior
}

// Unique declares a named unique constraint on a table.
type Unique struct {
	Name    string
	Columns []string
}

// CreateTable creates a new table with columns, primary key and constraints.
type CreateTable struct {
	Name        string
	Columns     []Column
	PrimaryKey  []string
	ForeignKeys []ForeignKey
	Uniques     []Unique
}

func (o CreateTable) SQL() string {
	defs := make([]string, 0, len(o.Columns)+len(o.ForeignKeys)+len(o.Uniques)+1)
	for _, c := range o.Columns {
		defs = append(defs, c.def())
	}
	if len(o.PrimaryKey) > 0 {
		defs = append(defs, fmt.Sprintf("PRIMARY KEY (%s)", quoteList(o.PrimaryKey)))
	}
	for _, fk := range o.ForeignKeys {
		def := fmt.Sprintf("FOREIGN KEY (%s) REFERENCES %s (%s)",
			quoteList(fk.Columns), pq.QuoteIdentifier(fk.RefTable), quoteList(fk.RefColumns))
		if fk.OnDelete != "" {
			def += " ON DELETE " + fk.OnDelete
		}
		defs = append(defs, def)
	}
	for _, u := range o.Uniques {
		defs = append(defs, fmt.Sprintf("CONSTRAINT %s UNIQUE (%s)",
			pq.QuoteIdentifier(u.Name), quoteList(u.Columns)))
	}
	return fmt.Sprintf("CREATE TABLE %s (\n\t%s\n)",
		pq.QuoteIdentifier(o.Name), strings.Join(defs, ",\n\t"))
}

func (o CreateTable) Destructive() bool { return false }

// DropTable removes a table and everything in it.
type DropTable struct {
	Name string
}

func (o DropTable) SQL() string {
	return fmt.Sprintf("DROP TABLE %s", pq.QuoteIdentifier(o.Name))
}

func (o DropTable) Destructive() bool { return true }

// AddColumn adds a column to an existing table. A NOT NULL column must carry
// a Default so existing rows are backfilled instead of violating the
// constraint mid-migration.
type AddColumn struct {
	Table  string
	Column Column
}

func (o AddColumn) SQL() string {
	return fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s",
		pq.QuoteIdentifier(o.Table), o.Column.def())
}

func (o AddColumn) Destructive() bool { return false }

// DropColumn removes a column. Any values stored in it are gone for good.
type DropColumn struct {
	Table  string
	Column string
}

func (o DropColumn) SQL() string {
	return fmt.Sprintf("ALTER TABLE %s DROP COLUMN %s",
		pq.QuoteIdentifier(o.Table), pq.QuoteIdentifier(o.Column))
}

func (o DropColumn) Destructive() bool { return true }

// CreateIndex creates an index. Index operations never touch row data, so a
// create/drop pair is always safe to reverse.
type CreateIndex struct {
	Name    string
	Table   string
	Columns []string
	Unique  bool
}

func (o CreateIndex) SQL() string {
	kind := "INDEX"
	if o.Unique {
		kind = "UNIQUE INDEX"
	}
	return fmt.Sprintf("CREATE %s %s ON %s (%s)",
		kind, pq.QuoteIdentifier(o.Name), pq.QuoteIdentifier(o.Table), quoteList(o.Columns))
}

func (o CreateIndex) Destructive() bool { return false }

// DropIndex removes an index by name.
type DropIndex struct {
	Name string
}

func (o DropIndex) SQL() string {
	return fmt.Sprintf("DROP INDEX %s", pq.QuoteIdentifier(o.Name))
}

func (o DropIndex) Destructive() bool { return false }

// RawSQL executes an arbitrary statement. Set DataLoss for statements that
// delete or truncate row data; the chain validator uses it to reject steps
// that claim to be reversible.
type RawSQL struct {
	Stmt     string
	DataLoss bool
}

func (o RawSQL) SQL() string { return o.Stmt }

func (o RawSQL) Destructive() bool { return o.DataLoss }

func quoteList(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = pq.QuoteIdentifier(n)
	}
	return strings.Join(quoted, ", ")
}
