package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table and column layout. Every event table carries the global sequence
// number and a UTC timestamp; see event.go.
var (
	SnapshotsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64},
		{Name: "timestamp", Type: field.TypeString},
		{Name: "data", Type: field.TypeJSON},
	}
	SnapshotsTable = &schema.Table{
		Name:       "snapshots",
		Columns:    SnapshotsColumns,
		PrimaryKey: []*schema.Column{SnapshotsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "snapshot_sequence", Columns: []*schema.Column{SnapshotsColumns[1]}},
		},
	}

	DayEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeString},
		{Name: "date", Type: field.TypeString},
		{Name: "day_type", Type: field.TypeString},
		{Name: "rule", Type: field.TypeString},
		{Name: "requested_energy", Type: field.TypeFloat64},
		{Name: "energy", Type: field.TypeFloat64},
		{Name: "time_budget", Type: field.TypeInt},
		{Name: "topic", Type: field.TypeString, Default: ""},
	}
	DayEventsTable = &schema.Table{
		Name:       "day_events",
		Columns:    DayEventsColumns,
		PrimaryKey: []*schema.Column{DayEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "dayevent_date", Columns: []*schema.Column{DayEventsColumns[3]}},
		},
	}

	SessionEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeString},
		{Name: "session_id", Type: field.TypeString},
		{Name: "date", Type: field.TypeString},
		{Name: "topic", Type: field.TypeString, Default: ""},
		{Name: "phase", Type: field.TypeString, Default: ""},
		{Name: "day_type", Type: field.TypeString},
		{Name: "understanding", Type: field.TypeInt},
		{Name: "difficulty", Type: field.TypeInt},
		{Name: "mood_after", Type: field.TypeInt},
		{Name: "completion_rate", Type: field.TypeFloat64},
		{Name: "quality", Type: field.TypeFloat64},
		{Name: "xp_earned", Type: field.TypeInt},
		{Name: "level", Type: field.TypeInt},
		{Name: "streak", Type: field.TypeInt},
	}
	SessionEventsTable = &schema.Table{
		Name:       "session_events",
		Columns:    SessionEventsColumns,
		PrimaryKey: []*schema.Column{SessionEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "sessionevent_session_id", Columns: []*schema.Column{SessionEventsColumns[3]}},
			{Name: "sessionevent_topic", Columns: []*schema.Column{SessionEventsColumns[5]}},
		},
	}

	ReviewEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeString},
		{Name: "item_id", Type: field.TypeString},
		{Name: "grade", Type: field.TypeInt},
		{Name: "ease_factor", Type: field.TypeFloat64},
		{Name: "interval_days", Type: field.TypeInt},
		{Name: "repetitions", Type: field.TypeInt},
		{Name: "next_review_at", Type: field.TypeString},
	}
	ReviewEventsTable = &schema.Table{
		Name:       "review_events",
		Columns:    ReviewEventsColumns,
		PrimaryKey: []*schema.Column{ReviewEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "reviewevent_item_id", Columns: []*schema.Column{ReviewEventsColumns[3]}},
		},
	}

	// Tables holds all managed tables.
	Tables = []*schema.Table{
		SnapshotsTable,
		DayEventsTable,
		SessionEventsTable,
		ReviewEventsTable,
	}
)

// migrate creates missing tables, columns and indexes.
func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("new migrate: %w", err)
	}
	if err := m.Create(ctx, Tables...); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}

// builder returns a SQL builder for the SQLite dialect.
func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}
