package events

import "encoding/json"

const (
	// Satu topic CDC untuk semua tabel yang di-watch; field table
	// di payload yang memisahkan.
	TopicChanges = "payhr.changes"

	TableAttendances = "attendances"
	TableLeaves      = "leave_requests"
)

const (
	OpInsert = "INSERT"
	OpUpdate = "UPDATE"
	OpDelete = "DELETE"
)

type RowChangeEvent struct {
	Op    string          `json:"op"`
	Table string          `json:"table"`
	Row   json.RawMessage `json:"row"`
}

func NewRowChange(op, table string, row any) ([]byte, error) {
	raw, err := json.Marshal(row)
	if err != nil {
		return nil, err
	}
	return json.Marshal(RowChangeEvent{Op: op, Table: table, Row: raw})
}
