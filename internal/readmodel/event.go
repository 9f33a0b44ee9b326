// Package readmodel memelihara proyeksi in-memory dari tabel yang
// di-watch: baseline dari fetch penuh, lalu direkonsiliasi incremental
// dari change-data-capture events. Reducer-nya murni dan terpisah dari
// transport.
package readmodel

type Op string

const (
	OpInsert Op = "INSERT"
	OpUpdate Op = "UPDATE"
	OpDelete Op = "DELETE"
)

// Row adalah satu baris proyeksi; Key mengembalikan primary key-nya.
type Row interface {
	Key() string
}

// Filter membatasi koleksi aktif (mis. attendance untuk satu tanggal).
// Nil berarti tanpa filter.
type Filter func(Row) bool

type Event struct {
	Op  Op
	Row Row
}

// Apply menerapkan satu event ke koleksi dan mengembalikan koleksi
// berikutnya. Event diterapkan sesuai urutan terima, tanpa reorder dan
// tanpa dedup di luar semantik upsert per primary key:
//   - INSERT di luar filter di-drop diam-diam; selain itu append
//     (key yang sudah ada di-replace, supaya replay idempotent).
//   - UPDATE me-replace entri dengan key sama; kalau tidak ada dan
//     lolos filter, diperlakukan sebagai insert (upsert).
//   - DELETE menghapus berdasarkan key, tidak peduli filter.
func Apply(rows []Row, ev Event, match Filter) []Row {
	if ev.Row == nil {
		return rows
	}

	key := ev.Row.Key()

	switch ev.Op {
	case OpInsert, OpUpdate:
		if match != nil && !match(ev.Row) {
			if ev.Op == OpInsert {
				return rows
			}
			// UPDATE yang keluar dari filter juga di-drop; baris yang
			// sudah ada dengan key sama dibiarkan sampai DELETE datang.
			return rows
		}

		for i, existing := range rows {
			if existing.Key() == key {
				next := make([]Row, len(rows))
				copy(next, rows)
				next[i] = ev.Row
				return next
			}
		}
		next := make([]Row, len(rows), len(rows)+1)
		copy(next, rows)
		return append(next, ev.Row)

	case OpDelete:
		for i, existing := range rows {
			if existing.Key() == key {
				next := make([]Row, 0, len(rows)-1)
				next = append(next, rows[:i]...)
				return append(next, rows[i+1:]...)
			}
		}
		return rows

	default:
		return rows
	}
}
