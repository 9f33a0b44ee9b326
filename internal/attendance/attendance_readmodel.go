package attendance

import (
	"context"
	"encoding/json"
	"time"

	"go-payhr/internal/readmodel"
)

// ChangeRow adalah bentuk baris absensi di change feed; sama dengan
// bentuk response supaya hanya ada satu wire shape.
type ChangeRow struct {
	AttendanceResponse
}

func (r ChangeRow) Key() string { return r.ID }

func DecodeChangeRow(raw json.RawMessage) (readmodel.Row, error) {
	var row ChangeRow
	if err := json.Unmarshal(raw, &row); err != nil {
		return nil, err
	}
	return row, nil
}

// DateFilter membatasi proyeksi ke satu tanggal absensi. Baris di luar
// tanggal aktif di-drop di reducer, bukan di subscription.
func DateFilter(date time.Time) readmodel.Filter {
	day := date.Format("2006-01-02")
	return func(r readmodel.Row) bool {
		row, ok := r.(ChangeRow)
		return ok && row.AttendanceDate == day
	}
}

// TodayFilter seperti DateFilter, tapi tanggalnya dievaluasi per
// panggilan. Proyeksi harian yang memakai ini ikut berganti hari tanpa
// restart consumer; baris kemarin dibersihkan lewat Refetch saat
// supervisor mendeteksi pergantian hari.
func TodayFilter() readmodel.Filter {
	return func(r readmodel.Row) bool {
		row, ok := r.(ChangeRow)
		return ok && row.AttendanceDate == time.Now().UTC().Format("2006-01-02")
	}
}

// TodayFetcher membangun baseline untuk hari UTC saat fetch berjalan.
func TodayFetcher(repo Repository) readmodel.Fetcher {
	return readmodel.FetcherFunc(func(ctx context.Context) ([]readmodel.Row, error) {
		today := time.Now().UTC().Truncate(24 * time.Hour)
		return NewFetcher(repo, today).Fetch(ctx)
	})
}

// NewFetcher membangun baseline read model dari fetch penuh untuk satu
// tanggal, terurut time_in ascending seperti di repo.
func NewFetcher(repo Repository, date time.Time) readmodel.Fetcher {
	return readmodel.FetcherFunc(func(ctx context.Context) ([]readmodel.Row, error) {
		rows, err := repo.FindAllByDate(ctx, date)
		if err != nil {
			return nil, err
		}

		out := make([]readmodel.Row, len(rows))
		for i, a := range rows {
			out[i] = ChangeRow{AttendanceResponse: mapToResponse(a)}
		}
		return out, nil
	})
}
