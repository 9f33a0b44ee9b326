package leave

import (
	"context"
	"encoding/json"

	"go-payhr/internal/readmodel"
)

// ChangeRow adalah bentuk baris cuti di change feed, sama dengan
// bentuk response.
type ChangeRow struct {
	LeaveResponse
}

func (r ChangeRow) Key() string { return r.ID }

func DecodeChangeRow(raw json.RawMessage) (readmodel.Row, error) {
	var row ChangeRow
	if err := json.Unmarshal(raw, &row); err != nil {
		return nil, err
	}
	return row, nil
}

// NewFetcher membangun baseline read model dari semua leave request
// beserta field display karyawan hasil join. Dipakai tanpa filter.
func NewFetcher(repo Repository) readmodel.Fetcher {
	return readmodel.FetcherFunc(func(ctx context.Context) ([]readmodel.Row, error) {
		rows, err := repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}

		out := make([]readmodel.Row, len(rows))
		for i, l := range rows {
			out[i] = ChangeRow{LeaveResponse: mapJoinedToResponse(l)}
		}
		return out, nil
	})
}
