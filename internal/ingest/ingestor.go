package ingest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/adsdash/adsdash/internal/csvio"
	"github.com/adsdash/adsdash/internal/models"
	"github.com/adsdash/adsdash/internal/obs"
	"github.com/adsdash/adsdash/internal/pipeline"
	"github.com/adsdash/adsdash/internal/store"
)

type Ingestor struct {
	rd  *Reader
	st  *store.Session
	log *slog.Logger
}

func NewIngestor(rd *Reader, st *store.Session, log *slog.Logger) *Ingestor {
	return &Ingestor{rd: rd, st: st, log: log}
}

// Upload runs one ingestion end to end: claim a generation, read the bytes,
// parse, auto-detect the mapping, commit. A structural parse error or read
// failure aborts with nothing committed. If a later upload (or reset) claimed
// the session meanwhile, the finished result is discarded with
// store.ErrSuperseded.
func (ing *Ingestor) Upload(ctx context.Context, filename string, src io.Reader, size int64) (models.SessionInfo, error) {
	gen := ing.st.BeginUpload()
	id := uuid.NewString()
	log := ing.log.With(slog.String("upload_id", id), slog.String("file", filename))

	data, err := ing.rd.ReadAll(ctx, src, size, func(frac float64) {
		log.Debug("reading", slog.Float64("progress", frac))
	})
	if err != nil {
		obs.UploadErrors.Inc()
		return models.SessionInfo{}, fmt.Errorf("read upload: %w", err)
	}

	rows, headers, err := csvio.Parse(bytes.NewReader(data))
	if err != nil {
		obs.UploadErrors.Inc()
		return models.SessionInfo{}, err
	}

	mapping := pipeline.AutoDetect(headers)
	if err := ing.st.CommitUpload(gen, id, filename, rows, headers, mapping); err != nil {
		if errors.Is(err, store.ErrSuperseded) {
			obs.UploadsSuperseded.Inc()
			log.Info("upload superseded, result discarded")
		}
		return models.SessionInfo{}, err
	}

	info := ing.st.Info()
	obs.Uploads.Inc()
	obs.RowsIngested.Add(float64(info.RawCount))
	obs.RowsDroppedBadDate.Add(float64(info.DroppedDates))
	log.Info("upload complete",
		slog.Int("raw_rows", info.RawCount),
		slog.Int("normalized_rows", info.NormalizedCount),
		slog.Int("dropped_dates", info.DroppedDates))
	return info, nil
}
