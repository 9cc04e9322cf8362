package functions

import (
	"context"
	"database/sql"

	"github.com/Code-Hex/synchro"
	"github.com/Code-Hex/synchro/tz"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// ResultRecorder stores successful analyses.
type ResultRecorder interface {
	Record(ctx context.Context, text string, result AnalysisResult) error
}

func NewDBClient(dsn string) (*bun.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	return db, nil
}

type dbRecorder struct {
	db  *bun.DB
	now func() synchro.Time[tz.AsiaTokyo]
}

func NewDBRecorder(db *bun.DB) ResultRecorder {
	return &dbRecorder{db: db, now: synchro.Now[tz.AsiaTokyo]}
}

func (r *dbRecorder) Record(ctx context.Context, text string, result AnalysisResult) error {
	record, ok := newAnalysisRecord(text, result, r.now())
	if !ok {
		// Nothing was analyzed.
		return nil
	}
	return InsertAnalysisRecord(ctx, r.db, record)
}

func newAnalysisRecord(text string, result AnalysisResult, at synchro.Time[tz.AsiaTokyo]) (AnalysisRecord, bool) {
	scores, ok := result.Scores()
	if !ok {
		return AnalysisRecord{}, false
	}
	return AnalysisRecord{
		Text:            text,
		Anger:           scores.Anger,
		Disgust:         scores.Disgust,
		Fear:            scores.Fear,
		Joy:             scores.Joy,
		Sadness:         scores.Sadness,
		DominantEmotion: *result.DominantEmotion,
		AnalyzedAt:      at.StdTime(),
	}, true
}

func InsertAnalysisRecord(ctx context.Context, db *bun.DB, record AnalysisRecord) error {
	_, err := db.NewInsert().Model(&record).Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}
