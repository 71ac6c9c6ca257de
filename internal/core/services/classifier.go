package services

import (
	"time"

	"github.com/custodia-labs/sheetpost/internal/core/domain"
)

// Classifier buckets post records by their publish date.
type Classifier struct {
	loc *time.Location
}

// NewClassifier creates a classifier. Dates without an offset are read in
// loc; nil means UTC.
func NewClassifier(loc *time.Location) *Classifier {
	if loc == nil {
		loc = time.UTC
	}
	return &Classifier{loc: loc}
}

// Classify splits records into pending and due relative to now. Records
// without a date are left out; records with an unparseable date land in
// SkippedInvalid. A date equal to now is due. Input order is preserved.
func (c *Classifier) Classify(records []domain.PostRecord, now time.Time) domain.ClassifiedBatch {
	var batch domain.ClassifiedBatch

	for _, rec := range records {
		if !rec.HasDate() {
			continue
		}
		when, err := domain.ParsePublishDate(rec.RawPublishDate, c.loc)
		if err != nil {
			batch.SkippedInvalid = append(batch.SkippedInvalid, domain.InvalidRow{
				Row:    rec.Row,
				Title:  rec.Title,
				Reason: domain.ReasonUnparseableDate,
			})
			continue
		}
		rec.PublishDate = &when

		if when.After(now) {
			batch.Pending = append(batch.Pending, rec)
		} else {
			batch.Due = append(batch.Due, rec)
		}
	}

	return batch
}
