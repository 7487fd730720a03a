// Package normalizer turns channel CSV exports into normalized records.
//
// Each channel kind has exactly one mapping function. Normalize selects it
// once and folds the rows into a Batch: rows that cannot be mapped end up
// in Batch.Rejected and never abort the fold.
package normalizer

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	channels "channel-metrics-service/internal/channels/core/domain"
	"channel-metrics-service/internal/ingest/core/domain"
)

var (
	ErrMissingColumn = errors.New("missing column")
	ErrInvalidDate   = errors.New("invalid date")
	ErrMalformedRow  = errors.New("malformed csv row")
	ErrInvalidHeader = errors.New("invalid csv header")
)

// Rejection records why a physical CSV line was dropped.
type Rejection struct {
	Line int
	Err  error
}

type Batch struct {
	Accepted []domain.Record
	Rejected []Rejection
}

type rowMapper func(r row, ch channels.Channel, defaultCountryCode string) (domain.Record, error)

func mapperFor(k channels.Kind) (rowMapper, error) {
	switch k {
	case channels.KindMxit:
		return mapMxit, nil
	case channels.KindEskimi:
		return mapEskimi, nil
	case channels.KindBinu:
		return mapBinu, nil
	default:
		return nil, fmt.Errorf("%w: %s", channels.ErrUnknownKind, k)
	}
}

// Normalize reads the whole payload and maps every data row for the channel.
// The returned error is limited to an unknown channel kind, an unreadable
// header, or a failing reader; row problems are reported in the batch.
func Normalize(payload io.Reader, ch channels.Channel, defaultCountryCode string) (Batch, error) {
	var batch Batch

	mapRow, err := mapperFor(ch.Kind)
	if err != nil {
		return batch, err
	}

	br := bufio.NewReader(payload)
	lineOffset := 0

	// mxit exports carry a banner line above the header.
	if ch.Kind == channels.KindMxit {
		if _, err := br.ReadString('\n'); err != nil {
			if errors.Is(err, io.EOF) {
				return batch, nil
			}
			return batch, fmt.Errorf("read banner line: %w", err)
		}
		lineOffset = 1
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return batch, nil
		}
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			return batch, fmt.Errorf("%w: %v", ErrInvalidHeader, err)
		}
		return batch, fmt.Errorf("read header: %w", err)
	}
	index := indexHeader(header)

	for {
		cells, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			var pe *csv.ParseError
			if !errors.As(err, &pe) {
				return batch, fmt.Errorf("read csv: %w", err)
			}
			batch.Rejected = append(batch.Rejected, Rejection{
				Line: pe.Line + lineOffset,
				Err:  fmt.Errorf("%w: %v", ErrMalformedRow, pe.Err),
			})
			continue
		}

		line, _ := cr.FieldPos(0)
		line += lineOffset

		rec, err := mapRow(row{index: index, cells: cells}, ch, defaultCountryCode)
		if err != nil {
			batch.Rejected = append(batch.Rejected, Rejection{Line: line, Err: err})
			continue
		}
		batch.Accepted = append(batch.Accepted, rec)
	}

	return batch, nil
}

func indexHeader(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		// a repeated header resolves to its last column
		index[h] = i
	}
	return index
}
