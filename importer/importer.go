// Package importer loads the university dataset (world_universities_and_domains.json) into the database.
//
// The import is a pipeline: one reader decodes and validates records and groups them into
// batches, a fixed set of workers inserts batches concurrently, and the caller receives the totals
// once every worker has drained. Cancelling the context stops the pipeline.
package importer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/sync/errgroup"

	"github.com/user/unidirectory-go/logging"
	"github.com/user/unidirectory-go/universities"
)

const (
	defaultWorkers   = 3
	defaultBatchSize = 500
)

// Store writes universities.
type Store interface {
	InsertBatch(ctx context.Context, items []universities.University) (int64, error)
	Truncate(ctx context.Context) error
}

// Options tune an import.
type Options struct {
	Workers   int
	BatchSize int
	// Replace empties the universities table (and so every favorite) before importing.
	Replace bool
}

// Result summarises an import.
type Result struct {
	Read     int64 `json:"read"`
	Skipped  int64 `json:"skipped"`
	Inserted int64 `json:"inserted"`
}

// Importer runs dataset imports.
type Importer struct {
	store  Store
	schema *jsonschema.Schema
	opts   Options
}

// New creates an Importer.
func New(store Store, opts Options) (*Importer, error) {
	schema, err := compileRecordSchema()
	if err != nil {
		return nil, err
	}
	if opts.Workers < 1 {
		opts.Workers = defaultWorkers
	}
	if opts.BatchSize < 1 {
		opts.BatchSize = defaultBatchSize
	}
	return &Importer{store: store, schema: schema, opts: opts}, nil
}

// record is one entry of the dataset. web_pages is usually an array but some
// dumps carry a bare string, so it is decoded lazily.
type record struct {
	Name          string          `json:"name"`
	Country       string          `json:"country"`
	StateProvince *string         `json:"state-province"`
	WebPages      json.RawMessage `json:"web_pages"`
}

func (rec record) university() (universities.University, error) {
	u := universities.University{Name: rec.Name, Country: rec.Country}
	if rec.StateProvince != nil && *rec.StateProvince != "" {
		sp := *rec.StateProvince
		u.StateProvince = &sp
	}

	var pages []string
	if err := json.Unmarshal(rec.WebPages, &pages); err != nil {
		var single string
		if err := json.Unmarshal(rec.WebPages, &single); err != nil {
			return u, fmt.Errorf("web_pages: %w", err)
		}
		pages = []string{single}
	}
	if len(pages) == 0 {
		return u, errors.New("web_pages is empty")
	}
	u.Website = pages[0]
	return u, nil
}

// Run imports the JSON array read from r.
func (im *Importer) Run(ctx context.Context, r io.Reader) (Result, error) {
	log := logging.FromContext(ctx).WithFields(logging.Fields{"component": "importer"})
	var res Result

	if im.opts.Replace {
		if err := im.store.Truncate(ctx); err != nil {
			return res, fmt.Errorf("failed to truncate universities: %w", err)
		}
		log.Info("existing universities removed", nil)
	}

	batches := make(chan []universities.University, im.opts.Workers)
	var read, skipped, inserted atomic.Int64

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(batches)
		return im.read(gctx, r, batches, &read, &skipped, log)
	})

	for i := 0; i < im.opts.Workers; i++ {
		workerID := i
		g.Go(func() error {
			for batch := range batches {
				n, err := im.store.InsertBatch(gctx, batch)
				inserted.Add(n)
				if err != nil {
					return fmt.Errorf("worker %d: insert batch: %w", workerID, err)
				}
				log.Debug("batch inserted", logging.Fields{"worker": workerID, "rows": n})
			}
			return nil
		})
	}

	err := g.Wait()
	res = Result{Read: read.Load(), Skipped: skipped.Load(), Inserted: inserted.Load()}
	if err != nil {
		return res, err
	}
	log.Info("import finished", logging.Fields{"read": res.Read, "skipped": res.Skipped, "inserted": res.Inserted})
	return res, nil
}

// read streams the top-level array, validating each element, and emits batches.
func (im *Importer) read(ctx context.Context, r io.Reader, out chan<- []universities.University,
	read, skipped *atomic.Int64, log logging.Logger) error {
	dec := json.NewDecoder(r)
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to read dataset: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return errors.New("dataset must be a JSON array")
	}

	batch := make([]universities.University, 0, im.opts.BatchSize)
	send := func() error {
		if len(batch) == 0 {
			return nil
		}
		select {
		case out <- batch:
		case <-ctx.Done():
			return ctx.Err()
		}
		batch = make([]universities.University, 0, im.opts.BatchSize)
		return nil
	}

	for index := 0; dec.More(); index++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("record %d: %w", index, err)
		}
		read.Add(1)

		u, err := im.decodeRecord(raw)
		if err != nil {
			skipped.Add(1)
			log.Warn("skipping invalid record", logging.Fields{"index": index, "error": err.Error()})
			continue
		}

		batch = append(batch, u)
		if len(batch) == im.opts.BatchSize {
			if err := send(); err != nil {
				return err
			}
		}
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("failed to read end of dataset: %w", err)
	}
	return send()
}

func (im *Importer) decodeRecord(raw json.RawMessage) (universities.University, error) {
	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return universities.University{}, err
	}
	if err := im.schema.Validate(doc); err != nil {
		return universities.University{}, err
	}
	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return universities.University{}, err
	}
	return rec.university()
}
