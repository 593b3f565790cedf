// Copyright 2026 Adil Gabbasov
// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"errors"
	"path"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/adilgabb/commitgate/internal/backend"
	"github.com/adilgabb/commitgate/internal/moderation"
	"github.com/adilgabb/commitgate/internal/store"
	"github.com/adilgabb/commitgate/internal/workers"
	"github.com/adilgabb/commitgate/models"
)

// Recorder runs the post-commit sequence for each committed file: persist
// the index record, then schedule the best-effort enrichment work. Nothing
// here can fail the upload; the bytes are already durably committed.
type Recorder struct {
	records    store.RecordRepository
	kv         store.KVStore
	client     backend.Client
	classifier moderation.Classifier
	runner     *workers.Runner
	log        zerolog.Logger
}

func NewRecorder(records store.RecordRepository, kv store.KVStore, client backend.Client, classifier moderation.Classifier, runner *workers.Runner, log zerolog.Logger) *Recorder {
	return &Recorder{
		records:    records,
		kv:         kv,
		client:     client,
		classifier: classifier,
		runner:     runner,
		log:        log,
	}
}

// Record persists the index record for one committed file and returns the
// response entry for it. Persistence failures are logged, not surfaced: the
// file is committed either way and must appear in the success response.
func (r *Recorder) Record(ctx context.Context, ch models.Channel, f models.PreparedFile, uploaderIP string) models.UploadedFile {
	url := r.client.PublicURL(ch, f.Path)

	rec := models.IndexRecord{
		Path:       f.Path,
		Name:       f.Name,
		Dir:        f.Folder,
		MimeType:   f.MimeType,
		Size:       f.Size,
		UploaderIP: uploaderIP,
		Label:      models.LabelUnclassified,
		Channel:    ch.Name,
		Repo:       ch.Repo,
		URL:        url,
		CreatedAt:  time.Now().UTC(),
	}
	if w, h, ok := moderation.SniffDimensions(f.Data, f.MimeType); ok {
		rec.Width = w
		rec.Height = h
	}

	if err := r.records.Save(ctx, rec); err != nil {
		r.log.Err(err).Str("func", "Recorder.Record").Str("path", f.Path).Msg("failed to save index record")
	} else {
		r.scheduleModeration(ch, rec)
	}
	r.scheduleBookkeeping(ch)

	return models.UploadedFile{
		Name:   f.Name,
		Src:    url,
		FullID: ch.Name + ":" + f.Path,
	}
}

// scheduleModeration queues the classify-then-relabel task. The record keeps
// its unclassified label whenever the classifier is absent or fails.
func (r *Recorder) scheduleModeration(ch models.Channel, rec models.IndexRecord) {
	if r.classifier == nil {
		return
	}

	r.runner.Schedule("moderate "+path.Join(ch.Name, rec.Path), func(ctx context.Context) error {
		label, err := r.classifier.Classify(ctx, rec.URL)
		if err != nil {
			return err
		}
		return r.records.UpdateLabel(ctx, rec.Channel, rec.Path, label)
	})
}

// scheduleBookkeeping bumps the channel's lifetime upload counter off the
// request path. Read-modify-write without CAS: the counter is advisory.
func (r *Recorder) scheduleBookkeeping(ch models.Channel) {
	key := store.Key(store.NamespaceMeta, "uploads:"+ch.Name)

	r.runner.Schedule("count upload "+ch.Name, func(ctx context.Context) error {
		count := 0
		raw, err := r.kv.Get(ctx, key)
		if err != nil && !errors.Is(err, store.ErrKeyNotFound) {
			return err
		}
		if err == nil {
			if count, err = strconv.Atoi(raw); err != nil {
				count = 0
			}
		}
		return r.kv.Put(ctx, key, strconv.Itoa(count+1))
	})
}
