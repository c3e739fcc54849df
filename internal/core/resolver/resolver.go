package resolver

import (
	"context"
	"strings"
	"time"

	"ai-vocab-coach/config"
	"ai-vocab-coach/internal/core/images"
	"ai-vocab-coach/internal/core/notebook"
	"ai-vocab-coach/internal/oracle"
	"ai-vocab-coach/pkg/apperror"
	"ai-vocab-coach/pkg/apperror/status"
	"ai-vocab-coach/pkg/logger"

	"github.com/google/uuid"
)

// Resolver turns a term into an enriched entry: cache-first against the
// notebook, then a concurrent Enrich + GenerateImage fan-out on a miss.
// Resolve never writes to the notebook; persistence is the caller's explicit
// action.
type Resolver struct {
	oracle oracle.Oracle
	store  notebook.Store
	images images.Store
}

func New(o oracle.Oracle, store notebook.Store, imgs images.Store) *Resolver {
	return &Resolver{oracle: o, store: store, images: imgs}
}

// per-branch results of the fan-out; joined deterministically below
type enrichResult struct {
	enrichment oracle.Enrichment
	err        error
}

type imageResult struct {
	img *oracle.GeneratedImage
	err error
}

// Resolve looks the term up in the notebook first (case-insensitive, keyed
// by language pair) and returns the saved entry unchanged on a hit. On a
// miss it issues Enrich and GenerateImage concurrently. The join is
// asymmetric: a failed Enrich fails the whole call, a failed image only
// leaves the entry without an image reference.
func (r *Resolver) Resolve(ctx context.Context, term, sourceLang, targetLang string) (notebook.DictEntry, error) {
	display := strings.TrimSpace(term)
	if display == "" {
		return notebook.DictEntry{}, apperror.Wrapf(apperror.KindLookup, status.MissingParams, "empty term")
	}

	cached, err := r.store.Lookup(ctx, display, sourceLang, targetLang)
	if err != nil {
		// a broken cache read degrades to a miss, not a failed lookup
		logger.Error(err, "%v: cache lookup failed for %q", config.ModuleResolver, display)
	}
	if cached != nil {
		return *cached, nil
	}

	enrichCh := make(chan enrichResult, 1)
	imageCh := make(chan imageResult, 1)

	go func() {
		enr, err := r.oracle.Enrich(ctx, display, sourceLang, targetLang)
		enrichCh <- enrichResult{enrichment: enr, err: err}
	}()
	go func() {
		img, err := r.oracle.GenerateImage(ctx, display)
		imageCh <- imageResult{img: img, err: err}
	}()

	er := <-enrichCh
	ir := <-imageCh

	if er.err != nil {
		// image result, if any, is discarded
		return notebook.DictEntry{}, apperror.Wrap(apperror.KindLookup, status.ResolverLookupFailed, er.err)
	}

	entry := notebook.DictEntry{
		ID:               uuid.NewString(),
		SourceTerm:       display,
		SourceLang:       sourceLang,
		TargetLang:       targetLang,
		TargetTerm:       er.enrichment.TargetTerm,
		Phonetic:         er.enrichment.Phonetic,
		NativeDefinition: er.enrichment.NativeDefinition,
		Examples:         er.enrichment.Examples,
		UsageNote:        er.enrichment.UsageNote,
		CreatedAt:        time.Now(),
	}

	switch {
	case ir.err != nil:
		logger.Error(ir.err, "%v: image generation failed for %q, continuing without image", config.ModuleResolver, display)
	case ir.img == nil:
		// service declined; nothing to store
	default:
		ref, err := r.images.Put(ctx, display, ir.img)
		if err != nil {
			logger.Error(err, "%v: image store failed for %q, continuing without image", config.ModuleResolver, display)
		} else {
			entry.ImageRef = ref
		}
	}

	return entry, nil
}

// BackfillImage attaches an image to an entry that was resolved or saved
// without one. The notebook row is updated when the entry is saved; the
// returned ref lets callers update their own copy either way.
func (r *Resolver) BackfillImage(ctx context.Context, entryID, term string) (string, error) {
	img, err := r.oracle.GenerateImage(ctx, term)
	if err != nil {
		return "", apperror.Wrap(apperror.KindImage, status.ResolverImageFailed, err)
	}
	if img == nil {
		return "", apperror.Wrapf(apperror.KindImage, status.ResolverImageFailed, "no image generated for %q", term)
	}
	ref, err := r.images.Put(ctx, term, img)
	if err != nil {
		return "", apperror.Wrap(apperror.KindImage, status.ResolverImageFailed, err)
	}
	if err := r.store.SetImageRef(ctx, entryID, ref); err != nil {
		logger.Error(err, "%v: image backfill not persisted for %s", config.ModuleResolver, entryID)
	}
	return ref, nil
}
