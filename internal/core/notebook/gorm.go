package notebook

import (
	"context"
	"errors"
	"fmt"

	"ai-vocab-coach/config"
	"ai-vocab-coach/internal/database"
	"ai-vocab-coach/internal/database/model"
	"ai-vocab-coach/internal/oracle"
	"ai-vocab-coach/pkg/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore persists entries in MySQL, ordered by an explicit position
// column so List returns save order regardless of primary key.
type GormStore struct{}

func NewGormStore() *GormStore {
	return &GormStore{}
}

var _ Store = (*GormStore)(nil)

func (s *GormStore) Save(ctx context.Context, entry DictEntry) error {
	db, err := database.GetDB()
	if err != nil {
		return err
	}

	// the position read and the insert share a transaction with a locking
	// read, so two concurrent saves cannot claim the same position
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxPos int
		row := tx.Model(&model.Entry{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("COALESCE(MAX(position), 0)").Row()
		if err := row.Scan(&maxPos); err != nil {
			logger.Error(err, "%v: max position scan failed", config.ModuleNotebook)
			return err
		}

		rec := toModel(entry)
		rec.Position = maxPos + 1
		if err := tx.Create(&rec).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w for %q", ErrDuplicate, entry.SourceTerm)
			}
			logger.Error(err, "%v: save entry failed", config.ModuleNotebook)
			return err
		}
		return nil
	})
}

func (s *GormStore) Unsave(ctx context.Context, id string) error {
	db, err := database.GetDB()
	if err != nil {
		return err
	}
	res := db.WithContext(ctx).Delete(&model.Entry{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.New("unknown entry " + id)
	}
	return nil
}

func (s *GormStore) List(ctx context.Context) ([]DictEntry, error) {
	db, err := database.GetDB()
	if err != nil {
		return nil, err
	}
	var recs []model.Entry
	if err := db.WithContext(ctx).Order("position asc").Find(&recs).Error; err != nil {
		return nil, err
	}
	entries := make([]DictEntry, 0, len(recs))
	for _, r := range recs {
		entries = append(entries, fromModel(r))
	}
	return entries, nil
}

func (s *GormStore) Lookup(ctx context.Context, term, sourceLang, targetLang string) (*DictEntry, error) {
	db, err := database.GetDB()
	if err != nil {
		return nil, err
	}
	var rec model.Entry
	err = db.WithContext(ctx).
		Where("norm_term = ? AND source_lang = ? AND target_lang = ?", NormalizeTerm(term), sourceLang, targetLang).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	entry := fromModel(rec)
	return &entry, nil
}

func (s *GormStore) SetImageRef(ctx context.Context, id, imageRef string) error {
	db, err := database.GetDB()
	if err != nil {
		return err
	}
	res := db.WithContext(ctx).Model(&model.Entry{}).Where("id = ?", id).Update("image_ref", imageRef)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.New("unknown entry " + id)
	}
	return nil
}

func toModel(e DictEntry) model.Entry {
	examples := make([]model.Example, 0, len(e.Examples))
	for _, ex := range e.Examples {
		examples = append(examples, model.Example{
			Text:        ex.Text,
			Phonetic:    ex.Phonetic,
			Translation: ex.Translation,
		})
	}
	var imageRef *string
	if e.ImageRef != "" {
		ref := e.ImageRef
		imageRef = &ref
	}
	return model.Entry{
		ID:               e.ID,
		SchemaVersion:    model.SchemaVersionCurrent,
		SourceTerm:       e.SourceTerm,
		NormTerm:         NormalizeTerm(e.SourceTerm),
		SourceLang:       e.SourceLang,
		TargetLang:       e.TargetLang,
		TargetTerm:       e.TargetTerm,
		Phonetic:         e.Phonetic,
		NativeDefinition: e.NativeDefinition,
		Examples:         examples,
		UsageNote:        e.UsageNote,
		ImageRef:         imageRef,
		CreatedAt:        e.CreatedAt,
	}
}

func fromModel(r model.Entry) DictEntry {
	examples := make([]oracle.Example, 0, len(r.Examples))
	for _, ex := range r.Examples {
		examples = append(examples, oracle.Example{
			Text:        ex.Text,
			Phonetic:    ex.Phonetic,
			Translation: ex.Translation,
		})
	}
	var imageRef string
	if r.ImageRef != nil {
		imageRef = *r.ImageRef
	}
	return DictEntry{
		ID:               r.ID,
		SourceTerm:       r.SourceTerm,
		SourceLang:       r.SourceLang,
		TargetLang:       r.TargetLang,
		TargetTerm:       r.TargetTerm,
		Phonetic:         r.Phonetic,
		NativeDefinition: r.NativeDefinition,
		Examples:         examples,
		UsageNote:        r.UsageNote,
		ImageRef:         imageRef,
		CreatedAt:        r.CreatedAt,
	}
}
