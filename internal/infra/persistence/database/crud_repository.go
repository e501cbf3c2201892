package database

import (
	"context"

	"postboard/internal/domain/repository"
	"postboard/internal/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// column describes how an API field is stored.
type column struct {
	name   string
	isUUID bool
}

// crudRepository is the gorm implementation of repository.CrudRepository shared by every
// owned resource. E is the domain entity and M its table model.
type crudRepository[E any, M any] struct {
	db       *gorm.DB
	resource string
	columns  map[string]column
	toDomain func(*M) *E
	toModel  func(*E) *M
}

// Find returns records matching every filter field, oldest first.
func (repo *crudRepository[E, M]) Find(ctx context.Context, filter repository.Fields) ([]*E, error) {
	conditions, err := repo.resolve(filter)
	if err != nil {
		return nil, err
	}

	query := repo.db.WithContext(ctx).Model(new(M))
	for name, value := range conditions {
		query = query.Where(clause.Eq{Column: clause.Column{Name: name}, Value: value})
	}

	var records []*M
	if err := query.Order("created_at, id").Find(&records).Error; err != nil {
		return nil, errors.Wrapf(err, "failed to find %s", repo.resource)
	}

	result := make([]*E, 0, len(records))
	for _, record := range records {
		result = append(result, repo.toDomain(record))
	}

	return result, nil
}

func (repo *crudRepository[E, M]) FindByID(ctx context.Context, id uuid.UUID) (*E, error) {
	record, err := repo.first(repo.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}

	return repo.toDomain(record), nil
}

// Create inserts the record and writes the stored state, including a generated ID, back into it.
func (repo *crudRepository[E, M]) Create(ctx context.Context, record *E) error {
	recordM := repo.toModel(record)
	if err := repo.db.WithContext(ctx).Create(recordM).Error; err != nil {
		return errors.Wrapf(err, "failed to create %s", repo.resource)
	}
	*record = *repo.toDomain(recordM)

	return nil
}

func (repo *crudRepository[E, M]) FindByIDAndUpdate(ctx context.Context, id uuid.UUID, changes repository.Fields) (*E, error) {
	updates, err := repo.resolve(changes)
	if err != nil {
		return nil, err
	}

	var updated *M
	err = repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record, err := repo.first(tx, id)
		if err != nil {
			return err
		}
		if len(updates) > 0 {
			if err := tx.Model(record).Updates(updates).Error; err != nil {
				return errors.Wrapf(err, "failed to update %s", repo.resource)
			}
			if record, err = repo.first(tx, id); err != nil {
				return err
			}
		}
		updated = record

		return nil
	})
	if err != nil {
		return nil, err
	}

	return repo.toDomain(updated), nil
}

func (repo *crudRepository[E, M]) FindByIDAndDelete(ctx context.Context, id uuid.UUID) (*E, error) {
	var deleted *M
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record, err := repo.first(tx, id)
		if err != nil {
			return err
		}
		if err := tx.Delete(record).Error; err != nil {
			return errors.Wrapf(err, "failed to delete %s", repo.resource)
		}
		deleted = record

		return nil
	})
	if err != nil {
		return nil, err
	}

	return repo.toDomain(deleted), nil
}

func (repo *crudRepository[E, M]) first(db *gorm.DB, id uuid.UUID) (*M, error) {
	record := new(M)
	if err := db.Where("id = ?", id).First(record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRecordNotFound
		}

		return nil, errors.Wrapf(err, "failed to find %s by id", repo.resource)
	}

	return record, nil
}

// resolve maps API field names to column names. ID fields are parsed; every other column is text,
// so null and non-string values are rejected before they reach the database.
func (repo *crudRepository[E, M]) resolve(fields repository.Fields) (map[string]any, error) {
	resolved := make(map[string]any, len(fields))
	for field, value := range fields {
		col, ok := repo.columns[field]
		if !ok {
			return nil, errors.Wrapf(repository.ErrUnknownField, "%s %q", repo.resource, field)
		}
		if col.isUUID {
			id, err := toUUID(value)
			if err != nil {
				return nil, errors.Wrapf(repository.ErrInvalidFieldValue, "%s %q", repo.resource, field)
			}
			value = id
		} else if _, isText := value.(string); !isText {
			return nil, errors.Wrapf(repository.ErrInvalidFieldValue, "%s %q must be a string", repo.resource, field)
		}
		resolved[col.name] = value
	}

	return resolved, nil
}

func toUUID(value any) (uuid.UUID, error) {
	switch v := value.(type) {
	case uuid.UUID:
		return v, nil
	case string:
		return uuid.Parse(v)
	default:
		return uuid.Nil, errors.Errorf("unsupported id type %T", value)
	}
}
