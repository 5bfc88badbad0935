package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/noah-isme/learnroute-api/internal/observability"
	"github.com/noah-isme/learnroute-api/internal/validation"
)

const (
	// DefaultLimit is the page size used when the caller does not ask for one.
	DefaultLimit = 10
	// MaxLimit caps the page size.
	MaxLimit = 100
)

var (
	// ErrNotFound is returned when no record matches.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique index rejects a write.
	ErrDuplicate = errors.New("duplicate record")
	// ErrReferenced is returned when a foreign key rejects a delete.
	ErrReferenced = errors.New("record is referenced by another record")
	// ErrMissingReference is returned when a foreign key rejects a create or update.
	ErrMissingReference = errors.New("referenced record does not exist")
)

// SchemaError reports the fields that violate an entity's schema constraints.
type SchemaError struct {
	Fields validation.Errors
}

func (e *SchemaError) Error() string {
	return "schema violation: " + e.Fields.Error()
}

// Filter maps column names to required values. A nil value matches NULL.
type Filter map[string]interface{}

// Query describes a list request against a store.
type Query struct {
	Filter  Filter
	Search  string
	Sort    string
	Page    int
	Limit   int
	Preload []string
}

// Page is one page of results together with the totals used to build pagination metadata.
type Page[T any] struct {
	Items []T
	Total int64
	Page  int
	Limit int
	Pages int
}

// Options configure the entity specific parts of a store.
type Options struct {
	Entity        string
	SortFields    map[string]string
	DefaultSort   string
	SearchColumns []string
}

// Repository is the generic persistence contract used by the services.
type Repository[T any] interface {
	Create(ctx context.Context, entity *T) error
	FindMany(ctx context.Context, query Query) (Page[T], error)
	FindAll(ctx context.Context, query Query) ([]T, error)
	FindByID(ctx context.Context, id string, preload ...string) (T, error)
	FindOne(ctx context.Context, filter Filter, preload ...string) (T, error)
	Exists(ctx context.Context, filter Filter) (bool, error)
	Count(ctx context.Context, filter Filter) (int64, error)
	UpdateByID(ctx context.Context, id string, apply func(*T) error, preload ...string) (T, error)
	DeleteByID(ctx context.Context, id string) (T, error)
}

// Store is a GORM backed Repository. It knows nothing about relationships between entities.
type Store[T any] struct {
	db       *gorm.DB
	validate *validator.Validate
	opts     Options
	tracer   trace.Tracer
}

// NewStore constructs a store for entity type T.
func NewStore[T any](db *gorm.DB, validate *validator.Validate, opts Options) *Store[T] {
	if validate == nil {
		validate = validation.New()
	}
	if opts.Entity == "" {
		opts.Entity = "entity"
	}
	return &Store[T]{
		db:       db,
		validate: validate,
		opts:     opts,
		tracer:   otel.Tracer("github.com/noah-isme/learnroute-api/internal/repository/store"),
	}
}

func (s *Store[T]) Create(ctx context.Context, entity *T) (err error) {
	ctx, finish := s.track(ctx, "create")
	defer func() { finish(err) }()

	if err = s.check(entity); err != nil {
		return err
	}
	return translateWriteError(s.db.WithContext(ctx).Omit(clause.Associations).Create(entity).Error)
}

func (s *Store[T]) FindMany(ctx context.Context, q Query) (page Page[T], err error) {
	ctx, finish := s.track(ctx, "find_many")
	defer func() { finish(err) }()

	pageNumber, limit := NormalizePage(q.Page, q.Limit)
	query := s.filtered(ctx, q.Filter, q.Search)

	var total int64
	if err = query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return Page[T]{}, translateError(err)
	}

	items := make([]T, 0)
	query = s.sorted(s.preloaded(query, q.Preload), q.Sort)
	if err = query.Offset((pageNumber - 1) * limit).Limit(limit).Find(&items).Error; err != nil {
		return Page[T]{}, translateError(err)
	}

	return Page[T]{
		Items: items,
		Total: total,
		Page:  pageNumber,
		Limit: limit,
		Pages: PageCount(total, limit),
	}, nil
}

func (s *Store[T]) FindAll(ctx context.Context, q Query) (items []T, err error) {
	ctx, finish := s.track(ctx, "find_all")
	defer func() { finish(err) }()

	items = make([]T, 0)
	query := s.sorted(s.preloaded(s.filtered(ctx, q.Filter, q.Search), q.Preload), q.Sort)
	if err = query.Find(&items).Error; err != nil {
		return nil, translateError(err)
	}
	return items, nil
}

func (s *Store[T]) FindByID(ctx context.Context, id string, preload ...string) (entity T, err error) {
	ctx, finish := s.track(ctx, "find_by_id")
	defer func() { finish(err) }()

	query := s.preloaded(s.db.WithContext(ctx).Model(new(T)), preload)
	if err = query.Where("id = ?", id).Take(&entity).Error; err != nil {
		return entity, translateError(err)
	}
	return entity, nil
}

func (s *Store[T]) FindOne(ctx context.Context, filter Filter, preload ...string) (entity T, err error) {
	ctx, finish := s.track(ctx, "find_one")
	defer func() { finish(err) }()

	query := s.preloaded(s.filtered(ctx, filter, ""), preload)
	if err = query.Order("id").Take(&entity).Error; err != nil {
		return entity, translateError(err)
	}
	return entity, nil
}

func (s *Store[T]) Exists(ctx context.Context, filter Filter) (bool, error) {
	total, err := s.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return total > 0, nil
}

func (s *Store[T]) Count(ctx context.Context, filter Filter) (total int64, err error) {
	ctx, finish := s.track(ctx, "count")
	defer func() { finish(err) }()

	if err = s.filtered(ctx, filter, "").Count(&total).Error; err != nil {
		return 0, translateError(err)
	}
	return total, nil
}

// UpdateByID loads the record, lets apply mutate it, re-checks the schema and saves it.
// Errors returned by apply are passed through unchanged.
func (s *Store[T]) UpdateByID(ctx context.Context, id string, apply func(*T) error, preload ...string) (entity T, err error) {
	ctx, finish := s.track(ctx, "update")
	defer func() { finish(err) }()

	var applyErr error
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current T
		if err := tx.Where("id = ?", id).Take(&current).Error; err != nil {
			return err
		}
		if applyErr = apply(&current); applyErr != nil {
			return applyErr
		}
		if err := s.check(&current); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Save(&current).Error
	})
	if applyErr != nil {
		return entity, applyErr
	}
	if err != nil {
		return entity, translateWriteError(err)
	}
	return s.FindByID(ctx, id, preload...)
}

// DeleteByID removes the record and returns it as it was before removal.
func (s *Store[T]) DeleteByID(ctx context.Context, id string) (entity T, err error) {
	ctx, finish := s.track(ctx, "delete")
	defer func() { finish(err) }()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).Take(&entity).Error; err != nil {
			return err
		}
		return tx.Delete(&entity).Error
	})
	if err != nil {
		var zero T
		return zero, translateError(err)
	}
	return entity, nil
}

func (s *Store[T]) check(entity *T) error {
	if err := s.validate.Struct(entity); err != nil {
		if fields := validation.FromValidator(err); len(fields) > 0 {
			return &SchemaError{Fields: fields}
		}
		return err
	}
	return nil
}

func (s *Store[T]) filtered(ctx context.Context, filter Filter, search string) *gorm.DB {
	query := s.db.WithContext(ctx).Model(new(T))

	columns := make([]string, 0, len(filter))
	for column := range filter {
		columns = append(columns, column)
	}
	sort.Strings(columns)
	for _, column := range columns {
		query = query.Where(clause.Eq{Column: clause.Column{Name: column}, Value: filter[column]})
	}

	term := strings.ToLower(strings.TrimSpace(search))
	if term != "" && len(s.opts.SearchColumns) > 0 {
		conditions := make([]string, 0, len(s.opts.SearchColumns))
		args := make([]interface{}, 0, len(s.opts.SearchColumns))
		for _, column := range s.opts.SearchColumns {
			conditions = append(conditions, fmt.Sprintf("LOWER(%s) LIKE ?", column))
			args = append(args, "%"+term+"%")
		}
		query = query.Where(strings.Join(conditions, " OR "), args...)
	}
	return query
}

func (s *Store[T]) preloaded(query *gorm.DB, relations []string) *gorm.DB {
	for _, relation := range relations {
		query = query.Preload(relation)
	}
	return query
}

func (s *Store[T]) sorted(query *gorm.DB, requested string) *gorm.DB {
	column, desc, ok := s.sortColumn(requested)
	if !ok {
		column, desc, ok = s.sortColumn(s.opts.DefaultSort)
	}
	if ok && column != "id" {
		query = query.Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: desc})
	}
	return query.Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: ok && column == "id" && desc})
}

func (s *Store[T]) sortColumn(field string) (string, bool, bool) {
	field = strings.TrimSpace(field)
	desc := strings.HasPrefix(field, "-")
	field = strings.TrimPrefix(field, "-")
	if field == "" {
		return "", false, false
	}
	if field == "id" {
		return "id", desc, true
	}
	column, ok := s.opts.SortFields[field]
	return column, desc, ok
}

func (s *Store[T]) track(ctx context.Context, operation string) (context.Context, func(error)) {
	ctx, span := s.tracer.Start(ctx, s.opts.Entity+"."+operation)
	span.SetAttributes(attribute.String("store.entity", s.opts.Entity))
	start := time.Now()

	return ctx, func(err error) {
		outcome := "ok"
		switch {
		case err == nil:
		case errors.Is(err, ErrNotFound):
			outcome = "not_found"
		default:
			outcome = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, operation+"_failed")
		}
		observability.StoreLatency().WithLabelValues(s.opts.Entity, operation, outcome).Observe(time.Since(start).Seconds())
		span.End()
	}
}

// NormalizePage applies the default and maximum page size and clamps the page to 1.
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

// PageCount returns ceil(total/limit).
func PageCount(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// translateWriteError is translateError for inserts and updates, where a foreign key
// failure means the row points at something that is gone.
func translateWriteError(err error) error {
	translated := translateError(err)
	if errors.Is(translated, ErrReferenced) {
		return fmt.Errorf("%w: %v", ErrMissingReference, err)
	}
	return translated
}

func translateError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %v", ErrReferenced, err)
	}

	var schemaErr *SchemaError
	if errors.As(err, &schemaErr) {
		return err
	}

	message := strings.ToLower(err.Error())
	switch {
	case strings.Contains(message, "unique constraint"), strings.Contains(message, "duplicate key"):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	case strings.Contains(message, "foreign key constraint"):
		return fmt.Errorf("%w: %v", ErrReferenced, err)
	}
	return err
}
