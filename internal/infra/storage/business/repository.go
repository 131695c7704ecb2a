package business

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/BookEasy/internal/domain"
	"github.com/m04kA/BookEasy/pkg/dbmetrics"
	"github.com/m04kA/BookEasy/pkg/psqlbuilder"
)

const (
	tableBusinesses = "businesses"
	tableServices   = "business_services"

	uniqueViolation = "23505"
)

var businessColumns = []string{
	"id",
	"name",
	"type",
	"address",
	"area",
	"city",
	"zip_code",
	"description",
	"rating",
	"review_count",
	"featured",
	"images",
	"hours",
	"phone",
	"email",
	"owner_name",
	"password_hash",
	"created_at",
	"updated_at",
}

var serviceColumns = []string{
	"business_id",
	"id",
	"name",
	"description",
	"duration_minutes",
	"price",
}

// Repository репозиторий каталога бизнесов в PostgreSQL.
// Услуги хранятся в отдельной таблице и подгружаются вторым запросом.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бизнесов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет бизнес вместе с услугами. Вызывать внутри транзакции.
func (r *Repository) Create(ctx context.Context, b *domain.Business) (*domain.Business, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	hours, err := encodeHours(b.Hours)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - %v", ErrEncode, err)
	}

	query, args, err := psqlbuilder.Insert(tableBusinesses).
		Columns(
			"name",
			"type",
			"address",
			"area",
			"city",
			"zip_code",
			"description",
			"rating",
			"review_count",
			"featured",
			"images",
			"hours",
			"phone",
			"email",
			"owner_name",
			"password_hash",
			"created_at",
		).
		Values(
			b.Name,
			b.Type,
			b.Location.Address,
			b.Location.Area,
			b.Location.City,
			b.Location.ZipCode,
			b.Description,
			b.Rating,
			b.ReviewCount,
			b.Featured,
			pq.Array(b.Images),
			hours,
			b.Phone,
			b.Email,
			b.OwnerName,
			b.PasswordHash,
			b.CreatedAt,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&b.ID, &createdAt, &updatedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	if err := r.insertServices(ctx, executor, b.ID, b.Services); err != nil {
		return nil, err
	}
	for i := range b.Services {
		b.Services[i].BusinessID = b.ID
	}

	return b, nil
}

// GetByID получает бизнес с услугами
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Business, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, "GetByID")
}

// GetByEmail получает бизнес по email владельца (без учёта регистра)
func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.Business, error) {
	return r.getOne(ctx, squirrel.Expr("LOWER(email) = LOWER(?)", email), "GetByEmail")
}

// List возвращает все бизнесы в порядке создания
func (r *Repository) List(ctx context.Context) ([]*domain.Business, error) {
	return r.list(ctx, psqlbuilder.Select(businessColumns...).From(tableBusinesses), "List")
}

// Search фильтрует по тексту (имя, описание, названия услуг), локации и категории.
// Сортировку и ценовой диапазон применяет сервисный слой.
func (r *Repository) Search(ctx context.Context, criteria domain.SearchCriteria) ([]*domain.Business, error) {
	selectBuilder := psqlbuilder.Select(businessColumns...).From(tableBusinesses)

	if q := strings.TrimSpace(criteria.Query); q != "" {
		pattern := likePattern(q)
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"description": pattern},
			squirrel.Expr(
				"EXISTS (SELECT 1 FROM "+tableServices+" s WHERE s.business_id = "+tableBusinesses+".id AND s.name ILIKE ?)",
				pattern,
			),
		})
	}

	if l := strings.TrimSpace(criteria.Location); l != "" {
		pattern := likePattern(l)
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.ILike{"city": pattern},
			squirrel.ILike{"area": pattern},
		})
	}

	if criteria.Category != "" && criteria.Category != domain.CategoryAll {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"type": criteria.Category})
	}

	return r.list(ctx, selectBuilder, "Search")
}

// ListFeatured возвращает первые limit отмеченных бизнесов
func (r *Repository) ListFeatured(ctx context.Context, limit int) ([]*domain.Business, error) {
	selectBuilder := psqlbuilder.Select(businessColumns...).
		From(tableBusinesses).
		Where(squirrel.Eq{"featured": true})
	if limit > 0 {
		selectBuilder = selectBuilder.Limit(uint64(limit))
	}
	return r.list(ctx, selectBuilder, "ListFeatured")
}

// ListByType возвращает бизнесы одной категории
func (r *Repository) ListByType(ctx context.Context, businessType domain.BusinessType) ([]*domain.Business, error) {
	selectBuilder := psqlbuilder.Select(businessColumns...).
		From(tableBusinesses).
		Where(squirrel.Eq{"type": businessType})
	return r.list(ctx, selectBuilder, "ListByType")
}

// Update сохраняет поля бизнеса (без услуг). ID не меняется.
func (r *Repository) Update(ctx context.Context, b *domain.Business) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	hours, err := encodeHours(b.Hours)
	if err != nil {
		return fmt.Errorf("%w: Update - %v", ErrEncode, err)
	}

	query, args, err := psqlbuilder.Update(tableBusinesses).
		Set("name", b.Name).
		Set("type", b.Type).
		Set("address", b.Location.Address).
		Set("area", b.Location.Area).
		Set("city", b.Location.City).
		Set("zip_code", b.Location.ZipCode).
		Set("description", b.Description).
		Set("rating", b.Rating).
		Set("review_count", b.ReviewCount).
		Set("featured", b.Featured).
		Set("images", pq.Array(b.Images)).
		Set("hours", hours).
		Set("phone", b.Phone).
		Set("email", b.Email).
		Set("owner_name", b.OwnerName).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": b.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return checkAffected(result, "Update")
}

// ReplaceServices заменяет список услуг бизнеса целиком. Вызывать внутри транзакции.
func (r *Repository) ReplaceServices(ctx context.Context, businessID int64, services []domain.Service) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	exists, err := r.exists(ctx, executor, businessID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrBusinessNotFound
	}

	query, args, err := psqlbuilder.Delete(tableServices).
		Where(squirrel.Eq{"business_id": businessID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceServices - build delete query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceServices - execute delete: %v", ErrExecQuery, err)
	}

	return r.insertServices(ctx, executor, businessID, services)
}

// Delete удаляет бизнес (услуги удаляются каскадно)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableBusinesses).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	return checkAffected(result, "Delete")
}

func (r *Repository) exists(ctx context.Context, executor DBExecutor, id int64) (bool, error) {
	query, args, err := psqlbuilder.Select("1").
		From(tableBusinesses).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: exists - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: exists - scan: %v", ErrScanRow, err)
	}
	return true, nil
}

func (r *Repository) insertServices(ctx context.Context, executor DBExecutor, businessID int64, services []domain.Service) error {
	if len(services) == 0 {
		return nil
	}

	insert := psqlbuilder.Insert(tableServices).
		Columns("business_id", "id", "name", "description", "duration_minutes", "price", "position")
	for i, s := range services {
		insert = insert.Values(businessID, s.ID, s.Name, s.Description, s.DurationMinutes, s.Price, i)
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("%w: insertServices - build insert query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: insertServices - execute insert: %v", ErrExecQuery, err)
	}
	return nil
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Sqlizer, op string) (*domain.Business, error) {
	list, err := r.list(ctx, psqlbuilder.Select(businessColumns...).From(tableBusinesses).Where(where), op)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, ErrBusinessNotFound
	}
	return list[0], nil
}

func (r *Repository) list(ctx context.Context, selectBuilder squirrel.SelectBuilder, op string) ([]*domain.Business, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBuilder.OrderBy("id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	businesses, err := scanBusinesses(rows)
	if err != nil {
		return nil, err
	}

	if err := r.attachServices(ctx, executor, businesses); err != nil {
		return nil, err
	}

	return businesses, nil
}

// attachServices подгружает услуги одним запросом для всех бизнесов
func (r *Repository) attachServices(ctx context.Context, executor DBExecutor, businesses []*domain.Business) error {
	if len(businesses) == 0 {
		return nil
	}

	ids := make([]int64, len(businesses))
	byID := make(map[int64]*domain.Business, len(businesses))
	for i, b := range businesses {
		ids[i] = b.ID
		b.Services = make([]domain.Service, 0)
		byID[b.ID] = b
	}

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From(tableServices).
		Where(squirrel.Eq{"business_id": ids}).
		OrderBy("business_id ASC", "position ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: attachServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: attachServices - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var s domain.Service
		if err := rows.Scan(&s.BusinessID, &s.ID, &s.Name, &s.Description, &s.DurationMinutes, &s.Price); err != nil {
			return fmt.Errorf("%w: attachServices - scan row: %v", ErrScanRow, err)
		}
		if b, ok := byID[s.BusinessID]; ok {
			b.Services = append(b.Services, s)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: attachServices - rows error: %v", ErrScanRow, err)
	}
	return nil
}

func scanBusinesses(rows *sql.Rows) ([]*domain.Business, error) {
	businesses := make([]*domain.Business, 0)

	for rows.Next() {
		var (
			b                    domain.Business
			images               pq.StringArray
			hours                []byte
			createdAt, updatedAt sql.NullTime
		)

		err := rows.Scan(
			&b.ID,
			&b.Name,
			&b.Type,
			&b.Location.Address,
			&b.Location.Area,
			&b.Location.City,
			&b.Location.ZipCode,
			&b.Description,
			&b.Rating,
			&b.ReviewCount,
			&b.Featured,
			&images,
			&hours,
			&b.Phone,
			&b.Email,
			&b.OwnerName,
			&b.PasswordHash,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBusinesses - scan row: %v", ErrScanRow, err)
		}

		b.Images = []string(images)
		if b.Images == nil {
			b.Images = []string{}
		}
		if b.Hours, err = decodeHours(hours); err != nil {
			return nil, fmt.Errorf("%w: scanBusinesses - %v", ErrEncode, err)
		}
		b.CreatedAt = createdAt.Time
		b.UpdatedAt = updatedAt.Time

		businesses = append(businesses, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBusinesses - rows error: %v", ErrScanRow, err)
	}

	return businesses, nil
}

func checkAffected(result sql.Result, op string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrBusinessNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// likePattern экранирует спецсимволы LIKE и оборачивает строку в %
func likePattern(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + replacer.Replace(s) + "%"
}
