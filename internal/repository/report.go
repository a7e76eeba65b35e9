package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/resqalert/internal/models"
	"github.com/shenikar/resqalert/internal/service"
)

const reportCacheTTL = 5 * time.Minute

const reportColumns = `
	id,
	flags,
	status,
	latitude,
	longitude,
	reported_at,
	who_involved,
	people_count,
	details,
	notes,
	place,
	media,
	phone_number,
	accident_type,
	version,
	notified_at,
	created_at,
	updated_at`

type ReportRepository struct {
	db          *pgxpool.Pool
	redisClient *redis.Client
}

func NewReportRepository(db *pgxpool.Pool, redisClient *redis.Client) service.ReportRepository {
	return &ReportRepository{
		db:          db,
		redisClient: redisClient,
	}
}

func scanReport(row pgx.Row) (*models.Report, error) {
	report := &models.Report{}
	var flags []string
	var status string
	err := row.Scan(
		&report.ID,
		&flags,
		&status,
		&report.Latitude,
		&report.Longitude,
		&report.Timestamp,
		&report.WhoInvolved,
		&report.PeopleCount,
		&report.Details,
		&report.Notes,
		&report.Place,
		&report.Media,
		&report.PhoneNumber,
		&report.AccidentType,
		&report.Version,
		&report.NotifiedAt,
		&report.CreatedAt,
		&report.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	report.Flags = models.NormalizeFlags(flags)
	report.Status = models.ReportStatus(status)
	return report, nil
}

func collectReports(rows pgx.Rows) ([]*models.Report, error) {
	defer rows.Close()
	reports := make([]*models.Report, 0)
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return reports, nil
}

// Create сохраняет новое сообщение об инциденте
func (r *ReportRepository) Create(ctx context.Context, report *models.Report) error {
	query := `
		INSERT INTO reports (flags, status, latitude, longitude, reported_at, who_involved,
			people_count, details, notes, place, media, phone_number, accident_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, version, created_at, updated_at;
	`
	err := r.db.QueryRow(ctx, query,
		report.Flags.Strings(),
		string(report.Status),
		report.Latitude,
		report.Longitude,
		report.Timestamp,
		report.WhoInvolved,
		report.PeopleCount,
		report.Details,
		report.Notes,
		report.Place,
		nonNil(report.Media),
		report.PhoneNumber,
		nonNil(report.AccidentType),
	).Scan(&report.ID, &report.Version, &report.CreatedAt, &report.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	return nil
}

// GetByID возвращает сообщение по UUID
func (r *ReportRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE id = $1;`
	report, err := scanReport(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("report with id %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get report by id: %w", err)
	}
	return report, nil
}

// List возвращает все сообщения; фильтрация по ролям выполняется в сервисе
func (r *ReportRepository) List(ctx context.Context) ([]*models.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports ORDER BY reported_at DESC NULLS LAST, created_at DESC;`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return collectReports(rows)
}

// UpdateStatus меняет статус и увеличивает версию. При expectedVersion > 0
// запись выполняется, только если версия совпадает. Смена статуса и запись
// в журнал идут в одной транзакции.
func (r *ReportRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ReportStatus, expectedVersion int, changedBy string) (*models.Report, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin status transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var current string
	var version int
	err = tx.QueryRow(ctx, `SELECT status, version FROM reports WHERE id = $1 FOR UPDATE;`, id).Scan(&current, &version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("report with id %s not found for status update: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to lock report: %w", err)
	}
	if expectedVersion > 0 && version != expectedVersion {
		return nil, fmt.Errorf("report %s has version %d, expected %d: %w", id, version, expectedVersion, models.ErrConflict)
	}

	query := `
		UPDATE reports SET
			status = $1,
			version = version + 1,
			updated_at = NOW()
		WHERE id = $2
		RETURNING ` + reportColumns + `;`
	report, err := scanReport(tx.QueryRow(ctx, query, string(status), id))
	if err != nil {
		return nil, fmt.Errorf("failed to update report status: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO report_status_history (report_id, from_status, to_status, changed_by)
		VALUES ($1, $2, $3, $4);`,
		id, current, string(status), changedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to record status change: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit status update: %w", err)
	}
	return report, nil
}

// ListStatusHistory возвращает журнал смены статусов сообщения, старые записи первыми
func (r *ReportRepository) ListStatusHistory(ctx context.Context, id uuid.UUID) ([]*models.StatusChange, error) {
	query := `
		SELECT report_id, from_status, to_status, changed_by, changed_at
		FROM report_status_history
		WHERE report_id = $1
		ORDER BY changed_at ASC, id ASC;
	`
	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list status history: %w", err)
	}
	defer rows.Close()

	changes := make([]*models.StatusChange, 0)
	for rows.Next() {
		var from, to string
		change := &models.StatusChange{}
		if err := rows.Scan(&change.ReportID, &from, &to, &change.ChangedBy, &change.ChangedAt); err != nil {
			return nil, fmt.Errorf("failed to scan status history row: %w", err)
		}
		change.FromStatus = models.ReportStatus(from)
		change.ToStatus = models.ReportStatus(to)
		changes = append(changes, change)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return changes, nil
}

// UpdatePlace сохраняет определенный населенный пункт
func (r *ReportRepository) UpdatePlace(ctx context.Context, id uuid.UUID, place string) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE reports SET place = $1, updated_at = NOW() WHERE id = $2;`, place, id)
	if err != nil {
		return fmt.Errorf("failed to update report place: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("report with id %s not found for place update: %w", id, models.ErrNotFound)
	}
	return nil
}

// ListUnnotified возвращает сообщения, о которых еще не отправлено оповещение
func (r *ReportRepository) ListUnnotified(ctx context.Context, limit int) ([]*models.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE notified_at IS NULL ORDER BY created_at ASC LIMIT $1;`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list unnotified reports: %w", err)
	}
	return collectReports(rows)
}

func (r *ReportRepository) MarkNotified(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `UPDATE reports SET notified_at = NOW() WHERE id = $1 AND notified_at IS NULL;`, id)
	if err != nil {
		return fmt.Errorf("failed to mark report notified: %w", err)
	}
	return nil
}

// BlockNumber заносит номер в список заблокированных; повторная блокировка не создает дубликат
func (r *ReportRepository) BlockNumber(ctx context.Context, blocked *models.BlockedNumber) error {
	query := `
		INSERT INTO blocked_numbers (report_id, phone_number, blocked_by, blocked_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (phone_number) DO UPDATE SET phone_number = EXCLUDED.phone_number
		RETURNING id, report_id, blocked_by, blocked_at;
	`
	var blockedBy string
	err := r.db.QueryRow(ctx, query,
		blocked.ReportID,
		blocked.PhoneNumber,
		string(blocked.BlockedBy),
		blocked.Timestamp,
	).Scan(&blocked.ID, &blocked.ReportID, &blockedBy, &blocked.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to block number: %w", err)
	}
	blocked.BlockedBy = models.Role(blockedBy)
	return nil
}

func (r *ReportRepository) ListBlocked(ctx context.Context) ([]*models.BlockedNumber, error) {
	query := `
		SELECT id, report_id, phone_number, blocked_by, blocked_at
		FROM blocked_numbers
		ORDER BY blocked_at DESC;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list blocked numbers: %w", err)
	}
	defer rows.Close()

	blocked := make([]*models.BlockedNumber, 0)
	for rows.Next() {
		b := &models.BlockedNumber{}
		var blockedBy string
		if err := rows.Scan(&b.ID, &b.ReportID, &b.PhoneNumber, &blockedBy, &b.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan blocked number row: %w", err)
		}
		b.BlockedBy = models.Role(blockedBy)
		blocked = append(blocked, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return blocked, nil
}

func (r *ReportRepository) CountBlocked(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM blocked_numbers;`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count blocked numbers: %w", err)
	}
	return count, nil
}

// GetReportFromCache пытается получить сообщение из Redis. Промах - (nil, nil).
func (r *ReportRepository) GetReportFromCache(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	val, err := r.redisClient.Get(ctx, reportCacheKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get report from cache: %w", err)
	}

	report := &models.Report{}
	if err := json.Unmarshal(val, report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report from cache: %w", err)
	}
	return report, nil
}

// setIfNotOlder пишет сообщение в кэш, только если там не лежит более новая версия
var setIfNotOlder = redis.NewScript(`
local current = redis.call('GET', KEYS[1])
if current then
	local ok, decoded = pcall(cjson.decode, current)
	if ok and decoded['version'] and tonumber(decoded['version']) > tonumber(ARGV[2]) then
		return 0
	end
end
redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[3])
return 1
`)

// SetReportCache кладет сообщение в кэш. Чтение, начатое до смены статуса,
// не может затереть уже записанную более новую версию.
func (r *ReportRepository) SetReportCache(ctx context.Context, report *models.Report) error {
	val, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report for cache: %w", err)
	}
	err = setIfNotOlder.Run(ctx, r.redisClient,
		[]string{reportCacheKey(report.ID)},
		val, report.Version, reportCacheTTL.Milliseconds(),
	).Err()
	if err != nil {
		return fmt.Errorf("failed to set report in cache: %w", err)
	}
	return nil
}

func (r *ReportRepository) InvalidateReportCache(ctx context.Context, id uuid.UUID) error {
	if err := r.redisClient.Del(ctx, reportCacheKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate report cache: %w", err)
	}
	return nil
}

func reportCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("report:%s", id.String())
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
