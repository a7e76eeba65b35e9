package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/resqalert/internal/models"
	"github.com/shenikar/resqalert/internal/service"
)

const requestColumns = `id, incident_id, from_role, to_role, status, created_at`

type RequestRepository struct {
	db *pgxpool.Pool
}

func NewRequestRepository(db *pgxpool.Pool) service.RequestRepository {
	return &RequestRepository{db: db}
}

func scanRequest(row pgx.Row) (*models.HandoffRequest, error) {
	request := &models.HandoffRequest{}
	var fromRole, toRole, status string
	err := row.Scan(
		&request.ID,
		&request.IncidentID,
		&fromRole,
		&toRole,
		&status,
		&request.Timestamp,
	)
	if err != nil {
		return nil, err
	}
	request.FromRole = models.Role(fromRole)
	request.ToRole = models.Role(toRole)
	request.Status = models.RequestStatus(status)
	return request, nil
}

// Create сохраняет новый запрос на передачу инцидента
func (r *RequestRepository) Create(ctx context.Context, request *models.HandoffRequest) error {
	query := `
		INSERT INTO handoff_requests (incident_id, from_role, to_role, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id;
	`
	err := r.db.QueryRow(ctx, query,
		request.IncidentID,
		string(request.FromRole),
		string(request.ToRole),
		string(request.Status),
		request.Timestamp,
	).Scan(&request.ID)
	if err != nil {
		return fmt.Errorf("failed to create handoff request: %w", err)
	}
	return nil
}

func (r *RequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.HandoffRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM handoff_requests WHERE id = $1;`
	request, err := scanRequest(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("handoff request with id %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get handoff request by id: %w", err)
	}
	return request, nil
}

// ListByRole возвращает запросы, где роль - отправитель или получатель; пустая роль - все
func (r *RequestRepository) ListByRole(ctx context.Context, role models.Role) ([]*models.HandoffRequest, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM handoff_requests
		WHERE $1 = '' OR from_role = $1 OR to_role = $1
		ORDER BY created_at DESC;
	`
	rows, err := r.db.Query(ctx, query, string(role))
	if err != nil {
		return nil, fmt.Errorf("failed to list handoff requests: %w", err)
	}
	defer rows.Close()

	requests := make([]*models.HandoffRequest, 0)
	for rows.Next() {
		request, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan handoff request row: %w", err)
		}
		requests = append(requests, request)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return requests, nil
}

// ListDetails возвращает все подробности одобрения по набору инцидентов
func (r *RequestRepository) ListDetails(ctx context.Context, incidentIDs []uuid.UUID) ([]*models.RequestDetail, error) {
	if len(incidentIDs) == 0 {
		return []*models.RequestDetail{}, nil
	}
	ids := make([]string, len(incidentIDs))
	for i, id := range incidentIDs {
		ids[i] = id.String()
	}

	query := `
		SELECT id, request_id, incident_id, from_role, to_role, status,
			who_involved, people_count, details, notes, created_at
		FROM request_details
		WHERE incident_id = ANY($1::uuid[])
		ORDER BY created_at DESC;
	`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list request details: %w", err)
	}
	defer rows.Close()

	details := make([]*models.RequestDetail, 0)
	for rows.Next() {
		d := &models.RequestDetail{}
		var fromRole, toRole, status string
		err := rows.Scan(
			&d.ID,
			&d.RequestID,
			&d.IncidentID,
			&fromRole,
			&toRole,
			&status,
			&d.WhoInvolved,
			&d.PeopleCount,
			&d.Details,
			&d.Notes,
			&d.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan request detail row: %w", err)
		}
		d.FromRole = models.Role(fromRole)
		d.ToRole = models.Role(toRole)
		d.Status = models.RequestStatus(status)
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return details, nil
}

// UpdateStatus меняет статус, только если текущий статус входит в from
func (r *RequestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from []models.RequestStatus, to models.RequestStatus) (*models.HandoffRequest, error) {
	query := `
		UPDATE handoff_requests SET status = $1
		WHERE id = $2 AND status = ANY($3)
		RETURNING ` + requestColumns + `;`
	request, err := scanRequest(r.db.QueryRow(ctx, query, string(to), id, statusStrings(from)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.missingOrConflict(ctx, r.db, id)
		}
		return nil, fmt.Errorf("failed to update handoff request status: %w", err)
	}
	return request, nil
}

// Approve переводит запрос в Approved и сохраняет подробности в одной транзакции
func (r *RequestRepository) Approve(ctx context.Context, id uuid.UUID, detail *models.RequestDetail) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin approve transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	open := statusStrings([]models.RequestStatus{models.RequestPending, models.RequestDuring})
	cmdTag, err := tx.Exec(ctx,
		`UPDATE handoff_requests SET status = $1 WHERE id = $2 AND status = ANY($3);`,
		string(models.RequestApproved), id, open,
	)
	if err != nil {
		return fmt.Errorf("failed to approve handoff request: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return r.missingOrConflict(ctx, tx, id)
	}

	query := `
		INSERT INTO request_details (request_id, incident_id, from_role, to_role, status,
			who_involved, people_count, details, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id;
	`
	err = tx.QueryRow(ctx, query,
		detail.RequestID,
		detail.IncidentID,
		string(detail.FromRole),
		string(detail.ToRole),
		string(detail.Status),
		detail.WhoInvolved,
		detail.PeopleCount,
		detail.Details,
		detail.Notes,
		detail.Timestamp,
	).Scan(&detail.ID)
	if err != nil {
		return fmt.Errorf("failed to save request detail: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit approval: %w", err)
	}
	return nil
}

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// missingOrConflict различает отсутствующий запрос и запрос в неподходящем статусе
func (r *RequestRepository) missingOrConflict(ctx context.Context, q querier, id uuid.UUID) error {
	var status string
	err := q.QueryRow(ctx, `SELECT status FROM handoff_requests WHERE id = $1;`, id).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("handoff request with id %s: %w", id, models.ErrNotFound)
		}
		return fmt.Errorf("failed to check handoff request: %w", err)
	}
	return fmt.Errorf("handoff request %s is %s: %w", id, status, models.ErrConflict)
}

func statusStrings(statuses []models.RequestStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
