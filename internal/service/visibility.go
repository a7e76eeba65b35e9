package service

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shenikar/resqalert/internal/models"
)

// VisibleReports оставляет сообщения, видимые роли, и сортирует их от новых к старым.
// SA видит все. Остальные роли видят сообщение, если роль входит в его набор flag.
// Сообщения без времени идут в конце. Исходный срез не изменяется.
func VisibleReports(all []*models.Report, role models.Role) []*models.Report {
	visible := make([]*models.Report, 0, len(all))
	for _, r := range all {
		if r == nil {
			continue
		}
		if canView(r, role) {
			visible = append(visible, r)
		}
	}

	sort.SliceStable(visible, func(i, j int) bool {
		ti, tj := visible[i].Timestamp, visible[j].Timestamp
		switch {
		case ti == nil:
			return false
		case tj == nil:
			return true
		}
		return ti.After(*tj)
	})
	return visible
}

// canView - может ли роль видеть конкретное сообщение
func canView(r *models.Report, role models.Role) bool {
	return role.IsSuperAdmin() || r.Flags.Contains(role)
}

// MergeLatestDetails присоединяет к каждому запросу последнюю по времени запись
// RequestDetail с тем же incident_id
func MergeLatestDetails(requests []*models.HandoffRequest, details []*models.RequestDetail) []*models.HandoffRequest {
	latest := make(map[uuid.UUID]*models.RequestDetail, len(details))
	for _, d := range details {
		if d == nil {
			continue
		}
		if cur, ok := latest[d.IncidentID]; !ok || d.Timestamp.After(cur.Timestamp) {
			latest[d.IncidentID] = d
		}
	}

	for _, req := range requests {
		if d, ok := latest[req.IncidentID]; ok {
			req.Approval = d
		}
	}
	return requests
}
