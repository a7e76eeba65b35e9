package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/resqalert/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestVisibleReports(t *testing.T) {
	base := time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC)
	pnp := &models.Report{ID: uuid.New(), Flags: models.Flags{models.RolePNP}, Timestamp: ptr(base)}
	bfp := &models.Report{ID: uuid.New(), Flags: models.Flags{models.RoleBFP}, Timestamp: ptr(base.Add(time.Hour))}
	both := &models.Report{ID: uuid.New(), Flags: models.Flags{models.RoleBFP, models.RolePNP}, Timestamp: ptr(base.Add(2 * time.Hour))}
	undated := &models.Report{ID: uuid.New(), Flags: models.Flags{models.RolePNP}}
	all := []*models.Report{undated, pnp, nil, bfp, both}

	testCases := []struct {
		name string
		role models.Role
		want []*models.Report
	}{
		{"super admin sees everything newest first", models.RoleSuperAdmin, []*models.Report{both, bfp, pnp, undated}},
		{"PNP sees membership matches", models.RolePNP, []*models.Report{both, pnp, undated}},
		{"BFP sees multi-flag report", models.RoleBFP, []*models.Report{both, bfp}},
		{"MDRRMO sees nothing", models.RoleMDRRMO, []*models.Report{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, VisibleReports(all, tc.role))
		})
	}

	assert.Equal(t, undated, all[0], "input slice must not be reordered")
}

func TestMergeLatestDetails(t *testing.T) {
	incident := uuid.New()
	other := uuid.New()
	t0 := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	r1 := &models.HandoffRequest{ID: uuid.New(), IncidentID: incident}
	r2 := &models.HandoffRequest{ID: uuid.New(), IncidentID: incident}
	r3 := &models.HandoffRequest{ID: uuid.New(), IncidentID: other}

	details := []*models.RequestDetail{
		{IncidentID: incident, Notes: "old", Timestamp: t0},
		nil,
		{IncidentID: incident, Notes: "new", Timestamp: t0.Add(time.Minute)},
		{IncidentID: incident, Notes: "middle", Timestamp: t0.Add(time.Second)},
	}

	MergeLatestDetails([]*models.HandoffRequest{r1, r2, r3}, details)

	assert.Equal(t, "new", r1.Approval.Notes)
	assert.Equal(t, "new", r2.Approval.Notes)
	assert.Nil(t, r3.Approval)
}
