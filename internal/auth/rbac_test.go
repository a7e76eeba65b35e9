package auth

import (
	"testing"

	"github.com/shenikar/resqalert/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRBAC_Allowed(t *testing.T) {
	rbac, err := NewRBAC()
	require.NoError(t, err)

	testCases := []struct {
		name string
		role models.Role
		obj  string
		act  string
		want bool
	}{
		{"SA manages feedback", models.RoleSuperAdmin, ObjFeedback, ActManage, true},
		{"SA reads blocklist", models.RoleSuperAdmin, ObjBlocklist, ActRead, true},
		{"PNP reads reports", models.RolePNP, ObjReports, ActRead, true},
		{"BFP writes requests", models.RoleBFP, ObjRequests, ActWrite, true},
		{"MDRRMO reads dashboard", models.RoleMDRRMO, ObjDashboard, ActRead, true},
		{"PNP submits feedback", models.RolePNP, ObjFeedback, ActWrite, true},
		{"PNP cannot read feedback", models.RolePNP, ObjFeedback, ActRead, false},
		{"BFP cannot read blocklist", models.RoleBFP, ObjBlocklist, ActRead, false},
		{"unknown role denied", models.Role("EMS"), ObjReports, ActRead, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, rbac.Allowed(tc.role, tc.obj, tc.act))
		})
	}
}
