package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouteEventName(t *testing.T) {
	tests := []struct {
		name     string
		fullPath string
		want     string
	}{
		{
			name:     "static route",
			fullPath: "/api/v1/dashboard/groups",
			want:     "api_v1_dashboard_groups",
		},
		{
			name:     "route with one param",
			fullPath: "/api/v1/dashboard/groups/:group_id/expenses",
			want:     "api_v1_dashboard_groups_group_id_expenses",
		},
		{
			name:     "route with two params",
			fullPath: "/api/v1/dashboard/groups/:group_id/expenses/:expense_id/settle",
			want:     "api_v1_dashboard_groups_group_id_expenses_expense_id_settle",
		},
		{
			name:     "unmatched route",
			fullPath: "",
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, routeEventName(tt.fullPath))
		})
	}
}
