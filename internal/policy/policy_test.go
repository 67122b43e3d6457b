package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mining-ops-api-server/internal/models"
)

func TestAllowed(t *testing.T) {
	tests := []struct {
		name string
		role models.Role
		op   Operation
		want bool
	}{
		{"supervisor approves production", models.RoleSupervisor, OpProductionApprove, true},
		{"admin cannot approve production", models.RoleAdmin, OpProductionApprove, false},
		{"field operator cannot approve production", models.RoleFieldOperator, OpProductionApprove, false},
		{"admin deletes users", models.RoleAdmin, OpUserDelete, true},
		{"supervisor cannot delete users", models.RoleSupervisor, OpUserDelete, false},
		{"field operator creates production", models.RoleFieldOperator, OpProductionCreate, true},
		{"auditor cannot create production", models.RoleAuditor, OpProductionCreate, false},
		{"auditor reads production", models.RoleAuditor, OpProductionRead, true},
		{"technician reports incidents", models.RoleTechnician, OpIncidentCreate, true},
		{"supervisor cannot report incidents", models.RoleSupervisor, OpIncidentCreate, false},
		{"technician logs maintenance", models.RoleTechnician, OpEquipmentLogMaint, true},
		{"admin cannot log maintenance", models.RoleAdmin, OpEquipmentLogMaint, false},
		{"auditor generates reports", models.RoleAuditor, OpReportGenerate, true},
		{"auditor cannot approve reports", models.RoleAuditor, OpReportApprove, false},
		{"admin deletes minerals", models.RoleAdmin, OpMineralDelete, true},
		{"supervisor cannot delete minerals", models.RoleSupervisor, OpMineralDelete, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Allowed(tt.role, tt.op))
		})
	}
}

func TestAllowedUnknown(t *testing.T) {
	assert.False(t, Allowed(models.Role("Intern"), OpMineralRead))
	assert.False(t, Allowed(models.RoleAdmin, Operation("mineral:export")))
}

func TestEveryOperationHasAGrant(t *testing.T) {
	for op, roles := range grants {
		assert.NotEmptyf(t, roles, "operation %s has no roles", op)
	}
}

func TestRolesFor(t *testing.T) {
	assert.Equal(t, []models.Role{models.RoleSupervisor}, RolesFor(OpProductionApprove))
}
