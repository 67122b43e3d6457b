// Package policy holds the static role-to-operation permission matrix.
// Every mutating route consults it exactly once, before any store access.
package policy

import (
	"mining-ops-api-server/internal/models"
)

type Operation string

const (
	OpMineralCreate Operation = "mineral:create"
	OpMineralRead   Operation = "mineral:read"
	OpMineralUpdate Operation = "mineral:update"
	OpMineralDelete Operation = "mineral:delete"

	OpShiftCreate Operation = "shift:create"
	OpShiftRead   Operation = "shift:read"
	OpShiftUpdate Operation = "shift:update"
	OpShiftDelete Operation = "shift:delete"

	OpEquipmentCreate     Operation = "equipment:create"
	OpEquipmentRead       Operation = "equipment:read"
	OpEquipmentUpdate     Operation = "equipment:update"
	OpEquipmentDelete     Operation = "equipment:delete"
	OpEquipmentSetStatus  Operation = "equipment:setStatus"
	OpEquipmentLogMaint   Operation = "equipment:logMaintenance"
	OpEquipmentStatistics Operation = "equipment:statistics"

	OpUserRead      Operation = "user:read"
	OpUserUpdate    Operation = "user:update"
	OpUserDelete    Operation = "user:delete"
	OpUserSetActive Operation = "user:setActive"

	OpProductionCreate     Operation = "production:create"
	OpProductionRead       Operation = "production:read"
	OpProductionUpdate     Operation = "production:update"
	OpProductionDelete     Operation = "production:delete"
	OpProductionApprove    Operation = "production:approve"
	OpProductionStatistics Operation = "production:statistics"

	OpIncidentCreate      Operation = "incident:create"
	OpIncidentRead        Operation = "incident:read"
	OpIncidentUpdate      Operation = "incident:update"
	OpIncidentDelete      Operation = "incident:delete"
	OpIncidentSetStatus   Operation = "incident:setStatus"
	OpIncidentAttachPhoto Operation = "incident:attachPhoto"
	OpIncidentStatistics  Operation = "incident:statistics"

	OpReportCreate   Operation = "report:create"
	OpReportRead     Operation = "report:read"
	OpReportUpdate   Operation = "report:update"
	OpReportDelete   Operation = "report:delete"
	OpReportGenerate Operation = "report:generate"
	OpReportApprove  Operation = "report:approve"
)

var all = []models.Role{
	models.RoleAdmin,
	models.RoleSupervisor,
	models.RoleTechnician,
	models.RoleFieldOperator,
	models.RoleAuditor,
}

// grants mirrors the route-level access annotations of the original system,
// one row per operation so the whole policy is auditable in one place.
var grants = map[Operation][]models.Role{
	OpMineralCreate: {models.RoleAdmin, models.RoleSupervisor},
	OpMineralRead:   all,
	OpMineralUpdate: {models.RoleAdmin, models.RoleSupervisor},
	OpMineralDelete: {models.RoleAdmin},

	OpShiftCreate: {models.RoleAdmin},
	OpShiftRead:   all,
	OpShiftUpdate: {models.RoleAdmin},
	OpShiftDelete: {models.RoleAdmin},

	OpEquipmentCreate:     {models.RoleAdmin, models.RoleSupervisor},
	OpEquipmentRead:       all,
	OpEquipmentUpdate:     {models.RoleAdmin, models.RoleSupervisor, models.RoleTechnician},
	OpEquipmentDelete:     {models.RoleAdmin},
	OpEquipmentSetStatus:  {models.RoleAdmin, models.RoleSupervisor, models.RoleTechnician},
	OpEquipmentLogMaint:   {models.RoleSupervisor, models.RoleTechnician},
	OpEquipmentStatistics: {models.RoleAdmin, models.RoleSupervisor, models.RoleAuditor},

	OpUserRead:      {models.RoleAdmin},
	OpUserUpdate:    {models.RoleAdmin},
	OpUserDelete:    {models.RoleAdmin},
	OpUserSetActive: {models.RoleAdmin},

	OpProductionCreate:     {models.RoleFieldOperator, models.RoleSupervisor},
	OpProductionRead:       all,
	OpProductionUpdate:     {models.RoleFieldOperator, models.RoleSupervisor},
	OpProductionDelete:     {models.RoleAdmin, models.RoleSupervisor},
	OpProductionApprove:    {models.RoleSupervisor},
	OpProductionStatistics: {models.RoleAdmin, models.RoleSupervisor, models.RoleAuditor},

	OpIncidentCreate:      {models.RoleTechnician, models.RoleFieldOperator, models.RoleAuditor},
	OpIncidentRead:        all,
	OpIncidentUpdate:      {models.RoleAdmin, models.RoleSupervisor},
	OpIncidentDelete:      {models.RoleAdmin},
	OpIncidentSetStatus:   {models.RoleAdmin, models.RoleSupervisor, models.RoleTechnician},
	OpIncidentAttachPhoto: {models.RoleAdmin, models.RoleSupervisor, models.RoleTechnician, models.RoleFieldOperator},
	OpIncidentStatistics:  {models.RoleAdmin, models.RoleSupervisor, models.RoleAuditor},

	OpReportCreate:   {models.RoleAdmin, models.RoleSupervisor, models.RoleAuditor},
	OpReportRead:     all,
	OpReportUpdate:   {models.RoleAdmin, models.RoleSupervisor, models.RoleAuditor},
	OpReportDelete:   {models.RoleAdmin},
	OpReportGenerate: {models.RoleAdmin, models.RoleSupervisor, models.RoleAuditor},
	OpReportApprove:  {models.RoleAdmin, models.RoleSupervisor},
}

var matrix = buildMatrix()

func buildMatrix() map[models.Role]map[Operation]bool {
	m := make(map[models.Role]map[Operation]bool, len(all))
	for _, role := range all {
		m[role] = make(map[Operation]bool)
	}
	for op, roles := range grants {
		for _, role := range roles {
			m[role][op] = true
		}
	}
	return m
}

// Allowed reports whether role may invoke op. Unknown roles and unknown
// operations are denied.
func Allowed(role models.Role, op Operation) bool {
	ops, ok := matrix[role]
	if !ok {
		return false
	}
	return ops[op]
}

// RolesFor returns the roles granted op, for error messages.
func RolesFor(op Operation) []models.Role {
	return grants[op]
}
