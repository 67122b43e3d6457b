package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mining-ops-api-server/internal/aggregate"
	"mining-ops-api-server/internal/auth"
	"mining-ops-api-server/internal/models"
	"mining-ops-api-server/internal/socket"
	"mining-ops-api-server/internal/store"
	"mining-ops-api-server/internal/store/memstore"
)

type testEnv struct {
	router *gin.Engine
	stores store.Stores
}

func setupTest(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	stores := memstore.New()
	engine := aggregate.NewEngine(stores)
	engine.NewReportID = func() string { return "RPT-TEST" }
	log := zap.NewNop()
	hub := socket.NewHub(log)

	return &testEnv{
		router: SetupRouter(stores, engine, nil, hub, log),
		stores: stores,
	}
}

// seedUser creates an account directly in the store and returns a valid token
// for it.
func (e *testEnv) seedUser(t *testing.T, userID string, role models.Role) (models.User, string) {
	t.Helper()

	hash, err := auth.HashPassword("secret123")
	require.NoError(t, err)

	user := models.User{
		UserID:   userID,
		UserName: userID,
		Role:     role,
		Email:    userID + "@mine.example",
		Password: hash,
		IsActive: true,
	}
	require.NoError(t, e.stores.Users.Create(context.Background(), &user))

	token, err := auth.GenerateJWT(user.ID.Hex(), user.Email, user.Role)
	require.NoError(t, err)
	return user, token
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func TestRegisterAndLogin(t *testing.T) {
	env := setupTest(t)

	w := env.do(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"userId":   "USR-001",
		"userName": "Dana",
		"role":     "FieldOperator",
		"email":    "dana@mine.example",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    "dana@mine.example",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	decode(t, w, &resp)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "USR-001", resp.User.UserID)

	// Wrong password and unknown email get the same answer.
	wrong := env.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    "dana@mine.example",
		"password": "nope",
	})
	unknown := env.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    "nobody@mine.example",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, wrong.Body.String(), unknown.Body.String())
}

func TestRegisterInvalidRole(t *testing.T) {
	env := setupTest(t)

	w := env.do(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"userId":   "USR-001",
		"userName": "Dana",
		"role":     "Intern",
		"email":    "dana@mine.example",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMissingTokenRejected(t *testing.T) {
	env := setupTest(t)
	w := env.do(t, http.MethodGet, "/api/v1/minerals/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDeactivatedAccountLockedOut(t *testing.T) {
	env := setupTest(t)
	user, token := env.seedUser(t, "USR-ADM", models.RoleAdmin)

	inactive := false
	_, err := env.stores.Users.Update(context.Background(), user.ID.Hex(), store.UserUpdate{IsActive: &inactive})
	require.NoError(t, err)

	// The token is still cryptographically valid, but the account is off.
	w := env.do(t, http.MethodGet, "/api/v1/minerals/", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestMineralPermissionsAndConflicts(t *testing.T) {
	env := setupTest(t)
	_, adminToken := env.seedUser(t, "USR-ADM", models.RoleAdmin)
	_, operatorToken := env.seedUser(t, "USR-OP", models.RoleFieldOperator)

	body := gin.H{"mineralId": "MIN-001", "name": "Copper", "grade": "A"}

	// Field operators cannot create catalog entries.
	w := env.do(t, http.MethodPost, "/api/v1/minerals/", operatorToken, body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(t, http.MethodPost, "/api/v1/minerals/", adminToken, body)
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Mineral
	decode(t, w, &created)

	// Same business id again is a conflict.
	w = env.do(t, http.MethodPost, "/api/v1/minerals/", adminToken, body)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Everyone authenticated may read.
	w = env.do(t, http.MethodGet, "/api/v1/minerals/"+created.ID.Hex(), operatorToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Only admins delete.
	w = env.do(t, http.MethodDelete, "/api/v1/minerals/"+created.ID.Hex(), operatorToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = env.do(t, http.MethodDelete, "/api/v1/minerals/"+created.ID.Hex(), adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/minerals/"+created.ID.Hex(), adminToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func (e *testEnv) seedProductionRecord(t *testing.T, token string) models.ProductionRecord {
	t.Helper()

	mineral := models.Mineral{MineralID: "MIN-CU", Name: "Copper", Grade: "A"}
	require.NoError(t, e.stores.Minerals.Create(context.Background(), &mineral))
	shift := models.Shift{ShiftID: "SH-A", Name: models.ShiftMorning, IsActive: true}
	require.NoError(t, e.stores.Shifts.Create(context.Background(), &shift))
	operator, _ := e.seedUser(t, fmt.Sprintf("USR-SEED-%d", time.Now().UnixNano()), models.RoleFieldOperator)

	w := e.do(t, http.MethodPost, "/api/v1/production/", token, gin.H{
		"recordId":      "PR-001",
		"quantity":      120.5,
		"mineral":       mineral.ID.Hex(),
		"location":      "Pit 4",
		"shift":         shift.ID.Hex(),
		"fieldOperator": operator.ID.Hex(),
		"workingHours":  8,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var record models.ProductionRecord
	decode(t, w, &record)
	return record
}

func TestProductionApprovalFlow(t *testing.T) {
	env := setupTest(t)
	_, operatorToken := env.seedUser(t, "USR-OP", models.RoleFieldOperator)
	_, supervisorToken := env.seedUser(t, "USR-SUP", models.RoleSupervisor)
	_, adminToken := env.seedUser(t, "USR-ADM", models.RoleAdmin)

	record := env.seedProductionRecord(t, operatorToken)
	assert.Equal(t, models.ProductionPending, record.Status)

	// Approval is a supervisor-only operation, admins included out.
	w := env.do(t, http.MethodPatch, "/api/v1/production/"+record.ID.Hex()+"/approve", operatorToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = env.do(t, http.MethodPatch, "/api/v1/production/"+record.ID.Hex()+"/approve", adminToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(t, http.MethodPatch, "/api/v1/production/"+record.ID.Hex()+"/approve", supervisorToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var approved models.ProductionRecord
	decode(t, w, &approved)
	assert.Equal(t, models.ProductionApproved, approved.Status)

	// Approving again is a no-op, not an error.
	w = env.do(t, http.MethodPatch, "/api/v1/production/"+record.ID.Hex()+"/approve", supervisorToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &approved)
	assert.Equal(t, models.ProductionApproved, approved.Status)
}

func TestProductionInvalidStatusLeavesRecordUnchanged(t *testing.T) {
	env := setupTest(t)
	_, operatorToken := env.seedUser(t, "USR-OP", models.RoleFieldOperator)

	record := env.seedProductionRecord(t, operatorToken)

	w := env.do(t, http.MethodPut, "/api/v1/production/"+record.ID.Hex(), operatorToken, gin.H{
		"status": "Archived",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	stored, err := env.stores.Production.GetByID(context.Background(), record.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, models.ProductionPending, stored.Status)
}

func TestProductionNegativeQuantityRejected(t *testing.T) {
	env := setupTest(t)
	_, operatorToken := env.seedUser(t, "USR-OP", models.RoleFieldOperator)

	w := env.do(t, http.MethodPost, "/api/v1/production/", operatorToken, gin.H{
		"recordId":      "PR-NEG",
		"quantity":      -5,
		"mineral":       "000000000000000000000001",
		"location":      "Pit 4",
		"shift":         "000000000000000000000002",
		"fieldOperator": "000000000000000000000003",
		"workingHours":  8,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductionStatisticsEndpoint(t *testing.T) {
	env := setupTest(t)
	_, operatorToken := env.seedUser(t, "USR-OP", models.RoleFieldOperator)
	_, auditorToken := env.seedUser(t, "USR-AUD", models.RoleAuditor)

	env.seedProductionRecord(t, operatorToken)

	// Field operators do not see statistics.
	w := env.do(t, http.MethodGet, "/api/v1/production/statistics", operatorToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/production/statistics", auditorToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Overall   aggregate.ProductionOverall   `json:"overall"`
		ByMineral []aggregate.MineralProduction `json:"byMineral"`
	}
	decode(t, w, &resp)
	assert.Equal(t, 120.5, resp.Overall.TotalProduction)
	assert.Equal(t, 1, resp.Overall.RecordCount)
	require.Len(t, resp.ByMineral, 1)
	assert.Equal(t, "Copper", resp.ByMineral[0].MineralName)
}

func TestIncidentLifecycle(t *testing.T) {
	env := setupTest(t)
	_, technicianToken := env.seedUser(t, "USR-TECH", models.RoleTechnician)
	_, supervisorToken := env.seedUser(t, "USR-SUP", models.RoleSupervisor)
	resolver, _ := env.seedUser(t, "USR-RES", models.RoleSupervisor)

	// Severity defaults to Medium, status opens as Open.
	w := env.do(t, http.MethodPost, "/api/v1/incidents/", technicianToken, gin.H{
		"incidentId":  "INC-001",
		"title":       "Hydraulic leak",
		"description": "Loader leaking fluid near ramp",
		"type":        "Equipment",
		"location":    "Pit 4",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var incident models.Incident
	decode(t, w, &incident)
	assert.Equal(t, models.SeverityMedium, incident.Severity)
	assert.Equal(t, models.IncidentOpen, incident.Status)
	assert.False(t, incident.ReportedBy.IsZero())

	// Supervisors cannot file incidents, only manage them.
	w = env.do(t, http.MethodPost, "/api/v1/incidents/", supervisorToken, gin.H{
		"incidentId":  "INC-002",
		"title":       "x",
		"description": "x",
		"type":        "Safety",
		"location":    "x",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// InProgress needs no resolver and leaves resolution fields empty.
	w = env.do(t, http.MethodPatch, "/api/v1/incidents/"+incident.ID.Hex()+"/status", supervisorToken, gin.H{
		"status": "InProgress",
	})
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &incident)
	assert.Equal(t, models.IncidentInProgress, incident.Status)
	assert.Nil(t, incident.ResolvedBy)
	assert.Nil(t, incident.ResolvedDate)

	// Resolving without a resolver is rejected.
	w = env.do(t, http.MethodPatch, "/api/v1/incidents/"+incident.ID.Hex()+"/status", supervisorToken, gin.H{
		"status": "Resolved",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPatch, "/api/v1/incidents/"+incident.ID.Hex()+"/status", supervisorToken, gin.H{
		"status":      "Resolved",
		"resolvedBy":  resolver.ID.Hex(),
		"actionTaken": "Replaced hose",
	})
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &incident)
	assert.Equal(t, models.IncidentResolved, incident.Status)
	require.NotNil(t, incident.ResolvedBy)
	assert.Equal(t, resolver.ID, *incident.ResolvedBy)
	assert.NotNil(t, incident.ResolvedDate)
	assert.Equal(t, "Replaced hose", incident.ActionTaken)
}

func TestIncidentPhotoUploadUnavailableWithoutStorage(t *testing.T) {
	env := setupTest(t)
	_, technicianToken := env.seedUser(t, "USR-TECH", models.RoleTechnician)

	w := env.do(t, http.MethodPost, "/api/v1/incidents/000000000000000000000001/photos", technicianToken, nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestShiftsDefaultToActive(t *testing.T) {
	env := setupTest(t)
	_, adminToken := env.seedUser(t, "USR-ADM", models.RoleAdmin)

	ctx := context.Background()
	active := models.Shift{ShiftID: "SH-A", Name: models.ShiftMorning, IsActive: true}
	retired := models.Shift{ShiftID: "SH-B", Name: models.ShiftNight, IsActive: false}
	require.NoError(t, env.stores.Shifts.Create(ctx, &active))
	require.NoError(t, env.stores.Shifts.Create(ctx, &retired))

	w := env.do(t, http.MethodGet, "/api/v1/shifts/", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var shifts []models.Shift
	decode(t, w, &shifts)
	require.Len(t, shifts, 1)
	assert.Equal(t, "SH-A", shifts[0].ShiftID)

	w = env.do(t, http.MethodGet, "/api/v1/shifts/?all=true", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &shifts)
	assert.Len(t, shifts, 2)
}

func TestReportGenerationAndApproval(t *testing.T) {
	env := setupTest(t)
	_, operatorToken := env.seedUser(t, "USR-OP", models.RoleFieldOperator)
	_, supervisorToken := env.seedUser(t, "USR-SUP", models.RoleSupervisor)
	_, auditorToken := env.seedUser(t, "USR-AUD", models.RoleAuditor)

	env.seedProductionRecord(t, operatorToken)

	// Field operators cannot generate reports.
	w := env.do(t, http.MethodPost, "/api/v1/reports/generate/production-summary", operatorToken, gin.H{
		"dateFrom": "2026-03-01T00:00:00Z",
		"dateTo":   "2026-03-31T00:00:00Z",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Missing window is a binding error.
	w = env.do(t, http.MethodPost, "/api/v1/reports/generate/production-summary", supervisorToken, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/api/v1/reports/generate/production-summary", supervisorToken, gin.H{
		"dateFrom": "2026-03-01T00:00:00Z",
		"dateTo":   "2026-03-31T00:00:00Z",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var report models.Report
	decode(t, w, &report)
	assert.Equal(t, "RPT-TEST", report.ReportID)
	assert.Equal(t, models.ReportProduction, report.Type)
	assert.Equal(t, models.ReportGenerated, report.Status)
	assert.Contains(t, report.Title, "2026-03-01")

	// Auditors may generate but never approve.
	w = env.do(t, http.MethodPatch, "/api/v1/reports/"+report.ID.Hex()+"/approve", auditorToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(t, http.MethodPatch, "/api/v1/reports/"+report.ID.Hex()+"/approve", supervisorToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &report)
	assert.Equal(t, models.ReportApproved, report.Status)
}

func TestEquipmentReportGeneration(t *testing.T) {
	env := setupTest(t)
	_, auditorToken := env.seedUser(t, "USR-AUD", models.RoleAuditor)

	ctx := context.Background()
	e := models.Equipment{EquipmentID: "EQ-1", Name: "EX-100", Type: models.EquipmentExcavator, Status: models.EquipmentOperational}
	require.NoError(t, env.stores.Equipment.Create(ctx, &e))

	w := env.do(t, http.MethodPost, "/api/v1/reports/generate/equipment", auditorToken, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var report models.Report
	decode(t, w, &report)
	assert.Equal(t, models.ReportEquipment, report.Type)
	assert.Equal(t, "Equipment Status Report", report.Title)
}

func TestProfileEndpoints(t *testing.T) {
	env := setupTest(t)
	user, token := env.seedUser(t, "USR-ME", models.RoleTechnician)

	w := env.do(t, http.MethodGet, "/api/v1/auth/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var me models.User
	decode(t, w, &me)
	assert.Equal(t, user.UserID, me.UserID)
	// The password hash never leaves the server.
	assert.NotContains(t, w.Body.String(), "password")

	w = env.do(t, http.MethodPut, "/api/v1/auth/change-password", token, gin.H{
		"currentPassword": "wrong",
		"newPassword":     "evenmoresecret",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPut, "/api/v1/auth/change-password", token, gin.H{
		"currentPassword": "secret123",
		"newPassword":     "evenmoresecret",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// The new password works for login, the old one does not.
	w = env.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    user.Email,
		"password": "evenmoresecret",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	w = env.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    user.Email,
		"password": "secret123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUserAdministration(t *testing.T) {
	env := setupTest(t)
	_, adminToken := env.seedUser(t, "USR-ADM", models.RoleAdmin)
	target, targetToken := env.seedUser(t, "USR-T", models.RoleTechnician)

	// Non-admins see nothing under /users.
	w := env.do(t, http.MethodGet, "/api/v1/users/", targetToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/users/", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var users []models.User
	decode(t, w, &users)
	assert.Len(t, users, 2)

	// Deactivate, then the victim's token stops working.
	w = env.do(t, http.MethodPatch, "/api/v1/users/"+target.ID.Hex()+"/active", adminToken, gin.H{"isActive": false})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/auth/profile", targetToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(t, http.MethodDelete, "/api/v1/users/"+target.ID.Hex(), adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
