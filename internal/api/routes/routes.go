package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mining-ops-api-server/internal/aggregate"
	"mining-ops-api-server/internal/api/handlers"
	"mining-ops-api-server/internal/api/middleware"
	"mining-ops-api-server/internal/policy"
	"mining-ops-api-server/internal/s3"
	"mining-ops-api-server/internal/socket"
	"mining-ops-api-server/internal/store"
)

// SetupRouter wires every handler behind authentication and the permission
// matrix. Statistics routes are registered before the :id routes of the same
// group so the literal path wins.
func SetupRouter(
	stores store.Stores,
	engine *aggregate.Engine,
	uploader *s3.Uploader,
	hub *socket.Hub,
	log *zap.Logger,
) *gin.Engine {
	router := gin.New()
	router.Use(ginzap.Ginzap(log, time.RFC3339, true))
	router.Use(ginzap.RecoveryWithZap(log, true))
	router.Use(cors.Default())

	mineralHandler := &handlers.MineralHandler{Store: stores.Minerals}
	shiftHandler := &handlers.ShiftHandler{Store: stores.Shifts}
	equipmentHandler := &handlers.EquipmentHandler{Store: stores.Equipment, Engine: engine}
	userHandler := &handlers.UserHandler{Store: stores.Users}
	productionHandler := &handlers.ProductionHandler{Store: stores.Production, Engine: engine, Hub: hub}
	incidentHandler := &handlers.IncidentHandler{Store: stores.Incidents, Engine: engine, Hub: hub, Uploader: uploader}
	reportHandler := &handlers.ReportHandler{Store: stores.Reports, Engine: engine, Hub: hub}
	webSocketHandler := &handlers.WebSocketHandler{Hub: hub, Log: log}

	apiV1 := router.Group("/api/v1")
	{
		apiV1.GET("/ws", webSocketHandler.ServeWs)

		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", userHandler.Register)
			auth.POST("/login", userHandler.Login)
		}

		protected := apiV1.Group("/")
		protected.Use(middleware.Authenticate(stores.Users))
		{
			profile := protected.Group("/auth")
			{
				profile.GET("/profile", userHandler.GetProfile)
				profile.PUT("/profile", userHandler.UpdateProfile)
				profile.PUT("/change-password", userHandler.ChangePassword)
			}

			minerals := protected.Group("/minerals")
			{
				minerals.POST("/", middleware.Require(policy.OpMineralCreate), mineralHandler.CreateMineral)
				minerals.GET("/", middleware.Require(policy.OpMineralRead), mineralHandler.GetAllMinerals)
				minerals.GET("/:id", middleware.Require(policy.OpMineralRead), mineralHandler.GetMineralByID)
				minerals.PUT("/:id", middleware.Require(policy.OpMineralUpdate), mineralHandler.UpdateMineral)
				minerals.DELETE("/:id", middleware.Require(policy.OpMineralDelete), mineralHandler.DeleteMineral)
			}

			shifts := protected.Group("/shifts")
			{
				shifts.POST("/", middleware.Require(policy.OpShiftCreate), shiftHandler.CreateShift)
				shifts.GET("/", middleware.Require(policy.OpShiftRead), shiftHandler.GetAllShifts)
				shifts.GET("/:id", middleware.Require(policy.OpShiftRead), shiftHandler.GetShiftByID)
				shifts.PUT("/:id", middleware.Require(policy.OpShiftUpdate), shiftHandler.UpdateShift)
				shifts.DELETE("/:id", middleware.Require(policy.OpShiftDelete), shiftHandler.DeleteShift)
			}

			equipment := protected.Group("/equipment")
			{
				equipment.POST("/", middleware.Require(policy.OpEquipmentCreate), equipmentHandler.CreateEquipment)
				equipment.GET("/", middleware.Require(policy.OpEquipmentRead), equipmentHandler.GetAllEquipment)
				equipment.GET("/statistics", middleware.Require(policy.OpEquipmentStatistics), equipmentHandler.GetEquipmentStatistics)
				equipment.GET("/:id", middleware.Require(policy.OpEquipmentRead), equipmentHandler.GetEquipmentByID)
				equipment.PUT("/:id", middleware.Require(policy.OpEquipmentUpdate), equipmentHandler.UpdateEquipment)
				equipment.DELETE("/:id", middleware.Require(policy.OpEquipmentDelete), equipmentHandler.DeleteEquipment)
				equipment.PATCH("/:id/status", middleware.Require(policy.OpEquipmentSetStatus), equipmentHandler.UpdateEquipmentStatus)
				equipment.POST("/:id/maintenance", middleware.Require(policy.OpEquipmentLogMaint), equipmentHandler.LogMaintenance)
			}

			users := protected.Group("/users")
			{
				users.GET("/", middleware.Require(policy.OpUserRead), userHandler.GetAllUsers)
				users.GET("/:id", middleware.Require(policy.OpUserRead), userHandler.GetUserByID)
				users.PUT("/:id", middleware.Require(policy.OpUserUpdate), userHandler.UpdateUser)
				users.DELETE("/:id", middleware.Require(policy.OpUserDelete), userHandler.DeleteUser)
				users.PATCH("/:id/active", middleware.Require(policy.OpUserSetActive), userHandler.SetUserActive)
			}

			production := protected.Group("/production")
			{
				production.POST("/", middleware.Require(policy.OpProductionCreate), productionHandler.CreateProductionRecord)
				production.GET("/", middleware.Require(policy.OpProductionRead), productionHandler.GetAllProductionRecords)
				production.GET("/statistics", middleware.Require(policy.OpProductionStatistics), productionHandler.GetProductionStatistics)
				production.GET("/:id", middleware.Require(policy.OpProductionRead), productionHandler.GetProductionRecordByID)
				production.PUT("/:id", middleware.Require(policy.OpProductionUpdate), productionHandler.UpdateProductionRecord)
				production.DELETE("/:id", middleware.Require(policy.OpProductionDelete), productionHandler.DeleteProductionRecord)
				production.PATCH("/:id/approve", middleware.Require(policy.OpProductionApprove), productionHandler.ApproveProductionRecord)
			}

			incidents := protected.Group("/incidents")
			{
				incidents.POST("/", middleware.Require(policy.OpIncidentCreate), incidentHandler.CreateIncident)
				incidents.GET("/", middleware.Require(policy.OpIncidentRead), incidentHandler.GetAllIncidents)
				incidents.GET("/statistics", middleware.Require(policy.OpIncidentStatistics), incidentHandler.GetIncidentStatistics)
				incidents.GET("/:id", middleware.Require(policy.OpIncidentRead), incidentHandler.GetIncidentByID)
				incidents.PUT("/:id", middleware.Require(policy.OpIncidentUpdate), incidentHandler.UpdateIncident)
				incidents.DELETE("/:id", middleware.Require(policy.OpIncidentDelete), incidentHandler.DeleteIncident)
				incidents.PATCH("/:id/status", middleware.Require(policy.OpIncidentSetStatus), incidentHandler.UpdateIncidentStatus)
				incidents.POST("/:id/photos", middleware.Require(policy.OpIncidentAttachPhoto), incidentHandler.UploadIncidentPhoto)
			}

			reports := protected.Group("/reports")
			{
				reports.POST("/", middleware.Require(policy.OpReportCreate), reportHandler.CreateReport)
				reports.GET("/", middleware.Require(policy.OpReportRead), reportHandler.GetAllReports)
				reports.POST("/generate/production-summary", middleware.Require(policy.OpReportGenerate), reportHandler.GenerateProductionSummary)
				reports.POST("/generate/equipment", middleware.Require(policy.OpReportGenerate), reportHandler.GenerateEquipmentReport)
				reports.GET("/:id", middleware.Require(policy.OpReportRead), reportHandler.GetReportByID)
				reports.PUT("/:id", middleware.Require(policy.OpReportUpdate), reportHandler.UpdateReport)
				reports.DELETE("/:id", middleware.Require(policy.OpReportDelete), reportHandler.DeleteReport)
				reports.PATCH("/:id/approve", middleware.Require(policy.OpReportApprove), reportHandler.ApproveReport)
			}
		}
	}

	return router
}
