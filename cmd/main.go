package main

import (
	"net/http"
	_ "time/tzdata"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/dwellcheck/dwellcheck-backend/internal/app"
	"github.com/dwellcheck/dwellcheck-backend/internal/config"
	"github.com/dwellcheck/dwellcheck-backend/internal/controllers"
	"github.com/dwellcheck/dwellcheck-backend/internal/middleware"
	"github.com/dwellcheck/dwellcheck-backend/internal/repositories"
	"github.com/dwellcheck/dwellcheck-backend/internal/routes"
	"github.com/dwellcheck/dwellcheck-backend/internal/services"
	"github.com/dwellcheck/dwellcheck-backend/internal/storage"
	"github.com/dwellcheck/dwellcheck-backend/internal/utils"
)

func main() {
	utils.InitLogger(config.AppName)
	cfg := config.LoadConfig()

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize backend:", err)
	}
	defer application.Close()

	var (
		propRepo   repositories.PropertyRepository
		reportRepo repositories.ReportRepository
		roomRepo   repositories.RoomRepository
		itemRepo   repositories.InspectionItemRepository
		pinger     services.Pinger
	)
	if application.DB != nil {
		propRepo = repositories.NewPropertyRepository(application.DB)
		reportRepo = repositories.NewReportRepository(application.DB)
		roomRepo = repositories.NewRoomRepository(application.DB)
		itemRepo = repositories.NewInspectionItemRepository(application.DB)
		pinger = application.DB
	} else {
		store := repositories.NewMemoryStore()
		propRepo = store.Properties()
		reportRepo = store.Reports()
		roomRepo = store.Rooms()
		itemRepo = store.Items()
	}

	diskStore, err := storage.NewDiskStorage(cfg.MediaDir, cfg.AppURL)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize media storage:", err)
	}

	propertyService := services.NewPropertyService(propRepo)
	reportService := services.NewReportService(propRepo, reportRepo, roomRepo, itemRepo)
	pdfService := services.NewPDFService(services.NewPhotoFetcher(), cfg.AppURL)
	heartbeat := services.NewHeartbeatService(pinger)

	propertyController := controllers.NewPropertyController(propertyService)
	reportController := controllers.NewReportController(reportService)
	publicController := controllers.NewPublicReportController(reportService)
	pdfController := controllers.NewPDFController(pdfService, reportService, diskStore)
	uploadController := controllers.NewUploadController(diskStore)
	healthController := controllers.NewHealthController(pinger)

	router := mux.NewRouter()

	// Public
	router.HandleFunc(routes.Health, healthController.HealthCheckHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.PublicReport, publicController.GetPublicReportHandler).Methods(http.MethodGet)
	router.PathPrefix(routes.MediaPrefix).Handler(
		http.StripPrefix(routes.MediaPrefix, http.FileServer(http.Dir(diskStore.Dir()))),
	).Methods(http.MethodGet)

	// Render boundary: authenticated app calls and anonymous callers
	// with a full payload both land here.
	renderRouter := router.NewRoute().Subrouter()
	renderRouter.Use(middleware.OptionalAuthMiddleware(cfg.RSAPublicKey))
	renderRouter.HandleFunc(routes.GeneratePDF, pdfController.GeneratePDFHandler).Methods(http.MethodPost)

	secured := router.NewRoute().Subrouter()
	secured.Use(middleware.AuthMiddleware(cfg.RSAPublicKey))

	secured.HandleFunc(routes.Properties, propertyController.CreatePropertyHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.Properties, propertyController.ListPropertiesHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.PropertyByID, propertyController.GetPropertyHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.PropertyByID, propertyController.DeletePropertyHandler).Methods(http.MethodDelete)

	secured.HandleFunc(routes.Reports, reportController.CreateReportHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.Reports, reportController.ListReportsHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.ReportByID, reportController.GetReportHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.ReportByID, reportController.DeleteReportHandler).Methods(http.MethodDelete)
	secured.HandleFunc(routes.ReportRooms, reportController.AddRoomHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.ReportStatus, reportController.UpdateStatusHandler).Methods(http.MethodPut)
	secured.HandleFunc(routes.ReportPaid, reportController.MarkPaidHandler).Methods(http.MethodPost)

	secured.HandleFunc(routes.RoomItem, reportController.RecordItemHandler).Methods(http.MethodPut)
	secured.HandleFunc(routes.RoomItems, reportController.SaveRoomItemsHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.RoomVideo, reportController.AttachVideoHandler).Methods(http.MethodPost)

	secured.HandleFunc(routes.Uploads, uploadController.UploadHandler).Methods(http.MethodPost)

	if err := heartbeat.Start(); err != nil {
		utils.Logger.Fatal("Failed to start heartbeat:", err)
	}
	defer heartbeat.Stop()

	co := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.AppURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, co.Handler(router)); err != nil {
		utils.Logger.Fatal("Backend failed to start:", err)
	}
}
