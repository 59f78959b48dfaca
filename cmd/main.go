package main

import (
	"net/http"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/albercy/auto-clinic/internal/auth"
	"github.com/albercy/auto-clinic/internal/db"
	"github.com/albercy/auto-clinic/internal/email"
	"github.com/albercy/auto-clinic/internal/handlers"
	"github.com/albercy/auto-clinic/internal/middleware"
	"github.com/albercy/auto-clinic/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found, using process environment")
	}

	client, err := db.ConnectMongo()
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	database := db.Database(client)
	vehicles := &db.MongoVehicleCollection{Collection: database.Collection(db.VehiclesCollectionName)}
	admins := &db.MongoAdminCollection{Collection: database.Collection(db.AdminsCollectionName)}

	images, err := storage.ConnectMinio()
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to object storage")
	}

	authService, err := auth.NewService()
	if err != nil {
		log.WithError(err).Fatal("Failed to create auth service")
	}

	mailer := email.NewClient()

	authHandler := handlers.NewAuthHandler(authService, admins)
	vehicleHandler := handlers.NewVehicleHandler(vehicles, images)
	inquiryHandler := handlers.NewInquiryHandler(mailer, mailer.Contact, mailer.Emergency)

	authMw := middleware.NewAuthMiddleware(authService, admins)
	rateLimiter := middleware.NewRateLimitMiddleware()
	// Public forms get a tight per-IP window to keep spam off the inbox.
	formLimit := rateLimiter.RateLimit(10, 60)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	mux.HandleFunc("GET /api/vehicles", vehicleHandler.List)
	mux.HandleFunc("GET /api/vehicles/available", vehicleHandler.ListAvailable)
	mux.HandleFunc("GET /api/vehicles/{id}", vehicleHandler.Get)

	mux.Handle("POST /api/vehicles", authMw.RequireAdmin(http.HandlerFunc(vehicleHandler.Create)))
	mux.Handle("PUT /api/vehicles/{id}", authMw.RequireAdmin(http.HandlerFunc(vehicleHandler.Update)))
	mux.Handle("PATCH /api/vehicles/{id}/status", authMw.RequireAdmin(http.HandlerFunc(vehicleHandler.UpdateStatus)))
	mux.Handle("DELETE /api/vehicles/{id}", authMw.RequireAdmin(http.HandlerFunc(vehicleHandler.Delete)))
	mux.Handle("POST /api/images", authMw.RequireAdmin(http.HandlerFunc(vehicleHandler.UploadImages)))

	mux.Handle("POST /api/contact", formLimit(http.HandlerFunc(inquiryHandler.Contact)))
	mux.Handle("POST /api/emergency", formLimit(http.HandlerFunc(inquiryHandler.Emergency)))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.WithField("port", port).Info("HTTP server listening")
	log.Fatal(http.ListenAndServe(":"+port, mux))
}
