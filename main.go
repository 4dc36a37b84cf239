// main.go
package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/ariebrainware/dental-practice-api/ai"
	"github.com/ariebrainware/dental-practice-api/config"
	"github.com/ariebrainware/dental-practice-api/endpoint"
	"github.com/ariebrainware/dental-practice-api/middleware"
	"github.com/ariebrainware/dental-practice-api/model"
	"github.com/ariebrainware/dental-practice-api/util"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load the configuration
	cfg := config.LoadConfig()

	db, err := config.ConnectMySQL()
	if err != nil {
		log.Fatalf("Error connecting to MySQL: %v", err)
	}
	err = db.AutoMigrate(
		&model.Patient{},
		&model.Referral{},
		&model.Note{},
		&model.Appointment{},
		&model.AuditLog{},
	)
	if err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}
	util.SetAuditLoggerDB(db)

	if _, err := config.ConnectRedis(); err != nil {
		log.Printf("Redis unavailable, AI rate limiting disabled: %v", err)
	}

	// Whether text generation exists at all is decided here, once. With no
	// endpoint or key the AI routes stay registered and report a
	// configuration error on every call.
	var generator ai.Generator
	client, err := ai.NewClient(cfg.OpenAIEndpoint, cfg.OpenAIKey, cfg.OpenAIModel)
	switch {
	case err == nil:
		generator = client
		log.Printf("Text generation enabled (deployment %s)", cfg.OpenAIModel)
	case errors.Is(err, ai.ErrNotConfigured):
		log.Printf("OpenAI not configured; AI endpoints will return a configuration error")
	default:
		log.Fatalf("Error building text-generation client: %v", err)
	}

	// Set Gin mode from config
	gin.SetMode(cfg.GinMode)

	router := gin.Default()
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DatabaseMiddleware(db))
	router.Use(middleware.GeneratorMiddleware(generator))
	router.Use(middleware.RequestLogger())

	// Basic HTTP handler for root path
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf("Welcome to %s!", cfg.AppName),
		})
	})

	router.GET("/patients", endpoint.ListPatients)
	router.POST("/patients", endpoint.CreatePatient)
	router.GET("/patients/:id", endpoint.GetPatientInfo)
	router.PUT("/patients/:id", endpoint.UpdatePatient)
	router.DELETE("/patients/:id", endpoint.DeletePatient)

	router.GET("/patients/:id/referrals", endpoint.ListReferrals)
	router.POST("/patients/:id/referrals", endpoint.CreateReferral)
	router.GET("/referrals/:token", endpoint.GetReferralByToken)

	router.GET("/patients/:id/appointments", endpoint.ListPatientAppointments)
	router.POST("/patients/:id/appointments", endpoint.CreateAppointment)
	router.GET("/appointments", endpoint.ListAppointments)
	router.PUT("/appointments/:id", endpoint.UpdateAppointment)
	router.DELETE("/appointments/:id", endpoint.DeleteAppointment)

	router.GET("/patients/:id/notes", endpoint.ListPatientNotes)
	router.POST("/patients/:id/notes", endpoint.CreateNote)
	router.GET("/notes/:id", endpoint.GetNote)
	router.PUT("/notes/:id", endpoint.UpdateNote)
	router.DELETE("/notes/:id", endpoint.DeleteNote)

	aiRoutes := router.Group("/ai", middleware.RateLimiter(middleware.RateLimitConfig{}))
	aiRoutes.POST("/summarize", endpoint.SummarizeNote)
	aiRoutes.POST("/letter", endpoint.DraftReferralLetter)

	// Start server on specified port
	address := fmt.Sprintf(":%d", cfg.AppPort)
	if err := router.Run(address); err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
