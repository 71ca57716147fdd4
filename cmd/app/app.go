package app

import (
	"log"

	"github.com/AdithyaSiva5/NoteExchange-Backend/internal/config"
	"github.com/AdithyaSiva5/NoteExchange-Backend/internal/database"
	"github.com/AdithyaSiva5/NoteExchange-Backend/internal/payment"
	"github.com/AdithyaSiva5/NoteExchange-Backend/internal/repository"
	"github.com/AdithyaSiva5/NoteExchange-Backend/internal/service"
	"github.com/AdithyaSiva5/NoteExchange-Backend/internal/storage"
)

func App(cfg *config.Config) (*database.DB, *repository.Repository, *service.Service) {
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize MinIO: %v", err)
	}

	gateway := payment.NewClient(cfg.Razorpay)

	repo := repository.NewRepository(db.DB)
	services := service.NewService(repo, cfg, minioClient, gateway)

	return db, repo, services
}
