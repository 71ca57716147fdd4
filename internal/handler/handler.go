package handlers

import (
	"github.com/go-playground/validator/v10"

	"github.com/AdithyaSiva5/NoteExchange-Backend/internal/config"
	"github.com/AdithyaSiva5/NoteExchange-Backend/internal/repository"
	"github.com/AdithyaSiva5/NoteExchange-Backend/internal/service"
)

type Handlers struct {
	AuthService    service.AuthService
	UserService    service.UserService
	PostService    service.PostService
	AdminService   service.AdminService
	PaymentService service.PaymentService
	UserRepo       repository.UserRepository
	Cfg            *config.Config
	Validate       *validator.Validate
}

func NewHandlers(repo *repository.Repository, service *service.Service, config *config.Config) *Handlers {
	return &Handlers{
		AuthService:    service.Auth,
		UserService:    service.User,
		PostService:    service.Post,
		AdminService:   service.Admin,
		PaymentService: service.Payment,
		UserRepo:       repo.User,
		Cfg:            config,
		Validate:       validator.New(),
	}
}
