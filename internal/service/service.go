package service

import (
	"github.com/AdithyaSiva5/NoteExchange-Backend/internal/config"
	"github.com/AdithyaSiva5/NoteExchange-Backend/internal/payment"
	"github.com/AdithyaSiva5/NoteExchange-Backend/internal/repository"
	"github.com/AdithyaSiva5/NoteExchange-Backend/internal/storage"
)

type Service struct {
	Auth    AuthService
	User    UserService
	Post    PostService
	Admin   AdminService
	Payment PaymentService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage, gateway *payment.Client) *Service {
	userSvc := NewUserService(rep.User, storage, cfg)
	return &Service{
		Auth:    NewAuthService(rep.User, cfg),
		User:    userSvc,
		Post:    NewPostService(rep.Post, userSvc, cfg),
		Admin:   NewAdminService(rep.Admin, rep.User, cfg),
		Payment: NewPaymentService(gateway, cfg),
	}
}
