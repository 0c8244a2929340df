package services

import (
	"gorm.io/gorm"

	"billpilot_backend/internal/email"
	"billpilot_backend/internal/repositories"
)

// Container wires every service over a shared database handle. Handlers take
// the container and pick what they need.
type Container struct {
	Auth     AuthService
	User     UserService
	Customer CustomerService
	Document DocumentService
}

func NewContainer(db *gorm.DB, mailer email.Provider) *Container {
	userRepo := repositories.NewUserRepository(db)
	refreshRepo := repositories.NewRefreshTokenRepository(db)
	verifyRepo := repositories.NewVerificationTokenRepository(db)
	customerRepo := repositories.NewCustomerRepository(db)
	documentRepo := repositories.NewDocumentRepository(db)

	return &Container{
		Auth:     NewAuthService(userRepo, refreshRepo, verifyRepo, mailer),
		User:     NewUserService(userRepo, refreshRepo),
		Customer: NewCustomerService(customerRepo),
		Document: NewDocumentService(documentRepo, customerRepo),
	}
}
