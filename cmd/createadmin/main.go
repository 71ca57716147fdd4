// Command createadmin provisions a super admin interactively. Admin
// accounts have no self-service signup path; this is the only way the
// first one gets created.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/AdithyaSiva5/NoteExchange-Backend/internal/config"
	"github.com/AdithyaSiva5/NoteExchange-Backend/internal/database"
	"github.com/AdithyaSiva5/NoteExchange-Backend/internal/models"
	"github.com/AdithyaSiva5/NoteExchange-Backend/internal/repository"
)

func prompt(reader *bufio.Reader, label string) (string, error) {
	fmt.Print(label)
	value, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(value), nil
}

func main() {
	cfg := config.LoadConfig()

	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.CloseDB()

	reader := bufio.NewReader(os.Stdin)

	email, err := prompt(reader, "Enter admin email: ")
	if err != nil {
		log.Fatalf("Failed to read input: %v", err)
	}
	name, err := prompt(reader, "Enter admin name: ")
	if err != nil {
		log.Fatalf("Failed to read input: %v", err)
	}
	password, err := prompt(reader, "Enter admin password: ")
	if err != nil {
		log.Fatalf("Failed to read input: %v", err)
	}

	if email == "" || name == "" || password == "" {
		log.Fatal("All fields are required")
	}
	if len(password) < 6 {
		log.Fatal("Password must be at least 6 characters long")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	adminRepo := repository.NewAdminRepository(db.DB)

	if _, err := adminRepo.GetByEmail(ctx, email); err == nil {
		log.Fatal("Admin with this email already exists")
	}

	admin := &models.Admin{
		Email: email,
		Name:  name,
		Role:  models.RoleSuper,
	}

	if err := adminRepo.Create(ctx, admin, password); err != nil {
		if errors.Is(err, models.ErrConflict) {
			log.Fatal("This email is already registered as an admin")
		}
		log.Fatalf("Failed to create admin: %v", err)
	}

	fmt.Printf("Super admin %s created\n", admin.Email)
}
