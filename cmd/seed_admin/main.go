// seed_admin crea el primer usuario administrador (el API no expone alta de admins).
//
// Uso: go run ./cmd/seed_admin <email> <password> [nombre]
// Lee la conexión a PostgreSQL de la misma configuración que el API (DATABASE_URL, DB_*).
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/DropZone-api/internal/application/auth"
	"github.com/jhoicas/DropZone-api/internal/domain"
	"github.com/jhoicas/DropZone-api/internal/infrastructure/postgres"
	"github.com/jhoicas/DropZone-api/pkg/config"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "uso: seed_admin <email> <password> [nombre]")
		os.Exit(2)
	}
	email, password := os.Args[1], os.Args[2]
	name := ""
	if len(os.Args) > 3 {
		name = os.Args[3]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conectar a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	authUC := auth.NewAuthUseCase(
		postgres.NewUserRepository(pool),
		postgres.NewSupplierRepository(pool),
		auth.JWTConfig{Secret: cfg.JWT.Secret, ExpMinutes: cfg.JWT.Expiration, Issuer: cfg.JWT.Issuer},
	)
	user, err := authUC.CreateAdmin(ctx, email, password, name)
	switch {
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		fmt.Printf("El usuario %s ya existe, nada que hacer\n", email)
		return
	case errors.Is(err, domain.ErrInvalidInput):
		fmt.Fprintf(os.Stderr, "Email inválido o password con menos de %d caracteres\n", auth.MinPasswordLength)
		os.Exit(1)
	case err != nil:
		fmt.Fprintf(os.Stderr, "Crear admin: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Admin creado: %s (%s)\n", user.Email, user.ID)
}
