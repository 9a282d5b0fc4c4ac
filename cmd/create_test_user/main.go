package main

import (
	"context"
	"log"
	"os"

	"taskboard/internal/db"
	"taskboard/internal/domain"
	"taskboard/internal/repository"
	"taskboard/internal/service"
)

func main() {
	// expects DATABASE_URL and JWT_SECRET env vars
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	pool := db.Connect(dsn)
	defer pool.Close()

	repo := repository.NewUserRepository(pool)
	ctx := context.Background()

	const email = "tester@example.com"

	u, err := repo.GetByEmail(ctx, email)
	if err == nil {
		log.Printf("user already exists id=%d\n", u.ID)
	} else {
		hash, err := service.HashPassword("test1234")
		if err != nil {
			log.Fatalf("hash password failed: %v", err)
		}
		u = &domain.User{Name: "Tester", Email: email, PasswordHash: hash}
		if err := repo.Create(ctx, u); err != nil {
			log.Fatalf("create user failed: %v", err)
		}
		log.Printf("user created id=%d\n", u.ID)
	}

	// verify read
	u2, err := repo.GetByEmail(ctx, u.Email)
	if err != nil {
		log.Fatalf("get by email failed: %v", err)
	}
	log.Printf("fetched user id=%d name=%s email=%s created_at=%v\n", u2.ID, u2.Name, u2.Email, u2.CreatedAt)

	// initialize JWT and print token
	service.InitJWT()
	token, err := service.GenerateJWT(u2.ID, u2.Email)
	if err != nil {
		log.Fatalf("failed to generate token: %v", err)
	}
	log.Printf("token=%s\n", token)
}
