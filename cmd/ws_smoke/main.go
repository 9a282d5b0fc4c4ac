// Smoke check for the live notification channel against a running server:
// seeds two users and a task, subscribes user B over websocket, shares the
// task from user A over HTTP, and waits for B's task_shared push.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/websocket"

	"taskboard/internal/db"
	"taskboard/internal/domain"
	"taskboard/internal/repository"
	"taskboard/internal/service"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}
	if os.Getenv("JWT_SECRET") == "" {
		log.Fatal("JWT_SECRET not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8000"
	}

	pool := db.Connect(dsn)
	defer pool.Close()

	users := repository.NewUserRepository(pool)
	tasks := repository.NewTaskRepository(pool)
	ctx := context.Background()

	uA := ensureUser(ctx, users, "Smoke A", "smoke-a@example.com")
	uB := ensureUser(ctx, users, "Smoke B", "smoke-b@example.com")

	task := &domain.Task{Title: "smoke task", Status: domain.StatusPending, OwnerID: uA.ID}
	if err := tasks.Create(ctx, task); err != nil {
		log.Fatalf("create task: %v", err)
	}

	service.InitJWT()
	tokenA, err := service.GenerateJWT(uA.ID, uA.Email)
	if err != nil {
		log.Fatalf("token A: %v", err)
	}
	tokenB, err := service.GenerateJWT(uB.ID, uB.Email)
	if err != nil {
		log.Fatalf("token B: %v", err)
	}

	// subscribe B
	wsURL := fmt.Sprintf("ws://localhost:%s/ws?token=%s", port, tokenB)
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		log.Fatalf("ws dial: %v", err)
	}
	defer conn.Close()

	events := make(chan []byte, 1)
	go func() {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			log.Printf("ws read: %v", err)
			return
		}
		events <- msg
	}()

	// share from A
	body, _ := json.Marshal(map[string]any{"sharedWith": []int64{uB.ID}})
	req, _ := http.NewRequest(http.MethodPut,
		fmt.Sprintf("http://localhost:%s/api/v1/tasks/%d/share", port, task.ID),
		bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+tokenA)

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("share request: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		log.Fatalf("share returned %d", res.StatusCode)
	}

	select {
	case msg := <-events:
		log.Printf("received push: %s", msg)
	case <-time.After(5 * time.Second):
		log.Fatal("no push received within 5s")
	}

	log.Println("smoke check passed")
}

func ensureUser(ctx context.Context, repo *repository.UserRepository, name, email string) *domain.User {
	if u, err := repo.GetByEmail(ctx, email); err == nil {
		return u
	}
	hash, err := service.HashPassword("smoke1234")
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}
	u := &domain.User{Name: name, Email: email, PasswordHash: hash}
	if err := repo.Create(ctx, u); err != nil {
		log.Fatalf("create user %s: %v", email, err)
	}
	return u
}
