// seed inserts two test users with a handful of tasks each into the local
// dev database and prints a signed bearer token for each user.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taskhive/taskhive/internal/domain"
	"github.com/taskhive/taskhive/internal/infrastructure/postgres"
	"github.com/taskhive/taskhive/internal/usecase"
)

type seedUser struct {
	id    string
	email string
	tasks []seedTask
}

type seedTask struct {
	title       string
	description string
	completed   bool
}

var users = []seedUser{
	{
		id:    "11111111-1111-4111-8111-111111111111",
		email: "alice@test.local",
		tasks: []seedTask{
			{"Buy milk", "2%", false},
			{"Write weekly report", "", true},
			{"Renew passport", "appointment on Friday", false},
			{"Clean the garage", "", false},
		},
	},
	{
		id:    "22222222-2222-4222-8222-222222222222",
		email: "bob@test.local",
		tasks: []seedTask{
			{"Fix leaking tap", "kitchen sink", false},
			{"Book dentist", "", true},
		},
	},
}

func main() {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}
	secret := os.Getenv("JWT_SECRET")
	if len(secret) < 32 {
		log.Fatal("JWT_SECRET is required and must be at least 32 characters")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, databaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	taskUsecase := usecase.NewTaskUsecase(postgres.NewTaskRepository(pool))

	for _, u := range users {
		if err := userRepo.Upsert(ctx, domain.UserID(u.id), u.email); err != nil {
			log.Fatalf("seed user %s: %v", u.email, err)
		}

		for _, t := range u.tasks {
			_, err := taskUsecase.CreateTask(ctx, usecase.CreateTaskInput{
				OwnerID:     domain.UserID(u.id),
				Title:       t.title,
				Description: t.description,
				Completed:   t.completed,
			})
			if err != nil {
				log.Fatalf("seed task %q: %v", t.title, err)
			}
		}

		token, err := devToken(secret, u.id, u.email)
		if err != nil {
			log.Fatalf("sign token for %s: %v", u.email, err)
		}
		fmt.Printf("%s (%d tasks)\n  %s\n", u.email, len(u.tasks), token)
	}
}

func devToken(secret, userID, email string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"iat":     now.Unix(),
		"exp":     now.Add(24 * time.Hour).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
