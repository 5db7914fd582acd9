package main

import (
	"context"
	"fmt"

	"github.com/Nikhil4123/Brocker/internal/repository"
	"github.com/Nikhil4123/Brocker/internal/seed"
	"github.com/Nikhil4123/Brocker/pkg/config"
	"github.com/Nikhil4123/Brocker/pkg/jwtutil"
	"github.com/Nikhil4123/Brocker/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	appConfig, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}
	if err := logger.InitLogger(appConfig); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	defer log.Sync()

	if appConfig.Store.Driver == config.DriverMemory {
		log.Fatal("Seeding the memory store has no lasting effect, set STORE_DRIVER")
	}

	ctx, cancel := context.WithTimeout(context.Background(), appConfig.Mongo.ConnectTimeout*3)
	defer cancel()

	store, err := repository.Open(ctx, appConfig)
	if err != nil {
		log.Fatal("Failed to initialize store", zap.Error(err))
	}
	defer store.Close(context.Background())

	res, err := seed.Run(ctx, store, seed.Options{})
	if err != nil {
		log.Fatal("Error seeding database", zap.Error(err))
	}
	log.Info("Database seeded successfully",
		zap.String("store_driver", appConfig.Store.Driver),
		zap.Int("properties", len(res.Properties)))

	token, err := jwtutil.NewJWTUtil(&appConfig.JWT).
		GenerateToken(res.Admin.ID, res.Admin.Email, string(res.Admin.Role))
	if err != nil {
		log.Fatal("Failed to sign admin token", zap.Error(err))
	}

	fmt.Printf("Admin credentials: %s / %s\n", seed.AdminEmail, seed.AdminPassword)
	fmt.Printf("User credentials: %s / %s\n", seed.UserEmail, seed.UserPassword)
	fmt.Printf("Admin token: %s\n", token)
}
