package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/shinyyama/billing-api/internal/config"
	"github.com/shinyyama/billing-api/internal/db"
	"github.com/shinyyama/billing-api/internal/logger"
	"github.com/shinyyama/billing-api/internal/model"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load()
	log := logger.New(os.Getenv("LOG_LEVEL"), "console")
	if err := run(context.Background(), log); err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
}

func run(ctx context.Context, log zerolog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if !cfg.HasDatabase() {
		return errors.New("seeding needs DATABASE_URL or DB_USER, DB_HOST and DB_NAME")
	}
	gdb, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	gdb = gdb.WithContext(ctx)

	if err := gdb.AutoMigrate(&model.User{}, &model.Payment{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	canSeed, err := shouldSeed(gdb)
	if err != nil {
		return err
	}
	if !canSeed {
		log.Info().Msg("users already exist; skipping seed (set FORCE_SEED=true to override)")
		return nil
	}

	users, payments := buildSeed()
	err = gdb.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Payment{}).Error; err != nil {
			return fmt.Errorf("clear payments: %w", err)
		}
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.User{}).Error; err != nil {
			return fmt.Errorf("clear users: %w", err)
		}
		if err := tx.Create(&users).Error; err != nil {
			return fmt.Errorf("insert users: %w", err)
		}
		if err := tx.CreateInBatches(&payments, 100).Error; err != nil {
			return fmt.Errorf("insert payments: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Info().Int("users", len(users)).Int("payments", len(payments)).Msg("seeded")
	return nil
}

func shouldSeed(gdb *gorm.DB) (bool, error) {
	if strings.EqualFold(os.Getenv("FORCE_SEED"), "true") {
		return true, nil
	}
	var n int64
	if err := gdb.Model(&model.User{}).Count(&n).Error; err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	return n == 0, nil
}

func buildSeed() ([]model.User, []model.Payment) {
	type customer struct {
		Name    string
		Email   string
		Charges []int64
	}
	customers := []customer{
		{"Ada Lovelace", "ada@example.com", []int64{1000, 2000}},
		{"Grace Hopper", "grace@example.com", []int64{500}},
		{"Alan Turing", "alan@example.com", []int64{4900, 4900, 4900}},
		{"Katherine Johnson", "katherine@example.com", nil},
		{"Edsger Dijkstra", "edsger@example.com", []int64{1299}},
	}

	users := make([]model.User, 0, len(customers))
	var payments []model.Payment
	for i, c := range customers {
		cus := fmt.Sprintf("cus_seed%04d", i+1)
		users = append(users, model.User{Name: c.Name, Email: c.Email, StripeCustomerID: &cus})
		for _, amt := range c.Charges {
			payments = append(payments, model.Payment{Email: c.Email, Amount: amt, Currency: "usd"})
		}
	}
	return users, payments
}
