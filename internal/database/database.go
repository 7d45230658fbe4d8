package database

import (
	"log"
	"strconv"

	"mpgspay/config"
	"mpgspay/internal/domain"
	"mpgspay/internal/models"
	"mpgspay/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return db, nil
}

// AutoMigrate runs Gorm auto-migration for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Setting{},
		&models.OrderState{},
		&models.Order{},
		&models.OrderTransaction{},
		&models.WebhookEvent{},
		&models.AdminUser{},
	)
}

// InstallOrderStates creates the module's order states once and records their
// ids in the settings store. Re-running is a no-op as long as the stored id
// still points at a live row.
func InstallOrderStates(db *gorm.DB) error {
	settings := repository.NewSettingRepository(db)
	states := repository.NewStateRepository(db)

	ensure := func(key string, state models.OrderState) error {
		if v, err := settings.Get(key); err == nil && v != "" {
			if id, perr := strconv.ParseUint(v, 10, 32); perr == nil {
				ok, eerr := states.Exists(uint(id))
				if eerr != nil {
					return eerr
				}
				if ok {
					return nil
				}
			}
		}
		if err := states.Create(&state); err != nil {
			return err
		}
		return settings.Set(key, strconv.FormatUint(uint64(state.ID), 10))
	}

	installs := []struct {
		key   string
		state models.OrderState
	}{
		{domain.KeyStatePaymentWaiting, models.OrderState{
			Name: "Awaiting Payment", Color: "#4169E1",
		}},
		{domain.KeyStateAuthorized, models.OrderState{
			Name: "Payment Authorized", Color: "#4169E1",
			Paid: true, Logable: true, SendEmail: true,
		}},
		{domain.KeyStatePaymentAccepted, models.OrderState{
			Name: "Payment accepted", Color: "#32CD32",
			Paid: true, Logable: true, SendEmail: true,
		}},
		{domain.KeyStateCanceled, models.OrderState{
			Name: "Canceled", Color: "#DC143C",
		}},
		{domain.KeyStateRefunded, models.OrderState{
			Name: "Refunded", Color: "#EC2E15",
			Logable: true, SendEmail: true,
		}},
	}
	for _, ins := range installs {
		if err := ensure(ins.key, ins.state); err != nil {
			return err
		}
	}
	return nil
}

// SeedAdmin creates the initial back-office user when none exists.
func SeedAdmin(db *gorm.DB, cfg *config.AdminConfig) {
	admins := repository.NewAdminRepository(db)
	if _, err := admins.GetByEmail(cfg.Email); err == nil {
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("seed admin: %v", err)
		return
	}
	if err := admins.Create(&models.AdminUser{
		Email:        cfg.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
	}); err != nil {
		log.Printf("seed admin: %v", err)
	}
}
