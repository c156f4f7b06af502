package config

import (
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lohith8088/UrbanFix-Backend/domain"
	"github.com/lohith8088/UrbanFix-Backend/utils"
)

func BootDB(cfg *Config) (*gorm.DB, error) {
	var gormLogger logger.Interface
	if cfg.AppEnv == "development" {
		gormLogger = logger.Default.LogMode(logger.Info)
	} else {
		gormLogger = logger.Default.LogMode(logger.Silent)
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(30 * time.Minute)

	err = db.AutoMigrate(
		&domain.User{},
		&domain.OtpRecord{},
		&domain.Report{},
		&domain.AuthorityMapping{},
	)
	if err != nil {
		return nil, err
	}

	if err := seedSuperAdmin(db, cfg); err != nil {
		return nil, err
	}

	log.Info().Msg("connected to database")
	return db, nil
}

// seedSuperAdmin provisions the initial superadmin account on first boot
// so the admin API is reachable before any OTP registration happens.
func seedSuperAdmin(db *gorm.DB, cfg *Config) error {
	var count int64
	if err := db.Model(&domain.User{}).Where("role = ?", domain.RoleSuperAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if cfg.Admin.Email == "" || cfg.Admin.Password == "" {
		log.Warn().Msg("skipping superadmin seeding, missing ADMIN_EMAIL or ADMIN_PASSWORD")
		return nil
	}

	hashed, err := utils.NewBcryptHasher(0).Hash(cfg.Admin.Password)
	if err != nil {
		return err
	}

	admin := domain.User{
		Name:          cfg.Admin.Name,
		Email:         cfg.Admin.Email,
		Password:      hashed,
		Role:          domain.RoleSuperAdmin,
		EmailVerified: true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Info().Str("email", cfg.Admin.Email).Msg("seeded superadmin user")
	return nil
}
