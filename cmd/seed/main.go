package main

import (
	"context"
	"errors"
	"os"
	"time"

	"gorm.io/gorm"

	"trendradar/internal/config"
	"trendradar/internal/db"
	"trendradar/internal/model"
	"trendradar/internal/repository"
	"trendradar/internal/service"
	"trendradar/pkg/logger"
)

var departments = []model.Department{
	{Name: "Engineering", IsActive: true},
	{Name: "Business", IsActive: true},
	{Name: "Design", IsActive: true},
}

var categories = []model.Category{
	{Name: "Artificial Intelligence", Department: "Engineering"},
	{Name: "Cloud Infrastructure", Department: "Engineering"},
	{Name: "Market Dynamics", Department: "Business"},
	{Name: "User Experience", Department: "Design"},
}

var subcategories = []model.SubCategory{
	{Name: "LLMs", CategoryName: "Artificial Intelligence"},
	{Name: "Computer Vision", CategoryName: "Artificial Intelligence"},
	{Name: "Serverless", CategoryName: "Cloud Infrastructure"},
	{Name: "Pricing", CategoryName: "Market Dynamics"},
	{Name: "Accessibility", CategoryName: "User Experience"},
}

var trends = []model.Trend{
	{
		Title:                       "Generative AI in the classroom",
		Category:                    "Artificial Intelligence",
		DepartmentName:              "Engineering",
		SubCategory:                 model.StringList{"LLMs"},
		TimeHorizon:                 "short",
		Scope:                       "global",
		Status:                      model.StatusConfirmed,
		ImpactScore:                 8.5,
		ImpactLabel:                 "high",
		InternalTeacherDescription:  "Curriculum implications of generative tooling for coursework and assessment.",
		InternalBusinessDescription: "Licensing and partnership opportunities around education-focused models.",
		ExternalUserDescription:     "AI assistants are becoming a standard study aid.",
	},
	{
		Title:                       "Serverless cost consolidation",
		Category:                    "Cloud Infrastructure",
		DepartmentName:              "Engineering",
		SubCategory:                 model.StringList{"Serverless", "Pricing"},
		TimeHorizon:                 "medium",
		Scope:                       "regional",
		Status:                      model.StatusPending,
		ImpactScore:                 5.0,
		ImpactLabel:                 "medium",
		InternalTeacherDescription:  "Teaching material on function-as-a-service billing models.",
		InternalBusinessDescription: "Vendors are bundling serverless tiers; renegotiation window opening.",
		ExternalUserDescription:     "Cloud providers are simplifying their pay-per-use pricing.",
	},
	{
		Title:                      "Accessibility-first design mandates",
		Category:                   "User Experience",
		DepartmentName:             "Design",
		SubCategory:                model.StringList{"Accessibility"},
		TimeHorizon:                "long",
		Scope:                      "global",
		Status:                     model.StatusConfirmed,
		ImpactScore:                3.5,
		ImpactLabel:                "low",
		ExternalUserDescription:    "Regulation is pushing products toward accessible defaults.",
		InternalTeacherDescription: "Standards coverage for WCAG in the design curriculum.",
	},
}

func main() {
	log := logger.New()
	log.Info().Msg("starting seed script")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Department{},
		&model.Category{},
		&model.SubCategory{},
		&model.Trend{},
	); err != nil {
		log.Fatal().Err(err).Msg("auto-migrate")
	}

	ctx := context.Background()

	created, err := seedAdmin(ctx, repository.NewUserRepository(gormDB))
	if err != nil {
		log.Fatal().Err(err).Msg("seed admin")
	}
	if created {
		log.Info().Msg("admin user created")
	} else {
		log.Info().Msg("admin user already present")
	}

	if err := seedTaxonomy(gormDB); err != nil {
		log.Fatal().Err(err).Msg("seed taxonomy")
	}

	if err := seedTrends(gormDB); err != nil {
		log.Fatal().Err(err).Msg("seed trends")
	}

	log.Info().Msg("seed completed")
}

func seedAdmin(ctx context.Context, users repository.UserRepository) (bool, error) {
	email := envOr("SEED_ADMIN_EMAIL", "admin@example.com")
	password := envOr("SEED_ADMIN_PASSWORD", "admin123")

	_, err := users.FindByEmail(ctx, email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	hash, err := service.HashPassword(password)
	if err != nil {
		return false, err
	}

	admin := &model.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    "Admin",
		LastName:     "User",
		Role:         model.RoleAdmin,
		IsActive:     true,
	}
	return true, users.Create(ctx, admin)
}

func seedTaxonomy(gormDB *gorm.DB) error {
	for _, d := range departments {
		var existing model.Department
		err := gormDB.Where("name = ?", d.Name).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := gormDB.Create(&d).Error; err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
	}
	for _, c := range categories {
		var existing model.Category
		err := gormDB.Where("name = ? AND department = ?", c.Name, c.Department).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := gormDB.Create(&c).Error; err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
	}
	for _, s := range subcategories {
		var existing model.SubCategory
		err := gormDB.Where("name = ? AND category_name = ?", s.Name, s.CategoryName).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := gormDB.Create(&s).Error; err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func seedTrends(gormDB *gorm.DB) error {
	for _, t := range trends {
		var existing model.Trend
		err := gormDB.Where("title = ?", t.Title).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			t.CreatedAt = time.Now()
			if err := gormDB.Create(&t).Error; err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
