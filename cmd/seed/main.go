package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"lawpro-be/internal/config"
	"lawpro-be/internal/model"
	"lawpro-be/pkg/database"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// lawyerSeed is one directory row in the seed file.
type lawyerSeed struct {
	LawFirm     string `yaml:"law_firm"`
	PhoneNumber string `yaml:"phone_number"`
	Email       string `yaml:"email"`
	Website     string `yaml:"website"`
	City        string `yaml:"city"`
	County      string `yaml:"county"`
	State       string `yaml:"state"`
}

type seedFile struct {
	Lawyers []lawyerSeed `yaml:"lawyers"`
}

func main() {
	cfg := config.Load()

	path := flag.String("file", cfg.Lawyer.SeedFile, "YAML file with lawyer directory rows")
	flag.Parse()

	raw, err := os.ReadFile(*path)
	if err != nil {
		log.Fatalf("Error: Failed to read %s: %v", *path, err)
	}

	var file seedFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		log.Fatalf("Error: Failed to parse %s: %v", *path, err)
	}

	db, err := database.NewGormDB(database.GormConfig{
		Driver: cfg.Database.Driver,
		DSN:    cfg.Database.Connection,
	})
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Printf("Seeding %d lawyers from %s...", len(file.Lawyers), *path)

	created, skipped := 0, 0
	for _, s := range file.Lawyers {
		if strings.TrimSpace(s.LawFirm) == "" {
			log.Println("Row without law_firm, skipping...")
			skipped++
			continue
		}

		exists, err := lawyerExists(db, s)
		if err != nil {
			log.Fatalf("Error: Failed to check %q: %v", s.LawFirm, err)
		}
		if exists {
			log.Printf("Lawyer '%s' (%s, %s) already exists, skipping...", s.LawFirm, s.County, s.State)
			skipped++
			continue
		}

		row := model.Lawyer{
			LawFirm:     s.LawFirm,
			PhoneNumber: s.PhoneNumber,
			Email:       s.Email,
			Website:     s.Website,
			City:        s.City,
			County:      s.County,
			State:       s.State,
		}
		if err := db.Create(&row).Error; err != nil {
			log.Fatalf("Error: Failed to create %q: %v", s.LawFirm, err)
		}
		created++
	}

	log.Printf("✅ Seeding completed: %d created, %d skipped", created, skipped)
}

func lawyerExists(db *gorm.DB, s lawyerSeed) (bool, error) {
	var count int64
	err := db.Model(&model.Lawyer{}).
		Where(`"Law Firm" = ? AND county = ? AND state = ?`, s.LawFirm, s.County, s.State).
		Count(&count).Error
	return count > 0, err
}
