package database

import (
	"log"

	"vyaparkendra/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type seedService struct {
	name, category, description, processing string
	price, commission                       int64
}

var starterCatalog = []seedService{
	{"Aadhaar Update Assistance", "Government & Citizen Services", "Assistance with Aadhaar updates and corrections.", "1-2 Days", 100, 20},
	{"PAN New / Correction", "Government & Citizen Services", "Apply for a new PAN card or correct existing details.", "3-5 Days", 200, 50},
	{"Passport Registration / Renewal", "Government & Citizen Services", "Assistance with new passport application or renewal.", "10-15 Days", 500, 100},
	{"E-Shram Card", "Government & Citizen Services", "Registration for E-Shram card.", "Instant", 50, 15},
	{"AEPS Cash Withdrawal", "Banking & Finance", "Aadhaar Enabled Payment System cash withdrawal.", "Instant", 0, 10},
	{"Insurance Enrollment (Life / Health / Motor)", "Banking & Finance", "Enrollment for various insurance policies.", "1-2 Days", 500, 150},
	{"Udyam Registration", "Udyam & Business Compliance", "MSME Udyam registration.", "1-2 Days", 300, 100},
	{"New GST Registration", "GST Registration Services", "Application for new GST registration.", "3-7 Days", 1000, 250},
	{"GSTR-3B Monthly Filing", "GST Return Filing", "Filing of GSTR-3B returns.", "1-2 Days", 500, 100},
	{"ITR-1 (Salaried)", "ITR Filing", "Income Tax Return filing for salaried individuals.", "1-2 Days", 500, 100},
	{"TDS Return Filing", "Other Important Tax Services", "Filing of quarterly TDS returns.", "2-3 Days", 1000, 200},
	{"LLP Formation", "Business Registrations", "Incorporation of Limited Liability Partnership.", "10-15 Days", 5000, 1000},
}

// SeedCatalog inserts the starter service catalog on an empty platform.
func SeedCatalog(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Service{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, s := range starterCatalog {
		svc := models.Service{
			ID:             uuid.New().String(),
			Name:           s.name,
			Category:       s.category,
			Price:          decimal.NewFromInt(s.price),
			Commission:     decimal.NewFromInt(s.commission),
			Description:    s.description,
			ProcessingTime: s.processing,
		}
		if err := db.Create(&svc).Error; err != nil {
			return err
		}
	}
	log.Printf("✅ Seeded %d catalog services", len(starterCatalog))
	return nil
}
