package seed

import (
	"github.com/gartstein/usermanagement/internal/usermanagement/models"
	"github.com/google/uuid"
)

var (
	technologyID    = uuid.MustParse("a1b2c3d4-1234-5678-9abc-123456789001")
	healthcareID    = uuid.MustParse("a1b2c3d4-1234-5678-9abc-123456789002")
	financeID       = uuid.MustParse("a1b2c3d4-1234-5678-9abc-123456789003")
	manufacturingID = uuid.MustParse("a1b2c3d4-1234-5678-9abc-123456789004")
	retailID        = uuid.MustParse("a1b2c3d4-1234-5678-9abc-123456789005")
)

// Industries returns the default industries with their fixed ids.
func Industries() []models.Industry {
	return []models.Industry{
		{ID: technologyID, Name: "Technology", Description: "Technology and software companies"},
		{ID: healthcareID, Name: "Healthcare", Description: "Healthcare and medical services"},
		{ID: financeID, Name: "Finance", Description: "Banking and financial services"},
		{ID: manufacturingID, Name: "Manufacturing", Description: "Industrial manufacturing"},
		{ID: retailID, Name: "Retail", Description: "Retail and e-commerce"},
	}
}

// Companies returns the default companies with their fixed ids.
func Companies() []models.Company {
	company := func(id, name string, industryID uuid.UUID) models.Company {
		return models.Company{ID: uuid.MustParse(id), Name: name, IndustryID: industryID}
	}
	return []models.Company{
		company("b1b2c3d4-1234-5678-9abc-123456789101", "Microsoft", technologyID),
		company("b1b2c3d4-1234-5678-9abc-123456789102", "Google", technologyID),
		company("b1b2c3d4-1234-5678-9abc-123456789103", "Apple", technologyID),
		company("b1b2c3d4-1234-5678-9abc-123456789104", "Johnson & Johnson", healthcareID),
		company("b1b2c3d4-1234-5678-9abc-123456789105", "JPMorgan Chase", financeID),
		company("b1b2c3d4-1234-5678-9abc-123456789106", "Amazon", retailID),
		company("b1b2c3d4-1234-5678-9abc-123456789107", "Tesla", manufacturingID),
		company("b1b2c3d4-1234-5678-9abc-123456789108", "Pfizer", healthcareID),
		company("b1b2c3d4-1234-5678-9abc-123456789109", "Goldman Sachs", financeID),
		company("b1b2c3d4-1234-5678-9abc-123456789110", "Walmart", retailID),
	}
}
