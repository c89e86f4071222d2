package shop

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// Profile is the shop letterhead printed on documents
// Example config/shop.json:
// {
//   "name": "Boutique Jasmin",
//   "address": "12 rue de Marseille, 1000 Tunis",
//   "phone": "+216 71 000 000",
//   "email": "contact@jasmin.tn",
//   "taxId": "1234567/A/M/000",
//   "rib": "08 006 0123456789012 34",
//   "logoUrl": "/images/logo.png",
//   "ticketFooter": "Merci de votre visite !",
//   "quoteValidityDays": 15
// }
type Profile struct {
	Name              string `json:"name"`
	Address           string `json:"address"`
	Phone             string `json:"phone"`
	Email             string `json:"email"`
	TaxID             string `json:"taxId"` // matricule fiscal
	RIB               string `json:"rib"`
	LogoURL           string `json:"logoUrl"`
	TicketFooter      string `json:"ticketFooter"`
	QuoteValidityDays int    `json:"quoteValidityDays"`
}

// DefaultProfile is used when no profile file is configured
func DefaultProfile() *Profile {
	return &Profile{
		Name:              "Boutique",
		TicketFooter:      "Merci de votre visite !",
		QuoteValidityDays: 15,
	}
}

// LoadProfile reads the shop profile from a JSON file.
// A missing file is not an error: documents print with the default letterhead.
func LoadProfile(configPath string) (*Profile, error) {
	if configPath == "" {
		return DefaultProfile(), nil
	}

	// Resolve config path
	if !filepath.IsAbs(configPath) {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		configPath = filepath.Join(wd, configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Printf("⚠️  ShopProfile: %s not found, using default letterhead", configPath)
			return DefaultProfile(), nil
		}
		return nil, fmt.Errorf("failed to read shop profile: %w", err)
	}

	profile := DefaultProfile()
	if err := json.Unmarshal(data, profile); err != nil {
		return nil, fmt.Errorf("failed to parse shop profile: %w", err)
	}

	if err := validateProfile(profile); err != nil {
		return nil, fmt.Errorf("invalid shop profile: %w", err)
	}

	log.Printf("✅ ShopProfile: Successfully loaded shop profile from %s", configPath)
	return profile, nil
}

func validateProfile(p *Profile) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if p.QuoteValidityDays < 0 {
		return fmt.Errorf("quoteValidityDays cannot be negative")
	}
	return nil
}
