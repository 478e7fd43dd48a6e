package quote

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/insurancepro-api/internal/domain"
)

const (
	surchargeRange = 10000
	validity       = "12 months"
)

type plan struct {
	name      string
	coverage  string
	basePrice int
}

var plans = []plan{
	{"Basic Coverage", "Third Party Liability", 15000},
	{"Standard Coverage", "Third Party + Own Damage", 18000},
	{"Comprehensive", "Full Coverage with Add-ons", 22000},
	{"Premium Plus", "Comprehensive + Roadside Assist", 25000},
	{"Elite Coverage", "Full + Personal Accident + Legal", 28000},
}

type Service interface {
	Generate(req domain.QuoteRequest) ([]domain.Quote, error)
}

type service struct {
	surcharge func(n int) int
}

// NewService returns a quote generator. surcharge draws from [0, n); nil
// means math/rand.
func NewService(surcharge func(n int) int) Service {
	if surcharge == nil {
		surcharge = rand.Intn
	}
	return &service{surcharge: surcharge}
}

// Generate prices one quote per plan for the given car. Each price is the
// plan's base price plus an independent surcharge below 10000.
func (s *service) Generate(req domain.QuoteRequest) ([]domain.Quote, error) {
	carMake := strings.TrimSpace(req.CarMake)
	carModel := strings.TrimSpace(req.CarModel)
	if req.CarYear <= 0 || carMake == "" || carModel == "" {
		return nil, fmt.Errorf("car year, make and model are required: %w", domain.ErrBadRequest)
	}

	quotes := make([]domain.Quote, 0, len(plans))
	for i, p := range plans {
		quotes = append(quotes, domain.Quote{
			ID:       i + 1,
			Type:     p.name,
			Coverage: p.coverage,
			Price:    p.basePrice + s.surcharge(surchargeRange),
			Validity: validity,
			CarYear:  int(req.CarYear),
			CarMake:  carMake,
			CarModel: carModel,
		})
	}
	return quotes, nil
}
