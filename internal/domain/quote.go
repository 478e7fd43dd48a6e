package domain

type Quote struct {
	ID       int    `json:"id"`
	Type     string `json:"type"`
	Coverage string `json:"coverage"`
	Price    int    `json:"price"`
	Validity string `json:"validity"`
	CarYear  int    `json:"carYear"`
	CarMake  string `json:"carMake"`
	CarModel string `json:"carModel"`
}

type QuoteRequest struct {
	CarYear  Year   `json:"carYear" validate:"required"`
	CarMake  string `json:"carMake" validate:"required"`
	CarModel string `json:"carModel" validate:"required"`
}
