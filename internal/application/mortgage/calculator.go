package mortgage

import (
	"github.com/shopspring/decimal"

	"github.com/listings/backend/internal/domain/shared"
)

// CalculateRequest is a mortgage calculation input. Rate is the annual
// interest rate in percent; TermYears is the loan duration.
type CalculateRequest struct {
	Price       decimal.Decimal `json:"price" binding:"required"`
	DownPayment decimal.Decimal `json:"down_payment"`
	AnnualRate  decimal.Decimal `json:"annual_rate" binding:"required"`
	TermYears   int             `json:"term_years" binding:"required,min=1,max=50"`
}

// CalculateResponse is the annuity schedule summary
type CalculateResponse struct {
	LoanAmount     decimal.Decimal `json:"loan_amount"`
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	TotalPayment   decimal.Decimal `json:"total_payment"`
	TotalInterest  decimal.Decimal `json:"total_interest"`
	Months         int             `json:"months"`
}

var (
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
)

// Calculate computes the fixed monthly annuity payment for the loan.
// Amounts are rounded to cents.
func Calculate(req CalculateRequest) (*CalculateResponse, error) {
	if req.Price.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price must be positive")
	}
	if req.DownPayment.IsNegative() {
		return nil, shared.NewDomainError("INVALID_DOWN_PAYMENT", "Down payment cannot be negative")
	}
	if req.DownPayment.GreaterThanOrEqual(req.Price) {
		return nil, shared.NewDomainError("INVALID_DOWN_PAYMENT", "Down payment must be less than the price")
	}
	if req.AnnualRate.IsNegative() || req.AnnualRate.GreaterThan(hundred) {
		return nil, shared.NewDomainError("INVALID_RATE", "Annual rate must be between 0 and 100")
	}
	if req.TermYears < 1 {
		return nil, shared.NewDomainError("INVALID_TERM", "Term must be at least one year")
	}

	principal := req.Price.Sub(req.DownPayment)
	months := req.TermYears * 12
	n := decimal.NewFromInt(int64(months))

	var monthly decimal.Decimal
	if req.AnnualRate.IsZero() {
		monthly = principal.DivRound(n, 2)
	} else {
		// monthly rate with enough precision for the power term
		rate := req.AnnualRate.DivRound(twelve.Mul(hundred), 12)
		factor := rate.Add(decimal.NewFromInt(1)).Pow(n)
		monthly = principal.Mul(rate).Mul(factor).DivRound(factor.Sub(decimal.NewFromInt(1)), 2)
	}

	total := monthly.Mul(n)
	return &CalculateResponse{
		LoanAmount:     principal,
		MonthlyPayment: monthly,
		TotalPayment:   total,
		TotalInterest:  total.Sub(principal),
		Months:         months,
	}, nil
}
