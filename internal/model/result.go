package model

// HealthStatus grades a direct-deduction result.
type HealthStatus string

// Health grades, from worst to best.
const (
	HealthCritical HealthStatus = "critical"
	HealthMarginal HealthStatus = "marginal"
	HealthHealthy  HealthStatus = "healthy"
)

// EntityFigures holds the computed figures for one entity code.
type EntityFigures struct {
	Code    string
	Revenue float64
	SoldQty float64
	COGS    float64
	Tax     float64
	Profit  float64
}

// ComputationResult is the complete outcome of one profit computation.
// Deductions, Margin and Status are only populated by the
// direct-deduction policy; Tax fields only by the proportional policy.
type ComputationResult struct {
	PerEntity []EntityFigures

	RevenueTotal float64
	TaxTotal     float64
	COGSTotal    float64
	ProfitTotal  float64
	SoldQtyTotal float64

	Deductions float64
	Margin     float64
	Status     HealthStatus

	// Degraded is set when neither a quantity nor an operation column
	// was found, so cost of goods sold could not be computed.
	Degraded bool
}
