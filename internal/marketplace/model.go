package marketplace

import "math"

// Vendor is a street-food business registered on the marketplace.
type Vendor struct {
	ID           int64        `json:"id" yaml:"id"`
	Name         string       `json:"name" yaml:"name"`
	Phone        string       `json:"phone" yaml:"phone"`
	Location     string       `json:"location" yaml:"location"`
	BusinessType BusinessType `json:"business_type" yaml:"business_type"`
}

// Supplier sells raw materials to vendors.
type Supplier struct {
	ID            int64   `json:"id" yaml:"id"`
	Name          string  `json:"name" yaml:"name"`
	Phone         string  `json:"phone" yaml:"phone"`
	Location      string  `json:"location" yaml:"location"`
	Rating        float64 `json:"rating" yaml:"rating"`
	HygieneRating float64 `json:"hygiene_rating" yaml:"hygiene_rating"`
	Verified      bool    `json:"verified" yaml:"verified"`
}

// ReliabilityScore is the mean of the rating and the hygiene rating.
func (s Supplier) ReliabilityScore() float64 {
	return (s.Rating + s.HygieneRating) / 2
}

// Product is a catalog item offered by one supplier.
type Product struct {
	ID             int64   `json:"id" yaml:"id"`
	Name           string  `json:"name" yaml:"name"`
	Category       string  `json:"category" yaml:"category"`
	CurrentPrice   float64 `json:"current_price" yaml:"price"`
	Unit           string  `json:"unit" yaml:"unit"`
	StockAvailable int     `json:"stock_available" yaml:"stock"`
	SupplierID     int64   `json:"supplier_id" yaml:"supplier_id"`
	SupplierName   string  `json:"supplier_name,omitempty" yaml:"-"`
}

// SupplierStats summarizes the supplier table.
type SupplierStats struct {
	Total         int     `json:"total"`
	Verified      int     `json:"verified"`
	AverageRating float64 `json:"average_rating"`
	// Locations counts distinct verified supplier locations.
	Locations int `json:"locations"`
}

// VerifiedPercent returns verified/total*100, or 0 for an empty table.
func (s SupplierStats) VerifiedPercent() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Verified) / float64(s.Total) * 100
}

// Summarize computes SupplierStats over suppliers.
func Summarize(suppliers []Supplier) SupplierStats {
	stats := SupplierStats{Total: len(suppliers)}
	if len(suppliers) == 0 {
		return stats
	}
	locations := make(map[string]struct{}, len(suppliers))
	var ratingSum float64
	for _, s := range suppliers {
		if s.Verified {
			stats.Verified++
			locations[s.Location] = struct{}{}
		}
		ratingSum += s.Rating
	}
	stats.AverageRating = ratingSum / float64(len(suppliers))
	if math.IsNaN(stats.AverageRating) {
		stats.AverageRating = 0
	}
	stats.Locations = len(locations)
	return stats
}
