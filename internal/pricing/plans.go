package pricing

// Plan is a marketing plan card: the headline per-meal price alongside the
// struck-through list price.
type Plan struct {
	Name          string   `json:"name"`
	DietType      DietType `json:"dietType"`
	Price         string   `json:"price"`
	OriginalPrice string   `json:"originalPrice"`
	Features      []string `json:"features"`
	Popular       bool     `json:"popular"`
}

var planFeatures = []string{
	"Unlimited Carry Forward",
	"Dedicated Support",
	"Macro Counted",
	"Free Delivery",
}

// Catalog returns the plan cards shown on the plans page. The headline
// prices are the 28-day per-meal rates.
func Catalog() []Plan {
	return []Plan{
		{
			Name:          "High Protein",
			DietType:      DietHighProtein,
			Price:         "₹199",
			OriginalPrice: "₹249",
			Features:      planFeatures,
			Popular:       true,
		},
		{
			Name:          "Balanced Diet",
			DietType:      DietBalanced,
			Price:         "₹189",
			OriginalPrice: "₹229",
			Features:      planFeatures,
			Popular:       false,
		},
	}
}
