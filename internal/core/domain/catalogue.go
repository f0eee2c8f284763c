package domain

// ServiceOffering is one entry in the services catalogue.
type ServiceOffering struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
	Pricing     string   `json:"pricing"`
}

// Catalogue groups offerings by audience.
type Catalogue struct {
	Business   []ServiceOffering `json:"business"`
	Consumer   []ServiceOffering `json:"consumer"`
	Additional []string          `json:"additional"`
}

// ServiceCatalogue returns the services offered, grouped by audience.
func ServiceCatalogue() Catalogue {
	return Catalogue{
		Business: []ServiceOffering{
			{
				Title:       "Bulk Fuel Supply",
				Description: "Large-scale petroleum delivery for industrial operations",
				Features: []string{
					"Minimum order quantities from 10,000 liters",
					"Competitive wholesale pricing",
					"Quality certified AGO, PMS, DPK",
					"Industrial lubricants and oils",
					"Custom delivery scheduling",
				},
				Pricing: "Contact for volume-based pricing",
			},
			{
				Title:       "Fleet Management",
				Description: "Comprehensive fuel solutions for vehicle fleets",
				Features: []string{
					"24/7 emergency fuel delivery",
					"Fleet fuel cards and tracking",
					"Usage analytics and reporting",
					"Route optimization consultancy",
					"Preventive maintenance support",
				},
				Pricing: "Starting from ₦180/liter + service fees",
			},
			{
				Title:       "Storage Solutions",
				Description: "Safe and secure fuel storage facilities",
				Features: []string{
					"Underground storage tanks",
					"Above-ground tank installations",
					"Tank monitoring systems",
					"Safety compliance audits",
					"Environmental protection measures",
				},
				Pricing: "Custom installation quotes available",
			},
		},
		Consumer: []ServiceOffering{
			{
				Title:       "Retail Fuel Stations",
				Description: "Convenient fuel purchases for individual customers",
				Features: []string{
					"Premium quality PMS (Petrol)",
					"Clean AGO (Diesel)",
					"Household DPK (Kerosene)",
					"Quick service guarantees",
					"Multiple payment options",
				},
				Pricing: "Market competitive rates",
			},
			{
				Title:       "Home Delivery",
				Description: "Direct-to-home fuel delivery service",
				Features: []string{
					"Minimum 200 liters for delivery",
					"Same-day delivery available",
					"Quality assurance testing",
					"Safety equipment provided",
					"Professional delivery team",
				},
				Pricing: "₦200/liter + ₦5,000 delivery fee",
			},
			{
				Title:       "Emergency Supply",
				Description: "24/7 emergency fuel delivery service",
				Features: []string{
					"Round-the-clock availability",
					"Priority emergency response",
					"Generator fuel delivery",
					"Backup power solutions",
					"Critical facility support",
				},
				Pricing: "Premium rates apply for emergency service",
			},
		},
		Additional: []string{
			"Fuel quality testing and certification",
			"Tank cleaning and maintenance",
			"Environmental compliance consulting",
			"Logistics and transportation management",
			"Custom fuel blending services",
			"Equipment leasing and rental",
		},
	}
}
