package catalog

import "github.com/aaravmahajanofficial/afos-pos/internal/models"

// seedProducts is the built-in shelf used when no catalog file is configured.
var seedProducts = []models.Product{
	{
		ID: "rice-25kg", Name: "Rice 25kg", Description: "Long grain rice, 25kg sack",
		Price: 42000, Discount: 10, Category: models.CategoryFood, Stock: 40,
		Image: "/images/rice.png", Tags: []string{"staple", "bulk"},
	},
	{
		ID: "beans-5kg", Name: "Beans 5kg", Description: "Dry red beans, 5kg bag",
		Price: 7500, Category: models.CategoryFood, Stock: 60,
		Image: "/images/beans.png", Tags: []string{"staple"},
	},
	{
		ID: "sugar-2kg", Name: "Sugar 2kg", Description: "Refined white sugar",
		Price: 3200, Category: models.CategoryFood, Stock: 80,
		Image: "/images/sugar.png", Tags: []string{"baking"},
	},
	{
		ID: "cooking-oil-5l", Name: "Cooking Oil 5L", Description: "Sunflower cooking oil, 5 litres",
		Price: 14500, Discount: 15, Category: models.CategoryFood, Stock: 35,
		Image: "/images/oil.png", Tags: []string{"kitchen"},
	},
	{
		ID: "gas-12kg", Name: "Gas Cylinder Refill 12kg", Description: "LPG refill for 12kg cylinder",
		Price: 18000, Category: models.CategoryCooking, Stock: 25,
		Image: "/images/gas.png", Tags: []string{"fuel", "lpg"},
	},
	{
		ID: "gas-burner", Name: "Two-Plate Gas Burner", Description: "Stainless steel two-plate burner",
		Price: 38000, Discount: 20, Category: models.CategoryCooking, Stock: 12,
		Image: "/images/burner.png", Tags: []string{"lpg"},
	},
	{
		ID: "charcoal-stove", Name: "Improved Charcoal Stove", Description: "Fuel-saving ceramic stove",
		Price: 9000, Category: models.CategoryCooking, Stock: 18,
		Image: "/images/stove.png", Tags: []string{"charcoal"},
	},
	{
		ID: "soap-bar-pack", Name: "Bath Soap (6 pack)", Description: "Antibacterial bath soap bars",
		Price: 4800, Category: models.CategoryHygiene, Stock: 120,
		Image: "/images/soap.png", Tags: []string{"bath"},
	},
	{
		ID: "toothpaste", Name: "Toothpaste 150ml", Description: "Fluoride toothpaste",
		Price: 1800, Discount: 5, Category: models.CategoryHygiene, Stock: 90,
		Image: "/images/toothpaste.png", Tags: []string{"dental"},
	},
	{
		ID: "detergent-3kg", Name: "Laundry Detergent 3kg", Description: "Powder detergent for hand and machine wash",
		Price: 8500, Category: models.CategoryHygiene, Stock: 50,
		Image: "/images/detergent.png", Tags: []string{"laundry"},
	},
	{
		ID: "cookware-set", Name: "Cookware Set (5 pcs)", Description: "Aluminium pots with lids",
		Price: 45000, Discount: 25, Category: models.CategoryKitchen, Stock: 8,
		Image: "/images/cookware.png", Tags: []string{"pots"},
	},
	{
		ID: "thermos-flask", Name: "Thermos Flask 2L", Description: "Vacuum flask keeps drinks hot for 12 hours",
		Price: 12000, Category: models.CategoryKitchen, Stock: 30,
		Image: "/images/thermos.png", Tags: []string{"tea"},
	},
	{
		ID: "plate-set", Name: "Dinner Plate Set (6)", Description: "Ceramic dinner plates",
		Price: 15000, Category: models.CategoryKitchen, Stock: 0,
		Image: "/images/plates.png", Tags: []string{"tableware"},
	},
	{
		ID: "fridge-180l", Name: "Refrigerator 180L", Description: "Single-door refrigerator, energy class A",
		Price: 385000, Discount: 10, Category: models.CategoryAppliance, Stock: 4,
		Image: "/images/fridge.png", Tags: []string{"cooling"},
	},
	{
		ID: "electric-kettle", Name: "Electric Kettle 1.7L", Description: "Auto shut-off cordless kettle",
		Price: 16500, Category: models.CategoryAppliance, Stock: 22,
		Image: "/images/kettle.png", Tags: []string{"tea"},
	},
	{
		ID: "iron-box", Name: "Dry Iron", Description: "1200W dry iron for uniforms",
		Price: 14000, Category: models.CategoryAppliance, Stock: 15,
		Image: "/images/iron.png", Tags: []string{"uniform"},
	},
	{
		ID: "mattress-double", Name: "Foam Mattress (Double)", Description: "High density foam mattress",
		Price: 95000, Category: models.CategoryHousehold, Stock: 6,
		Image: "/images/mattress.png", Tags: []string{"bedroom"},
	},
	{
		ID: "blanket", Name: "Wool Blanket", Description: "Warm wool blanket, 200x150cm",
		Price: 22000, Discount: 30, Category: models.CategoryHousehold, Stock: 20,
		Image: "/images/blanket.png", Tags: []string{"bedroom"},
	},
	{
		ID: "solar-lamp", Name: "Solar Lamp", Description: "Rechargeable solar lamp with phone charger",
		Price: 19000, Category: models.CategoryHousehold, Stock: 14,
		Image: "/images/solar-lamp.png", Tags: []string{"lighting"},
	},
}
