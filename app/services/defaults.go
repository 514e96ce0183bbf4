package services

import "github.com/shashiranjanraj/storefront/app/models"

// DefaultMenu returns a fresh copy of the sample catalog installed on first
// run and by ResetToDefaults.
func DefaultMenu() []models.MenuItem {
	return []models.MenuItem{
		{ID: "m1", Name: "Classic burger", Description: "Beef, cheese, lettuce and tomato", Price: 7.50, Category: "Mains", Icon: "🍔"},
		{ID: "m2", Name: "Margherita pizza", Description: "Tomato sauce, cheese and basil", Price: 8.90, Category: "Mains", Icon: "🍕"},
		{ID: "m3", Name: "Caesar salad", Description: "Lettuce, chicken and Caesar dressing", Price: 6.20, Category: "Salads", Icon: "🥗"},
		{ID: "m4", Name: "French fries", Description: "Crispy", Price: 3.00, Category: "Sides", Icon: "🍟"},
		{ID: "m5", Name: "Soup of the day", Description: "Warm and homemade", Price: 4.50, Category: "Starters", Icon: "🍲"},
		{ID: "m6", Name: "Brownie with ice cream", Description: "Sweet dessert", Price: 3.80, Category: "Desserts", Icon: "🍫"},
	}
}
