package domain

import "time"

// DietType is the fixed set of dietary restrictions a user can declare.
type DietType string

const (
	DietVeg              DietType = "VEG"
	DietVegan            DietType = "VEGAN"
	DietJain             DietType = "JAIN"
	DietNonVegNoBeef     DietType = "NON_VEG_NO_BEEF"
	DietLowCarb          DietType = "LOW_CARB"
	DietDiabeticFriendly DietType = "DIABETIC_FRIENDLY"
)

func (d DietType) Valid() bool {
	switch d {
	case DietVeg, DietVegan, DietJain, DietNonVegNoBeef, DietLowCarb, DietDiabeticFriendly:
		return true
	}
	return false
}

type User struct {
	ID                  int64
	Email               string
	HashedPassword      string
	Name                *string
	Age                 *int
	Diet                *DietType
	DailyFoodBudget     *float64
	HotelBudgetPerNight *float64
	AvatarURL           *string
	IsActive            bool
	EmailVerified       bool
	OTPCode             *string
	OTPExpiry           *time.Time
	ResetToken          *string
	ResetTokenExpiry    *time.Time
	CreatedAt           time.Time
}

// FoodBudget returns the per-person daily food budget, zero when unset.
func (u User) FoodBudget() float64 {
	if u.DailyFoodBudget == nil {
		return 0
	}
	return *u.DailyFoodBudget
}

// HotelBudget returns the per-night hotel budget, zero when unset.
func (u User) HotelBudget() float64 {
	if u.HotelBudgetPerNight == nil {
		return 0
	}
	return *u.HotelBudgetPerNight
}
