package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRulesApplyInOrder(t *testing.T) {
	rs := Rules{rule(`a`, "b"), rule(`b`, "c")}
	assert.Equal(t, "ccc", rs.Apply("abc"))
}

func TestCategories(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"Pizza Places,Italian Restaurant", []string{"Pizza Place", "Italian Restaurant"}},
		{"Restaurants, Pizza", []string{"Pizza"}},
		{"Bars & Grills", []string{"Bars Grill"}},
		{"Sandwiches and Salads", []string{"Sandwiches Salad"}},
		{"Take-out/Delivery", []string{"Take-outDelivery"}},
		{"Glass, Bass", []string{"Glass", "Bass"}},
		{"Pizza,,", []string{"Pizza"}},
		{"nan", nil},
		{"", nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Categories.Split(tt.in), "Categories.Split(%q)", tt.in)
	}
}

func TestDescriptions(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"tomato and mozzarella", []string{"tomato", "mozzarella"}},
		{"ham, pineapple or olives", []string{"ham", "pineapple", "olive"}},
		{"anchovies and capers", []string{"anchovie", "caper"}},
		{"swiss cheese", []string{"swiss cheese"}},
		{"Watercress", []string{"Watercress"}},
		{"Sauce & Cheese.", []string{"Sauce", "Cheese"}},
		{"Pork sausage", []string{"Pork sausage"}},
		{"Brandy", []string{"Brandy"}},
		{"", nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Descriptions.Split(tt.in), "Descriptions.Split(%q)", tt.in)
	}
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b c", "d"}, SplitList(" a, b c ,,d, "))
	assert.Nil(t, SplitList(""))
}

func TestNormalizeMenuItem(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Pizza, Margherita", "Margherita Pizza"},
		{"pizza,Four Cheese", "Four Cheese pizza"},
		{"Pizza , Hawaiian ", "Hawaiian Pizza"},
		{"Margherita Pizza", "Margherita Pizza"},
		{"Pizza, 2 Toppings", "Pizza, 2 Toppings"},
		{"Calzone, Ham", "Calzone, Ham"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeMenuItem(tt.in), "NormalizeMenuItem(%q)", tt.in)
	}
}
