package convert

import (
	"fmt"
	"maps"

	"github.com/c360studio/semlink/resolver"
	"github.com/c360studio/semlink/vocabulary/restaurant"
)

// Kind names an entity kind with its own resolution policy.
type Kind string

// Entity kinds resolved during conversion.
const (
	KindCountry    Kind = "country"
	KindState      Kind = "state"
	KindCity       Kind = "city"
	KindAddress    Kind = "address"
	KindRestaurant Kind = "restaurant"
	KindCurrency   Kind = "currency"
	KindItemValue  Kind = "item_value"
	KindMenuItem   Kind = "menu_item"
	KindIngredient Kind = "ingredient"
)

// Kinds lists every kind in conversion order.
var Kinds = []Kind{
	KindCountry, KindState, KindCity, KindAddress, KindRestaurant,
	KindCurrency, KindItemValue, KindMenuItem, KindIngredient,
}

// ParseKind validates a kind name.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown entity kind %q", s)
}

// Policies maps entity kinds to resolution policies. Kinds without an entry
// resolve locally.
type Policies map[Kind]resolver.Policy

// DefaultPolicies returns the per-kind policies for the restaurant data.
// Composite identifiers (addresses, restaurants, item values) are always
// local; short, ambiguous names need high similarity before an external
// identifier is trusted.
func DefaultPolicies(defaultThreshold float64) Policies {
	return Policies{
		KindCountry:    resolver.External(defaultThreshold, restaurant.CategoryCountries),
		KindState:      resolver.External(0.8, restaurant.CategoryUSStates),
		KindCity:       resolver.External(0.8, restaurant.CategoryUSCities),
		KindAddress:    resolver.Local(),
		KindRestaurant: resolver.Local(),
		KindCurrency:   resolver.External(0.8, ""),
		KindItemValue:  resolver.Local(),
		KindMenuItem:   resolver.External(0.7, ""),
		KindIngredient: resolver.External(0.65, restaurant.CategoryFoodIngredients),
	}
}

// For returns the policy for kind.
func (p Policies) For(kind Kind) resolver.Policy {
	return p[kind]
}

// Offline returns a copy with external resolution disabled for every kind.
func (p Policies) Offline() Policies {
	out := maps.Clone(p)
	for k, pol := range out {
		pol.EnableExternal = false
		out[k] = pol
	}
	return out
}

// Validate checks every policy.
func (p Policies) Validate() error {
	for k, pol := range p {
		if err := pol.Validate(); err != nil {
			return fmt.Errorf("policy %s: %w", k, err)
		}
	}
	return nil
}
