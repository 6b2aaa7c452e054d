package restaurant

import "github.com/c360studio/semstreams/vocabulary"

// Descriptive predicates carrying literal values.
const (
	// Name is the display name of any entity.
	Name = "restaurant.meta.name"

	// Description is free-text describing a menu item.
	Description = "restaurant.meta.description"

	// FirstLineAddress is the street line of an address.
	FirstLineAddress = "restaurant.address.first_line"

	// PostCode is the postal code of an address.
	PostCode = "restaurant.address.post_code"

	// Amount is the numeric price of an item value.
	Amount = "restaurant.value.amount"
)

// Location predicates linking places to the places that contain them.
const (
	// LocatedIn is the generic containment predicate every specific
	// location predicate is also emitted under.
	LocatedIn = "restaurant.location.located_in"

	// IsStateOf links a state to its country.
	IsStateOf = "restaurant.location.is_state_of"

	// LocatedInCountry links a state to its country.
	LocatedInCountry = "restaurant.location.located_in_country"

	// LocatedInState links a city to its state.
	LocatedInState = "restaurant.location.located_in_state"

	// LocatedCountry links a city or address to its country.
	LocatedCountry = "restaurant.location.located_country"

	// LocatedState links an address to its state.
	LocatedState = "restaurant.location.located_state"

	// LocatedCity links an address to its city.
	LocatedCity = "restaurant.location.located_city"

	// LocatedAddress links a restaurant to its address.
	LocatedAddress = "restaurant.location.located_address"
)

// Menu predicates.
const (
	// ServedInRestaurant links a menu item to the restaurant serving it.
	ServedInRestaurant = "restaurant.menu.served_in_restaurant"

	// HasValue links a menu item to its price.
	HasValue = "restaurant.menu.has_value"

	// AmountCurrency links an item value to its currency.
	AmountCurrency = "restaurant.value.amount_currency"

	// CurrencyOfCountry links a currency to the country using it.
	CurrencyOfCountry = "restaurant.value.currency_of_country"

	// IsIngredientOf links an ingredient instance to a menu item.
	IsIngredientOf = "restaurant.menu.is_ingredient_of"
)

// localNames maps dotted predicates to their local names in the namespace.
var localNames = map[string]string{
	Name:               "name",
	Description:        "description",
	FirstLineAddress:   "firstLineAddress",
	PostCode:           "postCode",
	Amount:             "amount",
	LocatedIn:          "locatedIn",
	IsStateOf:          "isStateOf",
	LocatedInCountry:   "locatedInCountry",
	LocatedInState:     "locatedInState",
	LocatedCountry:     "locatedCountry",
	LocatedState:       "locatedState",
	LocatedCity:        "locatedCity",
	LocatedAddress:     "locatedAddress",
	ServedInRestaurant: "servedInRestaurant",
	HasValue:           "hasValue",
	AmountCurrency:     "amountCurrency",
	CurrencyOfCountry:  "currencyOfCountry",
	IsIngredientOf:     "isIngredientOf",
}

// AllPredicates lists every predicate of the vocabulary in declaration order.
var AllPredicates = []string{
	Name, Description, FirstLineAddress, PostCode, Amount,
	LocatedIn, IsStateOf, LocatedInCountry, LocatedInState,
	LocatedCountry, LocatedState, LocatedCity, LocatedAddress,
	ServedInRestaurant, HasValue, AmountCurrency, CurrencyOfCountry, IsIngredientOf,
}

// The registry records default-namespace IRIs; Terms rebinds them to a
// configured namespace.
func init() {
	// Descriptive predicates
	vocabulary.Register(Name,
		vocabulary.WithDescription("Display name of a location, restaurant, currency or menu item"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(DefaultNamespace+localNames[Name]))

	vocabulary.Register(Description,
		vocabulary.WithDescription("Free-text description of a menu item"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(DefaultNamespace+localNames[Description]))

	vocabulary.Register(FirstLineAddress,
		vocabulary.WithDescription("Street line of an address"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(DefaultNamespace+localNames[FirstLineAddress]))

	vocabulary.Register(PostCode,
		vocabulary.WithDescription("Postal code of an address"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(DefaultNamespace+localNames[PostCode]))

	vocabulary.Register(Amount,
		vocabulary.WithDescription("Numeric price of an item value"),
		vocabulary.WithDataType("float64"),
		vocabulary.WithIRI(DefaultNamespace+localNames[Amount]))

	// Location predicates
	vocabulary.Register(LocatedIn,
		vocabulary.WithDescription("Generic containment between locations"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(DefaultNamespace+localNames[LocatedIn]))

	vocabulary.Register(IsStateOf,
		vocabulary.WithDescription("State belongs to country"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(DefaultNamespace+localNames[IsStateOf]))

	vocabulary.Register(LocatedInCountry,
		vocabulary.WithDescription("State is located in country"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(DefaultNamespace+localNames[LocatedInCountry]))

	vocabulary.Register(LocatedInState,
		vocabulary.WithDescription("City is located in state"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(DefaultNamespace+localNames[LocatedInState]))

	vocabulary.Register(LocatedCountry,
		vocabulary.WithDescription("City or address is located in country"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(DefaultNamespace+localNames[LocatedCountry]))

	vocabulary.Register(LocatedState,
		vocabulary.WithDescription("Address is located in state"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(DefaultNamespace+localNames[LocatedState]))

	vocabulary.Register(LocatedCity,
		vocabulary.WithDescription("Address is located in city"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(DefaultNamespace+localNames[LocatedCity]))

	vocabulary.Register(LocatedAddress,
		vocabulary.WithDescription("Restaurant is located at address"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(DefaultNamespace+localNames[LocatedAddress]))

	// Menu predicates
	vocabulary.Register(ServedInRestaurant,
		vocabulary.WithDescription("Menu item is served in restaurant"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(DefaultNamespace+localNames[ServedInRestaurant]))

	vocabulary.Register(HasValue,
		vocabulary.WithDescription("Menu item has price"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(DefaultNamespace+localNames[HasValue]))

	vocabulary.Register(AmountCurrency,
		vocabulary.WithDescription("Item value is expressed in currency"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(DefaultNamespace+localNames[AmountCurrency]))

	vocabulary.Register(CurrencyOfCountry,
		vocabulary.WithDescription("Currency is used in country"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(DefaultNamespace+localNames[CurrencyOfCountry]))

	vocabulary.Register(IsIngredientOf,
		vocabulary.WithDescription("Ingredient instance belongs to menu item"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(DefaultNamespace+localNames[IsIngredientOf]))
}
