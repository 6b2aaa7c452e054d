// Package restaurant defines the vocabulary used by the restaurant knowledge
// graph: the default namespace, class names and predicates.
//
// Predicates use the dotted notation of the semstreams vocabulary registry
// internally (e.g. "restaurant.location.is_state_of") and are registered with
// their RDF IRI under DefaultNamespace. Terms rebinds the same vocabulary to a
// caller-supplied namespace so a converted graph can be minted anywhere.
//
// Class hierarchy:
//
//	Location
//	├── Country
//	├── State
//	├── City
//	├── Address
//	└── Restaurant
//	    └── <category classes minted from the dataset>
//	Food
//	├── MenuItem
//	└── Ingredient
//	Currency
//	ItemValue
package restaurant
