package restaurant

// DefaultNamespace is the base IRI for locally minted classes, predicates and
// entity instances.
const DefaultNamespace = "http://www.semanticweb.org/city/in3067-inm713/2023/restaurants#"

// DefaultPrefix is the Turtle prefix bound to the namespace.
const DefaultPrefix = "cw"

// Class local names. Combine with a namespace through Terms.Class.
const (
	ClassLocation   = "Location"
	ClassCountry    = "Country"
	ClassState      = "State"
	ClassCity       = "City"
	ClassAddress    = "Address"
	ClassRestaurant = "Restaurant"
	ClassCurrency   = "Currency"
	ClassItemValue  = "ItemValue"
	ClassFood       = "Food"
	ClassMenuItem   = "MenuItem"
	ClassIngredient = "Ingredient"
)

// LocationClasses are the classes declared as subclasses of Location.
var LocationClasses = []string{
	ClassCountry,
	ClassState,
	ClassCity,
	ClassAddress,
	ClassRestaurant,
}

// FoodClasses are the classes declared as subclasses of Food.
var FoodClasses = []string{
	ClassMenuItem,
	ClassIngredient,
}

// DBpedia category filters used when looking up location entities.
const (
	CategoryCountries       = "http://dbpedia.org/resource/Category:Lists_of_countries"
	CategoryUSStates        = "http://dbpedia.org/resource/Category:States_of_the_United_States"
	CategoryUSCities        = "http://dbpedia.org/resource/Category:Cities_in_the_United_States"
	CategoryFoodIngredients = "https://dbpedia.org/page/Category:Food_ingredients"
)

// Terms binds the vocabulary to a namespace.
type Terms struct {
	namespace string
}

// NewTerms returns the vocabulary bound to namespace. An empty namespace
// selects DefaultNamespace.
func NewTerms(namespace string) Terms {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return Terms{namespace: namespace}
}

// Namespace returns the bound namespace IRI.
func (t Terms) Namespace() string {
	return t.namespace
}

// Class returns the IRI of a class local name.
func (t Terms) Class(name string) string {
	return t.namespace + name
}

// Predicate returns the IRI of a registered dotted predicate. Unknown
// predicates are returned unchanged so callers may pass full IRIs.
func (t Terms) Predicate(predicate string) string {
	if local, ok := localNames[predicate]; ok {
		return t.namespace + local
	}
	return predicate
}

// Predicates maps each dotted predicate to its IRI.
func (t Terms) Predicates(predicates ...string) []string {
	iris := make([]string, 0, len(predicates))
	for _, p := range predicates {
		iris = append(iris, t.Predicate(p))
	}
	return iris
}
