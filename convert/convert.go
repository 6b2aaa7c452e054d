// Package convert turns the restaurant dataset into an RDF graph, linking
// places, currencies, menu items and ingredients to public knowledge graphs
// where a confident match exists.
package convert

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/c360studio/semlink/dataset"
	"github.com/c360studio/semlink/emit"
	"github.com/c360studio/semlink/graph"
	"github.com/c360studio/semlink/resolver"
	"github.com/c360studio/semlink/vocabulary/restaurant"
)

// Stats summarises a conversion.
type Stats struct {
	Rows     int
	Triples  int
	Duration time.Duration
	Resolver resolver.Stats
}

// Converter runs the conversion phases over a dataset.
type Converter struct {
	emitter  *emit.Emitter
	resolver *resolver.Resolver
	terms    restaurant.Terms
	policies Policies
	workers  int
	logger   *slog.Logger
}

// Option configures a Converter.
type Option func(*Converter)

// WithPolicies replaces the default per-kind policies.
func WithPolicies(p Policies) Option {
	return func(c *Converter) {
		c.policies = p
	}
}

// WithWorkers resolves the distinct values of each externally resolved
// column with up to n concurrent lookups before emitting it.
func WithWorkers(n int) Option {
	return func(c *Converter) {
		c.workers = n
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Converter) {
		c.logger = logger
	}
}

// New creates a converter writing into g with URIs decided by r.
func New(g *graph.Graph, r *resolver.Resolver, opts ...Option) *Converter {
	c := &Converter{
		resolver: r,
		terms:    restaurant.NewTerms(r.Namespace()),
		policies: DefaultPolicies(resolver.DefaultThreshold),
		workers:  1,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.emitter = emit.New(g, r, c.logger)
	return c
}

// row carries the cells of one record plus the composite identifiers
// derived from them.
type row struct {
	dataset.Row
	addressID    string
	restaurantID string
	itemValueID  string
	itemID       string
}

// Placeholders standing in for a missing leading part of a composite
// identifier, so "no address Paris" cannot collide with the city "Paris".
const (
	noAddress = "no address"
	noName    = "unnamed restaurant"
	noItem    = "unnamed item"
)

// compositeID joins the present parts with spaces. A missing head is
// replaced by placeholder; the identifier is empty only when every part
// is missing.
func compositeID(placeholder, head string, rest ...string) string {
	var parts []string
	for _, r := range rest {
		if !dataset.IsMissing(r) {
			parts = append(parts, r)
		}
	}
	switch {
	case !dataset.IsMissing(head):
		parts = append([]string{head}, parts...)
	case len(parts) > 0:
		parts = append([]string{placeholder}, parts...)
	}
	return strings.Join(parts, " ")
}

func deriveRows(tbl *dataset.Table) []row {
	rows := make([]row, len(tbl.Rows))
	for i, r := range tbl.Rows {
		addressID := compositeID(noAddress, r.Get(dataset.ColAddress), r.Get(dataset.ColCity), r.Get(dataset.ColState))
		restaurantID := compositeID(noName, r.Get(dataset.ColName), addressID)
		itemValueID := ""
		if !dataset.IsMissing(r.Get(dataset.ColItemValue)) && !dataset.IsMissing(r.Get(dataset.ColCurrency)) {
			itemValueID = r.Get(dataset.ColItemValue) + r.Get(dataset.ColCurrency)
		}
		itemID := compositeID(noItem, r.Get(dataset.ColMenuItem), restaurantID)
		rows[i] = row{
			Row:          r,
			addressID:    addressID,
			restaurantID: restaurantID,
			itemValueID:  itemValueID,
			itemID:       itemID,
		}
	}
	return rows
}

// Convert emits the graph for every row of tbl. Phases run in a fixed
// order (countries, states, cities, addresses, restaurants, currencies,
// item values, menu items, descriptions) so each phase links only to
// entities already resolved.
func (c *Converter) Convert(ctx context.Context, tbl *dataset.Table) (Stats, error) {
	start := time.Now()
	rows := deriveRows(tbl)

	phases := []struct {
		name string
		run  func(context.Context, []row) error
	}{
		{"country", c.countries},
		{"state", c.states},
		{"city", c.cities},
		{"address", c.addresses},
		{"restaurant", c.restaurants},
		{"currency", c.currencies},
		{"item_value", c.itemValues},
		{"menu_item", c.menuItems},
		{"description", c.descriptions},
	}

	for _, p := range phases {
		if err := ctx.Err(); err != nil {
			return Stats{}, err
		}
		phaseStart := time.Now()
		if err := p.run(ctx, rows); err != nil {
			return Stats{}, fmt.Errorf("%s phase: %w", p.name, err)
		}
		c.logger.Info("Conversion phase complete",
			"phase", p.name,
			"triples", c.emitter.Graph().Len(),
			"duration", time.Since(phaseStart))
	}

	stats := Stats{
		Rows:     len(rows),
		Triples:  c.emitter.Graph().Len(),
		Duration: time.Since(start),
		Resolver: c.resolver.Stats(),
	}
	c.logger.Info("Conversion finished",
		"rows", stats.Rows,
		"triples", stats.Triples,
		"external", stats.Resolver.External,
		"local", stats.Resolver.Local,
		"duration", stats.Duration)
	return stats, nil
}

func (c *Converter) class(name string) string {
	return c.terms.Class(name)
}

func (c *Converter) pred(dotted ...string) []string {
	return c.terms.Predicates(dotted...)
}

// warm pre-resolves a column concurrently when workers allow it and the
// policy reaches out to lookup services.
func (c *Converter) warm(ctx context.Context, values []string, policy resolver.Policy) error {
	if c.workers <= 1 || !policy.EnableExternal {
		return nil
	}
	var present []string
	for _, v := range values {
		if !dataset.IsMissing(v) {
			present = append(present, v)
		}
	}
	return c.resolver.Warm(ctx, present, policy, c.workers)
}

// typed resolves column values of every row as kind and types them.
func (c *Converter) typed(ctx context.Context, values []string, kind Kind, class string) error {
	policy := c.policies.For(kind)
	if err := c.warm(ctx, values, policy); err != nil {
		return err
	}
	for _, v := range values {
		if _, err := c.emitter.EmitType(ctx, v, class, policy); err != nil {
			return err
		}
	}
	return nil
}

func (c *Converter) subclassOfLocation(ctx context.Context, class string) error {
	return c.emitter.EmitSubclass(ctx, restaurant.ClassLocation, class)
}

func (c *Converter) countries(ctx context.Context, rows []row) error {
	if err := c.subclassOfLocation(ctx, restaurant.ClassCountry); err != nil {
		return err
	}
	if err := c.typed(ctx, column(rows, func(r row) string { return r.Get(dataset.ColCountry) }),
		KindCountry, c.class(restaurant.ClassCountry)); err != nil {
		return err
	}
	for _, r := range rows {
		country := r.Get(dataset.ColCountry)
		if err := c.emitter.EmitLiteral(country, c.terms.Predicate(restaurant.Name), country, graph.XSDString); err != nil {
			return err
		}
	}
	return nil
}

func (c *Converter) states(ctx context.Context, rows []row) error {
	if err := c.subclassOfLocation(ctx, restaurant.ClassState); err != nil {
		return err
	}
	if err := c.typed(ctx, column(rows, func(r row) string { return r.Get(dataset.ColState) }),
		KindState, c.class(restaurant.ClassState)); err != nil {
		return err
	}
	for _, r := range rows {
		state := r.Get(dataset.ColState)
		if err := c.emitter.EmitLiteral(state, c.terms.Predicate(restaurant.Name), state, graph.XSDString); err != nil {
			return err
		}
		if err := c.emitter.EmitObject(state,
			c.pred(restaurant.IsStateOf, restaurant.LocatedIn, restaurant.LocatedInCountry),
			r.Get(dataset.ColCountry)); err != nil {
			return err
		}
	}
	return nil
}

func (c *Converter) cities(ctx context.Context, rows []row) error {
	if err := c.subclassOfLocation(ctx, restaurant.ClassCity); err != nil {
		return err
	}
	if err := c.typed(ctx, column(rows, func(r row) string { return r.Get(dataset.ColCity) }),
		KindCity, c.class(restaurant.ClassCity)); err != nil {
		return err
	}
	for _, r := range rows {
		city := r.Get(dataset.ColCity)
		if err := c.emitter.EmitLiteral(city, c.terms.Predicate(restaurant.Name), city, graph.XSDString); err != nil {
			return err
		}
		if err := c.emitter.EmitObject(city,
			c.pred(restaurant.LocatedInState, restaurant.LocatedIn),
			r.Get(dataset.ColState)); err != nil {
			return err
		}
		if err := c.emitter.EmitObject(city,
			c.pred(restaurant.LocatedCountry, restaurant.LocatedIn),
			r.Get(dataset.ColCountry)); err != nil {
			return err
		}
	}
	return nil
}

func (c *Converter) addresses(ctx context.Context, rows []row) error {
	if err := c.subclassOfLocation(ctx, restaurant.ClassAddress); err != nil {
		return err
	}
	if err := c.typed(ctx, column(rows, func(r row) string { return r.addressID }),
		KindAddress, c.class(restaurant.ClassAddress)); err != nil {
		return err
	}
	for _, r := range rows {
		if err := c.emitter.EmitLiteral(r.addressID, c.terms.Predicate(restaurant.FirstLineAddress),
			r.Get(dataset.ColAddress), graph.XSDString); err != nil {
			return err
		}
		if err := c.emitter.EmitLiteral(r.addressID, c.terms.Predicate(restaurant.PostCode),
			r.Get(dataset.ColPostcode), graph.XSDString); err != nil {
			return err
		}
		links := []struct {
			predicate string
			object    string
		}{
			{restaurant.LocatedCity, r.Get(dataset.ColCity)},
			{restaurant.LocatedState, r.Get(dataset.ColState)},
			{restaurant.LocatedCountry, r.Get(dataset.ColCountry)},
		}
		for _, l := range links {
			if err := c.emitter.EmitObject(r.addressID, c.pred(l.predicate, restaurant.LocatedIn), l.object); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *Converter) restaurants(ctx context.Context, rows []row) error {
	if err := c.subclassOfLocation(ctx, restaurant.ClassRestaurant); err != nil {
		return err
	}
	restaurantClass := c.class(restaurant.ClassRestaurant)
	if err := c.typed(ctx, column(rows, func(r row) string { return r.restaurantID }),
		KindRestaurant, restaurantClass); err != nil {
		return err
	}
	for _, r := range rows {
		if err := c.emitter.EmitLiteral(r.restaurantID, c.terms.Predicate(restaurant.Name),
			r.Get(dataset.ColName), graph.XSDString); err != nil {
			return err
		}
		if err := c.emitter.EmitObject(r.restaurantID,
			c.pred(restaurant.LocatedAddress, restaurant.LocatedIn), r.addressID); err != nil {
			return err
		}
		if r.restaurantID == "" {
			continue
		}
		for _, category := range dataset.Categories.Split(r.Get(dataset.ColCategories)) {
			class := c.emitter.ClassIRI(category)
			if class == c.terms.Namespace() {
				continue
			}
			c.emitter.EmitAxiom(class, graph.RDFSSubClassOf, restaurantClass)
			if _, err := c.emitter.EmitType(ctx, r.restaurantID, class, c.policies.For(KindRestaurant)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *Converter) currencies(ctx context.Context, rows []row) error {
	if err := c.typed(ctx, column(rows, func(r row) string { return r.Get(dataset.ColCurrency) }),
		KindCurrency, c.class(restaurant.ClassCurrency)); err != nil {
		return err
	}
	for _, r := range rows {
		currency := r.Get(dataset.ColCurrency)
		if err := c.emitter.EmitObject(currency, c.pred(restaurant.CurrencyOfCountry), r.Get(dataset.ColCountry)); err != nil {
			return err
		}
		if err := c.emitter.EmitLiteral(currency, c.terms.Predicate(restaurant.Name), currency, graph.XSDString); err != nil {
			return err
		}
	}
	return nil
}

func (c *Converter) itemValues(ctx context.Context, rows []row) error {
	if err := c.typed(ctx, column(rows, func(r row) string { return r.itemValueID }),
		KindItemValue, c.class(restaurant.ClassItemValue)); err != nil {
		return err
	}
	for _, r := range rows {
		if err := c.emitter.EmitObject(r.itemValueID, c.pred(restaurant.AmountCurrency), r.Get(dataset.ColCurrency)); err != nil {
			return err
		}
		if err := c.emitter.EmitLiteral(r.itemValueID, c.terms.Predicate(restaurant.Amount),
			r.Get(dataset.ColItemValue), graph.XSDDouble); err != nil {
			return err
		}
	}
	return nil
}

func (c *Converter) menuItems(ctx context.Context, rows []row) error {
	for _, class := range restaurant.FoodClasses {
		if err := c.emitter.EmitSubclass(ctx, restaurant.ClassFood, class); err != nil {
			return err
		}
	}
	if err := c.typed(ctx, column(rows, func(r row) string { return r.itemID }),
		KindMenuItem, c.class(restaurant.ClassMenuItem)); err != nil {
		return err
	}
	for _, r := range rows {
		if err := c.emitter.EmitLiteral(r.itemID, c.terms.Predicate(restaurant.Name),
			r.Get(dataset.ColMenuItem), graph.XSDString); err != nil {
			return err
		}
		if err := c.emitter.EmitObject(r.itemID, c.pred(restaurant.ServedInRestaurant), r.restaurantID); err != nil {
			return err
		}
		if err := c.emitter.EmitObject(r.itemID, c.pred(restaurant.HasValue), r.itemValueID); err != nil {
			return err
		}
	}
	return nil
}

// descriptions records item descriptions. With external resolution the
// description is split into ingredient candidates: candidates matching a
// knowledge-graph food become Ingredient subclasses with a per-item
// ingredient instance, the rest stay description literals.
func (c *Converter) descriptions(ctx context.Context, rows []row) error {
	policy := c.policies.For(KindIngredient)
	descPredicate := c.terms.Predicate(restaurant.Description)

	if !policy.EnableExternal {
		for _, r := range rows {
			if err := c.emitter.EmitLiteral(r.itemID, descPredicate,
				r.Get(dataset.ColItemDescription), graph.XSDString); err != nil {
				return err
			}
		}
		return nil
	}

	var candidates []string
	for _, r := range rows {
		if r.itemID != "" {
			candidates = append(candidates, dataset.Descriptions.Split(r.Get(dataset.ColItemDescription))...)
		}
	}
	if err := c.warm(ctx, candidates, policy); err != nil {
		return err
	}

	ingredientClass := c.class(restaurant.ClassIngredient)
	for _, r := range rows {
		if r.itemID == "" {
			continue
		}
		for _, desc := range dataset.Descriptions.Split(r.Get(dataset.ColItemDescription)) {
			uri, err := c.resolver.Resolve(ctx, desc, policy)
			if err != nil {
				return fmt.Errorf("resolve ingredient %q: %w", desc, err)
			}
			if c.resolver.IsLocal(uri) {
				if err := c.emitter.EmitLiteral(r.itemID, descPredicate, desc, graph.XSDString); err != nil {
					return err
				}
				continue
			}

			c.emitter.EmitAxiom(uri, graph.RDFSSubClassOf, ingredientClass)
			ingredientID := desc + "_" + r.itemID
			if _, err := c.emitter.EmitType(ctx, ingredientID, uri, resolver.Local()); err != nil {
				return err
			}
			if err := c.emitter.EmitObject(ingredientID, c.pred(restaurant.IsIngredientOf), r.itemID); err != nil {
				return err
			}
		}
	}
	return nil
}

func column(rows []row, get func(row) string) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = get(r)
	}
	return out
}
