package models

// DrinkSize is the cup size chosen for a cart line.
type DrinkSize string

const (
	SizeSmall  DrinkSize = "small"
	SizeMedium DrinkSize = "medium"
	SizeLarge  DrinkSize = "large"
)

// FulfillmentType indicates how the order leaves the cafe.
type FulfillmentType string

const (
	FulfillmentPickup   FulfillmentType = "pickup"
	FulfillmentDelivery FulfillmentType = "delivery"
)

// Defaults a drink ships with; anything else counts as a customization.
const (
	DefaultMilk      = "whole"
	DefaultSweetness = 0
	MaxSweetness     = 10
)

// Customization captures the per-drink choices a customer can make.
// Kept as a concrete struct so the scoring engine never has to guess
// at the shape of the data.
type Customization struct {
	Milk      string   `json:"milk"`
	Sweetness int      `json:"sweetness"` // 0..MaxSweetness
	AddOns    []string `json:"add_ons,omitempty"`
}

// Valid reports whether the customization is within the accepted range.
func (c Customization) Valid() bool {
	return c.Sweetness >= 0 && c.Sweetness <= MaxSweetness
}

// Dimensions counts how many customization choices differ from the
// defaults: non-default milk, non-zero sweetness and a non-empty add-on
// set each count as one.
func (c Customization) Dimensions() int {
	n := 0
	if c.Milk != "" && c.Milk != DefaultMilk {
		n++
	}
	if c.Sweetness != DefaultSweetness {
		n++
	}
	if len(c.AddOns) > 0 {
		n++
	}
	return n
}

// CartLine is one drink (possibly several cups of it) in an in-progress cart.
type CartLine struct {
	ProductID     string        `json:"product_id"`
	Name          string        `json:"name"`
	ImageURL      string        `json:"image_url,omitempty"`
	Size          DrinkSize     `json:"size"`
	Customization Customization `json:"customization"`
	Quantity      int           `json:"quantity"`
	UnitPrice     float64       `json:"unit_price"`
}

// LineTotal is price × quantity for this line.
func (l CartLine) LineTotal() float64 {
	return l.UnitPrice * float64(l.Quantity)
}

// Cart is the mutable, not-yet-submitted collection of lines for one user
// session. A cart with zero lines is never kept around: the session store
// discards it so "no cart" and "empty cart" stay distinguishable.
type Cart struct {
	Lines       []CartLine      `json:"lines"`
	Fulfillment FulfillmentType `json:"fulfillment"`
	Total       float64         `json:"total"`
}

// RecomputeTotal rederives Total from the current lines. Called after
// every mutation; Total is never edited independently.
func (c *Cart) RecomputeTotal() {
	total := 0.0
	for _, l := range c.Lines {
		total += l.LineTotal()
	}
	c.Total = total
}
