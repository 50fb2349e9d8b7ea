package plans

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/BruksfildServices01/agenda-marketplace/internal/httperr"
)

const (
	FeatureEmail  = "email_notifications"
	FeaturePush   = "push_notifications"
	FeatureExport = "export"
)

//go:embed plans.yaml
var defaultCatalog []byte

type Plan struct {
	Code                string   `yaml:"code" json:"code"`
	Name                string   `yaml:"name" json:"name"`
	MaxEmployees        int      `yaml:"max_employees" json:"max_employees"`
	MonthlyAppointments int      `yaml:"monthly_appointments" json:"monthly_appointments"`
	Price               float64  `yaml:"price" json:"price"`
	Currency            string   `yaml:"currency" json:"currency"`
	StripePriceID       string   `yaml:"stripe_price_id" json:"-"`
	Features            []string `yaml:"features" json:"features"`
}

func (p Plan) Has(feature string) bool {
	for _, f := range p.Features {
		if f == feature {
			return true
		}
	}
	return false
}

// AllowsEmployees reports whether a business with current employees may add one more.
func (p Plan) AllowsEmployees(current int64) bool {
	return p.MaxEmployees <= 0 || current < int64(p.MaxEmployees)
}

// AllowsAppointments reports whether one more booking fits the monthly quota.
func (p Plan) AllowsAppointments(thisMonth int64) bool {
	return p.MonthlyAppointments <= 0 || thisMonth < int64(p.MonthlyAppointments)
}

type Catalog struct {
	Default string `yaml:"default"`
	Plans   []Plan `yaml:"plans"`

	byCode map[string]Plan
}

func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse plan catalog: %w", err)
	}

	c.byCode = make(map[string]Plan, len(c.Plans))
	for _, p := range c.Plans {
		if p.Code == "" {
			return nil, fmt.Errorf("parse plan catalog: plan without code")
		}
		c.byCode[p.Code] = p
	}
	if _, ok := c.byCode[c.Default]; !ok {
		return nil, fmt.Errorf("parse plan catalog: default plan %q not defined", c.Default)
	}

	return &c, nil
}

// Default loads the embedded catalog.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

func (c *Catalog) Get(code string) (Plan, error) {
	p, ok := c.byCode[code]
	if !ok {
		return Plan{}, httperr.ErrBusinessDetail("plan_not_found", code)
	}
	return p, nil
}

// For returns the plan of a business, using the default plan for unknown codes.
func (c *Catalog) For(code string) Plan {
	if p, ok := c.byCode[code]; ok {
		return p
	}
	return c.byCode[c.Default]
}
