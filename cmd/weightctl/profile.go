package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"grocery-shopper/internal/domain"
)

// profile is an offline description of a customer's preferences and the items of an order.
type profile struct {
	Preferences *preferencesYAML `yaml:"preferences"`
	Items       []itemYAML       `yaml:"items"`
}

type preferencesYAML struct {
	AutoApproveVariances      *bool `yaml:"auto_approve_variances"`
	MaxAutoVariancePercentage *int  `yaml:"max_auto_variance_percentage"`
	AutoApproveOveragesOnly   *bool `yaml:"auto_approve_overages_only"`
}

type itemYAML struct {
	ID                string `yaml:"id"`
	Name              string `yaml:"name"`
	RequestedQuantity string `yaml:"requested_quantity"`
	PricePerUnit      string `yaml:"price_per_unit"`
	MinWeight         string `yaml:"min_weight"`
	MaxWeight         string `yaml:"max_weight"`
	Unit              string `yaml:"unit"`
}

func loadProfile(path string) (profile, error) {
	if path == "" {
		return profile{}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return profile{}, fmt.Errorf("open profile: %w", err)
	}
	defer f.Close()
	return decodeProfile(f)
}

func decodeProfile(r io.Reader) (profile, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return profile{}, fmt.Errorf("read profile: %w", err)
	}
	var p profile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return profile{}, fmt.Errorf("parse profile: %w", err)
	}
	return p, nil
}

// preferences overlays the profile on the defaults a new customer starts with.
func (p profile) preferences() (domain.Preferences, error) {
	out := domain.DefaultPreferences()
	if p.Preferences == nil {
		return out, nil
	}
	if v := p.Preferences.AutoApproveVariances; v != nil {
		out.AutoApproveVariances = *v
	}
	if v := p.Preferences.MaxAutoVariancePercentage; v != nil {
		if !domain.ValidVariancePercentage(*v) {
			return domain.Preferences{}, fmt.Errorf("max_auto_variance_percentage %d not in %v", *v, domain.VariancePercentageOptions)
		}
		out.MaxAutoVariancePercentage = *v
	}
	if v := p.Preferences.AutoApproveOveragesOnly; v != nil {
		out.AutoApproveOveragesOnly = *v
	}
	return out, nil
}

func (p profile) item(id string) (domain.OrderItem, error) {
	for _, it := range p.Items {
		if strings.EqualFold(strings.TrimSpace(it.ID), strings.TrimSpace(id)) {
			return it.toDomain()
		}
	}
	return domain.OrderItem{}, fmt.Errorf("item %q not in profile", id)
}

func (it itemYAML) toDomain() (domain.OrderItem, error) {
	requested, err := decimal.NewFromString(strings.TrimSpace(it.RequestedQuantity))
	if err != nil {
		return domain.OrderItem{}, fmt.Errorf("item %s: requested_quantity: %w", it.ID, err)
	}
	price := decimal.Zero
	if s := strings.TrimSpace(it.PricePerUnit); s != "" {
		if price, err = decimal.NewFromString(s); err != nil {
			return domain.OrderItem{}, fmt.Errorf("item %s: price_per_unit: %w", it.ID, err)
		}
	}
	minW, err := optionalDecimal(it.MinWeight)
	if err != nil {
		return domain.OrderItem{}, fmt.Errorf("item %s: min_weight: %w", it.ID, err)
	}
	maxW, err := optionalDecimal(it.MaxWeight)
	if err != nil {
		return domain.OrderItem{}, fmt.Errorf("item %s: max_weight: %w", it.ID, err)
	}
	unit := domain.WeightUnit(strings.ToLower(strings.TrimSpace(it.Unit)))
	if unit == "" {
		unit = domain.UnitPound
	}
	if !unit.Valid() {
		return domain.OrderItem{}, fmt.Errorf("item %s: unknown unit %q", it.ID, it.Unit)
	}
	return domain.OrderItem{
		ID:                it.ID,
		Name:              it.Name,
		RequestedQuantity: requested,
		IsWeightBased:     true,
		WeightUnit:        unit,
		PricePerUnit:      price,
		MinWeight:         minW,
		MaxWeight:         maxW,
		Status:            domain.ItemPending,
	}, nil
}

func optionalDecimal(s string) (*decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
