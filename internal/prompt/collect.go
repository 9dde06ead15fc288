// Package prompt collects missing record values from a terminal user.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-scheming/pkg/schema"
	"github.com/goliatone/go-scheming/pkg/timezones"
	"github.com/goliatone/go-scheming/pkg/validators"
)

const (
	tzPageSize = 15
	moreOption = "More matches..."
)

// Collector asks for every dataset field missing from a record.
type Collector struct {
	driver Driver
	zones  []string
	search timezones.Options
}

// NewCollector constructs a collector. zones feeds the timezone search; a
// nil slice disables the timezone question.
func NewCollector(driver Driver, zones []string) *Collector {
	return &Collector{
		driver: driver,
		zones:  zones,
		search: timezones.NewOptions(timezones.WithDefaultLimit(tzPageSize)),
	}
}

// Fill returns a copy of record with answers for the missing fields. Date
// fields are collected as their <field>_date, <field>_time and <field>_tz
// sub-inputs so the datetime validators assemble them.
func (c *Collector) Fill(ctx context.Context, sch schema.Schema, record map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(record))
	for k, v := range record {
		out[k] = v
	}

	for _, field := range sch.DatasetFields {
		if _, ok := out[field.FieldName]; ok {
			continue
		}
		if err := c.ask(ctx, field, out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (c *Collector) ask(ctx context.Context, field schema.Field, out map[string]any) error {
	label := field.DisplayLabel()
	switch {
	case isDatetime(field):
		return c.askDatetime(ctx, field, out)
	case len(field.Choices) > 0 && hasValidator(field, "scheming_multiple_choice"):
		options := field.ChoiceValues()
		picked, err := c.driver.MultiSelect(ctx, SelectConfig{Message: label, Options: options, Help: field.HelpText})
		if err != nil {
			return err
		}
		values := make([]any, 0, len(picked))
		for _, idx := range picked {
			values = append(values, options[idx])
		}
		out[field.FieldName] = values
	case len(field.Choices) > 0:
		options := field.ChoiceValues()
		idx, err := c.driver.Select(ctx, SelectConfig{Message: label, Options: options, Help: field.HelpText})
		if err != nil {
			return err
		}
		if idx >= 0 {
			out[field.FieldName] = options[idx]
		}
	default:
		value, err := c.driver.Input(ctx, InputConfig{Message: label, Help: field.HelpText, Validator: requiredCheck(field)})
		if err != nil {
			return err
		}
		if value != "" {
			out[field.FieldName] = value
		}
	}
	return nil
}

func (c *Collector) askDatetime(ctx context.Context, field schema.Field, out map[string]any) error {
	label := field.DisplayLabel()
	date, err := c.driver.Input(ctx, InputConfig{
		Message:   label + " date (YYYY-MM-DD)",
		Help:      field.HelpText,
		Validator: requiredCheck(field),
	})
	if err != nil {
		return err
	}
	out[validators.SubInputName(field.FieldName, validators.SuffixDate)] = date
	if date == "" {
		return nil
	}

	clock, err := c.driver.Input(ctx, InputConfig{
		Message:   label + " time (HH:MM)",
		Validator: requiredCheck(field),
	})
	if err != nil {
		return err
	}
	out[validators.SubInputName(field.FieldName, validators.SuffixTime)] = clock

	if len(c.zones) == 0 {
		return nil
	}
	zone, err := c.askZone(ctx, field)
	if err != nil {
		return err
	}
	if zone != "" {
		out[validators.SubInputName(field.FieldName, validators.SuffixTZ)] = zone
	}
	return nil
}

// askZone searches the zone list and offers one page of matches at a time.
// An empty query skips the question for optional fields.
func (c *Collector) askZone(ctx context.Context, field schema.Field) (string, error) {
	label := field.DisplayLabel()
	hint := "search, empty to skip"
	if field.Required {
		hint = "search"
	}
	query, err := c.driver.Input(ctx, InputConfig{
		Message:   fmt.Sprintf("%s timezone (%s)", label, hint),
		Validator: requiredCheck(field),
	})
	if err != nil {
		return "", err
	}

	for page := 0; ; page++ {
		matches, total := timezones.SearchPage(c.zones, query, page, tzPageSize, c.search)
		if len(matches) == 0 {
			return "", nil
		}

		options := append([]string(nil), matches...)
		more := (page+1)*tzPageSize < total
		if more {
			options = append(options, moreOption)
		}
		message := label + " timezone"
		if total > tzPageSize {
			message = fmt.Sprintf("%s timezone (page %d, %d matches)", label, page+1, total)
		}

		idx, err := c.driver.Select(ctx, SelectConfig{Message: message, Options: options, PageSize: tzPageSize + 1})
		if err != nil {
			return "", err
		}
		switch {
		case idx < 0:
			return "", nil
		case more && idx == len(matches):
			continue
		}
		return matches[idx], nil
	}
}

func isDatetime(field schema.Field) bool {
	return hasValidator(field, "scheming_isodatetime") || hasValidator(field, "scheming_isodatetime_tz")
}

func hasValidator(field schema.Field, name string) bool {
	for _, token := range strings.Fields(field.Validators) {
		if token == name {
			return true
		}
	}
	return false
}

func requiredCheck(field schema.Field) func(string) error {
	if !field.Required {
		return nil
	}
	return func(value string) error {
		if strings.TrimSpace(value) == "" {
			return errors.New(validators.MsgMissingValue)
		}
		return nil
	}
}
