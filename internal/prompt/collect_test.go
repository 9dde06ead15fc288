package prompt

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-scheming/pkg/schema"
)

type scriptedDriver struct {
	inputs   []string
	selects  []int
	multi    [][]int
	messages []string
	lastOpts []string
}

func (d *scriptedDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	d.messages = append(d.messages, cfg.Message)
	if len(d.inputs) == 0 {
		return "", errors.New("unexpected input prompt: " + cfg.Message)
	}
	next := d.inputs[0]
	d.inputs = d.inputs[1:]
	if cfg.Validator != nil {
		if err := cfg.Validator(next); err != nil {
			return "", err
		}
	}
	return next, nil
}

func (d *scriptedDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	d.messages = append(d.messages, cfg.Message)
	d.lastOpts = cfg.Options
	next := d.selects[0]
	d.selects = d.selects[1:]
	return next, nil
}

func (d *scriptedDriver) MultiSelect(_ context.Context, cfg SelectConfig) ([]int, error) {
	d.messages = append(d.messages, cfg.Message)
	next := d.multi[0]
	d.multi = d.multi[1:]
	return next, nil
}

func collectSchema() schema.Schema {
	return schema.Schema{
		Type: "event",
		DatasetFields: []schema.Field{
			{FieldName: "title", Label: "Title", Required: true},
			{FieldName: "kind", Choices: []schema.Choice{{Value: "talk"}, {Value: "workshop"}}, Validators: "scheming_choices"},
			{FieldName: "tags", Choices: []schema.Choice{{Value: "a"}, {Value: "b"}, {Value: "c"}}, Validators: "scheming_multiple_choice"},
			{FieldName: "starts", Validators: "scheming_isodatetime_tz"},
			{FieldName: "notes"},
		},
	}
}

func TestCollector_FillsMissingFields(t *testing.T) {
	driver := &scriptedDriver{
		inputs:  []string{"2020-01-15", "10:00", "london", ""},
		selects: []int{1, 0},
		multi:   [][]int{{0, 2}},
	}
	zones := []string{"America/New_York", "Europe/London", "UTC"}

	got, err := NewCollector(driver, zones).Fill(context.Background(), collectSchema(), map[string]any{"title": "Kept"})
	if err != nil {
		t.Fatalf("fill: %v", err)
	}

	want := map[string]any{
		"title":       "Kept",
		"kind":        "workshop",
		"tags":        []any{"a", "c"},
		"starts_date": "2020-01-15",
		"starts_time": "10:00",
		"starts_tz":   "Europe/London",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Europe/London"}, driver.lastOpts); diff != "" {
		t.Fatalf("timezone options mismatch (-want +got):\n%s", diff)
	}
}

func TestCollector_SkipsTimeWhenDateEmpty(t *testing.T) {
	sch := schema.Schema{DatasetFields: []schema.Field{{FieldName: "starts", Validators: "scheming_isodatetime"}}}
	driver := &scriptedDriver{inputs: []string{""}}

	got, err := NewCollector(driver, nil).Fill(context.Background(), sch, nil)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"starts_date": ""}, got); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}
	if len(driver.messages) != 1 {
		t.Fatalf("expected a single prompt, got %v", driver.messages)
	}
}

func TestCollector_RequiredInputRejectsEmpty(t *testing.T) {
	sch := schema.Schema{DatasetFields: []schema.Field{{FieldName: "title", Required: true}}}
	driver := &scriptedDriver{inputs: []string{"  "}}

	if _, err := NewCollector(driver, nil).Fill(context.Background(), sch, nil); err == nil {
		t.Fatalf("expected validator error")
	}
}

func TestCollector_PagesTimezoneMatches(t *testing.T) {
	zones := make([]string, 0, 20)
	for i := 0; i < 20; i++ {
		zones = append(zones, fmt.Sprintf("Zone/Area%02d", i))
	}
	sch := schema.Schema{DatasetFields: []schema.Field{
		{FieldName: "starts", Required: true, Validators: "scheming_isodatetime_tz"},
	}}
	driver := &scriptedDriver{
		inputs:  []string{"2020-01-15", "10:00", "zone"},
		selects: []int{tzPageSize, 2},
	}

	got, err := NewCollector(driver, zones).Fill(context.Background(), sch, nil)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	if got["starts_tz"] != "Zone/Area17" {
		t.Fatalf("expected Zone/Area17 from the second page, got %v", got["starts_tz"])
	}
	want := []string{"Zone/Area15", "Zone/Area16", "Zone/Area17", "Zone/Area18", "Zone/Area19"}
	if diff := cmp.Diff(want, driver.lastOpts); diff != "" {
		t.Fatalf("second page mismatch (-want +got):\n%s", diff)
	}
	if last := driver.messages[len(driver.messages)-1]; last != "starts timezone (page 2, 20 matches)" {
		t.Fatalf("unexpected page message %q", last)
	}
}

func TestCollector_RequiredDatetimeRejectsEmptyTime(t *testing.T) {
	sch := schema.Schema{DatasetFields: []schema.Field{
		{FieldName: "starts", Required: true, Validators: "scheming_isodatetime"},
	}}
	driver := &scriptedDriver{inputs: []string{"2020-01-15", ""}}

	if _, err := NewCollector(driver, nil).Fill(context.Background(), sch, nil); err == nil {
		t.Fatalf("expected the empty time to be rejected")
	}
}

func TestIndexHelpers(t *testing.T) {
	options := []string{"a", "b", "c"}
	if got := indexOf(options, "c"); got != 2 {
		t.Fatalf("indexOf: got %d", got)
	}
	if got := indexOf(options, "z"); got != -1 {
		t.Fatalf("indexOf missing: got %d", got)
	}
	if diff := cmp.Diff([]int{0, 2}, indicesOf(options, []string{"c", "a", "z"})); diff != "" {
		t.Fatalf("indicesOf mismatch (-want +got):\n%s", diff)
	}
}
