package validators

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/goliatone/go-scheming/pkg/schema"
)

const (
	MsgExpectingList    = "expecting list of strings"
	MsgSelectAtLeastOne = "Select at least one"
)

// UnexpectedChoiceMessage is the message recorded for an unknown element.
func UnexpectedChoiceMessage(element any) string {
	return fmt.Sprintf("unexpected choice \"%v\"", element)
}

// SchemingMultipleChoice accepts zero or more declared choices, submitted as
// a list of strings or as a single string, and stores them as a JSON list in
// declared order. A key that already has errors is left untouched.
func SchemingMultipleChoice(field schema.Field, _ schema.Schema) Validator {
	declared := field.ChoiceValues()
	known := make(map[string]struct{}, len(declared))
	for _, value := range declared {
		known[value] = struct{}{}
	}

	return func(key Key, state *State) error {
		if state.HasErrors(key) {
			return nil
		}

		elements, ok := choiceElements(state, key)
		if !ok {
			state.AddError(key, MsgExpectingList)
			return nil
		}

		selected := make(map[string]struct{}, len(elements))
		for _, element := range elements {
			if s, isString := element.(string); isString {
				if _, found := known[s]; found {
					selected[s] = struct{}{}
					continue
				}
			}
			state.AddError(key, UnexpectedChoiceMessage(element))
		}

		if state.HasErrors(key) {
			return nil
		}

		ordered := make([]string, 0, len(selected))
		for _, value := range declared {
			if _, found := selected[value]; found {
				ordered = append(ordered, value)
			}
		}
		state.Set(key, EncodeChoices(ordered))

		if field.Required && len(selected) == 0 {
			state.AddError(key, MsgSelectAtLeastOne)
		}
		return nil
	}
}

// choiceElements normalizes the submitted value: missing is an empty
// selection, a string is a one element selection.
func choiceElements(state *State, key Key) ([]any, bool) {
	value, present := state.Value(key)
	if !present {
		return nil, true
	}
	switch v := value.(type) {
	case string:
		return []any{v}, true
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, true
	case []any:
		return v, true
	}
	return nil, false
}

// EncodeChoices renders values as the stored JSON list, e.g. ["a", "b"].
func EncodeChoices(values []string) string {
	quoted := make([]string, 0, len(values))
	for _, value := range values {
		raw, _ := json.Marshal(value)
		quoted = append(quoted, string(raw))
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// DecodeChoices reverses EncodeChoices for display. Lists pass through, JSON
// strings are parsed, and anything unparsable is returned as a one element
// list holding the raw value.
func DecodeChoices(stored any) []string {
	switch v := stored.(type) {
	case nil:
		return nil
	case []string:
		return v
	case []any:
		return stringify(v)
	case string:
		var decoded []any
		if err := json.Unmarshal([]byte(v), &decoded); err != nil {
			return []string{v}
		}
		return stringify(decoded)
	}
	return []string{fmt.Sprint(stored)}
}

// MultipleChoiceOutput converts a stored JSON list back into a []string.
func MultipleChoiceOutput(key Key, state *State) error {
	value, ok := state.Value(key)
	if !ok {
		return nil
	}
	state.Set(key, DecodeChoices(value))
	return nil
}

func stringify(values []any) []string {
	if values == nil {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, value := range values {
		if s, ok := value.(string); ok {
			out = append(out, s)
			continue
		}
		out = append(out, fmt.Sprint(value))
	}
	return out
}
