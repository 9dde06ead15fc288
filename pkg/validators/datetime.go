package validators

import (
	"time"

	"github.com/goliatone/go-scheming/pkg/schema"
	"github.com/goliatone/go-scheming/pkg/timezones"
)

const (
	MsgDateFormat          = "Date format incorrect"
	MsgTimeFormat          = "Time format incorrect"
	MsgDateRequiredForTime = "Date is required when a time is provided"
	MsgInvalidTimezone     = "Invalid timezone"
)

// Sub-input suffixes appended to the field name, e.g. "start_date".
const (
	SuffixDate = "date"
	SuffixTime = "time"
	SuffixTZ   = "tz"
)

// SubInputName returns the flat extras name of a date sub-input.
func SubInputName(field, suffix string) string {
	return field + "_" + suffix
}

// IsoDatetime returns the factory for naive date/time fields. A ready
// time.Time is accepted as-is, a string is parsed with ParseDate, and an
// absent value is assembled from the <field>_date, <field>_time and
// <field>_tz extras.
func IsoDatetime(zones *timezones.Set) Factory {
	return func(field schema.Field, _ schema.Schema) Validator {
		return datetimeValidator(field, zones, false)
	}
}

// IsoDatetimeTZ is IsoDatetime with every produced value converted to UTC and
// strings parsed with ParseDateTZ.
func IsoDatetimeTZ(zones *timezones.Set) Factory {
	return func(field schema.Field, _ schema.Schema) Validator {
		return datetimeValidator(field, zones, true)
	}
}

func datetimeValidator(field schema.Field, zones *timezones.Set, toUTC bool) Validator {
	parse := ParseDate
	if toUTC {
		parse = ParseDateTZ
	}

	return func(key Key, state *State) error {
		value, _ := state.Value(key)
		var (
			date time.Time
			ok   bool
		)

		if !isEmpty(value) {
			switch v := value.(type) {
			case time.Time:
				if !toUTC {
					return nil
				}
				date, ok = timezones.ToUTC(v), true
			case string:
				parsed, err := parse(v)
				if err != nil {
					return NewInvalid(MsgDateFormat)
				}
				date, ok = parsed, true
			default:
				return NewInvalid(MsgDateFormat)
			}
		} else if _, submitted := state.Extra(SubInputName(key.Name(), SuffixDate)); !submitted {
			if field.Required {
				if err := NotEmpty(key, state); err != nil {
					return err
				}
			}
		} else {
			var err error
			date, ok, err = assembleDateInputs(field, key, state, zones)
			if err != nil {
				return err
			}
			if ok && toUTC {
				date = timezones.ToUTC(date)
			}
		}

		if ok {
			state.Set(key, date)
		} else {
			state.Set(key, nil)
		}
		return nil
	}
}

// assembleDateInputs claims the date, time and tz sub-inputs of key from the
// extras bag, records them under sibling keys and combines them into one
// value. Problems are recorded on the sub-key they concern. For required
// fields the first empty sub-input records MsgMissingValue and assembly
// stops with ErrStopOnError, leaving the later sub-inputs untouched.
func assembleDateInputs(field schema.Field, key Key, state *State, zones *timezones.Set) (time.Time, bool, error) {
	input := func(suffix string) (Key, string, error) {
		name := SubInputName(key.Name(), suffix)
		subKey := key.Sibling(name)
		raw, _ := state.Extra(name)
		value := inputString(raw)

		state.Set(subKey, value)
		state.Errors[subKey] = []string{}
		if value != "" {
			state.Claim(name)
		}
		if field.Required {
			if err := NotEmpty(subKey, state); err != nil {
				return subKey, value, err
			}
		}
		return subKey, value, nil
	}

	var (
		date time.Time
		ok   bool
	)

	dateKey, dateValue, err := input(SuffixDate)
	if err != nil {
		return time.Time{}, false, err
	}
	if dateValue != "" {
		parsed, err := ParseDate(dateValue)
		if err != nil {
			state.AddError(dateKey, MsgDateFormat)
		} else {
			date, ok = parsed, true
		}
	}

	timeKey, timeValue, err := input(SuffixTime)
	if err != nil {
		return time.Time{}, false, err
	}
	if timeValue != "" {
		if dateValue == "" {
			state.AddError(dateKey, MsgDateRequiredForTime)
		} else if parsed, err := ParseDate(dateValue + " " + timeValue); err != nil {
			state.AddError(timeKey, MsgTimeFormat)
		} else {
			date, ok = parsed, true
		}
	}

	tzKey, tzValue, err := input(SuffixTZ)
	if err != nil {
		return time.Time{}, false, err
	}
	if tzValue != "" {
		if !zones.Contains(tzValue) {
			state.AddError(tzKey, MsgInvalidTimezone)
		} else if ok {
			localized, err := zones.Localize(date, tzValue)
			if err != nil {
				state.AddError(tzKey, MsgInvalidTimezone)
			} else {
				date = localized
			}
		}
	}

	return date, ok, nil
}
