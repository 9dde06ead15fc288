// Package timezones provides the canonical set of recognized IANA timezone
// names used by composite date/time fields, plus search helpers that build
// option lists for timezone sub-inputs.
//
// The backing data is loaded from the embedded list under
// data/iana_timezones.txt. Zone rules come from the Go time package; the
// tzdata database is embedded so lookups work on hosts without zoneinfo.
package timezones
