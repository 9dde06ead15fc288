// Package record validates whole submitted records against a scheming schema.
//
// A Validator compiles every field's validator strings once per schema type
// and reuses the compiled pipelines for each record. Submitted keys that do
// not name a field are placed in the extras bag, where composite validators
// (for example the date/time/timezone sub-inputs of scheming_isodatetime)
// can claim them. Resource lists are validated element by element, each with
// its own extras bag, under keys of the form "resources.<n>.<field>".
package record
