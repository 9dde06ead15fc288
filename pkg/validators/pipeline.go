package validators

import "errors"

var errNilValidator = errors.New("validators: factory returned no validator")

// Pipeline is an ordered list of validators compiled for one field.
type Pipeline []Validator

// Run executes the pipeline for key. ErrStopOnError and *Invalid end the run
// for this key only; an *Invalid message is recorded first. Any other error
// is returned unchanged.
func (p Pipeline) Run(key Key, state *State) error {
	state.InitErrors(key)
	for _, v := range p {
		err := v(key, state)
		if err == nil {
			continue
		}
		if errors.Is(err, ErrStopOnError) {
			return nil
		}
		var invalid *Invalid
		if errors.As(err, &invalid) {
			state.AddError(key, invalid.Message)
			return nil
		}
		return err
	}
	return nil
}

// Len reports the number of stages.
func (p Pipeline) Len() int {
	return len(p)
}
