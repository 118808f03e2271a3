package model

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransaction_Validate(t *testing.T) {

	type test struct {
		amount float64
		err    bool
	}

	tests := map[string]test{
		"zero": {
			amount: 0,
			err:    false,
		},
		"positive": {
			amount: 1000,
			err:    false,
		},
		"negative": {
			amount: -50,
			err:    true,
		},
		"nan": {
			amount: math.NaN(),
			err:    true,
		},
		"inf": {
			amount: math.Inf(1),
			err:    true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := Transaction{Amount: tt.amount}.Validate()
			if tt.err {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, ValidationErr))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRound3(t *testing.T) {

	type test struct {
		input  float64
		output float64
	}

	tests := map[string]test{
		"up": {
			input:  0.12345,
			output: 0.123,
		},
		"down": {
			input:  0.9996,
			output: 1.0,
		},
		"exact": {
			input:  0.6,
			output: 0.6,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.output, Round3(tt.input))
		})
	}
}
