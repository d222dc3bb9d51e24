package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Haircut", "haircut"},
		{"  Massagem  ", "massagem"},
		{"Depilação", "depilacao"},
		{"Mãos e Pés", "maos e pes"},
		{"CORTE MASCULINO", "corte masculino"},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeName(tc.in), "input %q", tc.in)
	}
}
