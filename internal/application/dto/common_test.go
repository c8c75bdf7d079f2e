package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageRequest_Normalize(t *testing.T) {
	cases := []struct {
		name       string
		in         PageRequest
		wantLimit  int
		wantOffset int
	}{
		{"sin valores", PageRequest{}, DefaultPageLimit, 0},
		{"limite negativo", PageRequest{Limit: -5, Offset: -1}, DefaultPageLimit, 0},
		{"limite dentro de rango", PageRequest{Limit: 50, Offset: 10}, 50, 10},
		{"limite maximo exacto", PageRequest{Limit: MaxPageLimit}, MaxPageLimit, 0},
		{"limite excesivo", PageRequest{Limit: 100000}, MaxPageLimit, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := tc.in
			p.Normalize()
			assert.Equal(t, tc.wantLimit, p.Limit)
			assert.Equal(t, tc.wantOffset, p.Offset)
		})
	}
}
