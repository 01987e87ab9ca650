package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "formatted with country code",
			raw:  "+55 11 99999-8888",
			want: "11999998888",
		},
		{
			name: "bare country code prefix",
			raw:  "5511999998888",
			want: "11999998888",
		},
		{
			name: "already local",
			raw:  "11999998888",
			want: "11999998888",
		},
		{
			name: "parentheses and dots",
			raw:  "(11) 99999.8888",
			want: "11999998888",
		},
		{
			name: "local number starting with 55 is kept",
			raw:  "5599998888",
			want: "5599998888",
		},
		{
			name: "whitespace only",
			raw:  "   ",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw))
		})
	}
}

func TestMatch(t *testing.T) {
	assert.True(t, Match("+55 11 99999-8888", "11999998888"))
	assert.True(t, Match("5511999998888", "(11) 99999-8888"))
	assert.False(t, Match("11999998888", "11999998887"))
	assert.False(t, Match("", ""))
}
