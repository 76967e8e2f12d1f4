package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCensorText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		words []string
		want  string
	}{
		{"masks listed word", "this is a badword here", []string{"badword"}, "this is a ******* here"},
		{"case insensitive", "BadWord!", []string{"badword"}, "*******!"},
		{"whole words only", "badwords are fine", []string{"badword"}, "badwords are fine"},
		{"several words", "curse and swearword", []string{"curse", "swearword"}, "***** and *********"},
		{"regex characters are literal", "a.b axb", []string{"a.b"}, "*** axb"},
		{"empty list", "badword", nil, "badword"},
		{"blank entries ignored", "badword", []string{" ", ""}, "badword"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CensorText(tt.text, tt.words))
		})
	}
}
