package delivery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildDeepLink(t *testing.T) {
	tests := []struct {
		name    string
		phone   string
		caption string
		want    string
	}{
		{
			name:    "local number gets country prefix",
			phone:   "11999999999",
			caption: "Oi",
			want:    "https://wa.me/5511999999999?text=Oi",
		},
		{
			name:    "already international",
			phone:   "5511999999999",
			caption: "Oi",
			want:    "https://wa.me/5511999999999?text=Oi",
		},
		{
			name:    "spaces become percent twenty",
			phone:   "11999999999",
			caption: "Status do Serviço",
			want:    "https://wa.me/5511999999999?text=Status%20do%20Servi%C3%A7o",
		},
		{
			name:    "newlines are encoded",
			phone:   "11999999999",
			caption: "linha um\nlinha dois",
			want:    "https://wa.me/5511999999999?text=linha%20um%0Alinha%20dois",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildDeepLink("wa.me", tt.phone, tt.caption))
		})
	}
}
