package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/helpdesk-triage/internal/domain"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		description string
		category    domain.Category
		subcategory string
	}{
		{
			name:        "vpn",
			description: "My VPN keeps disconnecting every 10 minutes",
			category:    domain.CategoryNetwork,
			subcategory: domain.SubcategoryVPN,
		},
		{
			name:        "wifi",
			description: "Office wifi is unusable on the third floor",
			category:    domain.CategoryNetwork,
			subcategory: domain.SubcategoryWifi,
		},
		{
			name:        "wifi turkish",
			description: "Kablosuz bağlantı sürekli kopuyor",
			category:    domain.CategoryNetwork,
			subcategory: domain.SubcategoryWifi,
		},
		{
			name:        "generic connectivity",
			description: "No internet on the dock since this morning",
			category:    domain.CategoryNetwork,
			subcategory: domain.SubcategoryConnectivity,
		},
		{
			name:        "password",
			description: "I need a password reset for the billing portal",
			category:    domain.CategorySoftware,
			subcategory: domain.SubcategoryPassword,
		},
		{
			name:        "password turkish",
			description: "Parolamı unuttum, hesabıma giremiyorum",
			category:    domain.CategorySoftware,
			subcategory: domain.SubcategoryPassword,
		},
		{
			name:        "login",
			description: "The login page rejects my credentials",
			category:    domain.CategorySoftware,
			subcategory: domain.SubcategoryLogin,
		},
		{
			name:        "application",
			description: "The update broke the reporting tool",
			category:    domain.CategorySoftware,
			subcategory: domain.SubcategoryApplication,
		},
		{
			name:        "performance",
			description: "Everything is painfully slow after the restart",
			category:    domain.CategoryHardware,
			subcategory: domain.SubcategoryPerformance,
		},
		{
			name:        "device",
			description: "The keyboard stopped responding",
			category:    domain.CategoryHardware,
			subcategory: domain.SubcategoryDevice,
		},
		{
			name:        "laptop boot failure",
			description: "urgent: laptop won't boot",
			category:    domain.CategoryHardware,
			subcategory: domain.SubcategoryDevice,
		},
		{
			name:        "default fallback",
			description: "something is wrong with my setup",
			category:    domain.CategorySoftware,
			subcategory: domain.SubcategoryGeneral,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			category, subcategory := Classify(tc.description)
			assert.Equal(t, tc.category, category)
			assert.Equal(t, tc.subcategory, subcategory)
		})
	}
}

// The network group short-circuits first, so vpn wins over any competing
// keywords present in the same description.
func TestClassifyVPNDominates(t *testing.T) {
	descriptions := []string{
		"vpn drops whenever the laptop gets slow",
		"password prompt loops after connecting to vpn",
		"VPN is broken and the screen keeps freezing",
	}
	for _, d := range descriptions {
		category, subcategory := Classify(d)
		assert.Equal(t, domain.CategoryNetwork, category, d)
		assert.Equal(t, domain.SubcategoryVPN, subcategory, d)
	}
}

func TestClassifyCaseInsensitive(t *testing.T) {
	category, subcategory := Classify("WIFI DOWN IN MEETING ROOM")
	assert.Equal(t, domain.CategoryNetwork, category)
	assert.Equal(t, domain.SubcategoryWifi, subcategory)
}
