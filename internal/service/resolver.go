package service

import (
	"strings"

	"github.com/spec-kit/helpdesk-triage/internal/domain"
)

// Canned remedies and advisory texts returned by AttemptResolution.
const (
	RemedyHardware = "Restart the machine, close background applications, and check disk usage and pending updates. Run hardware diagnostics if the problem persists."
	RemedyAccess   = "Reset the password or sign in with a one-time code. Clear the browser cache and verify VPN/proxy settings."
	RemedyNetwork  = "Restart the modem/router, check the cabling, try a different network, and verify the VPN configuration."

	AdviceHumanReview     = "High/critical priority: human expert review required."
	AdviceHumanAssignment = "Human expert assignment required."
)

var (
	overheatTerms     = []string{"don", "donuyor", "yavaş", "ısın", "lag", "freeze", "slow"}
	credentialTerms   = []string{"şifre", "parola", "giriş", "login", "password"}
	connectivityTerms = []string{"wifi", "ağ", "vpn", "bağlanm", "internet"}
)

// AttemptResolution decides whether a canned remedy closes the ticket. Rules
// are evaluated in order and the priority gate comes first: a high or critical
// priority ticket is never auto-resolved, whatever its content.
func AttemptResolution(t domain.Ticket) (bool, string) {
	// Stored records may carry legacy casing; match case-insensitively.
	description := strings.ToLower(t.Description)
	category := domain.Category(strings.ToLower(string(t.Category)))
	subcategory := strings.ToLower(t.Subcategory)
	priority := domain.TicketPriority(strings.ToLower(string(t.Priority)))
	if priority == "" {
		priority = domain.TicketPriorityMedium
	}

	if priority == domain.TicketPriorityHigh || priority == domain.TicketPriorityCritical {
		return false, AdviceHumanReview
	}

	if category == domain.CategoryHardware || containsAny(description, overheatTerms) {
		return true, RemedyHardware
	}

	if category == domain.CategorySoftware ||
		subcategory == domain.SubcategoryLogin || subcategory == domain.SubcategoryPassword ||
		containsAny(description, credentialTerms) {
		return true, RemedyAccess
	}

	if category == domain.CategoryNetwork || containsAny(description, connectivityTerms) {
		return true, RemedyNetwork
	}

	return false, AdviceHumanAssignment
}
