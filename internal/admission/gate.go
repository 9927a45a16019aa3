// Package admission decides whether free text is a legitimate IT issue before
// a ticket is created. The decision prefers a remote text-classification call
// when one is configured and falls back to a local keyword heuristic on any
// remote failure; remote unavailability never blocks ticket creation.
package admission

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-triage/internal/domain"
)

// Outcome is the admission verdict for a description.
type Outcome string

const (
	OutcomeValid              Outcome = "VALID_IT_ISSUE"
	OutcomeNotIT              Outcome = "NOT_IT_ISSUE"
	OutcomeInsufficientDetail Outcome = "INSUFFICIENT_DETAIL"
	OutcomeUnavailable        Outcome = "AI_UNAVAILABLE"
)

// RemoteClassifier is the optional remote text-classification collaborator.
// Implementations make a single attempt per call; any error is treated as
// unavailability by the gate.
type RemoteClassifier interface {
	ClassifyIssue(ctx context.Context, description string) (Outcome, error)
	CategorizeIssue(ctx context.Context, description string) (domain.Category, error)
}

// Decision is the gate's verdict. RemoteUsed reports whether the remote
// classifier produced the outcome, which also selects the category inference
// path for accepted tickets.
type Decision struct {
	Outcome    Outcome
	RemoteUsed bool
}

// Gate applies the admission decision. With a nil remote classifier the local
// keyword heuristic decides alone.
type Gate struct {
	remote RemoteClassifier
	logger *zap.Logger
}

// NewGate creates a gate. remote may be nil.
func NewGate(remote RemoteClassifier, logger *zap.Logger) *Gate {
	return &Gate{remote: remote, logger: logger}
}

// Admit classifies a description as a valid IT issue, not an IT issue, or
// lacking detail. The remote and local paths are not required to agree; the
// local heuristic is authoritative whenever the remote path is unavailable.
func (g *Gate) Admit(ctx context.Context, description string) Decision {
	if g.remote != nil {
		outcome, err := g.remote.ClassifyIssue(ctx, description)
		if err != nil {
			g.logger.Warn("remote admission classify unavailable", zap.Error(err))
		} else if outcome != OutcomeUnavailable {
			return Decision{Outcome: outcome, RemoteUsed: true}
		}
	}

	if localITCheck(description) {
		return Decision{Outcome: OutcomeValid}
	}
	return Decision{Outcome: OutcomeNotIT}
}

// InferCategory suggests a category for an accepted description. When the
// admission verdict came from the remote classifier the remote categorizer is
// asked first; its failures and out-of-enum answers fall back to the local
// inference either way.
func (g *Gate) InferCategory(ctx context.Context, description string, remoteUsed bool) domain.Category {
	if remoteUsed && g.remote != nil {
		category, err := g.remote.CategorizeIssue(ctx, description)
		if err == nil && domain.ValidCategory(category) {
			return category
		}
		if err != nil {
			g.logger.Warn("remote categorize unavailable", zap.Error(err))
		}
	}
	return localInferCategory(description)
}

// Positive and negative keyword families for the local heuristic. Negative
// terms (household, vehicle, furniture domains) veto a description outright.
var (
	localPositiveTerms = []string{
		"computer", "pc", "laptop", "mac", "windows", "linux", "software", "program",
		"login", "password", "account", "vpn", "email", "outlook",
		"network", "internet", "wifi", "ethernet", "router", "dns",
		"printer", "keyboard", "mouse", "monitor", "screen", "battery", "charger",
		"iphone", "android", "tablet", "mobile",
		"bilgisayar", "ekran", "klavye", "fare", "yazıcı", "ağ", "şifre",
	}
	localNegativeTerms = []string{
		"musluk", "lavabo", "plumbing", "sink", "araba", "car", "bike", "bicycle", "sofa", "garden",
	}
)

func localITCheck(description string) bool {
	d := strings.ToLower(description)
	for _, term := range localNegativeTerms {
		if strings.Contains(d, term) {
			return false
		}
	}
	for _, term := range localPositiveTerms {
		if strings.Contains(d, term) {
			return true
		}
	}
	return false
}

// Ordered local category inference; first matching family wins, hardware is
// the fallback.
var localCategoryRules = []struct {
	category domain.Category
	terms    []string
}{
	{domain.CategoryNetwork, []string{"vpn", "network", "wifi", "ethernet", "router", "dns"}},
	{domain.CategoryAccess, []string{"login", "password", "şifre", "account", "access"}},
	{domain.CategorySoftware, []string{"outlook", "software", "program", "install", "update", "app"}},
	{domain.CategoryPrinting, []string{"printer", "print"}},
	{domain.CategoryPeripheral, []string{"webcam", "camera", "microphone", "speaker", "headset", "dock", "hub"}},
	{domain.CategoryMobile, []string{"iphone", "android", "tablet", "mobile", "ipad"}},
	{domain.CategorySecurity, []string{"antivirus", "certificate", "bitlocker", "encryption"}},
	{domain.CategoryStorage, []string{"ssd", "hdd", "disk", "storage"}},
}

func localInferCategory(description string) domain.Category {
	d := strings.ToLower(description)
	for _, rule := range localCategoryRules {
		for _, term := range rule.terms {
			if strings.Contains(d, term) {
				return rule.category
			}
		}
	}
	return domain.CategoryHardware
}
