package service

import (
	"strings"

	"github.com/spec-kit/helpdesk-triage/internal/domain"
)

// Keyword families for classification. The keyword sets mix English and
// Turkish because reporters write in both; "bağlanm" and "don" are stems that
// cover the inflected forms (bağlanmıyor/bağlanamıyorum, donuyor/dondu).
var (
	networkTerms = []string{"wifi", "wi-fi", "ağ", "internet", "vpn", "bağlanm", "dns", "proxy", "lan", "wan"}
	wifiTerms    = []string{"wifi", "wi-fi", "kablosuz"}

	softwareTerms = []string{"şifre", "parola", "password", "login", "giriş", "oturum", "session", "uygulama", "app", "program", "kurulum", "install", "update"}
	passwordTerms = []string{"şifre", "parola", "password", "reset"}
	loginTerms    = []string{"login", "giriş", "oturum", "session"}

	hardwareTerms    = []string{"don", "donuyor", "yavaş", "ısın", "fan", "gürültü", "disk", "ssd", "ram", "ekran", "screen", "klavye", "mouse", "keyboard", "laptop", "bilgisayar", "boot", "freeze", "slow", "lag"}
	performanceTerms = []string{"don", "donuyor", "yavaş", "freeze", "slow", "lag"}
)

// Classify maps free text onto the fixed (category, subcategory) taxonomy via
// case-insensitive substring search over ordered keyword groups. The group
// order is the tie-break policy: a description matching both network and
// hardware vocabulary classifies as network because the network group
// short-circuits first.
func Classify(description string) (domain.Category, string) {
	text := strings.ToLower(description)

	if containsAny(text, networkTerms) {
		if strings.Contains(text, "vpn") {
			return domain.CategoryNetwork, domain.SubcategoryVPN
		}
		if containsAny(text, wifiTerms) {
			return domain.CategoryNetwork, domain.SubcategoryWifi
		}
		return domain.CategoryNetwork, domain.SubcategoryConnectivity
	}

	if containsAny(text, softwareTerms) {
		if containsAny(text, passwordTerms) {
			return domain.CategorySoftware, domain.SubcategoryPassword
		}
		if containsAny(text, loginTerms) {
			return domain.CategorySoftware, domain.SubcategoryLogin
		}
		return domain.CategorySoftware, domain.SubcategoryApplication
	}

	if containsAny(text, hardwareTerms) {
		if containsAny(text, performanceTerms) {
			return domain.CategoryHardware, domain.SubcategoryPerformance
		}
		return domain.CategoryHardware, domain.SubcategoryDevice
	}

	return domain.CategorySoftware, domain.SubcategoryGeneral
}

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}
