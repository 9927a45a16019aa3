package domain

// Category is the first-level taxonomy tag. The enumeration is fixed; experts
// advertise expertise as category and/or subcategory strings.
type Category string

const (
	CategoryHardware   Category = "hardware"
	CategorySoftware   Category = "software"
	CategoryNetwork    Category = "network"
	CategoryAccess     Category = "access"
	CategoryPrinting   Category = "printing"
	CategoryPeripheral Category = "peripheral"
	CategoryMobile     Category = "mobile"
	CategorySecurity   Category = "security"
	CategoryStorage    Category = "storage"
)

// Second-level tags used for expert matching.
const (
	SubcategoryVPN          = "vpn"
	SubcategoryWifi         = "wifi"
	SubcategoryConnectivity = "connectivity"
	SubcategoryPassword     = "password"
	SubcategoryLogin        = "login"
	SubcategoryApplication  = "application"
	SubcategoryPerformance  = "performance"
	SubcategoryDevice       = "device"
	SubcategoryGeneral      = "general"
	SubcategoryPrinter      = "printer"
)

// ValidCategory reports whether c belongs to the fixed enumeration.
func ValidCategory(c Category) bool {
	switch c {
	case CategoryHardware, CategorySoftware, CategoryNetwork, CategoryAccess,
		CategoryPrinting, CategoryPeripheral, CategoryMobile, CategorySecurity,
		CategoryStorage:
		return true
	}
	return false
}
