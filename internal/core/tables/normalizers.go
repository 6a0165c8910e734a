package tables

import "strings"

// Countries maps lowercase country names and ISO 3166 alpha-2 codes to the
// spelling stored in the tables.
var Countries = map[string]string{
	"australia":      "Australia",
	"au":             "Australia",
	"brunei":         "Brunei",
	"bn":             "Brunei",
	"cambodia":       "Cambodia",
	"kh":             "Cambodia",
	"china":          "China",
	"cn":             "China",
	"hong kong":      "Hong Kong",
	"hk":             "Hong Kong",
	"india":          "India",
	"in":             "India",
	"indonesia":      "Indonesia",
	"id":             "Indonesia",
	"japan":          "Japan",
	"jp":             "Japan",
	"laos":           "Laos",
	"la":             "Laos",
	"malaysia":       "Malaysia",
	"my":             "Malaysia",
	"myanmar":        "Myanmar",
	"mm":             "Myanmar",
	"new zealand":    "New Zealand",
	"nz":             "New Zealand",
	"philippines":    "Philippines",
	"ph":             "Philippines",
	"singapore":      "Singapore",
	"sg":             "Singapore",
	"south korea":    "South Korea",
	"korea":          "South Korea",
	"kr":             "South Korea",
	"taiwan":         "Taiwan",
	"tw":             "Taiwan",
	"thailand":       "Thailand",
	"th":             "Thailand",
	"united kingdom": "United Kingdom",
	"uk":             "United Kingdom",
	"gb":             "United Kingdom",
	"united states":  "United States",
	"usa":            "United States",
	"us":             "United States",
	"vietnam":        "Vietnam",
	"viet nam":       "Vietnam",
	"vn":             "Vietnam",
}

// NormalizeCountry converts country names and codes to their stored spelling.
// Unrecognized input is returned trimmed.
func NormalizeCountry(s string) string {
	s = strings.TrimSpace(s)
	if name, ok := Countries[strings.ToLower(s)]; ok {
		return name
	}
	return s
}

// NormalizeID upper-cases generated identifiers so t001 finds T001.
func NormalizeID(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// NormalizeEmail lower-cases an email address.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeHandle collapses runs of spaces inside an in-game name.
func NormalizeHandle(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
