// ABOUTME: Usage-category classification and profile resolution
// ABOUTME: Ordered keyword rules map free-text usage to a capacity sheet

package services

import (
	"fmt"
	"strings"

	"github.com/refritek/coldroom-analyzer/models"
)

// Fallbacks when a usage string maps to no loaded table or profile.
const (
	defaultSheet      = "FRUTAS"
	defaultProfileKey = "FRUVER"
)

// usageRule maps a keyword to a capacity sheet. Rules are evaluated
// top to bottom; the first match wins, which preserves the legacy
// precedence when a usage string matches several keywords.
type usageRule struct {
	keyword string
	sheet   string
}

var usageRules = []usageRule{
	{"HELADO", "HELADO"},
	{"CONGEL", "CC"},
	{"CARNE", "CARNES"},
	{"LACT", "LACTEOS"},
	{"FRU", "FRUTAS"},
	{"PROCESO", "PROCESO"},
}

// exact-match aliases handled before the keyword scan
var usageAliases = map[string]string{
	"CC":               "CC",
	"COMIDA CONGELADA": "CC",
}

// PickUsageSheet normalizes a usage label and maps it to a capacity
// sheet name. Unmatched labels fall back to the FRUTAS sheet.
func PickUsageSheet(usage string) string {
	u := strings.ToUpper(strings.TrimSpace(usage))
	if sheet, ok := usageAliases[u]; ok {
		return sheet
	}
	for _, r := range usageRules {
		if strings.Contains(u, r.keyword) {
			return r.sheet
		}
	}
	return defaultSheet
}

// profileKey normalizes a raw usage label into a usage-profile key,
// tolerating the known aliases.
func profileKey(usage string) string {
	key := strings.ToUpper(strings.TrimSpace(usage))
	switch key {
	case "CC":
		return "COMIDA CONGELADA"
	case "FRUTAS":
		return "FRUVER"
	}
	return key
}

// resolveProfile returns the operating temperatures for a usage label.
// Unknown labels resolve to the default profile with a diagnostic.
func (e *Engine) resolveProfile(usage string) (models.UsageProfile, string) {
	key := profileKey(usage)
	if prof, ok := e.ds.UsageProfiles[key]; ok {
		return prof, ""
	}
	msg := fmt.Sprintf("No usage profile for %q; using %s.", usage, defaultProfileKey)
	return e.ds.UsageProfiles[defaultProfileKey], msg
}

// sheetToProfileKey maps a capacity sheet name to the key used by the
// family-by-usage configuration.
var sheetToProfileKey = map[string]string{
	"HELADO":  "HELADOS",
	"CC":      "COMIDA CONGELADA",
	"FRUTAS":  "FRUVER",
	"CARNES":  "CARNES",
	"LACTEOS": "LACTEOS",
	"PROCESO": "PROCESO",
}

// familyForSheet resolves the evaporator family for a capacity sheet in
// auto mode. Unmapped sheets default to frontal.
func (e *Engine) familyForSheet(sheet string) models.Family {
	key, ok := sheetToProfileKey[sheet]
	if !ok {
		key = sheet
	}
	if fam, ok := e.ds.Config.FamilyByUsage[key]; ok && fam != "" {
		return fam
	}
	return models.FamilyFrontal
}
