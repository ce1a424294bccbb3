package domain

import "strings"

// SettingsSection enumerates the configurable console pages.
type SettingsSection string

const (
	SectionGeneral       SettingsSection = "general"
	SectionNotifications SettingsSection = "notifications"
	SectionSecurity      SettingsSection = "security"
	SectionMaintenance   SettingsSection = "maintenance"
)

// KnownSection reports whether the section name is part of the closed set.
func KnownSection(s SettingsSection) bool {
	switch s {
	case SectionGeneral, SectionNotifications, SectionSecurity, SectionMaintenance:
		return true
	}
	return false
}

// SettingsDocument is the nested snapshot edited by a settings page.
type SettingsDocument map[string]any

// DeepCopy returns an independent copy of the document so callers can
// edit a snapshot without mutating the loaded state.
func (d SettingsDocument) DeepCopy() SettingsDocument {
	return SettingsDocument(copyValue(map[string]any(d)).(map[string]any))
}

func copyValue(v any) any {
	switch typed := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for k, val := range typed {
			out[k] = copyValue(val)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, val := range typed {
			out[i] = copyValue(val)
		}
		return out
	default:
		return v
	}
}

// SetPath updates a possibly nested field addressed by a dot path such
// as "doubleAuth.methode", preserving sibling fields. The receiver is
// not mutated; a copy-on-write document is returned. Intermediate maps
// are created as needed.
func (d SettingsDocument) SetPath(path string, value any) SettingsDocument {
	out := d.DeepCopy()
	if out == nil {
		out = SettingsDocument{}
	}
	parts := strings.Split(path, ".")
	node := map[string]any(out)
	for _, part := range parts[:len(parts)-1] {
		child, ok := node[part].(map[string]any)
		if !ok {
			child = map[string]any{}
			node[part] = child
		}
		node = child
	}
	node[parts[len(parts)-1]] = value
	return out
}

// DefaultSettings seeds a section the first time a console loads it.
func DefaultSettings(scope ConsoleScope, section SettingsSection) SettingsDocument {
	switch section {
	case SectionGeneral:
		doc := SettingsDocument{
			"nom":       "",
			"email":     "",
			"telephone": "",
			"adresse":   "Antananarivo, Madagascar",
			"devise":    "MGA",
			"langue":    "fr",
		}
		if scope == ScopePlatform {
			doc["nom"] = "Tsenako"
			doc["commissionPourcent"] = 5.0
		}
		return doc
	case SectionNotifications:
		return SettingsDocument{
			"email": map[string]any{
				"nouvelleCommande": true,
				"nouveauTicket":    true,
				"nouvelAvis":       false,
			},
			"sms": map[string]any{
				"nouvelleCommande": false,
				"nouveauTicket":    false,
			},
		}
	case SectionSecurity:
		return SettingsDocument{
			"doubleAuth": map[string]any{
				"active":  false,
				"methode": "email",
			},
			"sessionTimeoutMinutes": 30,
		}
	case SectionMaintenance:
		return SettingsDocument{
			"active":  false,
			"message": "Le site est en maintenance, merci de revenir plus tard.",
		}
	default:
		return SettingsDocument{}
	}
}
