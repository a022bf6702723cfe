package intent

import "fmt"

// AccessRulePreset names one of the three built-in access rule bundles.
type AccessRulePreset string

const (
	PresetOpenPlan       AccessRulePreset = "open_plan"
	PresetTraditional    AccessRulePreset = "traditional"
	PresetPrivacyFocused AccessRulePreset = "privacy_focused"
)

// AccessRule restricts which rooms a door to/from a given room type or
// category may connect to (spec section 3).
type AccessRule struct {
	// RoomTypeOrCategory is either a RoomType.String() or a Category.String().
	RoomTypeOrCategory string
	AccessibleFrom     []string // nil/empty means unrestricted
	CanLeadTo          []string // nil/empty means unrestricted
}

// matches reports whether the rule governs the given room (by exact type
// name or by category name).
func (a AccessRule) matches(t RoomType, cat Category) bool {
	return a.RoomTypeOrCategory == t.String() || a.RoomTypeOrCategory == cat.String()
}

// ResolvePreset returns the default AccessRule set for a named preset.
func ResolvePreset(preset AccessRulePreset) []AccessRule {
	switch preset {
	case PresetTraditional:
		return []AccessRule{
			{RoomTypeOrCategory: CategoryPrivate.String(), AccessibleFrom: []string{CategoryCirculation.String()}},
			{RoomTypeOrCategory: Bath.String(), AccessibleFrom: []string{CategoryCirculation.String(), Kitchen.String()}},
			{RoomTypeOrCategory: CategoryService.String(), AccessibleFrom: []string{CategoryCirculation.String(), Kitchen.String()}},
		}
	case PresetPrivacyFocused:
		return []AccessRule{
			{RoomTypeOrCategory: CategoryPrivate.String(), AccessibleFrom: []string{CategoryCirculation.String()}},
			{RoomTypeOrCategory: Bath.String(), AccessibleFrom: []string{CategoryCirculation.String()}},
			{RoomTypeOrCategory: CategoryService.String(), AccessibleFrom: []string{CategoryCirculation.String()}},
			{RoomTypeOrCategory: CategoryPublic.String(), CanLeadTo: []string{CategoryPublic.String(), CategoryCirculation.String()}},
		}
	case PresetOpenPlan:
		fallthrough
	default:
		return nil // unrestricted: every door is allowed
	}
}

// Validate checks the preset name is recognised, if set.
func (p AccessRulePreset) Validate() error {
	switch p {
	case "", PresetOpenPlan, PresetTraditional, PresetPrivacyFocused:
		return nil
	default:
		return fmt.Errorf("unknown access_rule_preset %q", p)
	}
}

// RuleFor returns the first matching rule for a room, or the zero value
// (unrestricted) if none matches.
func RuleFor(rules []AccessRule, t RoomType, cat Category) (AccessRule, bool) {
	for _, r := range rules {
		if r.matches(t, cat) {
			return r, true
		}
	}
	return AccessRule{}, false
}

// Allowed reports whether a door between a room of type/category
// (fromType, fromCat) and a room of type/category (toType, toCat) is
// permitted by rules, applying spec section 4.6's symmetric filter: a door
// is allowed unless EITHER side's rule forbids it. Circulation rooms are
// always allowed as the "from" side, overriding any rule that would
// otherwise restrict what they can lead to.
func Allowed(rules []AccessRule, fromType, toType RoomType, fromCat, toCat Category) bool {
	if fromCat == CategoryCirculation {
		return true
	}
	if rule, ok := RuleFor(rules, fromType, fromCat); ok {
		if len(rule.AccessibleFrom) > 0 && !contains(rule.AccessibleFrom, toType.String()) && !contains(rule.AccessibleFrom, toCat.String()) {
			return false
		}
		if len(rule.CanLeadTo) > 0 && !contains(rule.CanLeadTo, toType.String()) && !contains(rule.CanLeadTo, toCat.String()) {
			return false
		}
	}
	if rule, ok := RuleFor(rules, toType, toCat); ok {
		if len(rule.AccessibleFrom) > 0 && !contains(rule.AccessibleFrom, fromType.String()) && !contains(rule.AccessibleFrom, fromCat.String()) {
			return false
		}
		if len(rule.CanLeadTo) > 0 && !contains(rule.CanLeadTo, fromType.String()) && !contains(rule.CanLeadTo, fromCat.String()) {
			return false
		}
	}
	return true
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
