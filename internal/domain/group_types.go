package domain

// GroupType is the UI-facing tag the rendering tier uses to pick a
// selection widget for a group.
type GroupType string

func (g GroupType) String() string {
	return string(g)
}

const (
	GroupTypeSingle   GroupType = "SINGLE"   // exactly one choice
	GroupTypeToggle   GroupType = "TOGGLE"   // independent on/off choices
	GroupTypeMultiple GroupType = "MULTIPLE" // free quantities within min/max
)

// ClassifyGroup is the default classifier. Composition groups: a 1..1 group
// is SINGLE; a group whose capacity equals its item count with every item
// capped at one is TOGGLE; anything else is MULTIPLE. Input-value groups
// with a boolean domain are TOGGLE, otherwise SINGLE.
func ClassifyGroup(option *AssemblyOption) GroupType {
	if option.Composition != nil {
		comp := option.Composition
		if comp.MinQuantity == 1 && comp.MaxQuantity == 1 {
			return GroupTypeSingle
		}
		if comp.MaxQuantity == len(comp.Items) && allSingleUnit(comp.Items) {
			return GroupTypeToggle
		}
		return GroupTypeMultiple
	}

	if option.InputValues != nil && isBooleanDomain(option.InputValues.Domain) {
		return GroupTypeToggle
	}
	return GroupTypeSingle
}

func allSingleUnit(items []CompositionItem) bool {
	for _, item := range items {
		if item.MaxQuantity != 1 {
			return false
		}
	}
	return true
}

func isBooleanDomain(domain []string) bool {
	if len(domain) != 2 {
		return false
	}
	return (domain[0] == "true" && domain[1] == "false") ||
		(domain[0] == "false" && domain[1] == "true")
}
