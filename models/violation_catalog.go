package models

// ViolationTypeOther is the free-text catalog escape hatch. Cases citing it
// keep whatever ordinance/description the officer typed in.
const ViolationTypeOther = "Other (Manual Entry)"

// ViolationCatalog is the fixed catalog of citable violations. Selecting a
// catalog type on a case snaps the case's violation to the catalog entry so
// edits to free-text fields cannot drift from the ordinance on file.
var ViolationCatalog = []Violation{
	{
		Type:             "Tall Grass / Weeds",
		Ordinance:        "Ordinance 8-101: Nuisance Vegetation",
		Description:      "Grass, weeds, or other rank vegetation exceeding twelve (12) inches in height.",
		CorrectiveAction: "Cut and remove all grass and weeds over twelve inches, and maintain the property thereafter.",
		NoticeClause:     "Failure to abate will result in the City entering the property to mow at the owner's expense, plus an administrative fee.",
	},
	{
		Type:             "Junk / Inoperable Vehicle",
		Ordinance:        "Ordinance 8-210: Junked and Inoperable Vehicles",
		Description:      "One or more wrecked, dismantled, or inoperable vehicles stored in public view.",
		CorrectiveAction: "Remove the vehicle(s) from the premises or store them within a fully enclosed structure.",
		NoticeClause:     "Vehicles remaining after the deadline may be towed and impounded at the owner's expense.",
	},
	{
		Type:             "Trash / Debris Accumulation",
		Ordinance:        "Ordinance 8-115: Accumulation of Refuse",
		Description:      "Accumulated trash, rubbish, or debris constituting a health hazard or harborage for vermin.",
		CorrectiveAction: "Remove all trash and debris from the premises and dispose of it lawfully.",
		NoticeClause:     "Failure to abate will result in city removal of the refuse at the owner's expense.",
	},
	{
		Type:             "Dilapidated Structure",
		Ordinance:        "Ordinance 12-301: Dangerous and Dilapidated Buildings",
		Description:      "A structure that is dilapidated, structurally unsafe, or open to unauthorized entry.",
		CorrectiveAction: "Repair the structure to code or demolish it under a valid permit, and secure all openings in the interim.",
		NoticeClause:     "The structure may be condemned and demolished by the City with costs assessed against the property.",
	},
	{
		Type:             "Open Storage",
		Ordinance:        "Ordinance 8-120: Open Storage Prohibited",
		Description:      "Household goods, appliances, building materials, or similar items stored outdoors in view of the public.",
		CorrectiveAction: "Relocate all stored items into an enclosed structure or remove them from the premises.",
		NoticeClause:     "Items remaining after the deadline are subject to removal at the owner's expense.",
	},
	{
		Type:             ViolationTypeOther,
		Ordinance:        "",
		Description:      "",
		CorrectiveAction: "",
		NoticeClause:     "",
	},
}

// FindViolation returns the catalog entry for the given type. The boolean is
// false when the type is not in the catalog (including the empty string).
func FindViolation(violationType string) (Violation, bool) {
	for _, v := range ViolationCatalog {
		if v.Type == violationType {
			return v, true
		}
	}
	return Violation{}, false
}
