package services

// VariableCategory groups the placeholder tokens shown in the template
// editor's variable picker.
type VariableCategory struct {
	Name      string     `json:"name"`
	Variables []Variable `json:"variables"`
}

// Variable is a single placeholder token with its display label.
type Variable struct {
	Token   string `json:"token"` // e.g., "{{CaseNumber}}"
	Label   string `json:"label"`
	Example string `json:"example"`
}

// VariableDictionary returns all placeholder tokens the renderer recognizes,
// organized by category. The token strings are the exact case-sensitive
// forms substituted by SubstitutePlaceholders.
func VariableDictionary() []VariableCategory {
	return []VariableCategory{
		{
			Name: "Basic Case",
			Variables: []Variable{
				{Token: "{{Date}}", Label: "Date Today", Example: "June 10, 2024"},
				{Token: "{{CaseNumber}}", Label: "Case Number", Example: "CE-2024-001"},
				{Token: "{{Status}}", Label: "Status", Example: "ACTIVE"},
			},
		},
		{
			Name: "Owner",
			Variables: []Variable{
				{Token: "{{OwnerName}}", Label: "Name", Example: "Jane Doe"},
				{Token: "{{MailingAddress}}", Label: "Mailing Address", Example: "PO Box 12, Commerce, OK"},
				{Token: "{{OwnerPhone}}", Label: "Phone", Example: "(918) 555-0142"},
			},
		},
		{
			Name: "Property",
			Variables: []Variable{
				{Token: "{{PropertyAddress}}", Label: "Street Address", Example: "123 Main St, Commerce, OK 74339"},
				{Token: "{{LegalDescription}}", Label: "Legal Description", Example: "Lot 4, Block 12, Original Townsite"},
				{Token: "{{TaxID}}", Label: "Tax ID", Example: "0000-12-345"},
				{Token: "{{ParcelNumber}}", Label: "Parcel #", Example: "44-0081"},
			},
		},
		{
			Name: "Violations",
			Variables: []Variable{
				{Token: "{{Violations}}", Label: "Full Violation Block", Example: "(formatted block)"},
				{Token: "{{ViolationType}}", Label: "Violation Type", Example: "Tall Grass / Weeds"},
				{Token: "{{Ordinance}}", Label: "Ordinance", Example: "Ordinance 8-101"},
				{Token: "{{ViolationDescription}}", Label: "Description", Example: "Vegetation over twelve inches..."},
				{Token: "{{CorrectiveAction}}", Label: "Corrective Action", Example: "Cut and remove all grass and weeds..."},
				{Token: "{{Deadline}}", Label: "Compliance Deadline", Example: "June 20, 2024"},
			},
		},
		{
			Name: "Abatement / Costs",
			Variables: []Variable{
				{Token: "{{CostBreakdown}}", Label: "Cost Breakdown", Example: "(formatted table)"},
				{Token: "{{TotalCost}}", Label: "Total Cost", Example: "$125.00"},
				{Token: "{{InvoiceNumber}}", Label: "Invoice #", Example: "INV-CE-2024-001"},
				{Token: "{{WorkDate}}", Label: "Work Date", Example: "2024-06-01"},
			},
		},
		{
			Name: "Office",
			Variables: []Variable{
				{Token: "{{CityName}}", Label: "City Name", Example: "City of Commerce"},
				{Token: "{{DepartmentName}}", Label: "Department", Example: "Code Enforcement Division"},
				{Token: "{{OfficerName}}", Label: "Officer Name", Example: "J. Smith"},
				{Token: "{{ContactPhone}}", Label: "Contact Phone", Example: "(918) 555-0100"},
				{Token: "{{ContactEmail}}", Label: "Contact Email", Example: "codeenforcement@cityofcommerce.gov"},
			},
		},
	}
}
