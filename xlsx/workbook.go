// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package xlsx

// BudgetEntries returns the parts of the budget workbook, in archive order.
func BudgetEntries(lineItems, summary []Row) []Entry {
	return []Entry{
		{Path: ContentTypesPath, Content: contentTypesXML},
		{Path: PackageRelsPath, Content: packageRelsXML},
		{Path: WorkbookPath, Content: workbookXML},
		{Path: WorkbookRelsPath, Content: workbookRelsXML},
		{Path: StylesPath, Content: stylesXML},
		{Path: LineItemsSheetPath, Content: RenderWorksheet(lineItems)},
		{Path: SummarySheetPath, Content: RenderWorksheet(summary)},
	}
}

// BuildBudgetWorkbook returns the .xlsx file with the "Line Items"
// and the "Summary" sheets.
//
// It is safe to call concurrently.
func BuildBudgetWorkbook(lineItems, summary []Row) []byte {
	return BuildArchive(BudgetEntries(lineItems, summary))
}
