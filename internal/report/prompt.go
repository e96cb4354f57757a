package report

import (
	"strings"
)

// BuildPagePrompt embeds one page's text with the fixed instruction set for
// the {header, table} extraction step.
func BuildPagePrompt(pageText string) string {
	var b strings.Builder
	b.WriteString("You are an expert data extraction assistant. Analyze the page of an inspection document below and convert its contents into a structured JSON object.\n\n")
	b.WriteString("**PAGE TEXT:**\n---\n")
	b.WriteString(pageText)
	b.WriteString("\n---\n\n**INSTRUCTIONS:**\n")
	b.WriteString("1. Return a single, raw JSON object with exactly two keys: \"header\" and \"table\".\n")
	b.WriteString("2. \"header\" holds key-value pairs from the top of the page. If the page has no header data, return an empty object.\n")
	b.WriteString("3. \"table\" holds \"columns\" (a list of column names) and \"rows\" (a list of lists of cell strings).\n")
	b.WriteString("4. If a logical table row spans multiple source lines, consolidate it into a single row.\n")
	b.WriteString("5. If the page contains no table, return an empty \"rows\" list.\n")
	b.WriteString("6. Respond with ONLY the JSON object. No explanations, no markdown formatting.")
	return b.String()
}

// BuildMappingPrompt embeds a blank template's text and the aggregated
// source data for the template-mapping step.
func BuildMappingPrompt(templateText string, sourceJSON []byte) string {
	var b strings.Builder
	b.WriteString("You are a data mapping and transformation expert. You are given a BLANK TEMPLATE and a JSON OBJECT containing source data. Create a new JSON object that follows the structure of the BLANK TEMPLATE, populated with data from the source JSON.\n\n")
	b.WriteString("**BLANK TEMPLATE:**\n---\n")
	b.WriteString(templateText)
	b.WriteString("\n---\n\n**SOURCE DATA JSON:**\n---\n")
	b.Write(sourceJSON)
	b.WriteString("\n---\n\n**INSTRUCTIONS:**\n")
	b.WriteString("1. Produce a JSON object with \"header\" and \"table\" keys matching the structure of the BLANK TEMPLATE.\n")
	b.WriteString("2. Populate the header using the corresponding values from the source header.\n")
	b.WriteString("3. For each source table row, create a row that fits the template's table structure, intelligently mapping source columns onto template columns (combining source columns where the template expects a single value).\n")
	b.WriteString("4. Columns the template leaves for later observation (such as 'Observed values') must be empty strings.\n")
	b.WriteString("5. Respond with ONLY the JSON object. No explanations, no markdown formatting.")
	return b.String()
}

// BuildPointQueryPrompt asks for the value of one labeled parameter.
func BuildPointQueryPrompt(docText, label string) string {
	var b strings.Builder
	b.WriteString("You are an inspection document assistant. Find the parameter labeled below in the document text and report its value.\n\n")
	b.WriteString("**PARAMETER LABEL:** ")
	b.WriteString(label)
	b.WriteString("\n\n**DOCUMENT TEXT:**\n---\n")
	b.WriteString(docText)
	b.WriteString("\n---\n\n")
	b.WriteString("Return a single raw JSON object: {\"parameter\": \"<the label>\", \"value\": \"<the value as written>\"}. ")
	b.WriteString("If the parameter does not appear, use an empty string for \"value\". Respond with ONLY the JSON object.")
	return b.String()
}
