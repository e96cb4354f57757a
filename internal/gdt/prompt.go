package gdt

import "strings"

// BuildFeaturePrompt is the multimodal instruction set for reading one
// feature-control frame from the attached crop: compartment order, a worked
// example, and a numeric self-correction rule for ambiguous digit runs.
func BuildFeaturePrompt() string {
	var b strings.Builder
	b.WriteString("You are a GD&T expert reading an engineering drawing. The attached image is a crop centered on a feature control frame. Parse its compartments LEFT TO RIGHT per ASME Y14.5:\n")
	b.WriteString("1. The geometric characteristic symbol (e.g. position, flatness, perpendicularity, profile of a surface, circular runout).\n")
	b.WriteString("2. The tolerance compartment: the tolerance value, whether it is preceded by a diameter symbol, and any material condition modifier (M for MMC, L for LMC) attached to the tolerance.\n")
	b.WriteString("3. Zero or more datum reference compartments, in order; each is a single letter with its own optional material condition modifier.\n\n")
	b.WriteString("Example: a frame showing [position | ⌀ 0.25 M | A | B M | C] becomes:\n")
	b.WriteString(`{"symbol": "position", "tolerance": "0.25", "diameter": true, "material_condition": "M", "datums": [{"letter": "A"}, {"letter": "B", "modifier": "M"}, {"letter": "C"}]}`)
	b.WriteString("\n\n")
	b.WriteString("Double-check numeric readings: drawings at this resolution make decimal points easy to hallucinate. If the digits could read as either an integral value or a decimal (e.g. \"25\" vs \"2.5\"), prefer the reading where a decimal point is clearly visible; absent clear evidence of a point, report the integral value.\n\n")
	b.WriteString("Return ONLY a raw JSON object with keys symbol, tolerance, diameter, material_condition, datums. Omit material_condition when there is none. No explanations, no markdown formatting.")
	return b.String()
}
