package vision

import (
	"fmt"
	"strings"

	"veridoc/internal/domain"
	"veridoc/internal/schema"
)

// ClassificationPrompt returns the instruction for the classification stage.
// The accepted document types are fixed by the classification schema; the
// prompt describes what distinguishes them.
func ClassificationPrompt() string {
	return `You are a document classification system. Analyze the provided image and classify it as one of the following:

1. passport - An international travel document with photo, personal details, and MRZ (Machine Readable Zone)
2. license - A state or country issued driving permit with photo and driving details
3. state_id - A government-issued identity card that is not a driving permit
4. college_id - A student or campus identity card issued by a college or university
5. other - A valid identity document that fits none of the categories above (employee badge, membership card with identity details)
6. invalid - Not a recognizable identity document, or image quality too poor to classify

Look for distinguishing features:
- Passports: booklet format, MRZ at the bottom, "PASSPORT" text, country emblems
- Driver's licenses: card format, state seals, license number, height/weight/eye color
- State IDs: card format resembling a license but without driving class or endorsements
- College IDs: institution name or logo, student number, campus branding
- Other IDs: card format with name, DOB, or photo but none of the markers above
- Invalid: blurry images, non-ID documents, screenshots, or anything else

Use confidence scores to indicate:
- 1.0: sure, no doubt
- 0.8-0.9: very clear, minor uncertainty
- 0.6-0.7: partially sure but some ambiguity
- 0.4-0.5: unclear
- below 0.4: very uncertain or mostly illegible

Provide your classification with brief reasoning.`
}

// typeGuidance carries the document-type specific framing injected into the
// extraction prompt.
var typeGuidance = map[domain.DocumentType]string{
	domain.DocumentTypePassport: `You are an expert passport data extraction system.
Focus on the MRZ (Machine Readable Zone) at the bottom: it is the most reliable data source.
The name is often split into surname and given names; combine them as "First Name Surname".
The passport number is usually a 6-15 character alphanumeric code.`,
	domain.DocumentTypeLicense: `You are an expert driver's license data extraction system.
Pay attention to state-specific fields and layouts.
A license carries multiple dates; be careful not to confuse date of birth, issue, and expiry.
Extract height and weight with their units as printed.`,
	domain.DocumentTypeStateID: `You are an expert identity document data extraction system analyzing a state ID.
These cards resemble licenses but vary by issuer; extract what is clearly visible.`,
	domain.DocumentTypeCollegeID: `You are an expert identity document data extraction system analyzing a college or campus ID.
These cards vary greatly by institution; focus on the essential fields and extract metadata only when clearly visible.`,
	domain.DocumentTypeOther: `You are an expert identity document data extraction system.
This document is neither a passport nor a driver's license; it could be an employee badge or another form of identification.
Focus on getting the essential fields correct.`,
}

// ExtractionPrompt builds the extraction instruction for a document type
// from its field schema. Field names and descriptions come straight from
// the schema so the prompt and the response format never drift apart.
func ExtractionPrompt(t domain.DocumentType, essential, metadata []schema.FieldSpec) string {
	var b strings.Builder
	guidance, ok := typeGuidance[t]
	if !ok {
		guidance = typeGuidance[domain.DocumentTypeOther]
	}
	b.WriteString(guidance)
	b.WriteString(`

CRITICAL INSTRUCTIONS:
1. Extract each field with an associated confidence score (0.0 to 1.0)
2. Convert all dates to YYYY-MM-DD format, whatever format they appear in
3. Extract names exactly as they appear on the document
4. If a field exists on the document but is unclear, still include it with low confidence
5. If a field is not present on the document, use a null value with confidence 0.0

Use confidence scores to indicate:
- 1.0: crystal clear, no doubt
- 0.8-0.9: very clear, minor uncertainty
- 0.6-0.7: readable but some ambiguity
- 0.4-0.5: partially visible or unclear
- below 0.4: very uncertain or mostly illegible

`)
	writeFieldSection(&b, "ESSENTIAL FIELDS", essential)
	b.WriteString("\n")
	writeFieldSection(&b, "METADATA", metadata)
	b.WriteString("\nNote any issues or observations about the document in extraction_notes.")
	return b.String()
}

func writeFieldSection(b *strings.Builder, heading string, fields []schema.FieldSpec) {
	fmt.Fprintf(b, "%s:\n", heading)
	for _, f := range fields {
		marker := "optional"
		if f.Required {
			marker = "required"
		}
		line := fmt.Sprintf("- %s (%s)", f.Name, marker)
		if f.Description != "" {
			line += ": " + f.Description
		}
		if len(f.Enum) > 0 {
			line += fmt.Sprintf(" [one of: %s]", strings.Join(f.Enum, ", "))
		}
		b.WriteString(line + "\n")
	}
}
