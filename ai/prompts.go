package ai

import (
	"fmt"
	"strings"
)

// genericPatientPlaceholder stands in for the patient name when the caller
// did not supply one.
const genericPatientPlaceholder = "[Patient Name]"

const soapSystemPrompt = `You are a dental professional converting clinical notes into a SOAP (Subjective, Objective, Assessment, Plan) format summary.

CRITICAL RULES - Follow these EXACTLY:
1. Extract and format ONLY the information that is explicitly stated in the clinical notes
2. Do NOT add explanations, meta-commentary, or describe what 'should' be in each section
3. Do NOT invent diagnoses, findings, or treatment plans that are not in the notes
4. Do NOT use phrases like 'typically includes', 'should mention', 'may assess', 'could involve', or any template language
5. If information is missing for a section, write ONLY 'Not documented.' - do NOT explain what should go there
6. Output MUST have exactly 4 sections in this exact order, each clearly labeled:
   - Subjective:
   - Objective:
   - Assessment:
   - Plan:
7. Start each section on a new line with the exact heading followed by a colon, then a blank line, then the content
8. Subjective: Extract patient-reported symptoms, complaints, and history from the notes
9. Objective: Extract clinical findings, examination results, and diagnostic tests from the notes
10. Assessment: Extract any diagnoses or clinical judgments stated in the notes
11. Plan: Extract treatment plans, recommendations, and follow-up actions from the notes
12. Be concise - only include what is actually written in the notes
13. Use clear, professional dental terminology
14. Do NOT include: dates, timestamps, patient names, or metadata
15. Do NOT combine sections - each section must be separate and clearly marked`

func summarizeUserPrompt(clinicalText string) string {
	return fmt.Sprintf(`Convert the following clinical notes to SOAP format. Extract ONLY the information that is explicitly written in the notes. Do NOT add explanations or describe what should be in each section.

IMPORTANT: Generate ONLY ONE complete SOAP summary. Do NOT repeat or duplicate the summary.

Clinical notes:
%s`, clinicalText)
}

const letterSystemPrompt = `You are a dental professional writing a professional referral letter to another healthcare provider.
CRITICAL RULES - Follow these exactly:
1. Start directly with 'Dear Dr. [Name],' - NO pleasantries like 'I hope this finds you well'
2. First sentence must clearly state the specific referral reason from the Assessment section using the ACTUAL patient name provided
3. Replace ALL instances of '[Patient Name]' or 'the patient' with the ACTUAL patient name provided in the request
4. Use the patient's name when referring to them throughout the letter
5. Present clinical information in a clear, organized format using the SOAP structure
6. Include ALL key clinical details from the SOAP summary: subjective symptoms, objective findings, assessment/diagnosis, and plan
7. Be concise and direct - avoid verbose language
8. Do NOT include: dates, timestamps, 'Referral Status', author names, positions, or metadata
9. Do NOT use phrases like: 'I hope', 'you may recall', 'collaboration', 'feel free to reach out'
10. Do NOT assume this is for routine care - use the SPECIFIC diagnosis/reason from the SOAP summary
11. End with simple: 'Sincerely,' followed by nothing else
12. Focus ONLY on clinical facts and what follow-up is needed`

func letterUserPrompt(soapSummary, referrerName, referrerAddress, patientName string) string {
	name := strings.TrimSpace(patientName)
	if name == "" {
		name = genericPatientPlaceholder
	}

	var b strings.Builder
	b.WriteString("Write a professional referral letter to:\n")
	b.WriteString(referrerName)
	if strings.TrimSpace(referrerAddress) != "" {
		b.WriteString("\n")
		b.WriteString(referrerAddress)
	}
	fmt.Fprintf(&b, "\n\nPatient Name: %s\n\nUsing this SOAP summary:\n%s\n", name, soapSummary)
	fmt.Fprintf(&b, `
Format (MUST include all 4 sections):
Dear Dr. [Name],

I am referring %[1]s for [SPECIFIC REASON FROM ASSESSMENT].

Subjective: %[1]s's chief complaint and symptoms from the SOAP summary

Objective: Clinical findings, examination results, diagnostic tests from the SOAP summary

Assessment: Diagnosis from the SOAP summary (THIS SECTION IS REQUIRED - DO NOT SKIP IT)

Plan: Treatment provided to date and what follow-up is needed from the SOAP summary

Sincerely,

CRITICAL REQUIREMENTS:
- Start immediately with the referral statement - NO pleasantries
- Use the SPECIFIC diagnosis/reason from the Assessment section in the opening sentence
- Include ALL 4 sections: Subjective, Objective, Assessment, Plan
- Include ALL clinical details but be concise
- NO dates, timestamps, or metadata
- NO closing pleasantries`, name)
	return b.String()
}
