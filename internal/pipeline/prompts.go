package pipeline

import (
	"fmt"
	"strings"

	"github.com/dekleptocracy/campaign-agent/internal/model"
)

// NoExclusions stands in for the exclusion list when memory is empty.
const NoExclusions = "None"

// CandidatePrompt asks for count lobbying-heavy multinationals, none of which
// may appear in excluded.
func CandidatePrompt(count int, excluded []string) string {
	names := NoExclusions
	if len(excluded) > 0 {
		names = strings.Join(excluded, ", ")
	}
	return fmt.Sprintf(`
List %d major multinational companies known for significant lobbying efforts in the United States. Your list MUST include at least four companies whose headquarters are in Europe.
Do not include any of the following companies in your list: %s

For each company, provide the following on a new line, separated by '%s':
1. The company name.
2. The company's primary industry and country of origin.
`, count, names, model.CandidateDelimiter)
}

// InvestigationPrompt asks for a sourced three-part investigation of company.
func InvestigationPrompt(company string) string {
	return fmt.Sprintf(`
Act as a research analyst. For '%s', investigate three specific areas and provide a concise summary for each, including source URLs.

1.  **Environmental Hypocrisy:** While the company publicly promotes sustainability, find one sourced example of its PAC donating to politicians who voted against climate agreements or for fossil fuel subsidies.
2.  **Labor Practices:** Find one sourced report from a reputable news outlet or NGO linking the company to labor rights controversies in its international supply chain.
3.  **European Tax Strategy:** Find one sourced report detailing the company's use of European tax havens or aggressive tax avoidance strategies.

If you cannot find specific data for a point, state that clearly. Structure your answer with clear headings.
`, company)
}

// CampaignOptions brand the campaign prompt.
type CampaignOptions struct {
	Organization string
	DonationURL  string
}

// CampaignPrompt builds the bilingual thread-and-video instruction. Every
// field of req is interpolated verbatim.
func CampaignPrompt(req model.CampaignRequest, opts CampaignOptions) string {
	c, m := req.Company, req.Market
	org := opts.Organization

	var b strings.Builder
	fmt.Fprintf(&b, `
Act as a highly impactful social media strategist for the watchdog group '%s'. Your tone is sharp, journalistic, and authoritative. You will create a hard-hitting, evidence-based social media campaign.

**Core Principles:**
- **Narrative Focus:** Every post should tell a small story about hypocrisy or consequence.
- **Evidence is everything:** Every factual claim MUST be followed by its source URL.
- **Audience Action:** Every campaign should empower the local audience with specific actions.

**Campaign Details:**
- **Target Company:** %s
- **Target Audience:** Citizens of %s.
- **Key Research Findings:** "%s"

**AI Research Task (Required for context):**
1.  **Find Competitors:** Identify one or two major, local competitors to %s within %s.

**Generate the following assets in both English and %s:**
`, org, c, m, req.Findings, c, m, req.Language)

	fmt.Fprintf(&b, `
1.  **X (Twitter) Thread (4-6 tweets):**
    - **Tweet 1 (The Hook):** Start with the company's connection to the local market. Frame it as a story. "While %[1]s operates in %[2]s, their political spending in the US tells a different story. (Source from user research)."
      - *Image Suggestion:* A high-quality photo of the company's product or presence in %[2]s, with the '%[3]s' logo watermarked.
    - **Tweet 2 (Environmental Hypocrisy):** "They talk about sustainability in Europe. But in the US, their money funds politicians who vote against climate action. (Source from investigation results)."
      - *Image Suggestion:* A split-screen image: on one side, a glossy picture from the company's sustainability report; on the other, a photo of a polluting factory or oil rig.
    - **Tweet 3 (Labor/Tax Hypocrisy):** "They benefit from our economy. But do they treat their global workers ethically and pay their fair share of taxes? Reports suggest otherwise. (Source from investigation results)."
      - *Image Suggestion:* An infographic with a damning quote from an NGO report about the company's labor or tax practices.
    - **Tweet 4 (The Local Choice):** "As a consumer in %[2]s, you have a choice. Companies like [Competitor Name 1] and [Competitor Name 2] operate here too."
      - *Image Suggestion:* A clean graphic showing the logos of the local competitors.
    - **Tweet 5 (The Call to Action):** "Does %[1]s's political agenda align with your values? Let them know. Let your pension fund know."
      - *Image Suggestion:* A powerful photo of people protesting or engaged in community action.
    - **Tweet 6 (The Donation):** "Support the fight for transparency. Donate to %[3]s: %[4]s"
      - *Image Suggestion:* The '%[3]s' logo and QR code.
`, c, m, org, opts.DonationURL)

	fmt.Fprintf(&b, `
2.  **Pictory Video Script:**
    - **Concept:** An ominous, 30-second "follow the money" exposé.
    - **Scene 1 (The Local Presence):** VISUAL: Beautiful, user-generated-style footage of %[1]s's products/stores in %[2]s. TEXT: "%[1]s. They're part of our lives in %[2]s."
    - **Scene 2 (The Hidden Action):** VISUAL: A graphic showing money flowing from the company logo to a generic, imposing government building labeled "U.S. Lobbying." TEXT: "But where does their money go in America?"
    - **Scene 3 (The Contradiction):** VISUAL: A rapid, split-screen montage. Left side: The company's greenwashing ads or happy worker photos. Right side: Symbolic footage of environmental damage or factory workers in poor conditions (based on investigation results). TEXT: "Their marketing says one thing. Their political funding says another."
    - **Scene 4 (The Empowered Consumer):** VISUAL: A hand in a supermarket decisively choosing a competitor's product over the %[1]s product. TEXT: "You have the power to choose."
    - **Scene 5 (The CTA):** VISUAL: The '%[3]s' logo and QR code. TEXT: "Demand corporate accountability. Donate to %[3]s."
`, c, m, org)

	return b.String()
}
