package fields

import "strings"

// contentPlaceholder is replaced with the section text in every user prompt.
const contentPlaceholder = "{content}"

const metadataSystem = "You are a high-precision paper information extractor. You must return strictly compliant JSON without any additional content. If a field cannot be determined, use an empty string."

const metadataPrompt = `Please extract metadata from the following article text (use the original wording wherever possible) and return it directly as JSON with no explanations.

Output fields:
{
  "title": "",
  "authors": "",
  "year": "",
  "journal": "",
  "abstract": ""
}

Article text:
----
{content}
----

Requirements:
- "title": the original title of the article, or an empty string.
- "authors": the original author list, multiple authors separated by commas, or an empty string.
- "year": only a 4-digit string such as "2018" when a clear year is present; otherwise an empty string.
- "journal": the original journal or conference name, or an empty string.
- "abstract": the original abstract. If there is no explicit abstract, the first paragraph that most resembles one, kept verbatim. Otherwise an empty string.
- Output only the listed JSON fields. Do not add, rename or omit fields and do not include anything else.`

const theorySystem = "You are an academic information extractor. Output ONLY JSON."

const theoryPrompt = `Task: Judge whether the introduction below contains theoretical model construction (mathematical equations, frameworks, hypothesis derivation, optimization problems, simulation models).

Return JSON:
{
  "introduction_has_theory_model": 0,
  "theory_model_description": ""
}

- "introduction_has_theory_model": 0 or 1; 1 requires clear evidence.
- "theory_model_description": when 1, the original model description text (at most 300 words); when 0, an empty string.

Content:
-----
{content}
-----

Requirements:
- Be strict: answer 1 only when the theoretical model evidence is unambiguous.
- Copy the description verbatim, no paraphrasing.
- If uncertain, choose 0.
- Output ONLY the specified JSON, no other text.`

const dataSystem = "You are a meticulous academic information extractor. Output ONLY valid JSON, no other text."

const dataPrompt = `Task: Extract fields from the Data section below and return them as JSON.

Data:
{content}

Output JSON with these fields:
{
  "has_data_section": 0,
  "data_section_text": "",
  "data_mentions_labor": 0,
  "labor_related_text": "",
  "data_country": "",
  "if_us_data_level": "",
  "if_firm_level": "",
  "firm_sample_period": "",
  "firm_data_frequency": ""
}

Field meanings:
- has_data_section: 1 if data sources, variables or collection are described, or the paper is empirical; 0 otherwise.
- data_section_text: when has_data_section is 1, the original text describing the data (at most 300 words); otherwise "".
- data_mentions_labor: 1 only if labor, workforce or employment variables are explicitly mentioned.
- labor_related_text: when data_mentions_labor is 1, the specific sentences about labor data (at most 200 words); otherwise "".
- data_country: every country the data covers, comma-separated; "" if unclear.
- if_us_data_level: only when the US is in data_country: "firm", "labor_market", "both" or "".
- if_firm_level: only when if_us_data_level is "firm" or "both": 0 or 1 for firm-level data; otherwise "".
- firm_sample_period: only when if_firm_level is 1: the sample period, e.g. "1990-2017".
- firm_data_frequency: only when if_firm_level is 1: "annual", "quarterly", "monthly", "daily" or "other".

Rules:
- Copy original text verbatim; no paraphrasing.
- Be conservative: mark 1 only when the evidence is clear.
- Use an empty string for anything unclear or unspecified.
- The output must be valid JSON only.`

const empiricalSystem = "You are a high-precision academic paper parser. Output ONLY valid JSON, no other text."

const empiricalPrompt = `Task: Extract the main empirical regression equation from the academic paper excerpt below.

Content:
{content}

Output JSON:
{
  "empirical_model": ""
}

Rules:
- "empirical_model" is the main empirical regression equation when clearly stated; otherwise an empty string.
- Extract clear mathematical equations with variables and coefficients.
- They must be empirical specifications (panel models, DiD, IV, regression equations).
- Use standard notation (Y, X, β, ε, etc.).
- Prefer the primary specification if several exist.
- Do NOT extract theoretical models, bare variable definitions, results tables or unclear equations.
- If introduction_has_theory_model = 0 and has_data_section = 1, an empirical model MUST be extracted.
- Return an empty string if no clear equation is identified.

Output ONLY valid JSON.`

// empiricalContext tells the model what the earlier steps found for this paper.
const empiricalContext = `
Known about this paper: introduction_has_theory_model = {theory}, has_data_section = {data}.`

func render(tmpl, content string) string {
	return strings.Replace(tmpl, contentPlaceholder, content, 1)
}
