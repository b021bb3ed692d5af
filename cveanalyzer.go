// Package cveanalyzer provides a local CVE enrichment assistant. It ingests
// NVD vulnerability feeds, embeds records into a vector index, and answers
// natural language queries by combining exact CVE-ID lookup, vector
// similarity search, and hosted LLM calls.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, gemini/, nvd/).
package cveanalyzer
