// Package ingest turns raw NVD feed files into embedded CVE records and
// loads them into the vector store in retried chunks.
package ingest

import (
	"encoding/json"
	"fmt"

	cveanalyzer "github.com/satwikbh/CveAnalyzer"
)

// NVD JSON 1.1 feed shapes, limited to the fields we extract.
type feedFile struct {
	CVEItems []feedItem `json:"CVE_Items"`
}

type feedItem struct {
	CVE           feedCVE    `json:"cve"`
	Impact        feedImpact `json:"impact"`
	PublishedDate string     `json:"publishedDate"`
}

type feedCVE struct {
	Meta        feedMeta        `json:"CVE_data_meta"`
	ProblemType feedProblemType `json:"problemtype"`
	References  feedReferences  `json:"references"`
	Description feedDescription `json:"description"`
}

type feedMeta struct {
	ID       string `json:"ID"`
	Assigner string `json:"ASSIGNER"`
}

type feedProblemType struct {
	Data []struct {
		Description []feedLangValue `json:"description"`
	} `json:"problemtype_data"`
}

type feedReferences struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"reference_data"`
}

type feedDescription struct {
	Data []feedLangValue `json:"description_data"`
}

type feedLangValue struct {
	Lang  string `json:"lang"`
	Value string `json:"value"`
}

type feedImpact struct {
	BaseMetricV3 struct {
		CVSSV3 struct {
			BaseScore    *float64 `json:"baseScore"`
			BaseSeverity string   `json:"baseSeverity"`
		} `json:"cvssV3"`
	} `json:"baseMetricV3"`
}

// ParsedRecord pairs an extracted record with the text to embed for it.
type ParsedRecord struct {
	Record    *cveanalyzer.CVERecord
	EmbedText string
}

// ParseFeed extracts CVE records from a raw NVD 1.1 JSON feed. Items without
// an identifier or an English description are dropped; they cannot pass store
// validation anyway.
func ParseFeed(data []byte) ([]ParsedRecord, error) {
	var file feedFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	var parsed []ParsedRecord
	for _, item := range file.CVEItems {
		rec := extractFields(item)
		if rec.CVEID == "" || rec.Description == "" {
			continue
		}
		parsed = append(parsed, ParsedRecord{
			Record:    rec,
			EmbedText: fmt.Sprintf("%s - %s - CWE: %s", rec.CVEID, rec.Description, rec.CWE),
		})
	}

	return parsed, nil
}

func extractFields(item feedItem) *cveanalyzer.CVERecord {
	description := ""
	for _, d := range item.CVE.Description.Data {
		if d.Lang == "en" {
			description = d.Value
			break
		}
	}

	cwe := "CWE-UNKNOWN"
	for _, pt := range item.CVE.ProblemType.Data {
		for _, d := range pt.Description {
			if d.Lang == "en" && d.Value != "" {
				cwe = d.Value
				break
			}
		}
		if cwe != "CWE-UNKNOWN" {
			break
		}
	}

	// Dedupe references while preserving feed order.
	seen := make(map[string]struct{})
	var refs []string
	for _, ref := range item.CVE.References.Data {
		if ref.URL == "" {
			continue
		}
		if _, ok := seen[ref.URL]; ok {
			continue
		}
		seen[ref.URL] = struct{}{}
		refs = append(refs, ref.URL)
	}

	cvss := item.Impact.BaseMetricV3.CVSSV3

	return &cveanalyzer.CVERecord{
		CVEID:         item.CVE.Meta.ID,
		Assigner:      item.CVE.Meta.Assigner,
		Description:   description,
		PublishedDate: item.PublishedDate,
		ImpactScore:   cvss.BaseScore,
		Severity:      cvss.BaseSeverity,
		CWE:           cwe,
		References:    refs,
	}
}
