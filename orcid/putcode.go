package orcid

import "regexp"

// locationPattern matches the canonical resource URL ORCID returns for a created
// affiliation, e.g. https://api.orcid.org/v3.0/0000-0000-0000-000X/service/12345
var locationPattern = regexp.MustCompile(`^https?://.*orcid\.org.*/(\d+)$`)

// ExtractPutCode returns the trailing digit run of an ORCID location header.
func ExtractPutCode(location string) (string, bool) {
	match := locationPattern.FindStringSubmatch(location)
	if match == nil {
		return "", false
	}
	return match[1], true
}
