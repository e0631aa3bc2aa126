package orcid

import (
	"fmt"

	"github.com/microbiomedata/nmdc-orcid-creditor/dates"
	"github.com/microbiomedata/nmdc-orcid-creditor/internal/config"
)

// Affiliation is the v3.0 membership/service body. A nil date block is omitted,
// which ORCID renders as no date (or "to present" for a missing end date).
type Affiliation struct {
	RoleTitle    string       `json:"role-title"`
	StartDate    *FuzzyDate   `json:"start-date,omitempty"`
	EndDate      *FuzzyDate   `json:"end-date,omitempty"`
	Organization Organization `json:"organization"`
	URL          ValueElement `json:"url"`
}

type ValueElement struct {
	Value string `json:"value"`
}

type FuzzyDate struct {
	Year  ValueElement `json:"year"`
	Month ValueElement `json:"month"`
	Day   ValueElement `json:"day"`
}

type Organization struct {
	Name                      string                    `json:"name"`
	Address                   Address                   `json:"address"`
	DisambiguatedOrganization DisambiguatedOrganization `json:"disambiguated-organization"`
}

type Address struct {
	City    string `json:"city"`
	Region  string `json:"region,omitempty"`
	Country string `json:"country"`
}

type DisambiguatedOrganization struct {
	Identifier string `json:"disambiguated-organization-identifier"`
	Source     string `json:"disambiguation-source"`
}

func NewFuzzyDate(d dates.Date) *FuzzyDate {
	return &FuzzyDate{
		Year:  ValueElement{Value: fmt.Sprintf("%04d", d.Year)},
		Month: ValueElement{Value: fmt.Sprintf("%02d", d.Month)},
		Day:   ValueElement{Value: fmt.Sprintf("%02d", d.Day)},
	}
}

func NewOrganization(org config.Organization) Organization {
	return Organization{
		Name: org.Name,
		Address: Address{
			City:    org.City,
			Region:  org.Region,
			Country: org.Country,
		},
		DisambiguatedOrganization: DisambiguatedOrganization{
			Identifier: org.DisambiguatedID,
			Source:     org.DisambiguationSource,
		},
	}
}
