package models

import "github.com/campusbridge/campusbridge/pkg/repository/document"

// FYP is a final-year project looking for industry sponsorship.
type FYP struct {
	document.Base
	Content
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Domain        string   `json:"domain,omitempty"`
	Supervisor    string   `json:"supervisor,omitempty"`
	Students      []string `json:"students,omitempty"`
	Year          string   `json:"year,omitempty"`
	FundingAmount float64  `json:"fundingAmount,omitempty"`
}

func (f *FYP) Collection() string { return "fyps" }

func (f *FYP) Validate() error {
	if err := requireString("title", f.Title); err != nil {
		return err
	}
	return requireString("description", f.Description)
}

// Project is a university research project open to partners.
type Project struct {
	document.Base
	Content
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Domain        string   `json:"domain,omitempty"`
	FundingAmount float64  `json:"fundingAmount,omitempty"`
	Duration      string   `json:"duration,omitempty"`
	Partners      []string `json:"partners,omitempty"`
	StartDate     string   `json:"startDate,omitempty"`
}

func (p *Project) Collection() string { return "projects" }

func (p *Project) Validate() error {
	if err := requireString("title", p.Title); err != nil {
		return err
	}
	return requireString("description", p.Description)
}

// Course is a taught offering listed for industry professionals.
type Course struct {
	document.Base
	Content
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Domain      string   `json:"domain,omitempty"`
	Duration    string   `json:"duration,omitempty"`
	Fee         Amount   `json:"fee,omitempty"`
	StartDate   string   `json:"startDate,omitempty"`
	Syllabus    []string `json:"syllabus,omitempty"`
}

func (c *Course) Collection() string { return "courses" }

func (c *Course) Validate() error {
	if err := requireString("title", c.Title); err != nil {
		return err
	}
	return requireString("description", c.Description)
}

// Training is a short professional training program.
type Training struct {
	document.Base
	Content
	Title       string `json:"title"`
	Description string `json:"description"`
	Domain      string `json:"domain,omitempty"`
	Duration    string `json:"duration,omitempty"`
	Fee         Amount `json:"fee,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	Capacity    int    `json:"capacity,omitempty"`
}

func (t *Training) Collection() string { return "trainings" }

func (t *Training) Validate() error {
	if err := requireString("title", t.Title); err != nil {
		return err
	}
	return requireString("description", t.Description)
}

// Collaboration is an open invitation for joint academia-industry
// work.
type Collaboration struct {
	document.Base
	Content
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Domain      string   `json:"domain,omitempty"`
	Type        string   `json:"type,omitempty"`
	StartDate   string   `json:"startDate,omitempty"`
	Partners    []string `json:"partners,omitempty"`
}

func (c *Collaboration) Collection() string { return "collaborations" }

func (c *Collaboration) Validate() error {
	if err := requireString("title", c.Title); err != nil {
		return err
	}
	return requireString("description", c.Description)
}
