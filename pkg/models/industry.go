package models

import "github.com/campusbridge/campusbridge/pkg/repository/document"

// Job is a full-time or part-time position posted by an industry user.
type Job struct {
	document.Base
	Content
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Domain      string      `json:"domain,omitempty"`
	Location    string      `json:"location,omitempty"`
	Type        string      `json:"type,omitempty"`
	Salary      SalaryRange `json:"salary,omitempty"`
	Skills      []string    `json:"skills,omitempty"`
	Deadline    string      `json:"deadline,omitempty"`
}

func (j *Job) Collection() string { return "jobs" }

func (j *Job) Validate() error {
	if err := requireString("title", j.Title); err != nil {
		return err
	}
	return requireString("description", j.Description)
}

// Internship is a time-bounded placement with an optional stipend.
type Internship struct {
	document.Base
	Content
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Domain      string   `json:"domain,omitempty"`
	Location    string   `json:"location,omitempty"`
	Duration    string   `json:"duration,omitempty"`
	Stipend     Amount   `json:"stipend,omitempty"`
	Skills      []string `json:"skills,omitempty"`
	StartDate   string   `json:"startDate,omitempty"`
	Deadline    string   `json:"deadline,omitempty"`
}

func (i *Internship) Collection() string { return "internships" }

func (i *Internship) Validate() error {
	if err := requireString("title", i.Title); err != nil {
		return err
	}
	return requireString("description", i.Description)
}

// Research is an industry-funded research opening.
type Research struct {
	document.Base
	Content
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Domain        string   `json:"domain,omitempty"`
	FundingAmount float64  `json:"fundingAmount,omitempty"`
	Duration      string   `json:"duration,omitempty"`
	Keywords      []string `json:"keywords,omitempty"`
	StartDate     string   `json:"startDate,omitempty"`
}

func (r *Research) Collection() string { return "research" }

func (r *Research) Validate() error {
	if err := requireString("title", r.Title); err != nil {
		return err
	}
	return requireString("description", r.Description)
}

// Challenge is a prize competition open to students and universities.
type Challenge struct {
	document.Base
	Content
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Domain      string   `json:"domain,omitempty"`
	PrizeAmount float64  `json:"prizeAmount,omitempty"`
	Deadline    string   `json:"deadline,omitempty"`
	Rules       []string `json:"rules,omitempty"`
}

func (c *Challenge) Collection() string { return "challenges" }

func (c *Challenge) Validate() error {
	if err := requireString("title", c.Title); err != nil {
		return err
	}
	return requireString("description", c.Description)
}

// Speaker is an offer to give a guest session on campus.
type Speaker struct {
	document.Base
	Content
	Title       string `json:"title"`
	Description string `json:"description"`
	Domain      string `json:"domain,omitempty"`
	SpeakerName string `json:"speakerName,omitempty"`
	Date        string `json:"date,omitempty"`
	Venue       string `json:"venue,omitempty"`
	Audience    string `json:"audience,omitempty"`
}

func (s *Speaker) Collection() string { return "speakers" }

func (s *Speaker) Validate() error {
	if err := requireString("title", s.Title); err != nil {
		return err
	}
	return requireString("description", s.Description)
}
