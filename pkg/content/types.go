// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package content

import "slices"

// Category names a content domain. Each category maps to one store
// collection of the same name and one embedded fallback dataset.
type Category string

const (
	CategoryProjects   Category = "projects"
	CategorySkills     Category = "skills"
	CategoryExperience Category = "experience"
	CategoryEducation  Category = "education"
	CategoryAbout      Category = "about"
)

// Categories returns every category in API order.
func Categories() []Category {
	return []Category{
		CategoryProjects,
		CategorySkills,
		CategoryExperience,
		CategoryEducation,
		CategoryAbout,
	}
}

// ParseCategory validates a category name.
func ParseCategory(s string) (Category, bool) {
	c := Category(s)
	return c, slices.Contains(Categories(), c)
}

// Collection returns the store collection backing the category.
func (c Category) Collection() string { return string(c) }

func (c Category) String() string { return string(c) }

// record is implemented by every content type. withID stamps the store
// document key; clone returns a deep copy so shared fallback data is
// never aliased by callers.
type record[T any] interface {
	withID(id string) T
	clone() T
}

// Project is a portfolio project.
type Project struct {
	ID               string   `json:"id" yaml:"id"`
	Name             string   `json:"name" yaml:"name"`
	Organization     string   `json:"organization" yaml:"organization"`
	Period           string   `json:"period" yaml:"period"`
	Domains          []string `json:"domains" yaml:"domains"`
	Description      string   `json:"description" yaml:"description"`
	Responsibilities []string `json:"responsibilities" yaml:"responsibilities"`
	Tasks            []string `json:"tasks" yaml:"tasks"`
	Technologies     []string `json:"technologies" yaml:"technologies"`
	Achievements     []string `json:"achievements" yaml:"achievements"`
	Status           string   `json:"status" yaml:"status"`
	Featured         bool     `json:"featured" yaml:"featured"`
	GithubURL        string   `json:"githubUrl,omitempty" yaml:"githubUrl,omitempty"`
	LiveURL          string   `json:"liveUrl,omitempty" yaml:"liveUrl,omitempty"`
}

func (p Project) withID(id string) Project { p.ID = id; return p }

func (p Project) clone() Project {
	p.Domains = slices.Clone(p.Domains)
	p.Responsibilities = slices.Clone(p.Responsibilities)
	p.Tasks = slices.Clone(p.Tasks)
	p.Technologies = slices.Clone(p.Technologies)
	p.Achievements = slices.Clone(p.Achievements)
	return p
}

// Skill is a single skill with a proficiency level from 0 to 100.
type Skill struct {
	Name              string `json:"name" yaml:"name"`
	Level             int    `json:"level" yaml:"level"`
	YearsOfExperience *int   `json:"yearsOfExperience,omitempty" yaml:"yearsOfExperience,omitempty"`
}

// SkillCategory groups skills under a heading such as "Frontend".
type SkillCategory struct {
	ID       string  `json:"id,omitempty" yaml:"id,omitempty"`
	Category string  `json:"category" yaml:"category"`
	Items    []Skill `json:"items" yaml:"items"`
}

func (s SkillCategory) withID(id string) SkillCategory { s.ID = id; return s }

func (s SkillCategory) clone() SkillCategory {
	items := make([]Skill, len(s.Items))
	for i, it := range s.Items {
		if it.YearsOfExperience != nil {
			years := *it.YearsOfExperience
			it.YearsOfExperience = &years
		}
		items[i] = it
	}
	if s.Items == nil {
		items = nil
	}
	s.Items = items
	return s
}

// Experience is a position held at a company.
type Experience struct {
	ID              string   `json:"id" yaml:"id"`
	Position        string   `json:"position" yaml:"position"`
	Company         string   `json:"company" yaml:"company"`
	Period          string   `json:"period" yaml:"period"`
	Location        string   `json:"location,omitempty" yaml:"location,omitempty"`
	EmploymentType  string   `json:"employmentType" yaml:"employmentType"`
	Summary         string   `json:"summary" yaml:"summary"`
	KeyAchievements []string `json:"keyAchievements" yaml:"keyAchievements"`
	SkillsGained    []string `json:"skillsGained" yaml:"skillsGained"`
	Domains         []string `json:"domains" yaml:"domains"`
}

func (e Experience) withID(id string) Experience { e.ID = id; return e }

func (e Experience) clone() Experience {
	e.KeyAchievements = slices.Clone(e.KeyAchievements)
	e.SkillsGained = slices.Clone(e.SkillsGained)
	e.Domains = slices.Clone(e.Domains)
	return e
}

// Education is a degree or school certificate.
type Education struct {
	ID          string `json:"id" yaml:"id"`
	Degree      string `json:"degree" yaml:"degree"`
	Year        string `json:"year" yaml:"year"`
	Institution string `json:"institution" yaml:"institution"`
	Board       string `json:"board" yaml:"board"`
	Percentage  string `json:"percentage" yaml:"percentage"`
	Type        string `json:"type" yaml:"type"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

func (e Education) withID(id string) Education { e.ID = id; return e }

func (e Education) clone() Education { return e }

// PersonalInfo holds the profile header shown on the about page.
type PersonalInfo struct {
	FullName     string   `json:"fullName" yaml:"fullName"`
	Title        string   `json:"title" yaml:"title"`
	Tagline      string   `json:"tagline" yaml:"tagline"`
	Email        string   `json:"email" yaml:"email"`
	Nationality  string   `json:"nationality" yaml:"nationality"`
	Languages    []string `json:"languages" yaml:"languages"`
	Adaptability string   `json:"adaptability" yaml:"adaptability"`
}

// Stats are display strings such as "9+".
type Stats struct {
	YearsExperience   string `json:"yearsExperience" yaml:"yearsExperience"`
	ProjectsCompleted string `json:"projectsCompleted" yaml:"projectsCompleted"`
	Technologies      string `json:"technologies" yaml:"technologies"`
}

// SummaryItem is one card of the professional summary.
type SummaryItem struct {
	ID          string `json:"id" yaml:"id"`
	Icon        string `json:"icon" yaml:"icon"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

// Certification is a completed course or certificate.
type Certification struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Year        string `json:"year" yaml:"year"`
	Description string `json:"description" yaml:"description"`
	Icon        string `json:"icon" yaml:"icon"`
}

// About is the about-page section. The API serves it as a one element list.
type About struct {
	ID                  string          `json:"id,omitempty" yaml:"id,omitempty"`
	PersonalInfo        PersonalInfo    `json:"personalInfo" yaml:"personalInfo"`
	Stats               Stats           `json:"stats" yaml:"stats"`
	Mission             string          `json:"mission" yaml:"mission"`
	ProfessionalSummary []SummaryItem   `json:"professionalSummary" yaml:"professionalSummary"`
	Certifications      []Certification `json:"certifications" yaml:"certifications"`
}

func (a About) withID(id string) About { a.ID = id; return a }

func (a About) clone() About {
	a.PersonalInfo.Languages = slices.Clone(a.PersonalInfo.Languages)
	a.ProfessionalSummary = slices.Clone(a.ProfessionalSummary)
	a.Certifications = slices.Clone(a.Certifications)
	return a
}
