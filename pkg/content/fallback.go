package content

import (
	"embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	cerrors "github.com/iamsank8/portfolio/pkg/errors"
)

//go:embed data/*.yaml
var fallbackFS embed.FS

var (
	fallbackOnce   sync.Once
	cachedFallback *Dataset
	cachedErr      error
)

// Dataset is the built-in content served when the store has nothing usable.
// It is loaded once and never mutated; accessors hand out deep copies.
type Dataset struct {
	projects   []Project
	skills     []SkillCategory
	experience []Experience
	education  []Education
	about      []About
}

// Fallback returns the embedded dataset.
func Fallback() (*Dataset, error) {
	fallbackOnce.Do(func() {
		ds := &Dataset{}
		steps := []struct {
			category Category
			load     func([]byte) error
		}{
			{CategoryProjects, func(b []byte) error { return yaml.Unmarshal(b, &ds.projects) }},
			{CategorySkills, func(b []byte) error { return yaml.Unmarshal(b, &ds.skills) }},
			{CategoryExperience, func(b []byte) error { return yaml.Unmarshal(b, &ds.experience) }},
			{CategoryEducation, func(b []byte) error { return yaml.Unmarshal(b, &ds.education) }},
			{CategoryAbout, func(b []byte) error { return yaml.Unmarshal(b, &ds.about) }},
		}
		for _, step := range steps {
			path := fmt.Sprintf("data/%s.yaml", step.category)
			b, err := fallbackFS.ReadFile(path)
			if err != nil {
				cachedErr = cerrors.Wrap(cerrors.ErrCodeInternal, "read "+path, err)
				return
			}
			if err := step.load(b); err != nil {
				cachedErr = cerrors.Wrap(cerrors.ErrCodeInternal, "parse "+path, err)
				return
			}
		}
		cachedFallback = ds
	})

	if cachedErr != nil {
		return nil, cachedErr
	}
	return cachedFallback, nil
}

func cloneAll[T record[T]](in []T) []T {
	out := make([]T, len(in))
	for i, v := range in {
		out[i] = v.clone()
	}
	return out
}

func (d *Dataset) Projects() []Project { return cloneAll(d.projects) }
func (d *Dataset) Skills() []SkillCategory { return cloneAll(d.skills) }
func (d *Dataset) Experience() []Experience { return cloneAll(d.experience) }
func (d *Dataset) Education() []Education { return cloneAll(d.education) }
func (d *Dataset) About() []About { return cloneAll(d.about) }

// Records returns the fallback records of a category as plain values, for
// seeding a store.
func (d *Dataset) Records(c Category) ([]any, error) {
	switch c {
	case CategoryProjects:
		return toAny(d.Projects()), nil
	case CategorySkills:
		return toAny(d.Skills()), nil
	case CategoryExperience:
		return toAny(d.Experience()), nil
	case CategoryEducation:
		return toAny(d.Education()), nil
	case CategoryAbout:
		return toAny(d.About()), nil
	default:
		return nil, cerrors.NewWithContext(cerrors.ErrCodeInvalidRequest, "unknown category",
			map[string]any{"category": string(c)})
	}
}

func toAny[T any](in []T) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}
