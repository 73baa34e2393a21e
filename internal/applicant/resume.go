package applicant

import (
	"github.com/ecodeclub/ekit/slice"
)

// Resume is a candidate identifier with the raw resume text.
type Resume struct {
	ID   string `json:"id" yaml:"id" mapstructure:"id"`
	Text string `json:"text" yaml:"text" mapstructure:"text"`
}

type Resumes struct {
	Items []Resume
}

func NewResumes(items ...Resume) *Resumes {
	return &Resumes{Items: items}
}

func (r *Resumes) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Items)
}

func (r *Resumes) IDs() []string {
	if r == nil {
		return []string{}
	}
	return slice.Map(r.Items, func(_ int, src Resume) string {
		return src.ID
	})
}

func (r *Resumes) FindByID(id string) *Resume {
	if r == nil {
		return nil
	}
	for i := range r.Items {
		if r.Items[i].ID == id {
			return &r.Items[i]
		}
	}

	return nil
}
