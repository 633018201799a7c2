package dto

import (
	"time"

	"devconnector/internal/feature/profile/domain/entity"
)

// OwnerRes is the populated user reference of a profile.
type OwnerRes struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// ExperienceRes is one experience entry.
type ExperienceRes struct {
	ID          string     `json:"_id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location,omitempty"`
	From        time.Time  `json:"from"`
	To          *time.Time `json:"to"`
	Current     bool       `json:"current"`
	Description string     `json:"description,omitempty"`
}

// ProfileRes is the public shape of a profile. User is null when the account
// no longer exists.
type ProfileRes struct {
	ID             string          `json:"_id"`
	User           *OwnerRes       `json:"user"`
	Company        string          `json:"company,omitempty"`
	Website        string          `json:"website,omitempty"`
	Location       string          `json:"location,omitempty"`
	Bio            string          `json:"bio,omitempty"`
	Status         string          `json:"status"`
	GitHubUsername string          `json:"githubusername,omitempty"`
	Skills         []string        `json:"skills"`
	Social         entity.Social   `json:"social"`
	Experience     []ExperienceRes `json:"experience"`
	Date           time.Time       `json:"date"`
}

// NewProfileRes maps a profile to its public shape.
func NewProfileRes(p *entity.Profile) ProfileRes {
	res := ProfileRes{
		ID:             p.ID,
		Company:        p.Company,
		Website:        p.Website,
		Location:       p.Location,
		Bio:            p.Bio,
		Status:         p.Status,
		GitHubUsername: p.GitHubUsername,
		Skills:         p.Skills,
		Social:         p.Social,
		Experience:     make([]ExperienceRes, 0, len(p.Experience)),
		Date:           p.Date,
	}
	if res.Skills == nil {
		res.Skills = []string{}
	}
	if p.Owner != nil {
		res.User = &OwnerRes{ID: p.Owner.ID, Name: p.Owner.Name, Avatar: p.Owner.Avatar}
	}
	for _, e := range p.Experience {
		res.Experience = append(res.Experience, ExperienceRes{
			ID:          e.ID,
			Title:       e.Title,
			Company:     e.Company,
			Location:    e.Location,
			From:        e.From,
			To:          e.To,
			Current:     e.Current,
			Description: e.Description,
		})
	}
	return res
}

// NewProfileList maps a list of profiles.
func NewProfileList(profiles []entity.Profile) []ProfileRes {
	out := make([]ProfileRes, 0, len(profiles))
	for i := range profiles {
		out = append(out, NewProfileRes(&profiles[i]))
	}
	return out
}
