package model

import "time"

type CulturalRole string

const (
	RoleMember            CulturalRole = "member"
	RoleElder             CulturalRole = "elder"
	RoleCulturalAuthority CulturalRole = "cultural_authority"
	RoleSubjectExpert     CulturalRole = "subject_expert"
)

// IsCulturalAuthority reports whether the role qualifies for the
// cultural-appropriateness review track.
func (r CulturalRole) IsCulturalAuthority() bool {
	return r == RoleElder || r == RoleCulturalAuthority
}

// Reviewer is a community member authorized to judge insights. Referenced
// by the engine, never deleted by it.
type Reviewer struct {
	ID                int64        `json:"id"`
	CommunityID       int64        `json:"community_id"`
	Name              string       `json:"name"`
	ExpertiseAreas    []string     `json:"expertise_areas"`
	Role              CulturalRole `json:"role"`
	Available         bool         `json:"available"`
	CompletedReviews  int          `json:"completed_reviews"`
	AccuracyRating    float64      `json:"accuracy_rating"`     // 0..1, rolling
	AvgTurnaroundDays float64      `json:"avg_turnaround_days"` // rolling mean
	Languages         []string     `json:"languages,omitempty"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}

// HasExpertise reports whether the reviewer's expertise areas intersect tags.
func (r Reviewer) HasExpertise(tags []string) bool {
	for _, area := range r.ExpertiseAreas {
		for _, tag := range tags {
			if area == tag {
				return true
			}
		}
	}
	return false
}
