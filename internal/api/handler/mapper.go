package handler

import (
	"github.com/inkpost/blog-api/internal/core/domain"
	"github.com/inkpost/blog-api/internal/core/ports"
)

func (q feedQuery) toInput() ports.FeedInput {
	return ports.FeedInput{
		SearchString: q.SearchString,
		Skip:         q.Skip,
		Take:         q.Take,
		OrderBy:      domain.SortOrder(q.OrderBy),
	}
}

func (r profileRequest) toFields() domain.ProfileFields {
	f := domain.ProfileFields{
		ProfilePhoto: r.ProfilePhoto,
		ProfileBG:    r.ProfileBG,
		Website:      r.Website,
		Location:     r.Location,
		AboutMe:      r.AboutMe,
	}
	if r.Hiring != nil {
		f.Hiring = *r.Hiring
	}
	return f
}
