package mapper

import (
	"lawpro-be/internal/entity"
	"lawpro-be/internal/model"
)

type LawyerMapper struct{}

func NewLawyerMapper() *LawyerMapper {
	return &LawyerMapper{}
}

func (m *LawyerMapper) ToEntity(l *model.Lawyer) *entity.Lawyer {
	if l == nil {
		return nil
	}
	return &entity.Lawyer{
		Id:          l.Id,
		LawFirm:     l.LawFirm,
		PhoneNumber: l.PhoneNumber,
		Email:       l.Email,
		Website:     l.Website,
		City:        l.City,
		County:      l.County,
		State:       l.State,
		CreatedAt:   l.CreatedAt,
	}
}

func (m *LawyerMapper) ToModel(l *entity.Lawyer) *model.Lawyer {
	if l == nil {
		return nil
	}
	return &model.Lawyer{
		Id:          l.Id,
		LawFirm:     l.LawFirm,
		PhoneNumber: l.PhoneNumber,
		Email:       l.Email,
		Website:     l.Website,
		City:        l.City,
		County:      l.County,
		State:       l.State,
		CreatedAt:   l.CreatedAt,
	}
}

func (m *LawyerMapper) ToEntities(models []*model.Lawyer) []*entity.Lawyer {
	entities := make([]*entity.Lawyer, len(models))
	for i, l := range models {
		entities[i] = m.ToEntity(l)
	}
	return entities
}

func (m *LawyerMapper) ProfileToSnapshot(p *entity.LawyerProfile) model.LawyerSnapshot {
	return model.LawyerSnapshot{
		Id:              p.Id,
		LawFirm:         p.LawFirm,
		PhoneNumber:     p.PhoneNumber,
		Email:           p.Email,
		Website:         p.Website,
		City:            p.City,
		County:          p.County,
		State:           p.State,
		CreatedAt:       p.CreatedAt,
		Name:            p.Name,
		Specialty:       p.Specialty,
		Rating:          p.Rating,
		ProfileImageUrl: p.ProfileImageUrl,
		Availability:    p.Availability,
		IsFirmVerified:  p.IsFirmVerified,
		Description:     p.Description,
		PracticeAreas:   p.PracticeAreas,
	}
}

func (m *LawyerMapper) SnapshotToProfile(s *model.LawyerSnapshot) entity.LawyerProfile {
	return entity.LawyerProfile{
		Lawyer: entity.Lawyer{
			Id:          s.Id,
			LawFirm:     s.LawFirm,
			PhoneNumber: s.PhoneNumber,
			Email:       s.Email,
			Website:     s.Website,
			City:        s.City,
			County:      s.County,
			State:       s.State,
			CreatedAt:   s.CreatedAt,
		},
		Name:            s.Name,
		Specialty:       s.Specialty,
		Rating:          s.Rating,
		ProfileImageUrl: s.ProfileImageUrl,
		Availability:    s.Availability,
		IsFirmVerified:  s.IsFirmVerified,
		Description:     s.Description,
		PracticeAreas:   s.PracticeAreas,
	}
}
