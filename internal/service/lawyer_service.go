package service

import (
	"context"
	"fmt"
	"strings"

	"lawpro-be/internal/constant"
	"lawpro-be/internal/dto"
	"lawpro-be/internal/entity"
	"lawpro-be/internal/pkg/logger"
	"lawpro-be/internal/pkg/mailer"
	"lawpro-be/internal/repository/cache"
	"lawpro-be/internal/repository/specification"
	"lawpro-be/internal/repository/unitofwork"
	"lawpro-be/pkg/apperr"
	"lawpro-be/pkg/events"
	"lawpro-be/pkg/extract"
)

// Granularities a directory match can be made at.
const (
	GranularityCountyState = "county_state"
	GranularityState       = "state"
	GranularityCounty      = "county"
)

// LawyerMatch is the annotated result of one directory lookup.
type LawyerMatch struct {
	Location    extract.Location
	CaseType    string
	Granularity string
	Lawyers     []entity.LawyerProfile
}

type ILawyerService interface {
	// Match looks up lawyers for an already parsed location.
	Match(ctx context.Context, loc extract.Location, caseType string) (*LawyerMatch, error)
	FindLawyers(ctx context.Context, location, caseType string) (*dto.LawyerMatchResponse, error)
	GetLawyer(ctx context.Context, id int64) (*dto.LawyerResponse, error)
	ContactLawyer(ctx context.Context, req *dto.ContactLawyerRequest) (*dto.ContactLawyerResponse, error)
	// HandleContactRequested delivers a queued contact request by email.
	HandleContactRequested(ctx context.Context, event events.Event) error
}

type lawyerService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      cache.LawyerCache
	mailer     mailer.IEmailService
	publisher  events.Publisher
	logger     logger.ILogger
	pageSize   int
}

// NewLawyerService wires the matcher. cache and publisher may be nil.
func NewLawyerService(
	uowFactory unitofwork.RepositoryFactory,
	lawyerCache cache.LawyerCache,
	emailService mailer.IEmailService,
	publisher events.Publisher,
	log logger.ILogger,
	pageSize int,
) ILawyerService {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &lawyerService{
		uowFactory: uowFactory,
		cache:      lawyerCache,
		mailer:     emailService,
		publisher:  publisher,
		logger:     log,
		pageSize:   pageSize,
	}
}

func (s *lawyerService) FindLawyers(ctx context.Context, location, caseType string) (*dto.LawyerMatchResponse, error) {
	if strings.TrimSpace(location) == "" {
		return nil, apperr.New(apperr.KindNoLocationSupplied, "location is required")
	}

	match, err := s.Match(ctx, extract.ParseLocation(location), strings.TrimSpace(caseType))
	if err != nil {
		return nil, err
	}

	return &dto.LawyerMatchResponse{
		Location:    match.Location.String(),
		CaseType:    match.CaseType,
		Granularity: match.Granularity,
		Lawyers:     ToLawyerResponses(match.Lawyers),
	}, nil
}

// Match tries county+state, then state only. A city is matched against
// both the county and city columns.
func (s *lawyerService) Match(ctx context.Context, loc extract.Location, caseType string) (*LawyerMatch, error) {
	place := strings.TrimSpace(loc.County)
	placeIsCity := false
	if place == "" {
		place = strings.TrimSpace(loc.City)
		placeIsCity = place != ""
	}
	state := strings.TrimSpace(loc.State)

	if place == "" && state == "" {
		return nil, apperr.New(apperr.KindNoLocationSupplied, "location is required")
	}

	var (
		lawyers     []*entity.Lawyer
		granularity string
		err         error
	)

	switch {
	case place != "" && state != "":
		granularity = GranularityCountyState
		lawyers, err = s.lookup(ctx, granularity, place, placeIsCity, state)
		if err == nil && len(lawyers) == 0 {
			s.logger.Info("LAWYER", "No county match, falling back to state", map[string]interface{}{
				"place": place,
				"state": state,
			})
			granularity = GranularityState
			lawyers, err = s.lookup(ctx, granularity, "", false, state)
		}
	case state != "":
		granularity = GranularityState
		lawyers, err = s.lookup(ctx, granularity, "", false, state)
	default:
		granularity = GranularityCounty
		lawyers, err = s.lookup(ctx, granularity, place, placeIsCity, "")
	}
	if err != nil {
		return nil, err
	}

	if len(lawyers) == 0 {
		return nil, apperr.Newf(apperr.KindNoLawyersFound, "no lawyers found for %s", loc.String())
	}

	profiles := make([]entity.LawyerProfile, 0, len(lawyers))
	for _, l := range lawyers {
		profiles = append(profiles, Annotate(l, loc, caseType))
	}

	return &LawyerMatch{
		Location:    loc,
		CaseType:    caseType,
		Granularity: granularity,
		Lawyers:     profiles,
	}, nil
}

func (s *lawyerService) lookup(ctx context.Context, granularity, place string, placeIsCity bool, state string) ([]*entity.Lawyer, error) {
	placeKind := ""
	if place != "" {
		placeKind = cache.PlaceCounty
		if placeIsCity {
			placeKind = cache.PlaceCity
		}
	}
	key := cache.LawyerKey(granularity, placeKind, place, state, s.pageSize)
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, key); ok {
			return cached, nil
		}
	}

	specs := make([]specification.Specification, 0, 4)
	if place != "" {
		if placeIsCity {
			specs = append(specs, specification.CountyOrCityLike{Place: place})
		} else {
			specs = append(specs, specification.CountyLike{County: place})
		}
	}
	if state != "" {
		specs = append(specs, specification.StateLike{State: state})
	}
	specs = append(specs,
		specification.OrderBy{Field: "id"},
		specification.Pagination{Limit: s.pageSize},
	)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	lawyers, err := uow.LawyerRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, apperr.Persistence(err, "failed to query lawyer directory")
	}

	if s.cache != nil && len(lawyers) > 0 {
		s.cache.Set(ctx, key, lawyers)
	}
	return lawyers, nil
}

func (s *lawyerService) GetLawyer(ctx context.Context, id int64) (*dto.LawyerResponse, error) {
	lawyer, err := s.findLawyer(ctx, id)
	if err != nil {
		return nil, err
	}
	// Directory rows in Louisiana list parishes in the county column.
	home := extract.Location{County: lawyer.County, State: lawyer.State, Parish: lawyer.State == "Louisiana"}
	res := ToLawyerResponse(Annotate(lawyer, home, ""))
	return &res, nil
}

func (s *lawyerService) findLawyer(ctx context.Context, id int64) (*entity.Lawyer, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	lawyer, err := uow.LawyerRepository().FindOne(ctx, specification.ByLawyerID{ID: id})
	if err != nil {
		return nil, apperr.Persistence(err, "failed to load lawyer")
	}
	if lawyer == nil {
		return nil, apperr.NotFound("lawyer not found")
	}
	return lawyer, nil
}

// ContactLawyer queues the request on the event bus, or mails it directly
// when no bus is connected.
func (s *lawyerService) ContactLawyer(ctx context.Context, req *dto.ContactLawyerRequest) (*dto.ContactLawyerResponse, error) {
	lawyer, err := s.findLawyer(ctx, req.LawyerId)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(lawyer.Email) == "" {
		return nil, apperr.New(apperr.KindValidation, "this firm does not accept email inquiries; please call instead")
	}

	contact := events.ContactRequest{
		LawyerID:    lawyer.Id,
		FirmName:    lawyer.LawFirm,
		FirmEmail:   lawyer.Email,
		ClientName:  req.Name,
		ClientEmail: req.Email,
		ClientPhone: req.Phone,
		Message:     req.Message,
	}

	status := "sent"
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, events.NewLawyerContactRequested(contact)); err == nil {
			status = "queued"
		} else {
			s.logger.Warn("LAWYER", "Failed to queue contact request, sending directly", map[string]interface{}{
				"lawyer_id": lawyer.Id,
				"error":     err.Error(),
			})
		}
	}

	if status == "sent" {
		if err := s.mailer.SendLawyerContact(contact); err != nil {
			return nil, apperr.Wrap(err, apperr.KindNetwork, "failed to send contact request")
		}
	}

	s.logger.Info("LAWYER", "Contact request accepted", map[string]interface{}{
		"lawyer_id": lawyer.Id,
		"status":    status,
	})

	return &dto.ContactLawyerResponse{
		LawyerId: lawyer.Id,
		LawFirm:  lawyer.LawFirm,
		Status:   status,
	}, nil
}

func (s *lawyerService) HandleContactRequested(ctx context.Context, event events.Event) error {
	contact := events.ContactRequestFromPayload(event.Payload())
	if contact.FirmEmail == "" {
		return fmt.Errorf("contact request for lawyer %d has no firm email", contact.LawyerID)
	}
	return s.mailer.SendLawyerContact(contact)
}

// Annotate derives the display-only fields for one directory row. Nothing
// here is written back to the directory.
func Annotate(l *entity.Lawyer, loc extract.Location, caseType string) entity.LawyerProfile {
	profile := entity.LawyerProfile{
		Lawyer:          *l,
		Name:            nameFromFirm(l.LawFirm),
		Rating:          constant.LawyerRating,
		ProfileImageUrl: constant.LawyerProfileImageUrl,
		Availability:    constant.LawyerAvailability,
		IsFirmVerified:  true,
	}

	firm := l.LawFirm
	if firm == "" {
		firm = "our firm"
	}
	profile.Description = fmt.Sprintf(constant.LawyerDescriptionTmpl, firm)

	switch {
	case caseType != "":
		where := loc.String()
		if where == "" {
			where = extract.Location{County: l.County, State: l.State}.String()
		}
		profile.Specialty = fmt.Sprintf("%s Specialist in %s", caseType, where)
	case l.County != "" && l.State != "":
		profile.Specialty = fmt.Sprintf("%s, %s Legal Specialist", l.County, l.State)
	case l.State != "":
		profile.Specialty = fmt.Sprintf("%s Legal Specialist", l.State)
	default:
		profile.Specialty = "Legal Professional"
	}

	areas := []string{"Legal Consultation", "Case Evaluation"}
	if l.State != "" {
		areas = append(areas, l.State+" Legal Services")
	}
	if l.County != "" {
		areas = append(areas, l.County+" Local Expert")
	}
	if caseType != "" && !containsFold(areas, caseType) {
		areas = append([]string{caseType}, areas...)
	}
	profile.PracticeAreas = areas

	return profile
}

// nameFromFirm picks a contact name out of a firm name.
func nameFromFirm(firm string) string {
	firm = strings.TrimSpace(firm)
	switch {
	case firm == "":
		return "Attorney Representative"
	case strings.Contains(firm, "Law Offices of"):
		return strings.TrimSpace(strings.Replace(firm, "Law Offices of", "", 1))
	case strings.Contains(firm, "&"):
		name := strings.TrimSpace(strings.SplitN(firm, "&", 2)[0])
		if i := strings.Index(name, ","); i >= 0 {
			name = strings.TrimSpace(name[:i])
		}
		return name
	case strings.Contains(firm, "Law Firm"):
		return strings.TrimSpace(strings.Replace(firm, "Law Firm", "", 1))
	default:
		return strings.Fields(firm)[0]
	}
}

func containsFold(list []string, v string) bool {
	for _, s := range list {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}

func ToLawyerResponse(p entity.LawyerProfile) dto.LawyerResponse {
	return dto.LawyerResponse{
		Id:              p.Id,
		Name:            p.Name,
		LawFirm:         p.LawFirm,
		PhoneNumber:     p.PhoneNumber,
		Email:           p.Email,
		Website:         p.Website,
		City:            p.City,
		County:          p.County,
		State:           p.State,
		CreatedAt:       p.CreatedAt,
		Specialty:       p.Specialty,
		Rating:          p.Rating,
		ProfileImageUrl: p.ProfileImageUrl,
		Availability:    p.Availability,
		IsFirmVerified:  p.IsFirmVerified,
		Description:     p.Description,
		PracticeAreas:   p.PracticeAreas,
	}
}

func ToLawyerResponses(profiles []entity.LawyerProfile) []dto.LawyerResponse {
	out := make([]dto.LawyerResponse, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, ToLawyerResponse(p))
	}
	return out
}
