package artisan

import (
	"context"
	"errors"
	"time"

	"github.com/craftlink/artisan-registry-backend/internal/auditlog"
)

type Service struct {
	Repo     *Repository
	AuditSvc auditlog.Service
}

func NewService(repo *Repository, auditSvc auditlog.Service) *Service {
	return &Service{Repo: repo, AuditSvc: auditSvc}
}

// ImagePaths carries the already-renamed upload paths for one request.
type ImagePaths struct {
	Product []string
	Shop    []string
}

// Create inserts the artisan row, then each child batch independently.
// A batch failing after the artisan row is committed leaves a partially
// populated record; only the update path is transactional. onStep fires
// before each logical step for progress reporting.
func (s *Service) Create(ctx context.Context, userID *uint, req *ArtisanPayload, images ImagePaths, ip string, onStep func(string)) (uint, error) {
	if onStep == nil {
		onStep = func(string) {}
	}

	a, err := payloadToArtisan(req)
	if err != nil {
		return 0, err
	}

	onStep("Creating artisan record")
	if err := s.Repo.Create(ctx, a); err != nil {
		s.audit(ctx, userID, "ARTISAN_CREATED", map[string]interface{}{"cnic": req.CNIC, "error": err.Error()}, ip, "failure")
		return 0, err
	}

	onStep("Creating trainings")
	if err := s.Repo.CreateTrainings(ctx, trainingRows(a.ID, req.Trainings)); err != nil {
		return a.ID, err
	}

	onStep("Creating loans")
	if err := s.Repo.CreateLoans(ctx, loanRows(a.ID, req.Loans)); err != nil {
		return a.ID, err
	}

	onStep("Creating machines")
	if err := s.Repo.CreateMachines(ctx, machineRows(a.ID, req.Machines)); err != nil {
		return a.ID, err
	}

	onStep("Saving product images")
	if err := s.Repo.CreateProductImages(ctx, productImageRows(a.ID, images.Product)); err != nil {
		return a.ID, err
	}

	onStep("Saving shop images")
	if err := s.Repo.CreateShopImages(ctx, shopImageRows(a.ID, images.Shop)); err != nil {
		return a.ID, err
	}

	s.audit(ctx, userID, "ARTISAN_CREATED", map[string]interface{}{
		"artisan_id": a.ID,
		"name":       a.Name,
		"cnic":       a.CNIC,
	}, ip, "success")

	return a.ID, nil
}

// Update overwrites the record and replaces all child lists in one
// transaction. Missing artisan aborts the whole update as not-found.
func (s *Service) Update(ctx context.Context, userID *uint, id uint, req *ArtisanPayload, images ImagePaths, ip string, onStep func(string)) error {
	a, err := payloadToArtisan(req)
	if err != nil {
		return err
	}

	fields := map[string]interface{}{
		"name":                 a.Name,
		"father_name":          a.FatherName,
		"cnic":                 a.CNIC,
		"gender":               a.Gender,
		"date_of_birth":        a.DateOfBirth,
		"contact_no":           a.ContactNo,
		"address":              a.Address,
		"tehsil_code":          a.TehsilCode,
		"skill_id":             a.SkillID,
		"education_id":         a.EducationID,
		"employment_type_id":   a.EmploymentTypeID,
		"raw_material":         a.RawMaterial,
		"avg_monthly_income":   a.AvgMonthlyIncome,
		"experience_years":     a.ExperienceYears,
		"dependents_count":     a.DependentsCount,
		"loan_status":          a.LoanStatus,
		"has_machinery":        a.HasMachinery,
		"has_training":         a.HasTraining,
		"inherited_skills":     a.InheritedSkills,
		"financial_assistance": a.FinancialAssistance,
		"technical_assistance": a.TechnicalAssistance,
		"comments":             a.Comments,
		"latitude":             a.Latitude,
		"longitude":            a.Longitude,
	}

	err = s.Repo.Replace(ctx, id, fields,
		trainingRows(id, req.Trainings),
		loanRows(id, req.Loans),
		machineRows(id, req.Machines),
		onStep,
	)
	if err != nil {
		status := "failure"
		if errors.Is(err, ErrNotFound) {
			status = "not_found"
		}
		s.audit(ctx, userID, "ARTISAN_UPDATED", map[string]interface{}{"artisan_id": id, "error": err.Error()}, ip, status)
		return err
	}

	// New images are appended outside the replacement set; image rows are
	// only ever added, never swapped, so files on disk stay referenced.
	if len(images.Product) > 0 {
		if onStep != nil {
			onStep("Saving product images")
		}
		if err := s.Repo.CreateProductImages(ctx, productImageRows(id, images.Product)); err != nil {
			return err
		}
	}
	if len(images.Shop) > 0 {
		if onStep != nil {
			onStep("Saving shop images")
		}
		if err := s.Repo.CreateShopImages(ctx, shopImageRows(id, images.Shop)); err != nil {
			return err
		}
	}

	s.audit(ctx, userID, "ARTISAN_UPDATED", map[string]interface{}{"artisan_id": id}, ip, "success")
	return nil
}

func (s *Service) GetByID(ctx context.Context, id uint, includeInactive bool) (*Artisan, error) {
	return s.Repo.GetByID(ctx, id, includeInactive)
}

func (s *Service) List(ctx context.Context, limit, offset int, search string) ([]Artisan, int64, error) {
	return s.Repo.List(ctx, limit, offset, search)
}

func (s *Service) SoftDelete(ctx context.Context, userID *uint, id uint, ip string) error {
	err := s.Repo.SoftDelete(ctx, id)
	status := "success"
	if err != nil {
		status = "failure"
	}
	s.audit(ctx, userID, "ARTISAN_DELETED", map[string]interface{}{"artisan_id": id}, ip, status)
	return err
}

func (s *Service) audit(ctx context.Context, userID *uint, action string, details map[string]interface{}, ip, status string) {
	if s.AuditSvc != nil {
		s.AuditSvc.LogAction(ctx, userID, action, details, ip, status)
	}
}

// ======================
// Payload conversion
// ======================

func payloadToArtisan(req *ArtisanPayload) (*Artisan, error) {
	var dob *time.Time
	if req.DateOfBirth != "" {
		parsed, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			return nil, errors.New("invalid date_of_birth format. Use YYYY-MM-DD")
		}
		dob = &parsed
	}

	return &Artisan{
		Name:                req.Name,
		FatherName:          req.FatherName,
		CNIC:                req.CNIC,
		Gender:              req.Gender,
		DateOfBirth:         dob,
		ContactNo:           req.ContactNo,
		Address:             req.Address,
		TehsilCode:          req.TehsilCode,
		SkillID:             req.SkillID,
		EducationID:         req.EducationID,
		EmploymentTypeID:    req.EmploymentTypeID,
		RawMaterial:         req.RawMaterial,
		AvgMonthlyIncome:    req.AvgMonthlyIncome,
		ExperienceYears:     req.ExperienceYears,
		DependentsCount:     req.DependentsCount,
		LoanStatus:          normalizeFlag(req.LoanStatus),
		HasMachinery:        normalizeFlag(req.HasMachinery),
		HasTraining:         normalizeFlag(req.HasTraining),
		InheritedSkills:     normalizeFlag(req.InheritedSkills),
		FinancialAssistance: normalizeFlag(req.FinancialAssistance),
		TechnicalAssistance: normalizeFlag(req.TechnicalAssistance),
		Comments:            req.Comments,
		Latitude:            req.Latitude,
		Longitude:           req.Longitude,
		IsActive:            true,
	}, nil
}

// normalizeFlag folds truthy spellings into the canonical "Yes"/"No".
func normalizeFlag(v string) string {
	switch v {
	case "Yes", "yes", "YES", "true", "1":
		return "Yes"
	default:
		return "No"
	}
}

func trainingRows(artisanID uint, payloads []TrainingPayload) []Training {
	rows := make([]Training, 0, len(payloads))
	for _, p := range payloads {
		rows = append(rows, Training{
			ArtisanID:    artisanID,
			Title:        p.Title,
			Duration:     p.Duration,
			Organization: p.Organization,
		})
	}
	return rows
}

func loanRows(artisanID uint, payloads []LoanPayload) []Loan {
	rows := make([]Loan, 0, len(payloads))
	for _, p := range payloads {
		var date *time.Time
		if p.Date != "" {
			if parsed, err := time.Parse("2006-01-02", p.Date); err == nil {
				date = &parsed
			}
		}
		rows = append(rows, Loan{
			ArtisanID: artisanID,
			Amount:    p.Amount,
			Date:      date,
			LoanType:  p.LoanType,
			Lender:    p.Lender,
		})
	}
	return rows
}

func machineRows(artisanID uint, payloads []MachinePayload) []Machine {
	rows := make([]Machine, 0, len(payloads))
	for _, p := range payloads {
		count := p.Count
		if count <= 0 {
			count = 1
		}
		rows = append(rows, Machine{
			ArtisanID: artisanID,
			Title:     p.Title,
			Size:      p.Size,
			Count:     count,
		})
	}
	return rows
}

func productImageRows(artisanID uint, paths []string) []ProductImage {
	rows := make([]ProductImage, 0, len(paths))
	for _, p := range paths {
		rows = append(rows, ProductImage{ArtisanID: artisanID, Path: p})
	}
	return rows
}

func shopImageRows(artisanID uint, paths []string) []ShopImage {
	rows := make([]ShopImage, 0, len(paths))
	for _, p := range paths {
		rows = append(rows, ShopImage{ArtisanID: artisanID, Path: p})
	}
	return rows
}
