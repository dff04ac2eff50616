package services

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"gorm.io/gorm"

	"github.com/coverbridge/coverbridge-backend/internal/ingest"
	"github.com/coverbridge/coverbridge-backend/internal/logger"
	"github.com/coverbridge/coverbridge-backend/internal/repos"
	"github.com/coverbridge/coverbridge-backend/internal/types"
)

type UploadKind string

const (
	UploadPolicies UploadKind = "policies"
	UploadTariffs  UploadKind = "tariffs"
	UploadCriteria UploadKind = "criteria"
)

type UploadService interface {
	HandleUpload(ctx context.Context, kind UploadKind, filename string, file io.Reader) (*ingest.UploadResult, error)
}

type uploadService struct {
	db           *gorm.DB
	log          *logger.Logger
	providerRepo repos.ProviderRepo
	typeRepo     repos.InsuranceTypeRepo
	planRepo     repos.InsurancePlanRepo
	tariffRepo   repos.TariffRepo
	criteriaRepo repos.PlanCriteriaRepo
}

func NewUploadService(
	db *gorm.DB,
	baseLog *logger.Logger,
	providerRepo repos.ProviderRepo,
	typeRepo repos.InsuranceTypeRepo,
	planRepo repos.InsurancePlanRepo,
	tariffRepo repos.TariffRepo,
	criteriaRepo repos.PlanCriteriaRepo,
) UploadService {
	return &uploadService{
		db:           db,
		log:          baseLog.With("service", "UploadService"),
		providerRepo: providerRepo,
		typeRepo:     typeRepo,
		planRepo:     planRepo,
		tariffRepo:   tariffRepo,
		criteriaRepo: criteriaRepo,
	}
}

func (s *uploadService) HandleUpload(ctx context.Context, kind UploadKind, filename string, file io.Reader) (*ingest.UploadResult, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if err := checkExtension(kind, ext); err != nil {
		return nil, err
	}

	rows, err := ingest.ParseFile(filename, file)
	if err != nil {
		return nil, err
	}
	s.log.Info("bulk upload parsed", "kind", string(kind), "filename", filename, "rows", len(rows))

	switch kind {
	case UploadPolicies:
		return ingest.IngestPolicies(ctx, rows, &gormPolicySink{s: s})
	case UploadTariffs:
		return ingest.IngestTariffs(ctx, rows, &gormTariffSink{s: s})
	case UploadCriteria:
		var entries []ingest.FlatCriteria
		var priorErrs []string
		if ext == ".xlsx" {
			entries = ingest.FlattenCriteria(rows)
		} else {
			entries, priorErrs = ingest.CriteriaFromJSON(rows)
		}
		return ingest.IngestCriteria(ctx, entries, priorErrs, &gormCriteriaSink{s: s})
	default:
		return nil, &ingest.UnsupportedFormatError{Extension: string(kind), Hint: "unknown upload kind"}
	}
}

// checkExtension narrows the accepted formats per upload kind before any row
// is parsed.
func checkExtension(kind UploadKind, ext string) error {
	allowed := map[UploadKind][]string{
		UploadPolicies: {".csv", ".json"},
		UploadTariffs:  {".csv", ".json", ".xlsx"},
		UploadCriteria: {".json", ".xlsx"},
	}
	for _, ok := range allowed[kind] {
		if ext == ok {
			return nil
		}
	}
	hint := "use " + strings.Join(allowed[kind], ", ") + " for " + string(kind) + " uploads"
	return &ingest.UnsupportedFormatError{Extension: ext, Hint: hint}
}

type gormTariffSink struct {
	s *uploadService
}

func (g *gormTariffSink) PlanIDs(ctx context.Context) (map[uint]struct{}, error) {
	return g.s.planRepo.IDSet(ctx, nil)
}

func (g *gormTariffSink) ExistingTariffs(ctx context.Context) ([]*types.Tariff, error) {
	return g.s.tariffRepo.GetAll(ctx, nil)
}

func (g *gormTariffSink) CommitBatch(ctx context.Context, created, updated []*types.Tariff) error {
	return g.s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(created) > 0 {
			if err := g.s.tariffRepo.CreateBatch(ctx, tx, created); err != nil {
				return err
			}
		}
		for _, tariff := range updated {
			if err := g.s.tariffRepo.Save(ctx, tx, tariff); err != nil {
				return err
			}
		}
		return nil
	})
}

type gormPolicySink struct {
	s *uploadService
}

func (g *gormPolicySink) ProviderIDs(ctx context.Context) (map[uint]struct{}, error) {
	return g.s.providerRepo.IDSet(ctx, nil)
}

func (g *gormPolicySink) TypeIDs(ctx context.Context) (map[uint]struct{}, error) {
	return g.s.typeRepo.IDSet(ctx, nil)
}

func (g *gormPolicySink) FindByNameAndProvider(ctx context.Context, name string, providerID uint) (*types.InsurancePlan, error) {
	return g.s.planRepo.GetByNameAndProvider(ctx, nil, name, providerID)
}

func (g *gormPolicySink) Create(ctx context.Context, plan *types.InsurancePlan) error {
	return g.s.planRepo.Create(ctx, nil, plan)
}

func (g *gormPolicySink) Update(ctx context.Context, plan *types.InsurancePlan) error {
	return g.s.planRepo.Save(ctx, nil, plan)
}

type gormCriteriaSink struct {
	s *uploadService
}

func (g *gormCriteriaSink) PlanIDs(ctx context.Context) (map[uint]struct{}, error) {
	return g.s.planRepo.IDSet(ctx, nil)
}

func (g *gormCriteriaSink) FindByPolicyID(ctx context.Context, policyID uint) (*types.PlanCriteria, error) {
	return g.s.criteriaRepo.GetByPolicyID(ctx, nil, policyID)
}

func (g *gormCriteriaSink) Create(ctx context.Context, criteria *types.PlanCriteria) error {
	return g.s.criteriaRepo.Create(ctx, nil, criteria)
}

func (g *gormCriteriaSink) Update(ctx context.Context, criteria *types.PlanCriteria) error {
	return g.s.criteriaRepo.Save(ctx, nil, criteria)
}
