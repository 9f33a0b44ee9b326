package employee

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	e := &Employee{
		ID:       uuid.New(),
		FullName: req.FullName,
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Position: req.Position,
	}

	if req.UserID != "" {
		uid, err := uuid.Parse(req.UserID)
		if err != nil {
			return EmployeeResponse{}, err
		}
		e.UserID = &uid
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return EmployeeResponse{}, err
	}

	return mapToResponse(*e), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]EmployeeResponse, len(rows))
	for i, e := range rows {
		res[i] = mapToResponse(e)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, err
	}
	return mapToResponse(*e), nil
}

func mapToResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:            e.ID.String(),
		FullName:      e.FullName,
		Email:         e.Email,
		Position:      e.Position,
		MonthlySalary: e.MonthlySalary,
		UpdatedAt:     e.UpdatedAt.Format(time.RFC3339),
	}
	if e.UserID != nil {
		resp.UserID = e.UserID.String()
	}
	return resp
}
