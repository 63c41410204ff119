package employee

import (
	"context"
	"fmt"
	"sync"

	"github.com/presentia-hr/presentia-backend-go/internal/domain/employee"
	"github.com/presentia-hr/presentia-backend-go/internal/domain/shift"
	"github.com/presentia-hr/presentia-backend-go/internal/pkg/faceindex"
	recognitionService "github.com/presentia-hr/presentia-backend-go/internal/service/recognition"
)

type EmployeeServiceImpl struct {
	employee.EmployeeRepository
	index   *faceindex.Index
	matcher *recognitionService.Matcher

	// enrollMu spans the duplicate check and the insert. Without it two
	// concurrent enrollments of the same face can both pass the check.
	enrollMu sync.Mutex
}

func NewEmployeeService(
	employeeRepo employee.EmployeeRepository,
	index *faceindex.Index,
	matcher *recognitionService.Matcher,
) *EmployeeServiceImpl {
	return &EmployeeServiceImpl{
		EmployeeRepository: employeeRepo,
		index:              index,
		matcher:            matcher,
	}
}

// WarmIndex loads every enrolled embedding into the face index. Called once
// at startup before the server accepts requests.
func (s *EmployeeServiceImpl) WarmIndex(ctx context.Context) error {
	employees, err := s.EmployeeRepository.ListEnrolled(ctx)
	if err != nil {
		return fmt.Errorf("failed to list enrolled employees: %w", err)
	}

	entries := make([]faceindex.Entry, 0, len(employees))
	for _, emp := range employees {
		entries = append(entries, faceindex.Entry{Legajo: emp.Legajo, Embedding: emp.Embedding})
	}
	if err := s.index.Load(entries); err != nil {
		return fmt.Errorf("failed to load face index: %w", err)
	}
	return nil
}

// Enroll implements employee.EmployeeService.
//
// The duplicate-person guard runs the matcher against the candidate
// embedding; any match means the face already belongs to an enrolled
// employee and enrollment is rejected with the conflicting legajo. Check,
// insert and index refresh happen under one lock so two concurrent
// enrollments of near-duplicate faces cannot both succeed.
func (s *EmployeeServiceImpl) Enroll(ctx context.Context, req employee.EnrollRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	label, err := shift.Parse(req.Shift)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	s.enrollMu.Lock()
	defer s.enrollMu.Unlock()

	match, err := s.matcher.Match(req.Embedding)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if match.Matched {
		return employee.EmployeeResponse{}, &employee.DuplicatePersonError{
			ExistingLegajo: match.Legajo,
			Distance:       match.Distance,
		}
	}

	created, err := s.EmployeeRepository.Create(ctx, employee.Employee{
		Legajo:    req.Legajo,
		Area:      req.Area,
		Role:      req.Role,
		Shift:     label,
		Embedding: req.Embedding,
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if err := s.index.Add(created.Legajo, created.Embedding); err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to index new employee: %w", err)
	}

	return mapEmployeeToResponse(created), nil
}

// GetByLegajo implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetByLegajo(ctx context.Context, legajo string) (employee.EmployeeResponse, error) {
	emp, err := s.EmployeeRepository.GetByLegajo(ctx, legajo)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return mapEmployeeToResponse(emp), nil
}

func mapEmployeeToResponse(emp employee.Employee) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		Legajo:       emp.Legajo,
		Area:         emp.Area,
		Role:         emp.Role,
		Shift:        emp.Shift.String(),
		RegisteredAt: emp.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
