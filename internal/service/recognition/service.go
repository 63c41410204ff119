package recognition

import (
	"context"
	"fmt"
	"time"

	"github.com/presentia-hr/presentia-backend-go/internal/domain/attendance"
	"github.com/presentia-hr/presentia-backend-go/internal/domain/employee"
	"github.com/presentia-hr/presentia-backend-go/internal/domain/recognition"
	"github.com/presentia-hr/presentia-backend-go/internal/domain/shift"
)

type RecognitionServiceImpl struct {
	matcher *Matcher
	employee.EmployeeRepository
	attendanceService attendance.AttendanceService
}

func NewRecognitionService(
	matcher *Matcher,
	employeeRepo employee.EmployeeRepository,
	attendanceService attendance.AttendanceService,
) recognition.RecognitionService {
	return &RecognitionServiceImpl{
		matcher:            matcher,
		EmployeeRepository: employeeRepo,
		attendanceService:  attendanceService,
	}
}

// Recognize implements recognition.RecognitionService.
func (s *RecognitionServiceImpl) Recognize(ctx context.Context, req recognition.RecognizeRequest) (recognition.RecognizeResponse, error) {
	if err := req.Validate(); err != nil {
		return recognition.RecognizeResponse{}, err
	}

	claimed, err := shift.Parse(req.Shift)
	if err != nil {
		return recognition.RecognizeResponse{}, err
	}

	match, err := s.matcher.Match(req.Embedding)
	if err != nil {
		return recognition.RecognizeResponse{}, err
	}

	if !match.Matched {
		msg := "ningun empleado coincide con la imagen"
		if match.Ambiguous {
			msg = "coincidencia ambigua entre empleados registrados"
		}
		return recognition.RecognizeResponse{
			Matched:  false,
			Distance: match.Distance,
			Message:  msg,
		}, nil
	}

	emp, err := s.EmployeeRepository.GetByLegajo(ctx, match.Legajo)
	if err != nil {
		return recognition.RecognizeResponse{}, fmt.Errorf("failed to load matched employee: %w", err)
	}

	ev, err := s.attendanceService.Record(ctx, emp, claimed, req.At(time.Now().UTC()))
	if err != nil {
		return recognition.RecognizeResponse{}, err
	}

	return recognition.RecognizeResponse{
		Matched:      true,
		Legajo:       ev.Legajo,
		Kind:         string(ev.Kind),
		BusinessDate: ev.BusinessDate.Format("2006-01-02"),
		Punctuality:  string(ev.Punctuality),
		Distance:     match.Distance,
	}, nil
}
