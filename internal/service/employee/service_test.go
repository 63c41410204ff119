package employee

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/presentia-hr/presentia-backend-go/internal/domain/employee"
	"github.com/presentia-hr/presentia-backend-go/internal/domain/shift"
	"github.com/presentia-hr/presentia-backend-go/internal/pkg/faceindex"
	recognitionService "github.com/presentia-hr/presentia-backend-go/internal/service/recognition"
)

const testDim = 4

type fakeEmployeeRepository struct {
	mu        sync.Mutex
	employees map[string]employee.Employee
}

func newFakeEmployeeRepository() *fakeEmployeeRepository {
	return &fakeEmployeeRepository{employees: make(map[string]employee.Employee)}
}

func (f *fakeEmployeeRepository) Create(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.employees[emp.Legajo]; ok {
		return employee.Employee{}, employee.ErrLegajoExists
	}
	now := time.Now().UTC()
	emp.CreatedAt = now
	emp.UpdatedAt = now
	f.employees[emp.Legajo] = emp
	return emp, nil
}

func (f *fakeEmployeeRepository) GetByLegajo(_ context.Context, legajo string) (employee.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	emp, ok := f.employees[legajo]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepository) ListEnrolled(_ context.Context) ([]employee.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]employee.Employee, 0, len(f.employees))
	for _, emp := range f.employees {
		if emp.HasEmbedding() {
			out = append(out, emp)
		}
	}
	return out, nil
}

func testVector(base float32) []float32 {
	v := make([]float32, testDim)
	for i := range v {
		v[i] = base
	}
	return v
}

func newTestService(repo employee.EmployeeRepository) *EmployeeServiceImpl {
	index := faceindex.New(testDim)
	matcher := recognitionService.NewMatcher(index, 0.6, 1e-6)
	return NewEmployeeService(repo, index, matcher)
}

func enrollReq(legajo string, embedding []float32) employee.EnrollRequest {
	return employee.EnrollRequest{
		Legajo:    legajo,
		Area:      "Deposito",
		Role:      "Operario",
		Shift:     "manana",
		Embedding: embedding,
	}
}

func TestEnroll_Success(t *testing.T) {
	repo := newFakeEmployeeRepository()
	svc := newTestService(repo)

	resp, err := svc.Enroll(context.Background(), enrollReq("1001", testVector(0.5)))
	require.NoError(t, err)
	assert.Equal(t, "1001", resp.Legajo)
	assert.Equal(t, "manana", resp.Shift)

	// The new face is searchable immediately.
	assert.Equal(t, 1, svc.index.Count())
}

func TestEnroll_RejectsDuplicatePerson(t *testing.T) {
	repo := newFakeEmployeeRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.Enroll(ctx, enrollReq("1001", testVector(0.5)))
	require.NoError(t, err)

	// Same face, different legajo.
	_, err = svc.Enroll(ctx, enrollReq("1002", testVector(0.51)))
	require.Error(t, err)
	assert.ErrorIs(t, err, employee.ErrDuplicatePerson)

	var dup *employee.DuplicatePersonError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "1001", dup.ExistingLegajo)
}

func TestEnroll_DistinctFacesBothSucceed(t *testing.T) {
	repo := newFakeEmployeeRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.Enroll(ctx, enrollReq("1001", testVector(0.5)))
	require.NoError(t, err)
	_, err = svc.Enroll(ctx, enrollReq("1002", testVector(5.0)))
	require.NoError(t, err)

	assert.Equal(t, 2, svc.index.Count())
}

func TestEnroll_ValidationErrors(t *testing.T) {
	repo := newFakeEmployeeRepository()
	svc := newTestService(repo)

	req := enrollReq("abc", testVector(0.5))
	_, err := svc.Enroll(context.Background(), req)
	require.Error(t, err)

	req = enrollReq("1001", nil)
	_, err = svc.Enroll(context.Background(), req)
	require.Error(t, err)
}

func TestEnroll_ConcurrentDuplicates(t *testing.T) {
	repo := newFakeEmployeeRepository()
	svc := newTestService(repo)

	// Two near-identical faces racing for enrollment under different
	// legajos: at most one may win.
	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			legajo := []string{"1001", "1002", "1003", "1004", "1005", "1006", "1007", "1008"}[i]
			_, errs[i] = svc.Enroll(context.Background(), enrollReq(legajo, testVector(0.5)))
		}(i)
	}
	wg.Wait()

	var ok int
	for _, err := range errs {
		if err == nil {
			ok++
		} else {
			assert.ErrorIs(t, err, employee.ErrDuplicatePerson)
		}
	}
	assert.Equal(t, 1, ok, "exactly one enrollment must win")
}

func TestWarmIndex(t *testing.T) {
	repo := newFakeEmployeeRepository()
	_, err := repo.Create(context.Background(), employee.Employee{
		Legajo:    "1001",
		Area:      "Deposito",
		Role:      "Operario",
		Shift:     shift.Manana,
		Embedding: testVector(0.5),
	})
	require.NoError(t, err)

	svc := newTestService(repo)
	require.NoError(t, svc.WarmIndex(context.Background()))
	assert.Equal(t, 1, svc.index.Count())

	// A face loaded at startup blocks duplicate enrollment like any other.
	_, err = svc.Enroll(context.Background(), enrollReq("1002", testVector(0.5)))
	assert.ErrorIs(t, err, employee.ErrDuplicatePerson)
}

func TestGetByLegajo(t *testing.T) {
	repo := newFakeEmployeeRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.Enroll(ctx, enrollReq("1001", testVector(0.5)))
	require.NoError(t, err)

	resp, err := svc.GetByLegajo(ctx, "1001")
	require.NoError(t, err)
	assert.Equal(t, "Deposito", resp.Area)
	assert.Equal(t, "Operario", resp.Role)

	_, err = svc.GetByLegajo(ctx, "9999")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
