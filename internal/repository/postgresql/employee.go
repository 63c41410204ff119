package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pgvector/pgvector-go"
	"github.com/presentia-hr/presentia-backend-go/internal/domain/employee"
	"github.com/presentia-hr/presentia-backend-go/internal/domain/shift"
	"github.com/presentia-hr/presentia-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepository) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	ctx, cancel := r.db.WithQueryTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO employees (legajo, area, rol, turno, embedding)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		emp.Legajo,
		emp.Area,
		emp.Role,
		emp.Shift.String(),
		pgvector.NewVector(emp.Embedding),
	).Scan(&emp.CreatedAt, &emp.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return employee.Employee{}, employee.ErrLegajoExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", database.MapTimeout(err))
	}

	return emp, nil
}

// GetByLegajo implements employee.EmployeeRepository.
func (r *employeeRepository) GetByLegajo(ctx context.Context, legajo string) (employee.Employee, error) {
	ctx, cancel := r.db.WithQueryTimeout(ctx)
	defer cancel()

	query := `
		SELECT legajo, area, rol, turno, embedding, created_at, updated_at
		FROM employees
		WHERE legajo = $1
	`

	emp, err := scanEmployee(r.db.QueryRow(ctx, query, legajo))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by legajo: %w", database.MapTimeout(err))
	}

	return emp, nil
}

// ListEnrolled implements employee.EmployeeRepository.
func (r *employeeRepository) ListEnrolled(ctx context.Context) ([]employee.Employee, error) {
	ctx, cancel := r.db.WithQueryTimeout(ctx)
	defer cancel()

	query := `
		SELECT legajo, area, rol, turno, embedding, created_at, updated_at
		FROM employees
		WHERE embedding IS NOT NULL
		ORDER BY legajo
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrolled employees: %w", database.MapTimeout(err))
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", database.MapTimeout(err))
	}

	return employees, nil
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	var turno string
	var embedding pgvector.Vector

	if err := row.Scan(&emp.Legajo, &emp.Area, &emp.Role, &turno, &embedding, &emp.CreatedAt, &emp.UpdatedAt); err != nil {
		return employee.Employee{}, err
	}

	label, err := shift.Parse(turno)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("employee %s: %w", emp.Legajo, err)
	}
	emp.Shift = label
	emp.Embedding = embedding.Slice()

	return emp, nil
}
