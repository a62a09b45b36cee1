package store

import (
	"context"
	"fmt"
	"time"

	"vetclinic-admin-server/internal/models"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
)

// StatusCount is the number of appointments in one status.
type StatusCount struct {
	Status models.AppointmentStatus `db:"status" json:"status"`
	Label  string                   `db:"-" json:"label"`
	Count  int64                    `db:"count" json:"count"`
}

// DailyCount is the number of appointments scheduled on one day.
type DailyCount struct {
	Day   time.Time `db:"day" json:"day"`
	Count int64     `db:"count" json:"count"`
}

// ServiceCount is the number of completed appointments for one service.
type ServiceCount struct {
	ServiceID string `db:"service_id" json:"serviceId"`
	Name      string `db:"name" json:"name"`
	Completed int64  `db:"completed" json:"completed"`
}

// DashboardSummary feeds the analytics dashboard charts.
type DashboardSummary struct {
	Customers      int64          `json:"customers"`
	Pets           int64          `json:"pets"`
	ByStatus       []StatusCount  `json:"byStatus"`
	Daily          []DailyCount   `json:"daily"`
	TopServices    []ServiceCount `json:"topServices"`
	CompletionRate float64        `json:"completionRate"`
}

// DashboardRepository runs the aggregate read queries for the dashboard on the
// same pool as gorm.
type DashboardRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewDashboardRepository wraps the gorm connection pool with sqlx.
func NewDashboardRepository(gdb *gorm.DB, driver string) (*DashboardRepository, error) {
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB from gorm: %w", err)
	}
	if driver == "" {
		driver = "mysql"
	}
	return &DashboardRepository{db: sqlx.NewDb(sqlDB, driver), now: time.Now}, nil
}

// Summary aggregates appointment statistics for the last days days.
func (r *DashboardRepository) Summary(ctx context.Context, days int, top int) (*DashboardSummary, error) {
	if days <= 0 {
		days = 30
	}
	if top <= 0 {
		top = 5
	}

	var totals struct {
		Customers int64 `db:"customers"`
		Pets      int64 `db:"pets"`
	}
	if err := r.db.GetContext(ctx, &totals,
		`SELECT (SELECT COUNT(*) FROM customers) AS customers, (SELECT COUNT(*) FROM pets) AS pets`); err != nil {
		return nil, fmt.Errorf("failed to count customers and pets: %w", err)
	}

	var byStatus []StatusCount
	if err := r.db.SelectContext(ctx, &byStatus,
		`SELECT status, COUNT(*) AS count FROM appointments GROUP BY status`); err != nil {
		return nil, fmt.Errorf("failed to count appointments by status: %w", err)
	}

	since := dayStart(r.now()).AddDate(0, 0, -(days - 1))
	var daily []DailyCount
	if err := r.db.SelectContext(ctx, &daily, r.db.Rebind(
		`SELECT DATE(date) AS day, COUNT(*) AS count
		FROM appointments
		WHERE date >= ?
		GROUP BY DATE(date)
		ORDER BY day`), since); err != nil {
		return nil, fmt.Errorf("failed to count daily appointments: %w", err)
	}

	var services []ServiceCount
	if err := r.db.SelectContext(ctx, &services, r.db.Rebind(
		`SELECT s.id AS service_id, s.name AS name, COUNT(a.id) AS completed
		FROM services s
		JOIN appointments a ON a.service_id = s.id
		WHERE a.status = ?
		GROUP BY s.id, s.name
		ORDER BY completed DESC
		LIMIT ?`), models.StatusCompleted, top); err != nil {
		return nil, fmt.Errorf("failed to rank services: %w", err)
	}

	summary := buildSummary(byStatus)
	summary.Customers = totals.Customers
	summary.Pets = totals.Pets
	summary.Daily = daily
	summary.TopServices = services
	return summary, nil
}

// buildSummary reports every status, including those with no appointments, in
// code order and derives the completion rate from the non-cancelled total.
func buildSummary(counts []StatusCount) *DashboardSummary {
	byCode := make(map[models.AppointmentStatus]int64, len(counts))
	for _, c := range counts {
		byCode[c.Status] += c.Count
	}

	summary := &DashboardSummary{}
	for _, s := range []models.AppointmentStatus{
		models.StatusPending, models.StatusConfirmed, models.StatusCompleted, models.StatusCancelled,
	} {
		summary.ByStatus = append(summary.ByStatus, StatusCount{Status: s, Label: s.String(), Count: byCode[s]})
	}

	active := byCode[models.StatusPending] + byCode[models.StatusConfirmed] + byCode[models.StatusCompleted]
	if active > 0 {
		summary.CompletionRate = float64(byCode[models.StatusCompleted]) / float64(active)
	}
	return summary
}
